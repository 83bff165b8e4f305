package services

import (
	"sort"
	"strings"
	"time"

	"shiptix/internal/domain/models"
	"shiptix/internal/session"
	"shiptix/internal/utils"
)

// EngineOptions selects the presentation of an already prepared list.
type EngineOptions struct {
	Sort  models.SortKey
	Class string // "" or "all" keeps every schedule
}

type EngineResult struct {
	Schedules        []models.EnrichedSchedule `json:"schedules"`
	AvailableClasses []string                  `json:"available_classes"`
}

// FilterSchedules keeps schedules on the requested route, on the requested
// calendar date as observed at the departure port, with status scheduled.
// Ports without a usable timezone are read in defaultLoc.
func FilterSchedules(req models.SearchRequest, schedules []models.Schedule, ports []models.Port, defaultLoc *time.Location) []models.Schedule {
	zones := make(map[string]*time.Location, len(ports))
	for _, p := range ports {
		zones[p.ID] = p.Location(defaultLoc)
	}

	out := []models.Schedule{}
	for _, s := range schedules {
		if s.DeparturePortID != req.DeparturePortID || s.ArrivalPortID != req.ArrivalPortID {
			continue
		}
		if s.Status != models.ScheduleScheduled {
			continue
		}
		loc, ok := zones[s.DeparturePortID]
		if !ok {
			loc = defaultLoc
		}
		if utils.DateIn(s.DepartureTime, loc) != req.DepartureDate {
			continue
		}
		out = append(out, s)
	}
	return out
}

// EnrichSchedules attaches ship and ports by id. Unresolved references stay
// nil; the schedule is kept.
func EnrichSchedules(schedules []models.Schedule, ships []models.Ship, ports []models.Port) []models.EnrichedSchedule {
	shipByID := make(map[string]models.Ship, len(ships))
	for _, s := range ships {
		if _, dup := shipByID[s.ID]; !dup {
			shipByID[s.ID] = s
		}
	}
	portByID := make(map[string]models.Port, len(ports))
	for _, p := range ports {
		if _, dup := portByID[p.ID]; !dup {
			portByID[p.ID] = p
		}
	}

	out := make([]models.EnrichedSchedule, 0, len(schedules))
	for _, s := range schedules {
		s.Classes = append([]models.FareClass(nil), s.Classes...)
		e := models.EnrichedSchedule{Schedule: s}
		if ship, ok := shipByID[s.ShipID]; ok {
			e.Ship = &ship
		}
		if p, ok := portByID[s.DeparturePortID]; ok {
			e.DeparturePort = &p
		}
		if p, ok := portByID[s.ArrivalPortID]; ok {
			e.ArrivalPort = &p
		}
		out = append(out, e)
	}
	return out
}

// AvailableClasses lists distinct fare class names in first-seen order.
func AvailableClasses(list []models.EnrichedSchedule) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, s := range list {
		for _, c := range s.Classes {
			if c.Name == "" || seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			out = append(out, c.Name)
		}
	}
	return out
}

// SortSchedules returns a stably sorted copy. Schedules without classes sort
// last by price.
func SortSchedules(list []models.EnrichedSchedule, key models.SortKey) []models.EnrichedSchedule {
	out := append([]models.EnrichedSchedule{}, list...)
	var less func(a, b models.EnrichedSchedule) bool
	switch key {
	case models.SortByTime:
		less = func(a, b models.EnrichedSchedule) bool { return a.DepartureTime.Before(b.DepartureTime) }
	case models.SortByDuration:
		less = func(a, b models.EnrichedSchedule) bool { return a.DurationMinutes < b.DurationMinutes }
	default:
		less = func(a, b models.EnrichedSchedule) bool { return a.MinPrice() < b.MinPrice() }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// FilterByClass keeps schedules offering a class named exactly class.
func FilterByClass(list []models.EnrichedSchedule, class string) []models.EnrichedSchedule {
	class = strings.TrimSpace(class)
	if class == "" || strings.EqualFold(class, "all") {
		return append([]models.EnrichedSchedule{}, list...)
	}
	out := []models.EnrichedSchedule{}
	for _, s := range list {
		if s.HasClass(class) {
			out = append(out, s)
		}
	}
	return out
}

// PrepareResults runs filter, enrich and class derivation once per search.
func PrepareResults(req models.SearchRequest, schedules []models.Schedule, ships []models.Ship, ports []models.Port, defaultLoc *time.Location) session.LegResults {
	enriched := EnrichSchedules(FilterSchedules(req, schedules, ports, defaultLoc), ships, ports)
	return session.LegResults{Schedules: enriched, Classes: AvailableClasses(enriched)}
}

// ArrangeResults applies the caller's sort and class filter to prepared
// results. The class list is always derived from the unfiltered set.
func ArrangeResults(leg session.LegResults, opts EngineOptions) EngineResult {
	sorted := SortSchedules(leg.Schedules, opts.Sort)
	return EngineResult{
		Schedules:        FilterByClass(sorted, opts.Class),
		AvailableClasses: append([]string{}, leg.Classes...),
	}
}

// RunEngine is the whole pipeline in one pure call.
func RunEngine(req models.SearchRequest, schedules []models.Schedule, ships []models.Ship, ports []models.Port, defaultLoc *time.Location, opts EngineOptions) EngineResult {
	return ArrangeResults(PrepareResults(req, schedules, ships, ports, defaultLoc), opts)
}
