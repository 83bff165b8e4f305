package models

import (
	"errors"
	"math"
	"time"
)

type ScheduleStatus string

const (
	ScheduleScheduled ScheduleStatus = "scheduled"
	ScheduleOnTime    ScheduleStatus = "on_time"
	ScheduleDelayed   ScheduleStatus = "delayed"
	ScheduleCancelled ScheduleStatus = "cancelled"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleScheduled, ScheduleOnTime, ScheduleDelayed, ScheduleCancelled:
		return true
	}
	return false
}

// FareClass is a priced service tier of a sailing. AvailableSeats is informational.
type FareClass struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	AvailableSeats int    `json:"available_seats"`
}

// Schedule is one sailing of a ship between two ports.
type Schedule struct {
	ID              string         `json:"id"`
	ShipID          string         `json:"ship_id"`
	DeparturePortID string         `json:"departure_port_id"`
	ArrivalPortID   string         `json:"arrival_port_id"`
	DepartureTime   time.Time      `json:"departure_time"`
	ArrivalTime     time.Time      `json:"arrival_time"`
	DurationMinutes int            `json:"duration_minutes"`
	Classes         []FareClass    `json:"classes"`
	Status          ScheduleStatus `json:"status"`
}

// MinPrice returns the cheapest class price. Schedules without classes report
// math.MaxInt64 so they order last by price.
func (s Schedule) MinPrice() int64 {
	min := int64(math.MaxInt64)
	for _, c := range s.Classes {
		if c.Price < min {
			min = c.Price
		}
	}
	return min
}

func (s Schedule) Class(name string) (FareClass, bool) {
	for _, c := range s.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return FareClass{}, false
}

func (s Schedule) HasClass(name string) bool {
	_, ok := s.Class(name)
	return ok
}

// EnrichedSchedule is a Schedule with its references resolved for display.
// A reference that cannot be resolved stays nil.
type EnrichedSchedule struct {
	Schedule
	Ship          *Ship `json:"ship,omitempty"`
	DeparturePort *Port `json:"departure_port,omitempty"`
	ArrivalPort   *Port `json:"arrival_port,omitempty"`
}

// DefaultClasses is used when a schedule is created without classes.
func DefaultClasses() []FareClass {
	return []FareClass{
		{Name: "Economy", Price: 350000, AvailableSeats: 600},
		{Name: "Business", Price: 550000, AvailableSeats: 200},
		{Name: "VIP", Price: 850000, AvailableSeats: 50},
	}
}

// ResolveArrival derives a consistent arrival time and duration from either
// an explicit arrival time or a duration in minutes.
func ResolveArrival(dep, arr time.Time, minutes int) (time.Time, int, error) {
	switch {
	case !arr.IsZero() && arr.Before(dep):
		return time.Time{}, 0, errors.New("arrival_time sebelum departure_time")
	case !arr.IsZero():
		return arr, int(arr.Sub(dep).Minutes()), nil
	case minutes > 0:
		return dep.Add(time.Duration(minutes) * time.Minute), minutes, nil
	default:
		return time.Time{}, 0, errors.New("arrival_time atau duration_minutes wajib diisi")
	}
}
