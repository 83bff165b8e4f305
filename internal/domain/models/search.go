package models

import "strings"

type PassengerCategory string

const (
	PassengerAdult  PassengerCategory = "adult"
	PassengerSenior PassengerCategory = "senior"
	PassengerChild  PassengerCategory = "child"
	PassengerInfant PassengerCategory = "infant"
)

// PassengerCategories lists categories in display order.
var PassengerCategories = []PassengerCategory{PassengerAdult, PassengerSenior, PassengerChild, PassengerInfant}

func ParsePassengerCategory(s string) (PassengerCategory, bool) {
	switch PassengerCategory(strings.ToLower(strings.TrimSpace(s))) {
	case PassengerAdult, "adults", "dewasa":
		return PassengerAdult, true
	case PassengerSenior, "seniors", "lansia":
		return PassengerSenior, true
	case PassengerChild, "children", "anak":
		return PassengerChild, true
	case PassengerInfant, "infants", "bayi":
		return PassengerInfant, true
	}
	return "", false
}

type PassengerCounts struct {
	Adults   int `json:"adults"`
	Seniors  int `json:"seniors"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

func (p PassengerCounts) Total() int {
	return p.Adults + p.Seniors + p.Children + p.Infants
}

// FareEligible counts passengers able to travel on their own fare.
func (p PassengerCounts) FareEligible() int {
	return p.Adults + p.Seniors
}

func (p PassengerCounts) Get(cat PassengerCategory) int {
	switch cat {
	case PassengerAdult:
		return p.Adults
	case PassengerSenior:
		return p.Seniors
	case PassengerChild:
		return p.Children
	case PassengerInfant:
		return p.Infants
	}
	return 0
}

func (p PassengerCounts) With(cat PassengerCategory, n int) PassengerCounts {
	switch cat {
	case PassengerAdult:
		p.Adults = n
	case PassengerSenior:
		p.Seniors = n
	case PassengerChild:
		p.Children = n
	case PassengerInfant:
		p.Infants = n
	}
	return p
}

// SearchRequest is a validated trip query. Dates are calendar dates (YYYY-MM-DD).
type SearchRequest struct {
	DeparturePortID string          `json:"departure_port_id"`
	ArrivalPortID   string          `json:"arrival_port_id"`
	DepartureDate   string          `json:"departure_date"`
	ReturnDate      string          `json:"return_date,omitempty"`
	RoundTrip       bool            `json:"round_trip"`
	Passengers      PassengerCounts `json:"passengers"`
	VehicleClass    string          `json:"vehicle_class,omitempty"`
}

// ReturnLeg mirrors a round-trip request into its return sailing query.
func (r SearchRequest) ReturnLeg() SearchRequest {
	return SearchRequest{
		DeparturePortID: r.ArrivalPortID,
		ArrivalPortID:   r.DeparturePortID,
		DepartureDate:   r.ReturnDate,
		Passengers:      r.Passengers,
		VehicleClass:    r.VehicleClass,
	}
}

type SortKey string

const (
	SortByPrice    SortKey = "price"
	SortByTime     SortKey = "time"
	SortByDuration SortKey = "duration"
)

// ParseSortKey defaults to price, like the results page.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByTime:
		return SortByTime
	case SortByDuration:
		return SortByDuration
	default:
		return SortByPrice
	}
}
