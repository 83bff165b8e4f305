package models

import (
	"strings"
	"time"
	_ "time/tzdata" // port zones must resolve on hosts without zoneinfo
)

// Port is an embarkation/disembarkation point. Timezone is an IANA zone name;
// empty means the service default zone applies.
type Port struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Code     string `json:"code,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Location resolves the port timezone, falling back when unset or unknown.
func (p Port) Location(fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	name := strings.TrimSpace(p.Timezone)
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
