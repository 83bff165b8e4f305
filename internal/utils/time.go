package utils

import (
	"fmt"
	"strings"
	"time"
)

const LayoutDate = "2006-01-02"

var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// ParseDate parses YYYY-MM-DD in the given zone (UTC when nil).
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(LayoutDate, strings.TrimSpace(s), loc)
}

// ParseDateTime accepts RFC3339 or a local wall time ("YYYY-MM-DD HH:MM:SS",
// "YYYY-MM-DDTHH:MM", ...) interpreted in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	var lastErr error
	for _, layout := range localLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// DateIn returns the calendar date of t as observed in loc.
func DateIn(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(LayoutDate)
}

// LoadLocation resolves an IANA zone name, defaulting to Asia/Jakarta.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Asia/Jakarta"
	}
	return time.LoadLocation(name)
}

// FormatDateTime formats t as "YYYY-MM-DD HH:MM" in loc.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

// FormatDuration renders minutes as "Xj Ym" (jam/menit).
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dj", h)
	default:
		return fmt.Sprintf("%dj %dm", h, m)
	}
}
