package timeutil

import (
	"time"
)

// EAT is East Africa Time (UTC+3), the payroll calendar for the company.
var EAT *time.Location

func init() {
	var err error
	EAT, err = time.LoadLocation("Africa/Addis_Ababa")
	if err != nil {
		// Fallback: create fixed zone if the tz database is unavailable
		EAT = time.FixedZone("EAT", 3*60*60) // UTC+3
	}
}

// Now returns the current time in EAT.
func Now() time.Time {
	return time.Now().In(EAT)
}

// ToEAT converts any time to EAT.
func ToEAT(t time.Time) time.Time {
	return t.In(EAT)
}

// ParseDate parses an ISO date (YYYY-MM-DD) in EAT.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, EAT)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns the start of day (00:00:00) in EAT for the given time.
func StartOfDay(t time.Time) time.Time {
	eat := t.In(EAT)
	return time.Date(eat.Year(), eat.Month(), eat.Day(), 0, 0, 0, 0, EAT)
}

// Common layouts
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)
