// Package calendar holds the date helpers shared by timesheets and exports.
// Dates travel as ISO strings (YYYY-MM-DD) so they sort lexically.
package calendar

import (
	"errors"
	"math"
	"time"
)

const (
	ISODateLayout = "2006-01-02"
	SageLayout    = "02/01/2006"
	clockLayout   = "15:04"
)

var ErrClockOutBeforeClockIn = errors.New("clock_out must be after clock_in")

func ParseISODate(v string) (time.Time, error) {
	return time.Parse(ISODateLayout, v)
}

func FormatISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// ToSageDate renders an ISO date as dd/MM/yyyy. Values that are not ISO dates
// are returned unchanged.
func ToSageDate(iso string) string {
	t, err := ParseISODate(iso)
	if err != nil {
		return iso
	}
	return t.Format(SageLayout)
}

// InPeriod reports start <= date <= end using string comparison.
func InPeriod(date, start, end string) bool {
	return date >= start && date <= end
}

// WorkedHours returns (clockOut - clockIn - breakMins) in hours rounded to two
// decimals. Clock values are HH:MM on the same day.
func WorkedHours(clockIn, clockOut string, breakMins int) (float64, error) {
	in, err := time.Parse(clockLayout, clockIn)
	if err != nil {
		return 0, err
	}
	out, err := time.Parse(clockLayout, clockOut)
	if err != nil {
		return 0, err
	}
	if !out.After(in) {
		return 0, ErrClockOutBeforeClockIn
	}

	minutes := out.Sub(in).Minutes() - float64(breakMins)
	if minutes < 0 {
		minutes = 0
	}
	return math.Round(minutes/60*100) / 100, nil
}
