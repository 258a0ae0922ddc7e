// Package format converts between the string and date/time representations
// used by forms, templates and the CSV import/export.
package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	FormTimeLayout = "15:04"
	DatetimeLayout = "2006-01-02 15:04:05.999999"
)

var ErrNotFinite = errors.New("number is not finite")

// ToFloat parses a decimal number, rejecting NaN and the infinities.
func ToFloat(value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", value, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("parse number %q: %w", value, ErrNotFinite)
	}
	return f, nil
}

func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// FormatTime renders a time of day the way forms and lists show it.
func FormatTime(t time.Time) string {
	return t.Format(FormTimeLayout)
}

func ToDate(value, layout string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return DateOf(t), nil
}

func ToTime(value, layout string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", value, err)
	}
	return TimeOf(t), nil
}

func ToDatetime(value, layout string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse datetime %q: %w", value, err)
	}
	return t.UTC(), nil
}

// DateOf drops the time of day, keeping the calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TimeOf keeps only the time of day, anchored on 1970-01-01 UTC.
func TimeOf(t time.Time) time.Time {
	return time.Date(1970, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// DaysBetween is the absolute number of calendar days between the two dates.
func DaysBetween(a, b time.Time) int {
	days := int(DateOf(a).Sub(DateOf(b)).Hours() / 24)
	if days < 0 {
		return -days
	}
	return days
}

// TimeOfDayMicros is the time of day in microseconds since midnight.
func TimeOfDayMicros(t time.Time) int64 {
	return int64(t.Hour())*int64(time.Hour/time.Microsecond) +
		int64(t.Minute())*int64(time.Minute/time.Microsecond) +
		int64(t.Second())*int64(time.Second/time.Microsecond) +
		int64(t.Nanosecond())/int64(time.Microsecond)
}

func TimeFromMicros(micros int64) time.Time {
	return time.Unix(0, 0).UTC().Add(time.Duration(micros) * time.Microsecond)
}
