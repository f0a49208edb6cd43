package engine

import (
	"fmt"
	"time"
)

// BrokenTime is a local calendar time decomposed into its display fields.
// Weekday is taken as ground truth from the producer; nothing in this module re-derives it.
type BrokenTime struct {
	Year    int `json:"year"`
	Month   int `json:"month"`   // 1-12
	Day     int `json:"day"`     // 1-31
	Weekday int `json:"weekday"` // 0-6, 0=Sunday
	Hour    int `json:"hour"`    // 0-23
	Minute  int `json:"minute"`
	Second  int `json:"second"`
}

// FromTime breaks down t in its own location.
func FromTime(t time.Time) BrokenTime {
	return BrokenTime{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Weekday: int(t.Weekday()),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}
}

// Now reads the clock once and breaks the reading down.
func Now(c Clock) BrokenTime {
	return FromTime(c.Now())
}

// Valid reports whether every field lies within its natural range.
func (t BrokenTime) Valid() bool {
	return t.Month >= 1 && t.Month <= 12 &&
		t.Day >= 1 && t.Day <= MonthLength(t.Year, t.Month) &&
		t.Weekday >= 0 && t.Weekday <= 6 &&
		t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59
}

// SameDay reports whether both times fall on the same calendar date.
func (t BrokenTime) SameDay(o BrokenTime) bool {
	return t.Year == o.Year && t.Month == o.Month && t.Day == o.Day
}

// SameHour reports whether both times fall within the same clock hour.
func (t BrokenTime) SameHour(o BrokenTime) bool {
	return t.SameDay(o) && t.Hour == o.Hour
}

// SameMinute reports whether both times fall within the same clock minute.
func (t BrokenTime) SameMinute(o BrokenTime) bool {
	return t.SameHour(o) && t.Minute == o.Minute
}

func (t BrokenTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
}
