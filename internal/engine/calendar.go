package engine

import (
	"encoding/json"
	"fmt"

	"github.com/tartampluch/go-bigh/internal/config"
)

// RibbonSlots is the number of positions on the weekday ribbon.
const RibbonSlots = config.DaysPerWeek

// maxRibbonDelta bounds the offset between a slot and today on a ribbon centered on today.
const maxRibbonDelta = RibbonSlots / 2

// monthDays holds the length of each month in a common year, indexed from January.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear applies the four-year rule only.
// The century and 400-year exceptions are deliberately left out, so the result
// is only correct until 2100; changing it would change what the face shows.
func IsLeapYear(year int) bool {
	return year%config.LeapYearCycle == 0
}

// MonthLength returns the number of days in month (1-12) of year.
func MonthLength(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return monthDays[1] + 1
	}
	return monthDays[month-1]
}

// previousMonth returns the month before (year, month), rolling over January.
func previousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// Arrow marks the seam between the last visible past day and the future part of the ribbon.
type Arrow uint8

const (
	ArrowNone Arrow = iota
	ArrowPastFuture
	ArrowFuturePast
)

var arrowNames = [...]string{"none", "past_future", "future_past"}

func (a Arrow) String() string {
	if int(a) < len(arrowNames) {
		return arrowNames[a]
	}
	return fmt.Sprintf("arrow(%d)", a)
}

// MarshalJSON encodes the arrow by name.
func (a Arrow) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// WeekdaySlot is one resolved position of the ribbon.
type WeekdaySlot struct {
	Position   int   `json:"position"`
	DayOfMonth int   `json:"day_of_month"`
	IsToday    bool  `json:"is_today"`
	Arrow      Arrow `json:"arrow"`

	// Delta is the signed day offset from today, always within [-3, 3].
	Delta int `json:"delta"`
}

// RibbonDay resolves which day of month is displayed at ribbon position for today,
// with the ribbon starting on firstDayOfWeek.
// position and firstDayOfWeek must be in 0..6; anything else is a programming error.
func RibbonDay(today BrokenTime, position, firstDayOfWeek int) WeekdaySlot {
	if position < 0 || position >= RibbonSlots {
		panic(fmt.Sprintf("%s: %d", config.ErrRibbonPosition, position))
	}
	if firstDayOfWeek < 0 || firstDayOfWeek >= RibbonSlots {
		panic(fmt.Sprintf("%s: %d", config.ErrFirstDayOfWeek, firstDayOfWeek))
	}

	effective := (today.Weekday - firstDayOfWeek + RibbonSlots) % RibbonSlots
	delta := position - effective
	for delta > maxRibbonDelta {
		delta -= RibbonSlots
	}
	for delta < -maxRibbonDelta {
		delta += RibbonSlots
	}

	slot := WeekdaySlot{
		Position:   position,
		DayOfMonth: shiftDay(today, delta),
		IsToday:    delta == 0,
		Delta:      delta,
	}

	switch {
	case delta == -maxRibbonDelta && position > 0:
		slot.Arrow = ArrowPastFuture
	case delta == maxRibbonDelta && position < RibbonSlots-1:
		slot.Arrow = ArrowFuturePast
	}
	return slot
}

// Ribbon resolves all seven positions.
func Ribbon(today BrokenTime, firstDayOfWeek int) [RibbonSlots]WeekdaySlot {
	var slots [RibbonSlots]WeekdaySlot
	for pos := range slots {
		slots[pos] = RibbonDay(today, pos, firstDayOfWeek)
	}
	return slots
}

// shiftDay applies delta to today's day of month, wrapping across month and year boundaries.
func shiftDay(today BrokenTime, delta int) int {
	day := today.Day + delta

	if day < 1 {
		year, month := previousMonth(today.Year, today.Month)
		return MonthLength(year, month) + day
	}

	if length := MonthLength(today.Year, today.Month); day > length {
		day %= length
		if day == 0 {
			day = 1
		}
	}
	return day
}
