package engine

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-bigh/internal/config"
)

// SlotDate returns the full calendar date a ribbon slot stands for.
// The day comes from the slot; the month is inferred from the direction of the offset.
func SlotDate(today BrokenTime, slot WeekdaySlot) (year, month, day int) {
	year, month, day = today.Year, today.Month, slot.DayOfMonth
	switch {
	case slot.Delta < 0 && slot.DayOfMonth > today.Day:
		year, month = previousMonth(today.Year, today.Month)
	case slot.Delta > 0 && slot.DayOfMonth < today.Day:
		if month == 12 {
			year, month = year+1, 1
		} else {
			month++
		}
	}
	return year, month, day
}

// RibbonCalendar encodes the seven ribbon days as all-day iCalendar events.
// stamp is written as DTSTAMP on every event.
func RibbonCalendar(today BrokenTime, firstDayOfWeek int, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(stamp.UTC())

	for _, slot := range Ribbon(today, firstDayOfWeek) {
		year, month, day := SlotDate(today, slot)

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, year, month, day, config.ICalDomain))
		event.Props.SetText(config.PropSummary, fmt.Sprintf(config.FormatDayNum, slot.DayOfMonth))
		if slot.IsToday {
			event.Props.SetText(config.PropCategories, config.CategoryToday)
		}

		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDate(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
		event.Props.Set(dtStart)
		event.Props.Set(dtStamp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}
