package face

import (
	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/engine"
)

// RegionPlan is the fresh content of one region.
// An empty Glyphs slice clears the region.
type RegionPlan struct {
	Rect   Rect    `json:"rect"`
	Glyphs []Glyph `json:"glyphs"`
}

// Plan maps each recomposed region to its new content.
// Regions missing from Changes must be left untouched by the renderer.
type Plan struct {
	Time    engine.BrokenTime     `json:"time"`
	Changes map[Region]RegionPlan `json:"changes"`
}

// Changed returns the new content of r, or false when r is unchanged.
func (p Plan) Changed(r Region) (RegionPlan, bool) {
	rp, ok := p.Changes[r]
	return rp, ok
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Changes) == 0
}

// Compose recomposes the dirty regions for today.
// battery is a percentage in 0..100, or config.BatteryUnknown.
func Compose(today engine.BrokenTime, cfg Config, dirty RegionSet, battery int) Plan {
	plan := Plan{Time: today, Changes: make(map[Region]RegionPlan)}
	for _, r := range dirty.Members() {
		plan.Changes[r] = RegionPlan{
			Rect:   RegionRect(r),
			Glyphs: composeRegion(r, today, cfg, battery),
		}
	}
	return plan
}

func composeRegion(r Region, today engine.BrokenTime, cfg Config, battery int) []Glyph {
	switch r {
	case Seconds:
		return composeSeconds(today, cfg)
	case Minutes:
		return composeClockDigits(MinutesRect, today.Minute, true)
	case Hours:
		return composeClockDigits(HoursRect, DisplayHour(today.Hour, cfg.Hour12), cfg.LeadingZeroHour)
	case AmPm:
		return composeAmPm(today, cfg)
	case Weekday:
		return composeWeekday(today, cfg)
	case Date:
		return composeDate(today, cfg)
	case Battery:
		return composeBattery(cfg, battery)
	}
	return nil
}

// DisplayHour converts a 0-23 hour for display.
func DisplayHour(hour int, hour12 bool) int {
	if !hour12 {
		return hour
	}
	switch {
	case hour == 0:
		return 12
	case hour > 12:
		return hour - 12
	}
	return hour
}

// composeClockDigits lays out a two-cell number. The tens cell stays blank
// when it is zero and padding is off.
func composeClockDigits(area Rect, v int, pad bool) []Glyph {
	tensCell, unitsCell := digitCells(area)
	var glyphs []Glyph

	if tens := v / 10; tens != 0 || pad {
		g := Digit(tens)
		g.Rect = tensCell
		glyphs = append(glyphs, g)
	}
	units := Digit(v % 10)
	units.Rect = unitsCell
	return append(glyphs, units)
}

// SecondsBarLength is the bar length in pixels for second (0-59).
func SecondsBarLength(second int) int {
	return second * SecondsRect.W / 59
}

func composeSeconds(today engine.BrokenTime, cfg Config) []Glyph {
	if !cfg.ShowSeconds {
		return nil
	}
	length := SecondsBarLength(today.Second)
	if length == 0 {
		return nil
	}
	r := SecondsRect
	r.W = length
	return []Glyph{{Mark: MarkBar, Rect: r}}
}

func composeAmPm(today engine.BrokenTime, cfg Config) []Glyph {
	if !cfg.Hour12 {
		return nil
	}
	if today.Hour < 12 {
		return []Glyph{{Mark: MarkAM, Rect: AmPmRect}}
	}
	return []Glyph{{Mark: MarkPM, Rect: AmPmRect}}
}

func composeWeekday(today engine.BrokenTime, cfg Config) []Glyph {
	if cfg.WeekdayMode.Named() {
		return []Glyph{{Mark: MarkWeekdayLabel, Value: today.Weekday, Rect: WeekdayRect}}
	}

	var glyphs []Glyph
	for _, slot := range engine.Ribbon(today, cfg.FirstDayOfWeek) {
		area := ribbonSlotRect(slot.Position)
		if slot.IsToday {
			glyphs = append(glyphs, Glyph{Mark: MarkHighlight, Rect: area, Inverted: true})
		}

		digits := appendDigits(nil, slot.DayOfMonth, compactWidth(slot.DayOfMonth))
		for i, rect := range ribbonDigitRects(area, len(digits)) {
			g := digits[i]
			g.Rect = rect
			g.Inverted = slot.IsToday
			glyphs = append(glyphs, g)
		}

		switch slot.Arrow {
		case engine.ArrowPastFuture:
			glyphs = append(glyphs, Glyph{
				Mark: MarkArrowPastFuture,
				Rect: Rect{X: area.X, Y: area.Y - config.ArrowHeight/2, W: area.W, H: config.ArrowHeight},
			})
		case engine.ArrowFuturePast:
			glyphs = append(glyphs, Glyph{
				Mark: MarkArrowFuturePast,
				Rect: Rect{X: area.X, Y: area.Y + area.H - config.ArrowHeight/2, W: area.W, H: config.ArrowHeight},
			})
		}
	}
	return glyphs
}

func composeDate(today engine.BrokenTime, cfg Config) []Glyph {
	rows := cfg.DateFormat.Expand(today)
	top := DateRect.Y + config.DateTopInset + dateRowOffset(len(rows))
	for i := range rows {
		rows[i].Rect = Rect{
			X: DateRect.X,
			Y: top + i*config.DateRowH,
			W: DateRect.W,
			H: config.DateRowH,
		}
	}
	return rows
}

func composeBattery(cfg Config, battery int) []Glyph {
	if !cfg.ShowBattery || battery < 0 {
		return nil
	}
	if battery > config.BatteryFull {
		battery = config.BatteryFull
	}
	fill := battery * BatteryRect.H / config.BatteryFull
	if fill == 0 {
		return nil
	}
	r := BatteryRect
	r.Y += r.H - fill
	r.H = fill
	return []Glyph{{Mark: MarkBar, Rect: r}}
}
