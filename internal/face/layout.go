package face

import "github.com/tartampluch/go-bigh/internal/config"

// Static destination rectangles of every region.
var (
	HoursRect   = Rect{X: config.HoursX, Y: config.HoursY, W: config.HoursWidth, H: config.HoursHeight}
	MinutesRect = Rect{X: config.MinutesX, Y: config.MinutesY, W: config.MinutesWidth, H: config.MinutesHeight}
	SecondsRect = Rect{X: config.SecondsX, Y: config.SecondsY, W: config.SecondsWidth, H: config.SecondsHeight}
	AmPmRect    = Rect{X: config.AmPmX, Y: config.AmPmY, W: config.AmPmWidth, H: config.AmPmHeight}
	WeekdayRect = Rect{X: config.WeekdayX, Y: config.WeekdayY, W: config.WeekdayWidth, H: config.WeekdayHeight}
	DateRect    = Rect{X: config.DateX, Y: config.DateY, W: config.DateWidth, H: config.DateHeight}
	BatteryRect = Rect{X: config.BatteryX, Y: config.BatteryY, W: config.BatteryWidth, H: config.BatteryHeight}
)

// RegionRect returns the rectangle a region owns.
func RegionRect(r Region) Rect {
	switch r {
	case Seconds:
		return SecondsRect
	case Minutes:
		return MinutesRect
	case Hours:
		return HoursRect
	case AmPm:
		return AmPmRect
	case Weekday:
		return WeekdayRect
	case Date:
		return DateRect
	case Battery:
		return BatteryRect
	}
	return Rect{}
}

// digitCells splits a clock region into its tens and units cells.
func digitCells(r Rect) (tens, units Rect) {
	half := r.W / 2
	tens = Rect{X: r.X, Y: r.Y, W: half, H: r.H}
	units = Rect{X: r.X + half, Y: r.Y, W: r.W - half, H: r.H}
	return tens, units
}

// dateRowOffset centers count rows in the date strip.
// An odd count gets an extra half row so it does not lean toward the top.
func dateRowOffset(count int) int {
	offset := (MaxDateRows - count) / 2 * config.DateRowH
	if count%2 == 1 {
		offset += config.DateRowH / 2
	}
	return offset
}

// ribbonSlotRect is the rectangle of one ribbon position.
func ribbonSlotRect(pos int) Rect {
	return Rect{
		X: WeekdayRect.X,
		Y: WeekdayRect.Y + pos*config.WeekdaySlotH,
		W: WeekdayRect.W,
		H: config.WeekdaySlotH,
	}
}

// ribbonDigitRects stacks one or two digit cells inside a slot, between the arrow seams.
func ribbonDigitRects(slot Rect, digits int) []Rect {
	cellH := (slot.H - config.ArrowHeight) / 2
	top := slot.Y + config.ArrowHeight/2
	if digits == 1 {
		return []Rect{{X: slot.X, Y: top + cellH/2, W: slot.W, H: cellH}}
	}
	return []Rect{
		{X: slot.X, Y: top, W: slot.W, H: cellH},
		{X: slot.X, Y: top + cellH, W: slot.W, H: cellH},
	}
}
