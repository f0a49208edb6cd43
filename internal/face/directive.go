package face

import (
	"log/slog"

	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/engine"
)

// MaxDateRows is the number of glyph rows in the date strip.
const MaxDateRows = config.DateMaxRows

// DirectiveKind tags one unit of a parsed date format.
type DirectiveKind uint8

const (
	YearFull DirectiveKind = iota
	YearShort
	MonthZeroPadded
	MonthCompact
	DayZeroPadded
	DayCompact
	Separator
	Blank
)

// Directive is one parsed unit of a date format string.
// Mark is only meaningful for Separator.
type Directive struct {
	Kind DirectiveKind
	Mark Mark
}

// Format is a parsed date format, ready to be expanded for any date.
type Format []Directive

// ParseDateFormat turns a format string into directives.
//
//	Y  four-digit year        y  two-digit year
//	M  zero-padded month      m  month without padding
//	D  zero-padded day        d  day without padding
//	-  / .  separators        ' ' blank row
//
// Any other character is ignored. The result never holds more directives
// than the strip has rows.
func ParseDateFormat(s string) Format {
	var f Format
	for _, r := range s {
		var d Directive
		switch r {
		case 'Y':
			d = Directive{Kind: YearFull}
		case 'y':
			d = Directive{Kind: YearShort}
		case 'M':
			d = Directive{Kind: MonthZeroPadded}
		case 'm':
			d = Directive{Kind: MonthCompact}
		case 'D':
			d = Directive{Kind: DayZeroPadded}
		case 'd':
			d = Directive{Kind: DayCompact}
		case '-':
			d = Directive{Kind: Separator, Mark: MarkDash}
		case '/':
			d = Directive{Kind: Separator, Mark: MarkSlash}
		case '.':
			d = Directive{Kind: Separator, Mark: MarkDot}
		case ' ':
			d = Directive{Kind: Blank}
		default:
			continue
		}
		if len(f) == MaxDateRows {
			slog.Debug(config.MsgFormatTrunc,
				config.LogKeyComponent, config.CompFace,
				config.LogKeyFormat, s,
				config.LogKeyRows, MaxDateRows)
			break
		}
		f = append(f, d)
	}
	return f
}

// Expand emits the glyph marks of the format for today, capped at MaxDateRows.
// Rects are left empty; layout is applied by the composer.
func (f Format) Expand(today engine.BrokenTime) []Glyph {
	var rows []Glyph
	for _, d := range f {
		rows = d.appendGlyphs(rows, today)
	}
	if len(rows) > MaxDateRows {
		slog.Debug(config.MsgFormatTrunc,
			config.LogKeyComponent, config.CompFace,
			config.LogKeyRows, len(rows))
		rows = rows[:MaxDateRows]
	}
	return rows
}

func (d Directive) appendGlyphs(rows []Glyph, today engine.BrokenTime) []Glyph {
	switch d.Kind {
	case YearFull:
		return appendDigits(rows, today.Year, 4)
	case YearShort:
		return appendDigits(rows, today.Year%100, 2)
	case MonthZeroPadded:
		return appendDigits(rows, today.Month, 2)
	case MonthCompact:
		return appendDigits(rows, today.Month, compactWidth(today.Month))
	case DayZeroPadded:
		return appendDigits(rows, today.Day, 2)
	case DayCompact:
		return appendDigits(rows, today.Day, compactWidth(today.Day))
	case Separator:
		return append(rows, Glyph{Mark: d.Mark})
	case Blank:
		return append(rows, Glyph{Mark: MarkBlank})
	}
	return rows
}

func compactWidth(v int) int {
	if v < 10 {
		return 1
	}
	return 2
}

// appendDigits appends the low width decimal digits of v, most significant first.
func appendDigits(rows []Glyph, v, width int) []Glyph {
	div := 1
	for i := 1; i < width; i++ {
		div *= 10
	}
	for ; div > 0; div /= 10 {
		rows = append(rows, Digit((v/div)%10))
	}
	return rows
}
