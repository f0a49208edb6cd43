package face

import (
	"fmt"

	"github.com/tartampluch/go-bigh/internal/config"
)

// WeekdayMode selects what the weekday strip shows.
type WeekdayMode uint8

const (
	// ModeNumeric shows the seven-day ribbon of day-of-month numbers.
	ModeNumeric WeekdayMode = iota
	ModeEnglish
	ModeFrench
	ModeSpanish
)

var modeNames = [...]string{
	ModeNumeric: config.WeekdayModeNumeric,
	ModeEnglish: config.WeekdayModeEnglish,
	ModeFrench:  config.WeekdayModeFrench,
	ModeSpanish: config.WeekdayModeSpanish,
}

// ParseWeekdayMode maps a stored setting value to a mode.
func ParseWeekdayMode(s string) (WeekdayMode, error) {
	for m, name := range modeNames {
		if name == s {
			return WeekdayMode(m), nil
		}
	}
	return ModeNumeric, fmt.Errorf("%s: %q", config.UnsupportedModeMessage, s)
}

func (m WeekdayMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", m)
}

// Named reports whether the strip shows a single localized label.
func (m WeekdayMode) Named() bool {
	return m != ModeNumeric
}

// Language returns the locale of a named mode, or "" for the numeric ribbon.
func (m WeekdayMode) Language() string {
	return config.ModeLanguages[m.String()]
}

func (m WeekdayMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *WeekdayMode) UnmarshalText(b []byte) error {
	v, err := ParseWeekdayMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
