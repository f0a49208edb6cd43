// Package settings persists the face configuration and applies sparse updates to it.
package settings

import (
	"log/slog"

	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/face"
	"github.com/tartampluch/go-bigh/internal/tick"
)

// Settings is the complete, durable face configuration.
type Settings struct {
	WeekdayMode     string `json:"weekday_mode"`
	VibrateOnHour   bool   `json:"vibrate_on_hour"`
	ShowSeconds     bool   `json:"show_seconds"`
	LeadingZeroHour bool   `json:"leading_zero_hour"`
	FirstDayOfWeek  int    `json:"first_day_of_week"`
	DateFormat      string `json:"date_format"`
	ShowBattery     bool   `json:"show_battery_indicator"`
	Clock24h        bool   `json:"clock_24h"`
}

// DefaultDateFormat is the date pattern used when none has been saved.
func DefaultDateFormat(clock24h bool) string {
	if clock24h {
		return config.DefaultDateFormat24h
	}
	return config.DefaultDateFormat12h
}

// Defaults returns the configuration used on first start.
func Defaults() Settings {
	return Settings{
		WeekdayMode:     config.DefaultWeekdayMode,
		VibrateOnHour:   config.DefaultVibrateOnHour,
		ShowSeconds:     config.DefaultShowSeconds,
		LeadingZeroHour: config.DefaultLeadingZero,
		FirstDayOfWeek:  config.DefaultFirstDayOfWeek,
		DateFormat:      DefaultDateFormat(config.DefaultClock24h),
		ShowBattery:     config.DefaultShowBattery,
		Clock24h:        config.DefaultClock24h,
	}
}

// Runtime converts the settings into the immutable configuration the
// scheduler and the composer work from. Values the core cannot accept
// fall back to their defaults.
func (s Settings) Runtime() tick.Config {
	log := slog.With(config.LogKeyComponent, config.CompSettings)

	mode, err := face.ParseWeekdayMode(s.WeekdayMode)
	if err != nil {
		log.Warn(config.MsgSettingsFallback, config.LogKeyKey, config.PrefWeekdayMode, config.LogKeyError, err)
		mode = face.ModeNumeric
	}

	fdow := s.FirstDayOfWeek
	if fdow < 0 || fdow >= config.DaysPerWeek {
		log.Warn(config.MsgSettingsFallback, config.LogKeyKey, config.PrefFirstDayOfWeek, config.LogKeyOld, fdow)
		fdow = config.DefaultFirstDayOfWeek
	}

	return tick.Config{
		Face: face.Config{
			WeekdayMode:     mode,
			FirstDayOfWeek:  fdow,
			DateFormat:      face.ParseDateFormat(s.DateFormat),
			LeadingZeroHour: s.LeadingZeroHour,
			Hour12:          !s.Clock24h,
			ShowSeconds:     s.ShowSeconds,
			ShowBattery:     s.ShowBattery,
		},
		VibrateOnHour: s.VibrateOnHour,
	}
}
