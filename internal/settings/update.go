package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tartampluch/go-bigh/internal/config"
)

// Update is a sparse configuration change. Nil fields keep their stored value.
// Unknown keys are ignored.
type Update struct {
	WeekdayMode     *string `json:"weekday_mode" validate:"omitempty,oneof=numeric english french spanish"`
	VibrateOnHour   *bool   `json:"vibrate_on_hour"`
	ShowSeconds     *bool   `json:"show_seconds"`
	LeadingZeroHour *bool   `json:"leading_zero_hour"`
	FirstDayOfWeek  *int    `json:"first_day_of_week" validate:"omitempty,min=0,max=6"`
	DateFormat      *string `json:"date_format" validate:"omitempty,max=9"`
	ShowBattery     *bool   `json:"show_battery_indicator"`
	Clock24h        *bool   `json:"clock_24h"`

	// Saved is set to false by the configuration page when the user cancels.
	Saved *bool `json:"saved"`
}

// Discarded reports whether the sender asked for the update to be dropped.
func (u Update) Discarded() bool {
	return u.Saved != nil && !*u.Saved
}

// Keys lists the preference keys the update touches.
func (u Update) Keys() []string {
	var keys []string
	add := func(set bool, key string) {
		if set {
			keys = append(keys, key)
		}
	}
	add(u.WeekdayMode != nil, config.PrefWeekdayMode)
	add(u.VibrateOnHour != nil, config.PrefVibrateOnHour)
	add(u.ShowSeconds != nil, config.PrefShowSeconds)
	add(u.LeadingZeroHour != nil, config.PrefLeadingZero)
	add(u.FirstDayOfWeek != nil, config.PrefFirstDayOfWeek)
	add(u.DateFormat != nil, config.PrefDateFormat)
	add(u.ShowBattery != nil, config.PrefShowBattery)
	add(u.Clock24h != nil, config.PrefClock24h)
	return keys
}

// Validate checks every field the update carries.
func (u Update) Validate() error {
	v, _ := validatorInstance()
	if err := v.Struct(u); err != nil {
		return fmt.Errorf("%s: %s", config.ErrSettingsInvalid, validationMessage(err))
	}
	return nil
}

// DecodeUpdate reads and validates one JSON update from r.
func DecodeUpdate(r io.Reader) (Update, error) {
	var u Update
	dec := json.NewDecoder(io.LimitReader(r, config.MaxSettingsSize))
	if err := dec.Decode(&u); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Update{}, fmt.Errorf("%s: %w", config.ErrSettingsDecode, err)
	}
	if err := u.Validate(); err != nil {
		return Update{}, err
	}
	return u, nil
}
