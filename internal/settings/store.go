package settings

import (
	"log/slog"
	"slices"
	"sync"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-bigh/internal/config"
)

// Store keeps the face settings in the application preferences.
// Whatever was last applied is reloaded verbatim on the next start.
type Store struct {
	prefs     fyne.Preferences
	mu        sync.Mutex
	listeners []func(Settings)
}

// NewStore wraps the preferences of a fyne application.
func NewStore(prefs fyne.Preferences) *Store {
	return &Store{prefs: prefs}
}

// Load reads the current settings, filling unset keys with their defaults.
// The default date format depends on the stored clock style.
func (s *Store) Load() Settings {
	clock24h := s.prefs.BoolWithFallback(config.PrefClock24h, config.DefaultClock24h)
	return Settings{
		WeekdayMode:     s.prefs.StringWithFallback(config.PrefWeekdayMode, config.DefaultWeekdayMode),
		VibrateOnHour:   s.prefs.BoolWithFallback(config.PrefVibrateOnHour, config.DefaultVibrateOnHour),
		ShowSeconds:     s.prefs.BoolWithFallback(config.PrefShowSeconds, config.DefaultShowSeconds),
		LeadingZeroHour: s.prefs.BoolWithFallback(config.PrefLeadingZero, config.DefaultLeadingZero),
		FirstDayOfWeek:  s.prefs.IntWithFallback(config.PrefFirstDayOfWeek, config.DefaultFirstDayOfWeek),
		DateFormat:      s.prefs.StringWithFallback(config.PrefDateFormat, DefaultDateFormat(clock24h)),
		ShowBattery:     s.prefs.BoolWithFallback(config.PrefShowBattery, config.DefaultShowBattery),
		Clock24h:        clock24h,
	}
}

// Apply validates u and writes the keys it carries.
// It returns false without touching the store when the update was discarded.
func (s *Store) Apply(u Update) (bool, error) {
	log := slog.With(config.LogKeyComponent, config.CompSettings)

	if u.Discarded() {
		log.Info(config.MsgSettingsIgnore)
		return false, nil
	}
	if err := u.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	if u.WeekdayMode != nil {
		s.prefs.SetString(config.PrefWeekdayMode, *u.WeekdayMode)
	}
	if u.VibrateOnHour != nil {
		s.prefs.SetBool(config.PrefVibrateOnHour, *u.VibrateOnHour)
	}
	if u.ShowSeconds != nil {
		s.prefs.SetBool(config.PrefShowSeconds, *u.ShowSeconds)
	}
	if u.LeadingZeroHour != nil {
		s.prefs.SetBool(config.PrefLeadingZero, *u.LeadingZeroHour)
	}
	if u.FirstDayOfWeek != nil {
		s.prefs.SetInt(config.PrefFirstDayOfWeek, *u.FirstDayOfWeek)
	}
	if u.DateFormat != nil {
		s.prefs.SetString(config.PrefDateFormat, *u.DateFormat)
	}
	if u.ShowBattery != nil {
		s.prefs.SetBool(config.PrefShowBattery, *u.ShowBattery)
	}
	if u.Clock24h != nil {
		s.prefs.SetBool(config.PrefClock24h, *u.Clock24h)
	}

	current := s.Load()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	log.Info(config.MsgSettingsSaved, config.LogKeyKeys, u.Keys())
	for _, fn := range listeners {
		fn(current)
	}
	return true, nil
}

// OnChange calls fn once per applied update, after every key of it is written.
func (s *Store) OnChange(fn func(Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Watch registers fn like OnChange and hands it the current settings right away,
// so an update applied before the registration is not missed.
func (s *Store) Watch(fn func(Settings)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	current := s.Load()
	s.mu.Unlock()
	fn(current)
}

// SyncUser returns the user name for the remote settings endpoint.
func (s *Store) SyncUser() string {
	return s.prefs.String(config.PrefSyncUser)
}

// SetSyncUser records the user name for the remote settings endpoint.
func (s *Store) SetSyncUser(user string) {
	s.prefs.SetString(config.PrefSyncUser, user)
}
