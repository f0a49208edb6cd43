package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/settings"
	"github.com/zalando/go-keyring"
)

func TestSettingsWidgets_FilledFromStore(t *testing.T) {
	app, _ := setupTestApp(t)
	require.NoError(t, app.Store.SaveCredentials("alice", "s3cret"))

	sw := app.newSettingsWidgets(app.Store.Load())

	assert.Equal(t, "Week ribbon (numbers)", sw.modeSelect.Selected)
	assert.Len(t, sw.modeSelect.Options, len(config.WeekdayModes))
	assert.Equal(t, "0", sw.firstDay.Text)
	assert.Equal(t, config.DefaultDateFormat24h, sw.dateFormat.Text)
	assert.Equal(t, config.DefaultShowSeconds, sw.seconds.Checked)
	assert.Equal(t, config.DefaultClock24h, sw.clock24h.Checked)
	assert.Equal(t, "alice", sw.userEntry.Text)
	assert.Equal(t, "s3cret", sw.passEntry.Text, "password is pre-filled from the keyring")
}

func TestSaveSettings_Persists(t *testing.T) {
	app, _ := setupTestApp(t)
	sw := app.newSettingsWidgets(app.Store.Load())

	sw.modeSelect.SetSelected("Day name (French)")
	sw.firstDay.SetText("1")
	sw.dateFormat.SetText("Y-M-D")
	sw.clock24h.SetChecked(false)
	sw.vibrate.SetChecked(true)
	sw.battery.SetChecked(true)
	sw.userEntry.SetText("bob")
	sw.passEntry.SetText("hunter2")

	require.NoError(t, app.saveSettings(sw))

	want := settings.Settings{
		WeekdayMode:     config.WeekdayModeFrench,
		VibrateOnHour:   true,
		ShowSeconds:     config.DefaultShowSeconds,
		LeadingZeroHour: config.DefaultLeadingZero,
		FirstDayOfWeek:  1,
		DateFormat:      "Y-M-D",
		ShowBattery:     true,
		Clock24h:        false,
	}
	assert.Equal(t, want, app.Store.Load())
	assert.Equal(t, "bob", app.Store.SyncUser())

	pass, err := keyring.Get(config.KeyringService, "bob")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pass)
}

func TestSaveSettings_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*settingsWidgets)
		wantErr string
	}{
		{"first day too large", func(sw *settingsWidgets) { sw.firstDay.SetText("7") }, "between 0 (Sunday) and 6"},
		{"first day empty", func(sw *settingsWidgets) { sw.firstDay.SetText("") }, "between 0 (Sunday) and 6"},
		{"format too long", func(sw *settingsWidgets) { sw.dateFormat.SetText("Y-M-D-Y-M-") }, "limited to 9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t)
			sw := app.newSettingsWidgets(app.Store.Load())
			tt.mutate(sw)

			err := app.saveSettings(sw)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Equal(t, settings.Defaults(), app.Store.Load(), "nothing is written")
		})
	}
}

func TestSaveSettings_WithoutPasswordKeepsKeyring(t *testing.T) {
	app, _ := setupTestApp(t)
	sw := app.newSettingsWidgets(app.Store.Load())
	sw.userEntry.SetText("carol")

	require.NoError(t, app.saveSettings(sw))
	assert.Equal(t, "carol", app.Store.SyncUser())

	_, err := keyring.Get(config.KeyringService, "carol")
	assert.ErrorIs(t, err, keyring.ErrNotFound)
}

func TestShowSettingsWindow_Singleton(t *testing.T) {
	app, _ := setupTestApp(t)

	app.ShowSettingsWindow()
	first := app.SettingsWindow
	require.NotNil(t, first)
	assert.Equal(t, "Big H Settings", first.Title())

	app.ShowSettingsWindow()
	assert.Same(t, first, app.SettingsWindow, "a second call focuses the open window")

	first.Close()
	assert.Nil(t, app.SettingsWindow)
}
