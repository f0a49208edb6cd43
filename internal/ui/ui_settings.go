package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/settings"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	modeSelect  *widget.Select
	firstDay    *DigitEntry
	dateFormat  *widget.Entry
	seconds     *widget.Check
	leadingZero *widget.Check
	vibrate     *widget.Check
	battery     *widget.Check
	clock24h    *widget.Check
	userEntry   *widget.Entry
	passEntry   *widget.Entry

	// modeValues maps the translated option labels back to stored values.
	modeValues map[string]string
}

// ShowSettingsWindow displays the configuration dialog.
func (app *FaceApp) ShowSettingsWindow() {
	if app.SettingsWindow != nil {
		slog.Debug(config.MsgSettingsWinFocus, config.LogKeyComponent, config.CompUISet)
		app.SettingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsWinOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.SettingsWindow = w

	sw := app.newSettingsWidgets(app.Store.Load())

	// --- Display ---
	itemMode := widget.NewFormItem(app.GetMsg(config.TKeyLblWeekdayMode), sw.modeSelect)
	itemFirstDay := widget.NewFormItem(app.GetMsg(config.TKeyLblFirstDay), sw.firstDay)
	itemFormat := widget.NewFormItem(app.GetMsg(config.TKeyLblDateFormat), sw.dateFormat)
	itemFormat.HintText = app.GetMsg(config.TKeyHelpDateFormat)
	displayCard := widget.NewCard(app.GetMsg(config.TKeyLblDisplay), "",
		widget.NewForm(itemMode, itemFirstDay, itemFormat))

	// --- Clock ---
	clockCard := widget.NewCard(app.GetMsg(config.TKeyLblClock), "", container.NewVBox(
		sw.clock24h, sw.leadingZero, sw.seconds, sw.vibrate, sw.battery,
	))

	// --- Sync ---
	itemUser := widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry)
	itemUser.HintText = app.GetMsg(config.TKeyHelpSync)
	itemPass := widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry)
	syncCard := widget.NewCard(app.GetMsg(config.TKeyLblSync), "", widget.NewForm(itemUser, itemPass))

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := app.saveSettings(sw); err != nil {
			dialog.ShowError(err, w)
			return
		}
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		displayCard,
		clockCard,
		syncCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.SettingsWindow = nil })
	w.Show()
}

// newSettingsWidgets builds the form controls, filled from s.
func (app *FaceApp) newSettingsWidgets(s settings.Settings) *settingsWidgets {
	sw := &settingsWidgets{modeValues: make(map[string]string, len(config.WeekdayModes))}

	options := make([]string, 0, len(config.WeekdayModes))
	for _, mode := range config.WeekdayModes {
		label := app.GetMsg(config.TKeyModes[mode])
		sw.modeValues[label] = mode
		options = append(options, label)
	}
	sw.modeSelect = widget.NewSelect(options, nil)
	sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModes[s.WeekdayMode]))

	sw.firstDay = NewDigitEntry(config.FirstDayMaxDigits)
	sw.firstDay.SetText(strconv.Itoa(s.FirstDayOfWeek))
	sw.firstDay.Validator = func(text string) error {
		d, err := strconv.Atoi(text)
		if err != nil || d < 0 || d >= config.DaysPerWeek {
			return errors.New(app.GetMsg(config.TKeyErrFirstDay))
		}
		return nil
	}

	sw.dateFormat = widget.NewEntry()
	sw.dateFormat.SetText(s.DateFormat)
	sw.dateFormat.Validator = func(text string) error {
		if utf8.RuneCountInString(text) > config.MaxDateFormatLength {
			return errors.New(app.GetMsg(config.TKeyErrDateFormat))
		}
		return nil
	}

	sw.clock24h = widget.NewCheck(app.GetMsg(config.TKeyLblClock24h), nil)
	sw.clock24h.SetChecked(s.Clock24h)
	sw.leadingZero = widget.NewCheck(app.GetMsg(config.TKeyLblLeadingZero), nil)
	sw.leadingZero.SetChecked(s.LeadingZeroHour)
	sw.seconds = widget.NewCheck(app.GetMsg(config.TKeyLblSeconds), nil)
	sw.seconds.SetChecked(s.ShowSeconds)
	sw.vibrate = widget.NewCheck(app.GetMsg(config.TKeyLblVibrate), nil)
	sw.vibrate.SetChecked(s.VibrateOnHour)
	sw.battery = widget.NewCheck(app.GetMsg(config.TKeyLblBattery), nil)
	sw.battery.SetChecked(s.ShowBattery)

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Store.SyncUser())
	sw.passEntry = widget.NewPasswordEntry()
	// Attempt to pre-fill password from secure storage
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}
	return sw
}

// update reads the form into a complete settings update.
func (sw *settingsWidgets) update() (settings.Update, error) {
	if err := sw.firstDay.Validate(); err != nil {
		return settings.Update{}, err
	}
	if err := sw.dateFormat.Validate(); err != nil {
		return settings.Update{}, err
	}

	firstDay, _ := strconv.Atoi(sw.firstDay.Text)
	mode, ok := sw.modeValues[sw.modeSelect.Selected]
	if !ok {
		mode = config.DefaultWeekdayMode
	}
	format := sw.dateFormat.Text
	vibrate, seconds, leadingZero := sw.vibrate.Checked, sw.seconds.Checked, sw.leadingZero.Checked
	battery, clock24h := sw.battery.Checked, sw.clock24h.Checked
	saved := true

	return settings.Update{
		WeekdayMode:     &mode,
		VibrateOnHour:   &vibrate,
		ShowSeconds:     &seconds,
		LeadingZeroHour: &leadingZero,
		FirstDayOfWeek:  &firstDay,
		DateFormat:      &format,
		ShowBattery:     &battery,
		Clock24h:        &clock24h,
		Saved:           &saved,
	}, nil
}

// saveSettings persists the form. The runner and the labels follow through the store's change listener.
func (app *FaceApp) saveSettings(sw *settingsWidgets) error {
	slog.Info(config.MsgSettingsUISave, config.LogKeyComponent, config.CompUISet)

	u, err := sw.update()
	if err != nil {
		return err
	}
	if _, err := app.Store.Apply(u); err != nil {
		return err
	}

	// Save password to Keyring only if provided
	user, pass := sw.userEntry.Text, sw.passEntry.Text
	if user != "" && pass != "" {
		if err := app.Store.SaveCredentials(user, pass); err != nil {
			slog.Error(config.ErrKeyringSave,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUISet)
		}
	} else {
		app.Store.SetSyncUser(user)
	}
	return nil
}
