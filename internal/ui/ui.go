package ui

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/face"
	"github.com/tartampluch/go-bigh/internal/server"
	"github.com/tartampluch/go-bigh/internal/settings"
	"github.com/tartampluch/go-bigh/internal/tick"
)

// FaceApp is the desktop simulator: a magnified face, a settings window and a tray menu.
// It is the hour pulse of the runner.
type FaceApp struct {
	App            fyne.App
	Window         fyne.Window
	SettingsWindow fyne.Window
	Preferences    fyne.Preferences
	I18nBundle     *i18n.Bundle
	Localizer      *i18n.Localizer
	Ctx            context.Context

	Store  *settings.Store
	Runner *tick.Runner
	Server *server.FaceServer
	View   *FaceView

	Tray desktop.App
	Menu *fyne.Menu

	TrayFaceItem     *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem
	settingsButton   *widget.Button

	SupportedLanguages []string
}

// NewFaceApp constructs the application and attaches it to the runner.
func NewFaceApp(a fyne.App, ctx context.Context, store *settings.Store, runner *tick.Runner, srv *server.FaceServer, glyphs face.GlyphLoader) *FaceApp {
	app := &FaceApp{
		App:         a,
		Preferences: a.Preferences(),
		Ctx:         ctx,
		Store:       store,
		Runner:      runner,
		Server:      srv,
		View:        NewFaceView(glyphs, runner),
	}
	runner.Renderers = append(runner.Renderers, app.View)
	runner.Haptic = app
	return app
}

// Run launches the preview server, the tick runner and the main UI loop.
func (app *FaceApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.ShowFaceWindow()

	go func() {
		_ = app.Runner.Run(app.Ctx)
	}()

	app.App.Run()
}

// watchPreferences relabels the UI after every saved change,
// since its language follows the weekday mode.
func (app *FaceApp) watchPreferences() {
	app.Store.OnChange(func(settings.Settings) {
		fyne.Do(func() {
			app.UpdateLocalizer()
			app.refreshLabels()
		})
	})
}

// Pulse announces the hour boundary. The desktop has no vibration motor.
func (app *FaceApp) Pulse() {
	app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifHour)))
}

// ShowFaceWindow displays the magnified face. Closing it quits the application.
func (app *FaceApp) ShowFaceWindow() {
	if app.Window != nil {
		app.Window.Show()
		app.Window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinFace))
	app.Window = w

	app.settingsButton = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	w.SetContent(container.NewBorder(nil, app.settingsButton, nil, nil, app.View.Content()))
	w.SetFixedSize(true)
	w.SetMaster()
	w.Show()
}

// setupTrayMenu constructs the system tray menu.
func (app *FaceApp) setupTrayMenu() {
	app.TrayFaceItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuFace), app.ShowFaceWindow)
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow)

	app.Menu = fyne.NewMenu(config.AppName, app.TrayFaceItem, app.TraySettingsItem)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// refreshLabels re-translates the labels that outlive a language change.
func (app *FaceApp) refreshLabels() {
	if app.Window != nil {
		app.Window.SetTitle(app.GetMsg(config.TKeyWinFace))
	}
	if app.settingsButton != nil {
		app.settingsButton.SetText(app.GetMsg(config.TKeyBtnSettings))
	}
	if app.Menu != nil {
		app.TrayFaceItem.Label = app.GetMsg(config.TKeyMenuFace)
		app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
		app.Menu.Refresh()
	}
}
