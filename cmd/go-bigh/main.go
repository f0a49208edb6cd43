package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"github.com/tartampluch/go-bigh/internal/battery"
	"github.com/tartampluch/go-bigh/internal/config"
	"github.com/tartampluch/go-bigh/internal/engine"
	"github.com/tartampluch/go-bigh/internal/face"
	"github.com/tartampluch/go-bigh/internal/server"
	"github.com/tartampluch/go-bigh/internal/settings"
	"github.com/tartampluch/go-bigh/internal/tick"
	"github.com/tartampluch/go-bigh/internal/ui"
)

// options gathers the command line, after environment defaults are applied.
type options struct {
	port        string
	headless    bool
	settingsURL string
	battery     string
}

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. Environment & CLI Argument Parsing
	// -------------------------------------------------------------------------
	_ = godotenv.Load()

	var opts options
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flag.StringVar(&opts.port, config.FlagPort, envOr(config.EnvPort, config.DefaultPort), config.FlagDescPort)
	flag.BoolVar(&opts.headless, config.FlagHeadless, false, config.FlagDescHeadless)
	flag.StringVar(&opts.settingsURL, config.FlagSettingsURL, os.Getenv(config.EnvSettingsURL), config.FlagDescSettingsURL)
	flag.StringVar(&opts.battery, config.FlagBattery, config.DefaultBatterySource, config.FlagDescBattery)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the face pipeline: preferences, runner, preview server and, unless headless, the simulator.
func run(ctx context.Context, opts options) error {
	// The Fyne app owns the durable preferences even when no window is shown.
	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	batt, err := battery.Parse(opts.battery)
	if err != nil {
		return err
	}

	store := settings.NewStore(a.Preferences())
	srv := server.NewFaceServer(opts.port, nil, store)
	runner := tick.NewRunner(engine.RealClock{}, store.Load().Runtime(), srv)
	runner.Battery = batt
	srv.Source = runner

	// Registered before the sync starts so no applied update can be missed.
	store.Watch(func(s settings.Settings) {
		runner.SetConfig(s.Runtime())
	})

	if opts.settingsURL != "" {
		go syncSettings(ctx, settings.NewSyncer(store), opts.settingsURL)
	}

	if opts.headless {
		return runHeadless(ctx, runner, srv)
	}

	glyphs, err := face.NewGlyphs()
	if err != nil {
		return err
	}
	gui := ui.NewFaceApp(a, ctx, store, runner, srv, glyphs)

	// Lifecycle Bridge:
	// Watch for context cancellation to quit the UI gracefully.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		fyne.Do(a.Quit)
	}()

	// Start the Application (blocks until the face window closes).
	gui.Run()
	return nil
}

// runHeadless serves the face without any window until ctx is cancelled.
func runHeadless(ctx context.Context, runner *tick.Runner, srv *server.FaceServer) error {
	slog.Info(config.MsgHeadless, config.LogKeyComponent, config.CompMain)

	errc := make(chan error, 2)
	go func() { errc <- srv.Start(ctx) }()
	go func() { errc <- runner.Run(ctx) }()

	for range 2 {
		if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}

// syncSettings pulls the remote settings document once.
func syncSettings(ctx context.Context, syncer *settings.Syncer, url string) {
	if _, err := syncer.Sync(ctx, url); err != nil {
		slog.Error(config.MsgSyncFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyURL, url,
			config.LogKeyError, err)
	}
}

// envOr returns the environment value of key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stdout}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts)))

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
