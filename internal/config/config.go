package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for settings sync.
var UserAgent = "Go-BigH/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Big H"
	AppID             = "com.github.tartampluch.go-bigh"
	KeyringService    = "com.github.tartampluch.go-bigh"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "face.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags, Environment & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion     = "version"
	FlagDebug       = "debug"
	FlagPort        = "port"
	FlagHeadless    = "headless"
	FlagSettingsURL = "settings-url"
	FlagBattery     = "battery"

	FlagDescVersion     = "Show application version and exit"
	FlagDescDebug       = "Enable debug logging to stdout"
	FlagDescPort        = "Port of the local face preview server"
	FlagDescHeadless    = "Run without the simulator window"
	FlagDescSettingsURL = "URL of a JSON settings document to sync on startup"
	FlagDescBattery     = "Battery source: 'sysfs' or a fixed percentage (0-100)"

	EnvPort        = "BIGH_PORT"
	EnvSettingsURL = "BIGH_SETTINGS_URL"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Preference Keys (durable face settings)
// -----------------------------------------------------------------------------

const (
	PrefWeekdayMode    = "weekday_mode"
	PrefVibrateOnHour  = "vibrate_on_hour"
	PrefShowSeconds    = "show_seconds"
	PrefLeadingZero    = "leading_zero_hour"
	PrefFirstDayOfWeek = "first_day_of_week"
	PrefDateFormat     = "date_format"
	PrefShowBattery    = "show_battery_indicator"
	PrefClock24h       = "clock_24h"
	PrefSyncUser       = "settings_sync_user"
	PrefLastRun        = "last_run_version"
)

// Weekday mode values as stored in preferences and sent by the web config page.
const (
	WeekdayModeNumeric = "numeric"
	WeekdayModeEnglish = "english"
	WeekdayModeFrench  = "french"
	WeekdayModeSpanish = "spanish"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultPort            = "18081"
	DefaultWeekdayMode     = WeekdayModeNumeric
	DefaultShowSeconds     = true
	DefaultLeadingZero     = false
	DefaultVibrateOnHour   = false
	DefaultFirstDayOfWeek  = 0
	DefaultShowBattery     = false
	DefaultClock24h        = true
	DefaultDateFormat24h   = "D.M.Y"
	DefaultDateFormat12h   = "M/D/Y"
	DefaultBatterySource   = "sysfs"
	MaxDateFormatLength    = 9
	DaysPerWeek            = 7
	FallbackLanguage       = "en"
	BatteryUnknown         = -1
	BatteryFull            = 100
	BatterySysfsGlob       = "/sys/class/power_supply/BAT*/capacity"
	GlyphSetCacheSize      = 2
	LeapYearCycle          = 4
	UnsupportedModeMessage = "unsupported weekday mode"
)

// -----------------------------------------------------------------------------
// Screen Geometry (144x168 panel)
// -----------------------------------------------------------------------------

const (
	ScreenWidth  = 144
	ScreenHeight = 168

	WeekdayX      = 0
	WeekdayY      = 0
	WeekdayWidth  = 14
	WeekdayHeight = ScreenHeight
	WeekdaySlotH  = WeekdayHeight / DaysPerWeek
	ArrowHeight   = 4

	DateX        = 135
	DateY        = 0
	DateWidth    = 9
	DateHeight   = ScreenHeight
	DateMaxRows  = 10
	DateRowH     = 16
	DateTopInset = (DateHeight - DateMaxRows*DateRowH) / 2

	AmPmX      = 71
	AmPmY      = 80
	AmPmWidth  = 7
	AmPmHeight = 12

	HoursX      = 15
	HoursY      = 0
	HoursWidth  = 118
	HoursHeight = 80

	MinutesX      = 15
	MinutesY      = 88
	MinutesWidth  = 118
	MinutesHeight = 80

	SecondsX      = 15
	SecondsY      = 85
	SecondsWidth  = 118
	SecondsHeight = 2

	BatteryX      = 14
	BatteryY      = 0
	BatteryWidth  = 1
	BatteryHeight = ScreenHeight

	// SimulatorScale magnifies the panel in the desktop window.
	SimulatorScale = 3
)

// -----------------------------------------------------------------------------
// Tick Granularity
// -----------------------------------------------------------------------------

const (
	TickSecond = time.Second
	TickMinute = time.Minute
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

// TKeyWeekdays lists the label keys indexed by weekday (0=Sunday).
var TKeyWeekdays = [DaysPerWeek]string{
	"weekday_sun",
	"weekday_mon",
	"weekday_tue",
	"weekday_wed",
	"weekday_thu",
	"weekday_fri",
	"weekday_sat",
}

const (
	TKeyWinFace        = "win_face_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyLblWeekdayMode = "lbl_weekday_mode"
	TKeyLblFirstDay    = "lbl_first_day"
	TKeyLblDateFormat  = "lbl_date_format"
	TKeyHelpDateFormat = "help_date_format"
	TKeyLblSeconds     = "lbl_show_seconds"
	TKeyLblLeadingZero = "lbl_leading_zero"
	TKeyLblVibrate     = "lbl_vibrate"
	TKeyLblBattery     = "lbl_battery"
	TKeyLblClock24h    = "lbl_clock_24h"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyBtnSettings    = "btn_settings"
	TKeyNotifHour      = "notif_hour"
	TKeyMenuFace       = "menu_face"
	TKeyMenuSettings   = "menu_settings"
	TKeyLblDisplay     = "lbl_display"
	TKeyLblClock       = "lbl_clock"
	TKeyLblSync        = "lbl_sync"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyHelpSync       = "help_sync"
	TKeyLblFooter      = "lbl_footer"
	TKeyModeNumeric    = "mode_numeric"
	TKeyModeEnglish    = "mode_english"
	TKeyModeFrench     = "mode_french"
	TKeyModeSpanish    = "mode_spanish"
	TKeyErrFirstDay    = "err_first_day"
	TKeyErrDateFormat  = "err_date_format"
)

// TKeyModes maps stored weekday mode values to their option label keys.
var TKeyModes = map[string]string{
	WeekdayModeNumeric: TKeyModeNumeric,
	WeekdayModeEnglish: TKeyModeEnglish,
	WeekdayModeFrench:  TKeyModeFrench,
	WeekdayModeSpanish: TKeyModeSpanish,
}

// WeekdayModes lists the stored mode values in menu order.
var WeekdayModes = []string{
	WeekdayModeNumeric,
	WeekdayModeEnglish,
	WeekdayModeFrench,
	WeekdayModeSpanish,
}

// ModeLanguages maps named weekday modes to their locale.
var ModeLanguages = map[string]string{
	WeekdayModeEnglish: "en",
	WeekdayModeFrench:  "fr",
	WeekdayModeSpanish: "es",
}

// -----------------------------------------------------------------------------
// iCalendar (ribbon feed)
// -----------------------------------------------------------------------------

const (
	ICalVersion  = "2.0"
	ICalProdid   = "-//Go BigH//Ribbon//EN"
	ICalCalName  = "Week Ribbon"
	ICalScale    = "GREGORIAN"
	ICalDomain   = "gobigh"
	FormatUID    = "ribbon-%04d%02d%02d@%s"
	FormatDayNum = "%d"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropCategories = "CATEGORIES"

	CategoryToday = "TODAY"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 15 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "1"
	MaxSettingsSize    = 64 * 1024
	SchemeHTTP         = "http"
	SchemeHTTPS        = "https"
	RouteRoot          = "/"
	RouteRibbon        = "/ribbon.ics"
	RouteSettings      = "/settings"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType    = "Content-Type"
	HeaderCacheControl   = "Cache-Control"
	HeaderETag           = "ETag"
	HeaderRetryAfter     = "Retry-After"
	HeaderXContentType   = "X-Content-Type-Options"
	HeaderUserAgent      = "User-Agent"
	HeaderAccept         = "Accept"
	HeaderIfNoneMatch    = "If-None-Match"
	MimeJSON             = "application/json"
	MimeTextCalendar     = "text/calendar; charset=utf-8"
	MimeNoSniff          = "nosniff"
	CacheControlPrivate  = "private, no-cache"
	FormatETag           = `"%s"`
	FormatETagGeneration = "%d"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrSettingsDecode   = "failed to decode settings update"
	ErrSettingsInvalid  = "settings update rejected"
	ErrSettingsFetch    = "failed to fetch settings"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrGlyphSet         = "failed to load glyph set"
	ErrGlyphCache       = "failed to create glyph set cache"
	ErrBatteryRead      = "failed to read battery level"
	ErrBatterySource    = "invalid battery source"
	ErrBatteryNone      = "no battery found"
	ErrRibbonPosition   = "ribbon position out of range"
	ErrFirstDayOfWeek   = "first day of week out of range"
	ErrRequestBuild     = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrUnexpectedStatus = "server returned unexpected status"
	ErrKeyringSave      = "failed to store password in keyring"
	ErrFrameEncode      = "failed to encode face frame"
	ErrTrayNotSupported = "system tray not supported on this platform"
	ErrLocNotInit       = "localizer not initialized"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Face initializing, please try again shortly."
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting      = "Starting application"
	MsgAppStop          = "Application stopped gracefully"
	MsgCtxCancel        = "Context cancelled, shutting down UI"
	MsgServerListen     = "HTTP server listening"
	MsgServerStop       = "Shutting down HTTP server..."
	MsgFrameUpdated     = "Face frame updated"
	MsgRunnerStart      = "Tick runner started"
	MsgRunnerStop       = "Tick runner stopping due to context cancellation"
	MsgGranularity      = "Updating tick granularity"
	MsgConfigSwapped    = "Face configuration replaced"
	MsgTick             = "Tick"
	MsgHaptic           = "Hour boundary pulse"
	MsgSettingsSaved    = "Settings update applied"
	MsgSettingsIgnore   = "Settings update discarded (not saved)"
	MsgSettingsSync     = "Settings synchronized from remote"
	MsgSyncPassFail     = "Password retrieval failed (might be empty)"
	MsgFormatTrunc      = "Date format truncated to display rows"
	MsgGlyphLoaded      = "Glyph set loaded"
	MsgGlyphReleased    = "Glyph set released"
	MsgLocaleSkip       = "Skipping non-locale file"
	MsgLocaleLoaded     = "Locale loaded successfully"
	MsgTransMissing     = "Missing translation key"
	MsgBatteryFailed    = "Battery level unavailable"
	MsgSettingsFallback = "Stored setting rejected, using default"
	MsgSyncFetching     = "Initiating settings download"
	MsgSyncBadStatus    = "Server returned error status"
	MsgSettingsRejected = "Settings update rejected"
	MsgLogWarning       = "Warning: %s at %s: %v\n"
	MsgLocaleBadName    = "Skipping locale with empty language code"
	MsgSettingsWinFocus = "Settings window already open, requesting focus"
	MsgSettingsWinOpen  = "Opening settings window"
	MsgSettingsUISave   = "Saving preferences"
	MsgHeadless         = "Running headless, simulator window disabled"
	MsgSyncFailed       = "Settings sync failed"
	TitleStartupError   = "Big H: Startup Error"
	MsgPortBusy         = "Could not start the preview server on port %s. Is the port already in use?"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyDirty     = "dirty"
	LogKeyTime      = "time"
	LogKeyFormat    = "format"
	LogKeyRows      = "rows"
	LogKeyLevel     = "level"
	LogKeyKeys      = "keys"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompFace     = "face"
	CompTick     = "tick"
	CompSettings = "settings"
	CompServer   = "server"
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompI18n     = "i18n"
	CompBattery  = "battery"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 420
	LayoutColumnsDouble = 2
	// GlyphTextRatio sizes text glyphs relative to their cell height.
	GlyphTextRatio    = 0.8
	FirstDayMaxDigits = 1
)

// -----------------------------------------------------------------------------
// Simulator Glyph Symbols
// -----------------------------------------------------------------------------

const (
	SymbolDash            = "-"
	SymbolSlash           = "/"
	SymbolDot             = "."
	SymbolArrowPastFuture = "\u25BD"
	SymbolArrowFuturePast = "\u25B3"
	SymbolAM              = "\u25B2"
	SymbolPM              = "\u25BC"
)
