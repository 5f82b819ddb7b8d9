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

// UserAgent is the browser-identifying header sent to the event catalog.
// CTFtime rejects requests carrying the default Go client User-Agent.
var UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_11_5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/50.0.2661.102 Safari/537.36"

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "go-ctfcal"
	LocalhostBindAddr = "127.0.0.1"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeUsage   = 2
)

// -----------------------------------------------------------------------------
// File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermCalendar represents -rw-r--r--. Calendar files are meant to be
	// imported by other applications.
	FilePermCalendar fs.FileMode = 0644

	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDays        = "days"
	FlagDaysShort   = "d"
	FlagWeight      = "weight"
	FlagWeightShort = "w"
	FlagOutput      = "output"
	FlagOutputShort = "o"
	FlagLang        = "lang"
	FlagLangShort   = "l"
	FlagServe       = "serve"
	FlagServeShort  = "s"
	FlagVersion     = "version"
	FlagDebug       = "debug"

	FlagDescDays    = "Number of days for the time window (required)"
	FlagDescWeight  = "If > 0.0, only CTFs whose weight is lower than or equal to this value are saved"
	FlagDescOutput  = "Output calendar file name (the .ics suffix is appended)"
	FlagDescLang    = "Language of generated texts (en, fr)"
	FlagDescServe   = "After writing, serve the calendar file on this localhost port"
	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgUsageHeader   = "Usage: %s -d <days> [-w <weight>] [-o <output>]\n"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultEndpoint    = "https://ctftime.org/api/v1/events/"
	DefaultLanguage    = "en"
	DefaultCalendar    = "calendar.ics"
	DefaultMaxWeight   = 0.0
	CalendarExt        = ".ics"
	ResultLimit        = 100
	NoWeightFilter     = 0.0
	UIDNamespaceSuffix = "@" + AppName

	// EnvLang is also read before flag parsing completes, for the usage text.
	EnvLang = "CTFCAL_LANG"

	// FormatUIDInput feeds the name-based UUID: title, start (RFC 3339), url.
	FormatUIDInput = "%s|%s|%s"
)

// SupportedLanguages defines the list of available languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Query Parameters (CTFtime API)
// -----------------------------------------------------------------------------

const (
	QueryLimit  = "limit"
	QueryStart  = "start"
	QueryFinish = "finish"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//go-ctfcal//Engine//EN"
	ICalCalName = "CTF events"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropURL         = "URL"
	PropDescription = "DESCRIPTION"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// DateFormatEntry is the local wall-clock rendering of CalendarEntry times.
	DateFormatEntry = "2006-01-02 15:04"

	// Layouts accepted for event timestamps. Layouts without an offset are read as UTC.
	DateFormatRFC3339    = time.RFC3339Nano
	DateFormatISONoZone  = "2006-01-02T15:04:05"
	DateFormatSpaceNoTZ  = "2006-01-02 15:04:05"
	DateFormatISOMinutes = "2006-01-02T15:04"
	DateFormatSpaceMin   = "2006-01-02 15:04"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderAccept          = "Accept"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeJSON            = "application/json"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrRemoteFetch      = "event source returned an unexpected status"
	ErrMalformed        = "malformed event listing"
	ErrFileWrite        = "failed to write calendar file"
	ErrMissingField     = "missing field"
	ErrFieldType        = "invalid field value"
	ErrTimestamp        = "unparsable timestamp"
	ErrFetcherMissing   = "internal error: event fetcher is not initialized"
	ErrClockMissing     = "internal error: clock is not initialized"
	ErrNegativeWindow   = "days must be zero or positive"
	ErrDaysRequired     = "the -d/--days flag is required"
	ErrEndpointEmpty    = "configuration error: event endpoint is empty"
	ErrTimeoutInvalid   = "configuration error: HTTP timeout must be positive"
	ErrSettings         = "failed to load settings"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrRequest          = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrCalendarRead     = "failed to read calendar file"
	ErrAppFailed        = "application failed"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrMaxProcs         = "failed to set GOMAXPROCS"
	ErrUnsupportedTrans = "unsupported language, falling back to default"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackDescription = "For more info see: %s"
	FallbackFetchFailed = "[X] Something went wrong!"

	// StubVCalendar is the minimal valid iCalendar object used when no events survive filtering.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:" + ICalVersion + "\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application finished"
	MsgRunStarted    = "Calendar export started"
	MsgRunFinished   = "Calendar export finished"
	MsgFetchStart    = "Requesting event listing"
	MsgFetchBadCode  = "Event source returned error status"
	MsgFetchDone     = "Event listing received"
	MsgEventFiltered = "Event dropped by weight filter"
	MsgCalendarWrite = "Calendar file written"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgMaxProcs      = "GOMAXPROCS adjusted"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyEvtDescription = "event_description" // Requires URL
	TKeyErrFetch       = "err_fetch"
	TKeyMsgWritten     = "msg_calendar_written" // Requires Count, File
	TKeyAppDesc        = "app_description"
	TKeyAppEpilog      = "app_epilog"
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
	LogKeyDays      = "days"
	LogKeyMaxWeight = "max_weight"
	LogKeyWeight    = "weight"
	LogKeyTitle     = "title"
	LogKeyStart     = "window_start"
	LogKeyFinish    = "window_finish"
	LogKeyFetched   = "events_fetched"
	LogKeyKept      = "events_kept"
	LogKeyCreated   = "created"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyStats     = "stats"
	LogKeyDuration  = "duration_ms"
	LogKeyMessage   = "message"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "build_date"
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
	CompEngine  = "engine"
	CompFetcher = "fetcher"
	CompWriter  = "writer"
	CompServer  = "server"
	CompMain    = "main"
	CompI18n    = "i18n"
)
