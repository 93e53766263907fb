package config

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "go-date"
	AppDescription = "Strict date parsing and freezable current time."
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDescVersion  = "Show application version and exit."
	FlagDescDebug    = "Enable debug logging to stderr."
	FlagDescLang     = "Language used for error messages."
	FlagDescFreeze   = "Freeze the current time to this modifier while the command runs."
	FlagDescFormat   = "Date pattern, e.g. Y-m-d H:i:s or d/m/Y."
	FlagDescModifier = `Modifier expression, e.g. "tomorrow 08:00" or "-8 minutes".`
	FlagDescInput    = "Formatted date string to parse."
	FlagDescVCard    = "Print a vCard instead of an iCalendar object."
	FlagDescName     = "Calendar name or contact full name."

	CmdDescNow   = "Print the current instant."
	CmdDescAt    = "Print the current instant with a modifier applied."
	CmdDescParse = "Strictly parse a formatted date string."
	CmdDescStamp = "Print an iCalendar or vCard object stamped with the current instant."

	MsgVersionOutput = "%s version %s (%s, built %s)\n"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	// DefaultFreezeMarker is the test metadata tag that requests a frozen clock.
	DefaultFreezeMarker = "freezeTime"

	// TagPrefix is accepted (and ignored) in front of a marker, mirroring
	// annotation syntax such as "@freezeTime".
	TagPrefix = "@"

	DefaultLanguage = "en"
	DefaultPattern  = "Y-m-d H:i:s"
	DefaultCalName  = "go-date"
	DefaultCardName = "Frozen Time"

	// BaselineYear is the year of the instant that every parse starts from.
	BaselineYear = 1970

	// TwoDigitYearPivot splits two digit years: values below it are 20xx.
	TwoDigitYearPivot = 70
)

// SupportedLanguages defines the list of available message languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Pattern Tokens
// -----------------------------------------------------------------------------

const (
	TokenDayPadded   = 'd'
	TokenDay         = 'j'
	TokenDayShort    = 'D'
	TokenDayLong     = 'l'
	TokenDaySuffix   = 'S'
	TokenDayOfYear   = 'z'
	TokenMonthPadded = 'm'
	TokenMonth       = 'n'
	TokenMonthShort  = 'M'
	TokenMonthLong   = 'F'
	TokenYear        = 'Y'
	TokenYearShort   = 'y'
	TokenMeridian    = 'a'
	TokenMeridianUp  = 'A'
	TokenHour12      = 'g'
	TokenHour12Pad   = 'h'
	TokenHour24      = 'G'
	TokenHour24Pad   = 'H'
	TokenMinute      = 'i'
	TokenSecond      = 's'
	TokenMicro       = 'u'
	TokenMilli       = 'v'
	TokenUnix        = 'U'
	TokenZoneID      = 'e'
	TokenZoneAbbr    = 'T'
	TokenOffset      = 'O'
	TokenOffsetColon = 'P'
	TokenSeparator   = '#'
	TokenAnyByte     = '?'
	TokenAnyUntil    = '*'
	TokenResetAll    = '!'
	TokenResetRest   = '|'
	TokenTrailing    = '+'
	TokenEscape      = '\\'

	// SeparatorChars are the bytes matched by TokenSeparator.
	SeparatorChars = ";:/.,-()"
)

// -----------------------------------------------------------------------------
// Modifier Vocabulary
// -----------------------------------------------------------------------------

const (
	ModNow       = "now"
	ModToday     = "today"
	ModMidnight  = "midnight"
	ModNoon      = "noon"
	ModTomorrow  = "tomorrow"
	ModYesterday = "yesterday"
	ModAgo       = "ago"
	ModNext      = "next"
	ModLast      = "last"
	ModPrevious  = "previous"
	ModThis      = "this"
	ModFirst     = "first"
	ModDay       = "day"
	ModOf        = "of"
	ModAM        = "am"
	ModPM        = "pm"
	ModTimestamp = "@"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidFormat   = "date does not comply with format"
	ErrEmptyStack      = "can't pop frozen time from empty stack, maybe one too many calls to Unfreeze()?"
	ErrInvalidModifier = "invalid date modifier"

	// FormatInvalidFormat expects the pattern then the input.
	FormatInvalidFormat = `date must comply with format "%s" but "%s" given`
	// FormatInvalidModifier expects the modifier then the offending token.
	FormatInvalidModifier = `invalid date modifier "%s" near "%s"`

	ReasonTrailingData = "trailing data"
	ReasonDataMissing  = "data missing"
	ReasonInvalidDate  = "the parsed date was invalid"
	ReasonInvalidTime  = "the parsed time was invalid"
	ReasonUnexpected   = "unexpected data found"
	ReasonMeridian     = "meridian can only come after an hour has been found"
	ReasonUnknownZone  = "the timezone could not be found"
	ReasonUnknownText  = "text could not be recognised"

	ErrAppFailed      = "application failed unexpectedly"
	ErrFreezeModifier = "cannot freeze time"
	ErrUnfreeze       = "cannot unfreeze time"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrVCardEncode    = "failed to encode vCard data"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyErrInvalidFormat   = "err_invalid_format"   // Requires Pattern, Input
	TKeyErrInvalidModifier = "err_invalid_modifier" // Requires Modifier, Token
	TKeyErrEmptyStack      = "err_empty_stack"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//go-date//Stamp//EN"

	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropDTStamp    = "DTSTAMP"

	VCardVersion = "4.0"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgFrozen        = "Time frozen"
	MsgUnfrozen      = "Time unfrozen"
	MsgStackReset    = "Frozen time stack reset"
	MsgParseRejected = "Rejected formatted date"
	MsgHookFrozen    = "Test hook froze time"
	MsgHookSkipped   = "Test hook found no freeze marker"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyInstant   = "instant"
	LogKeyDepth     = "depth"
	LogKeyInput     = "input"
	LogKeyPattern   = "pattern"
	LogKeyReason    = "reason"
	LogKeyModifier  = "modifier"
	LogKeyTest      = "test"
	LogKeyMarker    = "marker"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyCommand   = "command"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompClock  = "clock"
	CompParser = "parser"
	CompHook   = "hook"
	CompI18n   = "i18n"
	CompStamp  = "stamp"
	CompMain   = "main"
)
