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

// UserAgent identifies the HTTP client used for remote imports.
var UserAgent = "Go-AddressBook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Address Book"
	AppID             = "com.github.tartampluch.go-addressbook"
	KeyringService    = "com.github.tartampluch.go-addressbook"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
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
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDemo         = "demo"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescDemo     = "Start with a few sample contacts"
	MsgVersionOutput = "%s %s (commit %s, built %s) %s/%s\n"
)

// -----------------------------------------------------------------------------
// Import, Export & Undo
// -----------------------------------------------------------------------------

const (
	// UndoWindow bounds how long the undo affordance stays offered after an import.
	UndoWindow = 10 * time.Second

	// FavoriteYes and FavoriteNo are the spreadsheet literals for the favorite flag.
	FavoriteYes = "Yes"
	FavoriteNo  = "No"

	ExportFileName     = "contacts.xlsx"
	ExportVCardName    = "contacts.vcf"
	ExportSheetName    = "Contacts"
	DefaultCellAddress = "A1"
)

// Spreadsheet column headers, in export order.
const (
	ColFirstName      = "FirstName"
	ColLastName       = "LastName"
	ColPhone          = "Phone"
	ColEmail          = "Email"
	ColStreetAddress1 = "StreetAddress1"
	ColStreetAddress2 = "StreetAddress2"
	ColCity           = "City"
	ColState          = "State"
	ColZipCode        = "ZipCode"
	ColNotes          = "Notes"
	ColFavorite       = "Favorite"
)

// Columns lists the spreadsheet headers in the order they are written.
var Columns = []string{
	ColFirstName,
	ColLastName,
	ColPhone,
	ColEmail,
	ColStreetAddress1,
	ColStreetAddress2,
	ColCity,
	ColState,
	ColZipCode,
	ColNotes,
	ColFavorite,
}

// -----------------------------------------------------------------------------
// File Extensions
// -----------------------------------------------------------------------------

const (
	ExtXLSX  = ".xlsx"
	ExtXLS   = ".xls"
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Sorting
// -----------------------------------------------------------------------------

const (
	SortByName     = "name"
	SortByEmail    = "email"
	SortByFavorite = "favorite"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 760
	MainWindowHeight    = 560
	DialogWidth         = 520
	PreviewWindowWidth  = 640
	PreviewWindowHeight = 460
	SettingsWindowWidth = 560
	LayoutColumnsDouble = 2
	TablePlaceholder    = "Cell Content"
	FavoriteMark        = "★"
	NotFavoriteMark     = "☆"

	// Preference Keys
	PrefServerPort  = "server_port"
	PrefRemoteURL   = "remote_url"
	PrefRemoteUser  = "remote_user"
	PrefLanguage    = "language"
	PrefLastRun     = "last_run_version"
	PrefDefaultSort = "default_sort"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Translation Keys
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyWinPreview     = "win_preview_title"
	TKeyWinAdd         = "win_add_title"
	TKeyWinEdit        = "win_edit_title"
	TKeyBtnAdd         = "btn_add"
	TKeyBtnImport      = "btn_import"
	TKeyBtnImportURL   = "btn_import_url"
	TKeyBtnExport      = "btn_export"
	TKeyBtnExportVCard = "btn_export_vcard"
	TKeyBtnSettings    = "btn_settings"
	TKeyBtnUndo        = "btn_undo"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyBtnEdit        = "btn_edit"
	TKeyBtnDelete      = "btn_delete"
	TKeyBtnFavorite    = "btn_favorite"
	TKeyBtnImportSel   = "btn_import_selected"
	TKeyLblSearch      = "lbl_search"
	TKeyLblSortBy      = "lbl_sort_by"
	TKeySortName       = "sort_name"
	TKeySortEmail      = "sort_email"
	TKeySortFavorite   = "sort_favorite"
	TKeyLblFirstName   = "lbl_first_name"
	TKeyLblLastName    = "lbl_last_name"
	TKeyLblPhone       = "lbl_phone"
	TKeyLblEmail       = "lbl_email"
	TKeyLblStreet1     = "lbl_street_1"
	TKeyLblStreet2     = "lbl_street_2"
	TKeyLblCity        = "lbl_city"
	TKeyLblState       = "lbl_state"
	TKeyLblZip         = "lbl_zip"
	TKeyLblNotes       = "lbl_notes"
	TKeyLblFavorite    = "lbl_favorite"
	TKeyLblAddress     = "lbl_address"
	TKeyLblEmpty       = "lbl_empty"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_remote_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblFooter      = "lbl_footer"
	TKeyLblRemote      = "lbl_remote"
	TKeyLblFeed        = "lbl_feed"
	TKeyConfirmDelete  = "confirm_delete"     // Requires Name
	TKeyPreviewFound   = "preview_found"      // Requires Count
	TKeyPreviewSkipped = "preview_skipped"    // Requires Count
	TKeyPreviewSel     = "preview_selected"   // Requires Selected, Total
	TKeyImportDone     = "import_done"        // Requires Imported, Skipped
	TKeyImportAllDup   = "import_all_dup"     // Requires Skipped
	TKeyImportEmpty    = "import_empty"       // No placeholders
	TKeyImportFailed   = "import_failed"      // No placeholders
	TKeyFetchFailed    = "fetch_failed"       // No placeholders
	TKeyImportBusy     = "import_busy"        // No placeholders
	TKeyUndoDone       = "undo_done"          // No placeholders
	TKeyExportFailed   = "export_failed"      // No placeholders
	TKeyRemoteMissing  = "remote_missing"     // No placeholders
	TKeyTitleImport    = "title_import"       // Dialog title
	TKeyTitleExport    = "title_export"       // Dialog title
	TKeyErrNameReq     = "err_name_required"  // Form validation
	TKeyErrEmail       = "err_email_invalid"  // Form validation
	TKeyErrPortReq     = "err_port_required"  // Settings validation
	TKeyErrPortNum     = "err_port_number"    // Settings validation
	TKeyErrPortRange   = "err_port_range"     // Settings validation
	TKeyStatusCount    = "status_count"       // Requires Count
	TKeyStatusFeed     = "status_feed"        // Requires URL
	TKeyLblLanguage    = "lbl_language"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblDefaultSort = "lbl_default_sort"
	TKeyHelpRestart    = "help_restart"
	TKeyBtnClose       = "btn_close"
	TKeyBtnSelectAll   = "btn_select_all"
	TKeyBtnSelectNone  = "btn_select_none"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultPort     = "18081"
	DefaultLanguage = "en"
	DefaultSort     = SortByName
	MinPort         = 1
	MaxPort         = 65535
)

// SupportedLanguages lists the shipped message catalogs.
var SupportedLanguages = []string{"en"}

// -----------------------------------------------------------------------------
// Standards: vCard
// -----------------------------------------------------------------------------

const (
	VCardFavorite     = "X-FAVORITE"
	VCardTypeHome     = "home"
	VCardFavoriteTrue = "TRUE"
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
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteXLSX           = "/" + ExportFileName
	ChannelBufferSize   = 1
	AddrSeparator       = ":"
	FormatFeedURL       = "http://%s:%s/"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextVCard       = "text/vcard; charset=utf-8"
	MimeXLSX            = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeNoSniff         = "nosniff"
	MimeAnyFallback     = "*/*;q=0.1"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrDecode           = "failed to decode spreadsheet"
	ErrEncode           = "failed to encode spreadsheet"
	ErrNoSheet          = "workbook has no worksheet"
	ErrOpenWorkbook     = "failed to open workbook"
	ErrReadSheet        = "failed to read worksheet"
	ErrVCardDecode      = "failed to decode vCard stream"
	ErrVCardEncode      = "failed to encode vCard stream"
	ErrNotFound         = "contact not found"
	ErrImportBusy       = "an import is already in progress"
	ErrNameRequired     = "Name is required"
	ErrInvalidEmail     = "Invalid email address"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrFetchRequest     = "failed to create request"
	ErrFetchNetwork     = "network error during fetch"
	ErrFetchStatus      = "remote returned unexpected status"
	ErrFetchFailed      = "remote import download failed"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrExportFailed     = "export failed"
	ErrFeedRender       = "failed to render vCard feed"
	ErrKeyringSave      = "failed to save credentials to keyring"
	ErrRemoteURLMissing = "remote import URL is not configured"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Address book initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackImportDone   = "%d imported, %d duplicates skipped"
	FallbackImportAllDup = "0 imported, %d duplicates already exist"
	FallbackImportEmpty  = "No contacts found in the file."
	FallbackImportFailed = "Failed to import contacts. Please check the file format."
	FallbackFetchFailed  = "Failed to download contacts. Please check the URL and credentials."
	FallbackName         = "Unnamed"

	TitleStartupError = "Startup Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "vCard feed updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgImportStarted  = "Import started"
	MsgImportFinished = "Import finished"
	MsgImportRejected = "Import rejected while another is running"
	MsgImportStale    = "Candidates became duplicates before apply"
	MsgDecodeFailed   = "Spreadsheet decode failed"
	MsgUndoApplied    = "Import undone"
	MsgUndoExpired    = "Undo snapshot expired"
	MsgUndoAbsent     = "Undo requested without snapshot"
	MsgExportDone     = "Contacts exported"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedRow     = "Skipping blank row"
	MsgContactAdded   = "Contact added"
	MsgContactUpdated = "Contact updated"
	MsgContactDeleted = "Contact deleted"
	MsgFetchStart     = "Initiating spreadsheet download"
	MsgFetchStatus    = "Server returned error status"
	MsgFetchDownload  = "Spreadsheet downloading"
	MsgOpenWindow     = "Opening window"
	MsgSavePrefs      = "Saving preferences"
	MsgDemoSeeded     = "Seeded demo contacts"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent  = "component"
	LogKeyError      = "error"
	LogKeyURL        = "url"
	LogKeyStatus     = "status_code"
	LogKeyFile       = "file"
	LogKeyLang       = "lang"
	LogKeyKey        = "key"
	LogKeyPort       = "port"
	LogKeyUser       = "user"
	LogKeySizeBytes  = "size_bytes"
	LogKeyETag       = "etag"
	LogKeyCount      = "count"
	LogKeyID         = "id"
	LogKeyRows       = "rows"
	LogKeyImported   = "imported"
	LogKeyDuplicates = "duplicates"
	LogKeyRestored   = "restored"
	LogKeyDuration   = "duration_ms"
	LogKeyWindow     = "window"
	LogKeyStats      = "stats"
	LogKeyLength     = "content_length"

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
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompBook    = "book"
	CompImport  = "import"
	CompCodec   = "codec"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompI18n    = "i18n"
)
