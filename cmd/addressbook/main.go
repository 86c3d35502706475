package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-addressbook/internal/addressbook"
	"github.com/tartampluch/go-addressbook/internal/codec"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/server"
	"github.com/tartampluch/go-addressbook/internal/ui"
)

// options are the parsed command-line switches.
type options struct {
	version bool
	debug   bool
	demo    bool
}

// main is the application entry point.
// It delegates to runMain so that deferred calls (closing the log file) run
// before the process exits; os.Exit skips defers.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle and returns the process exit code.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	opts := parseFlags()
	if opts.version {
		printVersion(os.Stdout)
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// Configured before anything else so startup failures are captured.
	if logFile := setupLogging(opts.debug); logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	// The root context is cancelled on SIGINT (Ctrl+C) or SIGTERM.
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

// parseFlags reads the command line into options.
func parseFlags() options {
	var o options
	flag.BoolVar(&o.version, config.FlagVersion, false, config.FlagDescVersion)
	flag.BoolVar(&o.debug, config.FlagDebug, false, config.FlagDescDebug)
	flag.BoolVar(&o.demo, config.FlagDemo, false, config.FlagDescDemo)
	flag.Parse()
	return o
}

// run wires the Book, feed server and fetcher into the UI and blocks until
// the main window closes or ctx is cancelled.
func run(ctx context.Context, opts options) error {
	a := app.NewWithID(config.AppID)

	// Record the version for migration logic in later releases.
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	// Dependency Injection: the Book is the single source of truth; the feed
	// server and the UI both observe it.
	book := addressbook.NewBook(addressbook.NewID)
	if opts.demo {
		seedDemo(book)
	}

	// The port is read once; changing it in Settings takes effect on restart.
	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	gui := ui.NewAddressBookApp(a, ctx, book, server.NewContactFeedServer(port), codec.NewHTTPFetcher())

	// Lifecycle Bridge: quit the UI when the root context is cancelled.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	// Blocks until the main window closes.
	gui.Run()
	return nil
}

// seedDemo fills an empty Book with the sample contacts used for -demo.
func seedDemo(book *addressbook.Book) {
	for _, c := range demoContacts {
		book.Add(c)
	}
	slog.Info(config.MsgDemoSeeded,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyCount, book.Len())
}

// demoContacts are the sample entries seeded by -demo.
var demoContacts = []addressbook.Contact{
	{
		FirstName: "John", LastName: "Doe", Phone: "(555) 123-4567", Email: "john.doe@example.com",
		StreetAddress1: "123 Main St", City: "Anytown", State: "CA", ZipCode: "12345",
		Notes: "Work colleague", Favorite: true,
	},
	{
		FirstName: "Jane", LastName: "Smith", Phone: "(555) 987-6543", Email: "jane.smith@example.com",
		StreetAddress1: "456 Oak Ave", City: "Somewhere", State: "NY", ZipCode: "67890",
		Notes: "College friend",
	},
	{
		FirstName: "Alex", LastName: "Johnson", Phone: "(555) 456-7890", Email: "alex.johnson@example.com",
		StreetAddress1: "789 Pine Rd", StreetAddress2: "Apt 3C", City: "Elsewhere", State: "TX", ZipCode: "54321",
		Notes: "Family doctor", Favorite: true,
	},
}

// printVersion writes the build information for -version.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName, config.Version, config.Commit, config.Date,
		runtime.GOOS, runtime.GOARCH)
}

// logStartupInfo logs build and environment details useful for debugging.
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

// setupLogging installs a JSON slog handler writing to stdout and, when the
// cache dir is usable, to a log file truncated on each start. The returned
// file, if any, must be closed by the caller.
func setupLogging(debug bool) *os.File {
	// 1. Always write to Stdout.
	out := []io.Writer{os.Stdout}

	// 2. Add the log file when the cache directory is usable.
	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, config.LogFileName, err)
	} else {
		out = append(out, logFile)
	}

	// 3. Debug mode lowers the level and records call sites.
	opts := &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: debug}
	if debug {
		opts.Level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(io.MultiWriter(out...), opts)))

	return logFile
}

// openLogFile opens the log file in the platform cache directory.
func openLogFile() (*os.File, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	// Ensure the directory exists with restricted permissions (700).
	dir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	// O_TRUNC resets the log on each start to keep it bounded.
	return os.OpenFile(filepath.Join(dir, config.LogFileName), os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
}
