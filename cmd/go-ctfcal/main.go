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

	"github.com/tartampluch/go-ctfcal/internal/config"
	"github.com/tartampluch/go-ctfcal/internal/engine"
	"github.com/tartampluch/go-ctfcal/internal/locale"
	"github.com/tartampluch/go-ctfcal/internal/server"
	"go.uber.org/automaxprocs/maxprocs"
)

// options holds the parsed command line.
type options struct {
	days    int
	weight  float64
	output  string
	lang    string
	serve   string
	debug   bool
	version bool
}

// main is the application entry point.
// It delegates execution to runMain so that deferred calls run before os.Exit.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr))
}

// runMain manages argument parsing, the application lifecycle and exit codes.
func runMain(args []string, stdout, stderr io.Writer) int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return config.ExitCodeSuccess
	}
	if err != nil {
		return config.ExitCodeUsage
	}

	if opts.version {
		printVersion(stdout)
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging & Runtime Initialization
	// -------------------------------------------------------------------------
	setupLogging(stderr, opts.debug)

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
		slog.Debug(config.MsgMaxProcs,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyMessage, fmt.Sprintf(format, a...),
		)
	})); err != nil {
		slog.Warn(config.ErrMaxProcs,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
	}

	settings, err := config.LoadSettings()
	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}
	if opts.lang != "" {
		settings.Language = opts.lang
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
	tr := locale.New(settings.Language)

	if err := run(ctx, opts, settings, tr, stdout); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		if errors.Is(err, engine.ErrRemoteFetch) {
			_, _ = fmt.Fprintln(stderr, tr.Msg(config.TKeyErrFetch, nil))
		}
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run exports the calendar, then optionally serves it until ctx is cancelled.
func run(ctx context.Context, opts *options, settings *config.Settings, tr *locale.Translator, stdout io.Writer) error {
	gen := &engine.Generator{
		Clock:             engine.RealClock{},
		Fetcher:           engine.NewHTTPFetcher(settings),
		FormatDescription: tr.Description,
	}

	path := engine.OutputPath(opts.output)
	entries, err := gen.Export(ctx, engine.RunConfig{Days: opts.days, MaxWeight: opts.weight}, path)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(stdout, tr.Msg(config.TKeyMsgWritten, map[string]any{
		"Count": len(entries),
		"File":  path,
	}))

	if opts.serve == "" {
		return nil
	}

	srv := server.NewFeedServer(opts.serve, filepath.Base(path))
	if err := srv.Load(path); err != nil {
		return err
	}
	return srv.Start(ctx)
}

// parseFlags reads the command line. Each option is registered under its long
// and short name, both bound to the same variable.
func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{weight: config.DefaultMaxWeight}

	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.IntVar(&opts.days, config.FlagDays, 0, config.FlagDescDays)
	fs.IntVar(&opts.days, config.FlagDaysShort, 0, config.FlagDescDays)
	fs.Float64Var(&opts.weight, config.FlagWeight, config.DefaultMaxWeight, config.FlagDescWeight)
	fs.Float64Var(&opts.weight, config.FlagWeightShort, config.DefaultMaxWeight, config.FlagDescWeight)
	fs.StringVar(&opts.output, config.FlagOutput, "", config.FlagDescOutput)
	fs.StringVar(&opts.output, config.FlagOutputShort, "", config.FlagDescOutput)
	fs.StringVar(&opts.lang, config.FlagLang, "", config.FlagDescLang)
	fs.StringVar(&opts.lang, config.FlagLangShort, "", config.FlagDescLang)
	fs.StringVar(&opts.serve, config.FlagServe, "", config.FlagDescServe)
	fs.StringVar(&opts.serve, config.FlagServeShort, "", config.FlagDescServe)
	fs.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	fs.BoolVar(&opts.version, config.FlagVersion, false, config.FlagDescVersion)

	fs.Usage = func() {
		lang := opts.lang
		if lang == "" {
			lang = os.Getenv(config.EnvLang)
		}
		tr := locale.New(lang)

		_, _ = fmt.Fprintf(stderr, config.MsgUsageHeader, config.AppName)
		_, _ = fmt.Fprintf(stderr, "\n%s\n\n", tr.Msg(config.TKeyAppDesc, nil))
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(stderr, "\n%s\n", tr.Msg(config.TKeyAppEpilog, nil))
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.version {
		return opts, nil
	}

	daysSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == config.FlagDays || f.Name == config.FlagDaysShort {
			daysSet = true
		}
	})

	var usageErr error
	switch {
	case !daysSet:
		usageErr = errors.New(config.ErrDaysRequired)
	case opts.days < 0:
		usageErr = errors.New(config.ErrNegativeWindow)
	}
	if usageErr != nil {
		_, _ = fmt.Fprintf(stderr, "%s: %v\n", config.AppName, usageErr)
		fs.Usage()
		return nil, usageErr
	}

	return opts, nil
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput,
		config.AppName,
		config.Version,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Debug(config.MsgAppStarting,
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

// setupLogging configures the default slog logger. Logs go to w so that
// stdout only carries the run summary.
func setupLogging(w io.Writer, debugMode bool) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))
}
