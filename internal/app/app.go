package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/sumset/internal/cli"
	"github.com/agbru/sumset/internal/config"
	"github.com/agbru/sumset/internal/dyadic"
	apperrors "github.com/agbru/sumset/internal/errors"
	"github.com/agbru/sumset/internal/logging"
	"github.com/agbru/sumset/internal/metrics"
	"github.com/agbru/sumset/internal/ui"
)

// Application represents the sumset application instance.
type Application struct {
	Config    config.AppConfig
	Registry  *dyadic.Registry
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithRegistry sets the counter registry used to resolve --algo.
func WithRegistry(r *dyadic.Registry) AppOption {
	return func(a *Application) { a.Registry = r }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Registry == nil {
		app.Registry = dyadic.NewDefaultRegistry()
	}

	programName := "sumset"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Registry.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "sumset", cfg.NoColor)
	}
	return app, nil
}

// Run executes the application based on the configured mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level := logging.ParseLevel(a.Config.LogLevel)
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	ctx, cancel := a.lifecycle(ctx)
	defer cancel()

	collector := metrics.NewCollector(metrics.NewMemoryCollector())
	if a.Config.MetricsAddr != "" {
		srv, err := collector.Serve(a.Config.MetricsAddr, a.Logger)
		if err != nil {
			return a.fail(ctx, apperrors.NewConfigError("--metrics-addr %s: %v", a.Config.MetricsAddr, err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var err error
	switch {
	case a.Config.VerifyTable != "":
		err = a.runVerifyTable(ctx, out)
	case a.Config.Verify:
		err = a.runVerify(ctx, out)
	default:
		err = a.runBatch(ctx, out, collector)
	}
	return a.fail(ctx, err)
}

// lifecycle derives the run context: an optional timeout plus SIGINT and
// SIGTERM cancellation.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	cancelTimeout := context.CancelFunc(func() {})
	if a.Config.Timeout > 0 {
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// fail logs err and maps it to an exit code. A deadline hit by the
// configured timeout is reported as a TimeoutError.
func (a *Application) fail(ctx context.Context, err error) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	if errors.Is(err, context.DeadlineExceeded) && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: "batch", Limit: a.Config.Timeout}
	}
	if apperrors.IsContextError(err) {
		a.Logger.Info("run interrupted", logging.Err(err))
	} else {
		a.Logger.Error("run failed", err)
	}
	fmt.Fprintf(a.ErrWriter, "%sError:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
	return apperrors.ExitCodeFor(err)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Registry.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
