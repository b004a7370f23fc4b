package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/specdec/internal/analysis"
	"github.com/agbru/specdec/internal/cli"
	"github.com/agbru/specdec/internal/config"
	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/logging"
	"github.com/agbru/specdec/internal/metrics"
	"github.com/agbru/specdec/internal/orchestration"
	"github.com/agbru/specdec/internal/render"
	"github.com/agbru/specdec/internal/tui"
	"github.com/agbru/specdec/internal/ui"
)

// Application represents the specdec application instance.
type Application struct {
	Config    config.AppConfig
	Factory   analysis.Factory
	Renderer  render.Renderer
	Recorder  *metrics.Recorder
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom analysis factory.
func WithFactory(f analysis.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithRenderer sets the chart renderer, replacing the one chosen by
// --format.
func WithRenderer(r render.Renderer) AppOption {
	return func(a *Application) { a.Renderer = r }
}

// WithLogger sets the logger, replacing the console logger on ErrWriter.
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

	available := defaultAnalyses()
	if app.Factory != nil {
		available = app.Factory.List()
	}

	programName := "specdec"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, available)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Factory == nil {
		app.Factory = analysis.NewDefaultFactory(cfg.SurfaceConfig(), cfg.SpeedConfig())
	}
	if app.Renderer == nil {
		app.Renderer = render.New(cfg.OutDir, cfg.RenderHTML(), cfg.RenderPNG())
	}
	if app.Recorder == nil {
		app.Recorder = metrics.NewRecorder()
	}
	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, logging.ParseLevel(cfg.LogLevel), cfg.NoColor)
	}
	return app, nil
}

// defaultAnalyses lists the analyses the default factory registers.
func defaultAnalyses() []string {
	return analysis.NewDefaultFactory(analysis.DefaultSurfaceConfig(), analysis.DefaultSpeedConfig()).List()
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))
	ui.InitTheme(a.Config.NoColor)

	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}
	return a.runAnalyze(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive explorer. The timeout does not apply:
// the session lasts until the user quits.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	a.Logger.Debug("starting explorer", logging.String("analysis", a.Config.Analysis))
	return tui.Run(ctx, orchestration.GetAnalyzersToRun(a.Config.Analysis, a.Factory), a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
