// Package config parses command-line flags and SPECDEC_* environment
// variables into an AppConfig and derives the analysis sweeps from it.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/specdec/internal/analysis"
	apperrors "github.com/agbru/specdec/internal/errors"
	"github.com/agbru/specdec/internal/model"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "SPECDEC_"

// Output formats accepted by --format.
const (
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatBoth = "both"
	FormatNone = "none"
)

// Formats lists the accepted --format values.
var Formats = []string{FormatHTML, FormatPNG, FormatBoth, FormatNone}

// Shells lists the accepted --completion values.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig holds the fully resolved configuration of one invocation.
type AppConfig struct {
	Analysis string

	Tv       float64
	P        float64
	RatioMin float64
	RatioMax float64
	Points   int
	PMin     float64
	PMax     float64
	NMin     int
	NMax     int
	// SpeedNMax is the upper N of the speed analysis, which always starts at 1.
	SpeedNMax int

	ExampleRatios FloatList
	ExampleP      FloatList

	Format      string
	OutDir      string
	OutputFile  string
	MetricsFile string

	Timeout  time.Duration
	LogLevel string
	Quiet    bool
	Verbose  bool
	NoColor  bool
	TUI      bool

	Completion string
}

// Default returns the configuration used when no flag or variable is set.
func Default() AppConfig {
	surface := analysis.DefaultSurfaceConfig()
	return AppConfig{
		Analysis:      "all",
		Tv:            model.DefaultTv,
		P:             0.6,
		RatioMin:      0.01,
		RatioMax:      0.99,
		Points:        50,
		PMin:          0.1,
		PMax:          0.9,
		NMin:          1,
		NMax:          10,
		SpeedNMax:     19,
		ExampleRatios: slices.Clone(surface.ExampleRatios),
		ExampleP:      slices.Clone(surface.ExampleAcceptance),
		Format:        FormatHTML,
		OutDir:        ".",
		Timeout:       time.Minute,
		LogLevel:      "info",
	}
}

// FloatList is a comma-separated list of floats usable as a flag.Value.
type FloatList []float64

// String implements flag.Value.
func (l *FloatList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Set implements flag.Value. It replaces the whole list.
func (l *FloatList) Set(s string) error {
	var out FloatList
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", part)
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Usage and parse errors are written to errWriter. availableAnalyses are the
// registry keys accepted by --analysis besides "all".
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAnalyses []string) (AppConfig, error) {
	cfg := Default()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Analysis, "analysis", cfg.Analysis, fmt.Sprintf("Analysis to run: all, %s.", strings.Join(availableAnalyses, ", ")))
	fs.Float64Var(&cfg.Tv, "tv", cfg.Tv, "Verification step time Tv.")
	fs.Float64Var(&cfg.P, "p", cfg.P, "Acceptance probability of the speed analysis.")
	fs.Float64Var(&cfg.RatioMin, "ratio-min", cfg.RatioMin, "Lower bound of the Ts/Tv grid.")
	fs.Float64Var(&cfg.RatioMax, "ratio-max", cfg.RatioMax, "Upper bound of the Ts/Tv grid.")
	fs.IntVar(&cfg.Points, "points", cfg.Points, "Number of samples per grid axis.")
	fs.Float64Var(&cfg.PMin, "p-min", cfg.PMin, "Lower bound of the P grid.")
	fs.Float64Var(&cfg.PMax, "p-max", cfg.PMax, "Upper bound of the P grid.")
	fs.IntVar(&cfg.NMin, "n-min", cfg.NMin, "Smallest N searched by the surface analysis.")
	fs.IntVar(&cfg.NMax, "n-max", cfg.NMax, "Largest N searched by the surface analysis.")
	fs.IntVar(&cfg.SpeedNMax, "speed-n-max", cfg.SpeedNMax, "Largest N of the speed analysis.")
	fs.Var(&cfg.ExampleRatios, "example-ratios", "Comma-separated Ts/Tv ratios of the example table.")
	fs.Var(&cfg.ExampleP, "example-p", "Comma-separated P values of the example table.")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Chart output: html, png, both or none.")
	fs.StringVar(&cfg.OutDir, "out-dir", cfg.OutDir, "Directory receiving the charts.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write a text report to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format.")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Maximum duration of the sweep.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the essential results.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print every optimal point and runtime statistics.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Launch the interactive explorer.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell).")
	fs.Bool("version", false, "Print version information and exit.")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	var err error
	if fs.NArg() > 0 {
		err = apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	} else {
		applyEnvOverrides(&cfg, fs)
		err = cfg.Validate(availableAnalyses)
	}
	if err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints. Every failure is a ConfigError.
func (c AppConfig) Validate(availableAnalyses []string) error {
	switch {
	case c.Analysis != "all" && !slices.Contains(availableAnalyses, c.Analysis):
		return apperrors.NewConfigError("unknown analysis %q (available: all, %s)", c.Analysis, strings.Join(availableAnalyses, ", "))
	case c.Points < 2:
		return apperrors.NewConfigError("--points must be at least 2, got %d", c.Points)
	case c.RatioMin < 0 || c.RatioMax <= c.RatioMin:
		return apperrors.NewConfigError("invalid Ts/Tv range [%g, %g]", c.RatioMin, c.RatioMax)
	case c.PMin < 0 || c.PMax >= 1 || c.PMax <= c.PMin:
		return apperrors.NewConfigError("invalid P range [%g, %g]: need 0 <= p-min < p-max < 1", c.PMin, c.PMax)
	case c.NMin < 1 || c.NMax < c.NMin:
		return apperrors.NewConfigError("invalid N range [%d, %d]", c.NMin, c.NMax)
	case c.SpeedNMax < 1:
		return apperrors.NewConfigError("--speed-n-max must be at least 1, got %d", c.SpeedNMax)
	case !slices.Contains(Formats, c.Format):
		return apperrors.NewConfigError("unknown format %q (want %s)", c.Format, strings.Join(Formats, ", "))
	case c.Timeout <= 0:
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	case c.Completion != "" && !slices.Contains(Shells, c.Completion):
		return apperrors.NewConfigError("unsupported shell %q (want %s)", c.Completion, strings.Join(Shells, ", "))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	if err := (model.Params{Ratio: c.RatioMin, P: c.P, Tv: c.Tv}).Validate(); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	return nil
}

// SurfaceConfig derives the surface sweep.
func (c AppConfig) SurfaceConfig() analysis.SurfaceConfig {
	return analysis.SurfaceConfig{
		Tv:                c.Tv,
		Ratios:            model.Linspace(c.RatioMin, c.RatioMax, c.Points),
		Acceptance:        model.Linspace(c.PMin, c.PMax, c.Points),
		Candidates:        model.IntRange(c.NMin, c.NMax),
		ExampleRatios:     slices.Clone(c.ExampleRatios),
		ExampleAcceptance: slices.Clone(c.ExampleP),
	}
}

// SpeedConfig derives the speed sweep.
func (c AppConfig) SpeedConfig() analysis.SpeedConfig {
	return analysis.SpeedConfig{
		Tv:         c.Tv,
		P:          c.P,
		Ratios:     model.Linspace(c.RatioMin, c.RatioMax, c.Points),
		Candidates: model.IntRange(1, c.SpeedNMax),
	}
}

// RenderHTML reports whether HTML charts are requested.
func (c AppConfig) RenderHTML() bool { return c.Format == FormatHTML || c.Format == FormatBoth }

// RenderPNG reports whether PNG charts are requested.
func (c AppConfig) RenderPNG() bool { return c.Format == FormatPNG || c.Format == FormatBoth }
