package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny reports whether any alias of a flag was set.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an environment key (without EnvPrefix) to the flag
// aliases it shadows and the function storing its value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// Unparseable values are ignored and the flag default is kept.
func floatEnv(field func(*AppConfig) *float64) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*field(c) = parsed
		}
	}
}

func intEnv(field func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*field(c) = parsed
		}
	}
}

func stringEnv(field func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *field(c) = v }
}

func boolEnv(field func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *field(c) = parseBoolEnv(v, *field(c)) }
}

func listEnv(field func(*AppConfig) *FloatList) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		var l FloatList
		if err := l.Set(v); err == nil && len(l) > 0 {
			*field(c) = l
		}
	}
}

// envOverrides is the declarative table of every SPECDEC_* variable.
var envOverrides = []envOverride{
	{"TV", []string{"tv"}, floatEnv(func(c *AppConfig) *float64 { return &c.Tv })},
	{"P", []string{"p"}, floatEnv(func(c *AppConfig) *float64 { return &c.P })},
	{"RATIO_MIN", []string{"ratio-min"}, floatEnv(func(c *AppConfig) *float64 { return &c.RatioMin })},
	{"RATIO_MAX", []string{"ratio-max"}, floatEnv(func(c *AppConfig) *float64 { return &c.RatioMax })},
	{"P_MIN", []string{"p-min"}, floatEnv(func(c *AppConfig) *float64 { return &c.PMin })},
	{"P_MAX", []string{"p-max"}, floatEnv(func(c *AppConfig) *float64 { return &c.PMax })},

	{"POINTS", []string{"points"}, intEnv(func(c *AppConfig) *int { return &c.Points })},
	{"N_MIN", []string{"n-min"}, intEnv(func(c *AppConfig) *int { return &c.NMin })},
	{"N_MAX", []string{"n-max"}, intEnv(func(c *AppConfig) *int { return &c.NMax })},
	{"SPEED_N_MAX", []string{"speed-n-max"}, intEnv(func(c *AppConfig) *int { return &c.SpeedNMax })},

	{"EXAMPLE_RATIOS", []string{"example-ratios"}, listEnv(func(c *AppConfig) *FloatList { return &c.ExampleRatios })},
	{"EXAMPLE_P", []string{"example-p"}, listEnv(func(c *AppConfig) *FloatList { return &c.ExampleP })},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"ANALYSIS", []string{"analysis"}, stringEnv(func(c *AppConfig) *string { return &c.Analysis })},
	{"FORMAT", []string{"format"}, stringEnv(func(c *AppConfig) *string { return &c.Format })},
	{"OUT_DIR", []string{"out-dir"}, stringEnv(func(c *AppConfig) *string { return &c.OutDir })},
	{"OUTPUT", []string{"output", "o"}, stringEnv(func(c *AppConfig) *string { return &c.OutputFile })},
	{"METRICS_FILE", []string{"metrics-file"}, stringEnv(func(c *AppConfig) *string { return &c.MetricsFile })},
	{"LOG_LEVEL", []string{"log-level"}, stringEnv(func(c *AppConfig) *string { return &c.LogLevel })},

	{"QUIET", []string{"quiet", "q"}, boolEnv(func(c *AppConfig) *bool { return &c.Quiet })},
	{"VERBOSE", []string{"verbose", "v"}, boolEnv(func(c *AppConfig) *bool { return &c.Verbose })},
	{"NO_COLOR", []string{"no-color"}, boolEnv(func(c *AppConfig) *bool { return &c.NoColor })},
	{"TUI", []string{"tui"}, boolEnv(func(c *AppConfig) *bool { return &c.TUI })},
}

// parseBoolEnv accepts "true", "1", "yes" and "false", "0", "no"
// (case-insensitive); anything else yields defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies SPECDEC_* values for every flag that was not
// set on the command line. Priority: flags > environment > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
