package ui

import "testing"

// Tests in this file mutate the global theme and environment, so they do
// not run in parallel.

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name    string
		noColor bool
		env     map[string]string
		want    string
	}{
		{"default", false, nil, "dark"},
		{"flag", true, nil, "none"},
		{"NO_COLOR", false, map[string]string{"NO_COLOR": "1"}, "none"},
		{"theme variable", false, map[string]string{ThemeEnv: "light"}, "light"},
		{"NO_COLOR beats theme", false, map[string]string{ThemeEnv: "light", "NO_COLOR": ""}, "none"},
		{"unknown theme", false, map[string]string{ThemeEnv: "neon"}, "dark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ThemeEnv, "")
			unsetNoColor(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			InitTheme(tt.noColor)
			if got := GetCurrentTheme().Name; got != tt.want {
				t.Errorf("theme = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColors_NoColor(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	SetCurrentTheme(NoColorTheme)

	for _, c := range []string{ColorRed(), ColorGreen(), ColorCyan(), ColorBold(), ColorReset()} {
		if c != "" {
			t.Errorf("no-color theme returned escape %q", c)
		}
	}
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("TUI theme should follow the no-color CLI theme")
	}
}

func TestSpeedupColor(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	SetCurrentTheme(DarkTheme)

	if SpeedupColor(1.4) != DarkTheme.Gain {
		t.Error("speedup above 1 should use the gain color")
	}
	if SpeedupColor(0.8) != DarkTheme.Loss {
		t.Error("speedup below 1 should use the loss color")
	}
	if SpeedupColor(1) != "" {
		t.Error("speedup of exactly 1 should be uncolored")
	}
}
