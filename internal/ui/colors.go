package ui

// Color accessors read the active theme on every call so that InitTheme
// takes effect everywhere.

func ColorRed() string       { return GetCurrentTheme().Loss }
func ColorGreen() string     { return GetCurrentTheme().Gain }
func ColorYellow() string    { return GetCurrentTheme().Warning }
func ColorBlue() string      { return GetCurrentTheme().Primary }
func ColorMagenta() string   { return GetCurrentTheme().Info }
func ColorCyan() string      { return GetCurrentTheme().Primary }
func ColorGrey() string      { return GetCurrentTheme().Secondary }
func ColorBold() string      { return GetCurrentTheme().Bold }
func ColorUnderline() string { return GetCurrentTheme().Underline }
func ColorReset() string     { return GetCurrentTheme().Reset }

// SpeedupColor picks the color of a speedup value: gain above 1, loss below,
// plain at exactly 1.
func SpeedupColor(s float64) string {
	switch {
	case s > 1:
		return ColorGreen()
	case s < 1:
		return ColorRed()
	default:
		return ""
	}
}
