// Package ui holds the color themes shared by the CLI tables and the TUI
// explorer. Colors are disabled by --no-color or the NO_COLOR variable.
package ui
