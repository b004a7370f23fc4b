// Package tui implements the interactive explorer: a bubbletea program that
// recomputes the optimal speculation batch size as the draft/verify ratio,
// the acceptance probability and the N range are changed from the keyboard.
// It can also launch the configured sweeps in the background and shows
// their progress and outcome alongside host CPU and memory load.
package tui
