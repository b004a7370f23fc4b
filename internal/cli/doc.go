// Package cli renders sweeps for the terminal: progress spinner, report
// tables, the text report file and shell completion scripts.
//
// # Naming Conventions
//
//   - Display* functions write formatted, possibly colored output to an
//     [io.Writer].
//   - Format* functions return a plain string without performing I/O.
//   - Write* functions write files on the filesystem.
package cli
