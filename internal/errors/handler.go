package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when reporting errors.
// It keeps this package free of a dependency on the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleAnalysisError prints a user-facing description of err and returns the
// matching exit code. A nil error returns ExitSuccess without output.
//
// Parameters:
//   - err: The error returned by an analysis (may be nil).
//   - duration: How long the analysis ran before failing (0 if unknown).
//   - out: The writer for the message.
//   - colors: The color provider for highlighting.
//
// Returns:
//   - int: The exit code for the error class.
func HandleAnalysisError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	code := ExitCodeFor(err)
	var timeoutErr TimeoutError
	switch {
	case code == ExitErrorTimeout && errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sTimeout%s: %v%s.\n", colors.Red(), colors.Reset(), err, suffix)
	case code == ExitErrorTimeout:
		fmt.Fprintf(out, "%sTimeout%s: the sweep exceeded its deadline%s.\n", colors.Red(), colors.Reset(), suffix)
	case code == ExitErrorCanceled:
		fmt.Fprintf(out, "%sCanceled%s: the sweep was interrupted%s.\n", colors.Yellow(), colors.Reset(), suffix)
	default:
		fmt.Fprintf(out, "%sError%s: %v%s\n", colors.Red(), colors.Reset(), err, suffix)
	}
	return code
}
