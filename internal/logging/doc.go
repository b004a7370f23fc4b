// Package logging provides the structured logger used across specdec. The
// Logger interface keeps components independent of the backend; the only
// backend is zerolog.
package logging
