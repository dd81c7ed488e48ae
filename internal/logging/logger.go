package logging

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

// New returns a logger writing to w. Debug records are only emitted when
// verbose is set.
func New(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewHandler(w, verbose))
}

// NewHandler returns the slog.Handler behind New.
func NewHandler(w io.Writer, verbose bool) slog.Handler {
	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           Level(verbose),
		ReportTimestamp: false,
	})
}

// Level maps the verbose flag to a log level.
func Level(verbose bool) charmlog.Level {
	if verbose {
		return charmlog.DebugLevel
	}
	return charmlog.InfoLevel
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return New(io.Discard, false)
}
