// Package logging builds the logr.Logger used across stepform.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// New returns a logger writing one line per entry to w. Entries with a
// V-level above verbosity are dropped.
func New(w io.Writer, verbosity int) logr.Logger {
	if w == nil {
		w = os.Stderr
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{
		Verbosity:       verbosity,
		LogTimestamp:    true,
		TimestampFormat: "15:04:05.000",
	})
}

// Discard returns a logger that drops every entry.
func Discard() logr.Logger {
	return logr.Discard()
}
