package testutil

import (
	"log/slog"
)

// NopLogger returns a logger that discards all output, keeping test runs
// quiet while still exercising logging call paths.
func NopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
