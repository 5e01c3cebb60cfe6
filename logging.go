package relax

// logging.go is a single package-level diagnostics logger: a slot a host
// application can redirect, defaulting to slog's package-level logger so the
// engine is silent by default in tests but still observable in production.

import "log/slog"

var logger = slog.Default()

// SetLogger redirects relax's diagnostic logging (bounce storms, degenerate
// placement merges) to the given logger. Passing nil restores slog's
// package-level default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger = slog.Default()
		return
	}
	logger = l
}
