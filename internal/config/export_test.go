package config

import "log/slog"

// WithLogger overrides the default logger.
func WithLogger(handler slog.Handler) Options {
	return func(o *options) {
		o.Logger = slog.New(handler)
	}
}
