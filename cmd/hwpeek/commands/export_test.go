package commands

import (
	"context"
	"io"
	"testing"

	"github.com/hwpeek/hwpeek/internal/inventory"
	"github.com/hwpeek/hwpeek/internal/telemetry"
	"github.com/stretchr/testify/require"
)

type (
	AppConfig = appConfig
)

// Config returns the configuration of the app.
func (a *App) Config() AppConfig {
	return a.config
}

// NewForTests creates a new App instance for testing purposes.
// A nil probe keeps the real hardware probe.
func NewForTests(t *testing.T, probe inventory.Probe, args ...string) *App {
	t.Helper()

	a, err := New()
	require.NoError(t, err, "Setup: failed to create app")

	if probe != nil {
		a.newProbe = func() inventory.Probe { return probe }
	}
	a.cmd.SetArgs(args)
	return a
}

// SetOut overrides the output writer of the root command for tests.
func (a *App) SetOut(w io.Writer) {
	a.cmd.SetOut(w)
}

// WithTelemetryOptions appends extra options for the live sampling loop.
func (a *App) WithTelemetryOptions(opts ...telemetry.Options) {
	a.telemetryOpts = append(a.telemetryOpts, opts...)
}

// ExecuteContext runs the root command with the provided context.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.cmd.ExecuteContext(ctx)
}
