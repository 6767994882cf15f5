// Package constants is responsible for defining the constants used in the application.
package constants

import (
	"log/slog"
	"time"
)

var (
	// Version is the version of the application.
	Version = "Dev"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "hwpeek"

	// DefaultLogLevel is the default log level selected without any verbosity flags.
	DefaultLogLevel = slog.LevelWarn

	// DefaultInterval is the default cadence of the live telemetry loop.
	DefaultInterval = 750 * time.Millisecond

	// GPUQueryTimeout bounds a single GPU enumeration attempt.
	GPUQueryTimeout = 15 * time.Second
)
