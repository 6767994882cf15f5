package hwinfo

import (
	"context"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// WithLogger overrides the default logger.
func WithLogger(logger slog.Handler) Options {
	return func(o *options) {
		o.log = slog.New(logger)
	}
}

// WithArch overrides the default architecture.
func WithArch(arch string) Options {
	return func(o *options) {
		o.arch = arch
	}
}

// WithCPUInfo overrides the default detailed CPU source.
func WithCPUInfo(f func(ctx context.Context) ([]cpu.InfoStat, error)) Options {
	return func(o *options) {
		o.cpuInfo = f
	}
}

// WithCPUCounts overrides the default core count source.
func WithCPUCounts(f func(ctx context.Context, logical bool) (int, error)) Options {
	return func(o *options) {
		o.cpuCounts = f
	}
}

// WithHostInfo overrides the default kernel info source.
func WithHostInfo(f func(ctx context.Context) (*host.InfoStat, error)) Options {
	return func(o *options) {
		o.hostInfo = f
	}
}

// WithVirtualMemory overrides the default memory snapshot source.
func WithVirtualMemory(f func(ctx context.Context) (*mem.VirtualMemoryStat, error)) Options {
	return func(o *options) {
		o.vmem = f
	}
}

// WithGPUTimeout overrides the default GPU query timeout.
func WithGPUTimeout(d time.Duration) Options {
	return func(o *options) {
		o.gpuTimeout = d
	}
}
