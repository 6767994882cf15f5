// Package telemetry drives the recurring CPU and memory utilization sampling.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hwpeek/hwpeek/internal/constants"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Sample is one utilization reading.
// CPUPercent is the usage since the previous reading, so the first sample
// after startup reports zero.
type Sample struct {
	CPUPercent float64 `json:"cpuPercent"`
	RAMPercent float64 `json:"ramPercent"`
	RAMTotal   uint64  `json:"ramTotal"`
}

// Loop samples utilization on a fixed cadence and publishes the latest sample.
type Loop struct {
	cpuPercent func(ctx context.Context) (float64, error)
	vmem       func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	onSample   func(Sample)
	log        *slog.Logger

	// bump wakes a running loop after an interval change. Buffered so
	// rapid changes coalesce into a single reschedule.
	bump chan struct{}

	mu       sync.Mutex
	interval time.Duration
	latest   Sample
	sampled  bool
}

// Options are the variadic options available to the Loop.
type Options func(*options)

type options struct {
	interval   time.Duration
	cpuPercent func(ctx context.Context) (float64, error)
	vmem       func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	onSample   func(Sample)
	log        *slog.Logger
}

// WithInterval overrides the default sampling cadence.
func WithInterval(d time.Duration) Options {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithOnSample registers a callback invoked after each published sample.
func WithOnSample(f func(Sample)) Options {
	return func(o *options) {
		o.onSample = f
	}
}

// WithCPUPercent overrides the CPU utilization reader.
func WithCPUPercent(f func(ctx context.Context) (float64, error)) Options {
	return func(o *options) {
		o.cpuPercent = f
	}
}

// WithVirtualMemory overrides the memory utilization reader.
func WithVirtualMemory(f func(ctx context.Context) (*mem.VirtualMemoryStat, error)) Options {
	return func(o *options) {
		o.vmem = f
	}
}

// New returns a Loop ready to run.
func New(args ...Options) *Loop {
	opts := &options{
		interval: constants.DefaultInterval,
		cpuPercent: func(ctx context.Context) (float64, error) {
			percents, err := cpu.PercentWithContext(ctx, 0, false)
			if err != nil {
				return 0, err
			}
			if len(percents) == 0 {
				return 0, fmt.Errorf("no CPU utilization reported")
			}
			return percents[0], nil
		},
		vmem: mem.VirtualMemoryWithContext,
		log:  slog.Default(),
	}

	for _, opt := range args {
		opt(opts)
	}

	return &Loop{
		cpuPercent: opts.cpuPercent,
		vmem:       opts.vmem,
		onSample:   opts.onSample,
		log:        opts.log,
		bump:       make(chan struct{}, 1),
		interval:   opts.interval,
	}
}

// Run samples until ctx is canceled. The first sample is taken immediately,
// later ones on the configured cadence. A failed tick is skipped, never fatal.
func (l *Loop) Run(ctx context.Context) error {
	current := l.Interval()
	l.log.Debug("live telemetry loop started", "interval", current)

	ticker := time.NewTicker(current)
	defer ticker.Stop()

	l.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			l.log.Debug("live telemetry loop stopped")
			return ctx.Err()
		case <-l.bump:
			if d := l.Interval(); d != current {
				l.log.Debug("live sampling interval updated", "old", current, "new", d)
				current = d
				ticker.Reset(current)
			}
		case <-ticker.C:
			l.tick(ctx)
		}
	}
}

// tick takes one utilization reading. Errors skip the publish so readers
// never observe a partial sample.
func (l *Loop) tick(ctx context.Context) {
	cpuPct, err := l.cpuPercent(ctx)
	if err != nil {
		l.log.Debug("skipping sample, failed to read CPU utilization", "error", err)
		return
	}

	vm, err := l.vmem(ctx)
	if err != nil {
		l.log.Debug("skipping sample, failed to read memory utilization", "error", err)
		return
	}

	s := Sample{
		CPUPercent: cpuPct,
		RAMPercent: vm.UsedPercent,
		RAMTotal:   vm.Total,
	}

	l.mu.Lock()
	l.latest = s
	l.sampled = true
	l.mu.Unlock()

	if l.onSample != nil {
		l.onSample(s)
	}
}

// Latest returns the most recent published sample.
// ok is false until the first successful tick lands.
func (l *Loop) Latest() (s Sample, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest, l.sampled
}

// SetInterval changes the sampling cadence. A running loop reschedules its
// next sample right away. Non-positive intervals are ignored.
func (l *Loop) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	l.mu.Lock()
	l.interval = d
	l.mu.Unlock()

	select {
	case l.bump <- struct{}{}:
	default:
	}
}

// Interval returns the current sampling cadence.
func (l *Loop) Interval() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.interval
}
