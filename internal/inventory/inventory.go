// Package inventory assembles probe output into a full hardware report.
package inventory

import (
	"context"
	"log/slog"

	"github.com/hwpeek/hwpeek/internal/hwinfo"
)

// Probe describes the hardware source consumed by the Builder.
type Probe interface {
	CollectOS(ctx context.Context) string
	CollectCPU(ctx context.Context) hwinfo.CPUReport
	CollectRAM(ctx context.Context) hwinfo.RAMReport
	CollectGPUs(ctx context.Context) []hwinfo.GPUReport
}

// Report is a point-in-time aggregate of every hardware category.
// It is a plain value with no identity beyond the call that produced it.
type Report struct {
	OS   string             `json:"os"`
	CPU  hwinfo.CPUReport   `json:"cpu"`
	RAM  hwinfo.RAMReport   `json:"ram"`
	GPUs []hwinfo.GPUReport `json:"gpus"`
}

// Builder handles dependencies for assembling inventory reports.
// The GPU collection is gated so its cost is paid at most once per process.
type Builder struct {
	probe Probe
	gate  *Gate[[]hwinfo.GPUReport]
	log   *slog.Logger
}

// Options are the variadic options available to the Builder.
type Options func(*options)

type options struct {
	log *slog.Logger
}

// New returns a Builder reading from probe.
func New(probe Probe, args ...Options) Builder {
	opts := &options{
		log: slog.Default(),
	}

	for _, opt := range args {
		opt(opts)
	}

	return Builder{
		probe: probe,
		gate:  NewGate(probe.CollectGPUs),
		log:   opts.log,
	}
}

// Build assembles a full report, waiting for the gated GPU collection.
// It only fails when ctx expires before the GPU data lands.
func (b Builder) Build(ctx context.Context) (Report, error) {
	b.log.Debug("building inventory report")

	r := Report{
		OS:  b.probe.CollectOS(ctx),
		CPU: b.probe.CollectCPU(ctx),
		RAM: b.probe.CollectRAM(ctx),
	}

	gpus, err := b.gate.Wait(ctx)
	if err != nil {
		return Report{}, err
	}
	r.GPUs = gpus

	return r, nil
}

// Snapshot assembles a report from whatever is already available.
// If the GPU collection has not finished yet it is kicked off in the
// background and a loading placeholder stands in until it lands.
func (b Builder) Snapshot(ctx context.Context) Report {
	b.log.Debug("snapshotting inventory report")

	r := Report{
		OS:  b.probe.CollectOS(ctx),
		CPU: b.probe.CollectCPU(ctx),
		RAM: b.probe.CollectRAM(ctx),
	}

	if gpus, ok := b.gate.Peek(); ok {
		r.GPUs = gpus
		return r
	}

	b.gate.Trigger(ctx)
	r.GPUs = []hwinfo.GPUReport{{Name: "(GPU info loading…)", VRAM: "—", Driver: "—", Status: "—"}}

	return r
}

// GPUs waits for the gated GPU collection and returns the cached result.
func (b Builder) GPUs(ctx context.Context) ([]hwinfo.GPUReport, error) {
	return b.gate.Wait(ctx)
}
