// Package hwinfo handles collecting hardware inventory details for the local machine.
package hwinfo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/hwpeek/hwpeek/internal/constants"
	"github.com/hwpeek/hwpeek/internal/unitutils"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Field is a single labeled inventory value.
// Field order within a report is presentation order.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CPUReport lists CPU fields in presentation order.
type CPUReport []Field

// RAMReport lists memory fields in presentation order.
type RAMReport []Field

// GPUReport describes a single video adapter.
type GPUReport struct {
	Name   string `json:"name"`
	VRAM   string `json:"vram"`
	Driver string `json:"driver"`
	Status string `json:"status"`
}

// errGPUUnsupported reports that the platform has no video adapter query mechanism.
var errGPUUnsupported = errors.New("GPU enumeration is not supported on this platform")

// Collector handles dependencies for collecting hardware information.
type Collector struct {
	log  *slog.Logger
	arch string

	cpuInfo    func(ctx context.Context) ([]cpu.InfoStat, error)
	cpuCounts  func(ctx context.Context, logical bool) (int, error)
	hostInfo   func(ctx context.Context) (*host.InfoStat, error)
	vmem       func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	gpuTimeout time.Duration

	platform platformOptions
}

// Options are the variadic options available to the Collector.
type Options func(*options)

type options struct {
	log  *slog.Logger
	arch string

	cpuInfo    func(ctx context.Context) ([]cpu.InfoStat, error)
	cpuCounts  func(ctx context.Context, logical bool) (int, error)
	hostInfo   func(ctx context.Context) (*host.InfoStat, error)
	vmem       func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	gpuTimeout time.Duration

	platform platformOptions
}

// New returns a new Collector.
func New(args ...Options) Collector {
	opts := &options{
		log:        slog.Default(),
		arch:       runtime.GOARCH,
		cpuInfo:    cpu.InfoWithContext,
		cpuCounts:  cpu.CountsWithContext,
		hostInfo:   host.InfoWithContext,
		vmem:       mem.VirtualMemoryWithContext,
		gpuTimeout: constants.GPUQueryTimeout,
	}
	opts.platform = defaultPlatformOptions()

	for _, opt := range args {
		opt(opts)
	}

	return Collector{
		log:  opts.log,
		arch: opts.arch,

		cpuInfo:    opts.cpuInfo,
		cpuCounts:  opts.cpuCounts,
		hostInfo:   opts.hostInfo,
		vmem:       opts.vmem,
		gpuTimeout: opts.gpuTimeout,

		platform: opts.platform,
	}
}

// CollectOS reports a one-line descriptor of the host operating system.
// It never fails: missing data degrades to "Unknown".
func (c Collector) CollectOS(ctx context.Context) string {
	c.log.Debug("collecting OS info")

	hi, err := c.hostInfo(ctx)
	if err != nil {
		c.log.Warn("failed to collect OS info", "error", err)
		return "Unknown"
	}

	return fmt.Sprintf("%s %s (%s)", hi.Platform, hi.PlatformVersion, hi.KernelVersion)
}

// CollectCPU merges the detailed CPU source with kernel-reported values.
// It never fails: missing descriptors degrade to "Unknown" and missing counts to "0".
func (c Collector) CollectCPU(ctx context.Context) CPUReport {
	c.log.Debug("collecting CPU info")

	var name, advertised string
	infos, err := c.cpuInfo(ctx)
	if err != nil {
		c.log.Warn("failed to collect CPU info", "error", err)
	} else if len(infos) > 0 {
		name = strings.TrimSpace(infos[0].ModelName)
		if name == "" {
			name = strings.TrimSpace(infos[0].VendorID)
		}
		advertised = friendlyFrequency(infos[0].Mhz)
	}

	if name == "" {
		p, err := c.osProcessor(ctx)
		if err != nil {
			c.log.Warn("failed to collect the OS processor string", "error", err)
		}
		name = p
	}
	if name == "" {
		name = "Unknown"
	}

	var arch string
	if hi, err := c.hostInfo(ctx); err != nil {
		c.log.Warn("failed to collect kernel arch", "error", err)
	} else {
		arch = strings.TrimSpace(hi.KernelArch)
	}
	if arch == "" {
		arch = c.arch
	}
	if arch == "" {
		arch = "Unknown"
	}

	if advertised == "" {
		advertised = "Unknown"
	}

	physical, err := c.cpuCounts(ctx, false)
	if err != nil {
		c.log.Warn("failed to collect the physical core count", "error", err)
		physical = 0
	}
	logical, err := c.cpuCounts(ctx, true)
	if err != nil {
		c.log.Warn("failed to collect the logical core count", "error", err)
		logical = 0
	}

	return CPUReport{
		{Label: "Name", Value: name},
		{Label: "Arch", Value: arch},
		{Label: "Advertised", Value: advertised},
		{Label: "Cores (physical)", Value: strconv.Itoa(physical)},
		{Label: "Cores (logical)", Value: strconv.Itoa(logical)},
	}
}

// CollectRAM takes a fresh memory snapshot, so repeated calls reflect current state.
// It never fails: an unreadable snapshot degrades to "Unknown" sizes and a zero percentage.
func (c Collector) CollectRAM(ctx context.Context) RAMReport {
	c.log.Debug("collecting memory info")

	vm, err := c.vmem(ctx)
	if err != nil {
		c.log.Warn("failed to collect memory info", "error", err)
		return RAMReport{
			{Label: "Total", Value: "Unknown"},
			{Label: "Available", Value: "Unknown"},
			{Label: "Used", Value: "Unknown"},
			{Label: "Percent", Value: "0%"},
		}
	}

	return RAMReport{
		{Label: "Total", Value: unitutils.HumanBytes(vm.Total)},
		{Label: "Available", Value: unitutils.HumanBytes(vm.Available)},
		{Label: "Used", Value: unitutils.HumanBytes(vm.Used)},
		{Label: "Percent", Value: fmt.Sprintf("%.0f%%", vm.UsedPercent)},
	}
}

// CollectGPUs enumerates video adapters.
// It never fails: unsupported platforms, empty enumerations, and query errors
// all degrade to a single placeholder record, so the result is never empty.
func (c Collector) CollectGPUs(ctx context.Context) []GPUReport {
	c.log.Debug("collecting GPU info")

	gpus, err := c.collectGPUs(ctx)
	if err != nil {
		if errors.Is(err, errGPUUnsupported) {
			return []GPUReport{placeholderGPU("(GPU details only available on Windows)")}
		}

		c.log.Warn("failed to collect GPU info", "error", err)
		category := "query failed"
		if errors.Is(err, context.DeadlineExceeded) {
			category = "timed out"
		}
		return []GPUReport{placeholderGPU(fmt.Sprintf("(GPU lookup failed: %s)", category))}
	}

	if len(gpus) == 0 {
		return []GPUReport{placeholderGPU("(No GPU detected)")}
	}
	return gpus
}

// placeholderGPU keeps the adapter list shape when real data cannot be obtained.
func placeholderGPU(name string) GPUReport {
	return GPUReport{Name: name, VRAM: "—", Driver: "—", Status: "—"}
}

// friendlyFrequency renders an advertised MHz value the way vendors label it.
func friendlyFrequency(mhz float64) string {
	switch {
	case mhz >= 1000:
		return fmt.Sprintf("%.2f GHz", mhz/1000)
	case mhz > 0:
		return fmt.Sprintf("%.0f MHz", mhz)
	default:
		return ""
	}
}
