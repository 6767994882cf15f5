package hwinfo_test

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"testing"

	"github.com/hwpeek/hwpeek/internal/hwinfo"
	"github.com/hwpeek/hwpeek/internal/testutils"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectCPU(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		infos      []cpu.InfoStat
		physical   int
		logical    int
		countsErr  bool
		kernelArch string
		hostErr    bool
		arch       string

		want     hwinfo.CPUReport
		wantLogs map[slog.Level]uint
	}{
		"Detailed source fills every field": {
			infos: []cpu.InfoStat{
				{ModelName: "Intel(R) Core(TM) i7-9700K CPU @ 3.60GHz", VendorID: "GenuineIntel", Mhz: 3600},
			},
			physical:   8,
			logical:    8,
			kernelArch: "x86_64",

			want: hwinfo.CPUReport{
				{Label: "Name", Value: "Intel(R) Core(TM) i7-9700K CPU @ 3.60GHz"},
				{Label: "Arch", Value: "x86_64"},
				{Label: "Advertised", Value: "3.60 GHz"},
				{Label: "Cores (physical)", Value: "8"},
				{Label: "Cores (logical)", Value: "8"},
			},
		},

		"Vendor stands in for a missing model name": {
			infos:      []cpu.InfoStat{{VendorID: "GenuineIntel", Mhz: 2400}},
			physical:   4,
			logical:    8,
			kernelArch: "x86_64",

			want: hwinfo.CPUReport{
				{Label: "Name", Value: "GenuineIntel"},
				{Label: "Arch", Value: "x86_64"},
				{Label: "Advertised", Value: "2.40 GHz"},
				{Label: "Cores (physical)", Value: "4"},
				{Label: "Cores (logical)", Value: "8"},
			},
		},

		"Sub gigahertz frequencies stay in megahertz": {
			infos:      []cpu.InfoStat{{ModelName: "ARM926EJ-S", Mhz: 800}},
			physical:   1,
			logical:    1,
			kernelArch: "armv5tejl",

			want: hwinfo.CPUReport{
				{Label: "Name", Value: "ARM926EJ-S"},
				{Label: "Arch", Value: "armv5tejl"},
				{Label: "Advertised", Value: "800 MHz"},
				{Label: "Cores (physical)", Value: "1"},
				{Label: "Cores (logical)", Value: "1"},
			},
		},

		"Zero frequency degrades to unknown": {
			infos:      []cpu.InfoStat{{ModelName: "QEMU Virtual CPU"}},
			physical:   2,
			logical:    2,
			kernelArch: "x86_64",

			want: hwinfo.CPUReport{
				{Label: "Name", Value: "QEMU Virtual CPU"},
				{Label: "Arch", Value: "x86_64"},
				{Label: "Advertised", Value: "Unknown"},
				{Label: "Cores (physical)", Value: "2"},
				{Label: "Cores (logical)", Value: "2"},
			},
		},

		"Kernel arch falls back to the build arch": {
			infos:    []cpu.InfoStat{{ModelName: "Apple M2", Mhz: 3500}},
			physical: 8,
			logical:  8,
			arch:     "arm64",

			want: hwinfo.CPUReport{
				{Label: "Name", Value: "Apple M2"},
				{Label: "Arch", Value: "arm64"},
				{Label: "Advertised", Value: "3.50 GHz"},
				{Label: "Cores (physical)", Value: "8"},
				{Label: "Cores (logical)", Value: "8"},
			},
		},

		"Host info failure falls back to the build arch": {
			infos:    []cpu.InfoStat{{ModelName: "Apple M2", Mhz: 3500}},
			physical: 8,
			logical:  8,
			hostErr:  true,
			arch:     "arm64",

			want: hwinfo.CPUReport{
				{Label: "Name", Value: "Apple M2"},
				{Label: "Arch", Value: "arm64"},
				{Label: "Advertised", Value: "3.50 GHz"},
				{Label: "Cores (physical)", Value: "8"},
				{Label: "Cores (logical)", Value: "8"},
			},
			wantLogs: map[slog.Level]uint{slog.LevelWarn: 1},
		},

		"Count failures degrade to zero": {
			infos:      []cpu.InfoStat{{ModelName: "Intel(R) Celeron(R) N4020", Mhz: 1100}},
			countsErr:  true,
			kernelArch: "x86_64",

			want: hwinfo.CPUReport{
				{Label: "Name", Value: "Intel(R) Celeron(R) N4020"},
				{Label: "Arch", Value: "x86_64"},
				{Label: "Advertised", Value: "1.10 GHz"},
				{Label: "Cores (physical)", Value: "0"},
				{Label: "Cores (logical)", Value: "0"},
			},
			wantLogs: map[slog.Level]uint{slog.LevelWarn: 2},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if tc.arch == "" {
				tc.arch = "amd64"
			}

			l := testutils.NewMockHandler(slog.LevelDebug)
			c := hwinfo.New(
				hwinfo.WithLogger(&l),
				hwinfo.WithArch(tc.arch),
				hwinfo.WithCPUInfo(func(context.Context) ([]cpu.InfoStat, error) {
					return tc.infos, nil
				}),
				hwinfo.WithCPUCounts(func(_ context.Context, logical bool) (int, error) {
					if tc.countsErr {
						return 0, errors.New("count failed")
					}
					if logical {
						return tc.logical, nil
					}
					return tc.physical, nil
				}),
				hwinfo.WithHostInfo(func(context.Context) (*host.InfoStat, error) {
					if tc.hostErr {
						return nil, errors.New("host info failed")
					}
					return &host.InfoStat{KernelArch: tc.kernelArch}, nil
				}),
			)

			got := c.CollectCPU(t.Context())
			require.Equal(t, tc.want, got, "CollectCPU should merge sources in precedence order")

			if !l.AssertLevels(t, tc.wantLogs) {
				l.OutputLogs(t)
			}
		})
	}
}

func TestCollectCPUUnknownArch(t *testing.T) {
	t.Parallel()

	l := testutils.NewMockHandler(slog.LevelDebug)
	c := hwinfo.New(
		hwinfo.WithLogger(&l),
		hwinfo.WithArch(""),
		hwinfo.WithCPUInfo(func(context.Context) ([]cpu.InfoStat, error) {
			return []cpu.InfoStat{{ModelName: "Intel(R) Atom(TM) x5-Z8350", Mhz: 1440}}, nil
		}),
		hwinfo.WithCPUCounts(func(_ context.Context, logical bool) (int, error) {
			return 4, nil
		}),
		hwinfo.WithHostInfo(func(context.Context) (*host.InfoStat, error) {
			return &host.InfoStat{}, nil
		}),
	)

	got := c.CollectCPU(t.Context())
	assert.Equal(t, hwinfo.Field{Label: "Arch", Value: "Unknown"}, got[1], "Arch should degrade to Unknown when every source is empty")
}

func TestCollectRAM(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		vm    *mem.VirtualMemoryStat
		vmErr bool

		want     hwinfo.RAMReport
		wantLogs map[slog.Level]uint
	}{
		"Formats the snapshot through the byte scaler": {
			vm: &mem.VirtualMemoryStat{
				Total:       8589934592,
				Available:   4294967296,
				Used:        4294967296,
				UsedPercent: 50.0,
			},

			want: hwinfo.RAMReport{
				{Label: "Total", Value: "8.0 GB"},
				{Label: "Available", Value: "4.0 GB"},
				{Label: "Used", Value: "4.0 GB"},
				{Label: "Percent", Value: "50%"},
			},
		},

		"Rounds the percentage to zero decimals": {
			vm: &mem.VirtualMemoryStat{
				Total:       4096,
				Available:   2048,
				Used:        2048,
				UsedPercent: 49.6,
			},

			want: hwinfo.RAMReport{
				{Label: "Total", Value: "4.0 KB"},
				{Label: "Available", Value: "2.0 KB"},
				{Label: "Used", Value: "2.0 KB"},
				{Label: "Percent", Value: "50%"},
			},
		},

		"Degrades when the snapshot fails": {
			vmErr: true,

			want: hwinfo.RAMReport{
				{Label: "Total", Value: "Unknown"},
				{Label: "Available", Value: "Unknown"},
				{Label: "Used", Value: "Unknown"},
				{Label: "Percent", Value: "0%"},
			},
			wantLogs: map[slog.Level]uint{slog.LevelWarn: 1},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := testutils.NewMockHandler(slog.LevelDebug)
			c := hwinfo.New(
				hwinfo.WithLogger(&l),
				hwinfo.WithVirtualMemory(func(context.Context) (*mem.VirtualMemoryStat, error) {
					if tc.vmErr {
						return nil, errors.New("memory snapshot failed")
					}
					return tc.vm, nil
				}),
			)

			got := c.CollectRAM(t.Context())
			require.Equal(t, tc.want, got, "CollectRAM should format the snapshot")

			if !l.AssertLevels(t, tc.wantLogs) {
				l.OutputLogs(t)
			}
		})
	}
}

func TestCollectRAMTakesFreshSnapshots(t *testing.T) {
	t.Parallel()

	var calls int
	c := hwinfo.New(
		hwinfo.WithVirtualMemory(func(context.Context) (*mem.VirtualMemoryStat, error) {
			calls++
			return &mem.VirtualMemoryStat{
				Total:       8589934592,
				Available:   4294967296,
				Used:        4294967296,
				UsedPercent: float64(25 * calls),
			}, nil
		}),
	)

	first := c.CollectRAM(t.Context())
	second := c.CollectRAM(t.Context())

	assert.Equal(t, hwinfo.Field{Label: "Percent", Value: "25%"}, first[3], "first call should reflect the first snapshot")
	assert.Equal(t, hwinfo.Field{Label: "Percent", Value: "50%"}, second[3], "second call should reflect a fresh snapshot")
}

func TestCollectOS(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		info    *host.InfoStat
		infoErr bool

		want     string
		wantLogs map[slog.Level]uint
	}{
		"Formats platform, version and kernel": {
			info: &host.InfoStat{
				Platform:        "ubuntu",
				PlatformVersion: "24.04",
				KernelVersion:   "6.8.0-41-generic",
			},
			want: "ubuntu 24.04 (6.8.0-41-generic)",
		},

		"Degrades to unknown on failure": {
			infoErr:  true,
			want:     "Unknown",
			wantLogs: map[slog.Level]uint{slog.LevelWarn: 1},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := testutils.NewMockHandler(slog.LevelDebug)
			c := hwinfo.New(
				hwinfo.WithLogger(&l),
				hwinfo.WithHostInfo(func(context.Context) (*host.InfoStat, error) {
					if tc.infoErr {
						return nil, errors.New("host info failed")
					}
					return tc.info, nil
				}),
			)

			got := c.CollectOS(t.Context())
			assert.Equal(t, tc.want, got, "CollectOS should describe the host in one line")

			if !l.AssertLevels(t, tc.wantLogs) {
				l.OutputLogs(t)
			}
		})
	}
}

func TestMain(m *testing.M) {
	flag.Parse()
	dir, ok := testutils.SetupHelperCoverdir()

	r := m.Run()
	if ok {
		os.Remove(dir)
	}
	os.Exit(r)
}
