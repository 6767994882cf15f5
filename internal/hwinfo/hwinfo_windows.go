package hwinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/hwpeek/hwpeek/internal/unitutils"
	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows/registry"
)

// videoControllerQuery selects the adapter columns consumed by GPUReport.
const videoControllerQuery = "SELECT Name, AdapterRAM, DriverVersion, Status FROM Win32_VideoController"

// win32VideoController mirrors the queried Win32_VideoController columns.
// Pointer fields distinguish NULL columns from zero values.
type win32VideoController struct {
	Name          *string
	AdapterRAM    *uint32
	DriverVersion *string
	Status        *string
}

// platformOptions are platform specific options.
type platformOptions struct {
	processorName    func() (string, error)
	videoControllers func(dst *[]win32VideoController) error
}

// defaultPlatformOptions returns options for when running under a normal environment.
func defaultPlatformOptions() platformOptions {
	return platformOptions{
		processorName: registryProcessorName,
		videoControllers: func(dst *[]win32VideoController) error {
			return wmi.Query(videoControllerQuery, dst)
		},
	}
}

// osProcessor reads the marketing name of the first processor from the registry.
func (c Collector) osProcessor(_ context.Context) (string, error) {
	name, err := c.platform.processorName()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

func registryProcessorName() (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, `HARDWARE\DESCRIPTION\System\CentralProcessor\0`, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("failed to open the CentralProcessor key: %v", err)
	}
	defer k.Close()

	name, _, err := k.GetStringValue("ProcessorNameString")
	if err != nil {
		return "", fmt.Errorf("failed to read ProcessorNameString: %v", err)
	}
	return name, nil
}

// collectGPUs queries Win32_VideoController, bounded so a stalled WMI service
// cannot hang the whole report build.
func (c Collector) collectGPUs(ctx context.Context) ([]GPUReport, error) {
	ctx, cancel := context.WithTimeout(ctx, c.gpuTimeout)
	defer cancel()

	type answer struct {
		controllers []win32VideoController
		err         error
	}
	ch := make(chan answer, 1)
	go func() {
		var dst []win32VideoController
		err := c.platform.videoControllers(&dst)
		ch <- answer{controllers: dst, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case a := <-ch:
		if a.err != nil {
			return nil, fmt.Errorf("failed to query Win32_VideoController: %v", a.err)
		}

		gpus := make([]GPUReport, 0, len(a.controllers))
		for _, vc := range a.controllers {
			gpus = append(gpus, vc.report())
		}
		return gpus, nil
	}
}

// report converts a WMI row into a GPUReport, degrading NULL columns.
func (vc win32VideoController) report() GPUReport {
	g := placeholderGPU("Unknown")
	if vc.Name != nil && *vc.Name != "" {
		g.Name = *vc.Name
	}
	if vc.AdapterRAM != nil {
		g.VRAM = unitutils.HumanBytes(uint64(*vc.AdapterRAM))
	}
	if vc.DriverVersion != nil && *vc.DriverVersion != "" {
		g.Driver = *vc.DriverVersion
	}
	if vc.Status != nil && *vc.Status != "" {
		g.Status = *vc.Status
	}
	return g
}
