//go:build !windows

package hwinfo

import "context"

// collectGPUs always declines off Windows: no video adapter query mechanism exists.
func (c Collector) collectGPUs(_ context.Context) ([]GPUReport, error) {
	return nil, errGPUUnsupported
}
