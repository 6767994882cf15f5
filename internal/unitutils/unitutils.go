// Package unitutils provides utility functions for formatting units.
package unitutils

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// HumanBytes converts a raw byte count into a human readable string, scaling
// by powers of 1024 until the value fits its unit. Bytes are rendered as an
// integer, every scaled unit with one decimal. Values past TB are not scaled
// further and render as PB.
func HumanBytes(n uint64) string {
	v := float64(n)
	for _, unit := range byteUnits {
		if v < 1024 {
			if unit == "B" {
				return fmt.Sprintf("%d B", n)
			}
			return fmt.Sprintf("%.1f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.1f PB", v)
}
