package inventory

import (
	"fmt"
	"strings"

	"github.com/hwpeek/hwpeek/internal/constants"
)

// ExportText renders the report as the flat block used for clipboard and
// file export. Lines follow probe insertion order exactly.
func (r Report) ExportText() string {
	parts := []string{
		constants.CmdName,
		"OS: " + r.OS,
		"",
		"CPU:",
	}
	for _, f := range r.CPU {
		parts = append(parts, fmt.Sprintf("- %s: %s", f.Label, f.Value))
	}

	parts = append(parts, "", "RAM:")
	for _, f := range r.RAM {
		parts = append(parts, fmt.Sprintf("- %s: %s", f.Label, f.Value))
	}

	parts = append(parts, "", "GPU:")
	for i, g := range r.GPUs {
		parts = append(parts, fmt.Sprintf("- GPU %d: %s (%s)", i+1, g.Name, g.VRAM))
	}

	return strings.Join(parts, "\n")
}
