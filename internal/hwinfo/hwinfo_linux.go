package hwinfo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hwpeek/hwpeek/internal/cmdutils"
)

// platformOptions are platform specific options.
type platformOptions struct {
	processorCmd []string
}

// defaultPlatformOptions returns options for when running under a normal environment.
func defaultPlatformOptions() platformOptions {
	return platformOptions{
		processorCmd: []string{"uname", "-p"},
	}
}

// osProcessor reports the kernel's processor description.
func (c Collector) osProcessor(ctx context.Context) (string, error) {
	stdout, stderr, err := cmdutils.RunWithTimeout(ctx, 15*time.Second, c.platform.processorCmd[0], c.platform.processorCmd[1:]...)
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %v", c.platform.processorCmd[0], err)
	}
	if stderr.Len() > 0 {
		c.log.Info(fmt.Sprintf("%s output to stderr", c.platform.processorCmd[0]), "stderr", stderr)
	}

	return strings.TrimSpace(stdout.String()), nil
}
