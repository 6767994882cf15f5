package hwinfo

// WithProcessorCmd overrides the default OS processor command.
func WithProcessorCmd(cmd []string) Options {
	return func(o *options) {
		o.platform.processorCmd = cmd
	}
}
