package hwinfo

// WithProcessorName overrides the default registry processor source.
func WithProcessorName(f func() (string, error)) Options {
	return func(o *options) {
		o.platform.processorName = f
	}
}

// WithVideoControllers overrides the default WMI video controller query.
func WithVideoControllers(f func(dst *[]win32VideoController) error) Options {
	return func(o *options) {
		o.platform.videoControllers = f
	}
}
