package align

// Option tunes the lag search.
type Option func(*config)

type config struct {
	minOverlap int
	maxShift   int
	method     Method
}

// WithMinOverlap excludes lags whose envelopes overlap by fewer than frames.
// The bound is clamped to the shorter envelope so lag zero always qualifies.
func WithMinOverlap(frames int) Option {
	return func(c *config) {
		c.minOverlap = frames
	}
}

// WithMaxShift excludes lags that put the centres of the two envelopes more
// than frames apart, i.e. |2*lag + len(A) - len(B)| > 2*frames. For equal
// lengths this is |lag| > frames. Zero disables the bound.
func WithMaxShift(frames int) Option {
	return func(c *config) {
		c.maxShift = frames
	}
}

// WithMethod picks the correlation algorithm.
func WithMethod(m Method) Option {
	return func(c *config) {
		c.method = m
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := config{method: MethodAuto}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.minOverlap < 0 {
		return cfg, invalidInput("min_overlap", cfg.minOverlap, "must not be negative")
	}
	if cfg.maxShift < 0 {
		return cfg, invalidInput("max_shift", cfg.maxShift, "must not be negative")
	}
	switch cfg.method {
	case MethodAuto, MethodDirect, MethodFFT:
	default:
		return cfg, invalidInput("method", int(cfg.method), "unrecognized method")
	}
	return cfg, nil
}
