package framerate

type config struct {
	// ZeroFPSFallback makes New treat a zero frame rate as 1 fps instead of
	// rejecting it.
	ZeroFPSFallback bool
}

type Option interface {
	apply(*config)
}

type Options []Option

func (s Options) apply(cfg *config) {
	for _, opt := range s {
		opt.apply(cfg)
	}
}

func (s Options) config() config {
	var cfg config
	s.apply(&cfg)
	return cfg
}

type OptionZeroFPSFallback bool

func (opt OptionZeroFPSFallback) apply(cfg *config) {
	cfg.ZeroFPSFallback = bool(opt)
}
