// config.go defines the benchmark settings and how they map to a run.

// Package config provides the YAML configuration of a benchmark session.
package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/xaionaro-go/framebench"
	"github.com/xaionaro-go/framebench/framerate"
	"github.com/xaionaro-go/framebench/indicator"
	"github.com/xaionaro-go/framebench/logger"
	"github.com/xaionaro-go/framebench/source"
	"github.com/xaionaro-go/framebench/source/simulated"
	"github.com/xaionaro-go/framebench/throughput"
	"github.com/xaionaro-go/framebench/types"
)

const (
	DefaultRefreshInterval = 150 * time.Millisecond
	DefaultSmoothingSpan   = 10
)

type Config struct {
	FrameRate       types.Rational   `yaml:"frame_rate"`
	ZeroFPSFallback bool             `yaml:"zero_fps_fallback"`
	Range           types.FrameRange `yaml:"range"`

	// TimeRange overrides Range if set; the times are converted to frames
	// with FrameRate.
	TimeRange *TimeRange `yaml:"time_range,omitempty"`

	// Prefetch enables keeping multiple requests in flight; if disabled the
	// concurrency is always 1.
	Prefetch    bool `yaml:"prefetch"`
	Unsequenced bool `yaml:"unsequenced"`

	// Concurrency is the maximal amount of requests in flight; zero means
	// the amount of CPUs usable by this process.
	Concurrency uint `yaml:"concurrency"`

	// ClearCache drops the frames cached by the source before each run.
	ClearCache bool `yaml:"clear_cache"`

	RefreshInterval time.Duration  `yaml:"refresh_interval"`
	Smoothing       indicator.Kind `yaml:"smoothing"`
	SmoothingSpan   int            `yaml:"smoothing_span"`

	SimulatedSource simulated.Config `yaml:"simulated_source"`
}

type TimeRange struct {
	Start types.Duration `yaml:"start"`
	End   types.Duration `yaml:"end"`
}

func Default() Config {
	return Config{
		FrameRate:       types.Rational{Num: 24000, Den: 1001},
		Range:           types.NewFrameRange(types.UnsignedFrameIndex(uint(0)), types.UnsignedFrameIndex(uint(999))),
		Prefetch:        true,
		Unsequenced:     true,
		Concurrency:     0,
		ClearCache:      true,
		RefreshInterval: DefaultRefreshInterval,
		Smoothing:       indicator.KindEMA,
		SmoothingSpan:   DefaultSmoothingSpan,
		SimulatedSource: simulated.Config{
			Workers:    4,
			Latency:    10 * time.Millisecond,
			Jitter:     5 * time.Millisecond,
			FrameCount: 1000,
			CacheSize:  100,
		},
	}
}

func ReadConfigFromPath(
	cfgPath string,
	cfg *Config,
) error {
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("unable to read file '%s': %w", cfgPath, err)
	}

	_, err = cfg.Read(b)
	return err
}

func WriteConfigToPath(
	ctx context.Context,
	cfgPath string,
	cfg Config,
) error {
	pathNew := cfgPath + ".new"
	f, err := os.OpenFile(pathNew, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0640)
	if err != nil {
		return fmt.Errorf("unable to open the file '%s': %w", pathNew, err)
	}
	_, err = cfg.WriteTo(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("unable to write data to file '%s': %w", pathNew, err)
	}
	if err := os.Rename(pathNew, cfgPath); err != nil {
		return fmt.Errorf("cannot move '%s' to '%s': %w", pathNew, cfgPath, err)
	}
	logger.Infof(ctx, "wrote the config to '%s'", cfgPath)
	return nil
}

func (cfg Config) Converter() (*framerate.Converter, error) {
	return framerate.New(cfg.FrameRate, framerate.OptionZeroFPSFallback(cfg.ZeroFPSFallback))
}

// FrameRange returns the configured range in frames.
func (cfg Config) FrameRange() (types.FrameRange, error) {
	if cfg.TimeRange == nil {
		return cfg.Range, nil
	}
	conv, err := cfg.Converter()
	if err != nil {
		return types.FrameRange{}, fmt.Errorf("unable to initialize the frame rate converter: %w", err)
	}
	return types.NewFrameRange(
		cfg.TimeRange.Start.ToFrameIndex(conv),
		cfg.TimeRange.End.ToFrameIndex(conv),
	), nil
}

// Params converts the config to the parameters of a single run.
func (cfg Config) Params(ctx context.Context) (framebench.Params, error) {
	r, err := cfg.FrameRange()
	if err != nil {
		return framebench.Params{}, err
	}

	concurrency := uint(1)
	if cfg.Prefetch {
		concurrency = cfg.Concurrency
		if concurrency == 0 {
			concurrency = UsableCPUs(ctx)
		}
	}

	ordering := framebench.OrderingSequenced
	if cfg.Unsequenced {
		ordering = framebench.OrderingUnsequenced
	}

	return framebench.Params{
		Range:       r,
		Concurrency: concurrency,
		Ordering:    ordering,
	}, nil
}

// ControllerOptions returns the controller options implied by the config;
// extra options are appended as is.
func (cfg Config) ControllerOptions(
	src source.AsyncFrameSource,
	extra ...framebench.Option,
) (framebench.Options, error) {
	span := cfg.SmoothingSpan
	if span <= 0 {
		span = DefaultSmoothingSpan
	}
	if _, err := indicator.New[float64](cfg.Smoothing, span); err != nil {
		return nil, fmt.Errorf("invalid smoothing settings: %w", err)
	}
	smoothing := cfg.Smoothing

	opts := framebench.Options{
		framebench.OptionRefreshInterval(cfg.RefreshInterval),
		framebench.OptionTracker{
			throughput.OptionSmoother(func() indicator.MovingAverage[float64] {
				m, _ := indicator.New[float64](smoothing, span)
				return m
			}),
		},
	}
	if cfg.ClearCache {
		clearer, ok := src.(source.CacheClearer)
		if !ok {
			return nil, fmt.Errorf("clearing the cache is requested, but source %T has no cache to clear", src)
		}
		opts = append(opts, framebench.OptionPrepHook(framebench.PrepHookClearCache(clearer)))
	}
	return append(opts, extra...), nil
}
