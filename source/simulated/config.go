package simulated

import (
	"time"

	"github.com/xaionaro-go/framebench/types"
)

type Config struct {
	// Workers is the amount of decoding goroutines; zero means one.
	Workers uint `yaml:"workers"`

	// Latency is how long decoding of a single frame takes.
	Latency time.Duration `yaml:"latency"`

	// Jitter is the upper bound of a random delay added to Latency.
	Jitter time.Duration `yaml:"jitter"`

	// FailEvery makes every n-th frame (by index) fail to decode; zero disables.
	FailEvery uint64 `yaml:"fail_every"`

	// FrameCount is the length of the clip; zero means unlimited.
	FrameCount types.FrameCount `yaml:"frame_count"`

	// CacheSize is the amount of decoded frames kept for reuse; zero disables caching.
	CacheSize uint `yaml:"cache_size"`
}
