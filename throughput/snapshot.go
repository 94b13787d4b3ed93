package throughput

import (
	"fmt"
	"time"

	"github.com/xaionaro-go/framebench/types"
)

// Snapshot is a consistent view of a Tracker at some moment.
type Snapshot struct {
	FramesCompleted types.FrameCount `json:"frames_completed"`
	FramesFailed    types.FrameCount `json:"frames_failed"`
	FramesTotal     types.FrameCount `json:"frames_total"`
	Elapsed         time.Duration    `json:"elapsed"`

	// FPS is FramesCompleted divided by Elapsed; it is zero while Elapsed is zero.
	FPS float64 `json:"fps"`

	// SmoothedFPS is the recent throughput as reported by the smoother; it
	// equals FPS if smoothing is disabled.
	SmoothedFPS float64 `json:"smoothed_fps"`

	// ETA is the expected time to complete the remaining frames; zero if unknown.
	ETA time.Duration `json:"eta"`

	Running bool `json:"running"`
}

func (s Snapshot) FramesRemaining() types.FrameCount {
	return s.FramesTotal - s.FramesCompleted
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"%d/%d frames in %s, %.4f fps",
		s.FramesCompleted, s.FramesTotal,
		FormatDuration(s.Elapsed, "%M:%S.%Z"),
		s.FPS,
	)
}
