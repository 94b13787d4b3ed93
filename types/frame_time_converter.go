package types

// FrameTimeConverter maps between the frame domain and the time domain.
//
// The mapping depends on a frame rate and is lossy (it rounds), so it is never
// performed implicitly: every conversion method of the value types takes one.
type FrameTimeConverter interface {
	FrameIndexToDuration(FrameIndex) Duration
	DurationToFrameIndex(Duration) FrameIndex
	FrameCountToInterval(FrameCount) DurationInterval
	IntervalToFrameCount(DurationInterval) FrameCount
}
