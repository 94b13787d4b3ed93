// frame_range.go defines a closed range of frames and the rules to edit it.

package types

import (
	"fmt"
)

// FrameRange is the closed range [Start, End].
type FrameRange struct {
	Start FrameIndex `json:"start" yaml:"start"`
	End   FrameIndex `json:"end"   yaml:"end"`
}

func NewFrameRange(start, end FrameIndex) FrameRange {
	return FrameRange{Start: start, End: end}
}

// Total returns the amount of frames in the range; it is not positive if End < Start.
func (r FrameRange) Total() FrameCount {
	return r.End.Sub(r.Start) + 1
}

func (r FrameRange) IsValid() bool {
	return !r.End.Less(r.Start)
}

func (r FrameRange) Contains(f FrameIndex) bool {
	return !f.Less(r.Start) && !r.End.Less(f)
}

// WithStart sets the start, pulling the end along if it would be before the start.
func (r FrameRange) WithStart(start FrameIndex) FrameRange {
	r.Start = start
	if r.End.Less(start) {
		r.End = start
	}
	return r
}

// WithEnd sets the end, pulling the start along if it would be after the end.
func (r FrameRange) WithEnd(end FrameIndex) FrameRange {
	r.End = end
	if end.Less(r.Start) {
		r.Start = end
	}
	return r
}

// WithTotal resizes the range to contain "total" frames by moving the end.
// If the end would go past "last", the range is shifted back (but never
// before frame 0) and the end is clamped to "last".
func (r FrameRange) WithTotal(total FrameCount, last FrameIndex) (FrameRange, error) {
	if total < 1 {
		return r, ErrInvalidValue{Type: "FrameCount", Value: total, Reason: "a range contains at least one frame"}
	}

	end, err := r.End.Add(total - r.Total())
	if err != nil {
		return r, fmt.Errorf("unable to move the end of %s: %w", r, err)
	}
	if last.Less(end) {
		start, err := r.Start.SubCount(end.Sub(last))
		if err != nil {
			start = FrameIndex{}
		}
		r.Start = start
		end = last
	}
	r.End = end
	return r, nil
}

func (r FrameRange) String() string {
	return fmt.Sprintf("[%s..%s]", r.Start, r.End)
}
