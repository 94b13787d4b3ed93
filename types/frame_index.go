// frame_index.go defines FrameIndex, the position of a single frame in a clip.

package types

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
	"golang.org/x/exp/constraints"
)

// FrameIndex identifies a single frame. It is never negative; the zero value
// is the first frame.
type FrameIndex struct {
	value int64
}

func NewFrameIndex(v int64) (FrameIndex, error) {
	if v < 0 {
		return FrameIndex{}, ErrInvalidValue{Type: "FrameIndex", Value: v, Reason: "must not be negative"}
	}
	return FrameIndex{value: v}, nil
}

// UnsignedFrameIndex constructs a FrameIndex from a value that cannot be negative.
func UnsignedFrameIndex[T constraints.Unsigned](v T) FrameIndex {
	return FrameIndex{value: int64(v)}
}

func (f FrameIndex) Int64() int64 {
	return f.value
}

func (f FrameIndex) Compare(other FrameIndex) int {
	return cmp.Compare(f.value, other.value)
}

func (f FrameIndex) Less(other FrameIndex) bool {
	return f.value < other.value
}

// Sub returns the signed distance from other to f.
func (f FrameIndex) Sub(other FrameIndex) FrameCount {
	return FrameCount(f.value - other.value)
}

func (f FrameIndex) Add(c FrameCount) (FrameIndex, error) {
	return NewFrameIndex(f.value + int64(c))
}

func (f FrameIndex) SubCount(c FrameCount) (FrameIndex, error) {
	return NewFrameIndex(f.value - int64(c))
}

func (f FrameIndex) Next() FrameIndex {
	return FrameIndex{value: f.value + 1}
}

func (f FrameIndex) ToDuration(c FrameTimeConverter) Duration {
	return c.FrameIndexToDuration(f)
}

func (f FrameIndex) String() string {
	return strconv.FormatInt(f.value, 10)
}

func (f FrameIndex) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}

func (f *FrameIndex) UnmarshalJSON(b []byte) error {
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("unable to unmarshal FrameIndex from JSON '%s': %w", b, err)
	}
	r, err := NewFrameIndex(v)
	if err != nil {
		return err
	}
	*f = r
	return nil
}

func (f FrameIndex) MarshalYAML() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *FrameIndex) UnmarshalYAML(b []byte) error {
	var v int64
	if err := yaml.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("unable to unmarshal FrameIndex from YAML '%s': %w", b, err)
	}
	r, err := NewFrameIndex(v)
	if err != nil {
		return err
	}
	*f = r
	return nil
}
