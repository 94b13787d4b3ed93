// duration.go defines millisecond-precision time positions and time spans.

package types

import (
	"cmp"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
	"golang.org/x/exp/constraints"
)

// Duration is a non-negative time position within a clip, with a millisecond
// precision.
type Duration struct {
	ms int64
}

func NewDuration(milliseconds int64) (Duration, error) {
	if milliseconds < 0 {
		return Duration{}, ErrInvalidValue{Type: "Duration", Value: milliseconds, Reason: "must not be negative"}
	}
	return Duration{ms: milliseconds}, nil
}

// UnsignedDuration constructs a Duration from a non-negative amount of milliseconds.
func UnsignedDuration[T constraints.Unsigned](milliseconds T) Duration {
	return Duration{ms: int64(milliseconds)}
}

// DurationFromStd rounds d to the nearest millisecond (halfway values away from zero).
func DurationFromStd(d time.Duration) (Duration, error) {
	return NewDuration(roundToMillis(d))
}

func (d Duration) Milliseconds() int64 {
	return d.ms
}

func (d Duration) Std() time.Duration {
	return time.Duration(d.ms) * time.Millisecond
}

func (d Duration) Compare(other Duration) int {
	return cmp.Compare(d.ms, other.ms)
}

func (d Duration) Sub(other Duration) DurationInterval {
	return DurationInterval(d.ms - other.ms)
}

func (d Duration) Add(i DurationInterval) (Duration, error) {
	return NewDuration(d.ms + int64(i))
}

func (d Duration) ToFrameIndex(c FrameTimeConverter) FrameIndex {
	return c.DurationToFrameIndex(d)
}

func (d Duration) String() string {
	return formatMillis(d.ms)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Std().String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal Duration from JSON '%s': %w", b, err)
	}
	return d.parse(s)
}

func (d Duration) MarshalYAML() ([]byte, error) {
	return []byte(d.Std().String()), nil
}

func (d *Duration) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal Duration from YAML '%s': %w", b, err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	std, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("unable to parse Duration from %q: %w", s, err)
	}
	r, err := DurationFromStd(std)
	if err != nil {
		return err
	}
	*d = r
	return nil
}

// DurationInterval is a signed time span with a millisecond precision.
type DurationInterval int64

// IntervalFromStd rounds d to the nearest millisecond (halfway values away from zero).
func IntervalFromStd(d time.Duration) DurationInterval {
	return DurationInterval(roundToMillis(d))
}

func (i DurationInterval) Milliseconds() int64 {
	return int64(i)
}

func (i DurationInterval) Seconds() float64 {
	return float64(i) / 1000
}

func (i DurationInterval) Std() time.Duration {
	return time.Duration(i) * time.Millisecond
}

func (i DurationInterval) Mul(k int64) DurationInterval {
	return i * DurationInterval(k)
}

func (i DurationInterval) Div(d float64) (DurationInterval, error) {
	if d == 0 {
		return 0, ErrInvalidValue{Type: "divisor", Value: d}
	}
	return IntervalFromStd(time.Duration(float64(i.Std()) / d)), nil
}

func (i DurationInterval) ToFrameCount(c FrameTimeConverter) FrameCount {
	return c.IntervalToFrameCount(i)
}

func (i DurationInterval) String() string {
	if i < 0 {
		return "-" + formatMillis(-int64(i))
	}
	return formatMillis(int64(i))
}

func (i DurationInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Std().String())
}

func (i *DurationInterval) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal DurationInterval from JSON '%s': %w", b, err)
	}
	return i.parse(s)
}

func (i DurationInterval) MarshalYAML() ([]byte, error) {
	return []byte(i.Std().String()), nil
}

func (i *DurationInterval) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal DurationInterval from YAML '%s': %w", b, err)
	}
	return i.parse(s)
}

func (i *DurationInterval) parse(s string) error {
	std, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("unable to parse DurationInterval from %q: %w", s, err)
	}
	*i = IntervalFromStd(std)
	return nil
}

func roundToMillis(d time.Duration) int64 {
	return int64(d.Round(time.Millisecond) / time.Millisecond)
}

// formatMillis renders as h:MM:SS.mmm
func formatMillis(ms int64) string {
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms%1000)
}
