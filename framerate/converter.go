// converter.go implements the frame-rate based mapping between frames and time.

// Package framerate converts between frame indices and time positions for a
// given frame rate.
package framerate

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/xaionaro-go/framebench/logger"
	"github.com/xaionaro-go/framebench/types"
)

// Converter maps frames to time and back for a fixed frame rate.
//
// All conversions are done in integer arithmetic and round halfway values up
// (away from zero for negative intervals), so the results are deterministic.
// A round trip frame->time->frame is exact within ±1 frame for frame rates up
// to 1000 fps; it is not guaranteed to be exact. Results that do not fit into
// int64 saturate.
type Converter struct {
	fps types.Rational

	// exact decimals like "23.976023976023976" have denominators close to
	// 1e15, so the intermediate products need more than 64 bits
	msPerFrameNum *big.Int
	msPerFrameDen *big.Int
}

var _ types.FrameTimeConverter = (*Converter)(nil)

func New(
	fps types.Rational,
	opts ...Option,
) (*Converter, error) {
	cfg := Options(opts).config()
	if fps.Num == 0 && fps.Den > 0 && cfg.ZeroFPSFallback {
		logger.Warnf(context.TODO(), "frame rate %s is zero, falling back to 1/1", fps)
		fps = types.Rational{Num: 1, Den: 1}
	}
	if !fps.IsPositive() {
		return nil, types.ErrInvalidValue{Type: "frame rate", Value: fps, Reason: "must be positive"}
	}
	fps = fps.Reduce()
	return &Converter{
		fps:           fps,
		msPerFrameNum: new(big.Int).Mul(big.NewInt(fps.Den), big.NewInt(1000)),
		msPerFrameDen: big.NewInt(fps.Num),
	}, nil
}

func (c *Converter) FPS() types.Rational {
	return c.fps
}

func (c *Converter) Float64() float64 {
	return c.fps.Float64()
}

func (c *Converter) String() string {
	return fmt.Sprintf("Converter(%s fps)", c.fps)
}

// millisFromFrames = round(frames / fps * 1000)
func (c *Converter) millisFromFrames(frames int64) int64 {
	return mulDivRound(frames, c.msPerFrameNum, c.msPerFrameDen)
}

// framesFromMillis = round(ms / 1000 * fps)
func (c *Converter) framesFromMillis(ms int64) int64 {
	return mulDivRound(ms, c.msPerFrameDen, c.msPerFrameNum)
}

func (c *Converter) FrameIndexToDuration(f types.FrameIndex) types.Duration {
	return types.UnsignedDuration(uint64(c.millisFromFrames(f.Int64())))
}

func (c *Converter) DurationToFrameIndex(d types.Duration) types.FrameIndex {
	return types.UnsignedFrameIndex(uint64(c.framesFromMillis(d.Milliseconds())))
}

func (c *Converter) FrameCountToInterval(n types.FrameCount) types.DurationInterval {
	return types.DurationInterval(c.millisFromFrames(n.Int64()))
}

func (c *Converter) IntervalToFrameCount(i types.DurationInterval) types.FrameCount {
	return types.FrameCount(c.framesFromMillis(i.Milliseconds()))
}

// mulDivRound returns v*num/den rounding halfway values away from zero; den
// must be positive. num and den are not modified.
func mulDivRound(v int64, num, den *big.Int) int64 {
	n := new(big.Int).Mul(big.NewInt(v), num)
	n.Lsh(n, 1)
	if n.Sign() < 0 {
		n.Sub(n, den)
	} else {
		n.Add(n, den)
	}
	n.Quo(n, new(big.Int).Lsh(den, 1))
	switch {
	case n.IsInt64():
		return n.Int64()
	case n.Sign() < 0:
		return math.MinInt64
	default:
		return math.MaxInt64
	}
}
