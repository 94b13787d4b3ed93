package framebench

import (
	"fmt"

	"github.com/xaionaro-go/framebench/types"
)

type Ordering int

const (
	// OrderingSequenced issues requests in ascending order and consumes the
	// results in the same order, keeping at most Concurrency requests ahead.
	OrderingSequenced Ordering = iota

	// OrderingUnsequenced consumes results in whatever order they resolve;
	// each resolution immediately frees a slot for the next index.
	OrderingUnsequenced
)

func (o Ordering) String() string {
	switch o {
	case OrderingSequenced:
		return "sequenced"
	case OrderingUnsequenced:
		return "unsequenced"
	default:
		return fmt.Sprintf("unknown_ordering_%d", int(o))
	}
}

// Params describes a single benchmark run.
type Params struct {
	Range       types.FrameRange
	Concurrency uint
	Ordering    Ordering
}

func (p Params) String() string {
	return fmt.Sprintf("{range:%s concurrency:%d ordering:%s}", p.Range, p.Concurrency, p.Ordering)
}

func (p Params) validate() error {
	if !p.Range.IsValid() {
		return ErrInvalidConfig{Params: p, Reason: "the start of the range is after its end"}
	}
	if p.Concurrency < 1 {
		return ErrInvalidConfig{Params: p, Reason: "the concurrency must be at least 1"}
	}
	switch p.Ordering {
	case OrderingSequenced, OrderingUnsequenced:
	default:
		return ErrInvalidConfig{Params: p, Reason: "unknown ordering"}
	}
	return nil
}
