package source

import (
	"fmt"

	"github.com/xaionaro-go/framebench/types"
)

type ErrDecode struct {
	Index types.FrameIndex
	Err   error
}

func (e ErrDecode) Error() string {
	return fmt.Sprintf("unable to decode frame %s: %v", e.Index, e.Err)
}

func (e ErrDecode) Unwrap() error {
	return e.Err
}

type ErrClosed struct{}

func (ErrClosed) Error() string {
	return "the source is closed"
}
