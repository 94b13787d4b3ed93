package framebench

import (
	"fmt"
)

// ErrInvalidConfig is returned by Start if the run parameters are not usable.
type ErrInvalidConfig struct {
	Params Params
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid run parameters %s: %s", e.Params, e.Reason)
}

// ErrInvalidState is returned if the requested operation is not allowed in
// the current state of the controller.
type ErrInvalidState struct {
	Operation string
	State     State
}

func (e ErrInvalidState) Error() string {
	return fmt.Sprintf("cannot %s while the benchmark is %s", e.Operation, e.State)
}

// ErrPrep is returned by Start if the prep hook failed; nothing was requested.
type ErrPrep struct {
	Err error
}

func (e ErrPrep) Error() string {
	return fmt.Sprintf("unable to prepare the run: %v", e.Err)
}

func (e ErrPrep) Unwrap() error {
	return e.Err
}
