package framebench

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/framebench/throughput"
	"github.com/xaionaro-go/framebench/types"
)

// Result is the outcome of a finished (completed or aborted) run.
type Result struct {
	RunID           uuid.UUID
	Params          Params
	State           State
	StartedAt       time.Time
	Stats           throughput.Snapshot
	FramesRequested types.FrameCount
	FramesFailed    types.FrameCount

	// Errors are the decode failures in the order they were consumed.
	Errors []error
}

// Err folds all the decode failures into one error; nil if there were none.
func (r *Result) Err() error {
	if r == nil || len(r.Errors) == 0 {
		return nil
	}
	var result *multierror.Error
	for _, err := range r.Errors {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (r *Result) String() string {
	if r == nil {
		return "<nil>"
	}
	return fmt.Sprintf("run %s %s: %s (%d failed)", r.RunID, r.State, r.Stats, r.FramesFailed)
}
