package framebench

import (
	"context"
	"fmt"
	"sync"

	"github.com/xaionaro-go/framebench/source"
	"github.com/xaionaro-go/framebench/types"
)

// manualSource resolves nothing by itself: the test decides when and how
// each request is resolved.
type manualSource struct {
	locker         sync.Mutex
	promises       []*source.Promise
	maxOutstanding int
	onRequest      func(index types.FrameIndex, outstanding []*source.Promise)
}

var _ source.AsyncFrameSource = (*manualSource)(nil)

func (s *manualSource) RequestFrame(
	ctx context.Context,
	index types.FrameIndex,
) source.FrameHandle {
	p := source.NewPromise(index)
	s.locker.Lock()
	defer s.locker.Unlock()
	s.promises = append(s.promises, p)
	outstanding := s.outstandingLocked()
	s.maxOutstanding = max(s.maxOutstanding, len(outstanding))
	if s.onRequest != nil {
		s.onRequest(index, outstanding)
	}
	return p
}

func (s *manualSource) outstandingLocked() []*source.Promise {
	var result []*source.Promise
	for _, p := range s.promises {
		select {
		case <-p.Done():
		default:
			result = append(result, p)
		}
	}
	return result
}

func (s *manualSource) RequestCount() int {
	s.locker.Lock()
	defer s.locker.Unlock()
	return len(s.promises)
}

func (s *manualSource) MaxOutstanding() int {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.maxOutstanding
}

func (s *manualSource) Requested() []int64 {
	s.locker.Lock()
	defer s.locker.Unlock()
	result := make([]int64, 0, len(s.promises))
	for _, p := range s.promises {
		result = append(result, p.Index().Int64())
	}
	return result
}

func (s *manualSource) Outstanding() []*source.Promise {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.outstandingLocked()
}

func (s *manualSource) promise(index int64) *source.Promise {
	s.locker.Lock()
	defer s.locker.Unlock()
	for _, p := range s.promises {
		if p.Index().Int64() == index {
			return p
		}
	}
	panic(fmt.Sprintf("frame %d was not requested", index))
}

func (s *manualSource) Resolve(ctx context.Context, index int64, err error) {
	s.promise(index).Resolve(ctx, index, err)
}
