package framebench

import (
	"time"

	"github.com/xaionaro-go/framebench/source"
	"github.com/xaionaro-go/framebench/types"
)

type inFlightRequest struct {
	Handle      source.FrameHandle
	RequestedAt time.Time
}

// inFlightQueue keeps the outstanding requests in the order they were issued.
// Its capacity is the concurrency of the run and it never grows.
type inFlightQueue struct {
	items []inFlightRequest
}

func newInFlightQueue(capacity uint) inFlightQueue {
	return inFlightQueue{items: make([]inFlightRequest, 0, capacity)}
}

func (q *inFlightQueue) Len() int {
	return len(q.items)
}

func (q *inFlightQueue) IsFull() bool {
	return len(q.items) == cap(q.items)
}

func (q *inFlightQueue) Push(req inFlightRequest) {
	if q.IsFull() {
		panic("internal error: too many requests in flight")
	}
	q.items = append(q.items, req)
}

// Front returns the oldest request.
func (q *inFlightQueue) Front() (inFlightRequest, bool) {
	if len(q.items) == 0 {
		return inFlightRequest{}, false
	}
	return q.items[0], true
}

// Remove removes the request of the given frame keeping the order of the rest.
// Handles are matched by index (unique within a run), so they need not be comparable.
func (q *inFlightQueue) Remove(index types.FrameIndex) (inFlightRequest, bool) {
	for idx, req := range q.items {
		if req.Handle.Index() != index {
			continue
		}
		copy(q.items[idx:], q.items[idx+1:])
		q.items[len(q.items)-1] = inFlightRequest{}
		q.items = q.items[:len(q.items)-1]
		return req, true
	}
	return inFlightRequest{}, false
}
