// simulated.go implements an in-process frame source backed by a worker pool.

// Package simulated provides an AsyncFrameSource which "decodes" frames by
// sleeping, for benchmarking the pipeline logic itself and for tests.
package simulated

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/benbjohnson/clock"
	"github.com/xaionaro-go/framebench/logger"
	"github.com/xaionaro-go/framebench/source"
	"github.com/xaionaro-go/framebench/types"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/xsync"
	"go.uber.org/atomic"
)

type Frame struct {
	Index  types.FrameIndex
	Cached bool
}

type request struct {
	Promise *source.Promise
}

type Source struct {
	Config Config
	Clock  clock.Clock

	locker     xsync.Mutex
	queue      []request
	cache      map[types.FrameIndex]struct{}
	cacheOrder []types.FrameIndex
	closed     bool
	wakeCh     chan struct{}
	closeCh    chan struct{}

	RequestCount atomic.Uint64
	DecodeCount  atomic.Uint64
	CacheHits    atomic.Uint64
	InFlight     atomic.Int64
	MaxInFlight  atomic.Int64
}

var _ source.AsyncFrameSource = (*Source)(nil)
var _ source.CacheClearer = (*Source)(nil)

func New(
	ctx context.Context,
	cfg Config,
	clk clock.Clock,
) *Source {
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if clk == nil {
		clk = clock.New()
	}
	s := &Source{
		Config:  cfg,
		Clock:   clk,
		cache:   map[types.FrameIndex]struct{}{},
		wakeCh:  make(chan struct{}, cfg.Workers),
		closeCh: make(chan struct{}),
	}
	for i := uint(0); i < cfg.Workers; i++ {
		observability.Go(ctx, func(ctx context.Context) {
			s.worker(ctx)
		})
	}
	return s
}

func (s *Source) String() string {
	return fmt.Sprintf("simulated(workers:%d, latency:%s)", s.Config.Workers, s.Config.Latency)
}

func (s *Source) RequestFrame(
	ctx context.Context,
	index types.FrameIndex,
) source.FrameHandle {
	logger.Tracef(ctx, "RequestFrame(%s)", index)
	s.RequestCount.Inc()
	inFlight := s.InFlight.Inc()
	for {
		max := s.MaxInFlight.Load()
		if inFlight <= max || s.MaxInFlight.CompareAndSwap(max, inFlight) {
			break
		}
	}

	p := source.NewPromise(index)

	var (
		hit    bool
		closed bool
	)
	s.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		if s.closed {
			closed = true
			return
		}
		if _, hit = s.cache[index]; hit {
			return
		}
		s.queue = append(s.queue, request{Promise: p})
	})
	switch {
	case closed:
		s.resolve(ctx, p, nil, source.ErrClosed{})
	case hit:
		s.CacheHits.Inc()
		s.resolve(ctx, p, Frame{Index: index, Cached: true}, nil)
	default:
		select {
		case s.wakeCh <- struct{}{}:
		default:
		}
	}
	return p
}

func (s *Source) ClearCache(ctx context.Context) error {
	logger.Debugf(ctx, "ClearCache")
	s.locker.Do(ctx, func() {
		s.cache = map[types.FrameIndex]struct{}{}
		s.cacheOrder = s.cacheOrder[:0]
	})
	return nil
}

// Close stops the workers; requests which are still queued fail with ErrClosed.
func (s *Source) Close(ctx context.Context) error {
	var queue []request
	s.locker.Do(ctx, func() {
		if s.closed {
			return
		}
		s.closed = true
		close(s.closeCh)
		queue, s.queue = s.queue, nil
	})
	for _, req := range queue {
		s.resolve(ctx, req.Promise, nil, source.ErrClosed{})
	}
	return nil
}

func (s *Source) popRequest(ctx context.Context) (request, bool) {
	return xsync.DoR2(xsync.WithNoLogging(ctx, true), &s.locker, func() (request, bool) {
		if len(s.queue) == 0 {
			return request{}, false
		}
		req := s.queue[0]
		s.queue[0] = request{}
		s.queue = s.queue[1:]
		return req, true
	})
}

func (s *Source) worker(ctx context.Context) {
	for {
		req, ok := s.popRequest(ctx)
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-s.closeCh:
				return
			case <-s.wakeCh:
			}
			continue
		}
		frame, err := s.decode(ctx, req.Promise.Index())
		s.resolve(ctx, req.Promise, frame, err)
	}
}

// resolve leaves the in-flight accounting before the result becomes
// observable, so a consumer reacting to it never sees a stale counter.
func (s *Source) resolve(
	ctx context.Context,
	p *source.Promise,
	frame source.Frame,
	err error,
) {
	s.InFlight.Dec()
	p.Resolve(ctx, frame, err)
}

func (s *Source) decode(
	ctx context.Context,
	index types.FrameIndex,
) (_ source.Frame, _err error) {
	logger.Tracef(ctx, "decode(%s)", index)
	defer func() { logger.Tracef(ctx, "/decode(%s): %v", index, _err) }()

	delay := s.Config.Latency
	if s.Config.Jitter > 0 {
		delay += rand.N(s.Config.Jitter)
	}
	if delay > 0 {
		s.Clock.Sleep(delay)
	}
	s.DecodeCount.Inc()

	if s.Config.FrameCount > 0 && index.Int64() >= s.Config.FrameCount.Int64() {
		return nil, fmt.Errorf("frame %s is out of the clip of %s frames", index, s.Config.FrameCount)
	}
	if n := s.Config.FailEvery; n > 0 && uint64(index.Int64())%n == n-1 {
		return nil, fmt.Errorf("simulated decoding failure")
	}

	s.remember(ctx, index)
	return Frame{Index: index}, nil
}

func (s *Source) remember(ctx context.Context, index types.FrameIndex) {
	if s.Config.CacheSize == 0 {
		return
	}
	s.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		if _, ok := s.cache[index]; ok {
			return
		}
		if uint(len(s.cacheOrder)) >= s.Config.CacheSize {
			delete(s.cache, s.cacheOrder[0])
			s.cacheOrder = s.cacheOrder[1:]
		}
		s.cache[index] = struct{}{}
		s.cacheOrder = append(s.cacheOrder, index)
	})
}
