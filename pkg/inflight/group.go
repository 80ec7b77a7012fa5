package inflight

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Func performs the underlying fetch. The context it receives is cancelled
// only when every caller waiting for the result has gone away.
type Func func(ctx context.Context) (any, error)

// call is one pending fetch.
type call struct {
	done    chan struct{}
	val     any
	err     error
	waiters int
	cancel  context.CancelFunc
}

// Group de-duplicates concurrent fetches by Key. The zero value is not usable;
// create one with NewGroup.
type Group struct {
	mu     sync.Mutex
	calls  map[string]*call
	logger zerolog.Logger
}

// NewGroup creates an empty group.
func NewGroup(logger zerolog.Logger) *Group {
	return &Group{
		calls:  make(map[string]*call),
		logger: logger,
	}
}

// Do runs fn once for all concurrent callers of the same key and returns its
// result. shared reports whether the caller attached to a fetch started by
// someone else. If ctx ends first, Do returns ctx.Err() without waiting.
func (g *Group) Do(ctx context.Context, key Key, fn Func) (v any, shared bool, err error) {
	k := key.String()

	g.mu.Lock()
	if c, ok := g.calls[k]; ok {
		c.waiters++
		g.mu.Unlock()

		FlightsShared.Inc()
		g.logger.Debug().Str("key", k).Msg("Attached to pending fetch")
		return g.wait(ctx, k, c, true)
	}

	// The fetch outlives any single caller, so it gets its own cancellation.
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c := &call{
		done:    make(chan struct{}),
		waiters: 1,
		cancel:  cancel,
	}
	g.calls[k] = c
	g.mu.Unlock()

	FlightsStarted.Inc()
	FlightsPending.Inc()
	g.logger.Debug().Str("key", k).Msg("Starting fetch")

	go g.run(fetchCtx, k, c, fn)

	return g.wait(ctx, k, c, false)
}

// run executes fn and publishes the result. The entry is removed before the
// result becomes visible, so later callers always start a new fetch.
func (g *Group) run(ctx context.Context, k string, c *call, fn Func) {
	defer c.cancel()

	c.val, c.err = fn(ctx)

	g.mu.Lock()
	if g.calls[k] == c {
		delete(g.calls, k)
	}
	g.mu.Unlock()

	FlightsPending.Dec()
	close(c.done)
}

func (g *Group) wait(ctx context.Context, k string, c *call, shared bool) (any, bool, error) {
	select {
	case <-c.done:
		return c.val, shared, c.err
	case <-ctx.Done():
	}

	g.mu.Lock()
	c.waiters--
	last := c.waiters == 0
	if last && g.calls[k] == c {
		delete(g.calls, k)
	}
	g.mu.Unlock()

	WaitersDetached.Inc()
	if last {
		FlightsAborted.Inc()
		c.cancel()
		g.logger.Debug().Str("key", k).Msg("Last caller detached, fetch cancelled")
	} else {
		g.logger.Debug().Str("key", k).Msg("Caller detached from pending fetch")
	}

	return nil, shared, ctx.Err()
}

// Waiters returns the number of callers currently waiting on key.
func (g *Group) Waiters(key Key) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.calls[key.String()]; ok {
		return c.waiters
	}
	return 0
}

// Len returns the number of pending fetches.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
