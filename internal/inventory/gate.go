package inventory

import (
	"context"
	"sync"
)

// State identifies where a gated collection currently stands.
type State int

const (
	// NotLoaded means no collection has been requested yet.
	NotLoaded State = iota
	// Loading means a collection is in flight.
	Loading
	// Loaded means the cached result is available. Terminal.
	Loaded
)

// Gate runs a slow collection at most once and caches its result for the
// process lifetime. Concurrent triggers share the single in-flight call.
type Gate[T any] struct {
	collect func(ctx context.Context) T

	mu     sync.Mutex
	state  State
	result T
	done   chan struct{}
}

// NewGate wraps collect so it runs at most once.
func NewGate[T any](collect func(ctx context.Context) T) *Gate[T] {
	return &Gate[T]{
		collect: collect,
		done:    make(chan struct{}),
	}
}

// Trigger starts the collection unless one already ran or is in flight.
// It returns immediately; results are published through Wait and Peek.
// The collection is detached from ctx cancellation so a departing caller
// cannot poison the cached result.
func (g *Gate[T]) Trigger(ctx context.Context) {
	g.mu.Lock()
	if g.state != NotLoaded {
		g.mu.Unlock()
		return
	}
	g.state = Loading
	g.mu.Unlock()

	ctx = context.WithoutCancel(ctx)
	go func() {
		result := g.collect(ctx)

		g.mu.Lock()
		g.result = result
		g.state = Loaded
		g.mu.Unlock()
		close(g.done)
	}()
}

// Wait triggers the collection if needed and blocks until it completes
// or ctx expires. Once loaded, it returns the cached result immediately.
func (g *Gate[T]) Wait(ctx context.Context) (T, error) {
	g.Trigger(ctx)

	select {
	case <-g.done:
		g.mu.Lock()
		defer g.mu.Unlock()
		return g.result, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Peek returns the cached result without triggering a collection.
func (g *Gate[T]) Peek() (T, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result, g.state == Loaded
}

// State reports the current load state.
func (g *Gate[T]) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
