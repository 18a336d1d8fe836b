// Package store holds the in-memory board, column and task collections the
// UI renders. Every mutation is applied only after the server confirmed it.
package store

import (
	"errors"
	"sync"

	apierrors "github.com/yukikurage/taskboard-client/internal/errors"
	"github.com/yukikurage/taskboard-client/internal/notify"
)

// collection is the state shared by every store: the items, an advisory
// loading flag and the last operation error.
type collection[T any] struct {
	sink notify.Sink

	mu       sync.RWMutex
	items    []T
	pending  int
	err      error
	watchers []func()
}

func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collection[T]) loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending > 0
}

func (c *collection[T]) lastErr() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// watch registers fn to run after every state change.
func (c *collection[T]) watch(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.watchers = append(c.watchers, fn)
}

// begin marks an operation in flight and clears the previous error. The
// returned func must be deferred.
func (c *collection[T]) begin() func() {
	c.update(func() {
		c.pending++
		c.err = nil
	})
	return func() {
		c.update(func() { c.pending-- })
	}
}

func (c *collection[T]) fail(err error) {
	c.update(func() { c.err = err })
	c.report(err)
}

func (c *collection[T]) replace(items []T) {
	c.update(func() { c.items = items })
}

func (c *collection[T]) failAndReset(err error) {
	c.update(func() {
		c.err = err
		c.items = []T{}
	})
	c.report(err)
}

// report notifies failures the transport did not announce: envelopes
// rejected with a 2xx status and local validation errors.
func (c *collection[T]) report(err error) {
	if errors.Is(err, apierrors.ErrRejected) || errors.Is(err, apierrors.ErrInvalidInput) {
		notify.Error(c.sink, apierrors.MessageOf(err))
	}
}

func (c *collection[T]) appendItem(item T) {
	c.update(func() { c.items = append(c.items, item) })
}

func (c *collection[T]) prependItem(item T) {
	c.update(func() {
		c.items = append([]T{item}, c.items...)
	})
}

// patch applies fn to the first item matching. It reports whether an item
// matched.
func (c *collection[T]) patch(match func(T) bool, fn func(T) T) (T, bool) {
	var (
		out   T
		found bool
	)
	c.update(func() {
		for i, item := range c.items {
			if match(item) {
				c.items[i] = fn(item)
				out, found = c.items[i], true
				return
			}
		}
	})
	return out, found
}

func (c *collection[T]) remove(match func(T) bool) {
	c.update(func() {
		kept := c.items[:0:0]
		for _, item := range c.items {
			if !match(item) {
				kept = append(kept, item)
			}
		}
		c.items = kept
	})
}

func (c *collection[T]) update(fn func()) {
	c.mu.Lock()
	fn()
	watchers := append([]func(){}, c.watchers...)
	c.mu.Unlock()

	for _, w := range watchers {
		w()
	}
}
