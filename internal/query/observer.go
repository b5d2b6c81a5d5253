package query

import (
	"context"
	"sync"
)

// Observer follows the query currently on screen for one series, such as
// the contracts table. While the current key has no data the last resolved
// value of the series is returned as a placeholder.
type Observer[T any] struct {
	mu      sync.Mutex
	gen     uint64
	current Key
	last    T
	lastKey Key
	hasLast bool
}

// ObserverFor returns the session's observer for series, creating it on
// first use.
func ObserverFor[T any](c *Client, series string) *Observer[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o, ok := c.observers[series].(*Observer[T]); ok {
		return o
	}
	o := &Observer[T]{}
	c.observers[series] = o
	return o
}

func (o *Observer[T]) Observe(ctx context.Context, c *Client, q Query[T]) Result[T] {
	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.current = q.Key
	o.mu.Unlock()

	res := Fetch(ctx, c, q)
	resolved := !res.IsLoading && !res.IsError

	o.mu.Lock()
	defer o.mu.Unlock()

	// a newer key took over while this one was in flight; its data is cached
	// under its own key but never becomes the series placeholder
	if resolved && gen == o.gen {
		o.last, o.lastKey, o.hasLast = res.Data, q.Key, true
		return res
	}
	if resolved {
		return res
	}
	if res.UpdatedAt.IsZero() && o.hasLast {
		res.Data = o.last
		res.IsPlaceholder = true
	}
	return res
}

// Current is the key of the latest Observe call.
func (o *Observer[T]) Current() Key {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}
