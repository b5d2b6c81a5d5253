package query

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/nurpe/contracts-admin/internal/metrics"
)

// Query describes one cached read. StaleTime zero means every read fetches.
type Query[T any] struct {
	Key       Key
	Fn        func(ctx context.Context) (T, error)
	StaleTime time.Duration
}

// Result is what a page renders for one query. Data holds the last
// successful value for the key even when IsError is set.
type Result[T any] struct {
	Data          T
	IsLoading     bool
	IsError       bool
	Err           error
	IsPlaceholder bool
	UpdatedAt     time.Time
}

// HasData reports whether Data is usable, either fresh or placeholder.
func (r Result[T]) HasData() bool {
	return !r.UpdatedAt.IsZero() || r.IsPlaceholder
}

type entry struct {
	key           Key
	data          any
	hasData       bool
	updatedAt     time.Time
	stale         bool
	invalidations uint64
	dataSeq       uint64
}

type Option func(*Client)

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// Client is a per-session query cache.
type Client struct {
	mu        sync.Mutex
	entries   map[string]*entry
	observers map[string]any
	lastUsed  time.Time

	group singleflight.Group
	now   func() time.Time
	log   zerolog.Logger
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		entries:   make(map[string]*entry),
		observers: make(map[string]any),
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastUsed = c.now()
	return c
}

// Fetch serves q from the cache while it is fresh and otherwise runs q.Fn,
// sharing one call among concurrent readers of the same key. The call is
// not cancelled when ctx ends: the caller gets a loading result and the
// value lands in the cache for the next read.
func Fetch[T any](ctx context.Context, c *Client, q Query[T]) Result[T] {
	id := q.Key.String()

	c.mu.Lock()
	now := c.now()
	c.lastUsed = now
	e, ok := c.entries[id]
	if !ok {
		e = &entry{key: q.Key}
		c.entries[id] = e
	}
	prev, prevOK := cached[T](e)
	prevAt := e.updatedAt
	if prevOK && !e.stale && q.StaleTime > 0 && now.Sub(prevAt) < q.StaleTime {
		c.mu.Unlock()
		metrics.CacheHit()
		return Result[T]{Data: prev, UpdatedAt: prevAt}
	}
	seq := e.invalidations
	c.mu.Unlock()

	// a read issued after an invalidation never joins a flight started before it
	flight := id + "#" + strconv.FormatUint(seq, 10)
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flight, func() (any, error) {
		v, err := q.Fn(detached)
		if err == nil {
			c.store(id, q.Key, v, seq)
		}
		return v, err
	})

	select {
	case out := <-ch:
		if out.Shared {
			metrics.CacheDedup()
		} else {
			metrics.CacheMiss()
		}
		if out.Err != nil {
			c.log.Debug().Err(out.Err).Str("key", id).Msg("query failed")
			res := Result[T]{IsError: true, Err: out.Err}
			if prevOK {
				res.Data = prev
				res.UpdatedAt = prevAt
			}
			return res
		}
		v, _ := out.Val.(T)
		return Result[T]{Data: v, UpdatedAt: c.updatedAt(id)}
	case <-ctx.Done():
		res := Result[T]{IsLoading: true}
		if prevOK {
			res.Data = prev
			res.UpdatedAt = prevAt
		}
		return res
	}
}

// peek returns cached data for key without fetching.
func peek[T any](c *Client, key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		var zero T
		return zero, false
	}
	return cached[T](e)
}

func cached[T any](e *entry) (T, bool) {
	if !e.hasData {
		var zero T
		return zero, false
	}
	v, ok := e.data.(T)
	return v, ok
}

func (c *Client) store(id string, key Key, v any, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{key: key}
		c.entries[id] = e
	}
	if e.hasData && seq < e.dataSeq {
		return
	}
	e.data = v
	e.hasData = true
	e.dataSeq = seq
	e.updatedAt = c.now()
	// invalidated while in flight: keep the value but never serve it as fresh
	e.stale = e.invalidations != seq
}

func (c *Client) updatedAt(id string) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[id]; ok {
		return e.updatedAt
	}
	return time.Time{}
}

// Invalidate marks every entry under prefix stale and returns how many
// entries matched.
func (c *Client) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
			e.invalidations++
			n++
		}
	}
	c.log.Debug().Str("prefix", prefix.String()).Int("entries", n).Msg("cache invalidated")
	return n
}

// Clear forgets every entry and observer.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.observers = make(map[string]any)
}

func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Client) idleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastUsed
}
