// Package query caches fetched lists with a freshness window. Concurrent reads
// of one key share a single fetch, and Invalidate forces the next read to go
// back to the source.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/inventory-client/internal/cache"
	"github.com/aaravmahajanofficial/inventory-client/internal/metrics"
	"golang.org/x/sync/singleflight"
)

const DefaultStaleTime = 30 * time.Second

type entry struct {
	updatedAt  time.Time
	generation uint64
	fetching   int
	err        error
}

type Client struct {
	cache     cache.Cache
	staleTime time.Duration
	now       func() time.Time
	group     singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
}

type Option func(*Client)

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func New(store cache.Cache, staleTime time.Duration, opts ...Option) *Client {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}

	c := &Client{
		cache:     store,
		staleTime: staleTime,
		now:       time.Now,
		entries:   make(map[string]*entry),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func storeKey(key string) string {
	return cache.Key(cache.QueryKeyPrefix, key)
}

// must hold c.mu
func (c *Client) entry(key string) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	return e
}

// IsFresh reports whether key holds data fetched within the stale window and
// not invalidated since.
func (c *Client) IsFresh(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return ok && !e.updatedAt.IsZero() && c.now().Sub(e.updatedAt) < c.staleTime
}

func (c *Client) IsFetching(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	return ok && e.fetching > 0
}

// Err is the error of the last fetch of key, nil once a fetch succeeds.
func (c *Client) Err(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		return e.err
	}
	return nil
}

// Invalidate drops the stored value of key. A fetch already in flight still
// answers its callers but no longer counts as fresh.
func (c *Client) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	e := c.entry(key)
	e.updatedAt = time.Time{}
	e.generation++
	c.mu.Unlock()

	c.group.Forget(key)

	if err := c.cache.Delete(ctx, storeKey(key)); err != nil {
		return fmt.Errorf("invalidating %s: %w", key, err)
	}

	return nil
}

// Fetch returns the cached value of key while it is fresh, otherwise calls fn.
// Callers that arrive while fn runs share its result. fn runs detached from
// ctx cancellation, so one caller giving up does not fail the others.
func Fetch[T any](ctx context.Context, c *Client, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	if c.IsFresh(key) {
		var cached T
		found, err := c.cache.Get(ctx, storeKey(key), &cached)
		if err != nil {
			slog.Warn("Query cache read failed, refetching", slog.String("key", key), slog.Any("error", err))
		}
		if found {
			metrics.ObserveQuery("hit")
			return cached, nil
		}
	}

	// The flight outlives any single caller, so it never sees a caller's
	// cancellation. Each caller still stops waiting when its own ctx ends.
	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return run(flightCtx, c, key, fn)
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.ObserveQuery("shared")
		} else {
			metrics.ObserveQuery("miss")
		}

		if res.Err != nil {
			return zero, res.Err
		}

		return res.Val.(T), nil
	}
}

func run[T any](ctx context.Context, c *Client, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	c.mu.Lock()
	e := c.entry(key)
	e.fetching++
	generation := e.generation
	c.mu.Unlock()

	v, err := fn(ctx)

	c.mu.Lock()
	stale := e.generation != generation
	c.mu.Unlock()

	if err == nil && !stale {
		if setErr := c.cache.Set(ctx, storeKey(key), v, 0); setErr != nil {
			slog.Warn("Query cache write failed", slog.String("key", key), slog.Any("error", setErr))
		}
	}

	c.mu.Lock()
	e.fetching--
	e.err = err
	if err == nil && !stale {
		e.updatedAt = c.now()
	}
	c.mu.Unlock()

	return v, err
}

// Peek reads whatever is stored for key without fetching.
func Peek[T any](ctx context.Context, c *Client, key string) (T, bool, error) {
	var v T

	found, err := c.cache.Get(ctx, storeKey(key), &v)
	if err != nil {
		return v, false, fmt.Errorf("peeking %s: %w", key, err)
	}

	return v, found, nil
}
