package exchange

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Cached wraps a Provider with in-memory TTL caching so the display path
// does not hit the rate API on every render.
type Cached struct {
	inner Provider
	ttl   time.Duration

	mu        sync.Mutex
	rate      Rate
	fetchedAt time.Time
}

// NewCached returns a provider that caches the fetched rate for ttl.
func NewCached(inner Provider, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Cached{inner: inner, ttl: ttl}
}

// FetchRate returns the cached rate when fresh, refreshing it otherwise.
// A failed refresh is returned as-is; the caller's fallback handles it.
func (c *Cached) FetchRate(ctx context.Context) (Rate, error) {
	if c.inner == nil {
		return Rate{}, errors.New("inner rate provider is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if !c.fetchedAt.IsZero() && now.Sub(c.fetchedAt) < c.ttl {
		return c.rate, nil
	}

	rate, err := c.inner.FetchRate(ctx)
	if err != nil {
		return Rate{}, err
	}

	c.rate = rate
	c.fetchedAt = now
	return rate, nil
}
