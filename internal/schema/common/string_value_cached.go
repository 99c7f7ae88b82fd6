package common

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

// cachedValueFetcher provides TTL-based caching for external secret providers. A zero TTL caches for the
// life of the process.
type cachedValueFetcher struct {
	mu        sync.Mutex
	data      string
	fetched   bool
	fetchedAt time.Time
	ttl       time.Duration
}

func (c *cachedValueFetcher) get(ttl string, fetch func() (string, error)) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return "", errors.Wrap(err, "invalid cache_ttl")
		}
		c.ttl = parsed
	}

	if c.fetched && (c.ttl <= 0 || time.Since(c.fetchedAt) < c.ttl) {
		return c.data, nil
	}

	data, err := fetch()
	if err != nil {
		return "", err
	}

	c.data = data
	c.fetched = true
	c.fetchedAt = time.Now()
	return c.data, nil
}
