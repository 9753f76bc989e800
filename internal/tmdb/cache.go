package tmdb

import (
	"sync"
	"time"
)

// cache holds decoded movies for ttl. Expired entries are swept on
// write, so the map stays bounded by what was fetched within one ttl.
type cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	movies  map[int64]*Movie
	expires map[int64]time.Time
}

func newCache(ttl time.Duration) *cache {
	return &cache{
		ttl:     ttl,
		now:     time.Now,
		movies:  make(map[int64]*Movie),
		expires: make(map[int64]time.Time),
	}
}

func (c *cache) get(id int64) (*Movie, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exp, ok := c.expires[id]
	if !ok || !c.now().Before(exp) {
		return nil, false
	}
	return c.movies[id], true
}

func (c *cache) set(id int64, m *Movie) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, exp := range c.expires {
		if !now.Before(exp) {
			delete(c.expires, k)
			delete(c.movies, k)
		}
	}
	c.movies[id] = m
	c.expires[id] = now.Add(c.ttl)
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.movies)
}
