package sentry_ext

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const (
	recentErrorDuration = time.Minute * 5
	defaultCacheSize    = 100
)

// cache remembers when each error message was last sent to Sentry.
type cache struct {
	*lru.Cache

	// getNow allows stubbing out [time.Now] in tests.
	getNow func() time.Time
}

func newCache(size int) (*cache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &cache{Cache: c, getNow: time.Now}, nil
}

// shouldCapture returns false if the same message was captured
// within the last recentErrorDuration.
func (c *cache) shouldCapture(msg string) bool {
	sum := md5.Sum([]byte(msg))
	hash := hex.EncodeToString(sum[:])

	now := c.getNow()
	if lastSent, exists := c.Get(hash); exists {
		if now.Sub(lastSent.(time.Time)) < recentErrorDuration {
			return false
		}
	}

	c.Add(hash, now)
	return true
}
