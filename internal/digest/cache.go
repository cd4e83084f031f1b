package digest

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/selah-content-api/internal/models"
)

// Rendered is a fully built digest in both mail bodies, ready to send
// or preview.
type Rendered struct {
	Kind    models.DigestKind `json:"kind"`
	DateISO string            `json:"date"`
	Subject string            `json:"subject"`
	Text    string            `json:"text"`
	HTML    string            `json:"html"`
}

// Cache memoizes rendered digests. Rendering is deterministic, so a hit
// is always byte-identical to a rebuild; the cache only saves the pool
// sampling work on hot dates.
type Cache struct {
	lru *expirable.LRU[string, Rendered]
}

// NewCache creates a cache bounded by size entries; entries also fall
// out after ttl.
func NewCache(size int, ttl time.Duration) *Cache {
	return &Cache{lru: expirable.NewLRU[string, Rendered](size, nil, ttl)}
}

func cacheKey(kind models.DigestKind, dateISO, baseURL string) string {
	return string(kind) + "|" + dateISO + "|" + baseURL
}

func (c *Cache) Get(kind models.DigestKind, dateISO, baseURL string) (Rendered, bool) {
	return c.lru.Get(cacheKey(kind, dateISO, baseURL))
}

func (c *Cache) Add(kind models.DigestKind, dateISO, baseURL string, r Rendered) {
	c.lru.Add(cacheKey(kind, dateISO, baseURL), r)
}

// Len reports the live entry count for the stats endpoint.
func (c *Cache) Len() int {
	return c.lru.Len()
}
