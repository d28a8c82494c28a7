package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCache(size int, ttl time.Duration) (*LRUCache[int], *time.Time) {
	c := NewLRUCache[int](size, ttl)
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestGetSet(t *testing.T) {
	c, _ := newTestCache(4, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Size())
}

func TestExpiry(t *testing.T) {
	c, now := newTestCache(4, time.Minute)
	c.Set("a", 1)

	*now = now.Add(59 * time.Second)
	_, ok := c.Get("a")
	assert.True(t, ok)

	*now = now.Add(2 * time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok, "b was least recently used")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestDeletePrefix(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)
	c.Set("income:day:2026-10-14", 1)
	c.Set("income:month:2026-10", 2)
	c.Set("expense:day:2026-10-14", 3)

	assert.Equal(t, 1, c.DeletePrefix("income:day:"))
	assert.Equal(t, 2, c.Size())

	c.Delete("expense:day:2026-10-14")
	_, ok := c.Get("expense:day:2026-10-14")
	assert.False(t, ok)
}

func TestCleanExpired(t *testing.T) {
	c, now := newTestCache(10, time.Minute)
	c.Set("old", 1)
	*now = now.Add(30 * time.Second)
	c.Set("new", 2)
	*now = now.Add(45 * time.Second)

	assert.Equal(t, 1, c.CleanExpired())
	assert.Equal(t, 1, c.Size())
}
