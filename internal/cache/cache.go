// Package cache provides a small in-memory TTL cache used to avoid
// recomputing statistics on closely spaced invocations. It is always an
// explicit component handed to its callers, never a package global, so
// invalidation stays visible at the write sites.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a mutex-guarded map with per-entry deadlines. Safe for
// concurrent use; the watch loop reads it from multiple goroutines.
type Cache struct {
	mu         sync.Mutex
	defaultTTL time.Duration
	entries    map[string]entry
	hits       int64
	misses     int64

	now func() time.Time
}

// New returns an empty cache whose entries expire defaultTTL after
// being set.
func New(defaultTTL time.Duration) *Cache {
	return &Cache{
		defaultTTL: defaultTTL,
		entries:    make(map[string]entry),
		now:        time.Now,
	}
}

// Get returns the live value for key. Expired entries are evicted on
// access and count as misses.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		c.misses++
		return nil, false
	}
	c.hits++
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key with an explicit TTL.
func (c *Cache) SetTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
}

// Delete removes key, reporting whether it was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// DeletePrefix removes every entry whose key starts with prefix and
// returns the number removed.
func (c *Cache) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear drops all entries. Hit and miss counters survive.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// CleanupExpired removes entries past their deadline and returns the
// number removed.
func (c *Cache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats is a point-in-time snapshot of cache effectiveness.
type Stats struct {
	Size   int   `json:"size"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// Stats reports the current size and lifetime hit/miss counts.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Size: len(c.entries), Hits: c.hits, Misses: c.misses}
}

// Statistics keys embed the calendar day so cached results roll over at
// midnight without explicit invalidation.

// StatsKey is the cache key for one habit's statistics over one period.
func StatsKey(habitName, period string, day time.Time) string {
	return fmt.Sprintf("stats:habit:%s:%s:%s", habitName, period, day.Format("2006-01-02"))
}

// OverallKey is the cache key for the cross-habit statistics view.
func OverallKey(period string, day time.Time) string {
	return fmt.Sprintf("stats:overall:%s:%s", period, day.Format("2006-01-02"))
}

// HabitPrefix matches every cached statistic for one habit, any period
// or day.
func HabitPrefix(habitName string) string {
	return fmt.Sprintf("stats:habit:%s:", habitName)
}

// OverallPrefix matches every cached cross-habit statistic.
func OverallPrefix() string {
	return "stats:overall:"
}
