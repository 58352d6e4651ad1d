// Package cache layers a time-to-live over a storage.Store. Every stored entry is
// the JSON document {"value": ..., "timestamp": <unix millis>}.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nfrund/folio/internal/storage"
)

// Keys under which the two data sets are persisted.
const (
	KeyProfile      = "curriculoInfo"
	KeyRepositories = "githubProjects"
)

// DefaultTTL is how long an entry stays fresh.
const DefaultTTL = time.Hour

// Clock returns the current time. Tests inject a fixed or advancing clock.
type Clock func() time.Time

// Entry is the persisted envelope around a cached value.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	Timestamp int64           `json:"timestamp"`
}

// Info describes a stored entry without decoding its value.
type Info struct {
	Key     string
	Written time.Time
	Age     time.Duration
	Expired bool
}

// Cache reads and writes TTL-bound entries. Storage failures are logged and
// turned into misses or no-ops; they never reach the caller.
type Cache struct {
	store storage.Store
	ttl   time.Duration
	now   Clock
}

// New creates a Cache. A zero ttl means DefaultTTL and a nil clock means time.Now.
func New(store storage.Store, ttl time.Duration, now Clock) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{store: store, ttl: ttl, now: now}
}

// TTL returns the freshness window.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Read decodes the fresh value stored under key into dst and reports whether it
// did. Expired entries are deleted.
func (c *Cache) Read(ctx context.Context, key string, dst any) bool {
	raw, err := c.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		slog.Error("Failed to read cache entry", "key", key, "error", err)
		return false
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		slog.Error("Failed to decode cache entry", "key", key, "error", err)
		return false
	}

	if c.expired(entry) {
		slog.Debug("Cache entry expired", "key", key)
		if err := c.store.Delete(ctx, key); err != nil {
			slog.Error("Failed to delete expired cache entry", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(entry.Value, dst); err != nil {
		slog.Error("Failed to decode cached value", "key", key, "error", err)
		return false
	}
	return true
}

// Write stores value under key stamped with the current time, replacing any
// previous entry.
func (c *Cache) Write(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		slog.Error("Failed to encode cache value", "key", key, "error", err)
		return
	}
	raw, err := json.Marshal(Entry{Value: payload, Timestamp: c.now().UnixMilli()})
	if err != nil {
		slog.Error("Failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, raw); err != nil {
		slog.Error("Failed to write cache entry", "key", key, "error", err)
	}
}

// Entries describes every stored entry. Undecodable entries are skipped.
func (c *Cache) Entries(ctx context.Context) ([]Info, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]Info, 0, len(keys))
	for _, key := range keys {
		raw, err := c.store.Get(ctx, key)
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		written := time.UnixMilli(entry.Timestamp)
		infos = append(infos, Info{
			Key:     key,
			Written: written,
			Age:     c.now().Sub(written),
			Expired: c.expired(entry),
		})
	}
	return infos, nil
}

// Purge deletes every entry and returns how many were removed.
func (c *Cache) Purge(ctx context.Context) (int, error) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		return 0, err
	}
	for i, key := range keys {
		if err := c.store.Delete(ctx, key); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}

func (c *Cache) expired(entry Entry) bool {
	return c.now().UnixMilli()-entry.Timestamp > c.ttl.Milliseconds()
}
