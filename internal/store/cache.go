package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// DefaultTTL is the cache lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

// Cache stores byte payloads under string keys with an expiry.
type Cache struct {
	store *Store
}

// Get returns the value for key when present and not expired.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value     []byte
		expiresAt int64
	)
	err := c.store.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cache WHERE key = ?`, key).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %q: %w", key, err)
	}
	if c.store.now().UnixNano() >= expiresAt {
		return nil, false, nil
	}
	return value, true, nil
}

// Put stores value under key for ttl. A non-positive ttl uses DefaultTTL.
func (c *Cache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	expiresAt := c.store.now().Add(ttl).UnixNano()
	_, err := c.store.db.ExecContext(ctx,
		`INSERT INTO cache (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("cache put %q: %w", key, err)
	}
	return nil
}

// Memoize returns the cached value for key or computes, stores and returns
// it. Errors from fn are returned as-is and nothing is stored.
func (c *Cache) Memoize(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	if value, ok, err := c.Get(ctx, key); err != nil {
		return nil, err
	} else if ok {
		return value, nil
	}

	value, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.Put(ctx, key, value, ttl); err != nil {
		return nil, err
	}
	return value, nil
}

// Purge deletes expired entries and returns how many were removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	res, err := c.store.db.ExecContext(ctx,
		`DELETE FROM cache WHERE expires_at <= ?`, c.store.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("cache purge: %w", err)
	}
	return res.RowsAffected()
}
