// Package cache provides a two-tier cache: L1 in memory and an optional
// Redis L2 that survives restarts.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Haloween-arch/Jobtune/internal/logger"
	"github.com/Haloween-arch/Jobtune/internal/metrics"
)

// KeyPrefix namespaces every key written by the cache.
const KeyPrefix = "jt:"

// Defaults applied when Config leaves a field zero.
const (
	DefaultTTL             = 15 * time.Minute
	DefaultMaxEntries      = 1000
	DefaultCleanupInterval = 5 * time.Minute
	redisPingTimeout       = 3 * time.Second
)

// Config controls cache sizing and the optional Redis tier.
type Config struct {
	RedisURL        string
	TTL             time.Duration
	MaxEntries      int
	CleanupInterval time.Duration
}

// Cache stores JSON-encoded values in L1 and, when configured, Redis.
type Cache struct {
	mu         sync.Mutex
	l1         map[string]*entry
	rdb        *redis.Client // nil if Redis unavailable
	ttl        time.Duration
	maxEntries int
	logger     *zap.Logger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// New builds a cache and starts its L1 cleanup loop. An invalid or
// unreachable Redis URL disables L2 with a warning rather than failing.
func New(ctx context.Context, cfg Config, log *zap.Logger) *Cache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	c := &Cache{
		l1:         make(map[string]*entry),
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
		logger:     logger.Component(log, "cache"),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}

	if cfg.RedisURL != "" {
		c.rdb = c.connectRedis(ctx, cfg.RedisURL)
	}

	c.logger.Info("cache initialized",
		zap.Duration("ttl", c.ttl), zap.Bool("redis", c.rdb != nil), zap.Int("max_entries", c.maxEntries))

	go c.cleanupLoop(cfg.CleanupInterval)
	return c
}

func (c *Cache) connectRedis(ctx context.Context, url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		c.logger.Warn("invalid redis URL, L2 disabled", zap.Error(err))
		return nil
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		c.logger.Warn("redis unreachable, L2 disabled", zap.String("addr", opts.Addr), zap.Error(err))
		_ = rdb.Close()
		return nil
	}

	c.logger.Info("L2 redis connected", zap.String("addr", opts.Addr))
	return rdb
}

// Key builds a deterministic cache key from parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s%x", KeyPrefix, hash[:12])
}

// HasRedis reports whether the L2 tier is active.
func (c *Cache) HasRedis() bool {
	return c.rdb != nil
}

// Get decodes the value stored under key into dst. It tries L1, then L2;
// an L2 hit repopulates L1.
func (c *Cache) Get(ctx context.Context, key string, dst any) bool {
	if data, ok := c.getL1(key); ok {
		if json.Unmarshal(data, dst) == nil {
			metrics.CacheLookups.WithLabelValues("l1", "hit").Inc()
			return true
		}
		c.deleteL1(key)
	}
	metrics.CacheLookups.WithLabelValues("l1", "miss").Inc()

	if c.rdb == nil {
		return false
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("L2 get failed", zap.String("key", key), zap.Error(err))
		}
		metrics.CacheLookups.WithLabelValues("l2", "miss").Inc()
		return false
	}
	if json.Unmarshal(data, dst) != nil {
		metrics.CacheLookups.WithLabelValues("l2", "miss").Inc()
		return false
	}

	metrics.CacheLookups.WithLabelValues("l2", "hit").Inc()
	c.setL1(key, data)
	return true
}

// Set stores value in both tiers.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	c.setL1(key, data)

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Debug("L2 set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// Clear drops every entry from L1 and every prefixed key from L2.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.l1 = make(map[string]*entry)
	c.mu.Unlock()

	if c.rdb == nil {
		return nil
	}

	iter := c.rdb.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan redis keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete redis keys: %w", err)
	}
	return nil
}

// Len returns the number of L1 entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.l1)
}

// Close stops the cleanup loop and closes the Redis client.
func (c *Cache) Close() error {
	var err error
	c.stopOnce.Do(func() {
		close(c.stop)
		<-c.done
		if c.rdb != nil {
			err = c.rdb.Close()
		}
	})
	return err
}

func (c *Cache) getL1(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.l1[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.l1, key)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) setL1(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.l1[key]; !exists {
		c.evictLocked()
	}
	c.l1[key] = &entry{data: data, expiresAt: time.Now().Add(c.ttl)}
}

func (c *Cache) deleteL1(key string) {
	c.mu.Lock()
	delete(c.l1, key)
	c.mu.Unlock()
}

// evictLocked makes room for one entry. Expired entries go first, then the
// entries closest to expiry, which are the oldest since every entry shares
// the same ttl.
func (c *Cache) evictLocked() {
	if len(c.l1) < c.maxEntries {
		return
	}

	now := time.Now()
	for k, e := range c.l1 {
		if now.After(e.expiresAt) {
			delete(c.l1, k)
		}
	}

	for len(c.l1) >= c.maxEntries {
		var oldestKey string
		var oldestAt time.Time
		for k, e := range c.l1 {
			if oldestKey == "" || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = k, e.expiresAt
			}
		}
		delete(c.l1, oldestKey)
	}
}

func (c *Cache) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for k, e := range c.l1 {
		if now.After(e.expiresAt) {
			delete(c.l1, k)
			removed++
		}
	}
	return removed
}

// cleanupLoop periodically removes expired L1 entries.
func (c *Cache) cleanupLoop(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if n := c.removeExpired(); n > 0 {
				c.logger.Debug("expired L1 entries removed", zap.Int("count", n))
			}
		}
	}
}
