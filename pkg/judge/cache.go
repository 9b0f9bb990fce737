package judge

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/GoReal-AI/echo-pdk-sub001/pkg/config"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/providers"
	"github.com/GoReal-AI/echo-pdk-sub001/pkg/telemetry/metrics"
)

// cacheName labels this cache in metrics.
const cacheName = "judge"

// entry is a cached verdict with its expiry deadline.
type entry struct {
	verdict   bool
	expiresAt time.Time
}

// CachedJudge decorates a Judge with a content-addressed TTL cache.
//
// An entry is written only when the underlying judge returns a confirmed
// verdict; errors are never cached, so a transient provider failure is
// retried on the next evaluation. Expired entries are evicted lazily on read
// and reclaimed in bulk by Sweep.
type CachedJudge struct {
	inner        Judge
	providerType string
	model        string
	ttl          time.Duration

	mu      sync.Mutex
	entries map[string]entry

	// now is replaceable in tests to step time past the TTL.
	now func() time.Time

	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewCachedJudge wraps the inner judge with a TTL cache keyed by
// CacheKey(value, question, providerType, model). The provider is consulted
// only for its type; the collector may be nil.
func NewCachedJudge(inner Judge, provider providers.Provider, cfg config.JudgeConfig, collector *metrics.Collector) *CachedJudge {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = config.DefaultJudgeCacheTTL
	}
	return &CachedJudge{
		inner:        inner,
		providerType: provider.GetType(),
		model:        cfg.Model,
		ttl:          ttl,
		entries:      make(map[string]entry),
		now:          time.Now,
		metrics:      collector,
		logger:       slog.Default().With("component", "judge.cache"),
	}
}

// Evaluate returns the cached verdict when a live entry exists, otherwise
// delegates to the inner judge and caches the confirmed answer.
func (c *CachedJudge) Evaluate(ctx context.Context, value, question string) (bool, error) {
	key := CacheKey(value, question, c.providerType, c.model)

	if verdict, ok := c.lookup(key); ok {
		if c.metrics != nil {
			c.metrics.RecordCacheHit(cacheName)
		}
		return verdict, nil
	}
	if c.metrics != nil {
		c.metrics.RecordCacheMiss(cacheName)
	}

	verdict, err := c.inner.Evaluate(ctx, value, question)
	if err != nil {
		return false, err
	}

	c.store(key, verdict)
	return verdict, nil
}

// lookup returns the live entry for key, evicting it if expired.
func (c *CachedJudge) lookup(key string) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return false, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		if c.metrics != nil {
			c.metrics.RecordCacheEviction(cacheName)
			c.metrics.UpdateCacheSize(cacheName, len(c.entries))
		}
		return false, false
	}
	return e.verdict, true
}

func (c *CachedJudge) store(key string, verdict bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{verdict: verdict, expiresAt: c.now().Add(c.ttl)}
	if c.metrics != nil {
		c.metrics.UpdateCacheSize(cacheName, len(c.entries))
	}
}

// Sweep removes all expired entries and returns how many were evicted.
// Reads already evict lazily; the sweep reclaims memory for keys that are
// never read again.
func (c *CachedJudge) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}

	if evicted > 0 {
		if c.metrics != nil {
			for i := 0; i < evicted; i++ {
				c.metrics.RecordCacheEviction(cacheName)
			}
			c.metrics.UpdateCacheSize(cacheName, len(c.entries))
		}
		c.logger.Debug("cache sweep completed", "evicted", evicted, "remaining", len(c.entries))
	}

	return evicted
}

// Len returns the current number of cached entries, expired or not.
func (c *CachedJudge) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
