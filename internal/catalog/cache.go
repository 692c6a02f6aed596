package catalog

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheMissSentinel = "none"

// CachedSettings fronts a SettingsStore with a redis TTL cache. Reads
// tolerate staleness up to the TTL; admin writes invalidate their key so a
// fresh value is observed on the next read. A nil redis client degrades to
// pass-through reads.
type CachedSettings struct {
	store *SettingsStore
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedSettings wraps a settings store with a redis cache.
func NewCachedSettings(store *SettingsStore, redisClient *redis.Client, ttl time.Duration) *CachedSettings {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &CachedSettings{store: store, redis: redisClient, ttl: ttl}
}

func (c *CachedSettings) cacheKey(key string) string {
	return "settings:" + key
}

func (c *CachedSettings) cachedInt(ctx context.Context, key string) (int, bool) {
	if c.redis == nil {
		return 0, false
	}
	raw, err := c.redis.Get(ctx, c.cacheKey(key)).Result()
	if err != nil {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c *CachedSettings) storeInt(ctx context.Context, key string, value int) {
	if c.redis == nil {
		return
	}
	// Cache failures are ignored; the store remains authoritative.
	_ = c.redis.Set(ctx, c.cacheKey(key), strconv.Itoa(value), c.ttl).Err()
}

func (c *CachedSettings) invalidate(ctx context.Context, key string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, c.cacheKey(key)).Err()
}

// DiscountPercent returns the cached global discount percent.
func (c *CachedSettings) DiscountPercent(ctx context.Context) (int, error) {
	if v, ok := c.cachedInt(ctx, discountKey); ok {
		return v, nil
	}
	v, err := c.store.DiscountPercent(ctx)
	if err != nil {
		return 0, err
	}
	c.storeInt(ctx, discountKey, v)
	return v, nil
}

// SetDiscountPercent writes through to the store and invalidates the cache.
func (c *CachedSettings) SetDiscountPercent(ctx context.Context, pct int) error {
	if err := c.store.SetDiscountPercent(ctx, pct); err != nil {
		return err
	}
	c.invalidate(ctx, discountKey)
	return nil
}

// BasePriceOverride returns the cached base-price override for a package.
// Absence of an override is cached too, with a sentinel value.
func (c *CachedSettings) BasePriceOverride(ctx context.Context, slug string) (int, bool, error) {
	key := pricePrefix + slug
	if c.redis != nil {
		raw, err := c.redis.Get(ctx, c.cacheKey(key)).Result()
		if err == nil {
			if raw == cacheMissSentinel {
				return 0, false, nil
			}
			if v, convErr := strconv.Atoi(raw); convErr == nil {
				return v, true, nil
			}
		}
	}

	price, found, err := c.store.BasePriceOverride(ctx, slug)
	if err != nil {
		return 0, false, err
	}
	if c.redis != nil {
		val := cacheMissSentinel
		if found {
			val = strconv.Itoa(price)
		}
		_ = c.redis.Set(ctx, c.cacheKey(key), val, c.ttl).Err()
	}
	return price, found, nil
}

// SetBasePriceOverride writes through to the store and invalidates the
// cached value for that package.
func (c *CachedSettings) SetBasePriceOverride(ctx context.Context, slug string, price int) error {
	if err := c.store.SetBasePriceOverride(ctx, slug, price); err != nil {
		return err
	}
	c.invalidate(ctx, pricePrefix+slug)
	return nil
}

var _ SettingsReader = (*CachedSettings)(nil)
var _ SettingsReader = (*SettingsStore)(nil)
