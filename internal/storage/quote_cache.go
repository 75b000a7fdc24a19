package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/money-tracker/internal/models"
	"github.com/redis/go-redis/v9"
)

// QuoteCache keeps the latest price observation per asset in Redis so the
// read path can skip the daily_asset_info table for current quotes. The
// table stays the source of truth; cache entries expire after the TTL.
type QuoteCache struct {
	redis *RedisCache
	ttl   time.Duration
}

// NewQuoteCache creates a new quote cache
func NewQuoteCache(redis *RedisCache, ttl time.Duration) *QuoteCache {
	return &QuoteCache{redis: redis, ttl: ttl}
}

// Key format: quote:<asset-id>
func quoteKey(assetID int64) string {
	return fmt.Sprintf("quote:%d", assetID)
}

// Put stores the observation as the asset's latest quote.
func (c *QuoteCache) Put(ctx context.Context, info *models.DailyAssetInfo) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	return c.redis.Set(ctx, quoteKey(info.AssetID), data, c.ttl)
}

// Latest retrieves the cached quote for an asset. A miss is not an error.
func (c *QuoteCache) Latest(ctx context.Context, assetID int64) (*models.DailyAssetInfo, bool, error) {
	data, err := c.redis.Get(ctx, quoteKey(assetID))
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get quote from cache: %w", err)
	}

	var info models.DailyAssetInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached quote: %w", err)
	}

	return &info, true, nil
}

// Invalidate drops the cached quote, used when the asset is deleted.
func (c *QuoteCache) Invalidate(ctx context.Context, assetID int64) error {
	return c.redis.Del(ctx, quoteKey(assetID))
}
