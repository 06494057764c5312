package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portsrepo "github.com/SscSPs/store_credit_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "scb:totals:"

// RedisTotalsCache stores movement totals as JSON with a fixed TTL.
type RedisTotalsCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ portsrepo.TotalsCache = (*RedisTotalsCache)(nil)

// NewRedisTotalsCache returns a cache backed by client. A non-positive ttl falls back to one minute.
func NewRedisTotalsCache(client *redis.Client, ttl time.Duration) *RedisTotalsCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisTotalsCache{client: client, ttl: ttl}
}

func (c *RedisTotalsCache) GetTotals(ctx context.Context, key string) (*domain.MovementTotals, bool, error) {
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	var totals domain.MovementTotals
	if err := json.Unmarshal(payload, &totals); err != nil {
		return nil, false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return &totals, true, nil
}

func (c *RedisTotalsCache) SetTotals(ctx context.Context, key string, totals domain.MovementTotals) error {
	raw, err := json.Marshal(totals)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}
