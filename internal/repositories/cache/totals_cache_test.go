package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisTotalsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTotalsCache(client, ttl), mr
}

func TestTotalsCache_RoundTripAndExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, 30*time.Second)

	_, ok, err := c.GetTotals(ctx, "daily:2026-10-18")
	require.NoError(t, err)
	assert.False(t, ok)

	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	want := domain.MovementTotals{
		From:    day,
		To:      day.Add(24*time.Hour - time.Nanosecond),
		Charges: decimal.RequireFromString("150.25"),
		Credits: decimal.RequireFromString("40"),
	}
	require.NoError(t, c.SetTotals(ctx, "daily:2026-10-18", want))

	got, ok, err := c.GetTotals(ctx, "daily:2026-10-18")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, want.Charges.Equal(got.Charges))
	assert.True(t, want.Credits.Equal(got.Credits))
	assert.True(t, want.From.Equal(got.From))

	mr.FastForward(31 * time.Second)
	_, ok, err = c.GetTotals(ctx, "daily:2026-10-18")
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire after the TTL")
}

func TestTotalsCache_CorruptPayload(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(keyPrefix+"monthly:2026-10", "not-json"))

	_, ok, err := c.GetTotals(ctx, "monthly:2026-10")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestTotalsCache_ServerDown(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, _, err := c.GetTotals(context.Background(), "daily:2026-10-18")
	assert.Error(t, err)
}
