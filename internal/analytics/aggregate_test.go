package analytics

import (
	"testing"
	"time"

	"vantage/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByMonth(t *testing.T) {
	trades := []types.ClosedTrade{
		{PnL: 100, ClosedAt: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		{PnL: -20, ClosedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{PnL: 50, ClosedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
	}
	buckets := GroupByMonth(trades)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-01", buckets[0].Month)
	assert.InDelta(t, 30.0, buckets[0].PnL, 1e-9)
	assert.Equal(t, 2, buckets[0].Trades)
	assert.Equal(t, 1, buckets[0].Wins)
	assert.Equal(t, "2024-02", buckets[1].Month)

	// bucket sums reconcile with the ungrouped total
	total := 0.0
	for _, b := range buckets {
		total += b.PnL
	}
	assert.InDelta(t, 130.0, total, 1e-9)
}

func TestGroupByHourWindow(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	trades := []types.ClosedTrade{
		{PnL: 10, ClosedAt: now.Add(-2 * time.Hour)},                  // 10:00
		{PnL: 30, ClosedAt: now.Add(-2*time.Hour - 24*time.Hour)},     // 10:00 yesterday
		{PnL: -5, ClosedAt: now.Add(-time.Hour)},                      // 11:00
		{PnL: 999, ClosedAt: now.Add(-40 * 24 * time.Hour)},           // outside the window
	}
	buckets := GroupByHour(trades, 30*24*time.Hour, now)

	require.Len(t, buckets, 2)
	assert.Equal(t, 10, buckets[0].Hour)
	assert.Equal(t, 2, buckets[0].Trades)
	assert.InDelta(t, 20.0, buckets[0].AvgPnL, 1e-9)
	assert.Equal(t, 11, buckets[1].Hour)
}

func TestGroupBySymbol(t *testing.T) {
	trades := []types.ClosedTrade{
		{Symbol: "ETHUSDT", PnL: 40},
		{Symbol: "BTCUSDT", PnL: 100},
		{Symbol: "ETHUSDT", PnL: -10},
	}
	buckets := GroupBySymbol(trades)

	require.Len(t, buckets, 2)
	// pnl descending
	assert.Equal(t, "BTCUSDT", buckets[0].Symbol)
	assert.Equal(t, "ETHUSDT", buckets[1].Symbol)
	assert.InDelta(t, 30.0, buckets[1].PnL, 1e-9)
	assert.InDelta(t, 15.0, buckets[1].AvgPnL, 1e-9)
	assert.Equal(t, 1, buckets[1].Wins)
}

func TestGroupEmpty(t *testing.T) {
	assert.Empty(t, GroupByMonth(nil))
	assert.Empty(t, GroupByHour(nil, time.Hour, time.Now()))
	assert.Empty(t, GroupBySymbol(nil))
}
