package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEquityCurve(t *testing.T) {
	trades := fixtureTrades()
	curve := BuildEquityCurve(1000, trades)

	require.Len(t, curve, len(trades))
	want := []float64{1100, 1050, 1250, 1220, 1370}
	prev := 1000.0
	for i, pt := range curve {
		assert.InDelta(t, want[i], pt.Equity, 1e-9)
		assert.InDelta(t, trades[i].PnL, pt.Equity-prev, 1e-9)
		assert.Equal(t, trades[i].ClosedAt, pt.Timestamp)
		prev = pt.Equity
	}
}

func TestBuildEquityCurveEmpty(t *testing.T) {
	assert.Nil(t, BuildEquityCurve(1000, nil))
}
