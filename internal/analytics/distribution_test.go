package analytics

import (
	"math"
	"testing"

	"vantage/internal/types"

	"github.com/stretchr/testify/assert"
)

func pnlTrades(pnls ...float64) []types.ClosedTrade {
	trades := make([]types.ClosedTrade, len(pnls))
	for i, p := range pnls {
		trades[i] = types.ClosedTrade{PnL: p}
	}
	return trades
}

func TestComputeDistributionSymmetricSample(t *testing.T) {
	m := ComputeDistribution(pnlTrades(-2, -1, 0, 1, 2))

	// sample variance 2.5; symmetric input has zero skew
	assert.InDelta(t, 2.5, m.Variance, 1e-9)
	assert.InDelta(t, math.Sqrt(2.5), m.StdDev, 1e-9)
	assert.InDelta(t, 0.0, m.Skewness, 1e-9)
	// sum z^4 = 2*2.56 + 2*0.16 = 5.44; 5.44/5 - 3
	assert.InDelta(t, -1.912, m.Kurtosis, 1e-9)
}

func TestComputeDistributionSkewedSample(t *testing.T) {
	m := ComputeDistribution(pnlTrades(-1, -1, -1, -1, 10))

	// one large winner against small losses skews right
	assert.Greater(t, m.Skewness, 0.0)
}

func TestComputeDistributionTooFewTrades(t *testing.T) {
	assert.Equal(t, DistributionMetrics{}, ComputeDistribution(nil))
	assert.Equal(t, DistributionMetrics{}, ComputeDistribution(pnlTrades(1, 2)))
}

func TestComputeDistributionZeroVariance(t *testing.T) {
	assert.Equal(t, DistributionMetrics{}, ComputeDistribution(pnlTrades(5, 5, 5, 5)))
}
