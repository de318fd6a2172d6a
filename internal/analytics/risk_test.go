package analytics

import (
	"math"
	"testing"
	"time"

	"vantage/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestComputeRisk(t *testing.T) {
	trades := fixtureTrades()
	curve := BuildEquityCurve(1000, trades)
	m := ComputeRisk(trades, curve, 1000)

	// mean 74, sample stddev sqrt(48520/4)
	wantStd := math.Sqrt(12130)
	assert.InDelta(t, wantStd, m.StdDev, 1e-9)
	assert.InDelta(t, 74.0/wantStd*math.Sqrt(252), m.SharpeRatio, 1e-9)

	// downside stddev over the losses {-50, -30} is sqrt(200)
	assert.InDelta(t, 74.0/math.Sqrt(200)*math.Sqrt(252), m.SortinoRatio, 1e-9)

	// deepest decline: 1100 -> 1050
	wantDD := 50.0 / 1100.0 * 100
	assert.InDelta(t, wantDD, m.MaxDrawdown, 1e-9)
	assert.InDelta(t, math.Abs(74.0*252/wantDD), m.CalmarRatio, 1e-6)
	assert.InDelta(t, 370.0/wantDD, m.RecoveryFactor, 1e-9)

	// floor(5*0.05) = 0: worst trade is both VaR and CVaR
	assert.InDelta(t, -50.0, m.VaR95, 1e-9)
	assert.InDelta(t, -50.0, m.CVaR95, 1e-9)
	assert.LessOrEqual(t, m.CVaR95, m.VaR95)
}

func TestComputeRiskEmpty(t *testing.T) {
	m := ComputeRisk(nil, nil, 1000)
	assert.Equal(t, RiskMetrics{}, m)
}

func TestComputeRiskSingleTrade(t *testing.T) {
	trades := []types.ClosedTrade{{PnL: 42, ClosedAt: time.Now()}}
	curve := BuildEquityCurve(1000, trades)
	m := ComputeRisk(trades, curve, 1000)

	// one sample: no variance, so every ratio built on it stays zero
	assert.Zero(t, m.StdDev)
	assert.Zero(t, m.SharpeRatio)
	assert.Zero(t, m.SortinoRatio)
	assert.InDelta(t, 42.0, m.VaR95, 1e-9)
}

func TestComputeRiskMonotoneEquityNoDrawdown(t *testing.T) {
	trades := []types.ClosedTrade{{PnL: 10}, {PnL: 20}, {PnL: 30}}
	curve := BuildEquityCurve(1000, trades)
	m := ComputeRisk(trades, curve, 1000)

	assert.Zero(t, m.MaxDrawdown)
	assert.Zero(t, m.CalmarRatio)
	assert.Zero(t, m.RecoveryFactor)
}

func TestMaxDrawdownDuration(t *testing.T) {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	curve := []types.EquityPoint{
		{Timestamp: base, Equity: 1200},
		{Timestamp: base.AddDate(0, 0, 1), Equity: 1100},
		{Timestamp: base.AddDate(0, 0, 4), Equity: 1150},
		{Timestamp: base.AddDate(0, 0, 5), Equity: 1300},
	}
	dd, duration := maxDrawdown(curve, 1000)

	assert.InDelta(t, 100.0/1200.0*100, dd, 1e-9)
	// below-peak episode runs from day 1 through day 4
	assert.InDelta(t, 3.0, duration, 1e-9)
}

func TestHistoricalVaRLargerSample(t *testing.T) {
	// 40 samples: floor(40*0.05) = 2, CVaR averages the three worst
	pnls := make([]float64, 40)
	for i := range pnls {
		pnls[i] = float64(i - 20) // -20 .. 19
	}
	varValue, cvarValue := historicalVaR(pnls)

	assert.InDelta(t, -18.0, varValue, 1e-9)
	assert.InDelta(t, (-20.0-19.0-18.0)/3.0, cvarValue, 1e-9)
	assert.LessOrEqual(t, cvarValue, varValue)
}

func TestSampleStdDev(t *testing.T) {
	assert.Zero(t, sampleStdDev(nil, 0))
	assert.Zero(t, sampleStdDev([]float64{5}, 5))
	assert.InDelta(t, math.Sqrt(2), sampleStdDev([]float64{1, 3}, 2), 1e-9)
}
