package analytics

import (
	"math"
	"sort"

	"vantage/internal/types"
)

// tradingPeriodsPerYear annualizes per-trade statistics. Fixed at 252
// regardless of the window granularity being analyzed.
const tradingPeriodsPerYear = 252.0

// RiskMetrics holds volatility- and drawdown-adjusted statistics.
// MaxDrawdown is a positive percentage; zero means equity never fell
// below a prior peak.
type RiskMetrics struct {
	StdDev              float64 `json:"std_dev"`
	SharpeRatio         float64 `json:"sharpe_ratio"`
	SortinoRatio        float64 `json:"sortino_ratio"`
	MaxDrawdown         float64 `json:"max_drawdown"`
	MaxDrawdownDuration float64 `json:"max_drawdown_duration"`
	CalmarRatio         float64 `json:"calmar_ratio"`
	RecoveryFactor      float64 `json:"recovery_factor"`
	VaR95               float64 `json:"var_95"`
	CVaR95              float64 `json:"cvar_95"`
}

// ComputeRisk calculates risk-adjusted statistics from the chronological
// pnl sequence and the reconstructed equity curve. startingEquity anchors
// the drawdown walk's initial peak.
func ComputeRisk(trades []types.ClosedTrade, curve []types.EquityPoint, startingEquity float64) RiskMetrics {
	m := RiskMetrics{}
	if len(trades) == 0 {
		return m
	}

	pnls := make([]float64, len(trades))
	totalPnL := 0.0
	for i, tr := range trades {
		pnls[i] = tr.PnL
		totalPnL += tr.PnL
	}
	meanPnL := totalPnL / float64(len(pnls))

	m.StdDev = sampleStdDev(pnls, meanPnL)
	if m.StdDev > 0 {
		m.SharpeRatio = meanPnL / m.StdDev * math.Sqrt(tradingPeriodsPerYear)
	}
	m.SortinoRatio = sortinoRatio(pnls, meanPnL, m.StdDev)

	m.MaxDrawdown, m.MaxDrawdownDuration = maxDrawdown(curve, startingEquity)
	if m.MaxDrawdown > 0 {
		m.CalmarRatio = math.Abs(meanPnL * tradingPeriodsPerYear / m.MaxDrawdown)
		m.RecoveryFactor = math.Abs(totalPnL / m.MaxDrawdown)
	}

	m.VaR95, m.CVaR95 = historicalVaR(pnls)
	return m
}

// sortinoRatio uses the sample stddev of the losing subset as the
// denominator. With no losing trades it falls back to the overall stddev;
// zero denominators yield zero.
func sortinoRatio(pnls []float64, meanPnL, overallStd float64) float64 {
	var losses []float64
	for _, p := range pnls {
		if p < 0 {
			losses = append(losses, p)
		}
	}
	downside := overallStd
	if len(losses) > 0 {
		lossMean := 0.0
		for _, l := range losses {
			lossMean += l
		}
		lossMean /= float64(len(losses))
		downside = sampleStdDev(losses, lossMean)
	}
	if downside == 0 {
		return 0
	}
	return meanPnL / downside * math.Sqrt(tradingPeriodsPerYear)
}

// maxDrawdown walks the equity curve tracking the running peak. It returns
// the deepest decline as a positive percentage and the longest drawdown
// episode in days (episode start = first point below the current peak).
func maxDrawdown(curve []types.EquityPoint, startingEquity float64) (float64, float64) {
	if len(curve) == 0 || startingEquity <= 0 {
		return 0, 0
	}
	peak := startingEquity
	maxDD := 0.0
	maxDuration := 0.0
	var episodeStart *types.EquityPoint

	for i := range curve {
		pt := curve[i]
		if pt.Equity > peak {
			peak = pt.Equity
			episodeStart = nil
			continue
		}
		dd := (peak - pt.Equity) / peak * 100
		if dd > maxDD {
			maxDD = dd
		}
		if episodeStart == nil {
			episodeStart = &curve[i]
		}
		if elapsed := pt.Timestamp.Sub(episodeStart.Timestamp).Hours() / 24; elapsed > maxDuration {
			maxDuration = elapsed
		}
	}
	return maxDD, maxDuration
}

// historicalVaR sorts the pnl sequence ascending and reads the value at
// floor(n*0.05). CVaR is the mean of everything at or below that index,
// so it is never greater than VaR.
func historicalVaR(pnls []float64) (varValue, cvarValue float64) {
	if len(pnls) == 0 {
		return 0, 0
	}
	sorted := make([]float64, len(pnls))
	copy(sorted, pnls)
	sort.Float64s(sorted)

	idx := int(math.Floor(float64(len(sorted)) * 0.05))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	varValue = sorted[idx]

	sum := 0.0
	for i := 0; i <= idx; i++ {
		sum += sorted[i]
	}
	cvarValue = sum / float64(idx+1)
	return varValue, cvarValue
}

// sampleStdDev returns the n-1 standard deviation, 0 for fewer than two
// samples.
func sampleStdDev(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}
