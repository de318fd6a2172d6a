package analytics

import (
	"vantage/internal/types"
)

// DistributionMetrics describes the shape of the per-trade return
// distribution. Kurtosis is excess kurtosis: a normal distribution
// scores 0.
type DistributionMetrics struct {
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
}

// ComputeDistribution calculates the third and fourth standardized moments.
// Fewer than three trades, or a zero-variance sample, returns all zeros —
// the moments are undefined in both cases.
func ComputeDistribution(trades []types.ClosedTrade) DistributionMetrics {
	m := DistributionMetrics{}
	if len(trades) < 3 {
		return m
	}

	mean := 0.0
	for _, tr := range trades {
		mean += tr.PnL
	}
	mean /= float64(len(trades))

	pnls := make([]float64, len(trades))
	for i, tr := range trades {
		pnls[i] = tr.PnL
	}
	std := sampleStdDev(pnls, mean)
	if std == 0 {
		return m
	}

	var sumCubed, sumQuarted float64
	for _, p := range pnls {
		z := (p - mean) / std
		z3 := z * z * z
		sumCubed += z3
		sumQuarted += z3 * z
	}
	n := float64(len(pnls))
	m.StdDev = std
	m.Variance = std * std
	m.Skewness = sumCubed / n
	m.Kurtosis = sumQuarted/n - 3
	return m
}
