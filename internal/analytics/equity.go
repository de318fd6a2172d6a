package analytics

import (
	"vantage/internal/types"
)

// BuildEquityCurve walks the trade window forward from startingEquity,
// emitting one point per trade at its close time. The output length always
// equals the trade count and each step satisfies
// equity[i] - equity[i-1] == pnl[i].
func BuildEquityCurve(startingEquity float64, trades []types.ClosedTrade) []types.EquityPoint {
	if len(trades) == 0 {
		return nil
	}
	curve := make([]types.EquityPoint, len(trades))
	equity := startingEquity
	for i, tr := range trades {
		equity += tr.PnL
		curve[i] = types.EquityPoint{
			Timestamp: tr.ClosedAt,
			Equity:    equity,
			PnL:       tr.PnL,
		}
	}
	return curve
}
