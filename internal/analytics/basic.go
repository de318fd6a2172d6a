package analytics

import (
	"vantage/internal/types"
)

// BasicMetrics holds the raw P&L statistics for a trade window.
type BasicMetrics struct {
	TotalTrades   int     `json:"total_trades"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`
	TotalPnL      float64 `json:"total_pnl"`
	GrossProfit   float64 `json:"gross_profit"`
	GrossLoss     float64 `json:"gross_loss"`
	AvgWin        float64 `json:"avg_win"`
	AvgLoss       float64 `json:"avg_loss"`
	LargestWin    float64 `json:"largest_win"`
	LargestLoss   float64 `json:"largest_loss"`
	ProfitFactor  float64 `json:"profit_factor"`
	Expectancy    float64 `json:"expectancy"`
}

// ComputeBasic calculates the basic statistics in a single pass.
// Trades with pnl == 0 count toward the total but are neither wins nor
// losses. An empty input returns a zero-filled struct, never an error.
func ComputeBasic(trades []types.ClosedTrade) BasicMetrics {
	m := BasicMetrics{}
	if len(trades) == 0 {
		return m
	}

	m.TotalTrades = len(trades)
	for _, tr := range trades {
		m.TotalPnL += tr.PnL
		switch {
		case tr.PnL > 0:
			m.WinningTrades++
			m.GrossProfit += tr.PnL
			if tr.PnL > m.LargestWin {
				m.LargestWin = tr.PnL
			}
		case tr.PnL < 0:
			m.LosingTrades++
			m.GrossLoss += -tr.PnL
			if tr.PnL < m.LargestLoss {
				m.LargestLoss = tr.PnL
			}
		}
	}

	m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	m.Expectancy = m.TotalPnL / float64(m.TotalTrades)
	if m.WinningTrades > 0 {
		m.AvgWin = m.GrossProfit / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AvgLoss = m.GrossLoss / float64(m.LosingTrades)
	}
	if m.GrossLoss > 0 {
		m.ProfitFactor = m.GrossProfit / m.GrossLoss
	}
	return m
}
