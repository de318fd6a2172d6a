package analytics

import (
	"math"

	"vantage/internal/types"
)

// QualityMetrics covers trade-quality and streak statistics.
// AvgMAE/AvgMFE are always 0: computing excursions needs intrabar price
// paths that the ClosedTrade record does not carry.
type QualityMetrics struct {
	AvgDuration float64 `json:"avg_duration"`
	AvgRRR      float64 `json:"avg_rrr"`
	WinStreak   int     `json:"win_streak"`
	LossStreak  int     `json:"loss_streak"`
	AvgMAE      float64 `json:"avg_mae"`
	AvgMFE      float64 `json:"avg_mfe"`
}

// ComputeQuality calculates duration, risk/reward and streak statistics.
func ComputeQuality(trades []types.ClosedTrade) QualityMetrics {
	m := QualityMetrics{}
	if len(trades) == 0 {
		return m
	}

	var durationSum float64
	var durationCount int
	var rrrSum float64
	var rrrCount int
	for _, tr := range trades {
		if !tr.OpenedAt.IsZero() && !tr.ClosedAt.IsZero() {
			durationSum += tr.Duration().Minutes()
			durationCount++
		}
		if tr.StopLoss == nil || tr.TakeProfit == nil {
			continue
		}
		risk := math.Abs(tr.EntryPrice-*tr.StopLoss) * tr.Quantity
		reward := math.Abs(*tr.TakeProfit-tr.EntryPrice) * tr.Quantity
		if risk > 0 {
			rrrSum += reward / risk
			rrrCount++
		}
	}
	if durationCount > 0 {
		m.AvgDuration = durationSum / float64(durationCount)
	}
	if rrrCount > 0 {
		m.AvgRRR = rrrSum / float64(rrrCount)
	}

	for _, s := range Streaks(trades) {
		switch s.Type {
		case types.StreakWin:
			if s.Length > m.WinStreak {
				m.WinStreak = s.Length
			}
		case types.StreakLoss:
			if s.Length > m.LossStreak {
				m.LossStreak = s.Length
			}
		}
	}
	return m
}

// Streaks scans trades in chronological order and returns the maximal runs
// of consecutive same-outcome trades. For streak purposes a trade with
// pnl > 0 is a win and everything else (losses and break-evens) is a loss;
// this two-way split intentionally differs from the three-way
// classification in ComputeBasic. The last element is the current,
// possibly still open, streak.
func Streaks(trades []types.ClosedTrade) []types.Streak {
	if len(trades) == 0 {
		return nil
	}
	var out []types.Streak
	current := types.Streak{Type: streakOutcome(trades[0]), Length: 1}
	for _, tr := range trades[1:] {
		outcome := streakOutcome(tr)
		if outcome == current.Type {
			current.Length++
			continue
		}
		out = append(out, current)
		current = types.Streak{Type: outcome, Length: 1}
	}
	return append(out, current)
}

func streakOutcome(tr types.ClosedTrade) types.StreakType {
	if tr.PnL > 0 {
		return types.StreakWin
	}
	return types.StreakLoss
}
