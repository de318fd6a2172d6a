package analytics

import (
	"sort"
	"time"

	"vantage/internal/types"
)

// MonthlyBucket summarizes one calendar month.
type MonthlyBucket struct {
	Month  string  `json:"month"` // YYYY-MM
	PnL    float64 `json:"pnl"`
	Trades int     `json:"trades"`
	Wins   int     `json:"wins"`
}

// HourlyBucket summarizes one hour-of-day over a trailing window.
type HourlyBucket struct {
	Hour   int     `json:"hour"`
	PnL    float64 `json:"pnl"`
	Trades int     `json:"trades"`
	AvgPnL float64 `json:"avg_pnl"`
}

// SymbolBucket summarizes one instrument.
type SymbolBucket struct {
	Symbol string  `json:"symbol"`
	PnL    float64 `json:"pnl"`
	Trades int     `json:"trades"`
	Wins   int     `json:"wins"`
	AvgPnL float64 `json:"avg_pnl"`
}

// GroupByMonth buckets trades by the calendar month of their close time,
// sorted ascending. The sum over buckets equals the ungrouped total pnl.
func GroupByMonth(trades []types.ClosedTrade) []MonthlyBucket {
	byMonth := make(map[string]*MonthlyBucket)
	for _, tr := range trades {
		key := tr.ClosedAt.Format("2006-01")
		b := byMonth[key]
		if b == nil {
			b = &MonthlyBucket{Month: key}
			byMonth[key] = b
		}
		b.PnL += tr.PnL
		b.Trades++
		if tr.PnL > 0 {
			b.Wins++
		}
	}
	out := make([]MonthlyBucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// GroupByHour buckets trades closed within the trailing window by their
// hour-of-day. Buckets with no trades are omitted.
func GroupByHour(trades []types.ClosedTrade, window time.Duration, now time.Time) []HourlyBucket {
	cutoff := time.Time{}
	if window > 0 {
		cutoff = now.Add(-window)
	}
	byHour := make(map[int]*HourlyBucket)
	for _, tr := range trades {
		if !cutoff.IsZero() && tr.ClosedAt.Before(cutoff) {
			continue
		}
		hour := tr.ClosedAt.Hour()
		b := byHour[hour]
		if b == nil {
			b = &HourlyBucket{Hour: hour}
			byHour[hour] = b
		}
		b.PnL += tr.PnL
		b.Trades++
	}
	out := make([]HourlyBucket, 0, len(byHour))
	for _, b := range byHour {
		b.AvgPnL = b.PnL / float64(b.Trades)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// GroupBySymbol buckets trades per instrument, sorted by pnl descending.
func GroupBySymbol(trades []types.ClosedTrade) []SymbolBucket {
	bySymbol := make(map[string]*SymbolBucket)
	for _, tr := range trades {
		b := bySymbol[tr.Symbol]
		if b == nil {
			b = &SymbolBucket{Symbol: tr.Symbol}
			bySymbol[tr.Symbol] = b
		}
		b.PnL += tr.PnL
		b.Trades++
		if tr.PnL > 0 {
			b.Wins++
		}
	}
	out := make([]SymbolBucket, 0, len(bySymbol))
	for _, b := range bySymbol {
		b.AvgPnL = b.PnL / float64(b.Trades)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PnL == out[j].PnL {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].PnL > out[j].PnL
	})
	return out
}
