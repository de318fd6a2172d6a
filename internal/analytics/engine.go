package analytics

import (
	"context"
	"fmt"
	"time"

	"vantage/internal/gateway/exchange"
	"vantage/internal/types"
)

// TradeStore supplies the closed trades for a window, ascending by close
// time. A zero from means no lower bound.
type TradeStore interface {
	ListClosedTrades(ctx context.Context, from, to time.Time) ([]types.ClosedTrade, error)
}

// MetricsSnapshot is the immutable result of one full metrics pass. A new
// snapshot replaces the old one on refresh; nothing mutates it in place.
type MetricsSnapshot struct {
	Period         string              `json:"period"`
	Start          time.Time           `json:"start"`
	End            time.Time           `json:"end"`
	StartingEquity float64             `json:"starting_equity"`
	Basic          BasicMetrics        `json:"basic"`
	Risk           RiskMetrics         `json:"risk"`
	Distribution   DistributionMetrics `json:"distribution"`
	Quality        QualityMetrics      `json:"quality"`
	GeneratedAt    time.Time           `json:"generated_at"`
}

// Engine runs the metrics pipeline: pull the trade window, resolve the
// equity baseline, feed the same input once into each independent
// sub-computation, assemble the snapshot. The engine keeps no state between
// calls and is safe to invoke concurrently.
type Engine struct {
	trades       TradeStore
	resolver     *StartingEquityResolver
	hourlyWindow time.Duration
	now          func() time.Time
}

func NewEngine(trades TradeStore, balances exchange.BalanceSource, asset string, hourlyWindow time.Duration) *Engine {
	if hourlyWindow <= 0 {
		hourlyWindow = 30 * 24 * time.Hour
	}
	return &Engine{
		trades:       trades,
		resolver:     NewStartingEquityResolver(balances, asset),
		hourlyWindow: hourlyWindow,
		now:          time.Now,
	}
}

// ComputeMetrics produces a fresh snapshot for the period. An empty window
// yields zero-filled metric groups; the only hard failure is the
// starting-equity resolver's fatal case.
func (e *Engine) ComputeMetrics(ctx context.Context, p Period) (*MetricsSnapshot, error) {
	trades, start, err := e.window(ctx, p)
	if err != nil {
		return nil, err
	}
	curve := BuildEquityCurve(start, trades)
	return &MetricsSnapshot{
		Period:         p.Label,
		Start:          p.Start,
		End:            p.End,
		StartingEquity: start,
		Basic:          ComputeBasic(trades),
		Risk:           ComputeRisk(trades, curve, start),
		Distribution:   ComputeDistribution(trades),
		Quality:        ComputeQuality(trades),
		GeneratedAt:    e.now(),
	}, nil
}

// ComputeEquityCurve reconstructs the equity walk for the period.
func (e *Engine) ComputeEquityCurve(ctx context.Context, p Period) ([]types.EquityPoint, error) {
	trades, start, err := e.window(ctx, p)
	if err != nil {
		return nil, err
	}
	return BuildEquityCurve(start, trades), nil
}

// MonthlyBreakdown groups the period's trades by calendar month.
func (e *Engine) MonthlyBreakdown(ctx context.Context, p Period) ([]MonthlyBucket, error) {
	trades, err := e.listTrades(ctx, p)
	if err != nil {
		return nil, err
	}
	return GroupByMonth(trades), nil
}

// HourlyBreakdown groups the period's trades by hour-of-day over the
// configured trailing window.
func (e *Engine) HourlyBreakdown(ctx context.Context, p Period) ([]HourlyBucket, error) {
	trades, err := e.listTrades(ctx, p)
	if err != nil {
		return nil, err
	}
	return GroupByHour(trades, e.hourlyWindow, e.now()), nil
}

// SymbolBreakdown groups the period's trades per instrument.
func (e *Engine) SymbolBreakdown(ctx context.Context, p Period) ([]SymbolBucket, error) {
	trades, err := e.listTrades(ctx, p)
	if err != nil {
		return nil, err
	}
	return GroupBySymbol(trades), nil
}

func (e *Engine) listTrades(ctx context.Context, p Period) ([]types.ClosedTrade, error) {
	trades, err := e.trades.ListClosedTrades(ctx, p.Start, p.End)
	if err != nil {
		return nil, fmt.Errorf("list closed trades: %w", err)
	}
	return trades, nil
}

func (e *Engine) window(ctx context.Context, p Period) ([]types.ClosedTrade, float64, error) {
	trades, err := e.listTrades(ctx, p)
	if err != nil {
		return nil, 0, err
	}
	start, err := e.resolver.Resolve(ctx, trades)
	if err != nil {
		return nil, 0, err
	}
	return trades, start, nil
}
