package analytics

import (
	"context"
	"errors"
	"fmt"

	"vantage/internal/gateway/exchange"
	"vantage/internal/logger"
	"vantage/internal/types"
)

// startingEquityFloor keeps percentage-based drawdown math away from zero
// denominators. It is a safety clamp, not a statement about real capital.
const startingEquityFloor = 100.0

// marginLeverageFactor approximates account equity from the oldest trade's
// committed margin when the exchange is unreachable (~10x utilization).
const marginLeverageFactor = 10.0

// ErrNoBaseline signals the fatal resolver case: the balance query failed
// and there are no trades to estimate from. Returning a made-up number here
// would silently corrupt every downstream drawdown and ratio figure.
var ErrNoBaseline = errors.New("no baseline equity available")

// StartingEquityResolver derives the baseline equity for an analyzed trade
// window: current balance minus the window's realized pnl, with a
// margin-based fallback when the balance query fails.
type StartingEquityResolver struct {
	balances exchange.BalanceSource
	asset    string
}

func NewStartingEquityResolver(balances exchange.BalanceSource, asset string) *StartingEquityResolver {
	return &StartingEquityResolver{balances: balances, asset: asset}
}

// Resolve returns the equity value the curve walk starts from. The balance
// query is the only blocking call; its failure is recovered through the
// oldest trade's margin. With no balance and no trades there is nothing to
// derive a number from, so Resolve fails rather than fabricate one.
func (r *StartingEquityResolver) Resolve(ctx context.Context, trades []types.ClosedTrade) (float64, error) {
	bal, err := r.balances.GetBalance(ctx, r.asset)
	if err == nil {
		pnlSum := 0.0
		for _, tr := range trades {
			pnlSum += tr.PnL
		}
		return clampEquity(bal.Total - pnlSum), nil
	}

	if len(trades) == 0 {
		return 0, fmt.Errorf("%w: balance query failed (%v) and no trades to estimate from", ErrNoBaseline, err)
	}
	logger.Warnf("balance query failed, estimating starting equity from oldest trade margin: %v", err)
	return clampEquity(trades[0].Margin * marginLeverageFactor), nil
}

func clampEquity(v float64) float64 {
	if v < startingEquityFloor {
		return startingEquityFloor
	}
	return v
}
