// Package exchange defines the contract this service consumes from trading
// exchanges. Only the account balance is needed here; order placement and
// market data stay with the execution system.
package exchange

import "context"

// BalanceSource answers a single bounded balance query. Implementations do
// not retry; transient failures surface to the caller, which has its own
// fallback chain.
type BalanceSource interface {
	Name() string

	GetBalance(ctx context.Context, asset string) (Balance, error)
}
