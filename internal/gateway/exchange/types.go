package exchange

import "time"

// Balance represents account balance information.
type Balance struct {
	Asset     string    // stake currency, e.g. "USDT"
	Total     float64   // wallet balance
	Available float64   // available for trading
	Used      float64   // currently committed (margin, open orders)
	UpdatedAt time.Time // when the exchange reported it
}
