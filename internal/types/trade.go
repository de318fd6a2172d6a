package types

import (
	"time"
)

// TradeSide is the direction of a closed trade.
type TradeSide string

const (
	TradeSideLong  TradeSide = "long"
	TradeSideShort TradeSide = "short"
)

// ClosedTrade is one fully closed round trip. Records are created by the
// execution layer when a position closes and are read-only afterwards.
type ClosedTrade struct {
	ID         int64     `json:"id,omitempty"`
	ExternalID int64     `json:"external_id,omitempty"`
	Symbol     string    `json:"symbol"`
	Side       TradeSide `json:"side"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	Quantity   float64   `json:"quantity"`
	StopLoss   *float64  `json:"stop_loss,omitempty"`
	TakeProfit *float64  `json:"take_profit,omitempty"`
	Margin     float64   `json:"margin"`
	PnL        float64   `json:"pnl"`
	OpenedAt   time.Time `json:"opened_at"`
	ClosedAt   time.Time `json:"closed_at"`
	RawData    string    `json:"-"`
}

// Duration returns the holding time, or 0 when either timestamp is missing.
func (t ClosedTrade) Duration() time.Duration {
	if t.OpenedAt.IsZero() || t.ClosedAt.IsZero() {
		return 0
	}
	return t.ClosedAt.Sub(t.OpenedAt)
}

// EquityPoint is one step of the reconstructed equity curve.
// Equity[i] = Equity[i-1] + PnL[i], anchored at the resolved starting equity.
type EquityPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Equity    float64   `json:"equity"`
	PnL       float64   `json:"pnl"`
}

// StreakType classifies a run of consecutive same-outcome trades.
type StreakType string

const (
	StreakWin  StreakType = "win"
	StreakLoss StreakType = "loss"
)

// Streak is a maximal run of consecutive same-outcome trades.
type Streak struct {
	Type   StreakType `json:"type"`
	Length int        `json:"length"`
}

// AccountSnapshot mirrors what the exchange reports for the account.
type AccountSnapshot struct {
	Total     float64   `json:"total"`
	Available float64   `json:"available"`
	Used      float64   `json:"used"`
	Currency  string    `json:"currency"`
	UpdatedAt time.Time `json:"updated_at"`
}
