package model

import "gorm.io/datatypes"

// ClosedTradeModel is the sqlite row for one closed trade. Timestamps are
// unix milliseconds; the original exchange payload is kept verbatim in
// raw_data for audit and re-import.
type ClosedTradeModel struct {
	ID         int64          `gorm:"column:id;primaryKey"`
	ExternalID int64          `gorm:"column:external_id;uniqueIndex"`
	Symbol     string         `gorm:"column:symbol;index"`
	Side       string         `gorm:"column:side"`
	EntryPrice float64        `gorm:"column:entry_price"`
	ExitPrice  float64        `gorm:"column:exit_price"`
	Quantity   float64        `gorm:"column:quantity"`
	StopLoss   *float64       `gorm:"column:stop_loss"`
	TakeProfit *float64       `gorm:"column:take_profit"`
	Margin     float64        `gorm:"column:margin"`
	PnL        float64        `gorm:"column:pnl"`
	OpenedAt   int64          `gorm:"column:opened_at;index"`
	ClosedAt   int64          `gorm:"column:closed_at;index"`
	RawData    datatypes.JSON `gorm:"column:raw_data"`
	CreatedAt  int64          `gorm:"column:created_at"`
	UpdatedAt  int64          `gorm:"column:updated_at"`
}

func (ClosedTradeModel) TableName() string { return "closed_trades" }
