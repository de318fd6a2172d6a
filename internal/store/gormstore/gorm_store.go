package gormstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	storemodel "vantage/internal/store/model"
	"vantage/internal/types"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type closedTradeModel = storemodel.ClosedTradeModel

// Store persists closed trades using Gorm + SQLite.
type Store struct {
	db *gorm.DB
}

// NewStore opens (or creates) the sqlite database at path and migrates the
// trade table.
func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("gorm store: database path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&cache=shared", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&closedTradeModel{}); err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite + WAL: a little parallelism for concurrent HTTP reads while
	// keeping lock contention low.
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetMaxIdleConns(2)
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// UpsertClosedTrades inserts trades keyed by external_id; re-imports of the
// same export update in place instead of duplicating.
func (s *Store) UpsertClosedTrades(ctx context.Context, trades []types.ClosedTrade) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("gorm store not initialized")
	}
	if len(trades) == 0 {
		return nil
	}
	models := make([]closedTradeModel, 0, len(trades))
	for _, tr := range trades {
		if tr.ExternalID <= 0 {
			return fmt.Errorf("closed trade requires external_id (symbol=%s)", tr.Symbol)
		}
		models = append(models, newClosedTradeModel(tr))
	}
	cols := []string{
		"symbol", "side", "entry_price", "exit_price", "quantity", "stop_loss",
		"take_profit", "margin", "pnl", "opened_at", "closed_at", "raw_data",
		"updated_at",
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns(cols),
		}).
		Create(&models).Error
}

// ListClosedTrades returns the trades closed inside [from, to], ascending
// by close time. A zero from means no lower bound.
func (s *Store) ListClosedTrades(ctx context.Context, from, to time.Time) ([]types.ClosedTrade, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("gorm store not initialized")
	}
	query := s.db.WithContext(ctx).Model(&closedTradeModel{})
	if !from.IsZero() {
		query = query.Where("closed_at >= ?", from.UnixMilli())
	}
	if !to.IsZero() {
		query = query.Where("closed_at <= ?", to.UnixMilli())
	}
	var models []closedTradeModel
	if err := query.Order("closed_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]types.ClosedTrade, 0, len(models))
	for _, m := range models {
		out = append(out, closedTradeModelToRecord(m))
	}
	return out, nil
}

// ListRecentClosedTrades returns the latest trades, newest first, optionally
// filtered by symbol.
func (s *Store) ListRecentClosedTrades(ctx context.Context, symbol string, limit, offset int) ([]types.ClosedTrade, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("gorm store not initialized")
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := s.db.WithContext(ctx).Model(&closedTradeModel{})
	if sym := strings.ToUpper(strings.TrimSpace(symbol)); sym != "" {
		query = query.Where("UPPER(symbol) = ?", sym)
	}
	var models []closedTradeModel
	if err := query.
		Order("closed_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]types.ClosedTrade, 0, len(models))
	for _, m := range models {
		out = append(out, closedTradeModelToRecord(m))
	}
	return out, nil
}

// CountClosedTrades counts stored trades, optionally per symbol.
func (s *Store) CountClosedTrades(ctx context.Context, symbol string) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("gorm store not initialized")
	}
	query := s.db.WithContext(ctx).Model(&closedTradeModel{})
	if sym := strings.ToUpper(strings.TrimSpace(symbol)); sym != "" {
		query = query.Where("UPPER(symbol) = ?", sym)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// ListSymbols returns the distinct traded instruments.
func (s *Store) ListSymbols(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("gorm store not initialized")
	}
	var symbols []string
	err := s.db.WithContext(ctx).Model(&closedTradeModel{}).
		Distinct("symbol").
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}
	return symbols, nil
}

// --------------------------- Model Helpers ------------------------------

func newClosedTradeModel(tr types.ClosedTrade) closedTradeModel {
	now := time.Now().UnixMilli()
	raw := strings.TrimSpace(tr.RawData)
	var rawJSON datatypes.JSON
	if raw != "" {
		rawJSON = datatypes.JSON(raw)
	}
	return closedTradeModel{
		ExternalID: tr.ExternalID,
		Symbol:     strings.ToUpper(strings.TrimSpace(tr.Symbol)),
		Side:       strings.ToLower(strings.TrimSpace(string(tr.Side))),
		EntryPrice: tr.EntryPrice,
		ExitPrice:  tr.ExitPrice,
		Quantity:   tr.Quantity,
		StopLoss:   tr.StopLoss,
		TakeProfit: tr.TakeProfit,
		Margin:     tr.Margin,
		PnL:        tr.PnL,
		OpenedAt:   timeToMillis(tr.OpenedAt),
		ClosedAt:   timeToMillis(tr.ClosedAt),
		RawData:    rawJSON,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func closedTradeModelToRecord(m closedTradeModel) types.ClosedTrade {
	return types.ClosedTrade{
		ID:         m.ID,
		ExternalID: m.ExternalID,
		Symbol:     strings.ToUpper(strings.TrimSpace(m.Symbol)),
		Side:       types.TradeSide(strings.ToLower(strings.TrimSpace(m.Side))),
		EntryPrice: m.EntryPrice,
		ExitPrice:  m.ExitPrice,
		Quantity:   m.Quantity,
		StopLoss:   m.StopLoss,
		TakeProfit: m.TakeProfit,
		Margin:     m.Margin,
		PnL:        m.PnL,
		OpenedAt:   millisToTime(m.OpenedAt),
		ClosedAt:   millisToTime(m.ClosedAt),
		RawData:    string(m.RawData),
	}
}

func timeToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func millisToTime(v int64) time.Time {
	if v <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(v)
}
