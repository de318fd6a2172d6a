// Package ingest accepts closed-trade export payloads from trading bots,
// validates and normalizes them, and upserts them into the trade store.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vantage/internal/logger"
	"vantage/internal/store/gormstore"
	"vantage/internal/types"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// SkippedRecord explains why one record of a batch was rejected.
type SkippedRecord struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Result summarizes one import batch.
type Result struct {
	BatchID  string          `json:"batch_id"`
	Imported int             `json:"imported"`
	Skipped  []SkippedRecord `json:"skipped,omitempty"`
}

type Importer struct {
	store   *gormstore.Store
	schemas *SchemaRegistry
}

func NewImporter(store *gormstore.Store, schemas *SchemaRegistry) *Importer {
	return &Importer{store: store, schemas: schemas}
}

// Import parses a JSON array of closed-trade records. Records failing schema
// validation or the basic invariants are skipped with a reason; the rest are
// upserted in one batch keyed by their external trade id.
func (i *Importer) Import(ctx context.Context, payload []byte) (Result, error) {
	res := Result{BatchID: uuid.NewString()}
	if !gjson.ValidBytes(payload) {
		return res, fmt.Errorf("import payload is not valid JSON")
	}
	parsed := gjson.ParseBytes(payload)
	if !parsed.IsArray() {
		return res, fmt.Errorf("import payload root must be a JSON array")
	}

	var batch []types.ClosedTrade
	idx := -1
	parsed.ForEach(func(_, rec gjson.Result) bool {
		idx++
		tr, err := i.parseRecord(rec)
		if err != nil {
			res.Skipped = append(res.Skipped, SkippedRecord{Index: idx, Reason: err.Error()})
			return true
		}
		batch = append(batch, tr)
		return true
	})

	if len(batch) > 0 {
		if err := i.store.UpsertClosedTrades(ctx, batch); err != nil {
			return res, fmt.Errorf("persist import batch %s: %w", res.BatchID, err)
		}
	}
	res.Imported = len(batch)
	logger.Infof("trade import batch=%s imported=%d skipped=%d", res.BatchID, res.Imported, len(res.Skipped))
	return res, nil
}

func (i *Importer) parseRecord(rec gjson.Result) (types.ClosedTrade, error) {
	if !rec.IsObject() {
		return types.ClosedTrade{}, fmt.Errorf("record must be a JSON object")
	}
	var doc any
	if err := json.Unmarshal([]byte(rec.Raw), &doc); err != nil {
		return types.ClosedTrade{}, err
	}
	if err := i.schemas.Validate(doc); err != nil {
		return types.ClosedTrade{}, fmt.Errorf("schema: %v", err)
	}

	externalID := firstInt(rec, "trade_id", "id")
	if externalID <= 0 {
		return types.ClosedTrade{}, fmt.Errorf("missing trade_id")
	}
	symbol := strings.ToUpper(strings.TrimSpace(firstString(rec, "pair", "symbol")))
	if symbol == "" {
		return types.ClosedTrade{}, fmt.Errorf("missing symbol")
	}

	side := types.TradeSideLong
	if rec.Get("is_short").Bool() || strings.EqualFold(firstString(rec, "side"), "short") {
		side = types.TradeSideShort
	}

	openedAt, err := parseTimestamp(rec, "open_timestamp", "open_date", "opened_at")
	if err != nil {
		return types.ClosedTrade{}, fmt.Errorf("opened_at: %v", err)
	}
	closedAt, err := parseTimestamp(rec, "close_timestamp", "close_date", "closed_at")
	if err != nil {
		return types.ClosedTrade{}, fmt.Errorf("closed_at: %v", err)
	}
	if closedAt.Before(openedAt) {
		return types.ClosedTrade{}, fmt.Errorf("closed_at precedes opened_at")
	}

	tr := types.ClosedTrade{
		ExternalID: externalID,
		Symbol:     symbol,
		Side:       side,
		EntryPrice: firstFloat(rec, "open_rate", "entry_price"),
		ExitPrice:  firstFloat(rec, "close_rate", "exit_price"),
		Quantity:   firstFloat(rec, "amount", "quantity"),
		Margin:     firstFloat(rec, "stake_amount", "margin"),
		PnL:        firstFloat(rec, "profit_abs", "pnl"),
		OpenedAt:   openedAt,
		ClosedAt:   closedAt,
		RawData:    rec.Raw,
	}
	if v := rec.Get("stop_loss_abs"); v.Exists() {
		sl := v.Float()
		tr.StopLoss = &sl
	} else if v := rec.Get("stop_loss"); v.Exists() {
		sl := v.Float()
		tr.StopLoss = &sl
	}
	if v := rec.Get("take_profit"); v.Exists() {
		tp := v.Float()
		tr.TakeProfit = &tp
	}
	return tr, nil
}

func firstString(rec gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := rec.Get(k); v.Exists() {
			return v.String()
		}
	}
	return ""
}

func firstInt(rec gjson.Result, keys ...string) int64 {
	for _, k := range keys {
		if v := rec.Get(k); v.Exists() {
			return v.Int()
		}
	}
	return 0
}

func firstFloat(rec gjson.Result, keys ...string) float64 {
	for _, k := range keys {
		if v := rec.Get(k); v.Exists() {
			return v.Float()
		}
	}
	return 0
}

// parseTimestamp accepts unix milliseconds or RFC3339-ish strings, matching
// the formats bot exports actually use.
func parseTimestamp(rec gjson.Result, keys ...string) (time.Time, error) {
	for _, k := range keys {
		v := rec.Get(k)
		if !v.Exists() {
			continue
		}
		if v.Type == gjson.Number {
			ms := v.Int()
			if ms <= 0 {
				continue
			}
			return time.UnixMilli(ms), nil
		}
		raw := strings.TrimSpace(v.String())
		if raw == "" {
			continue
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
	}
	return time.Time{}, fmt.Errorf("missing")
}
