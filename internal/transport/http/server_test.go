package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"vantage/internal/analytics"
	"vantage/internal/gateway/exchange"
	"vantage/internal/ingest"
	"vantage/internal/store/gormstore"
	"vantage/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBalanceSource struct {
	balance exchange.Balance
	err     error
}

func (s *stubBalanceSource) Name() string { return "stub" }

func (s *stubBalanceSource) GetBalance(context.Context, string) (exchange.Balance, error) {
	if s.err != nil {
		return exchange.Balance{}, s.err
	}
	return s.balance, nil
}

const testSchema = `schema:
  type: object
  required:
    - pair
    - profit_abs
`

func newTestServer(t *testing.T, balances *stubBalanceSource) (*Server, *gormstore.Store) {
	t.Helper()
	dir := t.TempDir()

	store, err := gormstore.NewStore(filepath.Join(dir, "server_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	schemaPath := filepath.Join(dir, "trade_schema.yaml")
	require.NoError(t, os.WriteFile(schemaPath, []byte(testSchema), 0o644))
	registry, err := ingest.NewSchemaRegistry(schemaPath)
	require.NoError(t, err)

	engine := analytics.NewEngine(store, balances, "USDT", 0)
	srv, err := NewServer(ServerConfig{
		Engine:   engine,
		Cache:    analytics.NewSnapshotCache(engine, time.Second),
		Store:    store,
		Importer: ingest.NewImporter(store, registry),
	})
	require.NoError(t, err)
	return srv, store
}

func seedTrades(t *testing.T, store *gormstore.Store) {
	t.Helper()
	now := time.Now().UTC()
	pnls := []float64{100, -50, 200, -30, 150}
	trades := make([]types.ClosedTrade, len(pnls))
	for i, p := range pnls {
		trades[i] = types.ClosedTrade{
			ExternalID: int64(i + 1),
			Symbol:     "BTCUSDT",
			Side:       types.TradeSideLong,
			Quantity:   1,
			Margin:     137,
			PnL:        p,
			OpenedAt:   now.Add(-time.Duration(len(pnls)-i) * 25 * time.Hour),
			ClosedAt:   now.Add(-time.Duration(len(pnls)-i) * 24 * time.Hour),
		}
	}
	require.NoError(t, store.UpsertClosedTrades(context.Background(), trades))
}

func doRequest(srv *Server, method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubBalanceSource{balance: exchange.Balance{Total: 1000}})
	rec := doRequest(srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, store := newTestServer(t, &stubBalanceSource{balance: exchange.Balance{Total: 1370}})
	seedTrades(t, store)

	rec := doRequest(srv, http.MethodGet, "/api/metrics?period=30d", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Snapshot analytics.MetricsSnapshot `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "30d", body.Snapshot.Period)
	assert.Equal(t, 5, body.Snapshot.Basic.TotalTrades)
	assert.InDelta(t, 370.0, body.Snapshot.Basic.TotalPnL, 1e-9)
	assert.InDelta(t, 1000.0, body.Snapshot.StartingEquity, 1e-9)
}

func TestMetricsBadPeriod(t *testing.T) {
	srv, _ := newTestServer(t, &stubBalanceSource{balance: exchange.Balance{Total: 1000}})
	rec := doRequest(srv, http.MethodGet, "/api/metrics?period=2w", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsNoBaselineIsBadGateway(t *testing.T) {
	srv, _ := newTestServer(t, &stubBalanceSource{err: errors.New("exchange down")})
	rec := doRequest(srv, http.MethodGet, "/api/metrics?period=7d", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestEquityEndpoint(t *testing.T) {
	srv, store := newTestServer(t, &stubBalanceSource{balance: exchange.Balance{Total: 1370}})
	seedTrades(t, store)

	rec := doRequest(srv, http.MethodGet, "/api/equity?period=30d", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Points []types.EquityPoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Points, 5)
	assert.InDelta(t, 1370.0, body.Points[4].Equity, 1e-9)
}

func TestBreakdownEndpoints(t *testing.T) {
	srv, store := newTestServer(t, &stubBalanceSource{balance: exchange.Balance{Total: 1370}})
	seedTrades(t, store)

	for _, target := range []string{
		"/api/breakdown/monthly?period=30d",
		"/api/breakdown/hourly?period=30d",
		"/api/breakdown/symbol?period=30d",
	} {
		rec := doRequest(srv, http.MethodGet, target, "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

func TestImportEndpointInvalidatesCache(t *testing.T) {
	srv, _ := newTestServer(t, &stubBalanceSource{balance: exchange.Balance{Total: 1000}})

	// prime the cache on an empty window
	rec := doRequest(srv, http.MethodGet, "/api/metrics?period=all", "")
	require.Equal(t, http.StatusOK, rec.Code)

	now := time.Now().UTC()
	payload := `[{"trade_id": 1, "pair": "BTC/USDT", "profit_abs": 25.0,
		"open_timestamp": ` + millis(now.Add(-2*time.Hour)) + `,
		"close_timestamp": ` + millis(now.Add(-time.Hour)) + `}]`
	rec = doRequest(srv, http.MethodPost, "/api/trades/import", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(srv, http.MethodGet, "/api/metrics?period=all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Snapshot analytics.MetricsSnapshot `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Snapshot.Basic.TotalTrades)
}

func TestTradesEndpoint(t *testing.T) {
	srv, store := newTestServer(t, &stubBalanceSource{balance: exchange.Balance{Total: 1370}})
	seedTrades(t, store)

	rec := doRequest(srv, http.MethodGet, "/api/trades?limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total  int                 `json:"total"`
		Trades []types.ClosedTrade `json:"trades"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5, body.Total)
	assert.Len(t, body.Trades, 2)
}

func TestReportEndpoint(t *testing.T) {
	srv, store := newTestServer(t, &stubBalanceSource{balance: exchange.Balance{Total: 1370}})
	seedTrades(t, store)

	rec := doRequest(srv, http.MethodGet, "/report?period=30d", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Equity curve")
}

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
