package binance

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vantage/internal/gateway/exchange"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/shopspring/decimal"
)

// Source implements exchange.BalanceSource on top of the go-binance SDK.
type Source struct {
	cfg    Config
	client *futures.Client
}

func New(cfg Config) (*Source, error) {
	final := cfg.withDefaults()
	client := futures.NewClient(final.APIKey, final.APISecret)
	client.BaseURL = final.RESTBaseURL
	httpClient := &http.Client{Timeout: final.HTTPTimeout}
	if final.ProxyEnabled && final.RESTProxyURL != "" {
		proxyURL, err := url.Parse(final.RESTProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REST proxy url: %w", err)
		}
		baseTransport, ok := http.DefaultTransport.(*http.Transport)
		if !ok || baseTransport == nil {
			return nil, fmt.Errorf("http DefaultTransport is not *http.Transport")
		}
		transport := baseTransport.Clone()
		transport.Proxy = http.ProxyURL(proxyURL)
		httpClient.Transport = transport
	}
	client.HTTPClient = httpClient
	return &Source{cfg: final, client: client}, nil
}

func (s *Source) Name() string { return "binance" }

// GetBalance fetches the futures wallet balance for one asset. Single
// request, no retries; the caller owns the fallback policy.
func (s *Source) GetBalance(ctx context.Context, asset string) (exchange.Balance, error) {
	asset = strings.ToUpper(strings.TrimSpace(asset))
	if asset == "" {
		return exchange.Balance{}, fmt.Errorf("asset is required")
	}
	balances, err := s.client.NewGetBalanceService().Do(ctx)
	if err != nil {
		return exchange.Balance{}, fmt.Errorf("binance balance query: %w", err)
	}
	for _, b := range balances {
		if !strings.EqualFold(b.Asset, asset) {
			continue
		}
		total, err := decimal.NewFromString(strings.TrimSpace(b.Balance))
		if err != nil {
			return exchange.Balance{}, fmt.Errorf("parse balance %q: %w", b.Balance, err)
		}
		available, err := decimal.NewFromString(strings.TrimSpace(b.AvailableBalance))
		if err != nil {
			return exchange.Balance{}, fmt.Errorf("parse available balance %q: %w", b.AvailableBalance, err)
		}
		return exchange.Balance{
			Asset:     asset,
			Total:     total.InexactFloat64(),
			Available: available.InexactFloat64(),
			Used:      total.Sub(available).InexactFloat64(),
			UpdatedAt: time.Now(),
		}, nil
	}
	return exchange.Balance{}, fmt.Errorf("asset %s not present in futures balance response", asset)
}
