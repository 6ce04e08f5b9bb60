package birdeye

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/soultrade/marketdata/internal/app/domain/token"
	"github.com/soultrade/marketdata/internal/config"
)

const (
	solMint  = "So11111111111111111111111111111111111111112"
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := config.BirdEye{
		APIKey:   "test-key",
		PriceURL: server.URL + "/defi/price",
		TokenURL: server.URL + "/defi/token_overview",
	}
	return NewClient(cfg, server.Client(), nil), server
}

func TestFetchPrices(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if got := r.Header.Get("X-API-KEY"); got != "test-key" {
			t.Fatalf("expected api key header, got %q", got)
		}
		if got := r.Header.Get("x-chain"); got != "solana" {
			t.Fatalf("expected solana chain header, got %q", got)
		}
		switch r.URL.Query().Get("address") {
		case solMint:
			fmt.Fprint(w, `{"data": {"value": "1.23", "updateHumanTime": "2024-01-01T00:00:00"}}`)
		case usdcMint:
			fmt.Fprint(w, `{"data": null}`)
		default:
			t.Fatalf("unexpected address %q", r.URL.Query().Get("address"))
		}
	}))

	prices, err := client.FetchPrices(context.Background(), []string{solMint, usdcMint})
	if err != nil {
		t.Fatalf("fetch prices: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected one call per token, got %d", calls)
	}

	entry, ok := prices[solMint]
	if !ok {
		t.Fatalf("missing entry for %s: %#v", solMint, prices)
	}
	info, ok := entry["2024-01-01T00:00:00"]
	if !ok {
		t.Fatalf("expected updateHumanTime key, got %#v", entry)
	}
	want := decimal.RequireFromString("1.23")
	if !info.Value.Equal(want) || !info.Liquidity.Equal(want) {
		t.Fatalf("expected value and liquidity 1.23, got %s / %s", info.Value, info.Liquidity)
	}

	// null data omits the token without error
	if _, ok := prices[usdcMint]; ok {
		t.Fatalf("token without data must be absent: %#v", prices)
	}
}

func TestFetchPricesMissingTimeKeyedEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"value": 4.56}}`)
	}))

	prices, err := client.FetchPrices(context.Background(), []string{solMint})
	if err != nil {
		t.Fatalf("fetch prices: %v", err)
	}
	if _, ok := prices[solMint][""]; !ok {
		t.Fatalf("expected empty-string key when updateHumanTime is absent: %#v", prices)
	}
}

func TestFetchPricesEmptyBatch(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	if _, err := client.FetchPrices(context.Background(), nil); !errors.Is(err, token.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := client.FetchPrices(context.Background(), []string{""}); !errors.Is(err, token.ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput for empty address, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("validation failures must not reach the network, saw %d calls", calls)
	}
}

func TestFetchPricesInvalidAddress(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	_, err := client.FetchPrices(context.Background(), []string{"not-an-address"})
	var invalidErr *token.InvalidAddressError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected InvalidAddressError, got %v", err)
	}
	if invalidErr.Address != "not-an-address" {
		t.Fatalf("error must carry the offending address, got %q", invalidErr.Address)
	}
	if calls != 0 {
		t.Fatalf("validation failures must not reach the network, saw %d calls", calls)
	}
}

func TestFetchPricesUpstreamFailureAbortsBatch(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("address") == solMint {
			fmt.Fprint(w, `{"data": {"value": "1.23", "updateHumanTime": "t"}}`)
			return
		}
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))

	prices, err := client.FetchPrices(context.Background(), []string{solMint, usdcMint})
	var upstreamErr *token.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstreamErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected status %d", upstreamErr.StatusCode)
	}
	if len(upstreamErr.Tokens) != 2 {
		t.Fatalf("expected the aborted batch on the error, got %v", upstreamErr.Tokens)
	}
	if prices != nil {
		t.Fatalf("no partial result on failure, got %#v", prices)
	}
}

func TestFetchTokenOverview(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/defi/token_overview" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprintf(w, `{"data": %s}`, overviewFixture)
	}))

	overview, err := client.FetchTokenOverview(context.Background(), usdcMint)
	if err != nil {
		t.Fatalf("fetch overview: %v", err)
	}
	if overview.SchemaVersion != "1.0.0" || len(overview.Pairs) != 1 {
		t.Fatalf("unexpected overview: %#v", overview)
	}
	if overview.Pairs[0].DexID != "raydium" {
		t.Fatalf("unexpected pair: %#v", overview.Pairs[0])
	}
}

func TestFetchTokenOverviewMissingData(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": null}`)
	}))

	_, err := client.FetchTokenOverview(context.Background(), usdcMint)
	var structErr *token.StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
	if structErr.Path != "schemaVersion" {
		t.Fatalf("unexpected path %q", structErr.Path)
	}
}

const overviewFixture = `{
  "schemaVersion": "1.0.0",
  "pairs": [
    {
      "chainId": "solana",
      "dexId": "raydium",
      "url": "https://dexscreener.com/solana/pool1",
      "pairAddress": "8HoQnePLqPj4M7PUDzfw8e3Ymdwgc7NUGz81p7Sb9Rsf",
      "baseToken": {"address": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", "name": "USD Coin", "symbol": "USDC"},
      "quoteToken": {"address": "So11111111111111111111111111111111111111112", "name": "Wrapped SOL", "symbol": "SOL"},
      "priceNative": "0.0000001234",
      "priceUsd": "0.02",
      "txns": {
        "m5": {"buys": 1, "sells": 2},
        "h1": {"buys": 10, "sells": 20},
        "h6": {"buys": 100, "sells": 200},
        "h24": {"buys": 1000, "sells": 2000}
      },
      "volume": {"m5": 1.5, "h1": 10.25, "h6": 100, "h24": 1000.125},
      "priceChange": {"m5": -0.5, "h1": 1.1, "h6": -2.25, "h24": 3.75},
      "liquidity": {"usd": 150.5, "base": 1000, "quote": 10},
      "fdv": 12345678.9,
      "pairCreatedAt": 1700000000000,
      "info": {"imageUrl": "https://img.example/usdc.png", "websites": [], "socials": []}
    }
  ]
}`
