// Package dexscreener wraps the DexScreener DEX aggregator API for Solana
// tokens.
package dexscreener

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/soultrade/marketdata/internal/app/domain/token"
	"github.com/soultrade/marketdata/internal/app/services/overview"
	"github.com/soultrade/marketdata/internal/config"
	"github.com/soultrade/marketdata/internal/httputil"
	"github.com/soultrade/marketdata/internal/solana"
	"github.com/soultrade/marketdata/pkg/logger"
)

// Client is a stateless facade over the DexScreener HTTP API.
type Client struct {
	transport    *httputil.Client
	tokenURL     string
	bulkTokenURL string
	nativeMint   string
	log          *logger.Logger
}

// NewClient builds a DexScreener client. nativeMint is the quote asset the
// pool selection filters against.
func NewClient(cfg config.DexScreener, nativeMint string, httpClient *http.Client, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewDefault("dexscreener")
	}
	headers := map[string]string{"accept": "application/json"}
	return &Client{
		transport:    httputil.NewClient(httpClient, headers, log),
		tokenURL:     cfg.TokenURL,
		bulkTokenURL: cfg.BulkTokenURL,
		nativeMint:   nativeMint,
		log:          log,
	}
}

// FetchPrices derives one price record per token from that token's deepest
// native-quoted pool. The inner map is keyed by the pool's quote-token
// liquidity rendered as a canonical decimal string; the value slot carries
// the pool's dex identifier and the liquidity slot its USD liquidity.
// Downstream consumers rely on this shape.
//
// Tokens with no pool quoted against the native mint are omitted. Any
// validation or transport failure aborts the whole batch.
func (c *Client) FetchPrices(ctx context.Context, tokenAddresses []string) (map[string]map[string]token.PriceInfo[string], error) {
	if len(tokenAddresses) == 0 {
		return nil, token.ErrEmptyInput
	}

	prices := make(map[string]map[string]token.PriceInfo[string])
	for _, addr := range tokenAddresses {
		raw, err := c.callOverview(ctx, addr)
		if err != nil {
			return nil, wrapUpstream(err, tokenAddresses)
		}

		pools := gjson.GetBytes(raw, "pairs").Array()
		pool, ok := overview.SelectPool(pools, addr, c.nativeMint)
		if !ok {
			c.log.WithField("token", addr).Debug("no native-quoted pool, skipping token")
			continue
		}

		liquidityUSD, err := decimalField(pool, "liquidity.usd")
		if err != nil {
			return nil, err
		}
		liquidityQuote, err := decimalField(pool, "liquidity.quote")
		if err != nil {
			return nil, err
		}
		dexID := pool.Get("dexId").String()

		prices[addr] = map[string]token.PriceInfo[string]{
			liquidityQuote.String(): {Value: dexID, Liquidity: liquidityUSD},
		}
	}
	return prices, nil
}

// FetchTokenOverview fetches and normalizes the pool overview for one
// token.
func (c *Client) FetchTokenOverview(ctx context.Context, address string) (token.Overview, error) {
	raw, err := c.callOverview(ctx, address)
	if err != nil {
		return token.Overview{}, wrapUpstream(err, []string{address})
	}
	return overview.Normalize(raw)
}

// FetchTokenOverviews fetches one combined overview for a batch of tokens
// via the bulk endpoint.
func (c *Client) FetchTokenOverviews(ctx context.Context, tokenAddresses []string) (token.Overview, error) {
	if err := solana.ValidateAddresses(tokenAddresses); err != nil {
		return token.Overview{}, err
	}

	raw, err := c.transport.Post(ctx, c.bulkTokenURL, map[string][]string{"tokens": tokenAddresses})
	if err != nil {
		return token.Overview{}, wrapUpstream(err, tokenAddresses)
	}
	return overview.Normalize(raw)
}

// callOverview validates the address and performs the single-token overview
// GET; the token address is appended to the configured URL prefix.
func (c *Client) callOverview(ctx context.Context, address string) (json.RawMessage, error) {
	if err := solana.ValidateAddress(address); err != nil {
		return nil, err
	}
	return c.transport.Get(ctx, c.tokenURL+address, nil)
}

// decimalField reads a decimal off a raw pool record, preserving the
// upstream digits whether the field arrived as a number or a string.
// Absent fields default to zero.
func decimalField(pool gjson.Result, path string) (decimal.Decimal, error) {
	v := pool.Get(path)
	if !v.Exists() {
		return decimal.Zero, nil
	}

	var text string
	switch v.Type {
	case gjson.String:
		text = v.Str
	case gjson.Number:
		text = strings.TrimSpace(v.Raw)
	default:
		return decimal.Zero, fmt.Errorf("unexpected value %q at %s", v.Raw, path)
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

func wrapUpstream(err error, tokens []string) error {
	var statusErr *httputil.StatusError
	if errors.As(err, &statusErr) {
		return token.NewUpstreamError(statusErr.StatusCode, tokens, err)
	}
	return err
}
