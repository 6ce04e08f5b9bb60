// Package birdeye wraps the BirdEye token analytics API for Solana tokens.
package birdeye

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/soultrade/marketdata/internal/app/domain/token"
	"github.com/soultrade/marketdata/internal/app/services/overview"
	"github.com/soultrade/marketdata/internal/config"
	"github.com/soultrade/marketdata/internal/httputil"
	"github.com/soultrade/marketdata/internal/solana"
	"github.com/soultrade/marketdata/pkg/logger"
)

// Client is a stateless facade over the BirdEye HTTP API. All state is
// read-only configuration captured at construction.
type Client struct {
	transport *httputil.Client
	priceURL  string
	tokenURL  string
	log       *logger.Logger
}

// NewClient builds a BirdEye client. A nil http.Client uses the transport
// default timeout.
func NewClient(cfg config.BirdEye, httpClient *http.Client, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewDefault("birdeye")
	}
	headers := map[string]string{
		"accept":    "application/json",
		"x-chain":   "solana",
		"X-API-KEY": cfg.APIKey,
	}
	return &Client{
		transport: httputil.NewClient(httpClient, headers, log),
		priceURL:  cfg.PriceURL,
		tokenURL:  cfg.TokenURL,
		log:       log,
	}
}

type priceData struct {
	Value           *decimal.Decimal `json:"value"`
	UpdateHumanTime string           `json:"updateHumanTime"`
}

// emptyData reports a data payload the upstream left missing, null or
// empty; those tokens are skipped rather than failed.
func emptyData(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null" || trimmed == "{}"
}

// FetchPrices fetches the current price for each token via the multi-price
// endpoint, one call per token. The inner map is keyed by the upstream
// updateHumanTime value (empty string when absent). The liquidity slot
// repeats the price value; the endpoint reports no separate liquidity
// figure and downstream consumers rely on this shape.
//
// Tokens the API returns no data object for are omitted from the result.
// Any validation, transport or structural failure aborts the whole batch.
func (c *Client) FetchPrices(ctx context.Context, tokenAddresses []string) (map[string]map[string]token.PriceInfo[decimal.Decimal], error) {
	if len(tokenAddresses) == 0 {
		return nil, token.ErrEmptyInput
	}

	prices := make(map[string]map[string]token.PriceInfo[decimal.Decimal])
	for _, addr := range tokenAddresses {
		if err := solana.ValidateAddress(addr); err != nil {
			return nil, err
		}

		raw, err := c.transport.Get(ctx, c.priceURL, url.Values{"address": {addr}})
		if err != nil {
			return nil, wrapUpstream(err, tokenAddresses)
		}

		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return nil, fmt.Errorf("decode price response for %s: %w", addr, err)
		}
		if emptyData(envelope.Data) {
			c.log.WithField("token", addr).Debug("no price data, skipping token")
			continue
		}

		var data priceData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, fmt.Errorf("decode price data for %s: %w", addr, err)
		}
		if data.Value == nil {
			return nil, &token.StructureError{Path: "data.value"}
		}

		prices[addr] = map[string]token.PriceInfo[decimal.Decimal]{
			data.UpdateHumanTime: {Value: *data.Value, Liquidity: *data.Value},
		}
	}
	return prices, nil
}

// FetchTokenOverview fetches the pool overview for one token. The payload
// arrives nested under "data"; a missing or null data object fails the
// schemaVersion requirement downstream.
func (c *Client) FetchTokenOverview(ctx context.Context, address string) (token.Overview, error) {
	if err := solana.ValidateAddress(address); err != nil {
		return token.Overview{}, err
	}

	raw, err := c.transport.Get(ctx, c.tokenURL, url.Values{"address": {address}})
	if err != nil {
		return token.Overview{}, wrapUpstream(err, []string{address})
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return token.Overview{}, fmt.Errorf("decode overview response for %s: %w", address, err)
	}
	return overview.Normalize(envelope.Data)
}

// wrapUpstream converts a transport status failure into the typed upstream
// error carrying the aborted token batch; other errors pass through.
func wrapUpstream(err error, tokens []string) error {
	var statusErr *httputil.StatusError
	if errors.As(err, &statusErr) {
		return token.NewUpstreamError(statusErr.StatusCode, tokens, err)
	}
	return err
}
