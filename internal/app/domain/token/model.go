// Package token defines the value records shared by the market data
// provider clients. All types are plain immutable records constructed once
// per API response.
package token

import "github.com/shopspring/decimal"

// PriceInfo is a point-in-time price/liquidity observation for a token.
// The value slot is generic because the two fetch strategies fill it with
// different kinds: the multi-price path carries a decimal price, the
// pool-derived path carries the dex identifier of the selected pool.
type PriceInfo[V any] struct {
	Value     V
	Liquidity decimal.Decimal
}

// TokenInfo identifies a token as reported by a pool.
type TokenInfo struct {
	Address string
	Name    string
	Symbol  string
}

// Txns holds buy/sell transaction counts for one time window.
type Txns struct {
	Buys  int
	Sells int
}

// TransactionData holds transaction counts across the four fixed windows.
type TransactionData struct {
	M5  Txns
	H1  Txns
	H6  Txns
	H24 Txns
}

// Volume holds traded volume across the four fixed windows.
type Volume struct {
	M5  float64
	H1  float64
	H6  float64
	H24 float64
}

// PriceChange holds price change percentages across the four fixed windows.
type PriceChange struct {
	M5  float64
	H1  float64
	H6  float64
	H24 float64
}

// Liquidity decomposes pool liquidity by denomination.
type Liquidity struct {
	USD   decimal.Decimal
	Base  decimal.Decimal
	Quote decimal.Decimal
}

// Website is a labelled metadata link.
type Website struct {
	Label string
	URL   string
}

// Social is a social media link.
type Social struct {
	Type string
	URL  string
}

// Info carries pool metadata links.
type Info struct {
	ImageURL string
	Websites []Website
	Socials  []Social
}

// Pair describes one trading pool.
type Pair struct {
	ChainID       string
	DexID         string
	URL           string
	PairAddress   string
	BaseToken     TokenInfo
	QuoteToken    TokenInfo
	PriceNative   decimal.Decimal
	PriceUsd      decimal.Decimal
	Txns          TransactionData
	Volume        Volume
	PriceChange   PriceChange
	Liquidity     Liquidity
	FDV           decimal.Decimal
	PairCreatedAt int64
	Info          Info
}

// Overview is the full set of pools reported for a token. Pairs keep the
// order returned by the upstream API and are not deduplicated.
type Overview struct {
	SchemaVersion string
	Pairs         []Pair
}
