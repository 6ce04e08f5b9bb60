// Package overview converts raw provider JSON into the uniform token
// record tree and selects representative liquidity pools. Both provider
// clients share this logic.
package overview

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/soultrade/marketdata/internal/app/domain/token"
)

// Wire schema for a token overview response. Pointer fields mark mandatory
// leaves: any nil after decoding fails the whole normalization. The
// price-oriented provider nests this payload under "data"; callers unwrap
// before calling Normalize.
type wireOverview struct {
	SchemaVersion *string    `json:"schemaVersion"`
	Pairs         []wirePair `json:"pairs"`
}

type wirePair struct {
	ChainID       *string          `json:"chainId"`
	DexID         *string          `json:"dexId"`
	URL           *string          `json:"url"`
	PairAddress   *string          `json:"pairAddress"`
	BaseToken     *wireToken       `json:"baseToken"`
	QuoteToken    *wireToken       `json:"quoteToken"`
	PriceNative   *decimal.Decimal `json:"priceNative"`
	PriceUsd      *decimal.Decimal `json:"priceUsd"`
	Txns          *wireTxns        `json:"txns"`
	Volume        *wireWindows     `json:"volume"`
	PriceChange   *wireWindows     `json:"priceChange"`
	Liquidity     *wireLiquidity   `json:"liquidity"`
	FDV           *decimal.Decimal `json:"fdv"`
	PairCreatedAt *int64           `json:"pairCreatedAt"`
	Info          *wireInfo        `json:"info"`
}

type wireToken struct {
	Address *string `json:"address"`
	Name    *string `json:"name"`
	Symbol  *string `json:"symbol"`
}

type wireTxns struct {
	M5  *wireTxnWindow `json:"m5"`
	H1  *wireTxnWindow `json:"h1"`
	H6  *wireTxnWindow `json:"h6"`
	H24 *wireTxnWindow `json:"h24"`
}

type wireTxnWindow struct {
	Buys  *int `json:"buys"`
	Sells *int `json:"sells"`
}

type wireWindows struct {
	M5  *float64 `json:"m5"`
	H1  *float64 `json:"h1"`
	H6  *float64 `json:"h6"`
	H24 *float64 `json:"h24"`
}

type wireLiquidity struct {
	USD   *decimal.Decimal `json:"usd"`
	Base  *decimal.Decimal `json:"base"`
	Quote *decimal.Decimal `json:"quote"`
}

type wireInfo struct {
	ImageURL *string        `json:"imageUrl"`
	Websites *[]wireWebsite `json:"websites"`
	Socials  *[]wireSocial  `json:"socials"`
}

type wireWebsite struct {
	Label *string `json:"label"`
	URL   *string `json:"url"`
}

type wireSocial struct {
	Type *string `json:"type"`
	URL  *string `json:"url"`
}

// Normalize converts one raw overview payload into a token.Overview.
// schemaVersion is mandatory; a missing pairs array yields an empty
// overview; a missing mandatory field anywhere inside a pair fails the
// whole call with a StructureError naming the field. Pairs are never
// silently skipped.
func Normalize(raw json.RawMessage) (token.Overview, error) {
	var wire wireOverview
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &wire); err != nil {
			return token.Overview{}, fmt.Errorf("decode overview: %w", err)
		}
	}
	if wire.SchemaVersion == nil {
		return token.Overview{}, &token.StructureError{Path: "schemaVersion"}
	}

	pairs := make([]token.Pair, 0, len(wire.Pairs))
	for i, wp := range wire.Pairs {
		pair, err := wp.toDomain(fmt.Sprintf("pairs[%d]", i))
		if err != nil {
			return token.Overview{}, err
		}
		pairs = append(pairs, pair)
	}

	return token.Overview{SchemaVersion: *wire.SchemaVersion, Pairs: pairs}, nil
}

// need unwraps a mandatory wire field or reports its path.
func need[T any](v *T, path string) (T, error) {
	if v == nil {
		var zero T
		return zero, &token.StructureError{Path: path}
	}
	return *v, nil
}

func (wp wirePair) toDomain(path string) (token.Pair, error) {
	var pair token.Pair
	var err error

	if pair.ChainID, err = need(wp.ChainID, path+".chainId"); err != nil {
		return token.Pair{}, err
	}
	if pair.DexID, err = need(wp.DexID, path+".dexId"); err != nil {
		return token.Pair{}, err
	}
	if pair.URL, err = need(wp.URL, path+".url"); err != nil {
		return token.Pair{}, err
	}
	if pair.PairAddress, err = need(wp.PairAddress, path+".pairAddress"); err != nil {
		return token.Pair{}, err
	}
	if pair.BaseToken, err = tokenInfo(wp.BaseToken, path+".baseToken"); err != nil {
		return token.Pair{}, err
	}
	if pair.QuoteToken, err = tokenInfo(wp.QuoteToken, path+".quoteToken"); err != nil {
		return token.Pair{}, err
	}
	if pair.PriceNative, err = need(wp.PriceNative, path+".priceNative"); err != nil {
		return token.Pair{}, err
	}
	if pair.PriceUsd, err = need(wp.PriceUsd, path+".priceUsd"); err != nil {
		return token.Pair{}, err
	}
	if pair.Txns, err = transactionData(wp.Txns, path+".txns"); err != nil {
		return token.Pair{}, err
	}
	if pair.Volume, err = windows(wp.Volume, path+".volume"); err != nil {
		return token.Pair{}, err
	}
	change, err := windows(wp.PriceChange, path+".priceChange")
	if err != nil {
		return token.Pair{}, err
	}
	pair.PriceChange = token.PriceChange(change)
	if pair.Liquidity, err = liquidity(wp.Liquidity, path+".liquidity"); err != nil {
		return token.Pair{}, err
	}
	if pair.FDV, err = need(wp.FDV, path+".fdv"); err != nil {
		return token.Pair{}, err
	}
	if pair.PairCreatedAt, err = need(wp.PairCreatedAt, path+".pairCreatedAt"); err != nil {
		return token.Pair{}, err
	}
	if pair.Info, err = info(wp.Info, path+".info"); err != nil {
		return token.Pair{}, err
	}

	return pair, nil
}

func tokenInfo(wt *wireToken, path string) (token.TokenInfo, error) {
	if wt == nil {
		return token.TokenInfo{}, &token.StructureError{Path: path}
	}
	var out token.TokenInfo
	var err error
	if out.Address, err = need(wt.Address, path+".address"); err != nil {
		return token.TokenInfo{}, err
	}
	if out.Name, err = need(wt.Name, path+".name"); err != nil {
		return token.TokenInfo{}, err
	}
	if out.Symbol, err = need(wt.Symbol, path+".symbol"); err != nil {
		return token.TokenInfo{}, err
	}
	return out, nil
}

func transactionData(wt *wireTxns, path string) (token.TransactionData, error) {
	if wt == nil {
		return token.TransactionData{}, &token.StructureError{Path: path}
	}
	var out token.TransactionData
	var err error
	if out.M5, err = txnWindow(wt.M5, path+".m5"); err != nil {
		return token.TransactionData{}, err
	}
	if out.H1, err = txnWindow(wt.H1, path+".h1"); err != nil {
		return token.TransactionData{}, err
	}
	if out.H6, err = txnWindow(wt.H6, path+".h6"); err != nil {
		return token.TransactionData{}, err
	}
	if out.H24, err = txnWindow(wt.H24, path+".h24"); err != nil {
		return token.TransactionData{}, err
	}
	return out, nil
}

func txnWindow(ww *wireTxnWindow, path string) (token.Txns, error) {
	if ww == nil {
		return token.Txns{}, &token.StructureError{Path: path}
	}
	var out token.Txns
	var err error
	if out.Buys, err = need(ww.Buys, path+".buys"); err != nil {
		return token.Txns{}, err
	}
	if out.Sells, err = need(ww.Sells, path+".sells"); err != nil {
		return token.Txns{}, err
	}
	return out, nil
}

// windows builds the four-window float shape shared by Volume and
// PriceChange; the caller converts for the latter.
func windows(ww *wireWindows, path string) (token.Volume, error) {
	if ww == nil {
		return token.Volume{}, &token.StructureError{Path: path}
	}
	var out token.Volume
	var err error
	if out.M5, err = need(ww.M5, path+".m5"); err != nil {
		return token.Volume{}, err
	}
	if out.H1, err = need(ww.H1, path+".h1"); err != nil {
		return token.Volume{}, err
	}
	if out.H6, err = need(ww.H6, path+".h6"); err != nil {
		return token.Volume{}, err
	}
	if out.H24, err = need(ww.H24, path+".h24"); err != nil {
		return token.Volume{}, err
	}
	return out, nil
}

func liquidity(wl *wireLiquidity, path string) (token.Liquidity, error) {
	if wl == nil {
		return token.Liquidity{}, &token.StructureError{Path: path}
	}
	var out token.Liquidity
	var err error
	if out.USD, err = need(wl.USD, path+".usd"); err != nil {
		return token.Liquidity{}, err
	}
	if out.Base, err = need(wl.Base, path+".base"); err != nil {
		return token.Liquidity{}, err
	}
	if out.Quote, err = need(wl.Quote, path+".quote"); err != nil {
		return token.Liquidity{}, err
	}
	return out, nil
}

func info(wi *wireInfo, path string) (token.Info, error) {
	if wi == nil {
		return token.Info{}, &token.StructureError{Path: path}
	}
	imageURL, err := need(wi.ImageURL, path+".imageUrl")
	if err != nil {
		return token.Info{}, err
	}
	rawWebsites, err := need(wi.Websites, path+".websites")
	if err != nil {
		return token.Info{}, err
	}
	rawSocials, err := need(wi.Socials, path+".socials")
	if err != nil {
		return token.Info{}, err
	}

	websites := make([]token.Website, 0, len(rawWebsites))
	for i, ws := range rawWebsites {
		itemPath := fmt.Sprintf("%s.websites[%d]", path, i)
		label, err := need(ws.Label, itemPath+".label")
		if err != nil {
			return token.Info{}, err
		}
		u, err := need(ws.URL, itemPath+".url")
		if err != nil {
			return token.Info{}, err
		}
		websites = append(websites, token.Website{Label: label, URL: u})
	}

	socials := make([]token.Social, 0, len(rawSocials))
	for i, ws := range rawSocials {
		itemPath := fmt.Sprintf("%s.socials[%d]", path, i)
		typ, err := need(ws.Type, itemPath+".type")
		if err != nil {
			return token.Info{}, err
		}
		u, err := need(ws.URL, itemPath+".url")
		if err != nil {
			return token.Info{}, err
		}
		socials = append(socials, token.Social{Type: typ, URL: u})
	}

	return token.Info{ImageURL: imageURL, Websites: websites, Socials: socials}, nil
}
