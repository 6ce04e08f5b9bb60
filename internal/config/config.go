// Package config carries the static configuration consumed by the provider
// clients: API credentials, endpoint URLs and the native asset mint. The
// clients receive a Config at construction time; there is no process-wide
// state.
package config

import (
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// BirdEye holds the price/analytics provider settings.
type BirdEye struct {
	APIKey   string `yaml:"api_key" env:"BIRDEYE_API_KEY"`
	PriceURL string `yaml:"price_url" env:"BIRDEYE_PRICE_URL,default=https://public-api.birdeye.so/defi/price"`
	TokenURL string `yaml:"token_url" env:"BIRDEYE_TOKEN_URL,default=https://public-api.birdeye.so/defi/token_overview"`
}

// DexScreener holds the DEX aggregator provider settings. TokenURL is a
// prefix the token address is appended to; BulkTokenURL accepts a POSTed
// token list.
type DexScreener struct {
	TokenURL     string `yaml:"token_url" env:"DEXSCREENER_TOKEN_URL,default=https://api.dexscreener.com/latest/dex/tokens/"`
	BulkTokenURL string `yaml:"bulk_token_url" env:"DEXSCREENER_BULK_TOKEN_URL,default=https://api.dexscreener.com/latest/dex/tokens"`
}

// Solana holds chain-level constants.
type Solana struct {
	NativeMint string `yaml:"native_mint" env:"SOL_MINT,default=So11111111111111111111111111111111111111112"`
}

// Config is the full client configuration.
type Config struct {
	BirdEye     BirdEye     `yaml:"birdeye"`
	DexScreener DexScreener `yaml:"dexscreener"`
	Solana      Solana      `yaml:"solana"`
}

// FromEnv builds a Config from environment variables, falling back to the
// public endpoint defaults.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromPath reads a YAML config file. Fields absent from the file stay
// empty; Validate rejects configs that lost a required endpoint.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every endpoint and constant the clients depend on is
// present. The API key may be empty; some BirdEye endpoints accept
// unauthenticated calls.
func (c *Config) Validate() error {
	if c.BirdEye.PriceURL == "" {
		return fmt.Errorf("birdeye price_url is required")
	}
	if c.BirdEye.TokenURL == "" {
		return fmt.Errorf("birdeye token_url is required")
	}
	if c.DexScreener.TokenURL == "" {
		return fmt.Errorf("dexscreener token_url is required")
	}
	if c.DexScreener.BulkTokenURL == "" {
		return fmt.Errorf("dexscreener bulk_token_url is required")
	}
	if c.Solana.NativeMint == "" {
		return fmt.Errorf("solana native_mint is required")
	}
	return nil
}
