package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if !strings.HasPrefix(cfg.BirdEye.PriceURL, "https://public-api.birdeye.so/") {
		t.Fatalf("unexpected price url %q", cfg.BirdEye.PriceURL)
	}
	if cfg.Solana.NativeMint != "So11111111111111111111111111111111111111112" {
		t.Fatalf("unexpected native mint %q", cfg.Solana.NativeMint)
	}
}

func TestFromEnvOverride(t *testing.T) {
	t.Setenv("BIRDEYE_API_KEY", "key-123")
	t.Setenv("DEXSCREENER_TOKEN_URL", "https://example.test/tokens/")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("from env: %v", err)
	}
	if cfg.BirdEye.APIKey != "key-123" {
		t.Fatalf("api key override not applied: %q", cfg.BirdEye.APIKey)
	}
	if cfg.DexScreener.TokenURL != "https://example.test/tokens/" {
		t.Fatalf("token url override not applied: %q", cfg.DexScreener.TokenURL)
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
birdeye:
  api_key: yaml-key
  price_url: https://example.test/price
  token_url: https://example.test/token
dexscreener:
  token_url: https://example.test/tokens/
  bulk_token_url: https://example.test/tokens
solana:
  native_mint: So11111111111111111111111111111111111111112
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BirdEye.APIKey != "yaml-key" || cfg.BirdEye.PriceURL != "https://example.test/price" {
		t.Fatalf("unexpected config: %#v", cfg.BirdEye)
	}
}

func TestLoadFromPathMissingEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("birdeye:\n  api_key: k\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
