// Command dexscreener fetches pool-derived token prices and a token
// overview from the DexScreener API and prints them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/soultrade/marketdata/internal/app/services/dexscreener"
	"github.com/soultrade/marketdata/internal/config"
)

func main() {
	var (
		envFile   = flag.String("env", "", "optional .env file with DEXSCREENER_* settings")
		addresses = flag.String("addresses", "", "comma-separated token addresses")
		timeout   = flag.Duration("timeout", 30*time.Second, "overall request deadline")
	)
	flag.Parse()

	if *addresses == "" {
		log.Fatal("at least one token address is required (-addresses)")
	}

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Fatalf("load env (%s): %v", *envFile, err)
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	tokens := strings.Split(*addresses, ",")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := dexscreener.NewClient(cfg.DexScreener, cfg.Solana.NativeMint, nil, nil)

	overview, err := client.FetchTokenOverview(ctx, tokens[0])
	if err != nil {
		log.Fatalf("fetch token overview: %v", err)
	}
	fmt.Printf("Token overview (schema %s): %d pairs\n", overview.SchemaVersion, len(overview.Pairs))
	for _, pair := range overview.Pairs {
		fmt.Printf("  %s %s/%s priceUsd=%s liquidityUsd=%s\n",
			pair.DexID, pair.BaseToken.Symbol, pair.QuoteToken.Symbol, pair.PriceUsd, pair.Liquidity.USD)
	}

	prices, err := client.FetchPrices(ctx, tokens)
	if err != nil {
		log.Fatalf("fetch prices: %v", err)
	}
	for addr, entries := range prices {
		for quoteLiquidity, info := range entries {
			fmt.Printf("%s: dex=%s liquidityUsd=%s liquidityQuote=%s\n", addr, info.Value, info.Liquidity, quoteLiquidity)
		}
	}
}
