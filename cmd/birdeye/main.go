// Command birdeye fetches token prices and a token overview from the
// BirdEye API and prints them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/soultrade/marketdata/internal/app/services/birdeye"
	"github.com/soultrade/marketdata/internal/config"
)

func main() {
	var (
		envFile   = flag.String("env", "", "optional .env file with BIRDEYE_* settings")
		addresses = flag.String("addresses", "", "comma-separated token addresses (defaults to the native mint)")
		timeout   = flag.Duration("timeout", 30*time.Second, "overall request deadline")
	)
	flag.Parse()

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
	if *addresses == "" {
		tokens = []string{cfg.Solana.NativeMint}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := birdeye.NewClient(cfg.BirdEye, nil, nil)

	overview, err := client.FetchTokenOverview(ctx, tokens[0])
	if err != nil {
		log.Printf("token overview unavailable for %s: %v", tokens[0], err)
	} else {
		fmt.Printf("Token overview (schema %s): %d pairs\n", overview.SchemaVersion, len(overview.Pairs))
		for _, pair := range overview.Pairs {
			fmt.Printf("  %s %s/%s priceUsd=%s liquidityUsd=%s\n",
				pair.DexID, pair.BaseToken.Symbol, pair.QuoteToken.Symbol, pair.PriceUsd, pair.Liquidity.USD)
		}
	}

	prices, err := client.FetchPrices(ctx, tokens)
	if err != nil {
		log.Fatalf("fetch prices: %v", err)
	}
	for addr, entries := range prices {
		for updatedAt, info := range entries {
			fmt.Printf("%s @ %s: price=%s liquidity=%s\n", addr, updatedAt, info.Value, info.Liquidity)
		}
	}
}
