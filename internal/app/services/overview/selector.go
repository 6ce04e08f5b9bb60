package overview

import "github.com/tidwall/gjson"

// SelectPool scans raw pool records left to right and returns the one that
// trades the target token against the native mint with the highest USD
// liquidity. A missing liquidity.usd counts as zero; ties keep the first
// record seen (strictly-greater comparison). The second return is false
// when no pool matches the base/quote filter.
func SelectPool(pools []gjson.Result, targetAddress, nativeMint string) (gjson.Result, bool) {
	var best gjson.Result
	found := false
	maxLiquidityUSD := -1.0

	for _, pool := range pools {
		if pool.Get("baseToken.address").String() != targetAddress {
			continue
		}
		if pool.Get("quoteToken.address").String() != nativeMint {
			continue
		}
		liquidityUSD := pool.Get("liquidity.usd").Float()
		if liquidityUSD > maxLiquidityUSD {
			maxLiquidityUSD = liquidityUSD
			best = pool
			found = true
		}
	}
	return best, found
}
