package marketdata

import (
	"encoding/json"
	"strings"
)

var (
	fallbackOverview = json.RawMessage(`{"total_market_cap_usd":142000000,"total_volume_24h_usd":8500000,"cspr_price_usd":0.0245,"cspr_price_change_24h":3.42,"active_tokens":47,"total_transactions_24h":15420}`)

	fallbackTokens = json.RawMessage(`{"data":[{"contract_package_hash":"cspr","name":"Casper","symbol":"CSPR","decimals":9,"price_usd":0.0245,"price_change_24h":3.42,"volume_24h":5200000,"market_cap":320000000,"total_supply":"13000000000000000000","holders_count":125000}]}`)

	fallbackPools = json.RawMessage(`{"data":[{"pool_hash":"pool-cspr-usdt-001","token0":{"contract_package_hash":"cspr","name":"Casper","symbol":"CSPR","decimals":9},"token1":{"contract_package_hash":"usdt","name":"USDT","symbol":"USDT","decimals":6},"reserve0":"102000000000000000","reserve1":"2500000000000","liquidity_usd":5000000,"volume_24h":890000,"fee_tier":0.003,"apy_7d":24.5}]}`)

	fallbackEmpty = json.RawMessage(`{"data":[]}`)
)

// Fallback returns the static body served for an endpoint when the upstream is unavailable
func Fallback(endpoint string) json.RawMessage {
	var body json.RawMessage
	switch {
	case strings.Contains(endpoint, "overview"):
		body = fallbackOverview
	case strings.Contains(endpoint, "tokens"):
		body = fallbackTokens
	case strings.Contains(endpoint, "pools"):
		body = fallbackPools
	default:
		body = fallbackEmpty
	}
	out := make(json.RawMessage, len(body))
	copy(out, body)
	return out
}
