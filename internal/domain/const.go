package domain

import "time"

const (
	// Gateway constants
	DEFAULT_IPFS_GATEWAY = "https://ipfs.io"

	// Casper network defaults
	DEFAULT_CHAIN_NAME            = "casper-test"
	DEFAULT_NODE_URL              = "https://node.testnet.casper.network/rpc"
	DEFAULT_CSPR_CLOUD_NODE_URL   = "https://node.testnet.cspr.cloud/rpc"
	DEFAULT_CSPR_CLOUD_API_URL    = "https://api.testnet.cspr.cloud"
	DEFAULT_CSPR_CLOUD_STREAM_URL = "wss://streaming.cspr.cloud"
	DEFAULT_EXPLORER_URL          = "https://testnet.cspr.live"

	// CEP-78 invoice contract on testnet
	DEFAULT_CONTRACT_PACKAGE_HASH = "113fd0f7f4f803e2401a9547442e2ca31bd9001b4fcd803eaff7a3dac11e4623"
	DEFAULT_CONTRACT_HASH         = "contract-2faa3d9bd2009c1988dd45f19cf307b3737ab191a4c16605588936ebb98aaa1a"

	// DEFAULT_VAULT_PUBLIC_KEY receives funding when an invoice has no known owner
	DEFAULT_VAULT_PUBLIC_KEY = "0106ca7c39cd272dbf21a86eeb3b36b7c26e2e9b94af64292419f7862936bca2ca"

	// Amounts in motes
	MOTES_PER_CSPR           uint64 = 1_000_000_000
	DEFAULT_MINT_PAYMENT     uint64 = 50 * MOTES_PER_CSPR
	DEFAULT_REGISTER_PAYMENT uint64 = 3 * MOTES_PER_CSPR
	DEFAULT_TRANSFER_PAYMENT uint64 = 100_000_000
	MAX_INVESTMENT_MOTES     uint64 = 50 * MOTES_PER_CSPR

	// CSPR_USD_PRICE is the reference price used to convert invoice valuations into motes
	CSPR_USD_PRICE = 0.0245

	DEFAULT_DEPLOY_TTL   = 30 * time.Minute
	DEFAULT_GAS_PRICE    = 1
	DEFAULT_SETTLE_WAIT  = 30 * time.Second
	SIMULATED_SCORE_WAIT = 2500 * time.Millisecond

	// MAX_DOCUMENT_SIZE bounds documents accepted for analysis and upload
	MAX_DOCUMENT_SIZE = 10 << 20

	// MIRROR_KEY is the key under which the local mirror keeps its JSON array
	MIRROR_KEY = "flowfi_minted_invoices"

	DEFAULT_CURRENCY = "USD"
)
