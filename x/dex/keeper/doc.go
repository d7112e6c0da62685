// Package keeper implements the DEX module keeper.
//
// The keeper runs constant-product (x * y = k) liquidity pools over pairs of
// fungible assets held by an external ledger. It owns the pool registry, the
// LP share ledger of every pool and the swap engine. Asset custody is
// delegated to a LedgerKeeper; the dex only ever moves assets between
// accounts and its own module account.
//
// # Operations
//
// Pools: CreatePool registers an empty pool for a canonical asset pair.
// GetPool and GetPoolByAssets look pools up by id or by pair in either order.
//
// Liquidity: AddLiquidity deposits assets at the current reserve ratio and
// mints shares. The first deposit locks MinimumLiquidity shares forever.
// RemoveLiquidity burns shares for a pro-rata payout.
//
// Swaps: SwapExactIn and SwapExactOut trade against the pool with the fee
// left in the input reserve. Each is bounded by a slippage limit.
//
// Prices: SpotPrice reads reserve_quote / reserve_base as an exact fraction.
//
// Every mutating operation runs in a cached branch of the store and is
// committed only if it succeeds, together with its event.
//
// # Metrics
//
// The keeper exposes Prometheus metrics for swaps, pools and liquidity
// changes via DEXMetrics.
package keeper
