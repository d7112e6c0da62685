package keeper

import (
	"math/big"
	"strconv"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/pawswap/x/dex/types"
)

// DEXMetrics holds all Prometheus metrics for the DEX module
type DEXMetrics struct {
	// Swap metrics
	SwapsTotal *prometheus.CounterVec
	SwapVolume *prometheus.CounterVec

	// Liquidity metrics
	LiquidityEvents *prometheus.CounterVec
	LiquidityVolume *prometheus.CounterVec
	PoolReserves    *prometheus.GaugeVec
	LPTokenSupply   *prometheus.GaugeVec

	// Pool metrics
	PoolsCreated prometheus.Counter

	// Failures by operation and registered error code
	OperationFailures *prometheus.CounterVec
}

var (
	dexMetricsOnce sync.Once
	dexMetrics     *DEXMetrics
)

// NewDEXMetrics creates and registers DEX metrics (singleton pattern)
func NewDEXMetrics() *DEXMetrics {
	dexMetricsOnce.Do(func() {
		dexMetrics = &DEXMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "dex",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool_id", "asset_in", "asset_out"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "dex",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_id", "asset"},
			),
			LiquidityEvents: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "dex",
					Name:      "liquidity_events_total",
					Help:      "Total number of liquidity additions and removals",
				},
				[]string{"pool_id", "action"},
			),
			LiquidityVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "dex",
					Name:      "liquidity_volume_total",
					Help:      "Total assets deposited or withdrawn in base units",
				},
				[]string{"pool_id", "asset", "action"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "dex",
					Name:      "pool_reserves",
					Help:      "Current pool reserves in base units",
				},
				[]string{"pool_id", "asset"},
			),
			LPTokenSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "pawswap",
					Subsystem: "dex",
					Name:      "lp_token_supply",
					Help:      "Outstanding LP shares per pool",
				},
				[]string{"pool_id"},
			),
			PoolsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "dex",
					Name:      "pools_created_total",
					Help:      "Total number of pools created",
				},
			),
			OperationFailures: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "pawswap",
					Subsystem: "dex",
					Name:      "operation_failures_total",
					Help:      "Rejected operations by error codespace and code",
				},
				[]string{"operation", "codespace", "code"},
			),
		}
	})
	return dexMetrics
}

func (m *DEXMetrics) recordSwap(pool types.Pool, res types.SwapResult) {
	poolID := strconv.FormatUint(pool.Id, 10)
	m.SwapsTotal.WithLabelValues(poolID, res.AssetIn, res.AssetOut).Inc()
	m.SwapVolume.WithLabelValues(poolID, res.AssetIn).Add(toFloat(res.AmountIn))
	m.observeReserves(pool)
}

func (m *DEXMetrics) recordLiquidity(pool types.Pool, action string, amount0, amount1 math.Int) {
	poolID := strconv.FormatUint(pool.Id, 10)
	m.LiquidityEvents.WithLabelValues(poolID, action).Inc()
	m.LiquidityVolume.WithLabelValues(poolID, pool.Asset0, action).Add(toFloat(amount0))
	m.LiquidityVolume.WithLabelValues(poolID, pool.Asset1, action).Add(toFloat(amount1))
	m.observeReserves(pool)
}

func (m *DEXMetrics) observeReserves(pool types.Pool) {
	poolID := strconv.FormatUint(pool.Id, 10)
	m.PoolReserves.WithLabelValues(poolID, pool.Asset0).Set(toFloat(pool.Reserve0))
	m.PoolReserves.WithLabelValues(poolID, pool.Asset1).Set(toFloat(pool.Reserve1))
	m.LPTokenSupply.WithLabelValues(poolID).Set(toFloat(pool.TotalShares))
}

func (m *DEXMetrics) recordFailure(operation, codespace string, code uint32) {
	m.OperationFailures.WithLabelValues(operation, codespace, strconv.FormatUint(uint64(code), 10)).Inc()
}

// toFloat converts an amount for display; values past 2^53 lose precision.
func toFloat(v math.Int) float64 {
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}
