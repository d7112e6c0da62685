package types

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Event types for the DEX module
const (
	EventTypePoolCreated      = "pool_created"
	EventTypeLiquidityAdded   = "liquidity_added"
	EventTypeLiquidityRemoved = "liquidity_removed"
	EventTypeSwapExecuted     = "swap_executed"
	EventTypeAssetPrice       = "asset_price"
)

// Event attribute keys
const (
	AttributeKeyPoolID       = "pool_id"
	AttributeKeyAsset0       = "asset0"
	AttributeKeyAsset1       = "asset1"
	AttributeKeyFee          = "fee"
	AttributeKeyProvider     = "provider"
	AttributeKeyOwner        = "owner"
	AttributeKeyTrader       = "trader"
	AttributeKeyAmount0      = "amount0"
	AttributeKeyAmount1      = "amount1"
	AttributeKeySharesMinted = "shares_minted"
	AttributeKeySharesBurned = "shares_burned"
	AttributeKeyAssetIn      = "asset_in"
	AttributeKeyAssetOut     = "asset_out"
	AttributeKeyAmountIn     = "amount_in"
	AttributeKeyAmountOut    = "amount_out"
	AttributeKeyBaseAsset    = "base_asset"
	AttributeKeyQuoteAsset   = "quote_asset"
	AttributeKeyPrice        = "price"
)

// PoolCreated is emitted once a pool is registered.
type PoolCreated struct {
	PoolId uint64
	Pair   AssetPair
	Fee    Fee
}

// ToEvent converts the observation into an sdk event.
func (e PoolCreated) ToEvent() sdk.Event {
	return sdk.NewEvent(
		EventTypePoolCreated,
		sdk.NewAttribute(AttributeKeyPoolID, strconv.FormatUint(e.PoolId, 10)),
		sdk.NewAttribute(AttributeKeyAsset0, e.Pair.Asset0),
		sdk.NewAttribute(AttributeKeyAsset1, e.Pair.Asset1),
		sdk.NewAttribute(AttributeKeyFee, e.Fee.String()),
	)
}

// LiquidityAdded is emitted after a successful deposit.
type LiquidityAdded struct {
	PoolId       uint64
	Provider     sdk.AccAddress
	Amount0      math.Int
	Amount1      math.Int
	SharesMinted math.Int
}

// ToEvent converts the observation into an sdk event.
func (e LiquidityAdded) ToEvent() sdk.Event {
	return sdk.NewEvent(
		EventTypeLiquidityAdded,
		sdk.NewAttribute(AttributeKeyPoolID, strconv.FormatUint(e.PoolId, 10)),
		sdk.NewAttribute(AttributeKeyProvider, e.Provider.String()),
		sdk.NewAttribute(AttributeKeyAmount0, e.Amount0.String()),
		sdk.NewAttribute(AttributeKeyAmount1, e.Amount1.String()),
		sdk.NewAttribute(AttributeKeySharesMinted, e.SharesMinted.String()),
	)
}

// LiquidityRemoved is emitted after a successful withdrawal.
type LiquidityRemoved struct {
	PoolId       uint64
	Owner        sdk.AccAddress
	Amount0      math.Int
	Amount1      math.Int
	SharesBurned math.Int
}

// ToEvent converts the observation into an sdk event.
func (e LiquidityRemoved) ToEvent() sdk.Event {
	return sdk.NewEvent(
		EventTypeLiquidityRemoved,
		sdk.NewAttribute(AttributeKeyPoolID, strconv.FormatUint(e.PoolId, 10)),
		sdk.NewAttribute(AttributeKeyOwner, e.Owner.String()),
		sdk.NewAttribute(AttributeKeyAmount0, e.Amount0.String()),
		sdk.NewAttribute(AttributeKeyAmount1, e.Amount1.String()),
		sdk.NewAttribute(AttributeKeySharesBurned, e.SharesBurned.String()),
	)
}

// SwapExecuted is emitted after either swap entry point succeeds.
type SwapExecuted struct {
	PoolId    uint64
	Trader    sdk.AccAddress
	AssetIn   string
	AmountIn  math.Int
	AssetOut  string
	AmountOut math.Int
}

// ToEvent converts the observation into an sdk event.
func (e SwapExecuted) ToEvent() sdk.Event {
	return sdk.NewEvent(
		EventTypeSwapExecuted,
		sdk.NewAttribute(AttributeKeyPoolID, strconv.FormatUint(e.PoolId, 10)),
		sdk.NewAttribute(AttributeKeyTrader, e.Trader.String()),
		sdk.NewAttribute(AttributeKeyAssetIn, e.AssetIn),
		sdk.NewAttribute(AttributeKeyAmountIn, e.AmountIn.String()),
		sdk.NewAttribute(AttributeKeyAssetOut, e.AssetOut),
		sdk.NewAttribute(AttributeKeyAmountOut, e.AmountOut.String()),
	)
}

// AssetPriceObserved records a spot price read.
type AssetPriceObserved struct {
	PoolId uint64
	Price  SpotPrice
}

// ToEvent converts the observation into an sdk event.
func (e AssetPriceObserved) ToEvent() sdk.Event {
	return sdk.NewEvent(
		EventTypeAssetPrice,
		sdk.NewAttribute(AttributeKeyPoolID, strconv.FormatUint(e.PoolId, 10)),
		sdk.NewAttribute(AttributeKeyBaseAsset, e.Price.BaseAsset),
		sdk.NewAttribute(AttributeKeyQuoteAsset, e.Price.QuoteAsset),
		sdk.NewAttribute(AttributeKeyPrice, e.Price.String()),
	)
}
