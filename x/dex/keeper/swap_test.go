package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/paw-chain/pawswap/x/dex/types"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

func (suite *KeeperTestSuite) TestSwapExactIn() {
	pool := suite.seedPool()
	trader := suite.fundedTrader("uatom", 100)

	quote, err := suite.keeper.QuoteExactIn(suite.ctx, pool.Id, "uatom", math.NewInt(100))
	suite.Require().NoError(err)

	ctx := freshEvents(suite.ctx)
	res, err := suite.keeper.SwapExactIn(ctx, trader, pool.Id, "uatom", math.NewInt(100), math.NewInt(90))
	suite.Require().NoError(err)
	suite.Require().Equal("upaw", res.AssetOut)
	suite.Require().Equal(int64(90), res.AmountOut.Int64())
	suite.Require().True(quote.AmountOut.Equal(res.AmountOut))

	pool = suite.pool(pool.Id)
	suite.Require().Equal(int64(1100), pool.Reserve0.Int64())
	suite.Require().Equal(int64(910), pool.Reserve1.Int64())

	suite.Require().True(suite.f.Balance(trader, "uatom").IsZero())
	suite.Require().Equal(int64(90), suite.f.Balance(trader, "upaw").Int64())

	events := eventsOfType(ctx, types.EventTypeSwapExecuted)
	suite.Require().Len(events, 1)
	suite.Require().Equal("uatom", attribute(events[0], types.AttributeKeyAssetIn))
	suite.Require().Equal("100", attribute(events[0], types.AttributeKeyAmountIn))
	suite.Require().Equal("90", attribute(events[0], types.AttributeKeyAmountOut))
	suite.Require().Equal(trader.String(), attribute(events[0], types.AttributeKeyTrader))
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestSwapExactIn_ReverseDirection() {
	pool := suite.seedPool()
	trader := suite.fundedTrader("upaw", 100)

	res, err := suite.keeper.SwapExactIn(suite.ctx, trader, pool.Id, "upaw", math.NewInt(100), math.ZeroInt())
	suite.Require().NoError(err)
	suite.Require().Equal("uatom", res.AssetOut)
	suite.Require().Equal(int64(90), res.AmountOut.Int64())

	pool = suite.pool(pool.Id)
	suite.Require().Equal(int64(910), pool.Reserve0.Int64())
	suite.Require().Equal(int64(1100), pool.Reserve1.Int64())
}

func (suite *KeeperTestSuite) TestSwapExactOut() {
	pool := suite.seedPool()
	trader := suite.fundedTrader("uatom", 150)

	quote, err := suite.keeper.QuoteExactOut(suite.ctx, pool.Id, "uatom", math.NewInt(90))
	suite.Require().NoError(err)
	suite.Require().Equal(int64(100), quote.AmountIn.Int64())

	res, err := suite.keeper.SwapExactOut(suite.ctx, trader, pool.Id, "uatom", math.NewInt(90), math.NewInt(100))
	suite.Require().NoError(err)
	suite.Require().Equal(int64(100), res.AmountIn.Int64())
	suite.Require().Equal(int64(90), res.AmountOut.Int64())

	suite.Require().Equal(int64(50), suite.f.Balance(trader, "uatom").Int64())
	suite.Require().Equal(int64(90), suite.f.Balance(trader, "upaw").Int64())
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestSwap_SlippageLeavesStateUnchanged() {
	pool := suite.seedPool()
	trader := suite.fundedTrader("uatom", 200)

	ctx := freshEvents(suite.ctx)
	_, err := suite.keeper.SwapExactIn(ctx, trader, pool.Id, "uatom", math.NewInt(100), math.NewInt(91))
	suite.Require().ErrorIs(err, types.ErrSlippageExceeded)

	_, err = suite.keeper.SwapExactOut(ctx, trader, pool.Id, "uatom", math.NewInt(90), math.NewInt(99))
	suite.Require().ErrorIs(err, types.ErrSlippageExceeded)

	suite.Require().Empty(eventsOfType(ctx, types.EventTypeSwapExecuted))
	after := suite.pool(pool.Id)
	suite.Require().True(after.Reserve0.Equal(pool.Reserve0))
	suite.Require().True(after.Reserve1.Equal(pool.Reserve1))
	suite.Require().Equal(int64(200), suite.f.Balance(trader, "uatom").Int64())
	suite.Require().True(suite.f.Balance(trader, "upaw").IsZero())
}

func (suite *KeeperTestSuite) TestSwap_InsufficientTraderBalance() {
	pool := suite.seedPool()
	trader := suite.fundedTrader("uatom", 50)

	_, err := suite.keeper.SwapExactIn(suite.ctx, trader, pool.Id, "uatom", math.NewInt(100), math.ZeroInt())
	suite.Require().ErrorIs(err, ledgertypes.ErrInsufficientBalance)

	after := suite.pool(pool.Id)
	suite.Require().True(after.Reserve0.Equal(pool.Reserve0))
	suite.Require().Equal(int64(50), suite.f.Balance(trader, "uatom").Int64())
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestSwap_Errors() {
	pool := suite.seedPool()
	empty, err := suite.keeper.CreatePool(suite.ctx, "uatom", "uosmo", types.Fee{})
	suite.Require().NoError(err)
	trader := suite.fundedTrader("uatom", 10000)

	tests := []struct {
		name    string
		trader  sdk.AccAddress
		poolID  uint64
		assetIn string
		amount  math.Int
		bound   math.Int
		exact   bool
		errIs   error
	}{
		{"asset not in pool", trader, pool.Id, "uosmo", math.NewInt(10), math.ZeroInt(), true, types.ErrInvalidAsset},
		{"unknown pool", trader, 99, "uatom", math.NewInt(10), math.ZeroInt(), true, types.ErrPoolNotFound},
		{"empty pool", trader, empty, "uatom", math.NewInt(10), math.ZeroInt(), true, types.ErrInsufficientLiquidity},
		{"zero in", trader, pool.Id, "uatom", math.ZeroInt(), math.ZeroInt(), true, types.ErrZeroAmount},
		{"negative in", trader, pool.Id, "uatom", math.NewInt(-5), math.ZeroInt(), true, types.ErrInvalidAmount},
		{"dust in", trader, pool.Id, "uatom", math.NewInt(1), math.ZeroInt(), true, types.ErrZeroAmount},
		{"negative min out", trader, pool.Id, "uatom", math.NewInt(10), math.NewInt(-1), true, types.ErrInvalidAmount},
		{"empty trader", sdk.AccAddress{}, pool.Id, "uatom", math.NewInt(10), math.ZeroInt(), true, sdkerrors.ErrInvalidAddress},
		{"zero out", trader, pool.Id, "uatom", math.ZeroInt(), math.NewInt(10), false, types.ErrZeroAmount},
		{"out equals reserve", trader, pool.Id, "uatom", math.NewInt(1000), math.NewInt(1000000), false, types.ErrInsufficientLiquidity},
		{"out above reserve", trader, pool.Id, "uatom", math.NewInt(5000), math.NewInt(1000000), false, types.ErrInsufficientLiquidity},
		{"empty pool out", trader, empty, "uatom", math.NewInt(10), math.NewInt(100), false, types.ErrInsufficientLiquidity},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			var err error
			if tc.exact {
				_, err = suite.keeper.SwapExactIn(suite.ctx, tc.trader, tc.poolID, tc.assetIn, tc.amount, tc.bound)
			} else {
				_, err = suite.keeper.SwapExactOut(suite.ctx, tc.trader, tc.poolID, tc.assetIn, tc.amount, tc.bound)
			}
			suite.Require().ErrorIs(err, tc.errIs)
		})
	}

	after := suite.pool(pool.Id)
	suite.Require().True(after.Reserve0.Equal(pool.Reserve0))
	suite.Require().True(after.Reserve1.Equal(pool.Reserve1))
}

func (suite *KeeperTestSuite) TestSwap_ConstantProductGrows() {
	pool := suite.seedPool()
	trader := suite.fundedTrader("uatom", 100000)

	k := pool.Reserve0.Mul(pool.Reserve1)
	for _, amount := range []int64{1, 7, 100, 999, 5000} {
		if _, err := suite.keeper.SwapExactIn(suite.ctx, trader, pool.Id, "uatom", math.NewInt(amount), math.ZeroInt()); err != nil {
			suite.Require().ErrorIs(err, types.ErrZeroAmount)
			continue
		}
		after := suite.pool(pool.Id)
		next := after.Reserve0.Mul(after.Reserve1)
		suite.Require().True(next.GT(k), "k must grow: %s -> %s", k, next)
		k = next
	}
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestSwap_RoundTripNeverProfits() {
	pool := suite.seedPool()
	trader := suite.fundedTrader("uatom", 100)

	out, err := suite.keeper.SwapExactIn(suite.ctx, trader, pool.Id, "uatom", math.NewInt(100), math.ZeroInt())
	suite.Require().NoError(err)
	back, err := suite.keeper.SwapExactIn(suite.ctx, trader, pool.Id, "upaw", out.AmountOut, math.ZeroInt())
	suite.Require().NoError(err)

	suite.Require().Equal(int64(98), back.AmountOut.Int64())
	suite.Require().True(back.AmountOut.LT(math.NewInt(100)))
}

func (suite *KeeperTestSuite) TestSwap_ZeroFeePool() {
	poolID, err := suite.keeper.CreatePool(suite.ctx, "uatom", "upaw", types.NewFee(0, 1))
	suite.Require().NoError(err)
	suite.f.Fund(suite.T(), suite.provider, sdk.NewInt64Coin("uatom", 1000), sdk.NewInt64Coin("upaw", 1000))
	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.provider, poolID, math.NewInt(1000), math.NewInt(1000), math.ZeroInt())
	suite.Require().NoError(err)

	trader := suite.fundedTrader("uatom", 1000)
	res, err := suite.keeper.SwapExactIn(suite.ctx, trader, poolID, "uatom", math.NewInt(1000), math.ZeroInt())
	suite.Require().NoError(err)
	suite.Require().Equal(int64(500), res.AmountOut.Int64())
	suite.requireInvariants()
}
