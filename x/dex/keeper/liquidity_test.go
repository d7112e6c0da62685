package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/dex/types"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

func (suite *KeeperTestSuite) TestAddLiquidity_FirstDeposit() {
	poolID, err := suite.keeper.CreatePool(suite.ctx, "uatom", "upaw", types.Fee{})
	suite.Require().NoError(err)
	suite.f.Fund(suite.T(), suite.provider, sdk.NewInt64Coin("uatom", 1000), sdk.NewInt64Coin("upaw", 1000))

	ctx := freshEvents(suite.ctx)
	res, err := suite.keeper.AddLiquidity(ctx, suite.provider, poolID, math.NewInt(1000), math.NewInt(1000), math.NewInt(900))
	suite.Require().NoError(err)
	suite.Require().Equal(int64(900), res.SharesMinted.Int64())
	suite.Require().Equal(int64(1000), res.Amount0Used.Int64())
	suite.Require().Equal(int64(1000), res.Amount1Used.Int64())

	pool := suite.pool(poolID)
	suite.Require().Equal(int64(1000), pool.Reserve0.Int64())
	suite.Require().Equal(int64(1000), pool.Reserve1.Int64())
	suite.Require().Equal(int64(1000), pool.TotalShares.Int64())

	suite.Require().Equal(int64(900), suite.shares(poolID, suite.provider).Int64())
	suite.Require().Equal(int64(100), suite.shares(poolID, suite.keeper.LockedSharesAddress()).Int64())

	suite.Require().True(suite.f.Balance(suite.provider, "uatom").IsZero())
	suite.Require().Equal(int64(1000), suite.f.Balance(suite.keeper.GetModuleAddress(), "upaw").Int64())

	events := eventsOfType(ctx, types.EventTypeLiquidityAdded)
	suite.Require().Len(events, 1)
	suite.Require().Equal("900", attribute(events[0], types.AttributeKeySharesMinted))
	suite.Require().Equal(suite.provider.String(), attribute(events[0], types.AttributeKeyProvider))
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestAddLiquidity_FirstDepositTooSmall() {
	poolID, err := suite.keeper.CreatePool(suite.ctx, "uatom", "upaw", types.Fee{})
	suite.Require().NoError(err)
	suite.f.Fund(suite.T(), suite.provider, sdk.NewInt64Coin("uatom", 1000), sdk.NewInt64Coin("upaw", 1000))

	// sqrt(100 * 100) = 100 does not exceed the locked minimum
	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.provider, poolID, math.NewInt(100), math.NewInt(100), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrInsufficientInitialLiquidity)
	suite.Require().True(suite.pool(poolID).IsEmpty())
	suite.Require().Equal(int64(1000), suite.f.Balance(suite.provider, "uatom").Int64())
}

func (suite *KeeperTestSuite) TestAddLiquidity_Proportional() {
	pool := suite.seedPool()
	lp := keepertest.TestAddr(3)
	suite.f.Fund(suite.T(), lp, sdk.NewInt64Coin("uatom", 500), sdk.NewInt64Coin("upaw", 800))

	quote, err := suite.keeper.QuoteAddLiquidity(suite.ctx, pool.Id, math.NewInt(500), math.NewInt(800))
	suite.Require().NoError(err)

	res, err := suite.keeper.AddLiquidity(suite.ctx, lp, pool.Id, math.NewInt(500), math.NewInt(800), math.ZeroInt())
	suite.Require().NoError(err)
	suite.Require().Equal(quote, res)
	suite.Require().Equal(int64(500), res.Amount0Used.Int64())
	suite.Require().Equal(int64(500), res.Amount1Used.Int64())
	suite.Require().Equal(int64(500), res.SharesMinted.Int64())

	// the unused 300 upaw never left the provider
	suite.Require().Equal(int64(300), suite.f.Balance(lp, "upaw").Int64())

	pool = suite.pool(pool.Id)
	suite.Require().Equal(int64(1500), pool.Reserve0.Int64())
	suite.Require().Equal(int64(1500), pool.Reserve1.Int64())
	suite.Require().Equal(int64(1500), pool.TotalShares.Int64())
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestAddLiquidity_Slippage() {
	pool := suite.seedPool()
	lp := keepertest.TestAddr(3)
	suite.f.Fund(suite.T(), lp, sdk.NewInt64Coin("uatom", 500), sdk.NewInt64Coin("upaw", 500))

	ctx := freshEvents(suite.ctx)
	_, err := suite.keeper.AddLiquidity(ctx, lp, pool.Id, math.NewInt(500), math.NewInt(500), math.NewInt(501))
	suite.Require().ErrorIs(err, types.ErrSlippageExceeded)
	suite.Require().Empty(eventsOfType(ctx, types.EventTypeLiquidityAdded))

	after := suite.pool(pool.Id)
	suite.Require().True(after.Reserve0.Equal(pool.Reserve0))
	suite.Require().True(after.TotalShares.Equal(pool.TotalShares))
	suite.Require().True(suite.shares(pool.Id, lp).IsZero())
	suite.Require().Equal(int64(500), suite.f.Balance(lp, "uatom").Int64())
}

func (suite *KeeperTestSuite) TestAddLiquidity_LedgerFailureRollsBack() {
	poolID, err := suite.keeper.CreatePool(suite.ctx, "uatom", "upaw", types.Fee{})
	suite.Require().NoError(err)
	suite.f.Fund(suite.T(), suite.provider, sdk.NewInt64Coin("uatom", 1000), sdk.NewInt64Coin("upaw", 500))

	_, err = suite.keeper.AddLiquidity(suite.ctx, suite.provider, poolID, math.NewInt(1000), math.NewInt(1000), math.ZeroInt())
	suite.Require().ErrorIs(err, ledgertypes.ErrInsufficientBalance)

	pool := suite.pool(poolID)
	suite.Require().True(pool.IsEmpty())
	suite.Require().True(pool.Reserve0.IsZero())
	suite.Require().True(suite.shares(poolID, suite.provider).IsZero())
	suite.Require().True(suite.shares(poolID, suite.keeper.LockedSharesAddress()).IsZero())
	suite.Require().Equal(int64(1000), suite.f.Balance(suite.provider, "uatom").Int64())
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestAddLiquidity_Errors() {
	pool := suite.seedPool()

	tests := []struct {
		name     string
		provider sdk.AccAddress
		poolID   uint64
		amount0  math.Int
		amount1  math.Int
		min      math.Int
		errIs    error
	}{
		{"empty provider", sdk.AccAddress{}, pool.Id, math.NewInt(10), math.NewInt(10), math.ZeroInt(), sdkerrors.ErrInvalidAddress},
		{"unknown pool", suite.provider, 42, math.NewInt(10), math.NewInt(10), math.ZeroInt(), types.ErrPoolNotFound},
		{"zero amount0", suite.provider, pool.Id, math.ZeroInt(), math.NewInt(10), math.ZeroInt(), types.ErrZeroAmount},
		{"negative amount1", suite.provider, pool.Id, math.NewInt(10), math.NewInt(-1), math.ZeroInt(), types.ErrInvalidAmount},
		{"nil amount", suite.provider, pool.Id, math.Int{}, math.NewInt(10), math.ZeroInt(), types.ErrInvalidAmount},
		{"negative min shares", suite.provider, pool.Id, math.NewInt(10), math.NewInt(10), math.NewInt(-1), types.ErrInvalidAmount},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := suite.keeper.AddLiquidity(suite.ctx, tc.provider, tc.poolID, tc.amount0, tc.amount1, tc.min)
			suite.Require().ErrorIs(err, tc.errIs)
		})
	}
}

func (suite *KeeperTestSuite) TestRemoveLiquidity_All() {
	pool := suite.seedPool()

	quote, err := suite.keeper.QuoteRemoveLiquidity(suite.ctx, pool.Id, math.NewInt(900))
	suite.Require().NoError(err)

	ctx := freshEvents(suite.ctx)
	res, err := suite.keeper.RemoveLiquidity(ctx, suite.provider, pool.Id, math.NewInt(900), math.NewInt(900), math.NewInt(900))
	suite.Require().NoError(err)
	suite.Require().Equal(quote, res)
	suite.Require().Equal(int64(900), res.Amount0.Int64())
	suite.Require().Equal(int64(900), res.Amount1.Int64())

	suite.Require().True(suite.shares(pool.Id, suite.provider).IsZero())
	suite.Require().Equal(int64(900), suite.f.Balance(suite.provider, "uatom").Int64())
	suite.Require().Equal(int64(900), suite.f.Balance(suite.provider, "upaw").Int64())

	pool = suite.pool(pool.Id)
	suite.Require().Equal(int64(100), pool.Reserve0.Int64())
	suite.Require().Equal(int64(100), pool.Reserve1.Int64())
	suite.Require().Equal(int64(100), pool.TotalShares.Int64())

	events := eventsOfType(ctx, types.EventTypeLiquidityRemoved)
	suite.Require().Len(events, 1)
	suite.Require().Equal("900", attribute(events[0], types.AttributeKeySharesBurned))
	suite.requireInvariants()

	positions, err := suite.keeper.GetPositions(suite.ctx, suite.provider)
	suite.Require().NoError(err)
	suite.Require().Empty(positions)
}

func (suite *KeeperTestSuite) TestRemoveLiquidity_Partial() {
	pool := suite.seedPool()

	res, err := suite.keeper.RemoveLiquidity(suite.ctx, suite.provider, pool.Id, math.NewInt(250), math.ZeroInt(), math.ZeroInt())
	suite.Require().NoError(err)
	suite.Require().Equal(int64(250), res.Amount0.Int64())
	suite.Require().Equal(int64(250), res.Amount1.Int64())
	suite.Require().Equal(int64(650), suite.shares(pool.Id, suite.provider).Int64())

	positions, err := suite.keeper.GetPositions(suite.ctx, suite.provider)
	suite.Require().NoError(err)
	suite.Require().Len(positions, 1)
	suite.Require().Equal(pool.Id, positions[0].PoolId)
	suite.Require().Equal(int64(650), positions[0].Shares.Int64())
	suite.requireInvariants()
}

func (suite *KeeperTestSuite) TestRemoveLiquidity_Errors() {
	pool := suite.seedPool()
	stranger := keepertest.TestAddr(9)

	tests := []struct {
		name   string
		owner  sdk.AccAddress
		poolID uint64
		shares math.Int
		min0   math.Int
		min1   math.Int
		errIs  error
	}{
		{"more than held", suite.provider, pool.Id, math.NewInt(901), math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientShares},
		{"no position", stranger, pool.Id, math.NewInt(1), math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientShares},
		{"locked shares", suite.keeper.LockedSharesAddress(), pool.Id, math.NewInt(1), math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientShares},
		{"zero shares", suite.provider, pool.Id, math.ZeroInt(), math.ZeroInt(), math.ZeroInt(), types.ErrZeroAmount},
		{"unknown pool", suite.provider, 7, math.NewInt(1), math.ZeroInt(), math.ZeroInt(), types.ErrPoolNotFound},
		{"min0 too high", suite.provider, pool.Id, math.NewInt(100), math.NewInt(101), math.ZeroInt(), types.ErrSlippageExceeded},
		{"min1 too high", suite.provider, pool.Id, math.NewInt(100), math.ZeroInt(), math.NewInt(101), types.ErrSlippageExceeded},
		{"negative bound", suite.provider, pool.Id, math.NewInt(100), math.NewInt(-1), math.ZeroInt(), types.ErrInvalidAmount},
		{"empty owner", sdk.AccAddress{}, pool.Id, math.NewInt(1), math.ZeroInt(), math.ZeroInt(), sdkerrors.ErrInvalidAddress},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := suite.keeper.RemoveLiquidity(suite.ctx, tc.owner, tc.poolID, tc.shares, tc.min0, tc.min1)
			suite.Require().ErrorIs(err, tc.errIs)

			after := suite.pool(pool.Id)
			suite.Require().True(after.TotalShares.Equal(pool.TotalShares))
			suite.Require().True(after.Reserve0.Equal(pool.Reserve0))
		})
	}
}

func (suite *KeeperTestSuite) TestRemoveLiquidity_ZeroPayout() {
	// sqrt(100000 * 100) = 3162 shares over a 100 upaw reserve
	pool := suite.f.CreateFundedPool(suite.T(), suite.provider, "uatom", "upaw", math.NewInt(100000), math.NewInt(100))

	_, err := suite.keeper.RemoveLiquidity(suite.ctx, suite.provider, pool.Id, math.NewInt(1), math.ZeroInt(), math.ZeroInt())
	suite.Require().ErrorIs(err, types.ErrZeroAmount)
	suite.Require().Equal(int64(3062), suite.shares(pool.Id, suite.provider).Int64())
}

func (suite *KeeperTestSuite) TestLiquidity_FeesAccrueToProviders() {
	pool := suite.seedPool()
	trader := suite.fundedTrader("uatom", 1000)

	for i := 0; i < 5; i++ {
		out, err := suite.keeper.SwapExactIn(suite.ctx, trader, pool.Id, "uatom", math.NewInt(100), math.ZeroInt())
		suite.Require().NoError(err)
		_, err = suite.keeper.SwapExactIn(suite.ctx, trader, pool.Id, "upaw", out.AmountOut, math.ZeroInt())
		suite.Require().NoError(err)
	}

	// after round trips the provider's 900 shares redeem for more than 900 in total
	res, err := suite.keeper.RemoveLiquidity(suite.ctx, suite.provider, pool.Id, math.NewInt(900), math.ZeroInt(), math.ZeroInt())
	suite.Require().NoError(err)
	suite.Require().True(res.Amount0.Add(res.Amount1).GT(math.NewInt(1800)))
	suite.requireInvariants()
}
