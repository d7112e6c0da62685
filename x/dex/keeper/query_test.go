package keeper_test

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/dex/types"
)

func (suite *KeeperTestSuite) TestQuotes_DoNotMutate() {
	pool := suite.seedPool()
	ctx := freshEvents(suite.ctx)

	_, err := suite.keeper.QuoteExactIn(ctx, pool.Id, "uatom", math.NewInt(100))
	suite.Require().NoError(err)
	_, err = suite.keeper.QuoteExactOut(ctx, pool.Id, "upaw", math.NewInt(100))
	suite.Require().NoError(err)
	_, err = suite.keeper.QuoteAddLiquidity(ctx, pool.Id, math.NewInt(10), math.NewInt(10))
	suite.Require().NoError(err)
	_, err = suite.keeper.QuoteRemoveLiquidity(ctx, pool.Id, math.NewInt(10))
	suite.Require().NoError(err)

	suite.Require().Empty(ctx.EventManager().Events())
	after := suite.pool(pool.Id)
	suite.Require().True(after.Reserve0.Equal(pool.Reserve0))
	suite.Require().True(after.Reserve1.Equal(pool.Reserve1))
	suite.Require().True(after.TotalShares.Equal(pool.TotalShares))
}

func (suite *KeeperTestSuite) TestQuotes_EmptyPool() {
	poolID, err := suite.keeper.CreatePool(suite.ctx, "uatom", "upaw", types.Fee{})
	suite.Require().NoError(err)

	_, err = suite.keeper.QuoteExactIn(suite.ctx, poolID, "uatom", math.NewInt(100))
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidity)
	_, err = suite.keeper.QuoteExactOut(suite.ctx, poolID, "uatom", math.NewInt(100))
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidity)
	_, err = suite.keeper.QuoteRemoveLiquidity(suite.ctx, poolID, math.NewInt(1))
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidity)

	res, err := suite.keeper.QuoteAddLiquidity(suite.ctx, poolID, math.NewInt(1000), math.NewInt(1000))
	suite.Require().NoError(err)
	suite.Require().Equal(int64(900), res.SharesMinted.Int64())
}

func (suite *KeeperTestSuite) TestGetPositions_AcrossPools() {
	first := suite.seedPool()
	second := suite.f.CreateFundedPool(suite.T(), suite.provider, "upaw", "uosmo", math.NewInt(4000), math.NewInt(1000))

	positions, err := suite.keeper.GetPositions(suite.ctx, suite.provider)
	suite.Require().NoError(err)
	suite.Require().Len(positions, 2)
	suite.Require().Equal(first.Id, positions[0].PoolId)
	suite.Require().Equal(int64(900), positions[0].Shares.Int64())
	suite.Require().Equal(second.Id, positions[1].PoolId)
	// sqrt(4000 * 1000) = 2000, less the locked 100
	suite.Require().Equal(int64(1900), positions[1].Shares.Int64())
	suite.Require().Equal(suite.provider.String(), positions[1].Owner)
}
