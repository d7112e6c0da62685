package keeper_test

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/dex/types"
)

func (suite *KeeperTestSuite) TestSpotPrice() {
	pool := suite.seedPool()

	price, err := suite.keeper.SpotPrice(suite.ctx, pool.Id, "uatom")
	suite.Require().NoError(err)
	suite.Require().Equal("1/1", price.String())

	trader := suite.fundedTrader("uatom", 100)
	_, err = suite.keeper.SwapExactIn(suite.ctx, trader, pool.Id, "uatom", math.NewInt(100), math.ZeroInt())
	suite.Require().NoError(err)

	// reserves are now 1100 uatom / 910 upaw
	price, err = suite.keeper.SpotPrice(suite.ctx, pool.Id, "uatom")
	suite.Require().NoError(err)
	suite.Require().Equal("uatom", price.BaseAsset)
	suite.Require().Equal("upaw", price.QuoteAsset)
	suite.Require().Equal("91/110", price.String())

	inverse, err := suite.keeper.SpotPrice(suite.ctx, pool.Id, "upaw")
	suite.Require().NoError(err)
	suite.Require().Equal("110/91", inverse.String())
	suite.Require().Zero(new(big.Rat).Mul(price.Rat(), inverse.Rat()).Cmp(big.NewRat(1, 1)))
}

func (suite *KeeperTestSuite) TestSpotPrice_Errors() {
	pool := suite.seedPool()
	empty, err := suite.keeper.CreatePool(suite.ctx, "uatom", "uosmo", types.Fee{})
	suite.Require().NoError(err)

	_, err = suite.keeper.SpotPrice(suite.ctx, empty, "uatom")
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidity)

	_, err = suite.keeper.SpotPrice(suite.ctx, pool.Id, "uosmo")
	suite.Require().ErrorIs(err, types.ErrInvalidAsset)

	_, err = suite.keeper.SpotPrice(suite.ctx, 404, "uatom")
	suite.Require().ErrorIs(err, types.ErrPoolNotFound)
}

func (suite *KeeperTestSuite) TestObserveSpotPrice_EmitsEvent() {
	pool := suite.seedPool()

	ctx := freshEvents(suite.ctx)
	price, err := suite.keeper.ObserveSpotPrice(ctx, pool.Id, "upaw")
	suite.Require().NoError(err)

	events := eventsOfType(ctx, types.EventTypeAssetPrice)
	suite.Require().Len(events, 1)
	suite.Require().Equal("upaw", attribute(events[0], types.AttributeKeyBaseAsset))
	suite.Require().Equal("uatom", attribute(events[0], types.AttributeKeyQuoteAsset))
	suite.Require().Equal(price.String(), attribute(events[0], types.AttributeKeyPrice))

	// a plain read leaves no trace
	ctx = freshEvents(suite.ctx)
	_, err = suite.keeper.SpotPrice(ctx, pool.Id, "upaw")
	suite.Require().NoError(err)
	suite.Require().Empty(ctx.EventManager().Events())
}
