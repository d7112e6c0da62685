package app_test

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/paw-chain/pawswap/app"
	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	dextypes "github.com/paw-chain/pawswap/x/dex/types"
)

type AppTestSuite struct {
	suite.Suite

	home string
	cfg  app.Config
	app  *app.App
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) SetupTest() {
	s.home = s.T().TempDir()
	s.cfg = app.DefaultConfig()
	s.app = s.open()
}

func (s *AppTestSuite) TearDownTest() {
	if s.app != nil {
		s.Require().NoError(s.app.Close())
	}
}

func (s *AppTestSuite) open() *app.App {
	db, err := app.OpenDB(s.home, dbm.GoLevelDBBackend)
	s.Require().NoError(err)
	a, err := app.New(log.NewNopLogger(), db, s.cfg)
	s.Require().NoError(err)
	return a
}

func (s *AppTestSuite) reopen() {
	s.Require().NoError(s.app.Close())
	s.app = s.open()
}

func (s *AppTestSuite) initChain() {
	genesis, err := app.DefaultGenesis(s.cfg)
	s.Require().NoError(err)
	s.Require().NoError(s.app.InitChain(genesis))
}

// seed funds a provider and a trader, creates an (uatom, upaw) pool, seeds
// it with 1000/1000 and sells 100 uatom into it.
func (s *AppTestSuite) seed() (provider, trader sdk.AccAddress) {
	provider, trader = keepertest.TestAddr(1), keepertest.TestAddr(2)
	ctx := s.app.NewContext()

	s.Require().NoError(s.app.LedgerKeeper.MintCoins(ctx, provider, sdk.NewCoins(
		sdk.NewInt64Coin("uatom", 1000), sdk.NewInt64Coin("upaw", 1000))))
	s.Require().NoError(s.app.LedgerKeeper.MintCoins(ctx, trader, sdk.NewCoins(sdk.NewInt64Coin("uatom", 100))))

	poolID, err := s.app.DexKeeper.CreatePool(ctx, "upaw", "uatom", dextypes.Fee{})
	s.Require().NoError(err)
	_, err = s.app.DexKeeper.AddLiquidity(ctx, provider, poolID, math.NewInt(1000), math.NewInt(1000), math.ZeroInt())
	s.Require().NoError(err)
	res, err := s.app.DexKeeper.SwapExactIn(ctx, trader, poolID, "uatom", math.NewInt(100), math.ZeroInt())
	s.Require().NoError(err)
	s.Require().Equal(int64(90), res.AmountOut.Int64())
	return provider, trader
}

func (s *AppTestSuite) TestInitChain() {
	s.Require().Zero(s.app.LastBlockHeight())
	s.initChain()
	s.Require().Equal(int64(1), s.app.LastBlockHeight())

	params := s.app.DexKeeper.GetParams(s.app.NewContext())
	s.Require().Equal(uint64(dextypes.DefaultFeeNumerator), params.DefaultFee.Numerator)
	s.Require().True(params.MinimumLiquidity.Equal(math.NewInt(dextypes.DefaultMinimumLiquidity)))

	s.Require().ErrorContains(s.app.InitChain(app.GenesisState{}), "already initialized")
}

func (s *AppTestSuite) TestInitChain_ConfiguredParams() {
	s.cfg.Dex.MinimumLiquidity = 1000
	s.cfg.Dex.DefaultFeeNumerator = 5
	s.initChain()

	params := s.app.DexKeeper.GetParams(s.app.NewContext())
	s.Require().Equal(dextypes.NewFee(5, 1000), params.DefaultFee)
	s.Require().True(params.MinimumLiquidity.Equal(math.NewInt(1000)))
}

func (s *AppTestSuite) TestInitChain_MissingModule() {
	genesis, err := app.DefaultGenesis(s.cfg)
	s.Require().NoError(err)
	delete(genesis, dextypes.ModuleName)

	s.Require().ErrorContains(s.app.InitChain(genesis), "missing module dex")
	s.Require().Zero(s.app.LastBlockHeight())
}

func (s *AppTestSuite) TestCommittedStateSurvivesRestart() {
	s.initChain()
	provider, trader := s.seed()
	id := s.app.Commit()
	s.Require().Equal(int64(2), id.Version)

	before, err := s.app.ExportGenesis()
	s.Require().NoError(err)

	s.reopen()
	s.Require().Equal(int64(2), s.app.LastBlockHeight())
	s.Require().Equal(id.Hash, s.app.LastCommitID().Hash)

	ctx := s.app.NewContext()
	pool, err := s.app.DexKeeper.GetPoolByAssets(ctx, "uatom", "upaw")
	s.Require().NoError(err)
	s.Require().Equal(int64(1100), pool.Reserve0.Int64())
	s.Require().Equal(int64(910), pool.Reserve1.Int64())

	shares, err := s.app.DexKeeper.GetShares(ctx, pool.Id, provider)
	s.Require().NoError(err)
	s.Require().Equal(int64(900), shares.Int64())
	s.Require().Equal(int64(90), s.app.LedgerKeeper.GetBalance(ctx, trader, "upaw").Amount.Int64())

	after, err := s.app.ExportGenesis()
	s.Require().NoError(err)
	s.Require().Equal(before, after)
	s.Require().NoError(s.app.CheckInvariants())
}

func (s *AppTestSuite) TestRestartAfterGenesis() {
	s.initChain()
	before, err := s.app.ExportGenesis()
	s.Require().NoError(err)

	s.reopen()
	s.Require().Equal(int64(1), s.app.LastBlockHeight())
	s.Require().True(s.app.LedgerKeeper.IsInitialized(s.app.NewContext()))

	after, err := s.app.ExportGenesis()
	s.Require().NoError(err)
	s.Require().Equal(before, after)
	s.Require().ErrorContains(s.app.InitChain(before), "already initialized")
}

func (s *AppTestSuite) TestUncommittedStateIsLost() {
	s.initChain()
	s.seed()

	s.reopen()
	s.Require().Equal(int64(1), s.app.LastBlockHeight())
	pools, err := s.app.DexKeeper.GetAllPools(s.app.NewContext())
	s.Require().NoError(err)
	s.Require().Empty(pools)
}

func (s *AppTestSuite) TestExportImport() {
	s.initChain()
	s.seed()
	s.app.Commit()

	exported, err := s.app.ExportGenesis()
	s.Require().NoError(err)

	// import into a second home
	s.home = s.T().TempDir()
	other := s.open()
	defer other.Close()
	s.Require().NoError(other.InitChain(exported))

	reexported, err := other.ExportGenesis()
	s.Require().NoError(err)
	s.Require().Equal(exported, reexported)
	s.Require().NoError(other.CheckInvariants())
}

func (s *AppTestSuite) TestInvariantRoutes() {
	s.Require().Equal([]string{
		"ledger/positive-balances",
		"dex/pool-state",
		"dex/pool-shares",
		"dex/module-balance",
	}, s.app.Invariants().Routes())
}

func TestOpenDB_MemDB(t *testing.T) {
	db, err := app.OpenDB(t.TempDir(), dbm.MemDBBackend)
	require.NoError(t, err)
	a, err := app.New(log.NewNopLogger(), db, app.Config{})
	require.NoError(t, err)
	require.Zero(t, a.LastBlockHeight())
	require.Equal(t, app.DefaultChainID, a.NewContext().ChainID())
}
