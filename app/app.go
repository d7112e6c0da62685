// Package app hosts the pawswap engine.
//
// App mounts the dex and ledger stores on one IAVL commit multistore over a
// cosmos-db database, wires the keepers together and hands out block
// contexts. Every Commit persists a new version; reopening the same database
// resumes from the last committed block.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex"
	dexkeeper "github.com/paw-chain/pawswap/x/dex/keeper"
	dextypes "github.com/paw-chain/pawswap/x/dex/types"
	"github.com/paw-chain/pawswap/x/ledger"
	ledgerkeeper "github.com/paw-chain/pawswap/x/ledger/keeper"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

const (
	// Name is the application name, also used for the database directory.
	Name = "pawswap"

	// DefaultChainID is stamped on block headers when none is configured.
	DefaultChainID = "pawswap-local"
)

// DefaultNodeHome is the default home directory for the application daemon
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	DefaultNodeHome = filepath.Join(userHomeDir, ".pawswap")
}

// Module is the surface App needs from a module: genesis handling and
// invariant registration.
type Module interface {
	Name() string
	DefaultGenesis(cdc *codec.LegacyAmino) json.RawMessage
	ValidateGenesis(cdc *codec.LegacyAmino, bz json.RawMessage) error
	InitGenesis(ctx sdk.Context, cdc *codec.LegacyAmino, bz json.RawMessage) error
	ExportGenesis(ctx sdk.Context, cdc *codec.LegacyAmino) (json.RawMessage, error)
	RegisterInvariants(ir sdk.InvariantRegistry)
}

var (
	_ Module = ledger.AppModule{}
	_ Module = dex.AppModule{}
)

// App wires the dex engine to its custody ledger over a committed multistore.
type App struct {
	logger  log.Logger
	db      dbm.DB
	cms     storetypes.CommitMultiStore
	cdc     *codec.LegacyAmino
	chainID string

	// keys to access the substores
	keys map[string]*storetypes.KVStoreKey

	// height of the last commit, readable from other goroutines
	height atomic.Int64

	// keepers
	LedgerKeeper ledgerkeeper.Keeper
	DexKeeper    *dexkeeper.Keeper

	// modules in genesis order; the ledger goes first so dex custody exists
	modules    []Module
	invariants *InvariantRegistry
}

// New returns an App over db with the stores loaded at their latest version.
func New(logger log.Logger, db dbm.DB, cfg Config) (*App, error) {
	keys := storetypes.NewKVStoreKeys(dextypes.StoreKey, ledgertypes.StoreKey)

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("failed to load latest version: %w", err)
	}

	app := &App{
		logger:     logger,
		db:         db,
		cms:        cms,
		cdc:        MakeCodec(),
		chainID:    cfg.ChainID,
		keys:       keys,
		invariants: NewInvariantRegistry(),
	}
	app.height.Store(cms.LastCommitID().Version)
	if app.chainID == "" {
		app.chainID = DefaultChainID
	}

	app.LedgerKeeper = ledgerkeeper.NewKeeper(keys[ledgertypes.StoreKey])
	app.DexKeeper = dexkeeper.NewKeeper(
		dextypes.ModuleCdc,
		keys[dextypes.StoreKey],
		app.LedgerKeeper,
		dextypes.LexicographicOrdering,
	)

	app.modules = []Module{
		ledger.NewAppModule(app.LedgerKeeper),
		dex.NewAppModule(app.DexKeeper),
	}
	for _, m := range app.modules {
		m.RegisterInvariants(app.invariants)
	}

	return app, nil
}

// Logger returns the application logger.
func (app *App) Logger() log.Logger { return app.logger }

// LegacyAmino returns the codec used for genesis JSON.
func (app *App) LegacyAmino() *codec.LegacyAmino { return app.cdc }

// GetKey returns the KVStoreKey for the provided store key.
func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey {
	return app.keys[storeKey]
}

// LastBlockHeight returns the height of the last committed block, zero before genesis.
// It is safe to call concurrently with Commit.
func (app *App) LastBlockHeight() int64 {
	return app.height.Load()
}

// LastCommitID returns the id of the last committed block.
func (app *App) LastCommitID() storetypes.CommitID {
	return app.cms.LastCommitID()
}

// NewContext returns a context for the next block. Writes through it land in
// the working state and become durable on Commit.
func (app *App) NewContext() sdk.Context {
	header := cmtproto.Header{
		ChainID: app.chainID,
		Height:  app.LastBlockHeight() + 1,
		Time:    time.Now().UTC(),
	}
	return sdk.NewContext(app.cms, header, false, app.logger)
}

// Commit persists the working state as a new block.
func (app *App) Commit() storetypes.CommitID {
	id := app.cms.Commit()
	app.height.Store(id.Version)
	app.logger.Debug("committed state", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return id
}

// Invariants returns the registry the modules registered their invariants with.
func (app *App) Invariants() *InvariantRegistry {
	return app.invariants
}

// Close releases the underlying database.
func (app *App) Close() error {
	return app.db.Close()
}

// OpenDB opens the application database under home/data with the given backend.
func OpenDB(home string, backend dbm.BackendType) (dbm.DB, error) {
	dataDir := filepath.Join(home, "data")
	if backend == dbm.MemDBBackend {
		return dbm.NewMemDB(), nil
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return dbm.NewDB(Name, backend, dataDir)
}
