package app

import (
	"encoding/json"
	"fmt"

	"github.com/paw-chain/pawswap/x/dex"
	dextypes "github.com/paw-chain/pawswap/x/dex/types"
	"github.com/paw-chain/pawswap/x/ledger"
	ledgertypes "github.com/paw-chain/pawswap/x/ledger/types"
)

// GenesisState is the genesis file content, keyed by module name.
type GenesisState map[string]json.RawMessage

// DefaultGenesis returns an empty ledger and a dex with the configured params.
func DefaultGenesis(cfg Config) (GenesisState, error) {
	params, err := cfg.DexParams()
	if err != nil {
		return nil, err
	}

	cdc := MakeCodec()
	dexGenesis, err := dex.AppModule{}.GenesisWithParams(cdc, params)
	if err != nil {
		return nil, err
	}

	return GenesisState{
		ledgertypes.ModuleName: ledger.AppModule{}.DefaultGenesis(cdc),
		dextypes.ModuleName:    dexGenesis,
	}, nil
}

// InitChain loads genesis into a fresh database and commits it as block one.
// Modules are initialized in registration order and the invariants must hold
// on the result.
func (app *App) InitChain(genesis GenesisState) error {
	if height := app.LastBlockHeight(); height > 0 {
		return fmt.Errorf("state already initialized at height %d", height)
	}

	for _, m := range app.modules {
		bz, ok := genesis[m.Name()]
		if !ok {
			return fmt.Errorf("genesis is missing module %s", m.Name())
		}
		if err := m.ValidateGenesis(app.cdc, bz); err != nil {
			return fmt.Errorf("invalid %s genesis: %w", m.Name(), err)
		}
	}

	ctx := app.NewContext()
	for _, m := range app.modules {
		if err := m.InitGenesis(ctx, app.cdc, genesis[m.Name()]); err != nil {
			return fmt.Errorf("%s genesis: %w", m.Name(), err)
		}
	}
	if err := app.invariants.Assert(ctx); err != nil {
		return fmt.Errorf("genesis state: %w", err)
	}

	id := app.Commit()
	app.logger.Info("initialized genesis", "chain_id", app.chainID, "height", id.Version)
	return nil
}

// ExportGenesis dumps the latest state of every module.
func (app *App) ExportGenesis() (GenesisState, error) {
	ctx := app.NewContext()

	genesis := make(GenesisState, len(app.modules))
	for _, m := range app.modules {
		bz, err := m.ExportGenesis(ctx, app.cdc)
		if err != nil {
			return nil, fmt.Errorf("%s export: %w", m.Name(), err)
		}
		genesis[m.Name()] = bz
	}
	return genesis, nil
}
