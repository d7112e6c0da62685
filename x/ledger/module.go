package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/ledger/keeper"
	"github.com/paw-chain/pawswap/x/ledger/types"
)

// AppModule implements the application module for the ledger.
type AppModule struct {
	keeper keeper.Keeper
}

// NewAppModule creates a new AppModule object
func NewAppModule(k keeper.Keeper) AppModule {
	return AppModule{keeper: k}
}

// Name returns the ledger module's name.
func (AppModule) Name() string {
	return types.ModuleName
}

// DefaultGenesis returns an empty ledger as raw bytes.
func (AppModule) DefaultGenesis(cdc *codec.LegacyAmino) json.RawMessage {
	return cdc.MustMarshalJSON(types.DefaultGenesis())
}

// ValidateGenesis performs genesis state validation for the ledger module.
func (AppModule) ValidateGenesis(cdc *codec.LegacyAmino, bz json.RawMessage) error {
	var genState types.GenesisState
	if err := cdc.UnmarshalJSON(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return genState.Validate()
}

// RegisterInvariants registers the ledger invariants.
func (am AppModule) RegisterInvariants(ir sdk.InvariantRegistry) {
	keeper.RegisterInvariants(ir, am.keeper)
}

// InitGenesis credits the genesis balances.
func (am AppModule) InitGenesis(ctx sdk.Context, cdc *codec.LegacyAmino, bz json.RawMessage) error {
	var genState types.GenesisState
	if err := cdc.UnmarshalJSON(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return am.keeper.InitGenesis(ctx, genState)
}

// ExportGenesis returns the exported balances as raw bytes.
func (am AppModule) ExportGenesis(ctx sdk.Context, cdc *codec.LegacyAmino) (json.RawMessage, error) {
	genState, err := am.keeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	return cdc.MarshalJSON(genState)
}
