// Package dex wires the constant-product AMM keeper into an application:
// genesis import and export, parameter seeding and invariant registration.
package dex

import (
	"encoding/json"
	"fmt"

	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/dex/keeper"
	"github.com/paw-chain/pawswap/x/dex/types"
)

// AppModule implements an application module for the dex module.
type AppModule struct {
	keeper *keeper.Keeper
}

// NewAppModule creates a new AppModule object
func NewAppModule(k *keeper.Keeper) AppModule {
	return AppModule{keeper: k}
}

// Name returns the dex module's name.
func (AppModule) Name() string {
	return types.ModuleName
}

// DefaultGenesis returns default genesis state as raw bytes for the dex
// module.
func (AppModule) DefaultGenesis(cdc *codec.LegacyAmino) json.RawMessage {
	return cdc.MustMarshalJSON(types.DefaultGenesis())
}

// GenesisWithParams returns the default genesis state with params replaced.
func (AppModule) GenesisWithParams(cdc *codec.LegacyAmino, params types.Params) (json.RawMessage, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	genState := types.DefaultGenesis()
	genState.Params = params
	return cdc.MarshalJSON(genState)
}

// ValidateGenesis performs genesis state validation for the dex module.
func (am AppModule) ValidateGenesis(cdc *codec.LegacyAmino, bz json.RawMessage) error {
	var genState types.GenesisState
	if err := cdc.UnmarshalJSON(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return genState.Validate(am.keeper.Ordering())
}

// RegisterInvariants registers the dex module invariants.
func (am AppModule) RegisterInvariants(ir sdk.InvariantRegistry) {
	keeper.RegisterInvariants(ir, *am.keeper)
}

// InitGenesis performs genesis initialization for the dex module.
func (am AppModule) InitGenesis(ctx sdk.Context, cdc *codec.LegacyAmino, bz json.RawMessage) error {
	var genState types.GenesisState
	if err := cdc.UnmarshalJSON(bz, &genState); err != nil {
		return fmt.Errorf("failed to unmarshal %s genesis state: %w", types.ModuleName, err)
	}
	return am.keeper.InitGenesis(ctx, genState)
}

// ExportGenesis returns the exported genesis state as raw bytes for the dex
// module.
func (am AppModule) ExportGenesis(ctx sdk.Context, cdc *codec.LegacyAmino) (json.RawMessage, error) {
	genState, err := am.keeper.ExportGenesis(ctx)
	if err != nil {
		return nil, err
	}
	return cdc.MarshalJSON(genState)
}
