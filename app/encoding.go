package app

import (
	"github.com/cosmos/cosmos-sdk/codec"

	dextypes "github.com/paw-chain/pawswap/x/dex/types"
)

// MakeCodec returns the amino codec used for genesis and export JSON.
func MakeCodec() *codec.LegacyAmino {
	cdc := codec.NewLegacyAmino()
	RegisterLegacyAminoCodec(cdc)
	return cdc
}

// RegisterLegacyAminoCodec registers the concrete types of every module.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	dextypes.RegisterLegacyAminoCodec(cdc)
}
