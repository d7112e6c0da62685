package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// RegisterLegacyAminoCodec registers the concrete records the dex persists
// and exports.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterConcrete(&Pool{}, "dex/Pool", nil)
	cdc.RegisterConcrete(&Params{}, "dex/Params", nil)
}

var (
	amino = codec.NewLegacyAmino()

	// ModuleCdc encodes dex records in the store and in genesis files.
	ModuleCdc = amino
)

func init() {
	RegisterLegacyAminoCodec(amino)
	amino.Seal()
}
