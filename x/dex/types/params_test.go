package types

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestDefaultParams(t *testing.T) {
	params := DefaultParams()

	require.NoError(t, params.Validate())
	require.Equal(t, NewFee(3, 1000), params.DefaultFee)
	require.Equal(t, math.NewInt(100), params.MinimumLiquidity)
	require.Equal(t, "0.003000000000000000", params.DefaultFee.Rate().String())
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
		valid  bool
	}{
		{"default", func(p *Params) {}, true},
		{"zero fee", func(p *Params) { p.DefaultFee = NewFee(0, 1) }, true},
		{"zero minimum liquidity", func(p *Params) { p.MinimumLiquidity = math.ZeroInt() }, true},
		{"zero denominator", func(p *Params) { p.DefaultFee = NewFee(0, 0) }, false},
		{"fee of one", func(p *Params) { p.MaxFee = NewFee(7, 7) }, false},
		{"default above max", func(p *Params) { p.DefaultFee = NewFee(2, 10) }, false},
		{"negative minimum liquidity", func(p *Params) { p.MinimumLiquidity = math.NewInt(-1) }, false},
		{"nil minimum liquidity", func(p *Params) { p.MinimumLiquidity = math.Int{} }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := DefaultParams()
			tc.mutate(&params)
			err := params.Validate()
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidParams)
			}
		})
	}
}

func TestFee_LTE(t *testing.T) {
	require.True(t, NewFee(3, 1000).LTE(NewFee(1, 10)))
	require.True(t, NewFee(1, 10).LTE(NewFee(10, 100)))
	require.False(t, NewFee(11, 100).LTE(NewFee(1, 10)))
	// cross products beyond uint64
	require.True(t, NewFee(1<<62, 1<<63).LTE(NewFee(1, 2)))
}
