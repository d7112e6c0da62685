package types

import (
	"cosmossdk.io/errors"
)

// DEX module sentinel errors
var (
	ErrIdenticalAssets              = errors.Register(ModuleName, 2, "identical assets")
	ErrPoolAlreadyExists            = errors.Register(ModuleName, 3, "pool already exists")
	ErrPoolNotFound                 = errors.Register(ModuleName, 4, "pool not found")
	ErrInvalidAsset                 = errors.Register(ModuleName, 5, "invalid asset")
	ErrZeroAmount                   = errors.Register(ModuleName, 6, "amount cannot be zero")
	ErrInsufficientInitialLiquidity = errors.Register(ModuleName, 7, "insufficient initial liquidity")
	ErrInsufficientShares           = errors.Register(ModuleName, 8, "insufficient liquidity shares")
	ErrInsufficientLiquidity        = errors.Register(ModuleName, 9, "insufficient liquidity in pool")
	ErrSlippageExceeded             = errors.Register(ModuleName, 10, "slippage exceeded")
	ErrArithmeticOverflow           = errors.Register(ModuleName, 11, "arithmetic overflow")
	ErrInvalidAmount                = errors.Register(ModuleName, 12, "invalid amount")
	ErrInvalidFee                   = errors.Register(ModuleName, 13, "invalid fee")
	ErrInvariantViolation           = errors.Register(ModuleName, 14, "invariant violation")
	ErrInvalidPoolState             = errors.Register(ModuleName, 15, "invalid pool state")
	ErrInvalidParams                = errors.Register(ModuleName, 16, "invalid params")
	ErrInvalidGenesis               = errors.Register(ModuleName, 17, "invalid genesis state")
)
