package types

import (
	"cosmossdk.io/errors"
)

// Ledger module sentinel errors
var (
	ErrInsufficientBalance = errors.Register(ModuleName, 2, "insufficient balance")
	ErrInvalidCoins        = errors.Register(ModuleName, 3, "invalid coins")
	ErrInvalidAddress      = errors.Register(ModuleName, 4, "invalid address")
	ErrAlreadyInitialized  = errors.Register(ModuleName, 5, "ledger genesis already applied")
)
