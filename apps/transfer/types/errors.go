package types

import errorsmod "cosmossdk.io/errors"

// SubModuleName is the ICS-20 boundary's error registration namespace.
const SubModuleName = "ibc/apps/transfer"

var (
	ErrInvalidCoin   = errorsmod.Register(SubModuleName, 2, "invalid coin")
	ErrUtf8Decode    = errorsmod.Register(SubModuleName, 3, "failed to decode utf-8")
	ErrInvalidAmount = errorsmod.Register(SubModuleName, 4, "invalid coin amount")
	ErrInvalidDenom  = errorsmod.Register(SubModuleName, 5, "invalid denomination")
)
