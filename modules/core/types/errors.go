package types

import (
	errorsmod "cosmossdk.io/errors"
)

// SubModuleName is the aggregate keeper's error registration namespace.
const SubModuleName = "ibc/core"

var (
	ErrInvalidSigner   = errorsmod.Register(SubModuleName, 2, "invalid message signer")
	ErrUnknownTypeURL  = errorsmod.Register(SubModuleName, 3, "unrecognized message type url")
	ErrUnexpectedReply = errorsmod.Register(SubModuleName, 4, "handler returned no response")
)
