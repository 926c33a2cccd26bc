package types

import errorsmod "cosmossdk.io/errors"

// SubModuleName is the ICS-03 error registration namespace.
const SubModuleName = "ibc/03-connection"

var (
	ErrConnectionNotFound     = errorsmod.Register(SubModuleName, 2, "connection not found")
	ErrInvalidConnectionState = errorsmod.Register(SubModuleName, 3, "invalid connection state")
	ErrMissingCounterparty    = errorsmod.Register(SubModuleName, 4, "missing counterparty")
	ErrEmptyVersions          = errorsmod.Register(SubModuleName, 5, "empty versions")
	ErrVersionsMismatch       = errorsmod.Register(SubModuleName, 6, "versions do not match any supported version")
	ErrInvalidProof           = errorsmod.Register(SubModuleName, 7, "invalid connection proof")
	ErrClientNotActive        = errorsmod.Register(SubModuleName, 8, "client is not active")
	ErrInvalidDelayPeriod     = errorsmod.Register(SubModuleName, 9, "invalid delay period")
)
