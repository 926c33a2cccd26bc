package types

import (
	errorsmod "cosmossdk.io/errors"
)

// SubModuleName is the ICS-04 error registration namespace.
const SubModuleName = "ibc/04-channel"

var (
	ErrChannelNotFound           = errorsmod.Register(SubModuleName, 2, "channel not found")
	ErrInvalidChannelState       = errorsmod.Register(SubModuleName, 3, "invalid channel state")
	ErrInvalidChannel            = errorsmod.Register(SubModuleName, 4, "invalid channel")
	ErrMissingCounterparty       = errorsmod.Register(SubModuleName, 5, "missing counterparty channel id")
	ErrUndefinedConnCounterparty = errorsmod.Register(SubModuleName, 6, "connection counterparty is undefined")
	ErrVerifyChannelFailed       = errorsmod.Register(SubModuleName, 7, "channel membership verification failed")
	ErrTooManyConnectionHops     = errorsmod.Register(SubModuleName, 8, "channel must have exactly one connection hop")
	ErrInvalidOrder              = errorsmod.Register(SubModuleName, 9, "channel ordering does not match")
	ErrClientNotActive           = errorsmod.Register(SubModuleName, 10, "client is not active")
	ErrConnectionNotOpen         = errorsmod.Register(SubModuleName, 11, "connection is not open")

	ErrZeroPacketSequence       = errorsmod.Register(SubModuleName, 20, "packet sequence cannot be zero")
	ErrPacketNotFound           = errorsmod.Register(SubModuleName, 21, "packet commitment not found")
	ErrMissingHeight            = errorsmod.Register(SubModuleName, 22, "proof height not set")
	ErrInvalidPacketProof       = errorsmod.Register(SubModuleName, 23, "packet proof verification failed")
	ErrPacketTimeoutNotReached  = errorsmod.Register(SubModuleName, 24, "packet timeout has not been reached")
	ErrPacketTimedOut           = errorsmod.Register(SubModuleName, 25, "packet has timed out")
	ErrPacketAlreadyReceived    = errorsmod.Register(SubModuleName, 26, "packet has already been received")
	ErrPacketCommitmentMismatch = errorsmod.Register(SubModuleName, 27, "packet commitment does not match supplied packet")
	ErrPacketSequenceMismatch   = errorsmod.Register(SubModuleName, 28, "packet sequence does not match next expected sequence")
	ErrDelayPeriodNotPassed     = errorsmod.Register(SubModuleName, 29, "connection delay period has not passed")
	ErrNoTimeoutSet             = errorsmod.Register(SubModuleName, 30, "packet must set at least one of timeout height or timeout timestamp")
)
