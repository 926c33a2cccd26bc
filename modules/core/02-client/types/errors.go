package types

import errorsmod "cosmossdk.io/errors"

// SubModuleName is the ICS-02 error registration namespace.
const SubModuleName = "ibc/02-client"

var (
	ErrClientNotFound              = errorsmod.Register(SubModuleName, 2, "light client not found")
	ErrClientNotActive             = errorsmod.Register(SubModuleName, 3, "light client is not active")
	ErrHeaderVerificationFailure   = errorsmod.Register(SubModuleName, 4, "header failed to verify")
	ErrMisbehaviourHandlingFailure = errorsmod.Register(SubModuleName, 5, "failed to process misbehaviour")
	ErrConsensusStateNotFound      = errorsmod.Register(SubModuleName, 6, "consensus state not found")
	ErrUnknownClientType           = errorsmod.Register(SubModuleName, 7, "unknown client type")
	ErrInvalidHeight               = errorsmod.Register(SubModuleName, 8, "invalid height")
	ErrInvalidClient               = errorsmod.Register(SubModuleName, 9, "invalid light client")
	ErrInvalidConsensusState       = errorsmod.Register(SubModuleName, 10, "invalid consensus state")
	ErrConsensusStateMismatch      = errorsmod.Register(SubModuleName, 11, "consensus state rewrite at same height differs from the stored one")
)
