package types

import (
	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
)

// MsgConnectionOpenInit is submitted on chain A to begin a handshake.
type MsgConnectionOpenInit struct {
	ClientID     string
	Counterparty Counterparty
	Versions     []Version
	DelayPeriod  uint64
	Signer       string
}

// MsgConnectionOpenTry is submitted on chain B once A's OpenInit has
// committed. PreviousConnectionID is carried for wire compatibility only
// and is never read by the handler: connection identifiers in this module
// are always host-allocated, so a client-supplied hint to reuse an
// existing id has nothing to act on.
type MsgConnectionOpenTry struct {
	PreviousConnectionID string
	ClientID             string
	ClientState          clienttypes.Any
	Counterparty         Counterparty
	DelayPeriod          uint64
	CounterpartyVersions []Version
	ProofHeight          clienttypes.Height
	ProofInit            []byte
	ProofClient          []byte
	ProofConsensus       []byte
	ConsensusHeight      clienttypes.Height
	Signer               string
}

// MsgConnectionOpenAck is submitted on chain A once B's OpenTry has
// committed.
type MsgConnectionOpenAck struct {
	ConnectionID             string
	CounterpartyConnectionID string
	Version                  Version
	ClientState              clienttypes.Any
	ProofHeight              clienttypes.Height
	ProofTry                 []byte
	ProofClient              []byte
	ProofConsensus           []byte
	ConsensusHeight          clienttypes.Height
	Signer                   string
}

// MsgConnectionOpenConfirm is submitted on chain B once A's OpenAck has
// committed.
type MsgConnectionOpenConfirm struct {
	ConnectionID string
	ProofAck     []byte
	ProofHeight  clienttypes.Height
	Signer       string
}
