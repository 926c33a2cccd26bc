package types

import (
	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
)

// MsgChannelOpenInit is submitted on chain A to begin a channel handshake
// over an already-open connection.
type MsgChannelOpenInit struct {
	PortID  string
	Channel ChannelEnd
	Signer  string
}

// MsgChannelOpenTry is submitted on chain B once A's ChanOpenInit has
// committed. PreviousChannelID is carried for wire compatibility only and
// is never read: channel identifiers here are always host-allocated.
type MsgChannelOpenTry struct {
	PortID              string
	PreviousChannelID   string
	Channel             ChannelEnd
	CounterpartyVersion string
	ProofInit           []byte
	ProofHeight         clienttypes.Height
	Signer              string
}

// MsgChannelOpenAck is submitted on chain A once B's ChanOpenTry has
// committed.
type MsgChannelOpenAck struct {
	PortID                string
	ChannelID             string
	CounterpartyChannelID string
	CounterpartyVersion   string
	ProofTry              []byte
	ProofHeight           clienttypes.Height
	Signer                string
}

// MsgChannelOpenConfirm is submitted on chain B once A's ChanOpenAck has
// committed.
type MsgChannelOpenConfirm struct {
	PortID      string
	ChannelID   string
	ProofAck    []byte
	ProofHeight clienttypes.Height
	Signer      string
}

// MsgChannelCloseInit closes a channel from the initiating side.
type MsgChannelCloseInit struct {
	PortID    string
	ChannelID string
	Signer    string
}

// MsgChannelCloseConfirm closes a channel on the side observing the
// counterparty's close.
type MsgChannelCloseConfirm struct {
	PortID      string
	ChannelID   string
	ProofInit   []byte
	ProofHeight clienttypes.Height
	Signer      string
}

// MsgRecvPacket delivers a packet to its destination chain.
type MsgRecvPacket struct {
	Packet      Packet
	ProofCommitment []byte
	ProofHeight     clienttypes.Height
	Signer          string
}

// MsgAcknowledgement delivers a destination chain's acknowledgement back
// to the packet's source chain.
type MsgAcknowledgement struct {
	Packet          Packet
	Acknowledgement []byte
	ProofAcked      []byte
	ProofHeight     clienttypes.Height
	Signer          string
}

// MsgTimeout proves non-delivery of a packet whose timeout has elapsed.
type MsgTimeout struct {
	Packet           Packet
	ProofUnreceived  []byte
	ProofHeight      clienttypes.Height
	NextSequenceRecv uint64
	Signer           string
}

// MsgTimeoutOnClose proves non-delivery via the destination channel's
// closure rather than an elapsed timeout.
type MsgTimeoutOnClose struct {
	Packet           Packet
	ProofUnreceived  []byte
	ProofClose       []byte
	ProofHeight      clienttypes.Height
	NextSequenceRecv uint64
	Signer           string
}
