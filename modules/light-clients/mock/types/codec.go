package types

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

var _ clienttypes.ClientCodec = Codec{}

// Codec is the mock client's registration into the polymorphic client
// registry: the one place the core dispatches by client-type tag before
// handing decoded values back to the generic capability-set interfaces.
type Codec struct{}

func (Codec) ClientType() string { return ClientTypeMock }

func (Codec) UnmarshalClientState(value []byte) (exported.ClientState, error) {
	var cs ClientState
	if err := json.Unmarshal(value, &cs); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidHeader, err.Error())
	}
	return &cs, nil
}

func (Codec) UnmarshalConsensusState(value []byte) (exported.ConsensusState, error) {
	var cs ConsensusState
	if err := json.Unmarshal(value, &cs); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidHeader, err.Error())
	}
	return &cs, nil
}

func (Codec) UnmarshalClientMessage(value []byte) (exported.ClientMessage, error) {
	var envelope clientMessageEnvelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		return nil, errorsmod.Wrap(ErrInvalidHeader, err.Error())
	}
	if envelope.Misbehaviour != nil {
		return envelope.Misbehaviour, nil
	}
	if envelope.Header != nil {
		return envelope.Header, nil
	}
	return nil, errorsmod.Wrap(ErrInvalidHeader, "client message envelope carries neither a header nor misbehaviour")
}

// RegisterInterfaces registers the mock client's codec with the core's
// client-type registry. Host binaries wire this in at start-up the same
// way they would a real light-client module.
func RegisterInterfaces() {
	clienttypes.RegisterClient(Codec{})
}

// clientMessageEnvelope is the on-the-wire shape UnmarshalClientMessage
// expects: exactly one of Header or Misbehaviour set, since both client
// messages share a single ClientType tag.
type clientMessageEnvelope struct {
	Header       *Header       `json:"header,omitempty"`
	Misbehaviour *Misbehaviour `json:"misbehaviour,omitempty"`
}

// NewHeaderAny wraps a Header into the Any envelope callers submit to
// MsgUpdateClient.
func NewHeaderAny(header Header) (clienttypes.Any, error) {
	return clienttypes.NewAny(ClientTypeMock, clientMessageEnvelope{Header: &header})
}

// NewMisbehaviourAny wraps a Misbehaviour into the Any envelope callers
// submit to MsgUpdateClient or MsgSubmitMisbehaviour.
func NewMisbehaviourAny(m Misbehaviour) (clienttypes.Any, error) {
	return clienttypes.NewAny(ClientTypeMock, clientMessageEnvelope{Misbehaviour: &m})
}

// NewClientStateAny wraps a ClientState into the Any envelope callers
// submit to MsgCreateClient.
func NewClientStateAny(cs ClientState) (clienttypes.Any, error) {
	return clienttypes.NewAny(ClientTypeMock, cs)
}

// NewConsensusStateAny wraps a ConsensusState into the Any envelope callers
// submit to MsgCreateClient.
func NewConsensusStateAny(cs ConsensusState) (clienttypes.Any, error) {
	return clienttypes.NewAny(ClientTypeMock, cs)
}
