package types

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
)

// Any is the wire envelope every message, ClientState, ConsensusState,
// Header and Misbehaviour crosses the boundary as. The real protocol-buffer
// `Any` runtime is an external collaborator; this is the in-module stand-in
// the core dispatches on.
type Any struct {
	TypeURL string          `json:"type_url"`
	Value   json.RawMessage `json:"value"`
}

// NewAny marshals value into an Any tagged with typeURL.
func NewAny(typeURL string, value interface{}) (Any, error) {
	bz, err := json.Marshal(value)
	if err != nil {
		return Any{}, errorsmod.Wrapf(err, "failed to marshal %s", typeURL)
	}
	return Any{TypeURL: typeURL, Value: bz}, nil
}

// Unmarshal decodes the Any's value into dst.
func (a Any) Unmarshal(dst interface{}) error {
	if len(a.Value) == 0 {
		return errorsmod.Wrap(ErrUnknownClientType, "empty Any value")
	}
	return json.Unmarshal(a.Value, dst)
}

// Recognized message type URLs.
const (
	TypeMsgCreateClient        = "/ibc.core.client.v1.MsgCreateClient"
	TypeMsgUpdateClient        = "/ibc.core.client.v1.MsgUpdateClient"
	TypeMsgSubmitMisbehaviour  = "/ibc.core.client.v1.MsgSubmitMisbehaviour"
	TypeMsgUpgradeClient       = "/ibc.core.client.v1.MsgUpgradeClient"
	TypeMsgConnOpenInit        = "/ibc.core.connection.v1.MsgConnectionOpenInit"
	TypeMsgConnOpenTry         = "/ibc.core.connection.v1.MsgConnectionOpenTry"
	TypeMsgConnOpenAck         = "/ibc.core.connection.v1.MsgConnectionOpenAck"
	TypeMsgConnOpenConfirm     = "/ibc.core.connection.v1.MsgConnectionOpenConfirm"
	TypeMsgChanOpenInit        = "/ibc.core.channel.v1.MsgChannelOpenInit"
	TypeMsgChanOpenTry         = "/ibc.core.channel.v1.MsgChannelOpenTry"
	TypeMsgChanOpenAck         = "/ibc.core.channel.v1.MsgChannelOpenAck"
	TypeMsgChanOpenConfirm     = "/ibc.core.channel.v1.MsgChannelOpenConfirm"
	TypeMsgChanCloseInit       = "/ibc.core.channel.v1.MsgChannelCloseInit"
	TypeMsgChanCloseConfirm    = "/ibc.core.channel.v1.MsgChannelCloseConfirm"
	TypeMsgRecvPacket          = "/ibc.core.channel.v1.MsgRecvPacket"
	TypeMsgAcknowledgement     = "/ibc.core.channel.v1.MsgAcknowledgement"
	TypeMsgTimeout             = "/ibc.core.channel.v1.MsgTimeout"
	TypeMsgTimeoutOnClose      = "/ibc.core.channel.v1.MsgTimeoutOnClose"
)
