package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
)

// HandleMsg decodes an Any-wrapped message by its type_url into the
// concrete Msg struct the wire envelope identifies, dispatches it to the
// matching MsgServer handler, and re-wraps whatever that handler returns
// into a response Any. It is the single entry point a host application's
// transaction router calls into this module through.
func (ms MsgServer) HandleMsg(ctx context.Context, msg clienttypes.Any) (*clienttypes.Any, error) {
	switch msg.TypeURL {
	case clienttypes.TypeMsgCreateClient:
		return dispatch(msg, ms.CreateClient, ctx, "MsgCreateClientResponse")
	case clienttypes.TypeMsgUpdateClient:
		return dispatch(msg, ms.UpdateClient, ctx, "MsgUpdateClientResponse")
	case clienttypes.TypeMsgSubmitMisbehaviour:
		return dispatch(msg, ms.SubmitMisbehaviour, ctx, "MsgSubmitMisbehaviourResponse")
	case clienttypes.TypeMsgUpgradeClient:
		return dispatch(msg, ms.UpgradeClient, ctx, "MsgUpgradeClientResponse")
	case clienttypes.TypeMsgConnOpenInit:
		return dispatch(msg, ms.ConnOpenInit, ctx, "MsgConnectionOpenInitResponse")
	case clienttypes.TypeMsgConnOpenTry:
		return dispatch(msg, ms.ConnOpenTry, ctx, "MsgConnectionOpenTryResponse")
	case clienttypes.TypeMsgConnOpenAck:
		return dispatch(msg, ms.ConnOpenAck, ctx, "MsgConnectionOpenAckResponse")
	case clienttypes.TypeMsgConnOpenConfirm:
		return dispatch(msg, ms.ConnOpenConfirm, ctx, "MsgConnectionOpenConfirmResponse")
	case clienttypes.TypeMsgChanOpenInit:
		return dispatch(msg, ms.ChanOpenInit, ctx, "MsgChannelOpenInitResponse")
	case clienttypes.TypeMsgChanOpenTry:
		return dispatch(msg, ms.ChanOpenTry, ctx, "MsgChannelOpenTryResponse")
	case clienttypes.TypeMsgChanOpenAck:
		return dispatch(msg, ms.ChanOpenAck, ctx, "MsgChannelOpenAckResponse")
	case clienttypes.TypeMsgChanOpenConfirm:
		return dispatch(msg, ms.ChanOpenConfirm, ctx, "MsgChannelOpenConfirmResponse")
	case clienttypes.TypeMsgChanCloseInit:
		return dispatch(msg, ms.ChanCloseInit, ctx, "MsgChannelCloseInitResponse")
	case clienttypes.TypeMsgChanCloseConfirm:
		return dispatch(msg, ms.ChanCloseConfirm, ctx, "MsgChannelCloseConfirmResponse")
	case clienttypes.TypeMsgRecvPacket:
		return dispatch(msg, ms.RecvPacket, ctx, "MsgRecvPacketResponse")
	case clienttypes.TypeMsgAcknowledgement:
		return dispatch(msg, ms.Acknowledgement, ctx, "MsgAcknowledgementResponse")
	case clienttypes.TypeMsgTimeout:
		return dispatch(msg, ms.Timeout, ctx, "MsgTimeoutResponse")
	case clienttypes.TypeMsgTimeoutOnClose:
		return dispatch(msg, ms.TimeoutOnClose, ctx, "MsgTimeoutOnCloseResponse")
	default:
		return nil, errorsmod.Wrapf(ErrUnknownTypeURL, "%s", msg.TypeURL)
	}
}

// dispatch unmarshals msg's Any value into the concrete request type a
// handler expects, invokes the handler, and re-wraps its response into an
// Any tagged with responseTypeURL. Every MsgServer handler shares this
// (ctx, *Req) (*Resp, error) shape, so one generic adapter covers all of
// them instead of repeating the unmarshal/rewrap boilerplate per message.
func dispatch[Req, Resp any](msg clienttypes.Any, handler func(context.Context, *Req) (*Resp, error), ctx context.Context, responseTypeURL string) (*clienttypes.Any, error) {
	var req Req
	if err := msg.Unmarshal(&req); err != nil {
		return nil, errorsmod.Wrapf(err, "decoding %s", msg.TypeURL)
	}
	resp, err := handler(ctx, &req)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrUnexpectedReply
	}
	respAny, err := clienttypes.NewAny(responseTypeURL, resp)
	if err != nil {
		return nil, err
	}
	return &respAny, nil
}
