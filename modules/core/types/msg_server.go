package types

import (
	"context"

	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/meridian-chain/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/meridian-chain/ibc-core/modules/core/04-channel/types"
)

// MsgServer dispatches the concrete, already-decoded message types onto the
// aggregate Keeper's sub-keepers. Every handler both validates (a malformed
// or unauthorized message is rejected here) and executes in the same call,
// mirroring the combined validate+execute Module callback convention this
// module's port routing already uses.
type MsgServer struct {
	Keeper Keeper
}

// NewMsgServer wraps an aggregate Keeper as a MsgServer.
func NewMsgServer(keeper Keeper) MsgServer {
	return MsgServer{Keeper: keeper}
}

// IdentifierResponse is returned by every handler that allocates a fresh
// client, connection or channel id.
type IdentifierResponse struct {
	ID string
}

// EmptyResponse is returned by every handler with nothing to report beyond
// success.
type EmptyResponse struct{}

func (ms MsgServer) CreateClient(ctx context.Context, msg *clienttypes.MsgCreateClient) (*IdentifierResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	clientID, err := ms.Keeper.ClientKeeper.CreateClient(ctx, msg.ClientState, msg.ConsensusState)
	if err != nil {
		return nil, err
	}
	return &IdentifierResponse{ID: clientID}, nil
}

func (ms MsgServer) UpdateClient(ctx context.Context, msg *clienttypes.MsgUpdateClient) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	if err := ms.Keeper.ClientKeeper.UpdateClient(ctx, msg.ClientID, msg.ClientMessage); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) SubmitMisbehaviour(ctx context.Context, msg *clienttypes.MsgSubmitMisbehaviour) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	if err := ms.Keeper.ClientKeeper.SubmitMisbehaviour(ctx, msg.ClientID, msg.Misbehaviour); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) UpgradeClient(ctx context.Context, msg *clienttypes.MsgUpgradeClient) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	err := ms.Keeper.ClientKeeper.UpgradeClient(
		ctx, msg.ClientID, msg.UpgradedClient, msg.UpgradedConsensusState, msg.PlanHeight,
		msg.ProofUpgradeClient, msg.ProofUpgradeConsState,
	)
	if err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) ConnOpenInit(ctx context.Context, msg *connectiontypes.MsgConnectionOpenInit) (*IdentifierResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	connID, err := ms.Keeper.ConnectionKeeper.ConnOpenInit(ctx, msg.ClientID, msg.Counterparty, msg.Versions, msg.DelayPeriod)
	if err != nil {
		return nil, err
	}
	return &IdentifierResponse{ID: connID}, nil
}

func (ms MsgServer) ConnOpenTry(ctx context.Context, msg *connectiontypes.MsgConnectionOpenTry) (*IdentifierResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	connID, err := ms.Keeper.ConnectionKeeper.ConnOpenTry(
		ctx, msg.ClientID, msg.ClientState, msg.Counterparty, msg.DelayPeriod, msg.CounterpartyVersions,
		msg.ProofHeight, msg.ProofInit, msg.ProofClient, msg.ProofConsensus, msg.ConsensusHeight,
	)
	if err != nil {
		return nil, err
	}
	return &IdentifierResponse{ID: connID}, nil
}

func (ms MsgServer) ConnOpenAck(ctx context.Context, msg *connectiontypes.MsgConnectionOpenAck) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	err := ms.Keeper.ConnectionKeeper.ConnOpenAck(
		ctx, msg.ConnectionID, msg.CounterpartyConnectionID, msg.Version, msg.ClientState,
		msg.ProofHeight, msg.ProofTry, msg.ProofClient, msg.ProofConsensus, msg.ConsensusHeight,
	)
	if err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) ConnOpenConfirm(ctx context.Context, msg *connectiontypes.MsgConnectionOpenConfirm) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	if err := ms.Keeper.ConnectionKeeper.ConnOpenConfirm(ctx, msg.ConnectionID, msg.ProofAck, msg.ProofHeight); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) ChanOpenInit(ctx context.Context, msg *channeltypes.MsgChannelOpenInit) (*IdentifierResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	channelID, err := ms.Keeper.ChannelKeeper.ChanOpenInit(
		ctx, msg.PortID, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.Channel.Counterparty, msg.Channel.Version,
	)
	if err != nil {
		return nil, err
	}
	return &IdentifierResponse{ID: channelID}, nil
}

func (ms MsgServer) ChanOpenTry(ctx context.Context, msg *channeltypes.MsgChannelOpenTry) (*IdentifierResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	channelID, err := ms.Keeper.ChannelKeeper.ChanOpenTry(
		ctx, msg.PortID, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.Channel.Counterparty,
		msg.CounterpartyVersion, msg.ProofInit, msg.ProofHeight,
	)
	if err != nil {
		return nil, err
	}
	return &IdentifierResponse{ID: channelID}, nil
}

func (ms MsgServer) ChanOpenAck(ctx context.Context, msg *channeltypes.MsgChannelOpenAck) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	err := ms.Keeper.ChannelKeeper.ChanOpenAck(
		ctx, msg.PortID, msg.ChannelID, msg.CounterpartyChannelID, msg.CounterpartyVersion, msg.ProofTry, msg.ProofHeight,
	)
	if err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) ChanOpenConfirm(ctx context.Context, msg *channeltypes.MsgChannelOpenConfirm) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	if err := ms.Keeper.ChannelKeeper.ChanOpenConfirm(ctx, msg.PortID, msg.ChannelID, msg.ProofAck, msg.ProofHeight); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) ChanCloseInit(ctx context.Context, msg *channeltypes.MsgChannelCloseInit) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	if err := ms.Keeper.ChannelKeeper.ChanCloseInit(ctx, msg.PortID, msg.ChannelID); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) ChanCloseConfirm(ctx context.Context, msg *channeltypes.MsgChannelCloseConfirm) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	if err := ms.Keeper.ChannelKeeper.ChanCloseConfirm(ctx, msg.PortID, msg.ChannelID, msg.ProofInit, msg.ProofHeight); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) RecvPacket(ctx context.Context, msg *channeltypes.MsgRecvPacket) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	if err := ms.Keeper.ChannelKeeper.RecvPacket(ctx, msg.Packet, msg.ProofCommitment, msg.ProofHeight, msg.Signer); err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) Acknowledgement(ctx context.Context, msg *channeltypes.MsgAcknowledgement) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	err := ms.Keeper.ChannelKeeper.AcknowledgePacket(ctx, msg.Packet, msg.Acknowledgement, msg.ProofAcked, msg.ProofHeight, msg.Signer)
	if err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) Timeout(ctx context.Context, msg *channeltypes.MsgTimeout) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	err := ms.Keeper.ChannelKeeper.TimeoutPacket(ctx, msg.Packet, msg.ProofUnreceived, msg.ProofHeight, msg.NextSequenceRecv, msg.Signer)
	if err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}

func (ms MsgServer) TimeoutOnClose(ctx context.Context, msg *channeltypes.MsgTimeoutOnClose) (*EmptyResponse, error) {
	if err := ms.Keeper.ValidateMessageSigner(msg.Signer); err != nil {
		return nil, err
	}
	err := ms.Keeper.ChannelKeeper.TimeoutOnClose(ctx, msg.Packet, msg.ProofUnreceived, msg.ProofClose, msg.ProofHeight, msg.NextSequenceRecv, msg.Signer)
	if err != nil {
		return nil, err
	}
	return &EmptyResponse{}, nil
}
