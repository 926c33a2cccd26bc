package keeper

import (
	"context"
	"encoding/binary"
	"time"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	connectiontypes "github.com/meridian-chain/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/meridian-chain/ibc-core/modules/core/04-channel/types"
	commitmenttypes "github.com/meridian-chain/ibc-core/modules/core/23-commitment/types"
	host "github.com/meridian-chain/ibc-core/modules/core/24-host"
	"github.com/meridian-chain/ibc-core/modules/core/exported"

	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
)

func encodeUint64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func hostHeightAndTime(ctx context.Context) (exported.Height, exported.Timestamp) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	height := clienttypes.NewHeight(0, uint64(sdkCtx.BlockHeight()))
	timestamp := exported.Timestamp(sdkCtx.BlockTime().UnixNano())
	return height, timestamp
}

// checkedSendPacket carries a packet whose channel, connection and client
// preconditions have all been checked, and the sequence it will be sent
// under.
type checkedSendPacket struct {
	packet   channeltypes.Packet
	sequence uint64
}

// ValidateSendPacket checks the channel is Open, its connection is Open,
// the client on this chain tracking the counterparty is Active, and the
// timeout has not already elapsed on the sending chain. No writes: the
// sequence it reserves is read, not consumed, until ExecuteSendPacket
// commits it.
func (k Keeper) ValidateSendPacket(
	ctx context.Context,
	sourcePort, sourceChannel string,
	timeoutHeight clienttypes.Height,
	timeoutTimestamp exported.Timestamp,
	data []byte,
) (checkedSendPacket, error) {
	channel, err := k.Channel(ctx, sourcePort, sourceChannel)
	if err != nil {
		return checkedSendPacket{}, err
	}
	if channel.State != channeltypes.Open {
		return checkedSendPacket{}, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "expected Open, got %s", channel.State)
	}
	conn, _, err := k.connectionHop(ctx, channel.ConnectionHops)
	if err != nil {
		return checkedSendPacket{}, err
	}
	status, err := k.ClientKeeper.Status(ctx, conn.ClientID)
	if err != nil {
		return checkedSendPacket{}, err
	}
	if status != exported.Active {
		return checkedSendPacket{}, errorsmod.Wrapf(channeltypes.ErrClientNotActive, "client %s has status %s", conn.ClientID, status)
	}

	sequence, err := k.GetNextSequenceSend(ctx, sourcePort, sourceChannel)
	if err != nil {
		return checkedSendPacket{}, err
	}

	packet := channeltypes.Packet{
		Sequence:           sequence,
		SourcePort:         sourcePort,
		SourceChannel:      sourceChannel,
		DestinationPort:    channel.Counterparty.PortID,
		DestinationChannel: channel.Counterparty.ChannelID,
		Data:               data,
		TimeoutHeight:      timeoutHeight,
		TimeoutTimestamp:   timeoutTimestamp,
	}
	if err := packet.ValidateBasic(); err != nil {
		return checkedSendPacket{}, err
	}

	currentHeight, currentTime := hostHeightAndTime(ctx)
	if packet.TimedOut(currentHeight, currentTime) {
		return checkedSendPacket{}, errorsmod.Wrap(channeltypes.ErrPacketTimedOut, "timeout already elapsed on the sending chain")
	}

	return checkedSendPacket{packet: packet, sequence: sequence}, nil
}

// ExecuteSendPacket advances the send sequence and commits the packet a
// prior ValidateSendPacket call already checked.
func (k Keeper) ExecuteSendPacket(ctx context.Context, checked checkedSendPacket) (uint64, error) {
	packet := checked.packet
	key := newChanKey(packet.SourcePort, packet.SourceChannel)
	if err := k.NextSequenceSend.Set(ctx, key, checked.sequence+1); err != nil {
		return 0, err
	}
	if err := k.PacketCommitments.Set(ctx, newPacketKey(packet.SourcePort, packet.SourceChannel, checked.sequence), channeltypes.CommitPacket(packet)); err != nil {
		return 0, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventSendPacket{ //nolint:errcheck
		Sequence: checked.sequence, SourcePort: packet.SourcePort, SourceChannel: packet.SourceChannel,
		DestinationPort: packet.DestinationPort, DestinationChannel: packet.DestinationChannel,
	})
	return checked.sequence, nil
}

// SendPacket runs on the packet's source chain: it checks the channel is
// Open, the connection is Open, the client on this chain tracking the
// counterparty is Active, and the timeout has not already elapsed, then
// assigns the next send sequence and stores the packet commitment.
func (k Keeper) SendPacket(
	ctx context.Context,
	sourcePort, sourceChannel string,
	timeoutHeight clienttypes.Height,
	timeoutTimestamp exported.Timestamp,
	data []byte,
) (uint64, error) {
	checked, err := k.ValidateSendPacket(ctx, sourcePort, sourceChannel, timeoutHeight, timeoutTimestamp, data)
	if err != nil {
		return 0, err
	}
	return k.ExecuteSendPacket(ctx, checked)
}

// checkedRecvPacket carries a packet whose commitment membership has
// already been proven, along with the channel it arrived on and the
// module's acknowledgement (nil for an async ack).
type checkedRecvPacket struct {
	packet  channeltypes.Packet
	channel channeltypes.ChannelEnd
	ack     *channeltypes.Acknowledgement
}

// ValidateRecvPacket checks the channel is Open, the packet source matches
// the channel's counterparty, the packet has not timed out, the sequence
// is acceptable for the channel's ordering, and that the source chain
// actually committed this packet; it then invokes the bound module to
// obtain (but not yet commit) an acknowledgement. The module callback
// itself retains the combined validate+execute shape documented in
// DESIGN.md for 05-port callbacks.
func (k Keeper) ValidateRecvPacket(
	ctx context.Context,
	packet channeltypes.Packet,
	proofCommitment []byte,
	proofHeight exported.Height,
	relayer string,
) (checkedRecvPacket, error) {
	channel, err := k.Channel(ctx, packet.DestinationPort, packet.DestinationChannel)
	if err != nil {
		return checkedRecvPacket{}, err
	}
	if channel.State != channeltypes.Open {
		return checkedRecvPacket{}, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "expected Open, got %s", channel.State)
	}
	if channel.Counterparty.PortID != packet.SourcePort || channel.Counterparty.ChannelID != packet.SourceChannel {
		return checkedRecvPacket{}, errorsmod.Wrap(channeltypes.ErrInvalidChannel, "packet source does not match the channel's counterparty")
	}
	conn, _, err := k.connectionHop(ctx, channel.ConnectionHops)
	if err != nil {
		return checkedRecvPacket{}, err
	}

	currentHeight, currentTime := hostHeightAndTime(ctx)
	if packet.TimedOut(currentHeight, currentTime) {
		return checkedRecvPacket{}, errorsmod.Wrap(channeltypes.ErrPacketTimedOut, "packet timeout has already elapsed")
	}

	switch channel.Ordering {
	case channeltypes.Ordered:
		nextRecv, err := k.GetNextSequenceRecv(ctx, packet.DestinationPort, packet.DestinationChannel)
		if err != nil {
			return checkedRecvPacket{}, err
		}
		if packet.Sequence != nextRecv {
			return checkedRecvPacket{}, errorsmod.Wrapf(channeltypes.ErrPacketSequenceMismatch, "expected sequence %d, got %d", nextRecv, packet.Sequence)
		}
	default:
		if k.HasPacketReceipt(ctx, packet.DestinationPort, packet.DestinationChannel, packet.Sequence) {
			return checkedRecvPacket{}, errorsmod.Wrapf(channeltypes.ErrPacketAlreadyReceived, "sequence %d", packet.Sequence)
		}
	}

	commitmentValue := channeltypes.CommitPacket(packet)
	if err := k.verifyPacketCommitment(ctx, conn, proofHeight, proofCommitment, packet.SourcePort, packet.SourceChannel, packet.Sequence, commitmentValue); err != nil {
		return checkedRecvPacket{}, err
	}

	module, err := k.moduleForPort(packet.DestinationPort)
	if err != nil {
		return checkedRecvPacket{}, err
	}
	ack := module.OnRecvPacket(ctx, packet, relayer)

	return checkedRecvPacket{packet: packet, channel: channel, ack: ack}, nil
}

// ExecuteRecvPacket advances the receive sequence or marks the packet
// receipt, and commits the acknowledgement a prior ValidateRecvPacket call
// already obtained.
func (k Keeper) ExecuteRecvPacket(ctx context.Context, checked checkedRecvPacket) error {
	packet, channel, ack := checked.packet, checked.channel, checked.ack

	key := newChanKey(packet.DestinationPort, packet.DestinationChannel)
	switch channel.Ordering {
	case channeltypes.Ordered:
		nextRecv, err := k.GetNextSequenceRecv(ctx, packet.DestinationPort, packet.DestinationChannel)
		if err != nil {
			return err
		}
		if err := k.NextSequenceRecv.Set(ctx, key, nextRecv+1); err != nil {
			return err
		}
	default:
		if err := k.PacketReceipts.Set(ctx, newPacketKey(packet.DestinationPort, packet.DestinationChannel, packet.Sequence), true); err != nil {
			return err
		}
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventRecvPacket{ //nolint:errcheck
		Sequence: packet.Sequence, SourcePort: packet.SourcePort, SourceChannel: packet.SourceChannel,
		DestinationPort: packet.DestinationPort, DestinationChannel: packet.DestinationChannel,
	})

	if ack == nil {
		return nil
	}
	ackBytes, err := ack.Bytes()
	if err != nil {
		return err
	}
	if err := k.PacketAcks.Set(ctx, newPacketKey(packet.DestinationPort, packet.DestinationChannel, packet.Sequence), channeltypes.CommitAcknowledgement(ackBytes)); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventWriteAcknowledgement{ //nolint:errcheck
		Sequence: packet.Sequence, SourcePort: packet.SourcePort, SourceChannel: packet.SourceChannel,
		DestinationPort: packet.DestinationPort, DestinationChannel: packet.DestinationChannel,
		Acknowledgement: ackBytes,
	})
	return nil
}

// RecvPacket runs on the packet's destination chain: it checks the channel
// is Open, the packet has not timed out, the sequence is acceptable for the
// channel's ordering, and that the source chain actually committed this
// packet, then invokes the bound module and commits its acknowledgement.
func (k Keeper) RecvPacket(
	ctx context.Context,
	packet channeltypes.Packet,
	proofCommitment []byte,
	proofHeight exported.Height,
	relayer string,
) error {
	checked, err := k.ValidateRecvPacket(ctx, packet, proofCommitment, proofHeight, relayer)
	if err != nil {
		return err
	}
	return k.ExecuteRecvPacket(ctx, checked)
}

// checkedAcknowledgePacket carries a packet whose stored commitment and
// acknowledgement membership have already been verified, and whether its
// channel requires the ordered-sequence check on execute.
type checkedAcknowledgePacket struct {
	packet          channeltypes.Packet
	acknowledgement []byte
	ordered         bool
	relayer         string
}

// ValidateAcknowledgePacket verifies the stored commitment still matches
// and the acknowledgement's membership is proven. It does not yet invoke
// the bound module or mutate the store: that happens once the caller
// commits via ExecuteAcknowledgePacket, since the module callback and the
// ordered-sequence advance must observe each other atomically.
func (k Keeper) ValidateAcknowledgePacket(
	ctx context.Context,
	packet channeltypes.Packet,
	acknowledgement []byte,
	proofAcked []byte,
	proofHeight exported.Height,
	relayer string,
) (checkedAcknowledgePacket, error) {
	channel, err := k.Channel(ctx, packet.SourcePort, packet.SourceChannel)
	if err != nil {
		return checkedAcknowledgePacket{}, err
	}
	if channel.State != channeltypes.Open {
		return checkedAcknowledgePacket{}, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "expected Open, got %s", channel.State)
	}
	conn, _, err := k.connectionHop(ctx, channel.ConnectionHops)
	if err != nil {
		return checkedAcknowledgePacket{}, err
	}

	stored, ok := k.GetPacketCommitment(ctx, packet.SourcePort, packet.SourceChannel, packet.Sequence)
	if !ok {
		return checkedAcknowledgePacket{}, errorsmod.Wrapf(channeltypes.ErrPacketNotFound, "no commitment for sequence %d: already acknowledged?", packet.Sequence)
	}
	if string(stored) != string(channeltypes.CommitPacket(packet)) {
		return checkedAcknowledgePacket{}, channeltypes.ErrPacketCommitmentMismatch
	}

	if err := k.verifyPacketAcknowledgement(ctx, conn, proofHeight, proofAcked, packet.DestinationPort, packet.DestinationChannel, packet.Sequence, channeltypes.CommitAcknowledgement(acknowledgement)); err != nil {
		return checkedAcknowledgePacket{}, err
	}

	return checkedAcknowledgePacket{
		packet:          packet,
		acknowledgement: acknowledgement,
		ordered:         channel.Ordering == channeltypes.Ordered,
		relayer:         relayer,
	}, nil
}

// ExecuteAcknowledgePacket deletes the packet commitment a prior
// ValidateAcknowledgePacket call already proved, advances the ack sequence
// counter on an ordered channel, and invokes the bound module.
func (k Keeper) ExecuteAcknowledgePacket(ctx context.Context, checked checkedAcknowledgePacket) error {
	packet := checked.packet

	if err := k.PacketCommitments.Remove(ctx, newPacketKey(packet.SourcePort, packet.SourceChannel, packet.Sequence)); err != nil {
		return err
	}

	if checked.ordered {
		key := newChanKey(packet.SourcePort, packet.SourceChannel)
		nextAck, err := k.GetNextSequenceAck(ctx, packet.SourcePort, packet.SourceChannel)
		if err != nil {
			return err
		}
		if packet.Sequence != nextAck {
			return errorsmod.Wrapf(channeltypes.ErrPacketSequenceMismatch, "expected sequence %d, got %d", nextAck, packet.Sequence)
		}
		if err := k.NextSequenceAck.Set(ctx, key, nextAck+1); err != nil {
			return err
		}
	}

	module, err := k.moduleForPort(packet.SourcePort)
	if err != nil {
		return err
	}
	if err := module.OnAcknowledgementPacket(ctx, packet, checked.acknowledgement, checked.relayer); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventAcknowledgePacket{ //nolint:errcheck
		Sequence: packet.Sequence, SourcePort: packet.SourcePort, SourceChannel: packet.SourceChannel,
	})
	return nil
}

// AcknowledgePacket runs on the packet's source chain once the destination
// has written an acknowledgement: it verifies the stored commitment still
// matches, verifies the ack's membership, deletes the commitment and, on an
// ordered channel, advances the ack sequence counter.
func (k Keeper) AcknowledgePacket(
	ctx context.Context,
	packet channeltypes.Packet,
	acknowledgement []byte,
	proofAcked []byte,
	proofHeight exported.Height,
	relayer string,
) error {
	checked, err := k.ValidateAcknowledgePacket(ctx, packet, acknowledgement, proofAcked, proofHeight, relayer)
	if err != nil {
		return err
	}
	return k.ExecuteAcknowledgePacket(ctx, checked)
}

// checkedTimeoutPacket carries a packet whose non-receipt has already been
// proven (either by an elapsed-timeout consensus state or, on close, a
// Closed destination channel), and the channel state ExecuteTimeoutPacket
// should commit.
type checkedTimeoutPacket struct {
	packet         channeltypes.Packet
	closedChannel  channeltypes.ChannelEnd
	closesChannel  bool
	relayer        string
}

// ValidateTimeoutPacket proves the packet was never received by the
// destination chain because its timeout has already elapsed, as observed
// through the destination's own consensus state. No writes.
func (k Keeper) ValidateTimeoutPacket(
	ctx context.Context,
	packet channeltypes.Packet,
	proofUnreceived []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
	relayer string,
) (checkedTimeoutPacket, error) {
	return k.validateTimeoutPacket(ctx, packet, proofUnreceived, nil, proofHeight, nextSequenceRecv, relayer, false)
}

// ValidateTimeoutOnClose is ValidateTimeoutPacket's counterpart for a
// destination channel that has already closed: it skips the
// elapsed-timeout check in favor of a membership proof that the
// destination channel is Closed. No writes.
func (k Keeper) ValidateTimeoutOnClose(
	ctx context.Context,
	packet channeltypes.Packet,
	proofUnreceived []byte,
	proofClose []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
	relayer string,
) (checkedTimeoutPacket, error) {
	return k.validateTimeoutPacket(ctx, packet, proofUnreceived, proofClose, proofHeight, nextSequenceRecv, relayer, true)
}

// ExecuteTimeoutPacket deletes the packet commitment and, on an ordered
// channel, closes it, then invokes the bound module. Shared by both
// TimeoutPacket and TimeoutOnClose.
func (k Keeper) ExecuteTimeoutPacket(ctx context.Context, checked checkedTimeoutPacket) error {
	packet := checked.packet

	if checked.closesChannel {
		if err := k.Channels.Set(ctx, newChanKey(packet.SourcePort, packet.SourceChannel), checked.closedChannel); err != nil {
			return err
		}
	}

	if err := k.PacketCommitments.Remove(ctx, newPacketKey(packet.SourcePort, packet.SourceChannel, packet.Sequence)); err != nil {
		return err
	}

	module, err := k.moduleForPort(packet.SourcePort)
	if err != nil {
		return err
	}
	if err := module.OnTimeoutPacket(ctx, packet, checked.relayer); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventTimeoutPacket{ //nolint:errcheck
		Sequence: packet.Sequence, SourcePort: packet.SourcePort, SourceChannel: packet.SourceChannel,
	})
	return nil
}

// TimeoutPacket runs on the packet's source chain: it proves the packet was
// never received by the destination chain, either because its timeout has
// elapsed (checked against the destination's own consensus state) or,
// standing in a proof of the destination channel's Closed state, via
// TimeoutOnClose.
func (k Keeper) TimeoutPacket(
	ctx context.Context,
	packet channeltypes.Packet,
	proofUnreceived []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
	relayer string,
) error {
	checked, err := k.ValidateTimeoutPacket(ctx, packet, proofUnreceived, proofHeight, nextSequenceRecv, relayer)
	if err != nil {
		return err
	}
	return k.ExecuteTimeoutPacket(ctx, checked)
}

// TimeoutOnClose is TimeoutPacket's counterpart for a destination channel
// that has already closed: it skips the elapsed-timeout check in favor of
// a membership proof that the destination channel is Closed.
func (k Keeper) TimeoutOnClose(
	ctx context.Context,
	packet channeltypes.Packet,
	proofUnreceived []byte,
	proofClose []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
	relayer string,
) error {
	checked, err := k.ValidateTimeoutOnClose(ctx, packet, proofUnreceived, proofClose, proofHeight, nextSequenceRecv, relayer)
	if err != nil {
		return err
	}
	return k.ExecuteTimeoutPacket(ctx, checked)
}

func (k Keeper) validateTimeoutPacket(
	ctx context.Context,
	packet channeltypes.Packet,
	proofUnreceived, proofClose []byte,
	proofHeight exported.Height,
	nextSequenceRecv uint64,
	relayer string,
	onClose bool,
) (checkedTimeoutPacket, error) {
	channel, err := k.Channel(ctx, packet.SourcePort, packet.SourceChannel)
	if err != nil {
		return checkedTimeoutPacket{}, err
	}
	conn, _, err := k.connectionHop(ctx, channel.ConnectionHops)
	if err != nil {
		return checkedTimeoutPacket{}, err
	}

	stored, ok := k.GetPacketCommitment(ctx, packet.SourcePort, packet.SourceChannel, packet.Sequence)
	if !ok {
		return checkedTimeoutPacket{}, errorsmod.Wrapf(channeltypes.ErrPacketNotFound, "no commitment for sequence %d: already timed out?", packet.Sequence)
	}
	if string(stored) != string(channeltypes.CommitPacket(packet)) {
		return checkedTimeoutPacket{}, channeltypes.ErrPacketCommitmentMismatch
	}

	if !onClose {
		consState, err := k.ClientKeeper.ConsensusState(ctx, conn.ClientID, proofHeight)
		if err != nil {
			return checkedTimeoutPacket{}, err
		}
		if !packet.TimedOut(proofHeight, consState.GetTimestamp()) {
			return checkedTimeoutPacket{}, errorsmod.Wrap(channeltypes.ErrPacketTimeoutNotReached, "neither timeout height nor timestamp has been reached as of the proven height")
		}
	}

	closesChannel := false
	switch channel.Ordering {
	case channeltypes.Ordered:
		if err := k.verifyNextSequenceRecv(ctx, conn, proofHeight, proofUnreceived, packet.DestinationPort, packet.DestinationChannel, nextSequenceRecv); err != nil {
			return checkedTimeoutPacket{}, err
		}
		if nextSequenceRecv > packet.Sequence {
			return checkedTimeoutPacket{}, errorsmod.Wrapf(channeltypes.ErrPacketSequenceMismatch, "next_sequence_recv %d is past the timed-out packet's sequence %d", nextSequenceRecv, packet.Sequence)
		}
		channel.State = channeltypes.Closed
		closesChannel = true
	default:
		if err := k.verifyPacketReceiptAbsence(ctx, conn, proofHeight, proofUnreceived, packet.DestinationPort, packet.DestinationChannel, packet.Sequence); err != nil {
			return checkedTimeoutPacket{}, err
		}
	}

	if onClose {
		expectedChannel := channeltypes.ChannelEnd{
			State:          channeltypes.Closed,
			Ordering:       channel.Ordering,
			Counterparty:   channeltypes.Counterparty{PortID: packet.SourcePort, ChannelID: packet.SourceChannel},
			ConnectionHops: []string{conn.Counterparty.ConnectionID},
			Version:        channel.Version,
		}
		if err := k.verifyChannelState(ctx, conn, proofHeight, proofClose, packet.DestinationPort, packet.DestinationChannel, expectedChannel); err != nil {
			return checkedTimeoutPacket{}, err
		}
	}

	return checkedTimeoutPacket{packet: packet, closedChannel: channel, closesChannel: closesChannel, relayer: relayer}, nil
}

// delayParams resolves the connection's actual delay period a packet-flow proof
// must observe, unlike handshake proofs which always pass 0,0.
func (k Keeper) delayParams(ctx context.Context, conn connectiontypes.ConnectionEnd) (delayTime, delayBlocks uint64, currentTime exported.Timestamp, currentHeight exported.Height) {
	currentHeight, currentTime = hostHeightAndTime(ctx)
	delayTime = conn.DelayPeriod
	delayBlocks = calculateBlockDelay(time.Duration(conn.DelayPeriod), k.MaxExpectedTimePerBlock)
	return
}

func (k Keeper) verifyPacketCommitment(ctx context.Context, conn connectiontypes.ConnectionEnd, proofHeight exported.Height, proof []byte, portID, channelID string, sequence uint64, value []byte) error {
	clientState, consState, err := k.verifyPrecheck(ctx, conn, proofHeight)
	if err != nil {
		return err
	}
	path, err := commitmenttypes.ApplyPrefix(commitmenttypes.NewMerklePrefix(conn.Counterparty.Prefix), host.PacketCommitmentPath(portID, channelID, sequence))
	if err != nil {
		return err
	}
	delayTime, delayBlocks, currentTime, currentHeight := k.delayParams(ctx, conn)
	if err := clientState.VerifyMembership(consState, delayTime, delayBlocks, currentTime, currentHeight, proofHeight, proof, path, value); err != nil {
		return errorsmod.Wrap(channeltypes.ErrInvalidPacketProof, err.Error())
	}
	return nil
}

func (k Keeper) verifyPacketAcknowledgement(ctx context.Context, conn connectiontypes.ConnectionEnd, proofHeight exported.Height, proof []byte, portID, channelID string, sequence uint64, value []byte) error {
	clientState, consState, err := k.verifyPrecheck(ctx, conn, proofHeight)
	if err != nil {
		return err
	}
	path, err := commitmenttypes.ApplyPrefix(commitmenttypes.NewMerklePrefix(conn.Counterparty.Prefix), host.PacketAcknowledgementPath(portID, channelID, sequence))
	if err != nil {
		return err
	}
	delayTime, delayBlocks, currentTime, currentHeight := k.delayParams(ctx, conn)
	if err := clientState.VerifyMembership(consState, delayTime, delayBlocks, currentTime, currentHeight, proofHeight, proof, path, value); err != nil {
		return errorsmod.Wrap(channeltypes.ErrInvalidPacketProof, err.Error())
	}
	return nil
}

func (k Keeper) verifyPacketReceiptAbsence(ctx context.Context, conn connectiontypes.ConnectionEnd, proofHeight exported.Height, proof []byte, portID, channelID string, sequence uint64) error {
	clientState, consState, err := k.verifyPrecheck(ctx, conn, proofHeight)
	if err != nil {
		return err
	}
	path, err := commitmenttypes.ApplyPrefix(commitmenttypes.NewMerklePrefix(conn.Counterparty.Prefix), host.PacketReceiptPath(portID, channelID, sequence))
	if err != nil {
		return err
	}
	delayTime, delayBlocks, currentTime, currentHeight := k.delayParams(ctx, conn)
	if err := clientState.VerifyNonMembership(consState, delayTime, delayBlocks, currentTime, currentHeight, proofHeight, proof, path); err != nil {
		return errorsmod.Wrap(channeltypes.ErrInvalidPacketProof, err.Error())
	}
	return nil
}

func (k Keeper) verifyNextSequenceRecv(ctx context.Context, conn connectiontypes.ConnectionEnd, proofHeight exported.Height, proof []byte, portID, channelID string, nextSequenceRecv uint64) error {
	clientState, consState, err := k.verifyPrecheck(ctx, conn, proofHeight)
	if err != nil {
		return err
	}
	path, err := commitmenttypes.ApplyPrefix(commitmenttypes.NewMerklePrefix(conn.Counterparty.Prefix), host.NextSequenceRecvPath(portID, channelID))
	if err != nil {
		return err
	}
	delayTime, delayBlocks, currentTime, currentHeight := k.delayParams(ctx, conn)
	if err := clientState.VerifyMembership(consState, delayTime, delayBlocks, currentTime, currentHeight, proofHeight, proof, path, encodeUint64(nextSequenceRecv)); err != nil {
		return errorsmod.Wrap(channeltypes.ErrInvalidPacketProof, err.Error())
	}
	return nil
}

func (k Keeper) verifyPrecheck(ctx context.Context, conn connectiontypes.ConnectionEnd, proofHeight exported.Height) (exported.ClientState, exported.ConsensusState, error) {
	if err := k.ClientKeeper.ValidateProofHeight(ctx, conn.ClientID, proofHeight); err != nil {
		return nil, nil, err
	}
	status, err := k.ClientKeeper.Status(ctx, conn.ClientID)
	if err != nil {
		return nil, nil, err
	}
	if status != exported.Active {
		return nil, nil, errorsmod.Wrapf(channeltypes.ErrClientNotActive, "client %s has status %s", conn.ClientID, status)
	}
	clientState, err := k.ClientKeeper.ClientState(ctx, conn.ClientID)
	if err != nil {
		return nil, nil, err
	}
	consState, err := k.ClientKeeper.ConsensusState(ctx, conn.ClientID, proofHeight)
	if err != nil {
		return nil, nil, err
	}
	return clientState, consState, nil
}
