// Package keeper implements ICS-04 channel handshake and packet flow:
// ChanOpenInit/Try/Ack/Confirm, ChanCloseInit/Confirm, and
// SendPacket/RecvPacket/AcknowledgePacket/TimeoutPacket/TimeoutOnClose.
package keeper

import (
	"context"
	"time"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"

	"github.com/meridian-chain/ibc-core/internal/collcodec"
	channeltypes "github.com/meridian-chain/ibc-core/modules/core/04-channel/types"
	portkeeper "github.com/meridian-chain/ibc-core/modules/core/05-port/keeper"
)

// chanKey is the (port_id, channel_id) composite key shared by every
// per-channel collection below.
type chanKey = collections.Pair[string, string]

// packetKey is the (port_id, channel_id, sequence) composite key the three
// packet-proof collections are stored under.
type packetKey = collections.Triple[string, string, uint64]

func newChanKey(portID, channelID string) chanKey { return collections.Join(portID, channelID) }

func newPacketKey(portID, channelID string, sequence uint64) packetKey {
	return collections.Join3(portID, channelID, sequence)
}

// Keeper owns channel-end storage, the sequence counters and the packet
// commitment/receipt/acknowledgement collections, and dispatches to the
// bound application module through the port Router.
type Keeper struct {
	Schema collections.Schema

	ClientKeeper     channeltypes.ClientKeeper
	ConnectionKeeper channeltypes.ConnectionKeeper
	Router           *portkeeper.Router

	// MaxExpectedTimePerBlock is this host's estimate of block production
	// time, used to convert a connection's delay_period into a number of
	// blocks (see calculateBlockDelay).
	MaxExpectedTimePerBlock time.Duration

	Channels          collections.Map[chanKey, channeltypes.ChannelEnd]
	NextChannelSeq    collections.Sequence
	NextSequenceSend  collections.Map[chanKey, uint64]
	NextSequenceRecv  collections.Map[chanKey, uint64]
	NextSequenceAck   collections.Map[chanKey, uint64]
	PacketCommitments collections.Map[packetKey, []byte]
	PacketReceipts    collections.Map[packetKey, bool]
	PacketAcks        collections.Map[packetKey, []byte]
}

// NewKeeper builds the ICS-04 keeper over the given store service.
func NewKeeper(storeService corestore.KVStoreService, clientKeeper channeltypes.ClientKeeper, connectionKeeper channeltypes.ConnectionKeeper, router *portkeeper.Router) Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		ClientKeeper:            clientKeeper,
		ConnectionKeeper:        connectionKeeper,
		Router:                  router,
		MaxExpectedTimePerBlock: DefaultMaxExpectedTimePerBlock,
		Channels: collections.NewMap(
			sb, collections.NewPrefix(0), "channels",
			collections.PairKeyCodec(collections.StringKey, collections.StringKey),
			collcodec.JSONValue[channeltypes.ChannelEnd](),
		),
		NextChannelSeq: collections.NewSequence(sb, collections.NewPrefix(1), "next_channel_sequence"),
		NextSequenceSend: collections.NewMap(
			sb, collections.NewPrefix(2), "next_sequence_send",
			collections.PairKeyCodec(collections.StringKey, collections.StringKey),
			collections.Uint64Value,
		),
		NextSequenceRecv: collections.NewMap(
			sb, collections.NewPrefix(3), "next_sequence_recv",
			collections.PairKeyCodec(collections.StringKey, collections.StringKey),
			collections.Uint64Value,
		),
		NextSequenceAck: collections.NewMap(
			sb, collections.NewPrefix(4), "next_sequence_ack",
			collections.PairKeyCodec(collections.StringKey, collections.StringKey),
			collections.Uint64Value,
		),
		PacketCommitments: collections.NewMap(
			sb, collections.NewPrefix(5), "packet_commitments",
			collections.TripleKeyCodec(collections.StringKey, collections.StringKey, collections.Uint64Key),
			collections.BytesValue,
		),
		PacketReceipts: collections.NewMap(
			sb, collections.NewPrefix(6), "packet_receipts",
			collections.TripleKeyCodec(collections.StringKey, collections.StringKey, collections.Uint64Key),
			collections.BoolValue,
		),
		PacketAcks: collections.NewMap(
			sb, collections.NewPrefix(7), "packet_acks",
			collections.TripleKeyCodec(collections.StringKey, collections.StringKey, collections.Uint64Key),
			collections.BytesValue,
		),
	}
	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema
	return k
}

// Channel loads a ChannelEnd, failing if it isn't found.
func (k Keeper) Channel(ctx context.Context, portID, channelID string) (channeltypes.ChannelEnd, error) {
	ch, err := k.Channels.Get(ctx, newChanKey(portID, channelID))
	if err != nil {
		return channeltypes.ChannelEnd{}, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "port %s channel %s: %v", portID, channelID, err)
	}
	return ch, nil
}

// GetNextSequenceSend returns a channel's current send counter, defaulting
// to 1 for a channel that has never sent a packet.
func (k Keeper) GetNextSequenceSend(ctx context.Context, portID, channelID string) (uint64, error) {
	return k.getSequence(ctx, k.NextSequenceSend, portID, channelID)
}

// GetNextSequenceRecv returns a channel's current recv counter, defaulting
// to 1 for a channel that has never received a packet.
func (k Keeper) GetNextSequenceRecv(ctx context.Context, portID, channelID string) (uint64, error) {
	return k.getSequence(ctx, k.NextSequenceRecv, portID, channelID)
}

// GetNextSequenceAck returns a channel's current ack counter, defaulting to
// 1 for an ordered channel that has never acknowledged a packet.
func (k Keeper) GetNextSequenceAck(ctx context.Context, portID, channelID string) (uint64, error) {
	return k.getSequence(ctx, k.NextSequenceAck, portID, channelID)
}

func (k Keeper) getSequence(ctx context.Context, m collections.Map[chanKey, uint64], portID, channelID string) (uint64, error) {
	seq, err := m.Get(ctx, newChanKey(portID, channelID))
	if err != nil {
		return 1, nil
	}
	return seq, nil
}

// GetPacketCommitment returns a stored packet commitment, or nil if none is
// stored at (portID, channelID, sequence).
func (k Keeper) GetPacketCommitment(ctx context.Context, portID, channelID string, sequence uint64) ([]byte, bool) {
	v, err := k.PacketCommitments.Get(ctx, newPacketKey(portID, channelID, sequence))
	if err != nil {
		return nil, false
	}
	return v, true
}

// HasPacketReceipt reports whether a packet has already been received on an
// unordered channel.
func (k Keeper) HasPacketReceipt(ctx context.Context, portID, channelID string, sequence uint64) bool {
	ok, err := k.PacketReceipts.Has(ctx, newPacketKey(portID, channelID, sequence))
	return err == nil && ok
}

// GetPacketAcknowledgement returns a stored ack commitment, or nil if none
// is stored at (portID, channelID, sequence).
func (k Keeper) GetPacketAcknowledgement(ctx context.Context, portID, channelID string, sequence uint64) ([]byte, bool) {
	v, err := k.PacketAcks.Get(ctx, newPacketKey(portID, channelID, sequence))
	if err != nil {
		return nil, false
	}
	return v, true
}
