package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/collections"
	"github.com/stretchr/testify/require"

	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
	channeltypes "github.com/meridian-chain/ibc-core/modules/core/04-channel/types"
	host "github.com/meridian-chain/ibc-core/modules/core/24-host"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

// openChannelDirect seeds an already-Open ChannelEnd (with sequence
// counters reset to 1) directly, skipping the ICS-04 handshake the packet
// tests in this file have no interest in re-driving.
func (e *endpoint) openChannelDirect(t *testing.T, portID, channelID, counterpartyPortID, counterpartyChannelID, connID string, ordering channeltypes.Order) {
	t.Helper()
	channel := channeltypes.ChannelEnd{
		State:          channeltypes.Open,
		Ordering:       ordering,
		Counterparty:   channeltypes.Counterparty{PortID: counterpartyPortID, ChannelID: counterpartyChannelID},
		ConnectionHops: []string{connID},
		Version:        "ics20-1",
	}
	key := collections.Join(portID, channelID)
	require.NoError(t, e.chanK.Channels.Set(e.chain.Context(), key, channel))
	require.NoError(t, e.chanK.NextSequenceSend.Set(e.chain.Context(), key, 1))
	require.NoError(t, e.chanK.NextSequenceRecv.Set(e.chain.Context(), key, 1))
	require.NoError(t, e.chanK.NextSequenceAck.Set(e.chain.Context(), key, 1))
}

// TestPacketFlowUnordered drives SendPacket -> RecvPacket -> AcknowledgePacket
// over an already-Open unordered channel whose connection carries a nonzero
// delay period, proving both that the happy path commits/clears the right
// collections and that a proof presented before the delay period has
// elapsed is rejected.
func TestPacketFlowUnordered(t *testing.T) {
	requireT := require.New(t)

	chainA := newEndpoint(t, "chainA")
	chainB := newEndpoint(t, "chainB")

	connIDA, connIDB := "connection-0", "connection-0"
	delayPeriod := uint64((2 * time.Second).Nanoseconds())
	chainA.setOpenConnection(t, connIDA, chainB.clientID, connIDB, delayPeriod)
	chainB.setOpenConnection(t, connIDB, chainA.clientID, connIDA, delayPeriod)

	channelIDA, channelIDB := "channel-0", "channel-0"
	chainA.openChannelDirect(t, portID, channelIDA, portID, channelIDB, connIDA, channeltypes.Unordered)
	chainB.openChannelDirect(t, portID, channelIDB, portID, channelIDA, connIDB, channeltypes.Unordered)

	data := []byte("transfer-payload")
	timeoutHeight := clienttypes.NewHeight(0, 1_000_000)
	timeoutTimestamp := exported.Timestamp(0)

	sequence, err := chainA.chanK.SendPacket(chainA.chain.Context(), portID, channelIDA, timeoutHeight, timeoutTimestamp, data)
	requireT.NoError(err)
	requireT.Equal(uint64(1), sequence)

	packet := channeltypes.Packet{
		Sequence:           sequence,
		SourcePort:         portID,
		SourceChannel:      channelIDA,
		DestinationPort:    portID,
		DestinationChannel: channelIDB,
		Data:               data,
		TimeoutHeight:      timeoutHeight,
		TimeoutTimestamp:   timeoutTimestamp,
	}
	commitment := channeltypes.CommitPacket(packet)

	proofHeightB := chainB.relay(t, map[string][]byte{
		"ibc/" + host.PacketCommitmentPath(portID, channelIDA, sequence): commitment,
	})

	// The connection's delay period has not elapsed as of the relayed
	// height: RecvPacket must reject the proof.
	err = chainB.chanK.RecvPacket(chainB.chain.Context(), packet, commitment, proofHeightB, "relayer")
	requireT.Error(err)

	chainB.chain.NextBlock(3 * time.Second)

	err = chainB.chanK.RecvPacket(chainB.chain.Context(), packet, commitment, proofHeightB, "relayer")
	requireT.NoError(err)
	requireT.True(chainB.chanK.HasPacketReceipt(chainB.chain.Context(), portID, channelIDB, sequence))

	ackStruct := channeltypes.NewResultAcknowledgement(append([]byte("ack:"), data...))
	ackBytes, err := ackStruct.Bytes()
	requireT.NoError(err)
	ackCommitment := channeltypes.CommitAcknowledgement(ackBytes)

	storedAck, ok := chainB.chanK.GetPacketAcknowledgement(chainB.chain.Context(), portID, channelIDB, sequence)
	requireT.True(ok)
	requireT.Equal(ackCommitment, storedAck)

	proofHeightA := chainA.relay(t, map[string][]byte{
		"ibc/" + host.PacketAcknowledgementPath(portID, channelIDB, sequence): ackCommitment,
	})

	// Same delay-period check applies to the acknowledgement proof on A.
	err = chainA.chanK.AcknowledgePacket(chainA.chain.Context(), packet, ackBytes, ackCommitment, proofHeightA, "relayer")
	requireT.Error(err)

	chainA.chain.NextBlock(3 * time.Second)

	err = chainA.chanK.AcknowledgePacket(chainA.chain.Context(), packet, ackBytes, ackCommitment, proofHeightA, "relayer")
	requireT.NoError(err)

	_, ok = chainA.chanK.GetPacketCommitment(chainA.chain.Context(), portID, channelIDA, sequence)
	requireT.False(ok)

	requireT.Len(chainA.module.acked, 1)
	requireT.Equal(packet, chainA.module.acked[0])
}

// TestPacketFlowBlockDelay proves the block half of the delay period
// invariant is enforced independently of the wall-clock half: a proof whose
// elapsed time already clears delay_period is still rejected until
// host_height - proof_height also reaches ceil(delay_period / block_time),
// and accepted once it does.
func TestPacketFlowBlockDelay(t *testing.T) {
	requireT := require.New(t)

	chainA := newEndpoint(t, "chainA")
	chainB := newEndpoint(t, "chainB")

	// delay_period=10s, block_time=2s -> block_delay = 5, matching the
	// boundary this test drives across.
	chainB.chanK.MaxExpectedTimePerBlock = 2 * time.Second
	delayPeriod := uint64((10 * time.Second).Nanoseconds())

	connIDA, connIDB := "connection-0", "connection-0"
	chainA.setOpenConnection(t, connIDA, chainB.clientID, connIDB, delayPeriod)
	chainB.setOpenConnection(t, connIDB, chainA.clientID, connIDA, delayPeriod)

	channelIDA, channelIDB := "channel-0", "channel-0"
	chainA.openChannelDirect(t, portID, channelIDA, portID, channelIDB, connIDA, channeltypes.Unordered)
	chainB.openChannelDirect(t, portID, channelIDB, portID, channelIDA, connIDB, channeltypes.Unordered)

	data := []byte("transfer-payload")
	timeoutHeight := clienttypes.NewHeight(0, 1_000_000)
	timeoutTimestamp := exported.Timestamp(0)

	sequence, err := chainA.chanK.SendPacket(chainA.chain.Context(), portID, channelIDA, timeoutHeight, timeoutTimestamp, data)
	requireT.NoError(err)

	packet := channeltypes.Packet{
		Sequence:           sequence,
		SourcePort:         portID,
		SourceChannel:      channelIDA,
		DestinationPort:    portID,
		DestinationChannel: channelIDB,
		Data:               data,
		TimeoutHeight:      timeoutHeight,
		TimeoutTimestamp:   timeoutTimestamp,
	}
	commitment := channeltypes.CommitPacket(packet)

	proofHeightB := chainB.relay(t, map[string][]byte{
		"ibc/" + host.PacketCommitmentPath(portID, channelIDA, sequence): commitment,
	})

	// 11s clears the 10s time delay, but only one block (this NextBlock
	// call) separates proofHeightB from chainB's current height: the
	// block-delay condition (>= 5) is not met and the proof is rejected.
	chainB.chain.NextBlock(11 * time.Second)
	err = chainB.chanK.RecvPacket(chainB.chain.Context(), packet, commitment, proofHeightB, "relayer")
	requireT.Error(err)

	// Advance four more blocks with no further elapsed time: the time
	// condition remains satisfied and host_height - proof_height now
	// reaches 5, so the same proof is accepted.
	for i := 0; i < 4; i++ {
		chainB.chain.NextBlock(0)
	}
	err = chainB.chanK.RecvPacket(chainB.chain.Context(), packet, commitment, proofHeightB, "relayer")
	requireT.NoError(err)
	requireT.True(chainB.chanK.HasPacketReceipt(chainB.chain.Context(), portID, channelIDB, sequence))
}

// TestPacketTimeoutUnordered proves a packet that the destination never
// received can be timed out once a proof of its continued absence from the
// destination's receipt set is available at a height past the packet's
// timeout.
func TestPacketTimeoutUnordered(t *testing.T) {
	requireT := require.New(t)

	chainA := newEndpoint(t, "chainA")
	chainB := newEndpoint(t, "chainB")

	connIDA, connIDB := "connection-0", "connection-0"
	chainA.setOpenConnection(t, connIDA, chainB.clientID, connIDB, 0)
	chainB.setOpenConnection(t, connIDB, chainA.clientID, connIDA, 0)

	channelIDA, channelIDB := "channel-0", "channel-0"
	chainA.openChannelDirect(t, portID, channelIDA, portID, channelIDB, connIDA, channeltypes.Unordered)
	chainB.openChannelDirect(t, portID, channelIDB, portID, channelIDA, connIDB, channeltypes.Unordered)

	data := []byte("payload")
	now := exported.Timestamp(chainA.chain.Context().BlockTime().UnixNano())
	timeoutTimestamp := now + exported.Timestamp((500 * time.Millisecond).Nanoseconds())
	timeoutHeight := clienttypes.NewHeight(0, 0)

	sequence, err := chainA.chanK.SendPacket(chainA.chain.Context(), portID, channelIDA, timeoutHeight, timeoutTimestamp, data)
	requireT.NoError(err)

	packet := channeltypes.Packet{
		Sequence:           sequence,
		SourcePort:         portID,
		SourceChannel:      channelIDA,
		DestinationPort:    portID,
		DestinationChannel: channelIDB,
		Data:               data,
		TimeoutHeight:      timeoutHeight,
		TimeoutTimestamp:   timeoutTimestamp,
	}

	// B never receives the packet. Relay an empty root to A's client
	// tracking B: the relayed header's timestamp (one second later) is
	// already past the packet's timeout, and the empty root proves no
	// receipt exists at DestinationPort/DestinationChannel/sequence.
	proofHeightA := chainA.relay(t, map[string][]byte{})

	err = chainA.chanK.TimeoutPacket(chainA.chain.Context(), packet, nil, proofHeightA, 1, "relayer")
	requireT.NoError(err)

	_, ok := chainA.chanK.GetPacketCommitment(chainA.chain.Context(), portID, channelIDA, sequence)
	requireT.False(ok)
	requireT.Len(chainA.module.timedOut, 1)
}
