package keeper_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	storetypes "cosmossdk.io/store/types"
	"github.com/stretchr/testify/require"

	clientkeeper "github.com/meridian-chain/ibc-core/modules/core/02-client/keeper"
	connkeeper "github.com/meridian-chain/ibc-core/modules/core/03-connection/keeper"
	connectiontypes "github.com/meridian-chain/ibc-core/modules/core/03-connection/types"
	chankeeper "github.com/meridian-chain/ibc-core/modules/core/04-channel/keeper"
	channeltypes "github.com/meridian-chain/ibc-core/modules/core/04-channel/types"
	host "github.com/meridian-chain/ibc-core/modules/core/24-host"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
	portkeeper "github.com/meridian-chain/ibc-core/modules/core/05-port/keeper"
	porttypes "github.com/meridian-chain/ibc-core/modules/core/05-port/types"
	ibctesting "github.com/meridian-chain/ibc-core/testing"

	mocktypes "github.com/meridian-chain/ibc-core/modules/light-clients/mock/types"
)

// portID is the single port both simulated chains bind in these tests,
// mirroring the common case where the same application (e.g. token
// transfer) is wired to the same port id on every chain.
const portID = "transfer"

// mockModule is a minimal porttypes.Module standing in for an application:
// it accepts any proposed version verbatim and records the packet outcomes
// the core reports back to it.
type mockModule struct {
	version  string
	acked    []channeltypes.Packet
	timedOut []channeltypes.Packet
}

var _ porttypes.Module = (*mockModule)(nil)

func (m *mockModule) OnChanOpenInit(ctx context.Context, order channeltypes.Order, hops []string, portID, channelID string, counterparty channeltypes.Counterparty, proposedVersion string) (string, error) {
	return m.version, nil
}

func (m *mockModule) OnChanOpenTry(ctx context.Context, order channeltypes.Order, hops []string, portID, channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string) (string, error) {
	return m.version, nil
}

func (m *mockModule) OnChanOpenAck(ctx context.Context, portID, channelID, counterpartyChannelID, counterpartyVersion string) error {
	return nil
}

func (m *mockModule) OnChanOpenConfirm(ctx context.Context, portID, channelID string) error { return nil }

func (m *mockModule) OnChanCloseInit(ctx context.Context, portID, channelID string) error { return nil }

func (m *mockModule) OnChanCloseConfirm(ctx context.Context, portID, channelID string) error { return nil }

func (m *mockModule) OnRecvPacket(ctx context.Context, packet channeltypes.Packet, relayer string) *channeltypes.Acknowledgement {
	ack := channeltypes.NewResultAcknowledgement(append([]byte("ack:"), packet.Data...))
	return &ack
}

func (m *mockModule) OnAcknowledgementPacket(ctx context.Context, packet channeltypes.Packet, acknowledgement []byte, relayer string) error {
	m.acked = append(m.acked, packet)
	return nil
}

func (m *mockModule) OnTimeoutPacket(ctx context.Context, packet channeltypes.Packet, relayer string) error {
	m.timedOut = append(m.timedOut, packet)
	return nil
}

// endpoint bundles one side of a channel/packet exchange: a chain with its
// own client, connection and channel keepers, standing in for one of the
// two chains a relayer would otherwise shuttle proofs between.
type endpoint struct {
	chain      *ibctesting.Chain
	clientK    clientkeeper.Keeper
	connK      connkeeper.Keeper
	chanK      chankeeper.Keeper
	module     *mockModule
	clientID   string
	nextHeight uint64
}

func newEndpoint(t *testing.T, name string) *endpoint {
	t.Helper()
	mocktypes.RegisterInterfaces()
	storeKey := storetypes.NewKVStoreKey("ibc-04-channel-test-" + name)
	chain := ibctesting.NewChain(name, storeKey)
	clientK := clientkeeper.NewKeeper(chain.StoreService())
	connK := connkeeper.NewKeeper(chain.StoreService(), clientK)

	module := &mockModule{version: "ics20-1"}
	router := portkeeper.NewRouter()
	router.AddRoute(portID, module)
	chanK := chankeeper.NewKeeper(chain.StoreService(), clientK, connK, router)

	clientState := mocktypes.NewClientState(mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 1})
	consState := mocktypes.NewConsensusState(
		exported.Timestamp(chain.Context().BlockTime().UnixNano()),
		mocktypes.NewRoot(nil),
	)
	clientStateAny, err := mocktypes.NewClientStateAny(*clientState)
	require.NoError(t, err)
	consStateAny, err := mocktypes.NewConsensusStateAny(*consState)
	require.NoError(t, err)

	clientID, err := clientK.CreateClient(chain.Context(), clientStateAny, consStateAny)
	require.NoError(t, err)

	return &endpoint{chain: chain, clientK: clientK, connK: connK, chanK: chanK, module: module, clientID: clientID, nextHeight: 2}
}

// relay advances e's client tracking the counterparty to a fresh height
// whose root carries exactly the key/value pairs a verify call on e's side
// is about to look up, playing the role a relayer's header submission
// would otherwise play.
func (e *endpoint) relay(t *testing.T, values map[string][]byte) mocktypes.HeightPair {
	t.Helper()
	height := mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: e.nextHeight}
	e.nextHeight++

	e.chain.NextBlock(time.Second)
	header := mocktypes.Header{
		NewHeight:    height,
		NewTimestamp: exported.Timestamp(e.chain.Context().BlockTime().UnixNano()),
		NewRoot:      mocktypes.NewRoot(values),
	}
	headerAny, err := mocktypes.NewHeaderAny(header)
	require.NoError(t, err)
	require.NoError(t, e.clientK.UpdateClient(e.chain.Context(), e.clientID, headerAny))
	return height
}

// setOpenConnection seeds an already-Open ConnectionEnd directly, skipping
// the ICS-03 handshake this package's tests have no interest in re-driving.
func (e *endpoint) setOpenConnection(t *testing.T, connID, counterpartyClientID, counterpartyConnID string, delayPeriod uint64) {
	t.Helper()
	conn := connectiontypes.ConnectionEnd{
		State:    connectiontypes.Open,
		ClientID: e.clientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID:     counterpartyClientID,
			ConnectionID: counterpartyConnID,
			Prefix:       []byte("ibc"),
		},
		Versions:    []connectiontypes.Version{connectiontypes.DefaultVersion()},
		DelayPeriod: delayPeriod,
	}
	require.NoError(t, e.connK.Connections.Set(e.chain.Context(), connID, conn))
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	bz, err := json.Marshal(v)
	require.NoError(t, err)
	return bz
}

// TestChannelHandshake drives ChanOpenInit -> ChanOpenTry -> ChanOpenAck ->
// ChanOpenConfirm across two independent endpoints sharing a pre-seeded
// Open connection, feeding each verify step exactly the ChannelEnd the
// counterparty keeper would actually have stored.
func TestChannelHandshake(t *testing.T) {
	requireT := require.New(t)

	chainA := newEndpoint(t, "chainA")
	chainB := newEndpoint(t, "chainB")

	connIDA, connIDB := "connection-0", "connection-0"
	chainA.setOpenConnection(t, connIDA, chainB.clientID, connIDB, 0)
	chainB.setOpenConnection(t, connIDB, chainA.clientID, connIDA, 0)

	// --- ChanOpenInit on A ---
	channelIDA, err := chainA.chanK.ChanOpenInit(
		chainA.chain.Context(),
		portID,
		channeltypes.Unordered,
		[]string{connIDA},
		channeltypes.Counterparty{PortID: portID, ChannelID: ""},
		"ics20-1",
	)
	requireT.NoError(err)

	channelOnA, err := chainA.chanK.Channel(chainA.chain.Context(), portID, channelIDA)
	requireT.NoError(err)
	requireT.Equal(channeltypes.Init, channelOnA.State)

	// --- ChanOpenTry on B ---
	expectedChannelOnA := channeltypes.ChannelEnd{
		State:          channeltypes.Init,
		Ordering:       channeltypes.Unordered,
		Counterparty:   channeltypes.Counterparty{PortID: portID, ChannelID: ""},
		ConnectionHops: []string{connIDA},
		Version:        "ics20-1",
	}
	channelValueA := mustMarshal(t, expectedChannelOnA)
	proofHeightB := chainB.relay(t, map[string][]byte{
		"ibc/" + host.ChannelPath(portID, channelIDA): channelValueA,
	})

	channelIDB, err := chainB.chanK.ChanOpenTry(
		chainB.chain.Context(),
		portID,
		channeltypes.Unordered,
		[]string{connIDB},
		channeltypes.Counterparty{PortID: portID, ChannelID: channelIDA},
		"ics20-1",
		channelValueA,
		proofHeightB,
	)
	requireT.NoError(err)

	channelOnB, err := chainB.chanK.Channel(chainB.chain.Context(), portID, channelIDB)
	requireT.NoError(err)
	requireT.Equal(channeltypes.TryOpen, channelOnB.State)

	// --- ChanOpenAck on A ---
	expectedChannelOnB := channeltypes.ChannelEnd{
		State:          channeltypes.TryOpen,
		Ordering:       channeltypes.Unordered,
		Counterparty:   channeltypes.Counterparty{PortID: portID, ChannelID: channelIDA},
		ConnectionHops: []string{connIDB},
		Version:        "ics20-1",
	}
	channelValueB := mustMarshal(t, expectedChannelOnB)
	proofHeightA := chainA.relay(t, map[string][]byte{
		"ibc/" + host.ChannelPath(portID, channelIDB): channelValueB,
	})

	err = chainA.chanK.ChanOpenAck(
		chainA.chain.Context(),
		portID, channelIDA,
		channelIDB, "ics20-1",
		channelValueB, proofHeightA,
	)
	requireT.NoError(err)

	channelOnA, err = chainA.chanK.Channel(chainA.chain.Context(), portID, channelIDA)
	requireT.NoError(err)
	requireT.Equal(channeltypes.Open, channelOnA.State)
	requireT.Equal(channelIDB, channelOnA.Counterparty.ChannelID)

	// --- ChanOpenConfirm on B ---
	expectedChannelOnAOpen := channeltypes.ChannelEnd{
		State:          channeltypes.Open,
		Ordering:       channeltypes.Unordered,
		Counterparty:   channeltypes.Counterparty{PortID: portID, ChannelID: channelIDB},
		ConnectionHops: []string{connIDA},
		Version:        "ics20-1",
	}
	ackValue := mustMarshal(t, expectedChannelOnAOpen)
	proofHeightB2 := chainB.relay(t, map[string][]byte{
		"ibc/" + host.ChannelPath(portID, channelIDA): ackValue,
	})

	err = chainB.chanK.ChanOpenConfirm(chainB.chain.Context(), portID, channelIDB, ackValue, proofHeightB2)
	requireT.NoError(err)

	channelOnB, err = chainB.chanK.Channel(chainB.chain.Context(), portID, channelIDB)
	requireT.NoError(err)
	requireT.Equal(channeltypes.Open, channelOnB.State)
}
