package keeper_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	storetypes "cosmossdk.io/store/types"
	"github.com/stretchr/testify/require"

	clientkeeper "github.com/meridian-chain/ibc-core/modules/core/02-client/keeper"
	connkeeper "github.com/meridian-chain/ibc-core/modules/core/03-connection/keeper"
	connectiontypes "github.com/meridian-chain/ibc-core/modules/core/03-connection/types"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
	ibctesting "github.com/meridian-chain/ibc-core/testing"

	mocktypes "github.com/meridian-chain/ibc-core/modules/light-clients/mock/types"
)

// endpoint bundles one side of the handshake: a chain with its own client
// and connection keepers, standing in for one of the two chains a relayer
// would otherwise shuttle proofs between.
type endpoint struct {
	chain      *ibctesting.Chain
	clientK    clientkeeper.Keeper
	connK      connkeeper.Keeper
	clientID   string // this chain's client tracking the counterparty
	nextHeight uint64
}

func newEndpoint(t *testing.T, name string) *endpoint {
	t.Helper()
	mocktypes.RegisterInterfaces()
	storeKey := storetypes.NewKVStoreKey("ibc-03-connection-test-" + name)
	chain := ibctesting.NewChain(name, storeKey)
	clientK := clientkeeper.NewKeeper(chain.StoreService())
	connK := connkeeper.NewKeeper(chain.StoreService(), clientK)

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

	return &endpoint{chain: chain, clientK: clientK, connK: connK, clientID: clientID, nextHeight: 2}
}

// relay advances e's client tracking the counterparty to a fresh height
// whose root carries exactly the key/value pairs a verify call on e's side
// is about to look up. This plays the role a relayer's header submission
// would play, without needing a live second chain to produce that header.
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

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	bz, err := json.Marshal(v)
	require.NoError(t, err)
	return bz
}

// TestConnectionHandshake drives OpenInit -> OpenTry -> OpenAck ->
// OpenConfirm across two independent endpoints, feeding each verify step
// exactly the root entries and proof bytes the mock client requires to
// accept a membership check.
func TestConnectionHandshake(t *testing.T) {
	requireT := require.New(t)

	chainA := newEndpoint(t, "chainA")
	chainB := newEndpoint(t, "chainB")

	prefix := []byte("ibc")
	versions := []connectiontypes.Version{connectiontypes.DefaultVersion()}

	// --- OpenInit on A ---
	connIDA, err := chainA.connK.ConnOpenInit(
		chainA.chain.Context(),
		chainA.clientID,
		connectiontypes.Counterparty{ClientID: chainB.clientID, ConnectionID: "", Prefix: prefix},
		nil,
		0,
	)
	requireT.NoError(err)

	connA, err := chainA.connK.Connection(chainA.chain.Context(), connIDA)
	requireT.NoError(err)
	requireT.Equal(connectiontypes.Init, connA.State)

	// --- OpenTry on B ---
	// B's client tracking A (chainB.clientID) must see, at the proof
	// height, A's ConnectionEnd(connIDA), A's ClientState of B and an
	// (empty) consensus state of B, at the paths verifyConnectionState /
	// verifyClientState / verifyClientConsensusState look up.
	expectedConnOnA := connectiontypes.ConnectionEnd{
		State:    connectiontypes.Init,
		ClientID: chainA.clientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID:     chainB.clientID,
			ConnectionID: "",
			Prefix:       prefix,
		},
		Versions:    versions,
		DelayPeriod: 0,
	}
	connStateValue := mustMarshal(t, expectedConnOnA)

	clientStateOfBOnA := mocktypes.NewClientState(mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 1})
	clientStateOfBOnAAny, err := mocktypes.NewClientStateAny(*clientStateOfBOnA)
	requireT.NoError(err)

	consensusHeightOfBOnA := mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 1}

	// Paths are rooted under the counterparty's own client id (chainA's
	// client tracking B), the id verifyClientState/verifyClientConsensusState
	// build their lookup from, not the local client id whose root is read.
	proofHeightB := chainB.relay(t, map[string][]byte{
		"ibc/" + connPathRel(connIDA):                   connStateValue,
		"ibc/" + clientStatePathRel(chainA.clientID):     []byte(clientStateOfBOnAAny.Value),
		"ibc/" + consStatePathRel(chainA.clientID, 0, 1): nil,
	})

	connIDB, err := chainB.connK.ConnOpenTry(
		chainB.chain.Context(),
		chainB.clientID,
		clientStateOfBOnAAny,
		connectiontypes.Counterparty{ClientID: chainA.clientID, ConnectionID: connIDA, Prefix: prefix},
		0,
		versions,
		proofHeightB,
		connStateValue,
		[]byte(clientStateOfBOnAAny.Value),
		nil,
		consensusHeightOfBOnA,
	)
	requireT.NoError(err)

	connB, err := chainB.connK.Connection(chainB.chain.Context(), connIDB)
	requireT.NoError(err)
	requireT.Equal(connectiontypes.TryOpen, connB.State)

	// --- OpenAck on A ---
	expectedConnOnB := connectiontypes.ConnectionEnd{
		State:    connectiontypes.TryOpen,
		ClientID: chainB.clientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID:     chainA.clientID,
			ConnectionID: connIDA,
			Prefix:       prefix,
		},
		Versions:    versions,
		DelayPeriod: 0,
	}
	connStateValueB := mustMarshal(t, expectedConnOnB)

	clientStateOfAOnB := mocktypes.NewClientState(mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 1})
	clientStateOfAOnBAny, err := mocktypes.NewClientStateAny(*clientStateOfAOnB)
	requireT.NoError(err)
	consensusHeightOfAOnB := mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 1}

	proofHeightA := chainA.relay(t, map[string][]byte{
		"ibc/" + connPathRel(connIDB):                   connStateValueB,
		"ibc/" + clientStatePathRel(chainB.clientID):     []byte(clientStateOfAOnBAny.Value),
		"ibc/" + consStatePathRel(chainB.clientID, 0, 1): nil,
	})

	err = chainA.connK.ConnOpenAck(
		chainA.chain.Context(),
		connIDA,
		connIDB,
		versions[0],
		clientStateOfAOnBAny,
		proofHeightA,
		connStateValueB,
		[]byte(clientStateOfAOnBAny.Value),
		nil,
		consensusHeightOfAOnB,
	)
	requireT.NoError(err)

	connA, err = chainA.connK.Connection(chainA.chain.Context(), connIDA)
	requireT.NoError(err)
	requireT.Equal(connectiontypes.Open, connA.State)
	requireT.Equal(connIDB, connA.Counterparty.ConnectionID)

	// --- OpenConfirm on B ---
	expectedConnOnAOpen := connectiontypes.ConnectionEnd{
		State:    connectiontypes.Open,
		ClientID: chainA.clientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID:     chainB.clientID,
			ConnectionID: connIDB,
			Prefix:       prefix,
		},
		Versions:    versions,
		DelayPeriod: 0,
	}
	ackValue := mustMarshal(t, expectedConnOnAOpen)

	proofHeightB2 := chainB.relay(t, map[string][]byte{
		"ibc/" + connPathRel(connIDA): ackValue,
	})

	err = chainB.connK.ConnOpenConfirm(chainB.chain.Context(), connIDB, ackValue, proofHeightB2)
	requireT.NoError(err)

	connB, err = chainB.connK.Connection(chainB.chain.Context(), connIDB)
	requireT.NoError(err)
	requireT.Equal(connectiontypes.Open, connB.State)
}

func connPathRel(connectionID string) string    { return "connections/" + connectionID }
func clientStatePathRel(clientID string) string { return "clients/" + clientID + "/clientState" }
func consStatePathRel(clientID string, rev, h uint64) string {
	return fmt.Sprintf("clients/%s/consensusStates/%d-%d", clientID, rev, h)
}
