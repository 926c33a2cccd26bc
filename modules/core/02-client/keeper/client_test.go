package keeper_test

import (
	"testing"
	"time"

	storetypes "cosmossdk.io/store/types"
	"github.com/stretchr/testify/require"

	"github.com/meridian-chain/ibc-core/modules/core/02-client/keeper"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
	ibctesting "github.com/meridian-chain/ibc-core/testing"

	mocktypes "github.com/meridian-chain/ibc-core/modules/light-clients/mock/types"
)

func newTestKeeper(t *testing.T) (keeper.Keeper, *ibctesting.Chain) {
	t.Helper()
	mocktypes.RegisterInterfaces()
	storeKey := storetypes.NewKVStoreKey("ibc-02-client-test")
	chain := ibctesting.NewChain("testchain", storeKey)
	return keeper.NewKeeper(chain.StoreService()), chain
}

func TestCreateClient(t *testing.T) {
	requireT := require.New(t)
	k, chain := newTestKeeper(t)

	clientState := mocktypes.NewClientState(mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 1})
	consState := mocktypes.NewConsensusState(exported.Timestamp(chain.Context().BlockTime().UnixNano()), mocktypes.NewRoot(map[string][]byte{"a": []byte("b")}))

	clientStateAny, err := mocktypes.NewClientStateAny(*clientState)
	requireT.NoError(err)
	consStateAny, err := mocktypes.NewConsensusStateAny(*consState)
	requireT.NoError(err)

	clientID, err := k.CreateClient(chain.Context(), clientStateAny, consStateAny)
	requireT.NoError(err)
	requireT.Contains(clientID, mocktypes.ClientTypeMock)

	status, err := k.Status(chain.Context(), clientID)
	requireT.NoError(err)
	requireT.Equal(exported.Active, status)
}

func TestUpdateClient(t *testing.T) {
	requireT := require.New(t)
	k, chain := newTestKeeper(t)

	initHeight := mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 1}
	clientState := mocktypes.NewClientState(initHeight)
	now := exported.Timestamp(chain.Context().BlockTime().UnixNano())
	consState := mocktypes.NewConsensusState(now, mocktypes.NewRoot(nil))

	clientStateAny, err := mocktypes.NewClientStateAny(*clientState)
	requireT.NoError(err)
	consStateAny, err := mocktypes.NewConsensusStateAny(*consState)
	requireT.NoError(err)

	clientID, err := k.CreateClient(chain.Context(), clientStateAny, consStateAny)
	requireT.NoError(err)

	chain.NextBlock(5 * time.Second)

	header := mocktypes.Header{
		NewHeight:    mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 2},
		NewTimestamp: exported.Timestamp(chain.Context().BlockTime().UnixNano()),
		NewRoot:      mocktypes.NewRoot(map[string][]byte{"x": []byte("y")}),
	}
	headerAny, err := mocktypes.NewHeaderAny(header)
	requireT.NoError(err)

	requireT.NoError(k.UpdateClient(chain.Context(), clientID, headerAny))

	updated, err := k.ClientState(chain.Context(), clientID)
	requireT.NoError(err)
	requireT.True(updated.GetLatestHeight().EQ(header.NewHeight))
}

func TestUpdateClientRejectsStaleHeader(t *testing.T) {
	requireT := require.New(t)
	k, chain := newTestKeeper(t)

	clientState := mocktypes.NewClientState(mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 5})
	now := exported.Timestamp(chain.Context().BlockTime().UnixNano())
	consState := mocktypes.NewConsensusState(now, mocktypes.NewRoot(nil))

	clientStateAny, err := mocktypes.NewClientStateAny(*clientState)
	requireT.NoError(err)
	consStateAny, err := mocktypes.NewConsensusStateAny(*consState)
	requireT.NoError(err)

	clientID, err := k.CreateClient(chain.Context(), clientStateAny, consStateAny)
	requireT.NoError(err)

	staleHeader := mocktypes.Header{
		NewHeight:    mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 3},
		NewTimestamp: now,
		NewRoot:      mocktypes.NewRoot(nil),
	}
	headerAny, err := mocktypes.NewHeaderAny(staleHeader)
	requireT.NoError(err)

	requireT.Error(k.UpdateClient(chain.Context(), clientID, headerAny))
}

func TestSubmitMisbehaviourFreezesClient(t *testing.T) {
	requireT := require.New(t)
	k, chain := newTestKeeper(t)

	clientState := mocktypes.NewClientState(mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 1})
	now := exported.Timestamp(chain.Context().BlockTime().UnixNano())
	consState := mocktypes.NewConsensusState(now, mocktypes.NewRoot(nil))

	clientStateAny, err := mocktypes.NewClientStateAny(*clientState)
	requireT.NoError(err)
	consStateAny, err := mocktypes.NewConsensusStateAny(*consState)
	requireT.NoError(err)

	clientID, err := k.CreateClient(chain.Context(), clientStateAny, consStateAny)
	requireT.NoError(err)

	conflictHeight := mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 2}
	misbehaviour := mocktypes.Misbehaviour{
		Header1: mocktypes.Header{NewHeight: conflictHeight, NewTimestamp: now, NewRoot: mocktypes.NewRoot(map[string][]byte{"a": []byte("1")})},
		Header2: mocktypes.Header{NewHeight: conflictHeight, NewTimestamp: now, NewRoot: mocktypes.NewRoot(map[string][]byte{"a": []byte("2")})},
	}
	misbehaviourAny, err := mocktypes.NewMisbehaviourAny(misbehaviour)
	requireT.NoError(err)

	requireT.NoError(k.SubmitMisbehaviour(chain.Context(), clientID, misbehaviourAny))

	status, err := k.Status(chain.Context(), clientID)
	requireT.NoError(err)
	requireT.Equal(exported.Frozen, status)
}
