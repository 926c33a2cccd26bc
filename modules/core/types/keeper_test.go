package types_test

import (
	"testing"

	storetypes "cosmossdk.io/store/types"
	"github.com/stretchr/testify/require"

	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
	portkeeper "github.com/meridian-chain/ibc-core/modules/core/05-port/keeper"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
	coretypes "github.com/meridian-chain/ibc-core/modules/core/types"
	ibctesting "github.com/meridian-chain/ibc-core/testing"

	mocktypes "github.com/meridian-chain/ibc-core/modules/light-clients/mock/types"
)

const validSigner = "cosmos14qxhtj938kyl2awp3fpul67g7qk6sr4lplpnm6"

func newTestKeeper(t *testing.T, name string) (coretypes.Keeper, *ibctesting.Chain) {
	t.Helper()
	mocktypes.RegisterInterfaces()
	storeKey := storetypes.NewKVStoreKey("ibc-core-test-" + name)
	chain := ibctesting.NewChain(name, storeKey)
	return coretypes.NewKeeper(chain.StoreService(), portkeeper.NewRouter()), chain
}

// TestPrefixIsolation proves NewKeeper's three sub-keepers, sharing one
// underlying store service, cannot see each other's entries even when
// seeded under the identical raw collections key.
func TestPrefixIsolation(t *testing.T) {
	requireT := require.New(t)
	chain := ibctesting.NewChain("prefix-test", storetypes.NewKVStoreKey("ibc-core-test-2"))
	k := coretypes.NewKeeper(chain.StoreService(), portkeeper.NewRouter())
	ctx := chain.Context()

	clientState := mocktypes.NewClientState(mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 1})
	clientStateAny, err := mocktypes.NewClientStateAny(*clientState)
	requireT.NoError(err)
	requireT.NoError(k.ClientKeeper.ClientStates.Set(ctx, "dup", clientStateAny))

	hasClient, err := k.ClientKeeper.ClientStates.Has(ctx, "dup")
	requireT.NoError(err)
	requireT.True(hasClient)

	// A connection keyed "dup" lives under a disjoint store prefix from
	// the client keyed "dup" above: the connection keeper must report no
	// entry there, proving the two sub-keepers' prefix-0 collections
	// schemas never collided on the shared underlying store.
	hasConn, err := k.ConnectionKeeper.Connections.Has(ctx, "dup")
	requireT.NoError(err)
	requireT.False(hasConn)
}

// TestHandleMsgClientLifecycle drives CreateClient then UpdateClient
// through the Any-dispatch entry point, proving HandleMsg correctly
// decodes by type_url and reaches the owning sub-keeper.
func TestHandleMsgClientLifecycle(t *testing.T) {
	requireT := require.New(t)
	mocktypes.RegisterInterfaces()
	chain := ibctesting.NewChain("dispatch-test", storetypes.NewKVStoreKey("ibc-core-test-3"))
	k := coretypes.NewKeeper(chain.StoreService(), portkeeper.NewRouter())
	ms := coretypes.NewMsgServer(k)
	ctx := chain.Context()

	clientState := mocktypes.NewClientState(mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 1})
	consState := mocktypes.NewConsensusState(exported.Timestamp(ctx.BlockTime().UnixNano()), mocktypes.NewRoot(nil))
	clientStateAny, err := mocktypes.NewClientStateAny(*clientState)
	requireT.NoError(err)
	consStateAny, err := mocktypes.NewConsensusStateAny(*consState)
	requireT.NoError(err)

	createMsg := clienttypes.MsgCreateClient{
		ClientState:    clientStateAny,
		ConsensusState: consStateAny,
		Signer:         validSigner,
	}
	createAny, err := clienttypes.NewAny(clienttypes.TypeMsgCreateClient, createMsg)
	requireT.NoError(err)

	respAny, err := ms.HandleMsg(ctx, createAny)
	requireT.NoError(err)

	var created coretypes.IdentifierResponse
	requireT.NoError(respAny.Unmarshal(&created))
	requireT.NotEmpty(created.ID)

	_, err = k.ClientKeeper.ClientState(ctx, created.ID)
	requireT.NoError(err)

	chain.NextBlock(0)
	ctx = chain.Context()
	header := mocktypes.Header{
		NewHeight:    mocktypes.HeightPair{RevisionNumber: 0, RevisionHeight: 2},
		NewTimestamp: exported.Timestamp(ctx.BlockTime().UnixNano()),
		NewRoot:      mocktypes.NewRoot(nil),
	}
	headerAny, err := mocktypes.NewHeaderAny(header)
	requireT.NoError(err)

	updateMsg := clienttypes.MsgUpdateClient{
		ClientID:      created.ID,
		ClientMessage: headerAny,
		Signer:        validSigner,
	}
	updateAny, err := clienttypes.NewAny(clienttypes.TypeMsgUpdateClient, updateMsg)
	requireT.NoError(err)

	respAny, err = ms.HandleMsg(ctx, updateAny)
	requireT.NoError(err)
	requireT.NotNil(respAny)
}

// TestHandleMsgUnknownTypeURL proves an unrecognized type_url is rejected
// rather than silently ignored.
func TestHandleMsgUnknownTypeURL(t *testing.T) {
	requireT := require.New(t)
	k, chain := newTestKeeper(t, "unknown-type-test")
	ms := coretypes.NewMsgServer(k)

	_, err := ms.HandleMsg(chain.Context(), clienttypes.Any{TypeURL: "/not.a.real.Msg", Value: []byte("{}")})
	requireT.Error(err)
}

// TestValidateMessageSignerRejectsGarbage proves a malformed signer fails
// before any sub-keeper is invoked.
func TestValidateMessageSignerRejectsGarbage(t *testing.T) {
	requireT := require.New(t)
	k, chain := newTestKeeper(t, "signer-test")
	ms := coretypes.NewMsgServer(k)

	createMsg := clienttypes.MsgCreateClient{Signer: "not-a-bech32-address"}
	createAny, err := clienttypes.NewAny(clienttypes.TypeMsgCreateClient, createMsg)
	requireT.NoError(err)

	_, err = ms.HandleMsg(chain.Context(), createAny)
	requireT.Error(err)
}
