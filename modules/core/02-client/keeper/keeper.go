// Package keeper implements the ICS-02 light-client lifecycle: creation,
// update and misbehaviour handling.
package keeper

import (
	"context"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/meridian-chain/ibc-core/internal/collcodec"
	"github.com/meridian-chain/ibc-core/modules/core/exported"

	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
)

// storedAny is how ClientState/ConsensusState values are kept in the
// store: an Any envelope so any registered client type can be persisted
// polymorphically.
type storedAny = clienttypes.Any

// Keeper owns client lifecycle state: client states, consensus states,
// frozen heights and the client-id allocation sequence.
type Keeper struct {
	Schema collections.Schema

	ClientStates    collections.Map[string, storedAny]
	ConsensusStates collections.Map[collections.Pair[string, string], storedAny]
	FrozenHeights   collections.Map[string, clienttypes.Height]
	NextClientSeq   collections.Sequence
}

// NewKeeper builds the ICS-02 keeper over the given store service.
func NewKeeper(storeService corestore.KVStoreService) Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		ClientStates: collections.NewMap(
			sb, collections.NewPrefix(0), "client_states",
			collections.StringKey, collcodec.JSONValue[storedAny](),
		),
		ConsensusStates: collections.NewMap(
			sb, collections.NewPrefix(1), "consensus_states",
			collections.PairKeyCodec(collections.StringKey, collections.StringKey),
			collcodec.JSONValue[storedAny](),
		),
		FrozenHeights: collections.NewMap(
			sb, collections.NewPrefix(2), "frozen_heights",
			collections.StringKey, collcodec.JSONValue[clienttypes.Height](),
		),
		NextClientSeq: collections.NewSequence(sb, collections.NewPrefix(3), "next_client_sequence"),
	}
	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema
	return k
}

func consensusKey(clientID string, height exported.Height) collections.Pair[string, string] {
	return collections.Join(clientID, height.String())
}

// blockTime and blockHeight read off the sdk.Context, the one piece of
// host clock the client capability set needs.
func blockTime(ctx context.Context) exported.Timestamp {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	t := sdkCtx.BlockTime()
	if t.IsZero() {
		return 0
	}
	return exported.Timestamp(t.UnixNano())
}

func blockHeight(ctx context.Context) clienttypes.Height {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return clienttypes.NewHeight(0, uint64(sdkCtx.BlockHeight()))
}
