// Package keeper implements the ICS-03 connection handshake: OpenInit,
// OpenTry, OpenAck and OpenConfirm.
package keeper

import (
	"context"

	"cosmossdk.io/collections"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"

	"github.com/meridian-chain/ibc-core/internal/collcodec"
	connectiontypes "github.com/meridian-chain/ibc-core/modules/core/03-connection/types"
)

// Keeper owns connection-end storage and the sequence used to allocate
// fresh ConnectionIds.
type Keeper struct {
	Schema collections.Schema

	ClientKeeper connectiontypes.ClientKeeper

	Connections       collections.Map[string, connectiontypes.ConnectionEnd]
	NextConnectionSeq collections.Sequence
}

// NewKeeper builds the ICS-03 keeper over the given store service.
func NewKeeper(storeService corestore.KVStoreService, clientKeeper connectiontypes.ClientKeeper) Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		ClientKeeper: clientKeeper,
		Connections: collections.NewMap(
			sb, collections.NewPrefix(0), "connections",
			collections.StringKey, collcodec.JSONValue[connectiontypes.ConnectionEnd](),
		),
		NextConnectionSeq: collections.NewSequence(sb, collections.NewPrefix(1), "next_connection_sequence"),
	}
	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema
	return k
}

// Connection loads a ConnectionEnd, failing if it isn't found.
func (k Keeper) Connection(ctx context.Context, connectionID string) (connectiontypes.ConnectionEnd, error) {
	conn, err := k.Connections.Get(ctx, connectionID)
	if err != nil {
		return connectiontypes.ConnectionEnd{}, errorsmod.Wrapf(connectiontypes.ErrConnectionNotFound, "connection %s: %v", connectionID, err)
	}
	return conn, nil
}
