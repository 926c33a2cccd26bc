package types

import (
	"context"

	connectiontypes "github.com/meridian-chain/ibc-core/modules/core/03-connection/types"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

// ClientKeeper is the subset of the 02-client keeper the channel handshake
// and packet flow depend on.
type ClientKeeper interface {
	ClientState(ctx context.Context, clientID string) (exported.ClientState, error)
	ConsensusState(ctx context.Context, clientID string, height exported.Height) (exported.ConsensusState, error)
	Status(ctx context.Context, clientID string) (exported.Status, error)
	ValidateProofHeight(ctx context.Context, clientID string, proofHeight exported.Height) error
}

// ConnectionKeeper is the subset of the 03-connection keeper the channel
// handshake and packet flow depend on: every channel runs over exactly one
// already-open connection.
type ConnectionKeeper interface {
	Connection(ctx context.Context, connectionID string) (connectiontypes.ConnectionEnd, error)
}
