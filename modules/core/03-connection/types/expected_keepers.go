package types

import (
	"context"

	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

// ClientKeeper is the subset of the 02-client keeper the connection
// handshake depends on.
type ClientKeeper interface {
	ClientState(ctx context.Context, clientID string) (exported.ClientState, error)
	ConsensusState(ctx context.Context, clientID string, height exported.Height) (exported.ConsensusState, error)
	Status(ctx context.Context, clientID string) (exported.Status, error)
	ValidateProofHeight(ctx context.Context, clientID string, proofHeight exported.Height) error
}
