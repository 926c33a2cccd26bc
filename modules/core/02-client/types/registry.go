package types

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

// ClientCodec decodes the Any-wrapped values a single client type (tagged
// by ClientType, e.g. "00-mock") produces and consumes. The core dispatches
// to one of these exactly once, right after decoding the outer Any.
type ClientCodec interface {
	ClientType() string
	UnmarshalClientState(value []byte) (exported.ClientState, error)
	UnmarshalConsensusState(value []byte) (exported.ConsensusState, error)
	UnmarshalClientMessage(value []byte) (exported.ClientMessage, error)
}

var registry = map[string]ClientCodec{}

// RegisterClient registers a concrete light client implementation's codec
// under its ClientType tag. Host binaries call this once at start-up for
// every light client they support, the same way a Cosmos-SDK app registers
// light-client modules with the 02-client submodule's router.
func RegisterClient(codec ClientCodec) {
	registry[codec.ClientType()] = codec
}

// LookupClientCodec returns the registered codec for a client type, or
// ErrUnknownClientType.
func LookupClientCodec(clientType string) (ClientCodec, error) {
	codec, ok := registry[clientType]
	if !ok {
		return nil, errorsmod.Wrapf(ErrUnknownClientType, "no codec registered for client type %s", clientType)
	}
	return codec, nil
}
