// Package types assembles the ICS-02/03/04/05 sub-keepers into the single
// host-facing surface applications and message handlers are built against.
package types

import (
	"context"
	"time"

	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clientkeeper "github.com/meridian-chain/ibc-core/modules/core/02-client/keeper"
	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
	connkeeper "github.com/meridian-chain/ibc-core/modules/core/03-connection/keeper"
	chankeeper "github.com/meridian-chain/ibc-core/modules/core/04-channel/keeper"
	portkeeper "github.com/meridian-chain/ibc-core/modules/core/05-port/keeper"
	"github.com/meridian-chain/ibc-core/modules/core/exported"

	"github.com/meridian-chain/ibc-core/internal/storeutil"
)

// Store prefixes separating the three sub-keepers' collections.Schema
// numbering, which each restarts at collections.NewPrefix(0) on its own.
var (
	clientStorePrefix     = []byte{0x01}
	connectionStorePrefix = []byte{0x02}
	channelStorePrefix    = []byte{0x03}
)

// Keeper is the aggregate ValidationContext/ExecutionContext host surface:
// it owns one sub-keeper per ICS this module implements, plus the port
// Router applications bind to, and exposes the handful of host-clock and
// signer-validation methods none of the sub-keepers own individually.
type Keeper struct {
	ClientKeeper     clientkeeper.Keeper
	ConnectionKeeper connkeeper.Keeper
	ChannelKeeper    chankeeper.Keeper
	Router           *portkeeper.Router
}

// NewKeeper builds the aggregate Keeper over a single shared store
// service, giving each sub-keeper a distinctly-prefixed view of it so
// their independently-numbered collections never collide.
func NewKeeper(storeService corestore.KVStoreService, router *portkeeper.Router) Keeper {
	clientK := clientkeeper.NewKeeper(storeutil.NewPrefixKVStoreService(storeService, clientStorePrefix))
	connK := connkeeper.NewKeeper(storeutil.NewPrefixKVStoreService(storeService, connectionStorePrefix), clientK)
	chanK := chankeeper.NewKeeper(storeutil.NewPrefixKVStoreService(storeService, channelStorePrefix), clientK, connK, router)

	return Keeper{
		ClientKeeper:     clientK,
		ConnectionKeeper: connK,
		ChannelKeeper:    chanK,
		Router:           router,
	}
}

// HostHeight is this chain's own current height, the revision number
// always held at 0: this module does not model chain upgrades.
func (k Keeper) HostHeight(ctx context.Context) exported.Height {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return clienttypes.NewHeight(0, uint64(sdkCtx.BlockHeight()))
}

// HostTimestamp is this chain's own current block time.
func (k Keeper) HostTimestamp(ctx context.Context) exported.Timestamp {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	t := sdkCtx.BlockTime()
	if t.IsZero() {
		return 0
	}
	return exported.Timestamp(t.UnixNano())
}

// MaxExpectedTimePerBlock returns this host's block-time estimate, used to
// convert a connection's delay_period into a number of blocks.
func (k Keeper) MaxExpectedTimePerBlock() time.Duration {
	return k.ChannelKeeper.MaxExpectedTimePerBlock
}

// ValidateMessageSigner checks that a message's signer field parses as an
// account address this host recognizes.
func (k Keeper) ValidateMessageSigner(signer string) error {
	if _, err := sdk.AccAddressFromBech32(signer); err != nil {
		return errorsmod.Wrapf(ErrInvalidSigner, "signer %s: %v", signer, err)
	}
	return nil
}
