// Package testing provides an in-memory two-chain harness for exercising
// the client/connection/channel state machines without a running node:
// a bare CommitMultiStore per simulated chain, wrapped the same way a
// real host's runtime wraps its keepers' store access.
package testing

import (
	"time"

	"cosmossdk.io/log"
	corestore "cosmossdk.io/core/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Chain wraps a single in-memory store plus the sdk.Context keepers read
// and write through, standing in for one side of a simulated IBC
// handshake/packet flow.
type Chain struct {
	ChainID string
	cms     storetypes.CommitMultiStore
	key     *storetypes.KVStoreKey
	ctx     sdk.Context
}

// NewChain mounts a single store under the given key and returns a Chain
// whose Context() starts at height 1.
func NewChain(chainID string, storeKey *storetypes.KVStoreKey) *Chain {
	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, log.NewNopLogger(), storemetrics.NewNoOpMetrics())
	cms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := cms.LoadLatestVersion(); err != nil {
		panic(err)
	}

	header := cmtproto.Header{ChainID: chainID, Height: 1, Time: time.Now().UTC()}
	ctx := sdk.NewContext(cms, header, false, log.NewNopLogger())

	return &Chain{ChainID: chainID, cms: cms, key: storeKey, ctx: ctx}
}

// Context returns the chain's current sdk.Context.
func (c *Chain) Context() sdk.Context { return c.ctx }

// StoreService returns a KVStoreService over the chain's mounted store, the
// same adapter cosmossdk.io/collections keepers are built against in a
// real host runtime.
func (c *Chain) StoreService() corestore.KVStoreService {
	return runtime.NewKVStoreService(c.key)
}

// NextBlock advances the chain's context by one height and by the given
// amount of wall-clock time, simulating block production between the
// messages a test sends.
func (c *Chain) NextBlock(dt time.Duration) {
	header := cmtproto.Header{
		ChainID: c.ChainID,
		Height:  c.ctx.BlockHeight() + 1,
		Time:    c.ctx.BlockTime().Add(dt),
	}
	c.ctx = sdk.NewContext(c.cms, header, false, log.NewNopLogger())
}
