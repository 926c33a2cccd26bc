package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-chain/ibc-core/apps/transfer/types"
)

func TestParsePrefixedDenomNoTrace(t *testing.T) {
	requireT := require.New(t)

	d := types.ParsePrefixedDenom("stake")
	requireT.Empty(d.Trace)
	requireT.Equal("stake", d.BaseDenom)
	requireT.Equal("stake", d.String())
}

func TestParsePrefixedDenomWithTrace(t *testing.T) {
	requireT := require.New(t)

	d := types.ParsePrefixedDenom("transfer/channel-0/transfer/channel-7/stake")
	requireT.Equal([]types.Trace{
		{PortID: "transfer", ChannelID: "channel-0"},
		{PortID: "transfer", ChannelID: "channel-7"},
	}, d.Trace)
	requireT.Equal("stake", d.BaseDenom)
	requireT.Equal("transfer/channel-0/transfer/channel-7/stake", d.String())
}

func TestPrefixedDenomAddAndRemovePrefix(t *testing.T) {
	requireT := require.New(t)

	base := types.ParsePrefixedDenom("stake")
	withHop := base.AddPrefix("transfer", "channel-0")
	requireT.True(withHop.HasPrefix("transfer", "channel-0"))
	requireT.Equal("transfer/channel-0/stake", withHop.String())

	stripped := withHop.RemovePrefix()
	requireT.Equal(base, stripped)
}
