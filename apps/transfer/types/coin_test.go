package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-chain/ibc-core/apps/transfer/types"
)

func TestParseCoin(t *testing.T) {
	requireT := require.New(t)

	coin, err := types.ParseCoin("123stake")
	requireT.NoError(err)
	requireT.Equal("stake", coin.Denom)
	requireT.Equal("123", coin.Amount.String())

	coin, err = types.ParseCoin("0x1/:.-_")
	requireT.NoError(err)
	requireT.Equal("x1/:.-_", coin.Denom)
	requireT.Equal("0", coin.Amount.String())

	_, err = types.ParseCoin("0x!")
	requireT.Error(err)

	_, err = types.ParseCoin("1a1")
	requireT.Error(err, "denom below the 3-character minimum is rejected")
}

func TestParseCoinRoundTrip(t *testing.T) {
	requireT := require.New(t)

	for _, s := range []string{"123stake", "999den0m", "0transfer/channel-0/atom"} {
		coin, err := types.ParseCoin(s)
		requireT.NoError(err)
		requireT.Equal(s, coin.String())
	}
}

func TestParseCoins(t *testing.T) {
	requireT := require.New(t)

	coins, err := types.ParseCoins("123stake,999den0m,1transfer/channel-0")
	requireT.NoError(err)
	requireT.Len(coins, 3)
	requireT.Equal("stake", coins[0].Denom)
	requireT.Equal("123", coins[0].Amount.String())
	requireT.Equal("den0m", coins[1].Denom)
	requireT.Equal("999", coins[1].Amount.String())
	requireT.Equal("transfer/channel-0", coins[2].Denom)
}

func TestParseCoinsRejectsAnyInvalidMember(t *testing.T) {
	requireT := require.New(t)

	_, err := types.ParseCoins("123stake,0x!")
	requireT.Error(err)
}
