package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/meridian-chain/ibc-core/apps/transfer/types"
)

func TestParseAmount(t *testing.T) {
	requireT := require.New(t)

	amount, err := types.ParseAmount("123")
	requireT.NoError(err)
	requireT.True(amount.Equal(sdkmath.NewInt(123)))

	_, err = types.ParseAmount("not-a-number")
	requireT.Error(err)

	_, err = types.ParseAmount("-1")
	requireT.Error(err)
}

func TestNewAmount(t *testing.T) {
	requireT := require.New(t)

	amount := types.NewAmount(sdkmath.NewInt(42))
	requireT.Equal("42", amount.String())
}
