package types

import (
	"regexp"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// coinRegexp is the wire grammar a coin literal must match: a decimal
// amount followed by a denom starting with a letter, 3 to 128 characters
// total, drawn from letters, digits and the '/', ':', '.', '_', '-'
// separators a PrefixedDenom trace uses.
var coinRegexp = regexp.MustCompile(`^([0-9]+)([a-zA-Z][a-zA-Z0-9/:._-]{2,127})$`)

// Coin is a token amount paired with the (possibly trace-prefixed) denom
// it is denominated in.
type Coin struct {
	Denom  string
	Amount Amount
}

// ParseCoin decodes a single `<amount><denom>` literal.
func ParseCoin(s string) (Coin, error) {
	m := coinRegexp.FindStringSubmatch(s)
	if m == nil {
		return Coin{}, errorsmod.Wrapf(ErrInvalidCoin, "%q does not match the coin grammar", s)
	}
	amount, err := ParseAmount(m[1])
	if err != nil {
		return Coin{}, errorsmod.Wrapf(ErrInvalidCoin, "%q: %v", s, err)
	}
	return Coin{Denom: m[2], Amount: amount}, nil
}

// ParseCoins decodes a comma-separated list of coin literals, in order.
func ParseCoins(s string) ([]Coin, error) {
	parts := strings.Split(s, ",")
	coins := make([]Coin, 0, len(parts))
	for _, p := range parts {
		coin, err := ParseCoin(p)
		if err != nil {
			return nil, err
		}
		coins = append(coins, coin)
	}
	return coins, nil
}

// String renders the coin as the literal ParseCoin accepts back.
func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}
