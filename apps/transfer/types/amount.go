package types

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// Amount is a coin's arbitrary-precision, non-negative quantity, carried on
// the wire as a decimal string.
type Amount struct {
	sdkmath.Int
}

// NewAmount wraps an already-non-negative sdkmath.Int as an Amount.
func NewAmount(i sdkmath.Int) Amount {
	return Amount{Int: i}
}

// ParseAmount decodes a decimal string into an Amount, rejecting negative
// values and anything sdkmath.Int can't parse as a base-10 integer.
func ParseAmount(s string) (Amount, error) {
	i, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return Amount{}, errorsmod.Wrapf(ErrInvalidAmount, "%q is not a valid integer", s)
	}
	if i.IsNegative() {
		return Amount{}, errorsmod.Wrapf(ErrInvalidAmount, "%q is negative", s)
	}
	return Amount{Int: i}, nil
}

// String renders the amount as the decimal string ParseAmount accepts back.
func (a Amount) String() string {
	return a.Int.String()
}
