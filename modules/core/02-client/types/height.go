package types

import (
	"fmt"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

var _ exported.Height = (*Height)(nil)

// Height is `(revision_number, revision_height)`, ordered lexicographically.
// A zero revision_height is never valid on the wire, but the zero value of
// Height is still useful as a "not set" sentinel internally.
type Height struct {
	RevisionNumber uint64 `json:"revision_number"`
	RevisionHeight uint64 `json:"revision_height"`
}

// NewHeight constructs a Height.
func NewHeight(revisionNumber, revisionHeight uint64) Height {
	return Height{RevisionNumber: revisionNumber, RevisionHeight: revisionHeight}
}

// ZeroHeight returns the unset sentinel height.
func ZeroHeight() Height { return Height{} }

func (h Height) GetRevisionNumber() uint64 { return h.RevisionNumber }
func (h Height) GetRevisionHeight() uint64 { return h.RevisionHeight }

func (h Height) IsZero() bool { return h.RevisionNumber == 0 && h.RevisionHeight == 0 }

func (h Height) EQ(other exported.Height) bool {
	return h.RevisionNumber == other.GetRevisionNumber() && h.RevisionHeight == other.GetRevisionHeight()
}

func (h Height) LT(other exported.Height) bool {
	if h.RevisionNumber != other.GetRevisionNumber() {
		return h.RevisionNumber < other.GetRevisionNumber()
	}
	return h.RevisionHeight < other.GetRevisionHeight()
}

func (h Height) LTE(other exported.Height) bool { return h.LT(other) || h.EQ(other) }

func (h Height) GT(other exported.Height) bool { return !h.LTE(other) }

func (h Height) GTE(other exported.Height) bool { return !h.LT(other) }

func (h Height) String() string {
	return fmt.Sprintf("%d-%d", h.RevisionNumber, h.RevisionHeight)
}

// Increment bumps the revision height by one.
func (h Height) Increment() Height {
	return Height{RevisionNumber: h.RevisionNumber, RevisionHeight: h.RevisionHeight + 1}
}

// Decrement subtracts n from the revision height; the second return value
// is false on underflow.
func (h Height) Decrement(n uint64) (Height, bool) {
	if n > h.RevisionHeight {
		return Height{}, false
	}
	return Height{RevisionNumber: h.RevisionNumber, RevisionHeight: h.RevisionHeight - n}, true
}

// ParseHeight parses a "{revision}-{height}" string as used in
// consensus-state path construction.
func ParseHeight(s string) (Height, error) {
	split := strings.SplitN(s, "-", 2)
	if len(split) != 2 {
		return Height{}, errorsmod.Wrapf(ErrInvalidHeight, "expected format {revision}-{height}, got %q", s)
	}
	revision, err := strconv.ParseUint(split[0], 10, 64)
	if err != nil {
		return Height{}, errorsmod.Wrapf(ErrInvalidHeight, "invalid revision number in %q: %v", s, err)
	}
	height, err := strconv.ParseUint(split[1], 10, 64)
	if err != nil {
		return Height{}, errorsmod.Wrapf(ErrInvalidHeight, "invalid revision height in %q: %v", s, err)
	}
	if height == 0 {
		return Height{}, errorsmod.Wrapf(ErrInvalidHeight, "revision height cannot be 0: %q", s)
	}
	return NewHeight(revision, height), nil
}
