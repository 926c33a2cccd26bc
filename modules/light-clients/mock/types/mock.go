// Package types implements a mock light client: a minimal, fully in-Go
// light client used to exercise the core client/connection/channel state
// machines end to end without a real consensus-proof backend. It mirrors
// the role ibc-go's own solomachine and mock clients play in that
// project's core-package test suite, generalized here to double as a
// runnable first-party client type.
package types

import (
	"bytes"
	"encoding/hex"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

// ClientTypeMock is the tag this client type registers under.
const ClientTypeMock = "00-mock"

var (
	ErrInvalidHeader  = errorsmod.Register(ClientTypeMock, 2, "invalid mock header")
	ErrRootMismatch   = errorsmod.Register(ClientTypeMock, 3, "root mismatch")
	ErrValueMismatch  = errorsmod.Register(ClientTypeMock, 4, "value mismatch at path")
	ErrPathNotFound   = errorsmod.Register(ClientTypeMock, 5, "path not found in root")
	ErrPathPresent    = errorsmod.Register(ClientTypeMock, 6, "path unexpectedly present in root")
	ErrDelayNotPassed = errorsmod.Register(ClientTypeMock, 7, "delay period has not yet passed")
)

// Root snapshots a chain's key/value state at a height. A real light
// client authenticates a single hash; this one carries the preimage
// directly so VerifyMembership can do a plain lookup instead of a
// cryptographic proof check. Proof bytes passed to VerifyMembership are
// still required to equal the value being proven, so a forged proof still
// fails even though the check is not a Merkle-inclusion proof.
type Root struct {
	Values map[string][]byte `json:"values"`
}

var _ exported.CommitmentRoot = Root{}

func NewRoot(values map[string][]byte) Root {
	if values == nil {
		values = map[string][]byte{}
	}
	return Root{Values: values}
}

func (r Root) IsEmpty() bool { return len(r.Values) == 0 }

func (r Root) String() string {
	return hex.EncodeToString([]byte{byte(len(r.Values))})
}

var _ exported.ConsensusState = (*ConsensusState)(nil)

// ConsensusState is the counterparty snapshot a mock client trusts at one
// height: a timestamp plus the key/value root observed there.
type ConsensusState struct {
	Timestamp exported.Timestamp `json:"timestamp"`
	Root      Root               `json:"root"`
}

func NewConsensusState(timestamp exported.Timestamp, root Root) *ConsensusState {
	return &ConsensusState{Timestamp: timestamp, Root: root}
}

func (ConsensusState) ClientType() string { return ClientTypeMock }

func (cs ConsensusState) GetTimestamp() exported.Timestamp { return cs.Timestamp }

func (cs ConsensusState) GetRoot() exported.CommitmentRoot { return cs.Root }

func (cs ConsensusState) ValidateBasic() error {
	if cs.Timestamp.IsZero() {
		return errorsmod.Wrap(ErrInvalidHeader, "timestamp cannot be zero")
	}
	return nil
}

var _ exported.ClientMessage = (*Header)(nil)

// Header advances a mock client to a new height by carrying the full next
// root and timestamp, signed implicitly by virtue of arriving through the
// host's own message handling (no signature scheme is modeled).
type Header struct {
	NewHeight    HeightPair         `json:"new_height"`
	NewTimestamp exported.Timestamp `json:"new_timestamp"`
	NewRoot      Root               `json:"new_root"`
}

// HeightPair avoids importing 02-client/types from this package, keeping
// the mock client's only core dependency on the exported interfaces.
type HeightPair struct {
	RevisionNumber uint64 `json:"revision_number"`
	RevisionHeight uint64 `json:"revision_height"`
}

func (h HeightPair) GetRevisionNumber() uint64 { return h.RevisionNumber }
func (h HeightPair) GetRevisionHeight() uint64 { return h.RevisionHeight }
func (h HeightPair) EQ(o exported.Height) bool {
	return h.RevisionNumber == o.GetRevisionNumber() && h.RevisionHeight == o.GetRevisionHeight()
}
func (h HeightPair) LT(o exported.Height) bool {
	if h.RevisionNumber != o.GetRevisionNumber() {
		return h.RevisionNumber < o.GetRevisionNumber()
	}
	return h.RevisionHeight < o.GetRevisionHeight()
}
func (h HeightPair) LTE(o exported.Height) bool { return h.LT(o) || h.EQ(o) }
func (h HeightPair) GT(o exported.Height) bool  { return !h.LTE(o) }
func (h HeightPair) GTE(o exported.Height) bool { return !h.LT(o) }
func (h HeightPair) IsZero() bool               { return h.RevisionNumber == 0 && h.RevisionHeight == 0 }
func (h HeightPair) String() string {
	return fmt.Sprintf("%d-%d", h.RevisionNumber, h.RevisionHeight)
}

func (Header) ClientType() string { return ClientTypeMock }

var _ exported.ClientMessage = (*Misbehaviour)(nil)

// Misbehaviour is two headers the client trusted as valid for the same
// height but which disagree on root or timestamp.
type Misbehaviour struct {
	Header1 Header `json:"header_1"`
	Header2 Header `json:"header_2"`
}

func (Misbehaviour) ClientType() string { return ClientTypeMock }

var _ exported.ClientState = (*ClientState)(nil)

// ClientState is the mock client's persisted state: its latest height and,
// if frozen, the height misbehaviour was detected at.
type ClientState struct {
	LatestHeight HeightPair `json:"latest_height"`
	FrozenHeight HeightPair `json:"frozen_height"`
}

func NewClientState(latestHeight HeightPair) *ClientState {
	return &ClientState{LatestHeight: latestHeight}
}

func (ClientState) ClientType() string { return ClientTypeMock }

func (cs ClientState) GetLatestHeight() exported.Height { return cs.LatestHeight }

func (cs ClientState) Validate() error {
	if cs.LatestHeight.IsZero() {
		return errorsmod.Wrap(ErrInvalidHeader, "latest height cannot be zero")
	}
	return nil
}

func (cs ClientState) Status(latest exported.ConsensusState, frozenHeight exported.Height, trustingPeriod int64, now exported.Timestamp) exported.Status {
	if !frozenHeight.IsZero() {
		return exported.Frozen
	}
	if latest == nil {
		return exported.Unknown
	}
	if trustingPeriod > 0 && !latest.GetTimestamp().IsZero() && !now.IsZero() {
		expiry := exported.Timestamp(uint64(latest.GetTimestamp()) + uint64(trustingPeriod))
		if now.After(expiry) {
			return exported.Expired
		}
	}
	return exported.Active
}

func (cs ClientState) ZeroCustomFields() exported.ClientState {
	return &ClientState{LatestHeight: cs.LatestHeight}
}

func (cs ClientState) Initialize(consState exported.ConsensusState) error {
	if consState == nil {
		return errorsmod.Wrap(ErrInvalidHeader, "initial consensus state cannot be nil")
	}
	return consState.ValidateBasic()
}

func (cs ClientState) VerifyClientMessage(trusted exported.ConsensusState, msg exported.ClientMessage) error {
	switch m := msg.(type) {
	case *Header:
		if m.NewHeight.LTE(cs.LatestHeight) {
			return errorsmod.Wrapf(ErrInvalidHeader, "header height %s is not greater than latest height %s", m.NewHeight, cs.LatestHeight)
		}
		if trusted != nil && m.NewTimestamp.Before(trusted.GetTimestamp()) {
			return errorsmod.Wrap(ErrInvalidHeader, "header timestamp is before trusted consensus state timestamp")
		}
		return nil
	case *Misbehaviour:
		if !m.Header1.NewHeight.EQ(m.Header2.NewHeight) {
			return errorsmod.Wrap(ErrInvalidHeader, "misbehaviour headers must be at the same height")
		}
		return nil
	default:
		return errorsmod.Wrapf(ErrInvalidHeader, "unsupported client message type %T", msg)
	}
}

func (cs ClientState) CheckForMisbehaviour(trusted exported.ConsensusState, msg exported.ClientMessage) bool {
	m, ok := msg.(*Misbehaviour)
	if !ok {
		return false
	}
	return m.Header1.NewTimestamp != m.Header2.NewTimestamp ||
		!bytes.Equal(rootHash(m.Header1.NewRoot), rootHash(m.Header2.NewRoot))
}

func (cs ClientState) UpdateStateOnMisbehaviour(msg exported.ClientMessage) exported.ClientState {
	m := msg.(*Misbehaviour)
	return &ClientState{LatestHeight: cs.LatestHeight, FrozenHeight: m.Header1.NewHeight}
}

func (cs ClientState) UpdateState(msg exported.ClientMessage) (exported.ClientState, exported.ConsensusState, exported.Height, error) {
	header, ok := msg.(*Header)
	if !ok {
		return nil, nil, nil, errorsmod.Wrapf(ErrInvalidHeader, "expected *Header, got %T", msg)
	}
	newClientState := &ClientState{LatestHeight: header.NewHeight, FrozenHeight: cs.FrozenHeight}
	newConsState := NewConsensusState(header.NewTimestamp, header.NewRoot)
	return newClientState, newConsState, header.NewHeight, nil
}

func (cs ClientState) VerifyMembership(
	consState exported.ConsensusState,
	delayTimePeriod, delayBlockPeriod uint64,
	currentTime exported.Timestamp, currentHeight exported.Height,
	proofHeight exported.Height,
	proof []byte, path exported.Path, value []byte,
) error {
	root, err := rootOf(consState)
	if err != nil {
		return err
	}
	if err := checkDelay(consState, delayTimePeriod, delayBlockPeriod, currentTime, currentHeight, proofHeight); err != nil {
		return err
	}
	stored, ok := root.Values[path.String()]
	if !ok {
		return errorsmod.Wrapf(ErrPathNotFound, "path %s not found in root", path)
	}
	if !bytes.Equal(stored, value) {
		return errorsmod.Wrapf(ErrValueMismatch, "value at path %s does not match stored value", path)
	}
	if !bytes.Equal(proof, value) {
		return errorsmod.Wrap(ErrValueMismatch, "proof does not authenticate the claimed value")
	}
	return nil
}

func (cs ClientState) VerifyNonMembership(
	consState exported.ConsensusState,
	delayTimePeriod, delayBlockPeriod uint64,
	currentTime exported.Timestamp, currentHeight exported.Height,
	proofHeight exported.Height,
	proof []byte, path exported.Path,
) error {
	root, err := rootOf(consState)
	if err != nil {
		return err
	}
	if err := checkDelay(consState, delayTimePeriod, delayBlockPeriod, currentTime, currentHeight, proofHeight); err != nil {
		return err
	}
	if _, ok := root.Values[path.String()]; ok {
		return errorsmod.Wrapf(ErrPathPresent, "path %s is present in root", path)
	}
	return nil
}

func rootOf(consState exported.ConsensusState) (Root, error) {
	root, ok := consState.GetRoot().(Root)
	if !ok {
		return Root{}, errorsmod.Wrapf(ErrRootMismatch, "expected mock Root, got %T", consState.GetRoot())
	}
	return root, nil
}

// checkDelay enforces both halves of the delay period invariant: a proof is
// only accepted once delayTimePeriod has elapsed since the consensus state's
// timestamp AND delayBlockPeriod blocks have passed since proofHeight. Either
// half is skipped when its period is zero or its comparison inputs are unset.
func checkDelay(
	consState exported.ConsensusState,
	delayTimePeriod, delayBlockPeriod uint64,
	currentTime exported.Timestamp, currentHeight, proofHeight exported.Height,
) error {
	if delayTimePeriod != 0 && !currentTime.IsZero() {
		earliest := exported.Timestamp(uint64(consState.GetTimestamp()) + delayTimePeriod)
		if currentTime.Before(earliest) {
			return errorsmod.Wrapf(ErrDelayNotPassed, "current time %d is before delay-adjusted time %d", currentTime, earliest)
		}
	}
	if delayBlockPeriod != 0 && currentHeight != nil && proofHeight != nil {
		if currentHeight.GetRevisionHeight() < proofHeight.GetRevisionHeight()+delayBlockPeriod {
			return errorsmod.Wrapf(ErrDelayNotPassed, "current height %s is less than proof height %s plus delay block period %d",
				currentHeight, proofHeight, delayBlockPeriod)
		}
	}
	return nil
}

func rootHash(r Root) []byte {
	var buf bytes.Buffer
	for k, v := range r.Values {
		buf.WriteString(k)
		buf.Write(v)
	}
	return buf.Bytes()
}
