package exported

// Status is the status of a light client, as observed by the host running it.
type Status string

const (
	Active  Status = "Active"
	Frozen  Status = "Frozen"
	Expired Status = "Expired"
	Unknown Status = "Unknown"
)

// Timestamp is nanoseconds since the Unix epoch. Zero means "not set".
type Timestamp uint64

// Before reports whether t occurs strictly before other.
func (t Timestamp) Before(other Timestamp) bool { return t != 0 && other != 0 && t < other }

// After reports whether t occurs strictly after other.
func (t Timestamp) After(other Timestamp) bool { return t != 0 && other != 0 && t > other }

// IsZero reports whether the timestamp is unset.
func (t Timestamp) IsZero() bool { return t == 0 }

// ClientMessage is implemented by Header and Misbehaviour, the two kinds of
// evidence a light client can be asked to verify.
type ClientMessage interface {
	ClientType() string
}

// ConsensusState is the capability set of a counterparty chain's consensus
// snapshot at a single height, as tracked by the light client.
type ConsensusState interface {
	ClientType() string
	GetTimestamp() Timestamp
	GetRoot() CommitmentRoot
	ValidateBasic() error
}

// ClientState is the read+execute capability set a light client exposes to
// the core handlers. Implementations are pure with respect to storage: the
// keeper owns persistence, the client state only judges and transforms
// values it is handed.
type ClientState interface {
	// ClientType returns the tag used to dispatch Any-wrapped client/header
	// messages to this implementation.
	ClientType() string

	// GetLatestHeight returns the highest height this client has a consensus
	// state for.
	GetLatestHeight() Height

	// Validate performs stateless validation of the client state fields.
	Validate() error

	// Status reports Active, Frozen or Expired given the frozen height (if
	// any) recorded on the client state, the latest known consensus state,
	// the trusting period and the host's current time.
	Status(latest ConsensusState, frozenHeight Height, trustingPeriod int64, now Timestamp) Status

	// ZeroCustomFields returns a copy of the client state with all
	// client-type-specific mutable fields (e.g. frozen height) reset, used
	// when exporting genesis / upgrading.
	ZeroCustomFields() ClientState

	// Initialize checks that the initial consensus state supplied at client
	// creation is acceptable for this client state.
	Initialize(consState ConsensusState) error

	// VerifyClientMessage verifies a Header or Misbehaviour ClientMessage is
	// well-formed and, where applicable, consistent with the client's
	// trusted consensus state. It must be called before CheckForMisbehaviour,
	// UpdateState or UpdateStateOnMisbehaviour.
	VerifyClientMessage(trusted ConsensusState, msg ClientMessage) error

	// CheckForMisbehaviour classifies an already-verified ClientMessage as
	// evidence of misbehaviour (e.g. two conflicting headers for one height).
	CheckForMisbehaviour(trusted ConsensusState, msg ClientMessage) bool

	// UpdateStateOnMisbehaviour returns the client state transitioned to
	// Frozen as of the height misbehaviour was detected at.
	UpdateStateOnMisbehaviour(msg ClientMessage) ClientState

	// UpdateState returns the client state and consensus state that result
	// from applying a verified, non-misbehaving Header. The returned height
	// is the height whose consensus state was written.
	UpdateState(msg ClientMessage) (ClientState, ConsensusState, Height, error)

	// VerifyMembership is an opaque Merkle-inclusion proof check: the core
	// never inspects proof bytes. proofHeight is the height the proof was
	// produced at and anchors the block-delay half of the delay period
	// invariant; currentHeight is the host's height.
	VerifyMembership(
		consState ConsensusState,
		delayTimePeriod, delayBlockPeriod uint64,
		currentTime Timestamp, currentHeight Height,
		proofHeight Height,
		proof []byte, path Path, value []byte,
	) error

	// VerifyNonMembership is the absence counterpart of VerifyMembership.
	VerifyNonMembership(
		consState ConsensusState,
		delayTimePeriod, delayBlockPeriod uint64,
		currentTime Timestamp, currentHeight Height,
		proofHeight Height,
		proof []byte, path Path,
	) error
}
