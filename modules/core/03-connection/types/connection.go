package types

// State is a connection's lifecycle state.
type State int32

const (
	Uninitialized State = iota
	Init
	TryOpen
	Open
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "STATE_UNINITIALIZED_UNSPECIFIED"
	case Init:
		return "STATE_INIT"
	case TryOpen:
		return "STATE_TRYOPEN"
	case Open:
		return "STATE_OPEN"
	default:
		return "STATE_UNKNOWN"
	}
}

// Version is a connection version: an identifier plus the feature set
// negotiated for it. A chain's supported versions are always exactly one
// version in this implementation, matching the common deployment where
// only "1" with the ORDER_ORDERED/ORDER_UNORDERED feature set is used.
type Version struct {
	Identifier string   `json:"identifier"`
	Features   []string `json:"features"`
}

// DefaultIBCVersionIdentifier is this module's sole supported version.
const DefaultIBCVersionIdentifier = "1"

// DefaultVersion returns the connection version this host supports.
func DefaultVersion() Version {
	return Version{
		Identifier: DefaultIBCVersionIdentifier,
		Features:   []string{"ORDER_ORDERED", "ORDER_UNORDERED"},
	}
}

// IsSupported reports whether v is identifier-compatible with this host's
// supported version (features are not negotiated further in this module).
func IsSupported(v Version) bool {
	return v.Identifier == DefaultIBCVersionIdentifier
}

// PickVersion returns the first proposed version this host supports, in
// proposal order.
func PickVersion(proposed []Version) (Version, error) {
	for _, v := range proposed {
		if IsSupported(v) {
			return v, nil
		}
	}
	return Version{}, ErrVersionsMismatch
}

// Counterparty identifies the other side of a connection: its client, its
// connection id (unset until OpenTry has run on that side), and the
// Merkle-store prefix its paths are rooted under.
type Counterparty struct {
	ClientID     string `json:"client_id"`
	ConnectionID string `json:"connection_id"`
	Prefix       []byte `json:"prefix"`
}

// ConnectionEnd is the full state of one side of a connection.
type ConnectionEnd struct {
	State        State        `json:"state"`
	ClientID     string       `json:"client_id"`
	Counterparty Counterparty `json:"counterparty"`
	Versions     []Version    `json:"versions"`
	DelayPeriod  uint64       `json:"delay_period"`
}

// HasCounterpartyConnection reports whether the counterparty connection id
// has been recorded yet (it hasn't, right after OpenInit).
func (c ConnectionEnd) HasCounterpartyConnection() bool {
	return c.Counterparty.ConnectionID != ""
}
