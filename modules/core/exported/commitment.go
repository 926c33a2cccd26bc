package exported

// CommitmentRoot is the Merkle root a chain publishes at a given height.
// Concrete light clients decide its representation; the core only ever
// threads it through opaquely.
type CommitmentRoot interface {
	IsEmpty() bool
}

// Prefix is a store prefix (e.g. "ibc") applied to a Path before it is
// looked up against a CommitmentRoot.
type Prefix interface {
	Bytes() []byte
	IsEmpty() bool
}

// Path is a fully-qualified, prefix-applied commitment store key.
type Path interface {
	String() string
	Bytes() []byte
}
