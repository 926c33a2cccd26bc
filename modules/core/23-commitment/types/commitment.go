// Package types implements ICS-23 commitment primitives: the opaque root,
// prefix and path types threaded through every proof verification call.
package types

import (
	"encoding/hex"
	"path"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

// SubModuleName is the ICS-23 error registration namespace.
const SubModuleName = "ibc/23-commitment"

var (
	ErrInvalidProof  = errorsmod.Register(SubModuleName, 2, "invalid commitment proof")
	ErrInvalidPrefix = errorsmod.Register(SubModuleName, 3, "invalid commitment prefix")
	ErrInvalidPath   = errorsmod.Register(SubModuleName, 4, "invalid commitment path")
)

var _ exported.CommitmentRoot = (*MerkleRoot)(nil)

// MerkleRoot is the Merkle root a chain publishes at a given height. Its
// interpretation is owned by the concrete light client; this generic
// carrier is what every client in this module actually uses.
type MerkleRoot struct {
	Hash []byte `json:"hash"`
}

// NewMerkleRoot wraps a raw root hash.
func NewMerkleRoot(hash []byte) MerkleRoot { return MerkleRoot{Hash: hash} }

// IsEmpty implements exported.CommitmentRoot.
func (r MerkleRoot) IsEmpty() bool { return len(r.Hash) == 0 }

func (r MerkleRoot) String() string { return hex.EncodeToString(r.Hash) }

var _ exported.Prefix = (*MerklePrefix)(nil)

// MerklePrefix is the store prefix under which every host path is rooted,
// typically "ibc".
type MerklePrefix struct {
	KeyPrefix []byte `json:"key_prefix"`
}

// NewMerklePrefix wraps a raw prefix.
func NewMerklePrefix(keyPrefix []byte) MerklePrefix { return MerklePrefix{KeyPrefix: keyPrefix} }

// Bytes implements exported.Prefix.
func (p MerklePrefix) Bytes() []byte { return p.KeyPrefix }

// IsEmpty implements exported.Prefix.
func (p MerklePrefix) IsEmpty() bool { return len(p.KeyPrefix) == 0 }

func (p MerklePrefix) String() string { return string(p.KeyPrefix) }

var _ exported.Path = (*MerklePath)(nil)

// MerklePath is a prefix-applied host path: the key actually looked up
// against a CommitmentRoot.
type MerklePath struct {
	KeyPath []string `json:"key_path"`
}

// NewMerklePath builds a MerklePath from path segments.
func NewMerklePath(segments ...string) MerklePath {
	return MerklePath{KeyPath: segments}
}

// String implements exported.Path, joining segments with "/".
func (p MerklePath) String() string { return strings.Join(p.KeyPath, "/") }

// Bytes implements exported.Path.
func (p MerklePath) Bytes() []byte { return []byte(p.String()) }

// ApplyPrefix joins a CommitmentPrefix and a raw host path (as built by
// the 24-host package) into a full MerklePath for VerifyMembership and
// VerifyNonMembership.
func ApplyPrefix(prefix exported.Prefix, relativePath string) (MerklePath, error) {
	if prefix == nil || prefix.IsEmpty() {
		return MerklePath{}, errorsmod.Wrap(ErrInvalidPrefix, "prefix cannot be empty")
	}
	if strings.TrimSpace(relativePath) == "" {
		return MerklePath{}, errorsmod.Wrap(ErrInvalidPath, "path cannot be empty")
	}
	return NewMerklePath(string(prefix.Bytes()), path.Clean(relativePath)), nil
}
