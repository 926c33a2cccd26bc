package types

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

// Packet is the cross-chain message unit every channel carries. At least
// one of TimeoutHeight or TimeoutTimestamp must be set.
type Packet struct {
	Sequence           uint64             `json:"sequence"`
	SourcePort         string             `json:"source_port"`
	SourceChannel      string             `json:"source_channel"`
	DestinationPort    string             `json:"destination_port"`
	DestinationChannel string             `json:"destination_channel"`
	Data               []byte             `json:"data"`
	TimeoutHeight      clienttypes.Height `json:"timeout_height"`
	TimeoutTimestamp   exported.Timestamp `json:"timeout_timestamp"`
}

// ValidateBasic checks the packet carries a nonzero sequence and at least
// one timeout.
func (p Packet) ValidateBasic() error {
	if p.Sequence == 0 {
		return ErrZeroPacketSequence
	}
	if p.TimeoutHeight.IsZero() && p.TimeoutTimestamp.IsZero() {
		return ErrNoTimeoutSet
	}
	return nil
}

// TimedOut reports whether the packet has timed out relative to the
// observed height/timestamp on the receiving chain.
func (p Packet) TimedOut(height exported.Height, timestamp exported.Timestamp) bool {
	if !p.TimeoutHeight.IsZero() && height.GTE(p.TimeoutHeight) {
		return true
	}
	if !p.TimeoutTimestamp.IsZero() && !timestamp.IsZero() && uint64(timestamp) >= uint64(p.TimeoutTimestamp) {
		return true
	}
	return false
}

// CommitPacket computes the packet commitment stored at
// commitments/ports/{port}/channels/{chan}/sequences/{seq}:
// sha256(timeout_timestamp_be || timeout_height_be || sha256(data)).
func CommitPacket(p Packet) []byte {
	var buf []byte
	buf = appendUint64(buf, uint64(p.TimeoutTimestamp))
	buf = appendUint64(buf, p.TimeoutHeight.GetRevisionNumber())
	buf = appendUint64(buf, p.TimeoutHeight.GetRevisionHeight())
	dataHash := sha256.Sum256(p.Data)
	buf = append(buf, dataHash[:]...)
	commitment := sha256.Sum256(buf)
	return commitment[:]
}

func appendUint64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

// Acknowledgement is the result a module's on_recv_packet callback hands
// back to the core: either a success result payload or an error string,
// never both.
type Acknowledgement struct {
	Result []byte `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewResultAcknowledgement builds a successful Acknowledgement.
func NewResultAcknowledgement(result []byte) Acknowledgement {
	return Acknowledgement{Result: result}
}

// NewErrorAcknowledgement builds a failed Acknowledgement. The message is
// recorded as-is: unlike a panic, an acknowledgement error is consensus
// data and must be deterministic, so callers should not embed anything
// non-reproducible (e.g. Go error internals) in it.
func NewErrorAcknowledgement(message string) Acknowledgement {
	return Acknowledgement{Error: message}
}

// Success reports whether the acknowledgement represents success.
func (a Acknowledgement) Success() bool { return a.Error == "" }

// Bytes returns the bytes whose sha256 is stored as the
// AckCommitment.
func (a Acknowledgement) Bytes() ([]byte, error) {
	if a.Result == nil && a.Error == "" {
		return nil, errorsmod.Wrap(ErrInvalidChannel, "acknowledgement has neither a result nor an error")
	}
	return json.Marshal(a)
}

// CommitAcknowledgement computes the AckCommitment: sha256(ack_bytes).
func CommitAcknowledgement(ackBytes []byte) []byte {
	hash := sha256.Sum256(ackBytes)
	return hash[:]
}
