// Package host builds the canonical Merkle-store keys and validates the
// typed identifiers every client, connection and channel message carries.
package host

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

const (
	// identifierAlphabet is shared by every identifier kind.
	identifierAlphabet = `A-Za-z0-9\.\_\+\-\#\[\]\<\>`

	minClientIDLength = 9
	maxClientIDLength = 64

	minPortIDLength = 2
	maxPortIDLength = 128
)

var identifierRegexp = regexp.MustCompile(fmt.Sprintf(`^[%s]+$`, identifierAlphabet))

// ValidateIdentifier checks length bounds and the shared charset. It does
// not check any `{prefix}-{u64}` structure — callers that need that use
// ParseIdentifier instead.
func ValidateIdentifier(id string, minLength, maxLength int) error {
	if strings.TrimSpace(id) == "" {
		return errorsmod.Wrap(ErrInvalidID, "identifier cannot be blank")
	}
	if len(id) < minLength || len(id) > maxLength {
		return errorsmod.Wrapf(ErrInvalidID,
			"identifier %s has invalid length: got %d, expected between %d and %d characters",
			id, len(id), minLength, maxLength)
	}
	if !identifierRegexp.MatchString(id) {
		return errorsmod.Wrapf(ErrInvalidID, "identifier %s contains disallowed characters", id)
	}
	return nil
}

// ParseIdentifier splits a `{prefix}-{sequence}` identifier (ClientId,
// ConnectionId, ChannelId all follow this shape) into its prefix and the
// trailing u64 sequence.
func ParseIdentifier(id, prefix string) (string, uint64, error) {
	if !strings.HasPrefix(id, prefix) {
		return "", 0, errorsmod.Wrapf(ErrInvalidID, "identifier %s doesn't contain prefix %s", id, prefix)
	}

	tail := strings.TrimPrefix(id, prefix)
	split := strings.Split(tail, "-")
	if len(split) != 2 || split[0] != "" {
		return "", 0, errorsmod.Wrapf(ErrInvalidID, "identifier %s is not of the form %s-{sequence}", id, prefix)
	}

	seq, err := strconv.ParseUint(split[1], 10, 64)
	if err != nil {
		return "", 0, errorsmod.Wrapf(ErrInvalidID, "identifier %s does not end in a valid sequence number: %v", id, err)
	}
	return prefix, seq, nil
}

// ValidateClientID validates a ClientId of the form `{client-type}-{u64}`.
func ValidateClientID(id string) error {
	if err := ValidateIdentifier(id, minClientIDLength, maxClientIDLength); err != nil {
		return err
	}
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return errorsmod.Wrapf(ErrInvalidID, "client identifier %s is not of the form {client-type}-{sequence}", id)
	}
	if _, err := strconv.ParseUint(id[idx+1:], 10, 64); err != nil {
		return errorsmod.Wrapf(ErrInvalidID, "client identifier %s does not end in a sequence number", id)
	}
	return nil
}

// ValidateConnectionID validates a ConnectionId of the form `connection-{u64}`.
func ValidateConnectionID(id string) error {
	if err := ValidateIdentifier(id, 1, 64); err != nil {
		return err
	}
	_, _, err := ParseIdentifier(id, "connection")
	return err
}

// ValidateChannelID validates a ChannelId of the form `channel-{u64}`.
func ValidateChannelID(id string) error {
	if err := ValidateIdentifier(id, 1, 64); err != nil {
		return err
	}
	_, _, err := ParseIdentifier(id, "channel")
	return err
}

// ValidatePortID validates a PortId: 2-128 chars from the shared alphabet.
func ValidatePortID(id string) error {
	return ValidateIdentifier(id, minPortIDLength, maxPortIDLength)
}

// FormatClientIdentifier renders a client identifier from its client type
// tag and allocated sequence.
func FormatClientIdentifier(clientType string, sequence uint64) string {
	return fmt.Sprintf("%s-%d", clientType, sequence)
}

// FormatConnectionIdentifier renders a connection identifier.
func FormatConnectionIdentifier(sequence uint64) string {
	return fmt.Sprintf("connection-%d", sequence)
}

// FormatChannelIdentifier renders a channel identifier.
func FormatChannelIdentifier(sequence uint64) string {
	return fmt.Sprintf("channel-%d", sequence)
}
