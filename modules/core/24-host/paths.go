package host

import "fmt"

// The path layout below must be kept byte-for-byte stable: two hosts
// computing these independently must agree on the same key for the same
// logical object.

// FullClientStatePath is the path to a client's stored ClientState.
func FullClientStatePath(clientID string) string {
	return fmt.Sprintf("clients/%s/clientState", clientID)
}

// FullConsensusStatePath is the path to a client's stored ConsensusState at
// a given revision/height.
func FullConsensusStatePath(clientID string, revision, height uint64) string {
	return fmt.Sprintf("clients/%s/consensusStates/%d-%d", clientID, revision, height)
}

// ConnectionPath is the path to a stored ConnectionEnd.
func ConnectionPath(connectionID string) string {
	return fmt.Sprintf("connections/%s", connectionID)
}

// ChannelPath is the path to a stored ChannelEnd.
func ChannelPath(portID, channelID string) string {
	return fmt.Sprintf("channelEnds/ports/%s/channels/%s", portID, channelID)
}

// NextSequenceSendPath is the path to a channel's send sequence counter.
func NextSequenceSendPath(portID, channelID string) string {
	return fmt.Sprintf("nextSequenceSend/ports/%s/channels/%s", portID, channelID)
}

// NextSequenceRecvPath is the path to a channel's recv sequence counter.
func NextSequenceRecvPath(portID, channelID string) string {
	return fmt.Sprintf("nextSequenceRecv/ports/%s/channels/%s", portID, channelID)
}

// NextSequenceAckPath is the path to a channel's ack sequence counter.
func NextSequenceAckPath(portID, channelID string) string {
	return fmt.Sprintf("nextSequenceAck/ports/%s/channels/%s", portID, channelID)
}

// PacketCommitmentPath is the path to a packet's stored commitment.
func PacketCommitmentPath(portID, channelID string, sequence uint64) string {
	return fmt.Sprintf("commitments/ports/%s/channels/%s/sequences/%d", portID, channelID, sequence)
}

// PacketReceiptPath is the path to a packet's (presence-only) receipt.
func PacketReceiptPath(portID, channelID string, sequence uint64) string {
	return fmt.Sprintf("receipts/ports/%s/channels/%s/sequences/%d", portID, channelID, sequence)
}

// PacketAcknowledgementPath is the path to a packet's stored ack commitment.
func PacketAcknowledgementPath(portID, channelID string, sequence uint64) string {
	return fmt.Sprintf("acks/ports/%s/channels/%s/sequences/%d", portID, channelID, sequence)
}

// UpgradedClientStatePath is the path a chain undergoing an upgrade commits
// its post-upgrade ClientState to, for counterparties to verify against the
// pre-upgrade client before adopting it.
func UpgradedClientStatePath(planHeight uint64) string {
	return fmt.Sprintf("upgradedClient/%d/clientState", planHeight)
}

// UpgradedConsensusStatePath is UpgradedClientStatePath's counterpart for
// the post-upgrade ConsensusState.
func UpgradedConsensusStatePath(planHeight uint64) string {
	return fmt.Sprintf("upgradedClient/%d/consensusState", planHeight)
}
