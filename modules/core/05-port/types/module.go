// Package types defines the capability set a port-bound application module
// exposes to the channel handshake and packet flow: one Module per PortId,
// invoked by the core at each handshake step and on every packet outcome.
package types

import (
	"context"

	channeltypes "github.com/meridian-chain/ibc-core/modules/core/04-channel/types"
)

// Module is implemented once per application (e.g. token transfer) and
// bound to a single port. The core calls these during channel handshake
// and packet flow; none of them touch storage directly; they report a
// result (a negotiated version, an acknowledgement, or an error) and the
// channel keeper does the actual state transition.
type Module interface {
	// OnChanOpenInit validates a proposed channel and returns the version
	// this module accepts (it may differ from proposedVersion if the
	// module supports only one version, the common case).
	OnChanOpenInit(ctx context.Context, order channeltypes.Order, connectionHops []string, portID, channelID string, counterparty channeltypes.Counterparty, proposedVersion string) (version string, err error)

	// OnChanOpenTry mirrors OnChanOpenInit on the side running ChanOpenTry,
	// negotiating against the counterparty's version.
	OnChanOpenTry(ctx context.Context, order channeltypes.Order, connectionHops []string, portID, channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string) (version string, err error)

	// OnChanOpenAck lets the module inspect the version the counterparty
	// settled on.
	OnChanOpenAck(ctx context.Context, portID, channelID string, counterpartyChannelID, counterpartyVersion string) error

	// OnChanOpenConfirm signals the channel is now Open on both sides.
	OnChanOpenConfirm(ctx context.Context, portID, channelID string) error

	// OnChanCloseInit lets the module veto or react to a locally-initiated close.
	OnChanCloseInit(ctx context.Context, portID, channelID string) error

	// OnChanCloseConfirm signals the counterparty has closed its channel end.
	OnChanCloseConfirm(ctx context.Context, portID, channelID string) error

	// OnRecvPacket executes the module's receive logic and returns the
	// acknowledgement to commit. A nil Acknowledgement means the module
	// handles writing its own (asynchronous) acknowledgement later and the
	// core must not write one now.
	OnRecvPacket(ctx context.Context, packet channeltypes.Packet, relayer string) *channeltypes.Acknowledgement

	// OnAcknowledgementPacket delivers the destination's acknowledgement
	// back to the packet's source-side module.
	OnAcknowledgementPacket(ctx context.Context, packet channeltypes.Packet, acknowledgement []byte, relayer string) error

	// OnTimeoutPacket notifies the source-side module a packet was never
	// delivered, so it can reverse any optimistic state change.
	OnTimeoutPacket(ctx context.Context, packet channeltypes.Packet, relayer string) error
}
