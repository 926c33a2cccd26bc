package keeper

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	connectiontypes "github.com/meridian-chain/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/meridian-chain/ibc-core/modules/core/04-channel/types"
	porttypes "github.com/meridian-chain/ibc-core/modules/core/05-port/types"
	commitmenttypes "github.com/meridian-chain/ibc-core/modules/core/23-commitment/types"
	host "github.com/meridian-chain/ibc-core/modules/core/24-host"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

func jsonMarshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

// connectionHop resolves the single connection a channel message names and
// checks it is Open, the precondition every handshake step shares.
func (k Keeper) connectionHop(ctx context.Context, connectionHops []string) (connectiontypes.ConnectionEnd, string, error) {
	if len(connectionHops) != 1 {
		return connectiontypes.ConnectionEnd{}, "", channeltypes.ErrTooManyConnectionHops
	}
	connID := connectionHops[0]
	conn, err := k.ConnectionKeeper.Connection(ctx, connID)
	if err != nil {
		return connectiontypes.ConnectionEnd{}, "", err
	}
	if conn.State != connectiontypes.Open {
		return connectiontypes.ConnectionEnd{}, "", errorsmod.Wrapf(channeltypes.ErrConnectionNotOpen, "connection %s has state %s", connID, conn.State)
	}
	return conn, connID, nil
}

func (k Keeper) moduleForPort(portID string) (porttypes.Module, error) {
	module, ok := k.Router.Route(portID)
	if !ok {
		return nil, errorsmod.Wrapf(porttypes.ErrPortNotFound, "port %s", portID)
	}
	return module, nil
}

// checkedChanOpenInit carries the module-negotiated version for a channel
// that has confirmed its connection hop is Open. Note: the module callback
// itself keeps the combined validate+execute shape documented in DESIGN.md
// (05-port callbacks are the one exception to the core-handler split),
// since it may itself claim port capability as part of accepting the open.
type checkedChanOpenInit struct {
	negotiated string
}

// ValidateChanOpenInit checks the ordering is valid and the connection hop
// is Open, then asks the bound module to accept the proposed version. No
// store writes of its own.
func (k Keeper) ValidateChanOpenInit(
	ctx context.Context,
	portID string,
	order channeltypes.Order,
	connectionHops []string,
	counterparty channeltypes.Counterparty,
	version string,
) (checkedChanOpenInit, error) {
	if !order.IsValid() {
		return checkedChanOpenInit{}, errorsmod.Wrapf(channeltypes.ErrInvalidOrder, "order %s", order)
	}
	if _, _, err := k.connectionHop(ctx, connectionHops); err != nil {
		return checkedChanOpenInit{}, err
	}
	module, err := k.moduleForPort(portID)
	if err != nil {
		return checkedChanOpenInit{}, err
	}
	negotiated, err := module.OnChanOpenInit(ctx, order, connectionHops, portID, "", counterparty, version)
	if err != nil {
		return checkedChanOpenInit{}, err
	}
	return checkedChanOpenInit{negotiated: negotiated}, nil
}

// ExecuteChanOpenInit allocates a fresh ChannelId and stores a ChannelEnd
// in Init using the version a prior ValidateChanOpenInit call negotiated.
func (k Keeper) ExecuteChanOpenInit(
	ctx context.Context,
	portID string,
	order channeltypes.Order,
	connectionHops []string,
	counterparty channeltypes.Counterparty,
	checked checkedChanOpenInit,
) (string, error) {
	seq, err := k.NextChannelSeq.Next(ctx)
	if err != nil {
		return "", err
	}
	channelID := host.FormatChannelIdentifier(seq)

	channel := channeltypes.ChannelEnd{
		State:          channeltypes.Init,
		Ordering:       order,
		Counterparty:   counterparty,
		ConnectionHops: connectionHops,
		Version:        checked.negotiated,
	}
	if err := k.Channels.Set(ctx, newChanKey(portID, channelID), channel); err != nil {
		return "", err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventChannelOpenInit{ //nolint:errcheck
		PortID: portID, ChannelID: channelID, CounterpartyPortID: counterparty.PortID, ConnectionID: connectionHops[0],
	})
	return channelID, nil
}

// ChanOpenInit begins a channel handshake on this chain (chain A): asks the
// bound module to accept the proposed ordering/version, allocates a fresh
// ChannelId and stores a ChannelEnd in Init.
func (k Keeper) ChanOpenInit(
	ctx context.Context,
	portID string,
	order channeltypes.Order,
	connectionHops []string,
	counterparty channeltypes.Counterparty,
	version string,
) (string, error) {
	checked, err := k.ValidateChanOpenInit(ctx, portID, order, connectionHops, counterparty, version)
	if err != nil {
		return "", err
	}
	return k.ExecuteChanOpenInit(ctx, portID, order, connectionHops, counterparty, checked)
}

// checkedChanOpenTry carries the module-negotiated version for a channel
// whose counterparty ChannelEnd{Init,...} membership proof has already
// been verified.
type checkedChanOpenTry struct {
	version string
}

// ValidateChanOpenTry verifies A's ChannelEnd{Init,...} through the
// connection's light client and asks the bound module to accept the
// counterparty's proposed version. No writes.
func (k Keeper) ValidateChanOpenTry(
	ctx context.Context,
	portID string,
	order channeltypes.Order,
	connectionHops []string,
	counterparty channeltypes.Counterparty,
	counterpartyVersion string,
	proofInit []byte,
	proofHeight exported.Height,
) (checkedChanOpenTry, error) {
	if !order.IsValid() {
		return checkedChanOpenTry{}, errorsmod.Wrapf(channeltypes.ErrInvalidOrder, "order %s", order)
	}
	conn, _, err := k.connectionHop(ctx, connectionHops)
	if err != nil {
		return checkedChanOpenTry{}, err
	}
	module, err := k.moduleForPort(portID)
	if err != nil {
		return checkedChanOpenTry{}, err
	}
	version, err := module.OnChanOpenTry(ctx, order, connectionHops, portID, "", counterparty, counterpartyVersion)
	if err != nil {
		return checkedChanOpenTry{}, err
	}

	expectedChannel := channeltypes.ChannelEnd{
		State:          channeltypes.Init,
		Ordering:       order,
		Counterparty:   channeltypes.Counterparty{PortID: portID, ChannelID: ""},
		ConnectionHops: []string{conn.Counterparty.ConnectionID},
		Version:        counterpartyVersion,
	}
	if err := k.verifyChannelState(ctx, conn, proofHeight, proofInit, counterparty.PortID, counterparty.ChannelID, expectedChannel); err != nil {
		return checkedChanOpenTry{}, err
	}

	return checkedChanOpenTry{version: version}, nil
}

// ExecuteChanOpenTry allocates a fresh ChannelId, stores a ChannelEnd in
// TryOpen and seeds the three sequence counters at 1.
func (k Keeper) ExecuteChanOpenTry(
	ctx context.Context,
	portID string,
	order channeltypes.Order,
	connectionHops []string,
	counterparty channeltypes.Counterparty,
	checked checkedChanOpenTry,
) (string, error) {
	_, connID, err := k.connectionHop(ctx, connectionHops)
	if err != nil {
		return "", err
	}

	seq, err := k.NextChannelSeq.Next(ctx)
	if err != nil {
		return "", err
	}
	channelID := host.FormatChannelIdentifier(seq)
	key := newChanKey(portID, channelID)

	channel := channeltypes.ChannelEnd{
		State:          channeltypes.TryOpen,
		Ordering:       order,
		Counterparty:   counterparty,
		ConnectionHops: connectionHops,
		Version:        checked.version,
	}
	if err := k.Channels.Set(ctx, key, channel); err != nil {
		return "", err
	}
	if err := k.NextSequenceSend.Set(ctx, key, 1); err != nil {
		return "", err
	}
	if err := k.NextSequenceRecv.Set(ctx, key, 1); err != nil {
		return "", err
	}
	if err := k.NextSequenceAck.Set(ctx, key, 1); err != nil {
		return "", err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventChannelOpenTry{ //nolint:errcheck
		PortID: portID, ChannelID: channelID,
		CounterpartyPortID: counterparty.PortID, CounterpartyChannelID: counterparty.ChannelID,
		ConnectionID: connID,
	})
	return channelID, nil
}

// ChanOpenTry runs on chain B once A's ChanOpenInit has committed. It
// verifies A's ChannelEnd{Init,...} through the connection's light client,
// allocates a fresh ChannelId, stores a ChannelEnd in TryOpen and seeds the
// three sequence counters at 1.
func (k Keeper) ChanOpenTry(
	ctx context.Context,
	portID string,
	order channeltypes.Order,
	connectionHops []string,
	counterparty channeltypes.Counterparty,
	counterpartyVersion string,
	proofInit []byte,
	proofHeight exported.Height,
) (string, error) {
	checked, err := k.ValidateChanOpenTry(ctx, portID, order, connectionHops, counterparty, counterpartyVersion, proofInit, proofHeight)
	if err != nil {
		return "", err
	}
	return k.ExecuteChanOpenTry(ctx, portID, order, connectionHops, counterparty, checked)
}

// checkedChanOpenAck carries the channel record a ChanOpenAck call will
// transition, once B's TryOpen state is confirmed and the module accepts.
type checkedChanOpenAck struct {
	channel channeltypes.ChannelEnd
}

// ValidateChanOpenAck verifies B's ChannelEnd{TryOpen,...} and lets the
// bound module observe the counterparty's accepted version. No writes.
func (k Keeper) ValidateChanOpenAck(
	ctx context.Context,
	portID, channelID string,
	counterpartyChannelID, counterpartyVersion string,
	proofTry []byte,
	proofHeight exported.Height,
) (checkedChanOpenAck, error) {
	channel, err := k.Channel(ctx, portID, channelID)
	if err != nil {
		return checkedChanOpenAck{}, err
	}
	if channel.State != channeltypes.Init {
		return checkedChanOpenAck{}, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "expected Init, got %s", channel.State)
	}
	conn, _, err := k.connectionHop(ctx, channel.ConnectionHops)
	if err != nil {
		return checkedChanOpenAck{}, err
	}
	module, err := k.moduleForPort(portID)
	if err != nil {
		return checkedChanOpenAck{}, err
	}

	expectedChannel := channeltypes.ChannelEnd{
		State:          channeltypes.TryOpen,
		Ordering:       channel.Ordering,
		Counterparty:   channeltypes.Counterparty{PortID: portID, ChannelID: channelID},
		ConnectionHops: []string{conn.Counterparty.ConnectionID},
		Version:        counterpartyVersion,
	}
	if err := k.verifyChannelState(ctx, conn, proofHeight, proofTry, channel.Counterparty.PortID, counterpartyChannelID, expectedChannel); err != nil {
		return checkedChanOpenAck{}, err
	}

	if err := module.OnChanOpenAck(ctx, portID, channelID, counterpartyChannelID, counterpartyVersion); err != nil {
		return checkedChanOpenAck{}, err
	}

	channel.State = channeltypes.Open
	channel.Version = counterpartyVersion
	channel.Counterparty.ChannelID = counterpartyChannelID
	return checkedChanOpenAck{channel: channel}, nil
}

// ExecuteChanOpenAck transitions Init -> Open and records the counterparty
// channel id and negotiated version a prior ValidateChanOpenAck call
// already checked.
func (k Keeper) ExecuteChanOpenAck(ctx context.Context, portID, channelID string, checked checkedChanOpenAck) error {
	if err := k.Channels.Set(ctx, newChanKey(portID, channelID), checked.channel); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventChannelOpenAck{ //nolint:errcheck
		PortID: portID, ChannelID: channelID, CounterpartyChannelID: checked.channel.Counterparty.ChannelID,
	})
	return nil
}

// ChanOpenAck runs on chain A once B's ChanOpenTry has committed. It
// verifies B's ChannelEnd{TryOpen,...}, transitions Init -> Open and
// records the counterparty channel id and negotiated version.
func (k Keeper) ChanOpenAck(
	ctx context.Context,
	portID, channelID string,
	counterpartyChannelID, counterpartyVersion string,
	proofTry []byte,
	proofHeight exported.Height,
) error {
	checked, err := k.ValidateChanOpenAck(ctx, portID, channelID, counterpartyChannelID, counterpartyVersion, proofTry, proofHeight)
	if err != nil {
		return err
	}
	return k.ExecuteChanOpenAck(ctx, portID, channelID, checked)
}

// checkedChanOpenConfirm carries the channel record a ChanOpenConfirm call
// will transition, once A's Open state is confirmed and the module accepts.
type checkedChanOpenConfirm struct {
	channel channeltypes.ChannelEnd
}

// ValidateChanOpenConfirm verifies A is Open through a membership proof
// and lets the bound module observe the confirmation. No writes.
func (k Keeper) ValidateChanOpenConfirm(ctx context.Context, portID, channelID string, proofAck []byte, proofHeight exported.Height) (checkedChanOpenConfirm, error) {
	channel, err := k.Channel(ctx, portID, channelID)
	if err != nil {
		return checkedChanOpenConfirm{}, err
	}
	if channel.State != channeltypes.TryOpen {
		return checkedChanOpenConfirm{}, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "expected TryOpen, got %s", channel.State)
	}
	conn, _, err := k.connectionHop(ctx, channel.ConnectionHops)
	if err != nil {
		return checkedChanOpenConfirm{}, err
	}
	module, err := k.moduleForPort(portID)
	if err != nil {
		return checkedChanOpenConfirm{}, err
	}

	expectedChannel := channeltypes.ChannelEnd{
		State:          channeltypes.Open,
		Ordering:       channel.Ordering,
		Counterparty:   channeltypes.Counterparty{PortID: portID, ChannelID: channelID},
		ConnectionHops: []string{conn.Counterparty.ConnectionID},
		Version:        channel.Version,
	}
	if err := k.verifyChannelState(ctx, conn, proofHeight, proofAck, channel.Counterparty.PortID, channel.Counterparty.ChannelID, expectedChannel); err != nil {
		return checkedChanOpenConfirm{}, err
	}

	if err := module.OnChanOpenConfirm(ctx, portID, channelID); err != nil {
		return checkedChanOpenConfirm{}, err
	}

	channel.State = channeltypes.Open
	return checkedChanOpenConfirm{channel: channel}, nil
}

// ExecuteChanOpenConfirm transitions TryOpen -> Open for the channel a
// prior ValidateChanOpenConfirm call already verified.
func (k Keeper) ExecuteChanOpenConfirm(ctx context.Context, portID, channelID string, checked checkedChanOpenConfirm) error {
	if err := k.Channels.Set(ctx, newChanKey(portID, channelID), checked.channel); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventChannelOpenConfirm{ //nolint:errcheck
		PortID: portID, ChannelID: channelID,
	})
	return nil
}

// ChanOpenConfirm runs on chain B once A's ChanOpenAck has committed. It
// verifies A is Open and transitions TryOpen -> Open.
func (k Keeper) ChanOpenConfirm(ctx context.Context, portID, channelID string, proofAck []byte, proofHeight exported.Height) error {
	checked, err := k.ValidateChanOpenConfirm(ctx, portID, channelID, proofAck, proofHeight)
	if err != nil {
		return err
	}
	return k.ExecuteChanOpenConfirm(ctx, portID, channelID, checked)
}

// checkedChanCloseInit carries the channel record a ChanCloseInit call
// will transition, once the module has had its chance to veto.
type checkedChanCloseInit struct {
	channel channeltypes.ChannelEnd
}

// ValidateChanCloseInit checks the channel is not already Closed and its
// connection hop is Open, then lets the bound module veto the close (e.g.
// pending transfers). No writes.
func (k Keeper) ValidateChanCloseInit(ctx context.Context, portID, channelID string) (checkedChanCloseInit, error) {
	channel, err := k.Channel(ctx, portID, channelID)
	if err != nil {
		return checkedChanCloseInit{}, err
	}
	if channel.State == channeltypes.Closed {
		return checkedChanCloseInit{}, errorsmod.Wrap(channeltypes.ErrInvalidChannelState, "channel is already Closed")
	}
	if _, _, err := k.connectionHop(ctx, channel.ConnectionHops); err != nil {
		return checkedChanCloseInit{}, err
	}
	module, err := k.moduleForPort(portID)
	if err != nil {
		return checkedChanCloseInit{}, err
	}
	if err := module.OnChanCloseInit(ctx, portID, channelID); err != nil {
		return checkedChanCloseInit{}, err
	}

	channel.State = channeltypes.Closed
	return checkedChanCloseInit{channel: channel}, nil
}

// ExecuteChanCloseInit marks the channel a prior ValidateChanCloseInit
// call already cleared as Closed.
func (k Keeper) ExecuteChanCloseInit(ctx context.Context, portID, channelID string, checked checkedChanCloseInit) error {
	if err := k.Channels.Set(ctx, newChanKey(portID, channelID), checked.channel); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventChannelCloseInit{ //nolint:errcheck
		PortID: portID, ChannelID: channelID,
	})
	return nil
}

// ChanCloseInit closes a channel from the initiating side. The module gets
// a chance to veto (e.g. pending transfers) before the channel is marked
// Closed.
func (k Keeper) ChanCloseInit(ctx context.Context, portID, channelID string) error {
	checked, err := k.ValidateChanCloseInit(ctx, portID, channelID)
	if err != nil {
		return err
	}
	return k.ExecuteChanCloseInit(ctx, portID, channelID, checked)
}

// checkedChanCloseConfirm carries the channel record a ChanCloseConfirm
// call will transition, once the counterparty's Closed state is confirmed.
type checkedChanCloseConfirm struct {
	channel channeltypes.ChannelEnd
}

// ValidateChanCloseConfirm verifies the counterparty's ChannelEnd is
// Closed through a membership proof and lets the bound module observe the
// confirmation. No writes.
func (k Keeper) ValidateChanCloseConfirm(ctx context.Context, portID, channelID string, proofInit []byte, proofHeight exported.Height) (checkedChanCloseConfirm, error) {
	channel, err := k.Channel(ctx, portID, channelID)
	if err != nil {
		return checkedChanCloseConfirm{}, err
	}
	if channel.State == channeltypes.Closed {
		return checkedChanCloseConfirm{}, errorsmod.Wrap(channeltypes.ErrInvalidChannelState, "channel is already Closed")
	}
	conn, _, err := k.connectionHop(ctx, channel.ConnectionHops)
	if err != nil {
		return checkedChanCloseConfirm{}, err
	}
	module, err := k.moduleForPort(portID)
	if err != nil {
		return checkedChanCloseConfirm{}, err
	}

	expectedChannel := channeltypes.ChannelEnd{
		State:          channeltypes.Closed,
		Ordering:       channel.Ordering,
		Counterparty:   channeltypes.Counterparty{PortID: portID, ChannelID: channelID},
		ConnectionHops: []string{conn.Counterparty.ConnectionID},
		Version:        channel.Version,
	}
	if err := k.verifyChannelState(ctx, conn, proofHeight, proofInit, channel.Counterparty.PortID, channel.Counterparty.ChannelID, expectedChannel); err != nil {
		return checkedChanCloseConfirm{}, err
	}

	if err := module.OnChanCloseConfirm(ctx, portID, channelID); err != nil {
		return checkedChanCloseConfirm{}, err
	}

	channel.State = channeltypes.Closed
	return checkedChanCloseConfirm{channel: channel}, nil
}

// ExecuteChanCloseConfirm marks the channel a prior ValidateChanCloseConfirm
// call already cleared as Closed.
func (k Keeper) ExecuteChanCloseConfirm(ctx context.Context, portID, channelID string, checked checkedChanCloseConfirm) error {
	if err := k.Channels.Set(ctx, newChanKey(portID, channelID), checked.channel); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&channeltypes.EventChannelCloseConfirm{ //nolint:errcheck
		PortID: portID, ChannelID: channelID,
	})
	return nil
}

// ChanCloseConfirm runs on the side observing the counterparty's close: it
// verifies the counterparty's ChannelEnd is Closed and mirrors the
// transition locally.
func (k Keeper) ChanCloseConfirm(ctx context.Context, portID, channelID string, proofInit []byte, proofHeight exported.Height) error {
	checked, err := k.ValidateChanCloseConfirm(ctx, portID, channelID, proofInit, proofHeight)
	if err != nil {
		return err
	}
	return k.ExecuteChanCloseConfirm(ctx, portID, channelID, checked)
}

// verifyChannelState proves a ChannelEnd membership against the
// counterparty's store as observed through conn's light client. Handshake
// proofs never observe the connection's delay period: that check is
// reserved for packet-flow proofs (see delayParams).
func (k Keeper) verifyChannelState(
	ctx context.Context,
	conn connectiontypes.ConnectionEnd,
	proofHeight exported.Height,
	proof []byte,
	counterpartyPortID, counterpartyChannelID string,
	expected channeltypes.ChannelEnd,
) error {
	if err := k.ClientKeeper.ValidateProofHeight(ctx, conn.ClientID, proofHeight); err != nil {
		return err
	}
	status, err := k.ClientKeeper.Status(ctx, conn.ClientID)
	if err != nil {
		return err
	}
	if status != exported.Active {
		return errorsmod.Wrapf(channeltypes.ErrClientNotActive, "client %s has status %s", conn.ClientID, status)
	}
	clientState, err := k.ClientKeeper.ClientState(ctx, conn.ClientID)
	if err != nil {
		return err
	}
	consState, err := k.ClientKeeper.ConsensusState(ctx, conn.ClientID, proofHeight)
	if err != nil {
		return err
	}
	path, err := commitmenttypes.ApplyPrefix(commitmenttypes.NewMerklePrefix(conn.Counterparty.Prefix), host.ChannelPath(counterpartyPortID, counterpartyChannelID))
	if err != nil {
		return err
	}
	value, err := jsonMarshal(expected)
	if err != nil {
		return err
	}
	if err := clientState.VerifyMembership(consState, 0, 0, 0, proofHeight, proofHeight, proof, path, value); err != nil {
		return errorsmod.Wrap(channeltypes.ErrVerifyChannelFailed, err.Error())
	}
	return nil
}
