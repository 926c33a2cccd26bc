package keeper

import (
	"context"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/meridian-chain/ibc-core/modules/core/03-connection/types"
	commitmenttypes "github.com/meridian-chain/ibc-core/modules/core/23-commitment/types"
	host "github.com/meridian-chain/ibc-core/modules/core/24-host"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

func idFor(seq uint64) string { return host.FormatConnectionIdentifier(seq) }

func jsonMarshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

// defaultPrefix is this chain's own commitment prefix, the value a
// counterparty stores as Counterparty.Prefix when it builds a
// ConnectionEnd pointing back at us. Proofs we verify against the
// counterparty's store use counterparty.Prefix instead, since that one
// is supplied by the handshake message rather than assumed locally.
var defaultPrefix = []byte("ibc")

// checkedConnOpenInit carries the negotiated versions for a handshake that
// has confirmed its client exists; it performs no writes.
type checkedConnOpenInit struct {
	versions []connectiontypes.Version
}

// ValidateConnOpenInit confirms the named client exists and fills in the
// default version set if the caller proposed none. No writes.
func (k Keeper) ValidateConnOpenInit(ctx context.Context, clientID string, versions []connectiontypes.Version) (checkedConnOpenInit, error) {
	if _, err := k.ClientKeeper.ClientState(ctx, clientID); err != nil {
		return checkedConnOpenInit{}, err
	}
	if len(versions) == 0 {
		versions = []connectiontypes.Version{connectiontypes.DefaultVersion()}
	}
	return checkedConnOpenInit{versions: versions}, nil
}

// ExecuteConnOpenInit allocates a fresh ConnectionId and stores a
// ConnectionEnd in Init, with the counterparty's connection id left unset.
func (k Keeper) ExecuteConnOpenInit(ctx context.Context, clientID string, counterparty connectiontypes.Counterparty, delayPeriod uint64, checked checkedConnOpenInit) (string, error) {
	seq, err := k.NextConnectionSeq.Next(ctx)
	if err != nil {
		return "", err
	}
	connectionID := idFor(seq)

	conn := connectiontypes.ConnectionEnd{
		State:        connectiontypes.Init,
		ClientID:     clientID,
		Counterparty: counterparty,
		Versions:     checked.versions,
		DelayPeriod:  delayPeriod,
	}
	if err := k.Connections.Set(ctx, connectionID, conn); err != nil {
		return "", err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&connectiontypes.EventOpenInitConnection{ //nolint:errcheck
		ConnectionID: connectionID, ClientID: clientID,
	})
	return connectionID, nil
}

// ConnOpenInit begins a handshake on this chain (the connection
// initiator): allocates a fresh ConnectionId and stores a ConnectionEnd
// in Init, with the counterparty's connection id left unset.
func (k Keeper) ConnOpenInit(ctx context.Context, clientID string, counterparty connectiontypes.Counterparty, versions []connectiontypes.Version, delayPeriod uint64) (string, error) {
	checked, err := k.ValidateConnOpenInit(ctx, clientID, versions)
	if err != nil {
		return "", err
	}
	return k.ExecuteConnOpenInit(ctx, clientID, counterparty, delayPeriod, checked)
}

// checkedConnOpenTry carries the negotiated version for a TryOpen
// handshake whose three membership proofs have already been verified.
type checkedConnOpenTry struct {
	version connectiontypes.Version
}

// ValidateConnOpenTry verifies the client is Active and that A's
// ConnectionEnd, ClientState and ConsensusState are all committed as
// claimed, as observed through the local light client tracking A. No
// writes.
func (k Keeper) ValidateConnOpenTry(
	ctx context.Context,
	clientID string,
	clientStateOfBOnA clienttypes.Any,
	counterparty connectiontypes.Counterparty,
	delayPeriod uint64,
	counterpartyVersions []connectiontypes.Version,
	proofHeight exported.Height,
	proofInit, proofClient, proofConsensus []byte,
	consensusHeightOfBOnA exported.Height,
) (checkedConnOpenTry, error) {
	version, err := connectiontypes.PickVersion(counterpartyVersions)
	if err != nil {
		return checkedConnOpenTry{}, err
	}

	if err := k.ClientKeeper.ValidateProofHeight(ctx, clientID, proofHeight); err != nil {
		return checkedConnOpenTry{}, err
	}
	status, err := k.ClientKeeper.Status(ctx, clientID)
	if err != nil {
		return checkedConnOpenTry{}, err
	}
	if status != exported.Active {
		return checkedConnOpenTry{}, errorsmod.Wrapf(connectiontypes.ErrClientNotActive, "client %s has status %s", clientID, status)
	}

	expectedConn := connectiontypes.ConnectionEnd{
		State:    connectiontypes.Init,
		ClientID: counterparty.ClientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID:     clientID,
			ConnectionID: "",
			Prefix:       defaultPrefix,
		},
		Versions:    counterpartyVersions,
		DelayPeriod: delayPeriod,
	}
	if err := k.verifyConnectionState(ctx, clientID, counterparty.Prefix, proofHeight, proofInit, counterparty.ConnectionID, expectedConn); err != nil {
		return checkedConnOpenTry{}, err
	}
	if err := k.verifyClientState(ctx, clientID, counterparty.Prefix, proofHeight, proofClient, counterparty.ClientID, clientStateOfBOnA); err != nil {
		return checkedConnOpenTry{}, err
	}
	if err := k.verifyClientConsensusState(ctx, clientID, counterparty.Prefix, proofHeight, proofConsensus, counterparty.ClientID, consensusHeightOfBOnA); err != nil {
		return checkedConnOpenTry{}, err
	}

	return checkedConnOpenTry{version: version}, nil
}

// ExecuteConnOpenTry stores a ConnectionEnd in TryOpen using the version a
// prior ValidateConnOpenTry call already negotiated.
func (k Keeper) ExecuteConnOpenTry(ctx context.Context, clientID string, counterparty connectiontypes.Counterparty, delayPeriod uint64, checked checkedConnOpenTry) (string, error) {
	seq, err := k.NextConnectionSeq.Next(ctx)
	if err != nil {
		return "", err
	}
	connectionID := idFor(seq)

	conn := connectiontypes.ConnectionEnd{
		State:        connectiontypes.TryOpen,
		ClientID:     clientID,
		Counterparty: counterparty,
		Versions:     []connectiontypes.Version{checked.version},
		DelayPeriod:  delayPeriod,
	}
	if err := k.Connections.Set(ctx, connectionID, conn); err != nil {
		return "", err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&connectiontypes.EventOpenTryConnection{ //nolint:errcheck
		ConnectionID: connectionID, ClientID: clientID,
		CounterpartyClientID: counterparty.ClientID, CounterpartyConnectionID: counterparty.ConnectionID,
	})
	return connectionID, nil
}

// ConnOpenTry runs on chain B once A's OpenInit has committed. It verifies
// three membership proofs against A's state as observed through the local
// light client tracking A, then stores a ConnectionEnd in TryOpen.
func (k Keeper) ConnOpenTry(
	ctx context.Context,
	clientID string,
	clientStateOfBOnA clienttypes.Any,
	counterparty connectiontypes.Counterparty,
	delayPeriod uint64,
	counterpartyVersions []connectiontypes.Version,
	proofHeight exported.Height,
	proofInit, proofClient, proofConsensus []byte,
	consensusHeightOfBOnA exported.Height,
) (string, error) {
	checked, err := k.ValidateConnOpenTry(ctx, clientID, clientStateOfBOnA, counterparty, delayPeriod, counterpartyVersions, proofHeight, proofInit, proofClient, proofConsensus, consensusHeightOfBOnA)
	if err != nil {
		return "", err
	}
	return k.ExecuteConnOpenTry(ctx, clientID, counterparty, delayPeriod, checked)
}

// checkedConnOpenAck carries the connection record an OpenAck call will
// transition, once its three membership proofs are confirmed.
type checkedConnOpenAck struct {
	conn connectiontypes.ConnectionEnd
}

// ValidateConnOpenAck verifies the client is Active and that B's
// ConnectionEnd, ClientState and ConsensusState are all committed as
// claimed. No writes.
func (k Keeper) ValidateConnOpenAck(
	ctx context.Context,
	connectionID string,
	counterpartyConnectionID string,
	version connectiontypes.Version,
	clientStateOfAOnB clienttypes.Any,
	proofHeight exported.Height,
	proofTry, proofClient, proofConsensus []byte,
	consensusHeightOfAOnB exported.Height,
) (checkedConnOpenAck, error) {
	conn, err := k.Connection(ctx, connectionID)
	if err != nil {
		return checkedConnOpenAck{}, err
	}
	if conn.State != connectiontypes.Init {
		return checkedConnOpenAck{}, errorsmod.Wrapf(connectiontypes.ErrInvalidConnectionState, "expected Init, got %s", conn.State)
	}
	if !connectiontypes.IsSupported(version) {
		return checkedConnOpenAck{}, connectiontypes.ErrVersionsMismatch
	}

	if err := k.ClientKeeper.ValidateProofHeight(ctx, conn.ClientID, proofHeight); err != nil {
		return checkedConnOpenAck{}, err
	}
	status, err := k.ClientKeeper.Status(ctx, conn.ClientID)
	if err != nil {
		return checkedConnOpenAck{}, err
	}
	if status != exported.Active {
		return checkedConnOpenAck{}, errorsmod.Wrapf(connectiontypes.ErrClientNotActive, "client %s has status %s", conn.ClientID, status)
	}

	expectedConn := connectiontypes.ConnectionEnd{
		State:    connectiontypes.TryOpen,
		ClientID: conn.Counterparty.ClientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID:     conn.ClientID,
			ConnectionID: connectionID,
			Prefix:       defaultPrefix,
		},
		Versions:    []connectiontypes.Version{version},
		DelayPeriod: conn.DelayPeriod,
	}
	if err := k.verifyConnectionState(ctx, conn.ClientID, conn.Counterparty.Prefix, proofHeight, proofTry, counterpartyConnectionID, expectedConn); err != nil {
		return checkedConnOpenAck{}, err
	}
	if err := k.verifyClientState(ctx, conn.ClientID, conn.Counterparty.Prefix, proofHeight, proofClient, conn.Counterparty.ClientID, clientStateOfAOnB); err != nil {
		return checkedConnOpenAck{}, err
	}
	if err := k.verifyClientConsensusState(ctx, conn.ClientID, conn.Counterparty.Prefix, proofHeight, proofConsensus, conn.Counterparty.ClientID, consensusHeightOfAOnB); err != nil {
		return checkedConnOpenAck{}, err
	}

	conn.State = connectiontypes.Open
	conn.Counterparty.ConnectionID = counterpartyConnectionID
	conn.Versions = []connectiontypes.Version{version}
	return checkedConnOpenAck{conn: conn}, nil
}

// ExecuteConnOpenAck transitions Init -> Open and records the counterparty
// connection id and negotiated version a prior ValidateConnOpenAck call
// already checked.
func (k Keeper) ExecuteConnOpenAck(ctx context.Context, connectionID string, checked checkedConnOpenAck) error {
	if err := k.Connections.Set(ctx, connectionID, checked.conn); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&connectiontypes.EventOpenAckConnection{ //nolint:errcheck
		ConnectionID: connectionID, CounterpartyConnectionID: checked.conn.Counterparty.ConnectionID,
	})
	return nil
}

// ConnOpenAck runs on chain A once B's OpenTry has committed. It verifies
// three analogous proofs, transitions Init -> Open and records the
// counterparty connection id and negotiated version.
func (k Keeper) ConnOpenAck(
	ctx context.Context,
	connectionID string,
	counterpartyConnectionID string,
	version connectiontypes.Version,
	clientStateOfAOnB clienttypes.Any,
	proofHeight exported.Height,
	proofTry, proofClient, proofConsensus []byte,
	consensusHeightOfAOnB exported.Height,
) error {
	checked, err := k.ValidateConnOpenAck(ctx, connectionID, counterpartyConnectionID, version, clientStateOfAOnB, proofHeight, proofTry, proofClient, proofConsensus, consensusHeightOfAOnB)
	if err != nil {
		return err
	}
	return k.ExecuteConnOpenAck(ctx, connectionID, checked)
}

// checkedConnOpenConfirm carries the connection record a ConnOpenConfirm
// call will transition, once A's Open state is confirmed.
type checkedConnOpenConfirm struct {
	conn connectiontypes.ConnectionEnd
}

// ValidateConnOpenConfirm verifies A is Open through a membership proof.
// No writes.
func (k Keeper) ValidateConnOpenConfirm(ctx context.Context, connectionID string, proofAck []byte, proofHeight exported.Height) (checkedConnOpenConfirm, error) {
	conn, err := k.Connection(ctx, connectionID)
	if err != nil {
		return checkedConnOpenConfirm{}, err
	}
	if conn.State != connectiontypes.TryOpen {
		return checkedConnOpenConfirm{}, errorsmod.Wrapf(connectiontypes.ErrInvalidConnectionState, "expected TryOpen, got %s", conn.State)
	}

	if err := k.ClientKeeper.ValidateProofHeight(ctx, conn.ClientID, proofHeight); err != nil {
		return checkedConnOpenConfirm{}, err
	}

	expectedConn := connectiontypes.ConnectionEnd{
		State:    connectiontypes.Open,
		ClientID: conn.Counterparty.ClientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID:     conn.ClientID,
			ConnectionID: connectionID,
			Prefix:       defaultPrefix,
		},
		Versions:    conn.Versions,
		DelayPeriod: conn.DelayPeriod,
	}
	if err := k.verifyConnectionState(ctx, conn.ClientID, conn.Counterparty.Prefix, proofHeight, proofAck, conn.Counterparty.ConnectionID, expectedConn); err != nil {
		return checkedConnOpenConfirm{}, err
	}

	conn.State = connectiontypes.Open
	return checkedConnOpenConfirm{conn: conn}, nil
}

// ExecuteConnOpenConfirm transitions TryOpen -> Open for the connection a
// prior ValidateConnOpenConfirm call already verified.
func (k Keeper) ExecuteConnOpenConfirm(ctx context.Context, connectionID string, checked checkedConnOpenConfirm) error {
	if err := k.Connections.Set(ctx, connectionID, checked.conn); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&connectiontypes.EventOpenConfirmConnection{ //nolint:errcheck
		ConnectionID: connectionID,
	})
	return nil
}

// ConnOpenConfirm runs on chain B once A's OpenAck has committed. It
// verifies A is Open and transitions TryOpen -> Open.
func (k Keeper) ConnOpenConfirm(ctx context.Context, connectionID string, proofAck []byte, proofHeight exported.Height) error {
	checked, err := k.ValidateConnOpenConfirm(ctx, connectionID, proofAck, proofHeight)
	if err != nil {
		return err
	}
	return k.ExecuteConnOpenConfirm(ctx, connectionID, checked)
}

func (k Keeper) verifyConnectionState(ctx context.Context, clientID string, prefix []byte, proofHeight exported.Height, proof []byte, counterpartyConnectionID string, expected connectiontypes.ConnectionEnd) error {
	clientState, err := k.ClientKeeper.ClientState(ctx, clientID)
	if err != nil {
		return err
	}
	consState, err := k.ClientKeeper.ConsensusState(ctx, clientID, proofHeight)
	if err != nil {
		return err
	}
	path, err := commitmenttypes.ApplyPrefix(commitmenttypes.NewMerklePrefix(prefix), host.ConnectionPath(counterpartyConnectionID))
	if err != nil {
		return err
	}
	value, err := jsonMarshal(expected)
	if err != nil {
		return err
	}
	if err := clientState.VerifyMembership(consState, 0, 0, 0, proofHeight, proofHeight, proof, path, value); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrInvalidProof, err.Error())
	}
	return nil
}

func (k Keeper) verifyClientState(ctx context.Context, clientID string, prefix []byte, proofHeight exported.Height, proof []byte, counterpartyClientID string, clientStateAny clienttypes.Any) error {
	clientState, err := k.ClientKeeper.ClientState(ctx, clientID)
	if err != nil {
		return err
	}
	consState, err := k.ClientKeeper.ConsensusState(ctx, clientID, proofHeight)
	if err != nil {
		return err
	}
	path, err := commitmenttypes.ApplyPrefix(commitmenttypes.NewMerklePrefix(prefix), host.FullClientStatePath(counterpartyClientID))
	if err != nil {
		return err
	}
	if err := clientState.VerifyMembership(consState, 0, 0, 0, proofHeight, proofHeight, proof, path, clientStateAny.Value); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrInvalidProof, err.Error())
	}
	return nil
}

func (k Keeper) verifyClientConsensusState(ctx context.Context, clientID string, prefix []byte, proofHeight exported.Height, proof []byte, counterpartyClientID string, consensusHeight exported.Height) error {
	clientState, err := k.ClientKeeper.ClientState(ctx, clientID)
	if err != nil {
		return err
	}
	consState, err := k.ClientKeeper.ConsensusState(ctx, clientID, proofHeight)
	if err != nil {
		return err
	}
	path, err := commitmenttypes.ApplyPrefix(
		commitmenttypes.NewMerklePrefix(prefix),
		host.FullConsensusStatePath(counterpartyClientID, consensusHeight.GetRevisionNumber(), consensusHeight.GetRevisionHeight()),
	)
	if err != nil {
		return err
	}
	if err := clientState.VerifyMembership(consState, 0, 0, 0, proofHeight, proofHeight, proof, path, nil); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrInvalidProof, err.Error())
	}
	return nil
}
