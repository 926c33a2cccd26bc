package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/meridian-chain/ibc-core/modules/core/02-client/types"
	commitmenttypes "github.com/meridian-chain/ibc-core/modules/core/23-commitment/types"
	host "github.com/meridian-chain/ibc-core/modules/core/24-host"
	"github.com/meridian-chain/ibc-core/modules/core/exported"
)

// defaultTrustingPeriod is applied when a concrete ClientState does not
// encode its own; expressed in nanoseconds to match exported.Timestamp.
const defaultTrustingPeriod = int64(14 * 24 * 60 * 60 * 1_000_000_000) // 14 days

// ClientState loads and decodes a client's ClientState via its registered
// ClientCodec.
func (k Keeper) ClientState(ctx context.Context, clientID string) (exported.ClientState, error) {
	stored, err := k.ClientStates.Get(ctx, clientID)
	if err != nil {
		return nil, errorsmod.Wrapf(clienttypes.ErrClientNotFound, "clientID %s: %v", clientID, err)
	}
	codec, err := clienttypes.LookupClientCodec(stored.TypeURL)
	if err != nil {
		return nil, err
	}
	return codec.UnmarshalClientState(stored.Value)
}

// ConsensusState loads and decodes a client's ConsensusState at a height.
func (k Keeper) ConsensusState(ctx context.Context, clientID string, height exported.Height) (exported.ConsensusState, error) {
	stored, err := k.ConsensusStates.Get(ctx, consensusKey(clientID, height))
	if err != nil {
		return nil, errorsmod.Wrapf(clienttypes.ErrConsensusStateNotFound, "clientID %s height %s: %v", clientID, height, err)
	}
	codec, err := clienttypes.LookupClientCodec(stored.TypeURL)
	if err != nil {
		return nil, err
	}
	return codec.UnmarshalConsensusState(stored.Value)
}

// Status reports the client's current status, applying any frozen height
// recorded by a prior misbehaviour submission. The frozen height is handed
// to the client's own Status method, and whatever status that method
// returns is the result.
func (k Keeper) Status(ctx context.Context, clientID string) (exported.Status, error) {
	clientState, err := k.ClientState(ctx, clientID)
	if err != nil {
		return exported.Unknown, err
	}
	latest, err := k.ConsensusState(ctx, clientID, clientState.GetLatestHeight())
	if err != nil {
		return exported.Unknown, err
	}
	frozenHeight, _ := k.FrozenHeights.Get(ctx, clientID)
	return clientState.Status(latest, frozenHeight, defaultTrustingPeriod, blockTime(ctx)), nil
}

// ValidateProofHeight fails if a proof was produced at a height later than
// the client's latest known height.
func (k Keeper) ValidateProofHeight(ctx context.Context, clientID string, proofHeight exported.Height) error {
	clientState, err := k.ClientState(ctx, clientID)
	if err != nil {
		return err
	}
	if proofHeight.GT(clientState.GetLatestHeight()) {
		return errorsmod.Wrapf(clienttypes.ErrInvalidHeight,
			"proof height %s is greater than latest height %s", proofHeight, clientState.GetLatestHeight())
	}
	return nil
}

// checkedCreateClient carries the decoded, already-validated state a
// ValidateCreateClient pass hands to ExecuteCreateClient. It never touches
// the store: everything on it is a value already in memory.
type checkedCreateClient struct {
	clientState    exported.ClientState
	clientStateAny clienttypes.Any
	consStateAny   clienttypes.Any
}

// ValidateCreateClient decodes and validates a proposed client and its
// initial consensus state. It performs no writes, so it is safe to run
// concurrently across many candidate messages during mempool admission.
func (k Keeper) ValidateCreateClient(ctx context.Context, clientStateAny, consensusStateAny clienttypes.Any) (checkedCreateClient, error) {
	codec, err := clienttypes.LookupClientCodec(clientStateAny.TypeURL)
	if err != nil {
		return checkedCreateClient{}, err
	}
	clientState, err := codec.UnmarshalClientState(clientStateAny.Value)
	if err != nil {
		return checkedCreateClient{}, errorsmod.Wrap(err, "failed to unmarshal client state")
	}
	if err := clientState.Validate(); err != nil {
		return checkedCreateClient{}, errorsmod.Wrap(clienttypes.ErrInvalidClient, err.Error())
	}
	consensusState, err := codec.UnmarshalConsensusState(consensusStateAny.Value)
	if err != nil {
		return checkedCreateClient{}, errorsmod.Wrap(err, "failed to unmarshal consensus state")
	}
	if err := consensusState.ValidateBasic(); err != nil {
		return checkedCreateClient{}, errorsmod.Wrap(clienttypes.ErrInvalidConsensusState, err.Error())
	}
	if err := clientState.Initialize(consensusState); err != nil {
		return checkedCreateClient{}, errorsmod.Wrap(clienttypes.ErrInvalidClient, err.Error())
	}
	return checkedCreateClient{clientState: clientState, clientStateAny: clientStateAny, consStateAny: consensusStateAny}, nil
}

// ExecuteCreateClient allocates a fresh ClientId and persists the client
// and consensus state a prior ValidateCreateClient call already checked.
// Callers must not call this on an unvalidated pair.
func (k Keeper) ExecuteCreateClient(ctx context.Context, checked checkedCreateClient) (string, error) {
	seq, err := k.NextClientSeq.Next(ctx)
	if err != nil {
		return "", err
	}
	clientID := idFor(checked.clientState.ClientType(), seq)

	if err := k.ClientStates.Set(ctx, clientID, checked.clientStateAny); err != nil {
		return "", err
	}
	if err := k.ConsensusStates.Set(ctx, consensusKey(clientID, checked.clientState.GetLatestHeight()), checked.consStateAny); err != nil {
		return "", err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&clienttypes.EventCreateClient{ //nolint:errcheck
		ClientID:   clientID,
		ClientType: checked.clientState.ClientType(),
		ConsHeight: checked.clientState.GetLatestHeight().String(),
	})

	return clientID, nil
}

// CreateClient initializes a new client and its first consensus state,
// allocating a fresh ClientId of the form {client-type}-{u64}.
func (k Keeper) CreateClient(ctx context.Context, clientStateAny, consensusStateAny clienttypes.Any) (string, error) {
	checked, err := k.ValidateCreateClient(ctx, clientStateAny, consensusStateAny)
	if err != nil {
		return "", err
	}
	return k.ExecuteCreateClient(ctx, checked)
}

func idFor(clientType string, seq uint64) string {
	return clientType + "-" + itoa(seq)
}

// itoa avoids importing strconv twice across this small file set; kept
// local since it's only ever used to format a client sequence number.
func itoa(u uint64) string {
	if u == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	return string(buf[i:])
}

// checkedUpdateClient carries the result of verifying a client message
// against the client's currently trusted consensus state.
type checkedUpdateClient struct {
	clientState  exported.ClientState
	clientMsg    exported.ClientMessage
	clientMsgAny clienttypes.Any
	misbehaviour bool
}

// ValidateUpdateClient verifies a Header or misbehaviour evidence against
// the client's trusted consensus state. It performs no writes: the
// misbehaviour-or-update branch is decided here but only taken by
// ExecuteUpdateClient.
func (k Keeper) ValidateUpdateClient(ctx context.Context, clientID string, clientMsgAny clienttypes.Any) (checkedUpdateClient, error) {
	status, err := k.Status(ctx, clientID)
	if err != nil {
		return checkedUpdateClient{}, err
	}
	if status != exported.Active {
		return checkedUpdateClient{}, errorsmod.Wrapf(clienttypes.ErrClientNotActive, "client %s has status %s", clientID, status)
	}

	clientState, err := k.ClientState(ctx, clientID)
	if err != nil {
		return checkedUpdateClient{}, err
	}
	codec, err := clienttypes.LookupClientCodec(clientState.ClientType())
	if err != nil {
		return checkedUpdateClient{}, err
	}
	clientMsg, err := codec.UnmarshalClientMessage(clientMsgAny.Value)
	if err != nil {
		return checkedUpdateClient{}, errorsmod.Wrap(err, "failed to unmarshal client message")
	}

	trusted, err := k.ConsensusState(ctx, clientID, clientState.GetLatestHeight())
	if err != nil {
		return checkedUpdateClient{}, err
	}

	if err := clientState.VerifyClientMessage(trusted, clientMsg); err != nil {
		return checkedUpdateClient{}, errorsmod.Wrap(clienttypes.ErrHeaderVerificationFailure, err.Error())
	}

	return checkedUpdateClient{
		clientState:  clientState,
		clientMsg:    clientMsg,
		clientMsgAny: clientMsgAny,
		misbehaviour: clientState.CheckForMisbehaviour(trusted, clientMsg),
	}, nil
}

// ExecuteUpdateClient applies the outcome a prior ValidateUpdateClient call
// already verified: either freezing the client on misbehaviour, or
// advancing it to the new header's state.
func (k Keeper) ExecuteUpdateClient(ctx context.Context, clientID string, checked checkedUpdateClient) error {
	if checked.misbehaviour {
		frozen := checked.clientState.UpdateStateOnMisbehaviour(checked.clientMsg)
		if err := k.freezeClient(ctx, clientID, frozen); err != nil {
			return err
		}
		sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&clienttypes.EventSubmitMisbehaviour{ //nolint:errcheck
			ClientID: clientID, ClientType: checked.clientState.ClientType(),
		})
		return nil
	}

	newClientState, newConsState, newHeight, err := checked.clientState.UpdateState(checked.clientMsg)
	if err != nil {
		return errorsmod.Wrap(clienttypes.ErrHeaderVerificationFailure, err.Error())
	}

	newClientStateAny, err := clienttypes.NewAny(checked.clientMsgAny.TypeURL, newClientState)
	if err != nil {
		return err
	}
	newConsStateAny, err := clienttypes.NewAny(checked.clientMsgAny.TypeURL, newConsState)
	if err != nil {
		return err
	}
	if err := k.setConsensusStateImmutable(ctx, clientID, newHeight, newConsStateAny); err != nil {
		return err
	}
	if err := k.ClientStates.Set(ctx, clientID, newClientStateAny); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&clienttypes.EventUpdateClient{ //nolint:errcheck
		ClientID: clientID, ClientType: checked.clientState.ClientType(), ConsHeight: newHeight.String(),
	})
	return nil
}

// UpdateClient verifies and applies a Header (or detects and routes
// misbehaviour) to an existing client.
func (k Keeper) UpdateClient(ctx context.Context, clientID string, clientMsgAny clienttypes.Any) error {
	checked, err := k.ValidateUpdateClient(ctx, clientID, clientMsgAny)
	if err != nil {
		return err
	}
	return k.ExecuteUpdateClient(ctx, clientID, checked)
}

// setConsensusStateImmutable writes a consensus state, enforcing that two
// writes at the same (client, height) must be byte-identical.
func (k Keeper) setConsensusStateImmutable(ctx context.Context, clientID string, height exported.Height, value clienttypes.Any) error {
	key := consensusKey(clientID, height)
	existing, err := k.ConsensusStates.Get(ctx, key)
	if err == nil {
		if string(existing.Value) != string(value.Value) {
			return errorsmod.Wrapf(clienttypes.ErrConsensusStateMismatch,
				"client %s height %s already has a different consensus state", clientID, height)
		}
		return nil
	}
	return k.ConsensusStates.Set(ctx, key, value)
}

// checkedMisbehaviour carries standalone misbehaviour evidence that has
// already been proven against the client's trusted consensus state.
type checkedMisbehaviour struct {
	clientState  exported.ClientState
	misbehaviour exported.ClientMessage
}

// ValidateSubmitMisbehaviour verifies standalone misbehaviour evidence
// against the client's trusted consensus state and confirms it actually
// constitutes misbehaviour. It performs no writes.
func (k Keeper) ValidateSubmitMisbehaviour(ctx context.Context, clientID string, misbehaviourAny clienttypes.Any) (checkedMisbehaviour, error) {
	clientState, err := k.ClientState(ctx, clientID)
	if err != nil {
		return checkedMisbehaviour{}, err
	}
	codec, err := clienttypes.LookupClientCodec(clientState.ClientType())
	if err != nil {
		return checkedMisbehaviour{}, err
	}
	misbehaviour, err := codec.UnmarshalClientMessage(misbehaviourAny.Value)
	if err != nil {
		return checkedMisbehaviour{}, errorsmod.Wrap(err, "failed to unmarshal misbehaviour")
	}
	trusted, err := k.ConsensusState(ctx, clientID, clientState.GetLatestHeight())
	if err != nil {
		return checkedMisbehaviour{}, err
	}
	if err := clientState.VerifyClientMessage(trusted, misbehaviour); err != nil {
		return checkedMisbehaviour{}, errorsmod.Wrap(clienttypes.ErrHeaderVerificationFailure, err.Error())
	}
	if !clientState.CheckForMisbehaviour(trusted, misbehaviour) {
		return checkedMisbehaviour{}, errorsmod.Wrap(clienttypes.ErrMisbehaviourHandlingFailure, "client message does not constitute misbehaviour")
	}
	return checkedMisbehaviour{clientState: clientState, misbehaviour: misbehaviour}, nil
}

// ExecuteSubmitMisbehaviour freezes the client described by a prior
// ValidateSubmitMisbehaviour call.
func (k Keeper) ExecuteSubmitMisbehaviour(ctx context.Context, clientID string, checked checkedMisbehaviour) error {
	frozen := checked.clientState.UpdateStateOnMisbehaviour(checked.misbehaviour)
	if err := k.freezeClient(ctx, clientID, frozen); err != nil {
		return err
	}
	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&clienttypes.EventSubmitMisbehaviour{ //nolint:errcheck
		ClientID: clientID, ClientType: checked.clientState.ClientType(),
	})
	return nil
}

// SubmitMisbehaviour freezes a client given standalone misbehaviour
// evidence, independent of any routine update.
func (k Keeper) SubmitMisbehaviour(ctx context.Context, clientID string, misbehaviourAny clienttypes.Any) error {
	checked, err := k.ValidateSubmitMisbehaviour(ctx, clientID, misbehaviourAny)
	if err != nil {
		return err
	}
	return k.ExecuteSubmitMisbehaviour(ctx, clientID, checked)
}

// checkedUpgradeClient carries an upgraded client and consensus state whose
// membership proofs (against the pre-upgrade client) have already been
// verified.
type checkedUpgradeClient struct {
	upgradedClient       exported.ClientState
	upgradedClientAny    clienttypes.Any
	upgradedConsStateAny clienttypes.Any
}

// ValidateUpgradeClient verifies that the counterparty committed the
// upgraded client and consensus state at planHeight, against the client's
// currently trusted consensus state. It performs no writes.
func (k Keeper) ValidateUpgradeClient(
	ctx context.Context,
	clientID string,
	upgradedClientAny, upgradedConsStateAny clienttypes.Any,
	planHeight uint64,
	proofUpgradeClient, proofUpgradeConsState []byte,
) (checkedUpgradeClient, error) {
	clientState, err := k.ClientState(ctx, clientID)
	if err != nil {
		return checkedUpgradeClient{}, err
	}
	consState, err := k.ConsensusState(ctx, clientID, clientState.GetLatestHeight())
	if err != nil {
		return checkedUpgradeClient{}, err
	}
	proofHeight := clientState.GetLatestHeight()

	clientPath := commitmenttypes.NewMerklePath(host.UpgradedClientStatePath(planHeight))
	if err := clientState.VerifyMembership(consState, 0, 0, 0, proofHeight, proofHeight, proofUpgradeClient, clientPath, upgradedClientAny.Value); err != nil {
		return checkedUpgradeClient{}, errorsmod.Wrap(clienttypes.ErrInvalidClient, err.Error())
	}
	consStatePath := commitmenttypes.NewMerklePath(host.UpgradedConsensusStatePath(planHeight))
	if err := clientState.VerifyMembership(consState, 0, 0, 0, proofHeight, proofHeight, proofUpgradeConsState, consStatePath, upgradedConsStateAny.Value); err != nil {
		return checkedUpgradeClient{}, errorsmod.Wrap(clienttypes.ErrInvalidConsensusState, err.Error())
	}

	codec, err := clienttypes.LookupClientCodec(upgradedClientAny.TypeURL)
	if err != nil {
		return checkedUpgradeClient{}, err
	}
	upgradedClient, err := codec.UnmarshalClientState(upgradedClientAny.Value)
	if err != nil {
		return checkedUpgradeClient{}, errorsmod.Wrap(err, "failed to unmarshal upgraded client state")
	}
	upgradedConsState, err := codec.UnmarshalConsensusState(upgradedConsStateAny.Value)
	if err != nil {
		return checkedUpgradeClient{}, errorsmod.Wrap(err, "failed to unmarshal upgraded consensus state")
	}
	if err := upgradedConsState.ValidateBasic(); err != nil {
		return checkedUpgradeClient{}, errorsmod.Wrap(clienttypes.ErrInvalidConsensusState, err.Error())
	}

	return checkedUpgradeClient{
		upgradedClient:       upgradedClient,
		upgradedClientAny:    upgradedClientAny,
		upgradedConsStateAny: upgradedConsStateAny,
	}, nil
}

// ExecuteUpgradeClient adopts the upgraded client and consensus state a
// prior ValidateUpgradeClient call already proved. The adopted client
// state's mutable fields (frozen height, etc.) are reset via
// ZeroCustomFields: an upgrade never carries forward the old client's
// transient state.
func (k Keeper) ExecuteUpgradeClient(ctx context.Context, clientID string, checked checkedUpgradeClient) error {
	zeroed := checked.upgradedClient.ZeroCustomFields()
	zeroedAny, err := clienttypes.NewAny(checked.upgradedClientAny.TypeURL, zeroed)
	if err != nil {
		return err
	}
	if err := k.ClientStates.Set(ctx, clientID, zeroedAny); err != nil {
		return err
	}
	if err := k.setConsensusStateImmutable(ctx, clientID, zeroed.GetLatestHeight(), checked.upgradedConsStateAny); err != nil {
		return err
	}

	if err := k.FrozenHeights.Remove(ctx, clientID); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitTypedEvent(&clienttypes.EventUpgradeClient{ //nolint:errcheck
		ClientID: clientID, ClientType: zeroed.ClientType(), ConsHeight: zeroed.GetLatestHeight().String(),
	})
	return nil
}

// UpgradeClient adopts a counterparty's post-upgrade ClientState and
// ConsensusState once proofs show both were committed, at planHeight,
// against the client's currently trusted consensus state.
func (k Keeper) UpgradeClient(
	ctx context.Context,
	clientID string,
	upgradedClientAny, upgradedConsStateAny clienttypes.Any,
	planHeight uint64,
	proofUpgradeClient, proofUpgradeConsState []byte,
) error {
	checked, err := k.ValidateUpgradeClient(ctx, clientID, upgradedClientAny, upgradedConsStateAny, planHeight, proofUpgradeClient, proofUpgradeConsState)
	if err != nil {
		return err
	}
	return k.ExecuteUpgradeClient(ctx, clientID, checked)
}

func (k Keeper) freezeClient(ctx context.Context, clientID string, clientState exported.ClientState) error {
	clientStateAny, err := clienttypes.NewAny(clientState.ClientType(), clientState)
	if err != nil {
		return err
	}
	if err := k.ClientStates.Set(ctx, clientID, clientStateAny); err != nil {
		return err
	}
	return k.FrozenHeights.Set(ctx, clientID, blockHeight(ctx))
}
