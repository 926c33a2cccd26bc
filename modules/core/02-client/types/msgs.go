package types

// MsgCreateClient creates a new light client tracking a counterparty chain.
type MsgCreateClient struct {
	ClientState    Any
	ConsensusState Any
	Signer         string
}

// MsgUpdateClient advances an existing light client with a new Header
// (or, if the header instead constitutes evidence, routes to misbehaviour
// handling via VerifyClientMessage/CheckForMisbehaviour).
type MsgUpdateClient struct {
	ClientID      string
	ClientMessage Any
	Signer        string
}

// MsgSubmitMisbehaviour freezes a client upon proof of misbehaviour.
type MsgSubmitMisbehaviour struct {
	ClientID     string
	Misbehaviour Any
	Signer       string
}

// MsgUpgradeClient upgrades a client across a counterparty chain upgrade.
// PlanHeight is the height at which the counterparty committed its
// post-upgrade client and consensus state, matching the upgrade paths the
// proofs are checked against.
type MsgUpgradeClient struct {
	ClientID               string
	UpgradedClient         Any
	UpgradedConsensusState Any
	PlanHeight             uint64
	ProofUpgradeClient     []byte
	ProofUpgradeConsState  []byte
	Signer                 string
}
