package types

// Event kind tags.
const (
	EventTypeCreateClient       = "create_client"
	EventTypeUpdateClient       = "update_client"
	EventTypeSubmitMisbehaviour = "client_misbehaviour"
	EventTypeUpgradeClient      = "upgrade_client"
)

// EventCreateClient is emitted once a client has been initialized.
type EventCreateClient struct {
	ClientID   string `json:"client_id"`
	ClientType string `json:"client_type"`
	ConsHeight string `json:"consensus_height"`
}

// EventUpdateClient is emitted once a header has advanced a client.
type EventUpdateClient struct {
	ClientID   string `json:"client_id"`
	ClientType string `json:"client_type"`
	ConsHeight string `json:"consensus_height"`
}

// EventSubmitMisbehaviour is emitted once a client has been frozen.
type EventSubmitMisbehaviour struct {
	ClientID   string `json:"client_id"`
	ClientType string `json:"client_type"`
}

// EventUpgradeClient is emitted once a client has adopted its
// counterparty's post-upgrade client and consensus state.
type EventUpgradeClient struct {
	ClientID   string `json:"client_id"`
	ClientType string `json:"client_type"`
	ConsHeight string `json:"consensus_height"`
}
