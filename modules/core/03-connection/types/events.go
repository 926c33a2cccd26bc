package types

const (
	EventTypeOpenInitConnection    = "connection_open_init"
	EventTypeOpenTryConnection     = "connection_open_try"
	EventTypeOpenAckConnection     = "connection_open_ack"
	EventTypeOpenConfirmConnection = "connection_open_confirm"
)

type EventOpenInitConnection struct {
	ConnectionID string `json:"connection_id"`
	ClientID     string `json:"client_id"`
}

type EventOpenTryConnection struct {
	ConnectionID             string `json:"connection_id"`
	ClientID                 string `json:"client_id"`
	CounterpartyClientID     string `json:"counterparty_client_id"`
	CounterpartyConnectionID string `json:"counterparty_connection_id"`
}

type EventOpenAckConnection struct {
	ConnectionID             string `json:"connection_id"`
	CounterpartyConnectionID string `json:"counterparty_connection_id"`
}

type EventOpenConfirmConnection struct {
	ConnectionID string `json:"connection_id"`
}
