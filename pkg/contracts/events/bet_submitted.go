package events

import "encoding/json"

// Evento emitido pelo bet-placer após cada tentativa de envio de cupom.
// Publicado no Kafka (bet_submitted) e no Redis Pub/Sub para dashboards.
type BetSubmitted struct {
	AttemptID    string `json:"attempt_id"`
	BetRequestID string `json:"bet_request_id"`
	EventID      string `json:"event_id"`
	MarketID     string `json:"market_id"`
	OutcomeID    string `json:"outcome_id"`
	MarketType   string `json:"market_type"` // "1x2" | "total" | "hcp"
	Specifiers   string `json:"specifiers"`
	StakeAmount  string `json:"stake_amount"`
	Odds         string `json:"odds"`
	BetType      string `json:"bet_type"`

	StatusCode int             `json:"status_code,omitempty"` // 0 quando não houve resposta HTTP
	Outcome    string          `json:"outcome"`               // "ok" | "transport" | "invalid_json" | "unexpected"
	Error      string          `json:"error,omitempty"`
	Response   json.RawMessage `json:"response,omitempty"`
	ElapsedMs  int64           `json:"elapsed_ms"`
	TsUnixMs   int64           `json:"ts_unix_ms"`
}
