package repo

import (
	"database/sql"
	"time"

	"github.com/Dyuuz/BCFun-API-Explorer/pkg/contracts/events"
)

// Submission é a linha gravada em bet_submissions (trilha de auditoria, só escrita)
type Submission struct {
	ID           string
	BetRequestID string
	EventID      string
	MarketID     string
	OutcomeID    string
	MarketType   string
	Specifiers   string
	StakeAmount  string
	Odds         string
	BetType      string
	StatusCode   sql.NullInt32  // nulo quando não houve resposta HTTP
	Outcome      string
	ErrorMessage sql.NullString
	Response     []byte // jsonb
	ElapsedMs    int64
	SubmittedAt  time.Time
}

func submissionFromEvent(e events.BetSubmitted) Submission {
	s := Submission{
		ID:           e.AttemptID,
		BetRequestID: e.BetRequestID,
		EventID:      e.EventID,
		MarketID:     e.MarketID,
		OutcomeID:    e.OutcomeID,
		MarketType:   e.MarketType,
		Specifiers:   e.Specifiers,
		StakeAmount:  e.StakeAmount,
		Odds:         e.Odds,
		BetType:      e.BetType,
		Outcome:      e.Outcome,
		Response:     e.Response,
		ElapsedMs:    e.ElapsedMs,
		SubmittedAt:  time.UnixMilli(e.TsUnixMs).UTC(),
	}
	if e.StatusCode != 0 {
		s.StatusCode = sql.NullInt32{Int32: int32(e.StatusCode), Valid: true}
	}
	if e.Error != "" {
		s.ErrorMessage = sql.NullString{String: e.Error, Valid: true}
	}
	return s
}
