package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/Dyuuz/BCFun-API-Explorer/pkg/contracts/events"
)

// Execer é o subconjunto do *sql.DB usado aqui
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Postgres grava cada tentativa de aposta em bet_submissions
type Postgres struct{ db Execer }

// NewPostgres retorna o repositório de tentativas
func NewPostgres(db Execer) *Postgres { return &Postgres{db: db} }

const schema = `
CREATE TABLE IF NOT EXISTS bet_submissions (
	id             UUID PRIMARY KEY,
	bet_request_id TEXT NOT NULL,
	event_id       TEXT NOT NULL,
	market_id      TEXT NOT NULL,
	outcome_id     TEXT NOT NULL,
	market_type    TEXT NOT NULL,
	specifiers     TEXT NOT NULL,
	stake_amount   NUMERIC NOT NULL,
	odds           NUMERIC NOT NULL,
	bet_type       TEXT NOT NULL,
	status_code    INT,
	outcome        TEXT NOT NULL,
	error_message  TEXT,
	response       JSONB,
	elapsed_ms     BIGINT NOT NULL,
	submitted_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS bet_submissions_request_idx ON bet_submissions (bet_request_id);`

// EnsureSchema cria a tabela se ainda não existir
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure bet_submissions schema: %w", err)
	}
	return nil
}

func (p *Postgres) Name() string { return "postgres" }

// Report insere a tentativa; sem AttemptID gera um novo id
func (p *Postgres) Report(ctx context.Context, e events.BetSubmitted) error {
	s := submissionFromEvent(e)
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	var response any
	if len(s.Response) > 0 {
		response = string(s.Response)
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bet_submissions
		  (id, bet_request_id, event_id, market_id, outcome_id, market_type, specifiers,
		   stake_amount, odds, bet_type, status_code, outcome, error_message, response,
		   elapsed_ms, submitted_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		s.ID, s.BetRequestID, s.EventID, s.MarketID, s.OutcomeID, s.MarketType, s.Specifiers,
		s.StakeAmount, s.Odds, s.BetType, s.StatusCode, s.Outcome, s.ErrorMessage, response,
		s.ElapsedMs, s.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bet_submission: %w", err)
	}
	return nil
}
