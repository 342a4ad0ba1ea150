package coupon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// BetIntent descreve a aposta desejada pelo chamador.
// Valores decimais seguem como string e vão para o wire sem reformatação.
type BetIntent struct {
	EventID          string
	MarketID         string
	OutcomeID        string
	Market           Market
	StakeAmount      string
	Odds             string
	BetTypeSpecifier string // ex: "1/1"
}

// RawIntent é a forma plana recebida via JSON (arquivo, stdin, fila)
type RawIntent struct {
	EventID          string `json:"event_id"`
	MarketID         string `json:"market_id"`
	OutcomeID        string `json:"outcome_id"`
	MarketType       string `json:"market_type"` // "1x2" | "total" | "hcp"
	Total            string `json:"total,omitempty"`
	Handicap         string `json:"handicap,omitempty"`
	StakeAmount      string `json:"stake_amount"`
	Odds             string `json:"odds"`
	BetTypeSpecifier string `json:"bet_type_specifier"`
}

// InvalidIntentError indica campo ausente ou mal formatado no RawIntent
type InvalidIntentError struct {
	Field  string
	Reason string
}

func (e *InvalidIntentError) Error() string {
	return fmt.Sprintf("invalid bet intent: %s %s", e.Field, e.Reason)
}

type intentField struct{ field, value string }

// Intent valida o formato dos campos e resolve o market_type no variant.
// Não valida faixa de odd nem saldo, só se os valores são decimais.
// market_type vazio ou desconhecido falha com UnsupportedMarketError.
func (r RawIntent) Intent() (BetIntent, error) {
	required := []intentField{
		{"event_id", r.EventID},
		{"market_id", r.MarketID},
		{"outcome_id", r.OutcomeID},
		{"stake_amount", r.StakeAmount},
		{"odds", r.Odds},
		{"bet_type_specifier", r.BetTypeSpecifier},
	}
	for _, f := range required {
		if f.value == "" {
			return BetIntent{}, &InvalidIntentError{Field: f.field, Reason: "is required"}
		}
	}

	m, err := ParseMarket(r.MarketType, r.Total, r.Handicap)
	if err != nil {
		return BetIntent{}, err
	}

	decimals := []intentField{
		{"stake_amount", r.StakeAmount},
		{"odds", r.Odds},
	}
	switch v := m.(type) {
	case Total:
		decimals = append(decimals, intentField{"total", v.Line})
	case Handicap:
		decimals = append(decimals, intentField{"handicap", v.Line})
	}
	for _, f := range decimals {
		if f.value == "" {
			return BetIntent{}, &InvalidIntentError{Field: f.field, Reason: "is required"}
		}
		if _, err := decimal.NewFromString(f.value); err != nil {
			return BetIntent{}, &InvalidIntentError{Field: f.field, Reason: "is not a decimal: " + f.value}
		}
	}

	return BetIntent{
		EventID:          r.EventID,
		MarketID:         r.MarketID,
		OutcomeID:        r.OutcomeID,
		Market:           m,
		StakeAmount:      r.StakeAmount,
		Odds:             r.Odds,
		BetTypeSpecifier: r.BetTypeSpecifier,
	}, nil
}

// DecodeRawIntents lê um objeto ou um array de intents em JSON
func DecodeRawIntents(r io.Reader) ([]RawIntent, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read intents: %w", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("read intents: empty input")
	}

	if b[0] == '[' {
		var out []RawIntent
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, fmt.Errorf("decode intents: %w", err)
		}
		return out, nil
	}

	var one RawIntent
	if err := json.Unmarshal(b, &one); err != nil {
		return nil, fmt.Errorf("decode intent: %w", err)
	}
	return []RawIntent{one}, nil
}
