// Package placer envia apostas pelo coupon.Client e distribui o recibo
// de cada tentativa para os reporters configurados (Kafka, Redis, Postgres).
package placer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Dyuuz/BCFun-API-Explorer/internal/coupon"
	"github.com/Dyuuz/BCFun-API-Explorer/pkg/contracts/events"
)

// BetPlacer é o contrato do coupon.Client usado aqui
type BetPlacer interface {
	PlaceBet(ctx context.Context, in coupon.BetIntent) (coupon.Result, error)
}

// Reporter recebe o recibo de cada tentativa enviada
type Reporter interface {
	Name() string
	Report(ctx context.Context, e events.BetSubmitted) error
}

// Receipt junta o intent, o resultado e os identificadores da tentativa
type Receipt struct {
	AttemptID string
	Intent    coupon.BetIntent
	RequestID string
	Specifier string
	Result    coupon.Result
	Elapsed   time.Duration
	At        time.Time
}

// Service coordena envio + reporte. Falha de reporter nunca altera o resultado.
type Service struct {
	log       *zap.Logger
	client    BetPlacer
	reporters []Reporter

	OnValidationError func(kind string)     // métricas
	OnReportError     func(reporter string) // métricas
}

func NewService(log *zap.Logger, client BetPlacer, reporters ...Reporter) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{log: log, client: client, reporters: reporters}
}

// PlaceRaw valida o intent plano e envia
func (s *Service) PlaceRaw(ctx context.Context, raw coupon.RawIntent) (Receipt, error) {
	in, err := raw.Intent()
	if err != nil {
		if s.OnValidationError != nil {
			s.OnValidationError(coupon.ValidationKind(err))
		}
		return Receipt{}, err
	}
	return s.Place(ctx, in)
}

// Place envia a aposta e, havendo tentativa de rede, reporta o recibo.
// Erro de validação retorna antes de qualquer I/O e sem reporte.
func (s *Service) Place(ctx context.Context, in coupon.BetIntent) (Receipt, error) {
	start := time.Now()
	res, err := s.client.PlaceBet(ctx, in)
	if err != nil {
		return Receipt{}, err
	}

	// validação já passou no PlaceBet, estes não falham aqui
	spec, _ := coupon.Specifier(in.Market)
	reqID, _ := coupon.RequestID(in)

	r := Receipt{
		AttemptID: uuid.NewString(),
		Intent:    in,
		RequestID: reqID,
		Specifier: spec,
		Result:    res,
		Elapsed:   time.Since(start),
		At:        start,
	}

	s.report(ctx, r)
	return r, nil
}

func (s *Service) report(ctx context.Context, r Receipt) {
	if len(s.reporters) == 0 {
		return
	}
	ev := r.Event()
	for _, rep := range s.reporters {
		if err := rep.Report(ctx, ev); err != nil {
			s.log.Warn("report bet submission",
				zap.String("reporter", rep.Name()),
				zap.String("bet_request_id", r.RequestID),
				zap.Error(err),
			)
			if s.OnReportError != nil {
				s.OnReportError(rep.Name())
			}
		}
	}
}

// Event converte o recibo no contrato publicado
func (r Receipt) Event() events.BetSubmitted {
	e := events.BetSubmitted{
		AttemptID:    r.AttemptID,
		BetRequestID: r.RequestID,
		EventID:      r.Intent.EventID,
		MarketID:     r.Intent.MarketID,
		OutcomeID:    r.Intent.OutcomeID,
		Specifiers:   r.Specifier,
		StakeAmount:  r.Intent.StakeAmount,
		Odds:         r.Intent.Odds,
		BetType:      r.Intent.BetTypeSpecifier,
		StatusCode:   r.Result.StatusCode,
		Outcome:      r.Result.Outcome(),
		ElapsedMs:    r.Elapsed.Milliseconds(),
		TsUnixMs:     r.At.UnixMilli(),
	}
	if r.Intent.Market != nil {
		e.MarketType = r.Intent.Market.Tag()
	}
	if r.Result.Err != nil {
		e.Error = r.Result.Err.Message
	}
	if b, err := json.Marshal(r.Result); err == nil {
		e.Response = b
	} else {
		e.Error = fmt.Sprintf("%s (response not encodable: %v)", e.Error, err)
	}
	return e
}
