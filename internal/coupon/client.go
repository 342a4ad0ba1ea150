package coupon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout é o timeout por requisição quando Config.Timeout é zero ou negativo
const DefaultTimeout = 15 * time.Second

// Config é a configuração imutável do cliente.
// Headers deve trazer Content-Type, Authorization (Bearer), User-Agent, Origin e Referer
// esperados pelo site; os valores são opacos para o cliente.
type Config struct {
	Endpoint string
	Headers  map[string]string
	Timeout  time.Duration
}

// Recorder recebe o resultado de cada tentativa (métricas)
type Recorder interface {
	ObserveSubmission(outcome string, elapsed time.Duration)
	ObserveValidationError(kind string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSubmission(string, time.Duration) {}
func (nopRecorder) ObserveValidationError(string)           {}

// Client envia cupons para o endpoint de aposta.
// Sessão (headers + pool de conexões) é criada uma vez e reutilizada.
type Client struct {
	endpoint string
	headers  http.Header
	http     *http.Client
	log      *zap.Logger
	rec      Recorder
	now      func() time.Time
}

type Option func(*Client)

// WithHTTPClient troca o *http.Client (testes, proxy, transport próprio)
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithRecorder(r Recorder) Option { return func(c *Client) { c.rec = r } }

// WithClock troca a fonte de tempo usada no timestamp de frescor
func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

func New(cfg Config, log *zap.Logger, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	headers := make(http.Header, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		endpoint: cfg.Endpoint,
		headers:  headers,
		http:     &http.Client{Timeout: timeout},
		log:      log,
		rec:      nopRecorder{},
		now:      time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// PlaceBet monta o payload e submete.
// O erro só é retornado para falha de validação, antes de qualquer I/O;
// falhas de rede voltam em Result.Err.
func (c *Client) PlaceBet(ctx context.Context, in BetIntent) (Result, error) {
	payload, err := BuildPayload(in, c.now())
	if err != nil {
		c.rec.ObserveValidationError(ValidationKind(err))
		c.log.Warn("bet rejected before submit", zap.String("event_id", in.EventID), zap.Error(err))
		return Result{}, err
	}

	c.log.Debug("placing bet",
		zap.String("bet_request_id", payload[0].BetRequestID),
		zap.String("specifiers", payload[0].Selections[0].Specifiers),
	)
	return c.Submit(ctx, payload), nil
}

// Submit faz o POST do payload e nunca entra em pânico para o chamador.
// Toda tentativa é logada com status e corpo (indentado) ou texto cru.
func (c *Client) Submit(ctx context.Context, p Payload) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("unexpected exception", zap.Any("panic", r))
			res = failure(KindUnexpected, fmt.Sprint(r), "")
		}
		c.rec.ObserveSubmission(res.Outcome(), time.Since(start))
	}()

	body, err := json.Marshal(p)
	if err != nil {
		c.log.Error("unexpected exception", zap.Error(err))
		return failure(KindUnexpected, err.Error(), "")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.log.Error("unexpected exception", zap.Error(err))
		return failure(KindUnexpected, err.Error(), "")
	}
	req.Header = c.headers.Clone()
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("network/session error", zap.Error(err))
		return failure(KindTransport, err.Error(), "")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("network/session error", zap.Int("status", resp.StatusCode), zap.Error(err))
		res = failure(KindTransport, err.Error(), "")
		res.StatusCode = resp.StatusCode
		return res
	}

	parsed, err := decodeJSON(raw)
	if err != nil {
		c.log.Error("non-JSON response received",
			zap.Int("status", resp.StatusCode),
			zap.String("raw", string(raw)),
		)
		res = failure(KindInvalidJSON, invalidJSONMessage, string(raw))
		res.StatusCode = resp.StatusCode
		return res
	}

	pretty, _ := json.MarshalIndent(parsed, "", "  ")
	c.log.Info("bet response",
		zap.Int("status", resp.StatusCode),
		zap.String("body", string(pretty)),
	)
	return Result{StatusCode: resp.StatusCode, Body: parsed}
}

// decodeJSON mantém números como json.Number para devolver o corpo sem perda
func decodeJSON(raw []byte) (any, error) {
	if !json.Valid(raw) {
		return nil, fmt.Errorf("response is not valid json (%d bytes)", len(raw))
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
