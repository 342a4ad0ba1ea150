package coupon

import (
	"encoding/json"
	"errors"
)

// ErrorKind classifica falhas do caminho de rede
type ErrorKind string

const (
	KindTransport   ErrorKind = "transport"    // conexão, timeout, leitura do corpo
	KindInvalidJSON ErrorKind = "invalid_json" // corpo não é JSON
	KindUnexpected  ErrorKind = "unexpected"   // qualquer outra coisa
)

// invalidJSONMessage é o texto devolvido ao chamador quando o corpo não é JSON
const invalidJSONMessage = "Invalid JSON"

// SubmitError é o erro como dado, nunca propagado como panic/exceção
type SubmitError struct {
	Kind    ErrorKind
	Message string
	Raw     string // corpo cru, só em KindInvalidJSON
}

func (e *SubmitError) Error() string { return string(e.Kind) + ": " + e.Message }

// Result é o retorno de uma submissão: corpo parseado ou erro tipado
type Result struct {
	StatusCode int
	Body       any
	Err        *SubmitError
}

// OK indica que a troca HTTP aconteceu e o corpo era JSON (qualquer status)
func (r Result) OK() bool { return r.Err == nil }

// Outcome é usado como label de métrica e em eventos
func (r Result) Outcome() string {
	if r.Err == nil {
		return "ok"
	}
	return string(r.Err.Kind)
}

// MarshalJSON devolve o corpo do servidor em caso de sucesso,
// {"error": ...} em falha de transporte e {"error": "Invalid JSON", "raw": ...} em corpo inválido.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Err == nil {
		return json.Marshal(r.Body)
	}
	out := map[string]string{"error": r.Err.Message}
	if r.Err.Kind == KindInvalidJSON {
		out["raw"] = r.Err.Raw
	}
	return json.Marshal(out)
}

func failure(kind ErrorKind, msg, raw string) Result {
	return Result{Err: &SubmitError{Kind: kind, Message: msg, Raw: raw}}
}

// ValidationKind devolve o label da falha de validação local, "" se não for uma
func ValidationKind(err error) string {
	var um *UnsupportedMarketError
	var ii *InvalidIntentError
	switch {
	case errors.As(err, &um):
		return "unsupported_market"
	case errors.As(err, &ii):
		return "invalid_intent"
	default:
		return ""
	}
}
