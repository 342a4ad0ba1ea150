package coupon

import "fmt"

// Tags de mercado aceitos pelo endpoint de cupom
const (
	TagOneXTwo  = "1x2"
	TagTotal    = "total"
	TagHandicap = "hcp"
)

// Market é o variant do mercado apostado. Cada tipo carrega apenas
// os campos que o mercado precisa; a interface é fechada ao pacote.
type Market interface {
	Tag() string
	isMarket()
}

// OneXTwo é o mercado vencedor/empate/vencedor, sem linha
type OneXTwo struct{}

// Total é o mercado de gols/pontos acima/abaixo de uma linha, ex: "1.5"
type Total struct {
	Line string
}

// Handicap é o mercado com vantagem asiática, ex: "-3.25"
type Handicap struct {
	Line string
}

func (OneXTwo) Tag() string  { return TagOneXTwo }
func (Total) Tag() string    { return TagTotal }
func (Handicap) Tag() string { return TagHandicap }

func (OneXTwo) isMarket()  {}
func (Total) isMarket()    {}
func (Handicap) isMarket() {}

// UnsupportedMarketError indica um market_type que o cliente não sabe montar.
// Falha local de validação; nenhuma requisição é feita.
type UnsupportedMarketError struct {
	MarketType string
}

func (e *UnsupportedMarketError) Error() string {
	return fmt.Sprintf("unsupported market type %q", e.MarketType)
}

// ParseMarket converte o tag textual no variant correspondente.
// O campo de linha que não pertence ao mercado é ignorado.
func ParseMarket(tag, total, handicap string) (Market, error) {
	switch tag {
	case TagOneXTwo:
		return OneXTwo{}, nil
	case TagTotal:
		return Total{Line: total}, nil
	case TagHandicap:
		return Handicap{Line: handicap}, nil
	default:
		return nil, &UnsupportedMarketError{MarketType: tag}
	}
}

// Specifier retorna a string de specifiers enviada na seleção.
// Total e Handicap exigem linha; vazio vira InvalidIntentError.
func Specifier(m Market) (string, error) {
	switch v := m.(type) {
	case OneXTwo:
		return "", nil
	case Total:
		if v.Line == "" {
			return "", &InvalidIntentError{Field: "total", Reason: "is required"}
		}
		return "total=" + v.Line, nil
	case Handicap:
		if v.Line == "" {
			return "", &InvalidIntentError{Field: "handicap", Reason: "is required"}
		}
		return "hcp=" + v.Line, nil
	default:
		return "", &UnsupportedMarketError{MarketType: marketTag(m)}
	}
}

// RequestID monta o bet_request_id composto.
// Para 1x2 o servidor espera o sufixo fixo "-1--1", independente de market/outcome.
func RequestID(in BetIntent) (string, error) {
	switch in.Market.(type) {
	case OneXTwo:
		return in.EventID + "-1--1", nil
	case Total, Handicap:
		spec, err := Specifier(in.Market)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s-%s-%s-%s", in.EventID, in.MarketID, spec, in.OutcomeID), nil
	default:
		return "", &UnsupportedMarketError{MarketType: marketTag(in.Market)}
	}
}

func marketTag(m Market) string {
	if m == nil {
		return ""
	}
	return m.Tag()
}
