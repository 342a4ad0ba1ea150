package coupon

import "time"

// oddsChangeAny instrui o servidor a aceitar a aposta mesmo se a odd mudar
const oddsChangeAny = "any"

// Payload é o corpo do POST. O formato aceita lote, mas sempre enviamos um cupom.
type Payload []BetSlip

// BetSlip é o registro do cupom (valor apostado + seleções)
type BetSlip struct {
	Type         string      `json:"type"`
	Sum          string      `json:"sum"`
	K            string      `json:"k"`
	GlobalID     *string     `json:"global_id"`
	BonusID      *string     `json:"bonus_id"`
	BetRequestID string      `json:"bet_request_id"`
	OddsChange   string      `json:"odds_change"`
	Selections   []Selection `json:"selections"`
}

// Selection é o outcome apostado dentro do cupom
type Selection struct {
	EventID    string  `json:"event_id"`
	MarketID   string  `json:"market_id"`
	OutcomeID  string  `json:"outcome_id"`
	K          string  `json:"k"`
	Specifiers string  `json:"specifiers"`
	Source     Source  `json:"source"`
	PromoID    *string `json:"promo_id"`
	BonusID    *string `json:"bonus_id"`
	Timestamp  int64   `json:"timestamp"` // ms desde epoch
}

// Source descreve de onde na UI a aposta "partiu"; valores fixos do site
type Source struct {
	Layout  string      `json:"layout"`
	Page    string      `json:"page"`
	Section string      `json:"section"`
	Extra   SourceExtra `json:"extra"`
}

type SourceExtra struct {
	Market     string `json:"market"`
	TimeFilter string `json:"timeFilter"`
	BannerType string `json:"banner_type"`
	Tab        string `json:"tab"`
}

func defaultSource() Source {
	return Source{
		Layout:  "tile",
		Page:    "/",
		Section: "Top",
		Extra: SourceExtra{
			Market:     "Event Plate",
			TimeFilter: "",
			BannerType: "BetbyAI",
			Tab:        "1",
		},
	}
}

// BuildPayload monta o payload de um único cupom para o intent.
// now vira o timestamp de frescor da seleção; nada é cacheado entre chamadas.
func BuildPayload(in BetIntent, now time.Time) (Payload, error) {
	spec, err := Specifier(in.Market)
	if err != nil {
		return nil, err
	}
	reqID, err := RequestID(in)
	if err != nil {
		return nil, err
	}

	sel := Selection{
		EventID:    in.EventID,
		MarketID:   in.MarketID,
		OutcomeID:  in.OutcomeID,
		K:          in.Odds,
		Specifiers: spec,
		Source:     defaultSource(),
		Timestamp:  now.UnixMilli(),
	}

	slip := BetSlip{
		Type:         in.BetTypeSpecifier,
		Sum:          in.StakeAmount,
		K:            in.Odds,
		BetRequestID: reqID,
		OddsChange:   oddsChangeAny,
		Selections:   []Selection{sel},
	}

	return Payload{slip}, nil
}
