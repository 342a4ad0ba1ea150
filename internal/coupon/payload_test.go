package coupon

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func totalIntent() BetIntent {
	return BetIntent{
		EventID:          "E1",
		MarketID:         "18",
		OutcomeID:        "12",
		Market:           Total{Line: "1.5"},
		StakeAmount:      "100",
		Odds:             "1.9",
		BetTypeSpecifier: "1/1",
	}
}

func TestBuildPayload(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)

	p, err := BuildPayload(totalIntent(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p) != 1 {
		t.Fatalf("expected 1 bet slip, got %d", len(p))
	}

	slip := p[0]
	if slip.Type != "1/1" || slip.Sum != "100" || slip.K != "1.9" {
		t.Errorf("unexpected slip header: %+v", slip)
	}
	if slip.BetRequestID != "E1-18-total=1.5-12" {
		t.Errorf("BetRequestID = %q", slip.BetRequestID)
	}
	if slip.OddsChange != "any" {
		t.Errorf("OddsChange = %q, want any", slip.OddsChange)
	}
	if slip.GlobalID != nil || slip.BonusID != nil {
		t.Errorf("expected null global/bonus ids")
	}
	if len(slip.Selections) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(slip.Selections))
	}

	sel := slip.Selections[0]
	if sel.EventID != "E1" || sel.MarketID != "18" || sel.OutcomeID != "12" || sel.K != "1.9" {
		t.Errorf("unexpected selection ids: %+v", sel)
	}
	if sel.Specifiers != "total=1.5" {
		t.Errorf("Specifiers = %q", sel.Specifiers)
	}
	if sel.Timestamp != 1_700_000_000_123 {
		t.Errorf("Timestamp = %d", sel.Timestamp)
	}
	if sel.Source != defaultSource() {
		t.Errorf("Source = %+v", sel.Source)
	}
}

func TestBuildPayload_WireShape(t *testing.T) {
	in := BetIntent{
		EventID:          "E3",
		MarketID:         "1",
		OutcomeID:        "2",
		Market:           OneXTwo{},
		StakeAmount:      "150",
		Odds:             "1.25",
		BetTypeSpecifier: "1/1",
	}
	p, err := BuildPayload(in, time.UnixMilli(42))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var wire []map[string]any
	if err := json.Unmarshal(b, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(wire) != 1 {
		t.Fatalf("expected outer array of 1, got %d", len(wire))
	}
	slip := wire[0]
	for _, k := range []string{"global_id", "bonus_id"} {
		v, ok := slip[k]
		if !ok || v != nil {
			t.Errorf("slip[%q] = %v (present=%v), want null", k, v, ok)
		}
	}
	if slip["bet_request_id"] != "E3-1--1" {
		t.Errorf("bet_request_id = %v", slip["bet_request_id"])
	}

	sels := slip["selections"].([]any)
	if len(sels) != 1 {
		t.Fatalf("expected 1 selection, got %d", len(sels))
	}
	sel := sels[0].(map[string]any)
	for _, k := range []string{"promo_id", "bonus_id"} {
		v, ok := sel[k]
		if !ok || v != nil {
			t.Errorf("selection[%q] = %v (present=%v), want null", k, v, ok)
		}
	}
	if sel["specifiers"] != "" {
		t.Errorf("specifiers = %v", sel["specifiers"])
	}
	if sel["timestamp"] != float64(42) {
		t.Errorf("timestamp = %v", sel["timestamp"])
	}

	source := sel["source"].(map[string]any)
	extra := source["extra"].(map[string]any)
	if source["layout"] != "tile" || source["page"] != "/" || source["section"] != "Top" {
		t.Errorf("source = %v", source)
	}
	if extra["market"] != "Event Plate" || extra["timeFilter"] != "" || extra["banner_type"] != "BetbyAI" || extra["tab"] != "1" {
		t.Errorf("source.extra = %v", extra)
	}
}

func TestBuildPayload_Deterministic(t *testing.T) {
	in := totalIntent()
	before := in
	now := time.Now()

	a, err := BuildPayload(in, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := BuildPayload(in, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("payloads differ:\n%+v\n%+v", a, b)
	}
	if in != before {
		t.Errorf("intent mutated: %+v", in)
	}
}

func TestBuildPayload_UnsupportedMarket(t *testing.T) {
	in := totalIntent()
	in.Market = nil

	p, err := BuildPayload(in, time.Now())
	var um *UnsupportedMarketError
	if !errors.As(err, &um) {
		t.Fatalf("expected UnsupportedMarketError, got %v", err)
	}
	if p != nil {
		t.Errorf("expected nil payload, got %+v", p)
	}
}
