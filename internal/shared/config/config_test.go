package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ENV", "SERVICE_NAME", "BET_ENDPOINT", "BET_TIMEOUT", "BET_AUTH_TOKEN", "BET_ORIGIN", "KAFKA_TOPIC_BET_SUBMITTED", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}
	// t.Setenv("X", "") define a variável vazia; BET_TIMEOUT vazio é inválido e cai no default
	cfg := Load()

	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v, want 15s", cfg.RequestTimeout)
	}
	if cfg.BetEndpoint != "" {
		t.Errorf("BetEndpoint = %q, want empty", cfg.BetEndpoint)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVICE_NAME", "bet-placer")
	t.Setenv("BET_ENDPOINT", "https://api.example.com/api/v2/coupon/brand/1/bet/place")
	t.Setenv("BET_TIMEOUT", "3s")
	t.Setenv("BET_AUTH_TOKEN", "abc")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := Load()
	if cfg.BetEndpoint != "https://api.example.com/api/v2/coupon/brand/1/bet/place" {
		t.Errorf("BetEndpoint = %q", cfg.BetEndpoint)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.KafkaBrokers != "k1:9092,k2:9092" {
		t.Errorf("KafkaBrokers = %q", cfg.KafkaBrokers)
	}
}

func TestGetDuration_Invalid(t *testing.T) {
	t.Setenv("BET_TIMEOUT", "soon")
	if d := getDuration("BET_TIMEOUT", 15*time.Second); d != 15*time.Second {
		t.Errorf("getDuration = %v, want default", d)
	}
	t.Setenv("BET_TIMEOUT", "-1s")
	if d := getDuration("BET_TIMEOUT", 15*time.Second); d != 15*time.Second {
		t.Errorf("getDuration = %v, want default", d)
	}
}

func TestHeaders(t *testing.T) {
	cfg := Config{
		AuthToken: "tok",
		UserAgent: "ua",
		Accept:    "*/*",
		Origin:    "https://bc.fun",
		Referer:   "https://bc.fun/",
	}
	h := cfg.Headers()

	want := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer tok",
		"User-Agent":    "ua",
		"Accept":        "*/*",
		"Origin":        "https://bc.fun",
		"Referer":       "https://bc.fun/",
	}
	for k, v := range want {
		if h[k] != v {
			t.Errorf("Headers()[%q] = %q, want %q", k, h[k], v)
		}
	}

	cfg.AuthToken = ""
	if _, ok := cfg.Headers()["Authorization"]; ok {
		t.Error("Authorization must be omitted without token")
	}
}
