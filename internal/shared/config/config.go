package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	ctopics "github.com/Dyuuz/BCFun-API-Explorer/pkg/contracts/topics"
)

// Config centraliza variáveis de ambiente do bet-placer.
// Endpoint e headers são opacos: vêm prontos do operador, nada é descoberto aqui.
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string
	LogLevel    string // "debug", "info", ... vazio = default do ambiente

	// Endpoint de aposta (coupon/brand/{id}/bet/place)
	BetEndpoint    string
	RequestTimeout time.Duration

	// Headers esperados pelo site
	AuthToken string
	UserAgent string
	Accept    string
	Origin    string
	Referer   string

	// Destinos opcionais dos recibos; vazio desliga o reporter
	PostgresDSN  string
	RedisAddr    string
	KafkaBrokers string // "a:9092,b:9092"

	TopicBetSubmitted  string
	RedisPubSubChannel string

	// Pushgateway para métricas do processo one-shot
	PushgatewayURL string
}

const defaultUserAgent = "Mozilla/5.0 (Linux; Android 6.0; Nexus 5 Build/MRA58N) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Mobile Safari/537.36"

// Load lê o .env (se existir) e as variáveis de ambiente, aplicando defaults.
// Variáveis já definidas no ambiente têm prioridade sobre o .env.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: getEnv("SERVICE_NAME", "bet-placer"),
		LogLevel:    getEnv("LOG_LEVEL", ""),

		BetEndpoint:    getEnv("BET_ENDPOINT", ""),
		RequestTimeout: getDuration("BET_TIMEOUT", 15*time.Second),

		AuthToken: getEnv("BET_AUTH_TOKEN", ""),
		UserAgent: getEnv("BET_USER_AGENT", defaultUserAgent),
		Accept:    getEnv("BET_ACCEPT", "*/*"),
		Origin:    getEnv("BET_ORIGIN", "https://bc.fun"),
		Referer:   getEnv("BET_REFERER", "https://bc.fun/"),

		PostgresDSN:  getEnv("POSTGRES_DSN", ""),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		KafkaBrokers: getEnv("KAFKA_BROKERS", ""),

		TopicBetSubmitted:  getEnv("KAFKA_TOPIC_BET_SUBMITTED", ctopics.BetSubmitted),
		RedisPubSubChannel: getEnv("REDIS_PUBSUB_CHANNEL", ctopics.BetSubmissionsBroadcast),

		PushgatewayURL: getEnv("PUSHGATEWAY_URL", ""),
	}
}

// Headers monta o conjunto de headers aplicado a toda requisição de aposta
func (c Config) Headers() map[string]string {
	h := map[string]string{
		"Content-Type": "application/json",
		"User-Agent":   c.UserAgent,
		"Accept":       c.Accept,
		"Origin":       c.Origin,
		"Referer":      c.Referer,
	}
	if c.AuthToken != "" {
		h["Authorization"] = "Bearer " + c.AuthToken
	}
	return h
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// getDuration aceita "15s", "500ms"...; valor inválido cai no default
func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
