package producer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	skafka "github.com/Dyuuz/BCFun-API-Explorer/internal/shared/kafka"
	"github.com/Dyuuz/BCFun-API-Explorer/pkg/contracts/events"
)

// MessageWriter é o subconjunto do *kafka.Writer usado aqui
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaPublisher publica BetSubmitted no tópico configurado,
// com chave = bet_request_id para manter tentativas da mesma aposta na mesma partição.
type KafkaPublisher struct {
	Writer MessageWriter
	Topic  string
}

func NewKafkaPublisher(w MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

func (p *KafkaPublisher) Name() string { return "kafka" }

func (p *KafkaPublisher) Report(ctx context.Context, e events.BetSubmitted) error {
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal bet_submitted: %w", err)
	}
	if err := skafka.WriteJSON(ctx, p.Writer, e.BetRequestID, b); err != nil {
		return fmt.Errorf("write %s: %w", p.Topic, err)
	}
	return nil
}
