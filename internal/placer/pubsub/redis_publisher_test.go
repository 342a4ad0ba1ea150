package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/Dyuuz/BCFun-API-Explorer/pkg/contracts/events"
)

type fakePublisher struct {
	channel string
	payload []byte
	err     error
}

func (f *fakePublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func TestRedisBroadcaster_Report(t *testing.T) {
	pub := &fakePublisher{}
	b := NewRedisBroadcaster(pub, "bet_submissions_broadcast")

	e := events.BetSubmitted{BetRequestID: "E2-16-hcp=-3.25-1714", Outcome: "invalid_json", Error: "Invalid JSON"}
	if err := b.Report(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pub.channel != "bet_submissions_broadcast" {
		t.Errorf("channel = %q", pub.channel)
	}

	var got events.BetSubmitted
	if err := json.Unmarshal(pub.payload, &got); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if got.BetRequestID != e.BetRequestID || got.Outcome != "invalid_json" || got.Error != "Invalid JSON" {
		t.Errorf("decoded = %+v", got)
	}
}

func TestRedisBroadcaster_PublishError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("connection reset")}
	b := NewRedisBroadcaster(pub, "ch")

	if err := b.Report(context.Background(), events.BetSubmitted{}); !errors.Is(err, pub.err) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
}
