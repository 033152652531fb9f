package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{
		Brokers:  []string{"localhost:9092", "localhost:9093"},
		ClientID: "agricreditd",
	})

	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.batchTimeout != 10*time.Millisecond {
		t.Errorf("expected default batch timeout, got %v", p.batchTimeout)
	}
	if p.transport.ClientID != "agricreditd" {
		t.Errorf("expected client id on transport, got %q", p.transport.ClientID)
	}
	if p.transport.TLS != nil {
		t.Error("expected no TLS config when TLS is disabled")
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestNewProducerTLS(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"kafka:9093"}, TLS: true, BatchTimeout: time.Second})

	if p.transport.TLS == nil {
		t.Fatal("expected TLS config")
	}
	if p.batchTimeout != time.Second {
		t.Errorf("expected configured batch timeout, got %v", p.batchTimeout)
	}
}

func TestToKafkaMessagesOrdersHeaders(t *testing.T) {
	msgs := toKafkaMessages([]Message{{
		Key:   []byte("assessment-1"),
		Value: []byte(`{"score":72}`),
		Headers: map[string]string{
			"event_type": "agricredit.assessment.completed",
			"event_id":   "evt-1",
		},
	}})

	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	want := []kafkago.Header{
		{Key: "event_id", Value: []byte("evt-1")},
		{Key: "event_type", Value: []byte("agricredit.assessment.completed")},
	}
	got := msgs[0].Headers
	if len(got) != len(want) {
		t.Fatalf("expected %d headers, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Key != want[i].Key || string(got[i].Value) != string(want[i].Value) {
			t.Errorf("header %d = %s=%s, want %s=%s", i, got[i].Key, got[i].Value, want[i].Key, want[i].Value)
		}
	}
	if string(msgs[0].Key) != "assessment-1" {
		t.Errorf("unexpected key %s", msgs[0].Key)
	}
}

func TestToKafkaMessagesNilHeaders(t *testing.T) {
	msgs := toKafkaMessages([]Message{{Value: []byte("x")}})
	if len(msgs[0].Headers) != 0 {
		t.Errorf("expected no headers, got %d", len(msgs[0].Headers))
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("agricredit-events")
	w2 := p.getOrCreateWriter("agricredit-events")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	w3 := p.getOrCreateWriter("agricredit-audit")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}
	if w1.Transport != p.transport {
		t.Error("expected writers to share the producer transport")
	}
}

func TestProducerClose(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	_ = p.getOrCreateWriter("topic-a")
	_ = p.getOrCreateWriter("topic-b")

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}
