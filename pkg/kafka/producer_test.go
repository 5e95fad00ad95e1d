package kafka

import (
	"testing"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	if p == nil {
		t.Fatal("expected non-nil producer")
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.writers == nil {
		t.Fatal("expected writers map to be initialized")
	}
	if len(p.writers) != 0 {
		t.Fatalf("expected no writers before first publish, got %d", len(p.writers))
	}
}

func TestGetOrCreateWriterReuse(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.getOrCreateWriter("tally.ledger.journals")
	w2 := p.getOrCreateWriter("tally.ledger.journals")
	if w1 != w2 {
		t.Error("expected writer to be reused per topic")
	}

	w3 := p.getOrCreateWriter("tally.ledger.periods")
	if w3 == w1 {
		t.Error("expected a distinct writer for a different topic")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if len(p.writers) != 0 {
		t.Error("expected writers map to be reset after close")
	}
}
