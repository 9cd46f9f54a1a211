package kafka

import (
	"context"
	"testing"
	"time"
)

// Shutdown may arrive as Close then cancel, or cancel then Close; both
// orders must leave the loop drained without a double close.

func TestProducerCloseThenCancel(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "shutdown-test", 8)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	p.Close()
	cancel()
	p.WaitClosed()
}

func TestProducerCancelThenClose(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "shutdown-test", 8)
	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)

	cancel()
	p.WaitClosed()
	p.Close()
}

func TestProducerCloseIsIdempotent(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "shutdown-test", 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	p.Close()
	p.Close()

	select {
	case <-p.closeCh:
	case <-time.After(2 * time.Second):
		t.Fatal("publish loop did not exit")
	}
}
