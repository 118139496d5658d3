package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// The API binary closes the producer and cancels the root context in quick
// succession on shutdown; both paths must coexist without a double close.
func TestProducerCloseThenCancel(t *testing.T) {
	require.NotPanics(t, func() {
		for i := 0; i < 200; i++ {
			ctx, cancel := context.WithCancel(context.Background())
			p := NewProducer([]string{"127.0.0.1:1"}, "orders.test", 8)
			p.Start(ctx)
			p.Close()
			cancel()
			p.WaitClosed()
		}
	})
}

func TestProducerCancelThenClose(t *testing.T) {
	require.NotPanics(t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		p := NewProducer([]string{"127.0.0.1:1"}, "orders.test", 8)
		p.Start(ctx)
		cancel()
		p.WaitClosed()
		p.Close()
	})
}

func TestProducerDoubleClose(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := NewProducer([]string{"127.0.0.1:1"}, "orders.test", 8)
	p.Start(ctx)
	require.NotPanics(t, func() {
		p.Close()
		p.Close()
	})
	p.WaitClosed()
}
