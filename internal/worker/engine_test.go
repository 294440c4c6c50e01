package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/club-invaders/fanclub/internal/config"
	"github.com/club-invaders/fanclub/internal/messaging"
)

type scriptedClient struct {
	messages []messaging.Message
	consumed atomic.Int32
}

func (c *scriptedClient) Publish(context.Context, []byte, []byte) error { return nil }

func (c *scriptedClient) Consume(ctx context.Context, handler messaging.Handler) error {
	for _, msg := range c.messages {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := handler(ctx, msg); err != nil {
			return err
		}
		c.consumed.Add(1)
	}
	<-ctx.Done()
	return ctx.Err()
}

func (c *scriptedClient) Topic() string { return "orders.events" }

func workerConfig(enabled bool) config.Config {
	cfg := config.Config{}
	cfg.Messaging.Enabled = enabled
	cfg.Messaging.Workers.Enabled = enabled
	cfg.Messaging.Workers.Concurrency = 1
	cfg.Messaging.Kafka.Topic = "orders.events"
	return cfg
}

func TestNewEngineSkipsInvalidRegistrations(t *testing.T) {
	engine := NewEngine(Params{
		Client: &scriptedClient{},
		Logger: zap.NewNop(),
		Config: workerConfig(true),
		Registrations: []HandlerRegistration{
			{Topic: "", Handler: func(context.Context, messaging.Message) error { return nil }},
			{Topic: "orders.events", Handler: nil},
			{Topic: "orders.events", Handler: func(context.Context, messaging.Message) error { return nil }},
		},
	})

	assert.Len(t, engine.registrations, 1)
}

func TestEngineDispatchesByTopic(t *testing.T) {
	var handled atomic.Int32
	client := &scriptedClient{messages: []messaging.Message{
		{Topic: "orders.events", Value: []byte(`{}`)},
		{Topic: "unknown.topic", Value: []byte(`{}`)},
	}}

	engine := NewEngine(Params{
		Client: client,
		Logger: zap.NewNop(),
		Config: workerConfig(true),
		Registrations: []HandlerRegistration{
			{Topic: "orders.events", Handler: func(context.Context, messaging.Message) error {
				handled.Add(1)
				return nil
			}},
		},
	})

	require.NoError(t, engine.start(context.Background()))

	deadline := time.Now().Add(2 * time.Second)
	for client.consumed.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, engine.stop(stopCtx))

	assert.Equal(t, int32(1), handled.Load(), "only the registered topic reaches its handler")
	assert.Equal(t, int32(2), client.consumed.Load(), "unregistered topics are skipped, not retried")
}

func TestEngineDisabled(t *testing.T) {
	engine := NewEngine(Params{
		Client: &scriptedClient{},
		Logger: zap.NewNop(),
		Config: workerConfig(false),
	})

	require.NoError(t, engine.start(context.Background()))
	require.NoError(t, engine.stop(context.Background()))
}

func TestEngineStopsOnCancelledConsume(t *testing.T) {
	client := &scriptedClient{messages: []messaging.Message{{Topic: "x"}}}

	engine := NewEngine(Params{
		Client: client,
		Logger: zap.NewNop(),
		Config: workerConfig(true),
		Registrations: []HandlerRegistration{
			{Topic: "x", Handler: func(context.Context, messaging.Message) error { return nil }},
		},
	})

	require.NoError(t, engine.start(context.Background()))
	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, engine.stop(stopCtx))
}
