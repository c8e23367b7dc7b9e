package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNoopPublisher(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	var p Publisher = NewNoopPublisher(zap.New(core))

	err := p.Publish(context.Background(), TicketReserved, TicketEvent{TicketID: "t-1"})
	assert.NoError(t, err)
	assert.NoError(t, p.Close())

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, TicketReserved, entries[0].ContextMap()["routing_key"])
	}
}

func TestNewAMQPPublisher_BadURL(t *testing.T) {
	_, err := NewAMQPPublisher("not-a-url", "cinema.events", zap.NewNop())
	assert.ErrorContains(t, err, "dial broker")
}

func TestAMQPPublisher_FailsFastWhileBrokerIsDown(t *testing.T) {
	var dials atomic.Int32
	release := make(chan struct{})
	dial := func(string) (*amqp.Connection, error) {
		dials.Add(1)
		<-release
		return nil, errors.New("connection refused")
	}

	p := newAMQPPublisher("amqp://broker", "cinema.events", zap.NewNop(), dial)
	t.Cleanup(func() {
		_ = p.Close()
		close(release)
	})

	start := time.Now()
	for i := 0; i < 5; i++ {
		err := p.Publish(context.Background(), ReceiptCreated, ReceiptEvent{ReceiptID: "r-1"})
		require.ErrorIs(t, err, ErrBrokerUnavailable)
	}
	assert.Less(t, time.Since(start), time.Second, "publish must not wait on the dial")

	require.Eventually(t, func() bool { return dials.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), dials.Load(), "only one redial loop runs at a time")
}

func TestAMQPPublisher_RedialBacksOffUntilClosed(t *testing.T) {
	var dials atomic.Int32
	dial := func(string) (*amqp.Connection, error) {
		dials.Add(1)
		return nil, errors.New("connection refused")
	}

	p := newAMQPPublisher("amqp://broker", "cinema.events", zap.NewNop(), dial)
	p.minBackoff = time.Millisecond
	p.maxBackoff = 4 * time.Millisecond

	assert.ErrorIs(t, p.Publish(context.Background(), TicketReserved, TicketEvent{}), ErrBrokerUnavailable)
	require.Eventually(t, func() bool { return dials.Load() >= 3 }, time.Second, time.Millisecond)

	require.NoError(t, p.Close())
	stopped := dials.Load()
	time.Sleep(30 * time.Millisecond)
	assert.LessOrEqual(t, dials.Load(), stopped+1)

	assert.ErrorIs(t, p.Publish(context.Background(), TicketReserved, TicketEvent{}), ErrBrokerUnavailable)
}
