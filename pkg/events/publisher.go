package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	TicketReserved = "ticket.reserved"
	TicketCanceled = "ticket.canceled"
	ReceiptCreated = "receipt.created"
	ReceiptDeleted = "receipt.deleted"
)

// Publisher emits domain events; callers treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// ErrBrokerUnavailable is returned while the publisher has no live channel.
var ErrBrokerUnavailable = errors.New("broker unavailable")

type dialFunc func(url string) (*amqp.Connection, error)

// AMQPPublisher keeps one connection to the broker. When it drops, Publish
// fails fast and a single background loop redials with capped backoff.
type AMQPPublisher struct {
	url      string
	exchange string
	log      *zap.Logger
	dial     dialFunc

	minBackoff time.Duration
	maxBackoff time.Duration

	mu           sync.Mutex
	conn         *amqp.Connection
	ch           *amqp.Channel
	reconnecting bool
	closed       bool
	done         chan struct{}
}

// NewAMQPPublisher dials the broker and declares a durable topic exchange.
func NewAMQPPublisher(url, exchange string, log *zap.Logger) (*AMQPPublisher, error) {
	p := newAMQPPublisher(url, exchange, log, amqp.Dial)

	conn, ch, err := p.open()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.attachLocked(conn, ch)
	p.mu.Unlock()
	return p, nil
}

func newAMQPPublisher(url, exchange string, log *zap.Logger, dial dialFunc) *AMQPPublisher {
	return &AMQPPublisher{
		url:        url,
		exchange:   exchange,
		log:        log.With(zap.String("component", "events")),
		dial:       dial,
		minBackoff: time.Second,
		maxBackoff: 30 * time.Second,
		done:       make(chan struct{}),
	}
}

// open dials and declares the exchange without touching publisher state.
func (p *AMQPPublisher) open() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := p.dial(p.url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		p.exchange, // name
		"topic",    // kind
		true,       // durable
		false,      // autoDelete
		false,      // internal
		false,      // noWait
		nil,        // args
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}
	return conn, ch, nil
}

// attachLocked installs a live connection and watches it for closure. Caller holds p.mu.
func (p *AMQPPublisher) attachLocked(conn *amqp.Connection, ch *amqp.Channel) {
	p.conn = conn
	p.ch = ch
	p.reconnecting = false

	lost := conn.NotifyClose(make(chan *amqp.Error, 1))
	go func() {
		select {
		case amqpErr := <-lost:
			if amqpErr != nil {
				p.log.Warn("Broker connection lost", zap.String("reason", amqpErr.Reason))
			}
			p.reconnect()
		case <-p.done:
		}
	}()
}

// reconnect starts the redial loop unless one is already running.
func (p *AMQPPublisher) reconnect() {
	p.mu.Lock()
	if p.reconnecting || p.closed {
		p.mu.Unlock()
		return
	}
	p.reconnecting = true
	stale := p.conn
	p.conn = nil
	p.ch = nil
	p.mu.Unlock()

	go p.redial(stale)
}

func (p *AMQPPublisher) redial(stale *amqp.Connection) {
	if stale != nil {
		_ = stale.Close()
	}

	backoff := p.minBackoff
	for {
		conn, ch, err := p.open()
		if err == nil {
			p.mu.Lock()
			if p.closed {
				p.mu.Unlock()
				_ = ch.Close()
				_ = conn.Close()
				return
			}
			p.attachLocked(conn, ch)
			p.mu.Unlock()

			p.log.Info("Broker connection restored")
			return
		}

		p.log.Warn("Broker redial failed", zap.Error(err), zap.Duration("retry_in", backoff))
		select {
		case <-time.After(backoff):
		case <-p.done:
			return
		}
		backoff = min(backoff*2, p.maxBackoff)
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", routingKey, err)
	}

	p.mu.Lock()
	ch := p.ch
	p.mu.Unlock()

	if ch == nil || ch.IsClosed() {
		p.reconnect()
		return fmt.Errorf("publish %s: %w", routingKey, ErrBrokerUnavailable)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         routingKey,
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, pub); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.log.Debug("Event published", zap.String("routing_key", routingKey))
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.done)
	conn, ch := p.conn, p.ch
	p.conn, p.ch = nil, nil
	p.mu.Unlock()

	if ch != nil {
		_ = ch.Close()
	}
	if conn != nil {
		return conn.Close()
	}
	return nil
}

// NoopPublisher drops events; used when no broker is configured.
type NoopPublisher struct {
	log *zap.Logger
}

func NewNoopPublisher(log *zap.Logger) *NoopPublisher {
	return &NoopPublisher{log: log.With(zap.String("component", "events"))}
}

func (p *NoopPublisher) Publish(_ context.Context, routingKey string, _ any) error {
	p.log.Debug("Event dropped, broker disabled", zap.String("routing_key", routingKey))
	return nil
}

func (p *NoopPublisher) Close() error { return nil }
