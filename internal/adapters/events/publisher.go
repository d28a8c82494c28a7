package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"papatacos/internal/core/domain"

	amqp "github.com/rabbitmq/amqp091-go"
)

// publishTimeout bounds a single publish
const publishTimeout = 5 * time.Second

// Publisher sends domain events to a broker
type Publisher interface {
	Publish(ctx context.Context, event domain.EntryRecorded) error
	Close() error
}

// channel is the subset of *amqp.Channel used by AMQPPublisher
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes entry events on a durable topic exchange
type AMQPPublisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
}

// NewAMQPPublisher dials the broker and declares the exchange
func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newAMQPPublisher(ch, exchange)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn

	log.Printf("✅ Event publisher connected [exchange: %s]", exchange)
	return p, nil
}

func newAMQPPublisher(ch channel, exchange string) (*AMQPPublisher, error) {
	err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{ch: ch, exchange: exchange}, nil
}

// RoutingKey returns the routing key of an entry event, e.g. entry.income
func RoutingKey(kind domain.EntryKind) string {
	return "entry." + string(kind)
}

// Publish sends event as a persistent JSON message
func (p *AMQPPublisher) Publish(ctx context.Context, event domain.EntryRecorded) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		ctx,
		p.exchange,             // exchange
		RoutingKey(event.Kind), // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", RoutingKey(event.Kind), err)
	}
	return nil
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher drops every event. It is used when AMQP_URL is empty.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event domain.EntryRecorded) error { return nil }

func (NoopPublisher) Close() error { return nil }

// New returns an AMQP publisher for url, or a NoopPublisher when url is empty
func New(url, exchange string) (Publisher, error) {
	if url == "" {
		log.Println("⚠️ AMQP_URL not set, entry events are not published")
		return NoopPublisher{}, nil
	}
	return NewAMQPPublisher(url, exchange)
}
