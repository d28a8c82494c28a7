package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"papatacos/internal/core/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	published  []published
	publishErr error
	declareErr error
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declared = append(f.declared, name+"/"+kind)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return f.publishErr
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublishEntryEvent(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newAMQPPublisher(ch, "papatacos.events")
	require.NoError(t, err)
	assert.Equal(t, []string{"papatacos.events/topic"}, ch.declared)

	event := domain.EntryRecorded{
		Kind:       domain.KindExpense,
		ID:         12,
		Amount:     decimal.RequireFromString("4000"),
		Label:      "Viande",
		OccurredAt: time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC),
		UserID:     3,
	}
	require.NoError(t, p.Publish(context.Background(), event))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "papatacos.events", got.exchange)
	assert.Equal(t, "entry.expense", got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, "expense", body["kind"])
	assert.Equal(t, "4000", body["amount"])
	assert.Equal(t, "Viande", body["label"])
}

func TestPublishError(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := newAMQPPublisher(ch, "ex")
	require.NoError(t, err)

	err = p.Publish(context.Background(), domain.EntryRecorded{Kind: domain.KindIncome})
	assert.ErrorContains(t, err, "entry.income")
}

func TestDeclareFailureClosesChannel(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := newAMQPPublisher(ch, "ex")
	assert.Error(t, err)
	assert.True(t, ch.closed)
}

func TestNewWithoutURLIsNoop(t *testing.T) {
	p, err := New("", "ex")
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), domain.EntryRecorded{}))
	assert.NoError(t, p.Close())
}
