package producer

import (
	"context"
	"encoding/json"
	"testing"

	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestAlertProducerWritesEmailMessage(t *testing.T) {
	w := &fakeWriter{}
	p := &AlertProducer{writer: w, to: "owner@example.com", template: "owner_alert"}

	err := p.SendOwnerAlert(context.Background(), service.OwnerAlert{Title: "Novo Pedido: MD1", Content: "Cliente: Ana"})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.NotEmpty(t, w.msgs[0].Key)

	var got EmailMessage
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, "owner@example.com", got.To)
	assert.Equal(t, "Novo Pedido: MD1", got.Subject)
	assert.Equal(t, "owner_alert", got.Template)
	assert.Equal(t, "Cliente: Ana", got.Data["Content"])
	assert.Equal(t, "email", p.Name())
}

func TestEventProducerKeysByOrderID(t *testing.T) {
	w := &fakeWriter{}
	p := &EventProducer{writer: w}

	require.NoError(t, p.PublishOrderCreated(context.Background(), service.OrderCreatedEvent{
		OrderID: 42, OrderNumber: "MD1", PaymentMethod: models.PaymentExpress,
	}))
	require.NoError(t, p.PublishOrderStatusChanged(context.Background(), service.OrderStatusChangedEvent{
		OrderID: 42, From: models.OrderStatusPending, To: models.OrderStatusPaid,
	}))

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "42", string(w.msgs[0].Key))
	assert.Equal(t, "42", string(w.msgs[1].Key))
	assert.Equal(t, EventOrderCreated, string(w.msgs[0].Headers[0].Value))
	assert.Equal(t, EventOrderStatusChanged, string(w.msgs[1].Headers[0].Value))

	var ev service.OrderStatusChangedEvent
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &ev))
	assert.Equal(t, models.OrderStatusPaid, ev.To)
}
