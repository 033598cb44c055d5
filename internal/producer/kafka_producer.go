package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"storefront-service/internal/service"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// messageWriter: то, что нужно от kafka.Writer; в тестах подменяется
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func write(ctx context.Context, w messageWriter, key string, v any, headers ...kafka.Header) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: headers,
	})
}

// EmailMessage: формат сообщений в топике owner-alerts, его читает cmd/notifier
type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// AlertProducer доставляет owner alert в Kafka, реализует service.OwnerChannel
type AlertProducer struct {
	writer   messageWriter
	to       string
	template string
}

func NewAlertProducer(brokers []string, topic, ownerEmail, template string) *AlertProducer {
	return &AlertProducer{writer: newWriter(brokers, topic), to: ownerEmail, template: template}
}

func (p *AlertProducer) Name() string { return "email" }

func (p *AlertProducer) SendOwnerAlert(ctx context.Context, a service.OwnerAlert) error {
	msg := EmailMessage{
		To:       p.to,
		Subject:  a.Title,
		Template: p.template,
		Data: map[string]any{
			"Title":   a.Title,
			"Content": a.Content,
		},
	}
	return write(ctx, p.writer, uuid.NewString(), msg)
}

func (p *AlertProducer) Close() error {
	return p.writer.Close()
}

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// EventProducer публикует доменные события заказов, реализует service.EventBus
type EventProducer struct {
	writer messageWriter
}

func NewEventProducer(brokers []string, topic string) *EventProducer {
	return &EventProducer{writer: newWriter(brokers, topic)}
}

// ключ: id заказа, чтобы события одного заказа шли в одну партицию по порядку
func (p *EventProducer) PublishOrderCreated(ctx context.Context, e service.OrderCreatedEvent) error {
	return write(ctx, p.writer, strconv.FormatInt(e.OrderID, 10), e,
		kafka.Header{Key: "event_type", Value: []byte(EventOrderCreated)})
}

func (p *EventProducer) PublishOrderStatusChanged(ctx context.Context, e service.OrderStatusChangedEvent) error {
	return write(ctx, p.writer, strconv.FormatInt(e.OrderID, 10), e,
		kafka.Header{Key: "event_type", Value: []byte(EventOrderStatusChanged)})
}

func (p *EventProducer) Close() error {
	return p.writer.Close()
}
