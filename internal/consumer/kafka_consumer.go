package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront-service/internal/producer"
	"storefront-service/internal/sender"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type emailSender interface {
	SendEmail(n sender.EmailNotification) error
}

// OwnerAlertConsumer читает owner-alerts и отправляет письма владельцу
type OwnerAlertConsumer struct {
	reader messageReader
	email  emailSender
	log    *zap.Logger
}

func NewOwnerAlertConsumer(brokers []string, groupID, topic string, email emailSender, log *zap.Logger) *OwnerAlertConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          10e3,
		MaxBytes:          10e6,
		CommitInterval:    time.Second,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	})
	return &OwnerAlertConsumer{reader: r, email: email, log: log}
}

func (c *OwnerAlertConsumer) Run(ctx context.Context) error {
	c.log.Info("kafka consumer started")
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return nil
			}
			c.log.Error("read message", zap.Error(err))
			continue
		}
		c.handle(m)
	}
}

// handle никогда не останавливает цикл: битое сообщение логируется и пропускается
func (c *OwnerAlertConsumer) handle(m kafka.Message) {
	var em producer.EmailMessage
	if err := json.Unmarshal(m.Value, &em); err != nil {
		c.log.Error("unmarshal email message", zap.ByteString("value", m.Value), zap.Error(err))
		return
	}
	if em.To == "" || em.Template == "" {
		c.log.Warn("invalid email message", zap.Any("msg", em))
		return
	}
	if err := c.email.SendEmail(sender.EmailNotification{To: em.To, Subject: em.Subject, Template: em.Template, Data: em.Data}); err != nil {
		c.log.Error("send email failed", zap.String("to", em.To), zap.String("template", em.Template), zap.Error(err))
		return
	}
	c.log.Info("email sent", zap.String("to", em.To), zap.String("template", em.Template))
}

func (c *OwnerAlertConsumer) Close() error { return c.reader.Close() }
