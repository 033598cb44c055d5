package service

import (
	"context"
	"time"

	"storefront-service/internal/models"

	"github.com/google/uuid"
)

type OrderCreatedEvent struct {
	OrderID       int64                `json:"order_id"`
	OrderNumber   string               `json:"order_number"`
	UserID        *uuid.UUID           `json:"user_id,omitempty"`
	GameName      string               `json:"game_name"`
	ProductID     int64                `json:"product_id"`
	Quantity      int32                `json:"quantity"`
	TotalAmount   int64                `json:"total_amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time            `json:"created_at"`
}

type OrderStatusChangedEvent struct {
	OrderID     int64              `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	From        models.OrderStatus `json:"from"`
	To          models.OrderStatus `json:"to"`
	ChangedBy   uuid.UUID          `json:"changed_by"`
	ChangedAt   time.Time          `json:"changed_at"`
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, e OrderStatusChangedEvent) error
}

// Metrics is implemented by the prometheus collectors; nil disables recording.
type Metrics interface {
	OrderCreated(paymentMethod string)
	OrderStatusChanged(to string)
	OwnerAlert(channel string, ok bool)
}
