package service

import (
	"context"

	"storefront-service/internal/models"

	"github.com/google/uuid"
)

type OwnerAlert struct {
	Title   string
	Content string
}

// OwnerChannel delivers operational alerts to the store owner (e-mail via Kafka, WhatsApp, ...).
type OwnerChannel interface {
	Name() string
	SendOwnerAlert(ctx context.Context, a OwnerAlert) error
}

type EmitInput struct {
	OrderID int64                   `json:"orderId" validate:"required,gt=0"`
	UserID  *uuid.UUID              `json:"userId"`
	Type    models.NotificationType `json:"type" validate:"required,oneof=order_created order_paid order_processing order_completed order_cancelled"`
	Title   string                  `json:"title" validate:"required,max=200"`
	Message string                  `json:"message" validate:"required"`
}

type NotificationService interface {
	Emit(ctx context.Context, in EmitInput) (*models.Notification, error)
	// NotifyOwner никогда не возвращает ошибку: true, если хотя бы один канал доставил сообщение
	NotifyOwner(ctx context.Context, title, content string) bool
	MarkAsRead(ctx context.Context, id int64) error
	HistoryForOrder(ctx context.Context, orderID int64) ([]models.Notification, error)
	// ListMine: уведомления текущего пользователя, новые первыми
	ListMine(ctx context.Context) ([]models.Notification, error)
	OnStatusChanged(ctx context.Context, o *models.Order, previous models.OrderStatus)
}
