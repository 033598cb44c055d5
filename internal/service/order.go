package service

import (
	"context"
	"strings"

	"storefront-service/internal/models"
)

type CreateOrderInput struct {
	CustomerName   string               `json:"customerName" validate:"required,max=200"`
	CustomerEmail  *string              `json:"customerEmail" validate:"omitempty,email,max=320"`
	CustomerPhone  string               `json:"customerPhone" validate:"required,max=50"`
	PlayerID       string               `json:"playerId" validate:"required,max=100"`
	PlayerNickname *string              `json:"playerNickname" validate:"omitempty,max=100"`
	GameName       string               `json:"gameName" validate:"required,max=100"`
	ProductID      int64                `json:"productId" validate:"required,gt=0"`
	ProductName    string               `json:"productName" validate:"required,max=200"`
	ProductPrice   int64                `json:"productPrice" validate:"required,gt=0"`
	Quantity       int32                `json:"quantity" validate:"min=1"`
	TotalAmount    int64                `json:"totalAmount" validate:"required,gt=0"`
	PaymentMethod  models.PaymentMethod `json:"paymentMethod" validate:"required,oneof=express paypay unitel iban_bai iban_bfa presencial"`
	Notes          *string              `json:"notes" validate:"omitempty,max=2000"`
}

// normalize обрезает пробелы и превращает пустые опциональные поля в nil
func (in *CreateOrderInput) normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.PlayerID = strings.TrimSpace(in.PlayerID)
	in.GameName = strings.TrimSpace(in.GameName)
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.PaymentMethod = models.PaymentMethod(strings.TrimSpace(string(in.PaymentMethod)))
	in.CustomerEmail = trimOptional(in.CustomerEmail)
	in.PlayerNickname = trimOptional(in.PlayerNickname)
	in.Notes = trimOptional(in.Notes)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

type UpdateStatusInput struct {
	OrderID    int64
	Status     models.OrderStatus
	AdminNotes *string
}

type ListFilter struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

// Normalized приводит пагинацию к допустимым значениям: limit 1..100 (по умолчанию 20), offset >= 0
func (f ListFilter) Normalized() ListFilter {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

type Stats struct {
	TotalOrders     int64
	TotalRevenue    int64
	PendingOrders   int64
	CompletedOrders int64
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	UpdateStatus(ctx context.Context, in UpdateStatusInput) (*models.Order, error)
	ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error)
	// ListMyOrders: заказы, привязанные к текущему пользователю
	ListMyOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error)
	Stats(ctx context.Context) (*Stats, error)
}
