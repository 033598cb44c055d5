package dto

import (
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/service"
)

type CreateOrderRequest struct {
	CustomerName   string  `json:"customerName" example:"Ana Silva"`
	CustomerEmail  *string `json:"customerEmail" example:"ana@example.com"`
	CustomerPhone  string  `json:"customerPhone" example:"+244923000000"`
	PlayerID       string  `json:"playerId" example:"123456789"`
	PlayerNickname *string `json:"playerNickname"`
	GameName       string  `json:"gameName" example:"Free Fire"`
	ProductID      int64   `json:"productId" example:"1"`
	ProductName    string  `json:"productName" example:"100 Diamantes"`
	ProductPrice   int64   `json:"productPrice" example:"50000"`
	Quantity       int32   `json:"quantity" example:"1"`
	TotalAmount    int64   `json:"totalAmount" example:"50000"`
	PaymentMethod  string  `json:"paymentMethod" example:"express"`
	Notes          *string `json:"notes"`
}

func (r CreateOrderRequest) ToInput() service.CreateOrderInput {
	return service.CreateOrderInput{
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		PlayerID:       r.PlayerID,
		PlayerNickname: r.PlayerNickname,
		GameName:       r.GameName,
		ProductID:      r.ProductID,
		ProductName:    r.ProductName,
		ProductPrice:   r.ProductPrice,
		Quantity:       r.Quantity,
		TotalAmount:    r.TotalAmount,
		PaymentMethod:  models.PaymentMethod(r.PaymentMethod),
		Notes:          r.Notes,
	}
}

type CreateOrderResponse struct {
	OrderNumber string `json:"orderNumber" example:"MD1739980800000123"`
}

type OrderResponse struct {
	ID                 int64      `json:"id"`
	OrderNumber        string     `json:"orderNumber"`
	UserID             *string    `json:"userId,omitempty"`
	CustomerName       string     `json:"customerName"`
	CustomerEmail      *string    `json:"customerEmail,omitempty"`
	CustomerPhone      string     `json:"customerPhone"`
	PlayerID           string     `json:"playerId"`
	PlayerNickname     *string    `json:"playerNickname,omitempty"`
	GameName           string     `json:"gameName"`
	ProductID          int64      `json:"productId"`
	ProductName        string     `json:"productName"`
	ProductPrice       int64      `json:"productPrice"`
	Quantity           int32      `json:"quantity"`
	TotalAmount        int64      `json:"totalAmount"`
	PaymentMethod      string     `json:"paymentMethod"`
	PaymentMethodLabel string     `json:"paymentMethodLabel"`
	Status             string     `json:"status"`
	ProofURL           *string    `json:"proofUrl,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
	AdminNotes         *string    `json:"adminNotes,omitempty"`
	RemindedAt         *time.Time `json:"remindedAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	var uid *string
	if o.UserID != nil {
		s := o.UserID.String()
		uid = &s
	}
	return OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		UserID:             uid,
		CustomerName:       o.CustomerName,
		CustomerEmail:      o.CustomerEmail,
		CustomerPhone:      o.CustomerPhone,
		PlayerID:           o.PlayerID,
		PlayerNickname:     o.PlayerNickname,
		GameName:           o.GameName,
		ProductID:          o.ProductID,
		ProductName:        o.ProductName,
		ProductPrice:       o.ProductPrice,
		Quantity:           o.Quantity,
		TotalAmount:        o.TotalAmount,
		PaymentMethod:      string(o.PaymentMethod),
		PaymentMethodLabel: o.PaymentMethod.DisplayName(),
		Status:             string(o.Status),
		ProofURL:           o.ProofURL,
		Notes:              o.Notes,
		AdminNotes:         o.AdminNotes,
		RemindedAt:         o.RemindedAt,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

type ProgressStepResponse struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Done   bool   `json:"done"`
}

type ProgressResponse struct {
	Label       string                 `json:"label"`
	Description string                 `json:"description"`
	Cancelled   bool                   `json:"cancelled"`
	Steps       []ProgressStepResponse `json:"steps"`
}

// TrackingResponse: публичный ответ отслеживания: заказ + чек-лист прогресса
type TrackingResponse struct {
	Order    OrderResponse    `json:"order"`
	Progress ProgressResponse `json:"progress"`
}

func NewTrackingResponse(o *models.Order) TrackingResponse {
	p := service.ProgressFor(o.Status)
	steps := make([]ProgressStepResponse, len(p.Steps))
	for i, s := range p.Steps {
		steps[i] = ProgressStepResponse{Status: string(s.Status), Label: s.Label, Done: s.Done}
	}
	return TrackingResponse{
		Order: NewOrderResponse(o),
		Progress: ProgressResponse{
			Label:       p.Label,
			Description: p.Description,
			Cancelled:   p.Cancelled,
			Steps:       steps,
		},
	}
}

type UpdateStatusRequest struct {
	Status     string  `json:"status" example:"paid"`
	AdminNotes *string `json:"adminNotes"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// NewListOrdersResponse: f должен быть уже нормализован, чтобы limit/offset совпадали с реально применёнными
func NewListOrdersResponse(orders []models.Order, total int64, f service.ListFilter) ListOrdersResponse {
	resp := ListOrdersResponse{Orders: make([]OrderResponse, len(orders)), Total: total, Limit: f.Limit, Offset: f.Offset}
	for i := range orders {
		resp.Orders[i] = NewOrderResponse(&orders[i])
	}
	return resp
}

type StatsResponse struct {
	TotalOrders     int64 `json:"totalOrders"`
	TotalRevenue    int64 `json:"totalRevenue"`
	PendingOrders   int64 `json:"pendingOrders"`
	CompletedOrders int64 `json:"completedOrders"`
}

type NotificationResponse struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewNotificationsResponse(list []models.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(list))
	for i, n := range list {
		out[i] = NotificationResponse{
			ID:        n.ID,
			OrderID:   n.OrderID,
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}
