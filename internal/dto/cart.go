package dto

import (
	"storefront-service/internal/cart"
	"storefront-service/internal/models"
	"storefront-service/internal/service"
)

type AddCartItemRequest struct {
	ProductID    int64   `json:"productId" example:"1"`
	ProductName  string  `json:"productName" example:"100 Diamantes"`
	ProductPrice int64   `json:"productPrice" example:"50000"`
	ProductImage *string `json:"productImage"`
	GameName     string  `json:"gameName" example:"Free Fire"`
}

func (r AddCartItemRequest) ToInput() service.AddCartItemInput {
	return service.AddCartItemInput{
		ProductID:    r.ProductID,
		ProductName:  r.ProductName,
		ProductPrice: r.ProductPrice,
		ProductImage: r.ProductImage,
		GameName:     r.GameName,
	}
}

type UpdateCartItemRequest struct {
	Quantity int32 `json:"quantity" example:"2"`
}

type CartResponse struct {
	Items       []cart.Item `json:"items"`
	TotalAmount int64       `json:"totalAmount"`
	TotalItems  int64       `json:"totalItems"`
}

func NewCartResponse(c *cart.Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return CartResponse{Items: items, TotalAmount: c.TotalAmount(), TotalItems: c.TotalItems()}
}

type CheckoutRequest struct {
	CustomerName   string  `json:"customerName"`
	CustomerEmail  *string `json:"customerEmail"`
	CustomerPhone  string  `json:"customerPhone"`
	PlayerID       string  `json:"playerId"`
	PlayerNickname *string `json:"playerNickname"`
	PaymentMethod  string  `json:"paymentMethod" example:"unitel"`
	Notes          *string `json:"notes"`
}

func (r CheckoutRequest) ToInput() service.CheckoutInput {
	return service.CheckoutInput{
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		PlayerID:       r.PlayerID,
		PlayerNickname: r.PlayerNickname,
		PaymentMethod:  models.PaymentMethod(r.PaymentMethod),
		Notes:          r.Notes,
	}
}

type CheckoutResponse struct {
	OrderNumbers []string `json:"orderNumbers"`
	TotalAmount  int64    `json:"totalAmount"`
}

// PartialCheckoutResponse: часть строк уже оформлена, остальные остались в корзине
type PartialCheckoutResponse struct {
	OrderNumbers []string  `json:"orderNumbers"`
	TotalAmount  int64     `json:"totalAmount"`
	Error        BaseError `json:"error"`
}
