package service

import (
	"context"
	"strings"

	"storefront-service/internal/cart"
	"storefront-service/internal/models"

	"go.uber.org/zap"
)

// CartStore хранит корзину сессии; Load на пустой сессии отдаёт пустую корзину
type CartStore interface {
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c *cart.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type AddCartItemInput struct {
	ProductID    int64   `json:"productId" validate:"required,gt=0"`
	ProductName  string  `json:"productName" validate:"required,max=200"`
	ProductPrice int64   `json:"productPrice" validate:"required,gt=0"`
	ProductImage *string `json:"productImage" validate:"omitempty,max=1000"`
	GameName     string  `json:"gameName" validate:"required,max=100"`
}

type CheckoutInput struct {
	CustomerName   string               `json:"customerName" validate:"required,max=200"`
	CustomerEmail  *string              `json:"customerEmail" validate:"omitempty,email,max=320"`
	CustomerPhone  string               `json:"customerPhone" validate:"required,max=50"`
	PlayerID       string               `json:"playerId" validate:"required,max=100"`
	PlayerNickname *string              `json:"playerNickname" validate:"omitempty,max=100"`
	PaymentMethod  models.PaymentMethod `json:"paymentMethod" validate:"required,oneof=express paypay unitel iban_bai iban_bfa presencial"`
	Notes          *string              `json:"notes" validate:"omitempty,max=2000"`
}

type CheckoutResult struct {
	OrderNumbers []string
	TotalAmount  int64
}

type CartService interface {
	Get(ctx context.Context, sessionID string) (*cart.Cart, error)
	AddItem(ctx context.Context, sessionID string, in AddCartItemInput) (*cart.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int32) (*cart.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
	Checkout(ctx context.Context, sessionID string, in CheckoutInput) (*CheckoutResult, error)
}

type cartService struct {
	store  CartStore
	orders OrderService
	log    *zap.Logger
}

func NewCartService(store CartStore, orders OrderService, log *zap.Logger) CartService {
	return &cartService{store: store, orders: orders, log: log}
}

func (s *cartService) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	if s.store == nil {
		return nil, ErrCartStoreUnavailable
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, newFieldError("sessionId", "required", "X-Session-ID header is required")
	}
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cart.New()
	}
	return c, nil
}

func (s *cartService) mutate(ctx context.Context, sessionID string, fn func(c *cart.Cart)) (*cart.Cart, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fn(c)
	if err := s.store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *cartService) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return s.load(ctx, sessionID)
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, in AddCartItemInput) (*cart.Cart, error) {
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.GameName = strings.TrimSpace(in.GameName)
	in.ProductImage = trimOptional(in.ProductImage)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.mutate(ctx, sessionID, func(c *cart.Cart) {
		c.AddItem(cart.Item{
			ProductID:    in.ProductID,
			ProductName:  in.ProductName,
			ProductPrice: in.ProductPrice,
			ProductImage: in.ProductImage,
			GameName:     in.GameName,
		})
	})
}

func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int32) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) { c.UpdateQuantity(productID, quantity) })
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*cart.Cart, error) {
	return s.mutate(ctx, sessionID, func(c *cart.Cart) { c.RemoveItem(productID) })
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.load(ctx, sessionID); err != nil {
		return err
	}
	return s.store.Delete(ctx, sessionID)
}

// Checkout оформляет по одному заказу на каждую строку корзины.
// Корзина очищается только если все заказы созданы; при ошибке на середине
// уже созданные номера возвращаются вместе с ошибкой, а в корзине остаются необработанные строки.
func (s *cartService) Checkout(ctx context.Context, sessionID string, in CheckoutInput) (*CheckoutResult, error) {
	c, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Normalize()
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.PlayerID = strings.TrimSpace(in.PlayerID)
	in.PaymentMethod = models.PaymentMethod(strings.TrimSpace(string(in.PaymentMethod)))
	in.CustomerEmail = trimOptional(in.CustomerEmail)
	in.PlayerNickname = trimOptional(in.PlayerNickname)
	in.Notes = trimOptional(in.Notes)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	res := &CheckoutResult{OrderNumbers: make([]string, 0, len(c.Items))}
	for len(c.Items) > 0 {
		item := c.Items[0]
		ord, err := s.orders.CreateOrder(ctx, CreateOrderInput{
			CustomerName:   in.CustomerName,
			CustomerEmail:  in.CustomerEmail,
			CustomerPhone:  in.CustomerPhone,
			PlayerID:       in.PlayerID,
			PlayerNickname: in.PlayerNickname,
			GameName:       item.GameName,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			ProductPrice:   item.ProductPrice,
			Quantity:       item.Quantity,
			TotalAmount:    item.Subtotal(),
			PaymentMethod:  in.PaymentMethod,
			Notes:          in.Notes,
		})
		if err != nil {
			if len(res.OrderNumbers) > 0 {
				if serr := s.store.Save(ctx, sessionID, c); serr != nil {
					s.log.Warn("save partially checked out cart failed", zap.String("session_id", sessionID), zap.Error(serr))
				}
				return res, err
			}
			return nil, err
		}
		res.OrderNumbers = append(res.OrderNumbers, ord.OrderNumber)
		res.TotalAmount += ord.TotalAmount
		c.RemoveItem(item.ProductID)
	}

	if err := s.store.Delete(ctx, sessionID); err != nil {
		s.log.Warn("clear cart after checkout failed", zap.String("session_id", sessionID), zap.Error(err))
	}
	s.log.Info("cart checked out", zap.Int("orders", len(res.OrderNumbers)), zap.Int64("total_amount", res.TotalAmount))
	return res, nil
}
