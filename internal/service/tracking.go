package service

import (
	"context"
	"strings"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
)

type OrderCache interface {
	GetOrder(ctx context.Context, number string) (*models.Order, error)
	// SetOrder не должен заменять запись с более поздним UpdatedAt
	SetOrder(ctx context.Context, o *models.Order) error
	InvalidateOrder(ctx context.Context, number string) error
}

type TrackingService interface {
	// GetByNumber возвращает (nil, nil), если заказа нет: публичный путь не различает «нет» и «скрыт»
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	NotificationHistory(ctx context.Context, orderID int64) ([]models.Notification, error)
}

type trackingService struct {
	orders   repository.OrderRepo
	notifier NotificationService
	cache    OrderCache
	log      *zap.Logger
}

func NewTrackingService(repo *repository.Repository, notifier NotificationService, cache OrderCache, log *zap.Logger) TrackingService {
	return &trackingService{orders: repo.Orders, notifier: notifier, cache: cache, log: log}
}

func (s *trackingService) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, nil
	}

	if s.cache != nil {
		cached, err := s.cache.GetOrder(ctx, number)
		if err != nil {
			s.log.Warn("order cache read failed", zap.String("order_number", number), zap.Error(err))
		}
		if cached != nil && cached.OrderNumber == number {
			return cached, nil
		}
	}

	ord, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.SetOrder(ctx, ord); err != nil {
			s.log.Warn("order cache write failed", zap.String("order_number", number), zap.Error(err))
		}
	}
	return ord, nil
}

func (s *trackingService) NotificationHistory(ctx context.Context, orderID int64) ([]models.Notification, error) {
	return s.notifier.HistoryForOrder(ctx, orderID)
}
