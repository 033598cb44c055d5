package service

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type orderService struct {
	repo     *repository.Repository
	notifier NotificationService
	events   EventBus
	cache    OrderCache
	metrics  Metrics
	numbers  *NumberGenerator
	log      *zap.Logger
	now      func() time.Time
}

type OrderServiceDeps struct {
	Notifier NotificationService
	Events   EventBus   // nil отключает публикацию событий
	Cache    OrderCache // nil: без кэша
	Metrics  Metrics
	Numbers  *NumberGenerator
}

func NewOrderService(repo *repository.Repository, deps OrderServiceDeps, log *zap.Logger) OrderService {
	if deps.Numbers == nil {
		deps.Numbers = NewNumberGenerator(OrderNumberPrefix)
	}
	return &orderService{
		repo:     repo,
		notifier: deps.Notifier,
		events:   deps.Events,
		cache:    deps.Cache,
		metrics:  deps.Metrics,
		numbers:  deps.Numbers,
		log:      log,
		now:      time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var order *models.Order
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		number, err := s.numbers.Unique(ctx, s.repo.Orders.ExistsByNumber)
		if err != nil {
			return nil, err
		}

		now := s.now()
		candidate := &models.Order{
			OrderNumber:    number,
			UserID:         optionalUserID(ctx),
			CustomerName:   in.CustomerName,
			CustomerEmail:  in.CustomerEmail,
			CustomerPhone:  in.CustomerPhone,
			PlayerID:       in.PlayerID,
			PlayerNickname: in.PlayerNickname,
			GameName:       in.GameName,
			ProductID:      in.ProductID,
			ProductName:    in.ProductName,
			ProductPrice:   in.ProductPrice,
			Quantity:       in.Quantity,
			TotalAmount:    in.TotalAmount,
			PaymentMethod:  in.PaymentMethod,
			Status:         models.OrderStatusPending,
			Notes:          in.Notes,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		err = s.repo.Orders.WithTx(ctx, func(txOrders repository.OrderRepo, txNotifications repository.NotificationRepo) error {
			if err := txOrders.Create(ctx, candidate); err != nil {
				return err
			}
			n := statusNotification(candidate, models.OrderStatusPending)
			n.CreatedAt = now
			return txNotifications.Create(ctx, n)
		})
		// номер успели занять между проверкой и вставкой: пробуем ещё раз
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.log.Warn("order number collision, retrying", zap.String("order_number", number))
			continue
		}
		if err != nil {
			return nil, err
		}
		order = candidate
		break
	}
	if order == nil {
		return nil, ErrOrderNumberExhausted
	}

	s.log.Info("order created",
		zap.Int64("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("payment_method", string(order.PaymentMethod)),
	)
	if s.metrics != nil {
		s.metrics.OrderCreated(string(order.PaymentMethod))
	}

	if s.notifier != nil {
		title, content := newOrderAlert(order)
		s.notifier.NotifyOwner(ctx, title, content)
	}

	if s.events != nil {
		if err := s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
			OrderID:       order.ID,
			OrderNumber:   order.OrderNumber,
			UserID:        order.UserID,
			GameName:      order.GameName,
			ProductID:     order.ProductID,
			Quantity:      order.Quantity,
			TotalAmount:   order.TotalAmount,
			PaymentMethod: order.PaymentMethod,
			CreatedAt:     order.CreatedAt,
		}); err != nil {
			s.log.Warn("publish order created failed", zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

// UpdateStatus не проверяет таблицу переходов: админ может выставить любой статус из любого.
// Оптимистической блокировки нет, при гонке побеждает последняя запись.
func (s *orderService) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*models.Order, error) {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if !in.Status.Valid() {
		return nil, &ValidationError{
			Fields: []FieldViolation{{Field: "status", Message: "must be one of: pending paid processing completed cancelled", Tag: "oneof"}},
			Cause:  ErrInvalidStatus,
		}
	}
	if in.OrderID <= 0 {
		return nil, newFieldError("orderId", "gt", "must be a positive id")
	}

	ord, err := s.repo.Orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	previous := ord.Status

	if err := s.repo.Orders.UpdateStatus(ctx, in.OrderID, in.Status, in.AdminNotes); err != nil {
		return nil, err
	}

	updated, err := s.repo.Orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrOrderNotFound
	}

	s.log.Info("order status updated",
		zap.Int64("order_id", updated.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(updated.Status)),
		zap.String("admin_id", adminID.String()),
	)

	// свежая строка пишется в кэш, а не удаляется из него: иначе читатель,
	// взявший старую строку до коммита, заполнит кэш устаревшим статусом
	if s.cache != nil {
		if err := s.cache.SetOrder(ctx, updated); err != nil {
			s.log.Warn("refresh order cache failed", zap.String("order_number", updated.OrderNumber), zap.Error(err))
			if err := s.cache.InvalidateOrder(ctx, updated.OrderNumber); err != nil {
				s.log.Warn("invalidate order cache failed", zap.String("order_number", updated.OrderNumber), zap.Error(err))
			}
		}
	}

	if previous != updated.Status {
		if s.metrics != nil {
			s.metrics.OrderStatusChanged(string(updated.Status))
		}
		if s.notifier != nil {
			s.notifier.OnStatusChanged(ctx, updated, previous)
		}
		if s.events != nil {
			if err := s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
				OrderID:     updated.ID,
				OrderNumber: updated.OrderNumber,
				From:        previous,
				To:          updated.Status,
				ChangedBy:   adminID,
				ChangedAt:   s.now(),
			}); err != nil {
				s.log.Warn("publish status changed failed", zap.String("order_number", updated.OrderNumber), zap.Error(err))
			}
		}
	}

	return updated, nil
}

func (s *orderService) ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, 0, err
	}
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, &ValidationError{
			Fields: []FieldViolation{{Field: "status", Message: "unknown status", Tag: "oneof"}},
			Cause:  ErrInvalidStatus,
		}
	}
	f = f.Normalized()

	return s.list(ctx, repository.OrderListFilter{
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}

func (s *orderService) ListMyOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}
	f = f.Normalized()

	return s.list(ctx, repository.OrderListFilter{
		UserID: &uid,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
}

func (s *orderService) list(ctx context.Context, f repository.OrderListFilter) ([]models.Order, int64, error) {
	ordersPtr, total, err := s.repo.Orders.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

func (s *orderService) Stats(ctx context.Context) (*Stats, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	st, err := s.repo.Orders.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalOrders:     st.TotalOrders,
		TotalRevenue:    st.TotalRevenue,
		PendingOrders:   st.PendingOrders,
		CompletedOrders: st.CompletedOrders,
	}, nil
}
