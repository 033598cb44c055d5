package reminder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"go.uber.org/zap"
)

type staleOrders interface {
	ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Order, error)
	MarkReminded(ctx context.Context, ids []int64, at time.Time) error
}

type ownerNotifier interface {
	NotifyOwner(ctx context.Context, title, content string) bool
}

type recorder interface {
	PendingReminders(n int)
}

// Service напоминает владельцу о заказах, застрявших в pending.
// Каждый заказ попадает в напоминание не больше одного раза (reminded_at).
type Service struct {
	orders       staleOrders
	notifier     ownerNotifier
	metrics      recorder
	pendingAfter time.Duration
	batchSize    int
	now          func() time.Time
	log          *zap.Logger
}

func NewService(orders staleOrders, notifier ownerNotifier, metrics recorder, pendingAfter time.Duration, batchSize int, log *zap.Logger) *Service {
	return &Service{
		orders:       orders,
		notifier:     notifier,
		metrics:      metrics,
		pendingAfter: pendingAfter,
		batchSize:    batchSize,
		now:          time.Now,
		log:          log,
	}
}

// RemindStalePending возвращает число заказов, о которых сообщили владельцу
func (s *Service) RemindStalePending(ctx context.Context) (int, error) {
	now := s.now()
	stale, err := s.orders.ListStalePending(ctx, now.Add(-s.pendingAfter), s.batchSize)
	if err != nil {
		s.log.Error("failed to list stale pending orders", zap.Error(err))
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	title, content := reminderAlert(stale, now)
	// если ничего не доставили, не помечаем: попробуем на следующем тике
	if !s.notifier.NotifyOwner(ctx, title, content) {
		s.log.Warn("stale pending reminder not delivered", zap.Int("count", len(stale)))
		return 0, nil
	}

	ids := make([]int64, len(stale))
	for i, o := range stale {
		ids[i] = o.ID
	}
	if err := s.orders.MarkReminded(ctx, ids, now); err != nil {
		s.log.Error("failed to mark orders reminded", zap.Error(err))
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.PendingReminders(len(stale))
	}
	s.log.Info("stale pending orders reminded", zap.Int("count", len(stale)))
	return len(stale), nil
}

func reminderAlert(orders []*models.Order, now time.Time) (string, string) {
	title := fmt.Sprintf("Pedidos pendentes: %d", len(orders))
	lines := make([]string, 0, len(orders))
	for _, o := range orders {
		age := now.Sub(o.CreatedAt).Truncate(time.Minute)
		lines = append(lines, fmt.Sprintf("%s | %s | %s | %s | há %s",
			o.OrderNumber, o.CustomerName, o.ProductName, service.FormatKz(o.TotalAmount), age))
	}
	return title, strings.Join(lines, "\n")
}
