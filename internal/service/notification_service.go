package service

import (
	"context"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
)

const ownerAlertTimeout = 10 * time.Second

type notificationService struct {
	notifications repository.NotificationRepo
	channels      []OwnerChannel
	metrics       Metrics
	log           *zap.Logger
	now           func() time.Time
}

func NewNotificationService(repo *repository.Repository, channels []OwnerChannel, metrics Metrics, log *zap.Logger) NotificationService {
	return &notificationService{
		notifications: repo.Notifications,
		channels:      channels,
		metrics:       metrics,
		log:           log,
		now:           time.Now,
	}
}

func (s *notificationService) Emit(ctx context.Context, in EmitInput) (*models.Notification, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	n := &models.Notification{
		OrderID:   in.OrderID,
		UserID:    in.UserID,
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		IsRead:    false,
		CreatedAt: s.now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *notificationService) NotifyOwner(ctx context.Context, title, content string) bool {
	if len(s.channels) == 0 {
		s.log.Warn("owner alert dropped: no channels configured", zap.String("title", title))
		return false
	}

	delivered := false
	alert := OwnerAlert{Title: title, Content: content}
	for _, ch := range s.channels {
		sendCtx, cancel := context.WithTimeout(ctx, ownerAlertTimeout)
		err := ch.SendOwnerAlert(sendCtx, alert)
		cancel()

		if s.metrics != nil {
			s.metrics.OwnerAlert(ch.Name(), err == nil)
		}
		if err != nil {
			s.log.Warn("owner alert failed", zap.String("channel", ch.Name()), zap.String("title", title), zap.Error(err))
			continue
		}
		delivered = true
	}
	return delivered
}

func (s *notificationService) MarkAsRead(ctx context.Context, id int64) error {
	if _, _, err := requireAuth(ctx); err != nil {
		return err
	}
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.IsRead {
		return nil
	}
	return s.notifications.MarkAsRead(ctx, id)
}

func (s *notificationService) HistoryForOrder(ctx context.Context, orderID int64) ([]models.Notification, error) {
	if orderID <= 0 {
		return []models.Notification{}, nil
	}
	list, err := s.notifications.ListByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Notification{}
	}
	return list, nil
}

func (s *notificationService) ListMine(ctx context.Context) ([]models.Notification, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.notifications.ListByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Notification{}
	}
	return list, nil
}

// OnStatusChanged: хук смены статуса: пишет уведомление для клиента, ошибки только логируются
func (s *notificationService) OnStatusChanged(ctx context.Context, o *models.Order, previous models.OrderStatus) {
	if o == nil || o.Status == previous {
		return
	}
	n := statusNotification(o, o.Status)
	if _, err := s.Emit(ctx, EmitInput{
		OrderID: n.OrderID,
		UserID:  n.UserID,
		Type:    n.Type,
		Title:   n.Title,
		Message: n.Message,
	}); err != nil {
		s.log.Error("emit status notification failed",
			zap.Int64("order_id", o.ID),
			zap.String("status", string(o.Status)),
			zap.Error(err),
		)
	}
}
