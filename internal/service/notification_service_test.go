package service_test

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newNotificationService(repo *MockNotificationRepo, metrics service.Metrics, channels ...service.OwnerChannel) service.NotificationService {
	return service.NewNotificationService(&repository.Repository{Notifications: repo}, channels, metrics, zap.NewNop())
}

func TestNotificationService_NotifyOwner(t *testing.T) {
	t.Run("no channels", func(t *testing.T) {
		svc := newNotificationService(&MockNotificationRepo{}, nil)
		assert.False(t, svc.NotifyOwner(context.Background(), "t", "c"))
	})

	t.Run("one channel fails, another delivers", func(t *testing.T) {
		bad := &MockChannel{NameValue: "email", Err: errors.New("smtp down")}
		good := &MockChannel{NameValue: "whatsapp"}
		metrics := &MockMetrics{}
		svc := newNotificationService(&MockNotificationRepo{}, metrics, bad, good)

		ok := svc.NotifyOwner(context.Background(), "Novo Pedido", "conteúdo")
		assert.True(t, ok)
		require.Len(t, good.Alerts, 1)
		assert.Equal(t, "Novo Pedido", good.Alerts[0].Title)
		assert.Equal(t, 1, metrics.Alerts["email:error"])
		assert.Equal(t, 1, metrics.Alerts["whatsapp:ok"])
	})

	t.Run("all channels fail", func(t *testing.T) {
		bad := &MockChannel{NameValue: "email", Err: errors.New("boom")}
		svc := newNotificationService(&MockNotificationRepo{}, nil, bad)
		assert.False(t, svc.NotifyOwner(context.Background(), "t", "c"))
	})
}

func TestNotificationService_Emit(t *testing.T) {
	repo := &MockNotificationRepo{}
	svc := newNotificationService(repo, nil)

	n, err := svc.Emit(context.Background(), service.EmitInput{
		OrderID: 3,
		Type:    models.NotificationOrderCompleted,
		Title:   "Recarga concluída",
		Message: "ok",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.ID)
	assert.False(t, n.IsRead)
	assert.False(t, n.CreatedAt.IsZero())

	_, err = svc.Emit(context.Background(), service.EmitInput{OrderID: 3, Type: "shipped", Title: "x", Message: "y"})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	repo := &MockNotificationRepo{}
	svc := newNotificationService(repo, nil)
	_, err := svc.Emit(context.Background(), service.EmitInput{OrderID: 1, Type: models.NotificationOrderPaid, Title: "t", Message: "m"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.MarkAsRead(context.Background(), 1), service.ErrUnauthorized)
	assert.ErrorIs(t, svc.MarkAsRead(userCtx(), 99), service.ErrNotificationNotFound)

	require.NoError(t, svc.MarkAsRead(userCtx(), 1))
	// повторная отметка не трогает репозиторий
	require.NoError(t, svc.MarkAsRead(userCtx(), 1))
	assert.Equal(t, []int64{1}, repo.Reads)
}

func TestNotificationService_HistoryForOrder(t *testing.T) {
	repo := &MockNotificationRepo{}
	svc := newNotificationService(repo, nil)
	for _, typ := range []models.NotificationType{models.NotificationOrderCreated, models.NotificationOrderPaid} {
		_, err := svc.Emit(context.Background(), service.EmitInput{OrderID: 5, Type: typ, Title: "t", Message: "m"})
		require.NoError(t, err)
	}

	list, err := svc.HistoryForOrder(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.NotificationOrderPaid, list[0].Type, "newest first")

	empty, err := svc.HistoryForOrder(context.Background(), 404)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	none, err := svc.HistoryForOrder(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNotificationService_OnStatusChanged(t *testing.T) {
	repo := &MockNotificationRepo{}
	svc := newNotificationService(repo, nil)
	ord := &models.Order{ID: 8, OrderNumber: "MD1", Status: models.OrderStatusCancelled}

	svc.OnStatusChanged(context.Background(), ord, models.OrderStatusCancelled)
	assert.Empty(t, repo.Items)

	svc.OnStatusChanged(context.Background(), ord, models.OrderStatusPending)
	require.Len(t, repo.Items, 1)
	assert.Equal(t, models.NotificationOrderCancelled, repo.Items[0].Type)
	assert.Equal(t, "Pedido cancelado", repo.Items[0].Title)
	assert.Contains(t, repo.Items[0].Message, "MD1")

	// ошибка записи только логируется
	repo.FailErr = errors.New("db down")
	ord.Status = models.OrderStatusCompleted
	svc.OnStatusChanged(context.Background(), ord, models.OrderStatusCancelled)
	assert.Len(t, repo.Items, 1)
}

func TestNotificationService_ListMine(t *testing.T) {
	repo := &MockNotificationRepo{}
	svc := newNotificationService(repo, nil)

	me := uuid.New()
	other := uuid.New()
	for i, uid := range []uuid.UUID{me, other, me} {
		_, err := svc.Emit(context.Background(), service.EmitInput{OrderID: int64(i + 1), UserID: &uid, Type: models.NotificationOrderCreated, Title: "t", Message: "m"})
		require.NoError(t, err)
	}

	ctx := service.WithRole(service.WithUserID(context.Background(), me), service.RoleUser)
	list, err := svc.ListMine(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].OrderID, "newest first")
	assert.Equal(t, int64(1), list[1].OrderID)

	empty, err := svc.ListMine(userCtx())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.ListMine(context.Background())
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}
