package cache

import (
	"context"
	"testing"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/models"
	"storefront-service/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRedis(t *testing.T) *RedisClient {
	t.Helper()
	addr := testutil.SetupTestRedis(t)
	c, err := NewRedisClient(addr, "", 0, time.Minute, time.Hour, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisClient_OrderCache(t *testing.T) {
	rc := setupRedis(t)
	ctx := context.Background()

	miss, err := rc.GetOrder(ctx, "MD1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, rc.SetOrder(ctx, &models.Order{ID: 1, OrderNumber: "MD1", Status: models.OrderStatusPaid, TotalAmount: 500}))
	got, err := rc.GetOrder(ctx, "MD1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
	assert.Equal(t, int64(500), got.TotalAmount)

	ttl := rc.client.TTL(ctx, orderKey("MD1")).Val()
	assert.True(t, ttl > 0 && ttl <= time.Minute, "ttl=%s", ttl)

	require.NoError(t, rc.InvalidateOrder(ctx, "MD1"))
	got, err = rc.GetOrder(ctx, "MD1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// битая запись превращается в промах
	require.NoError(t, rc.client.HSet(ctx, orderKey("MD2"), "v", 1, "d", "{oops").Err())
	got, err = rc.GetOrder(ctx, "MD2")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, int64(0), rc.client.Exists(ctx, orderKey("MD2")).Val())
}

func TestRedisClient_OrderCacheKeepsNewerVersion(t *testing.T) {
	rc := setupRedis(t)
	ctx := context.Background()

	readAt := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	stale := &models.Order{ID: 7, OrderNumber: "MD7", Status: models.OrderStatusPending, UpdatedAt: readAt}
	fresh := &models.Order{ID: 7, OrderNumber: "MD7", Status: models.OrderStatusPaid, UpdatedAt: readAt.Add(time.Second)}

	// обновление статуса успело записать кэш раньше, чем читатель, прочитавший старую строку
	require.NoError(t, rc.SetOrder(ctx, fresh))
	require.NoError(t, rc.SetOrder(ctx, stale))

	got, err := rc.GetOrder(ctx, "MD7")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.OrderStatusPaid, got.Status)

	// более новая версия перезаписывает
	done := &models.Order{ID: 7, OrderNumber: "MD7", Status: models.OrderStatusCompleted, UpdatedAt: readAt.Add(time.Minute)}
	require.NoError(t, rc.SetOrder(ctx, done))
	got, err = rc.GetOrder(ctx, "MD7")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)
}

func TestRedisClient_CartStore(t *testing.T) {
	rc := setupRedis(t)
	ctx := context.Background()

	empty, err := rc.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	c := cart.New()
	c.AddItem(cart.Item{ProductID: 1, ProductName: "100 Diamantes", ProductPrice: 500, GameName: "Free Fire"})
	c.AddItem(cart.Item{ProductID: 1})
	require.NoError(t, rc.Save(ctx, "s1", c))

	// TTL продлевается при чтении
	require.NoError(t, rc.client.Expire(ctx, cartKey("s1"), time.Minute).Err())
	loaded, err := rc.Load(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, int32(2), loaded.Items[0].Quantity)
	assert.Equal(t, int64(1000), loaded.TotalAmount())
	assert.Greater(t, rc.client.TTL(ctx, cartKey("s1")).Val(), 50*time.Minute)

	// пустая корзина удаляет ключ
	loaded.Clear()
	require.NoError(t, rc.Save(ctx, "s1", loaded))
	assert.Equal(t, int64(0), rc.client.Exists(ctx, cartKey("s1")).Val())

	require.NoError(t, rc.client.Set(ctx, cartKey("s2"), "not json", time.Minute).Err())
	broken, err := rc.Load(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, broken.IsEmpty())

	require.NoError(t, rc.Delete(ctx, "s2"))
}
