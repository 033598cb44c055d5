package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type RedisClient struct {
	client   *redis.Client
	orderTTL time.Duration
	cartTTL  time.Duration
	log      *zap.Logger
}

func NewRedisClient(addr, password string, db int, orderTTL, cartTTL time.Duration, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis connected successfully", zap.String("addr", addr))

	return NewFromClient(rdb, orderTTL, cartTTL, log), nil
}

// NewFromClient оборачивает готовый клиент (тесты, общий пул)
func NewFromClient(rdb *redis.Client, orderTTL, cartTTL time.Duration, log *zap.Logger) *RedisClient {
	return &RedisClient{client: rdb, orderTTL: orderTTL, cartTTL: cartTTL, log: log}
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func orderKey(number string) string { return fmt.Sprintf("order:number:%s", number) }

func cartKey(sessionID string) string { return fmt.Sprintf("cart:%s", sessionID) }

// setOrderScript пишет запись, только если в кэше нет более свежей версии (updated_at в мкс).
// Так запоздавшее заполнение после промаха не затирает статус, записанный при обновлении.
var setOrderScript = redis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'v')
if cur and tonumber(cur) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'd', ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

// Кэш заказов по номеру. Промах: (nil, nil).
func (r *RedisClient) GetOrder(ctx context.Context, number string) (*models.Order, error) {
	raw, err := r.client.HGet(ctx, orderKey(number), "d").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var o models.Order
	if err := json.Unmarshal(raw, &o); err != nil {
		// битую запись просто выбрасываем
		_ = r.client.Del(ctx, orderKey(number)).Err()
		return nil, nil
	}
	return &o, nil
}

// SetOrder не понижает версию: копия со старым UpdatedAt молча отбрасывается
func (r *RedisClient) SetOrder(ctx context.Context, o *models.Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return err
	}
	return setOrderScript.Run(ctx, r.client, []string{orderKey(o.OrderNumber)},
		o.UpdatedAt.UnixMicro(), data, r.orderTTL.Milliseconds()).Err()
}

func (r *RedisClient) InvalidateOrder(ctx context.Context, number string) error {
	return r.client.Del(ctx, orderKey(number)).Err()
}

// Корзины сессий, TTL продлевается при каждом чтении и записи
func (r *RedisClient) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	raw, err := r.client.GetEx(ctx, cartKey(sessionID), r.cartTTL).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, err
	}
	c := cart.New()
	if err := json.Unmarshal(raw, c); err != nil {
		r.log.Warn("corrupted cart dropped", zap.String("session_id", sessionID), zap.Error(err))
		return cart.New(), nil
	}
	c.Normalize()
	return c, nil
}

func (r *RedisClient) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	if c.IsEmpty() {
		return r.Delete(ctx, sessionID)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKey(sessionID), data, r.cartTTL).Err()
}

func (r *RedisClient) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, cartKey(sessionID)).Err()
}
