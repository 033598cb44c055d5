package service_test

import (
	"context"
	"sync"
	"time"

	"storefront-service/internal/cart"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"

	"github.com/google/uuid"
)

// Моки зависимостей сервисов

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc           func(ctx context.Context, o *models.Order) error
	GetByIDFunc          func(ctx context.Context, id int64) (*models.Order, error)
	GetByNumberFunc      func(ctx context.Context, number string) (*models.Order, error)
	ExistsByNumberFunc   func(ctx context.Context, number string) (bool, error)
	UpdateStatusFunc     func(ctx context.Context, id int64, status models.OrderStatus, adminNotes *string) error
	ListFunc             func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	StatsFunc            func(ctx context.Context) (repository.OrderStats, error)
	ListStalePendingFunc func(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Order, error)
	MarkRemindedFunc     func(ctx context.Context, ids []int64, at time.Time) error

	// WithTx по умолчанию вызывает fn с этим же репо и TxNotifications
	TxNotifications repository.NotificationRepo
	WithTxFunc      func(ctx context.Context, fn func(repository.OrderRepo, repository.NotificationRepo) error) error
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *MockOrderRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if m.ExistsByNumberFunc != nil {
		return m.ExistsByNumberFunc(ctx, number)
	}
	return false, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus, adminNotes *string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, adminNotes)
	}
	return nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) Stats(ctx context.Context) (repository.OrderStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return repository.OrderStats{}, nil
}

func (m *MockOrderRepo) ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Order, error) {
	if m.ListStalePendingFunc != nil {
		return m.ListStalePendingFunc(ctx, createdBefore, limit)
	}
	return nil, nil
}

func (m *MockOrderRepo) MarkReminded(ctx context.Context, ids []int64, at time.Time) error {
	if m.MarkRemindedFunc != nil {
		return m.MarkRemindedFunc(ctx, ids, at)
	}
	return nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(repository.OrderRepo, repository.NotificationRepo) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(m, m.TxNotifications)
}

// MockNotificationRepo хранит уведомления в памяти
type MockNotificationRepo struct {
	mu      sync.Mutex
	nextID  int64
	Items   []models.Notification
	Reads   []int64
	FailErr error
}

func (m *MockNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailErr != nil {
		return m.FailErr
	}
	m.nextID++
	n.ID = m.nextID
	m.Items = append(m.Items, *n)
	return nil
}

func (m *MockNotificationRepo) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Items {
		if m.Items[i].ID == id {
			n := m.Items[i]
			return &n, nil
		}
	}
	return nil, nil
}

func (m *MockNotificationRepo) ListByOrderID(_ context.Context, orderID int64) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for i := len(m.Items) - 1; i >= 0; i-- {
		if m.Items[i].OrderID == orderID {
			out = append(out, m.Items[i])
		}
	}
	return out, nil
}

func (m *MockNotificationRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for i := len(m.Items) - 1; i >= 0; i-- {
		if n := m.Items[i]; n.UserID != nil && *n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *MockNotificationRepo) MarkAsRead(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads = append(m.Reads, id)
	for i := range m.Items {
		if m.Items[i].ID == id {
			m.Items[i].IsRead = true
		}
	}
	return nil
}

// MockApiConfigRepo
type MockApiConfigRepo struct {
	Configs   map[string]models.ApiConfiguration
	Upserts   int
	UpsertErr error
}

func (m *MockApiConfigRepo) List(context.Context) ([]models.ApiConfiguration, error) {
	out := make([]models.ApiConfiguration, 0, len(m.Configs))
	for _, c := range m.Configs {
		out = append(out, c)
	}
	return out, nil
}

func (m *MockApiConfigRepo) GetByProvider(_ context.Context, provider string) (*models.ApiConfiguration, error) {
	c, ok := m.Configs[provider]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *MockApiConfigRepo) Upsert(_ context.Context, c *models.ApiConfiguration) error {
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	if m.Configs == nil {
		m.Configs = map[string]models.ApiConfiguration{}
	}
	m.Upserts++
	m.Configs[c.Provider] = *c
	return nil
}

// MockUserRepo
type MockUserRepo struct {
	CreateFunc            func(ctx context.Context, u *models.User) error
	GetByEmailFunc        func(ctx context.Context, email string) (*models.User, error)
	ExistsByEmailFunc     func(ctx context.Context, email string) (bool, error)
	TouchLastSignedInFunc func(ctx context.Context, id uuid.UUID, at time.Time) error
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *MockUserRepo) TouchLastSignedIn(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.TouchLastSignedInFunc != nil {
		return m.TouchLastSignedInFunc(ctx, id, at)
	}
	return nil
}

// MockChannel: канал владельца, запоминает алерты
type MockChannel struct {
	NameValue string
	Err       error
	Alerts    []service.OwnerAlert
}

func (m *MockChannel) Name() string { return m.NameValue }

func (m *MockChannel) SendOwnerAlert(_ context.Context, a service.OwnerAlert) error {
	m.Alerts = append(m.Alerts, a)
	return m.Err
}

// MockEventBus
type MockEventBus struct {
	Created []service.OrderCreatedEvent
	Changed []service.OrderStatusChangedEvent
	Err     error
}

func (m *MockEventBus) PublishOrderCreated(_ context.Context, e service.OrderCreatedEvent) error {
	m.Created = append(m.Created, e)
	return m.Err
}

func (m *MockEventBus) PublishOrderStatusChanged(_ context.Context, e service.OrderStatusChangedEvent) error {
	m.Changed = append(m.Changed, e)
	return m.Err
}

// MockCache: кэш заказов в памяти, версия записи = UpdatedAt
type MockCache struct {
	Orders      map[string]models.Order
	Invalidated []string
	GetErr      error
	SetErr      error
}

func (m *MockCache) GetOrder(_ context.Context, number string) (*models.Order, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	o, ok := m.Orders[number]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *MockCache) SetOrder(_ context.Context, o *models.Order) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.Orders == nil {
		m.Orders = map[string]models.Order{}
	}
	if cur, ok := m.Orders[o.OrderNumber]; ok && cur.UpdatedAt.After(o.UpdatedAt) {
		return nil
	}
	m.Orders[o.OrderNumber] = *o
	return nil
}

func (m *MockCache) InvalidateOrder(_ context.Context, number string) error {
	m.Invalidated = append(m.Invalidated, number)
	delete(m.Orders, number)
	return nil
}

// MockMetrics
type MockMetrics struct {
	Created []string
	Changed []string
	Alerts  map[string]int
}

func (m *MockMetrics) OrderCreated(pm string) { m.Created = append(m.Created, pm) }
func (m *MockMetrics) OrderStatusChanged(to string) { m.Changed = append(m.Changed, to) }
func (m *MockMetrics) OwnerAlert(channel string, ok bool) {
	if m.Alerts == nil {
		m.Alerts = map[string]int{}
	}
	key := channel + ":ok"
	if !ok {
		key = channel + ":error"
	}
	m.Alerts[key]++
}

// MockCartStore: корзины в памяти
type MockCartStore struct {
	Carts   map[string]*cart.Cart
	Deleted []string
	LoadErr error
}

func (m *MockCartStore) Load(_ context.Context, sid string) (*cart.Cart, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	c, ok := m.Carts[sid]
	if !ok {
		return cart.New(), nil
	}
	cp := &cart.Cart{Items: append([]cart.Item(nil), c.Items...)}
	return cp, nil
}

func (m *MockCartStore) Save(_ context.Context, sid string, c *cart.Cart) error {
	if m.Carts == nil {
		m.Carts = map[string]*cart.Cart{}
	}
	m.Carts[sid] = &cart.Cart{Items: append([]cart.Item(nil), c.Items...)}
	return nil
}

func (m *MockCartStore) Delete(_ context.Context, sid string) error {
	m.Deleted = append(m.Deleted, sid)
	delete(m.Carts, sid)
	return nil
}

// MockHasher сравнивает "hash:"+password
type MockHasher struct{}

func (MockHasher) Hash(p string) (string, error) { return "hash:" + p, nil }
func (MockHasher) Compare(h, p string) bool { return h == "hash:"+p }

// MockTokens
type MockTokens struct {
	SignAccessFunc func(ctx context.Context, sub uuid.UUID, role service.Role, ttl time.Duration) (string, time.Time, error)
	ParseFunc      func(ctx context.Context, token string) (*service.Claims, error)
}

func (m *MockTokens) SignAccess(ctx context.Context, sub uuid.UUID, role service.Role, ttl time.Duration) (string, time.Time, error) {
	if m.SignAccessFunc != nil {
		return m.SignAccessFunc(ctx, sub, role, ttl)
	}
	return "token-" + sub.String(), time.Now().Add(ttl), nil
}

func (m *MockTokens) ParseAndValidateAccess(ctx context.Context, token string) (*service.Claims, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(ctx, token)
	}
	return nil, nil
}

func adminCtx() context.Context {
	ctx := service.WithUserID(context.Background(), uuid.New())
	return service.WithRole(ctx, service.RoleAdmin)
}

func userCtx() context.Context {
	ctx := service.WithUserID(context.Background(), uuid.New())
	return service.WithRole(ctx, service.RoleUser)
}

func strPtr(s string) *string { return &s }
