package repository

import (
	"context"
	"errors"
	"time"

	"storefront-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderListFilter struct {
	Status *models.OrderStatus
	UserID *uuid.UUID
	Limit  int
	Offset int
}

type OrderStats struct {
	TotalOrders     int64
	TotalRevenue    int64
	PendingOrders   int64
	CompletedOrders int64
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus, adminNotes *string) error
	List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error)
	Stats(ctx context.Context) (OrderStats, error)
	ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Order, error)
	MarkReminded(ctx context.Context, ids []int64, at time.Time) error

	WithTx(ctx context.Context, fn func(txOrders OrderRepo, txNotifications NotificationRepo) error) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

// GetByNumber: только точное совпадение, никаких LIKE/префиксов
func (r *orderRepo) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).Where("order_number = ?", number).Take(&ord).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("order_number = ?", number).Count(&cnt).Error
	return cnt > 0, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus, adminNotes *string) error {
	upd := map[string]any{"status": status}
	if adminNotes != nil {
		upd["admin_notes"] = *adminNotes
	}

	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(upd).Error
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}

	if f.Offset < 0 {
		f.Offset = 0
	}

	var list []*models.Order
	err := q.Order("created_at DESC").Order("id DESC").Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

func (r *orderRepo) Stats(ctx context.Context) (OrderStats, error) {
	type aggRow struct {
		TotalOrders     int64
		TotalRevenue    int64
		PendingOrders   int64
		CompletedOrders int64
	}

	var res aggRow
	err := r.db.WithContext(ctx).Model(&models.Order{}).Select(
		"COUNT(*) AS total_orders, " +
			"COALESCE(SUM(total_amount),0) AS total_revenue, " +
			"COUNT(*) FILTER (WHERE status = 'pending') AS pending_orders, " +
			"COUNT(*) FILTER (WHERE status = 'completed') AS completed_orders",
	).Scan(&res).Error

	return OrderStats(res), err
}

func (r *orderRepo) ListStalePending(ctx context.Context, createdBefore time.Time, limit int) ([]*models.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []*models.Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ? AND reminded_at IS NULL", models.OrderStatusPending, createdBefore).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *orderRepo) MarkReminded(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id IN ?", ids).Update("reminded_at", at).Error
}

func (r *orderRepo) WithTx(ctx context.Context, fn func(txOrders OrderRepo, txNotifications NotificationRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepo{db: tx}, &notificationRepo{db: tx})
	})
}
