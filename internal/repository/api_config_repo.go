package repository

import (
	"context"
	"errors"

	"storefront-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApiConfigRepo interface {
	List(ctx context.Context) ([]models.ApiConfiguration, error)
	GetByProvider(ctx context.Context, provider string) (*models.ApiConfiguration, error)
	Upsert(ctx context.Context, c *models.ApiConfiguration) error
}

type apiConfigRepo struct{ db *gorm.DB }

func NewApiConfigRepo(db *gorm.DB) ApiConfigRepo { return &apiConfigRepo{db: db} }

func (r *apiConfigRepo) List(ctx context.Context) ([]models.ApiConfiguration, error) {
	var rows []models.ApiConfiguration
	err := r.db.WithContext(ctx).Order("provider ASC").Find(&rows).Error
	return rows, err
}

func (r *apiConfigRepo) GetByProvider(ctx context.Context, provider string) (*models.ApiConfiguration, error) {
	var c models.ApiConfiguration
	err := r.db.WithContext(ctx).Where("provider = ?", provider).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

// Upsert по provider: при конфликте перезаписываем учётные данные и флаг активности
func (r *apiConfigRepo) Upsert(ctx context.Context, c *models.ApiConfiguration) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"account_id", "phone_number_id", "access_token", "api_key", "api_secret", "webhook_url", "is_active", "updated_at",
		}),
	}).Create(c).Error
}
