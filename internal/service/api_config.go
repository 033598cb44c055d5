package service

import (
	"context"
	"strings"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"

	"go.uber.org/zap"
)

type UpdateWhatsAppInput struct {
	AccountID     *string
	PhoneNumberID *string
	AccessToken   *string
	IsActive      *bool
}

type ApiConfigService interface {
	List(ctx context.Context) ([]models.ApiConfiguration, error)
	GetByProvider(ctx context.Context, provider string) (*models.ApiConfiguration, error)
	UpdateWhatsApp(ctx context.Context, in UpdateWhatsAppInput) (*models.ApiConfiguration, error)
}

type apiConfigService struct {
	configs repository.ApiConfigRepo
	log     *zap.Logger
}

func NewApiConfigService(repo *repository.Repository, log *zap.Logger) ApiConfigService {
	return &apiConfigService{configs: repo.ApiConfigs, log: log}
}

func (s *apiConfigService) List(ctx context.Context) ([]models.ApiConfiguration, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.configs.List(ctx)
}

func (s *apiConfigService) GetByProvider(ctx context.Context, provider string) (*models.ApiConfiguration, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return nil, newFieldError("provider", "required", "is required")
	}
	c, err := s.configs.GetByProvider(ctx, provider)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrProviderNotFound
	}
	return c, nil
}

// UpdateWhatsApp перезаписывает только переданные поля, остальные берутся из текущей записи
func (s *apiConfigService) UpdateWhatsApp(ctx context.Context, in UpdateWhatsAppInput) (*models.ApiConfiguration, error) {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := s.configs.GetByProvider(ctx, models.ProviderWhatsApp)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		cur = &models.ApiConfiguration{Provider: models.ProviderWhatsApp}
	}
	if in.AccountID != nil {
		cur.AccountID = trimOptional(in.AccountID)
	}
	if in.PhoneNumberID != nil {
		cur.PhoneNumberID = trimOptional(in.PhoneNumberID)
	}
	if in.AccessToken != nil {
		cur.AccessToken = trimOptional(in.AccessToken)
	}
	if in.IsActive != nil {
		cur.IsActive = *in.IsActive
	}

	if cur.IsActive && (cur.PhoneNumberID == nil || cur.AccessToken == nil) {
		return nil, &ValidationError{Fields: []FieldViolation{
			{Field: "phoneNumberId", Message: "required to activate whatsapp", Tag: "required_if"},
			{Field: "accessToken", Message: "required to activate whatsapp", Tag: "required_if"},
		}}
	}

	if err := s.configs.Upsert(ctx, cur); err != nil {
		return nil, err
	}
	s.log.Info("whatsapp configuration updated", zap.Bool("active", cur.IsActive), zap.String("admin_id", adminID.String()))

	return s.configs.GetByProvider(ctx, models.ProviderWhatsApp)
}
