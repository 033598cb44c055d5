package dto

import (
	"time"

	"storefront-service/internal/models"
)

type ApiConfigResponse struct {
	ID            int64     `json:"id"`
	Provider      string    `json:"provider"`
	AccountID     *string   `json:"accountId,omitempty"`
	PhoneNumberID *string   `json:"phoneNumberId,omitempty"`
	AccessToken   *string   `json:"accessToken,omitempty"`
	APIKey        *string   `json:"apiKey,omitempty"`
	APISecret     *string   `json:"apiSecret,omitempty"`
	WebhookURL    *string   `json:"webhookUrl,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewApiConfigResponse маскирует секреты: наружу уходят только последние 4 символа
func NewApiConfigResponse(c *models.ApiConfiguration) ApiConfigResponse {
	return ApiConfigResponse{
		ID:            c.ID,
		Provider:      c.Provider,
		AccountID:     c.AccountID,
		PhoneNumberID: c.PhoneNumberID,
		AccessToken:   maskSecret(c.AccessToken),
		APIKey:        maskSecret(c.APIKey),
		APISecret:     maskSecret(c.APISecret),
		WebhookURL:    c.WebhookURL,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func maskSecret(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	masked := "****"
	if len(v) > 8 {
		masked += v[len(v)-4:]
	}
	return &masked
}

type UpdateWhatsAppRequest struct {
	AccountID     *string `json:"accountId"`
	PhoneNumberID *string `json:"phoneNumberId"`
	AccessToken   *string `json:"accessToken"`
	IsActive      *bool   `json:"isActive"`
}
