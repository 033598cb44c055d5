package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"go.uber.org/zap"
)

var ErrWhatsAppInactive = errors.New("whatsapp channel is not active")

type configSource interface {
	GetByProvider(ctx context.Context, provider string) (*models.ApiConfiguration, error)
}

// WhatsAppSender шлёт owner alert через WhatsApp Cloud API.
// Учётные данные читаются из api_configurations при каждой отправке, так что смена в админке применяется сразу.
type WhatsAppSender struct {
	configs configSource
	baseURL string
	to      string
	client  *http.Client
	log     *zap.Logger
}

func NewWhatsAppSender(configs configSource, baseURL, ownerNumber string, log *zap.Logger) *WhatsAppSender {
	return &WhatsAppSender{
		configs: configs,
		baseURL: strings.TrimRight(baseURL, "/"),
		to:      ownerNumber,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

func (s *WhatsAppSender) Name() string { return models.ProviderWhatsApp }

type waText struct {
	Body string `json:"body"`
}

type waMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             waText `json:"text"`
}

func (s *WhatsAppSender) SendOwnerAlert(ctx context.Context, a service.OwnerAlert) error {
	cfg, err := s.configs.GetByProvider(ctx, models.ProviderWhatsApp)
	if err != nil {
		return err
	}
	if cfg == nil || !cfg.IsActive || cfg.PhoneNumberID == nil || cfg.AccessToken == nil || s.to == "" {
		return ErrWhatsAppInactive
	}

	body, err := json.Marshal(waMessage{
		MessagingProduct: "whatsapp",
		To:               s.to,
		Type:             "text",
		Text:             waText{Body: "*" + a.Title + "*\n\n" + a.Content},
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/messages", s.baseURL, *cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+*cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("whatsapp api: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	s.log.Debug("whatsapp alert sent", zap.String("title", a.Title))
	return nil
}
