package sender

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticConfigs struct {
	cfg *models.ApiConfiguration
}

func (s staticConfigs) GetByProvider(context.Context, string) (*models.ApiConfiguration, error) {
	return s.cfg, nil
}

func strPtr(s string) *string { return &s }

func TestWhatsAppSenderPostsMessage(t *testing.T) {
	var got waMessage
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	s := NewWhatsAppSender(staticConfigs{cfg: &models.ApiConfiguration{
		Provider:      models.ProviderWhatsApp,
		PhoneNumberID: strPtr("12345"),
		AccessToken:   strPtr("tok"),
		IsActive:      true,
	}}, srv.URL+"/", "244900000000", zap.NewNop())

	err := s.SendOwnerAlert(context.Background(), service.OwnerAlert{Title: "Novo Pedido: MD1", Content: "Cliente: Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, "/12345/messages", path)
	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "244900000000", got.To)
	assert.Contains(t, got.Text.Body, "Novo Pedido: MD1")
}

func TestWhatsAppSenderInactive(t *testing.T) {
	s := NewWhatsAppSender(staticConfigs{cfg: &models.ApiConfiguration{IsActive: false}}, "http://unused", "244", zap.NewNop())
	err := s.SendOwnerAlert(context.Background(), service.OwnerAlert{Title: "x"})
	assert.ErrorIs(t, err, ErrWhatsAppInactive)

	s = NewWhatsAppSender(staticConfigs{}, "http://unused", "244", zap.NewNop())
	assert.ErrorIs(t, s.SendOwnerAlert(context.Background(), service.OwnerAlert{}), ErrWhatsAppInactive)
}

func TestWhatsAppSenderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewWhatsAppSender(staticConfigs{cfg: &models.ApiConfiguration{
		PhoneNumberID: strPtr("1"), AccessToken: strPtr("bad"), IsActive: true,
	}}, srv.URL, "244", zap.NewNop())
	err := s.SendOwnerAlert(context.Background(), service.OwnerAlert{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
