package handlers

import (
	"net/http"

	"storefront-service/internal/dto"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ApiConfigHandler struct {
	configs service.ApiConfigService
	log     *zap.Logger
}

func NewApiConfigHandler(configs service.ApiConfigService, log *zap.Logger) *ApiConfigHandler {
	return &ApiConfigHandler{configs: configs, log: log}
}

// GetAll godoc
// @Summary Конфигурации внешних API (админ)
// @Description Секреты маскируются
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ApiConfigResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет прав"
// @Router /api/v1/admin/api-config [get]
func (h *ApiConfigHandler) GetAll(c *gin.Context) {
	list, err := h.configs.List(c.Request.Context())
	if err != nil {
		writeErr(c, h.log, "list api configs", err)
		return
	}
	out := make([]dto.ApiConfigResponse, len(list))
	for i := range list {
		out[i] = dto.NewApiConfigResponse(&list[i])
	}
	c.JSON(http.StatusOK, out)
}

// GetByProvider godoc
// @Summary Конфигурация провайдера (админ)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param provider path string true "Провайдер, например whatsapp"
// @Success 200 {object} dto.ApiConfigResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Не настроено"
// @Router /api/v1/admin/api-config/{provider} [get]
func (h *ApiConfigHandler) GetByProvider(c *gin.Context) {
	cfg, err := h.configs.GetByProvider(c.Request.Context(), c.Param("provider"))
	if err != nil {
		writeErr(c, h.log, "get api config", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewApiConfigResponse(cfg))
}

// UpdateWhatsApp godoc
// @Summary Обновить настройки WhatsApp (админ)
// @Description Upsert: переданные поля перезаписываются, остальные сохраняются
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateWhatsAppRequest true "Настройки"
// @Success 200 {object} dto.ApiConfigResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неполные данные для активации"
// @Router /api/v1/admin/api-config/whatsapp [put]
func (h *ApiConfigHandler) UpdateWhatsApp(c *gin.Context) {
	var req dto.UpdateWhatsAppRequest
	if !bindJSON(c, &req) {
		return
	}
	cfg, err := h.configs.UpdateWhatsApp(c.Request.Context(), service.UpdateWhatsAppInput{
		AccountID:     req.AccountID,
		PhoneNumberID: req.PhoneNumberID,
		AccessToken:   req.AccessToken,
		IsActive:      req.IsActive,
	})
	if err != nil {
		writeErr(c, h.log, "update whatsapp config", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewApiConfigResponse(cfg))
}
