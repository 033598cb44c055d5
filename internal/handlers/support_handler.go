package handlers

import (
	"net/http"

	"storefront-service/internal/dto"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SupportHandler struct {
	support service.SupportService
	log     *zap.Logger
}

func NewSupportHandler(support service.SupportService, log *zap.Logger) *SupportHandler {
	return &SupportHandler{support: support, log: log}
}

// SendMessage godoc
// @Summary Сообщение в поддержку
// @Description Пересылает сообщение владельцу магазина. Сбой доставки не влияет на ответ
// @Tags support
// @Accept json
// @Produce json
// @Param body body dto.SupportMessageRequest true "Сообщение"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Router /api/v1/support/messages [post]
func (h *SupportHandler) SendMessage(c *gin.Context) {
	var req dto.SupportMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	ok, err := h.support.SendMessage(c.Request.Context(), service.SupportMessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		writeErr(c, h.log, "support message", err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: ok})
}
