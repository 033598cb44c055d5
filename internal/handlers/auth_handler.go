package handlers

import (
	"context"
	"net/http"
	"time"

	"storefront-service/internal/dto"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginService interface {
	Login(ctx context.Context, in service.LoginInput) (*service.Session, error)
}

type AuthHandler struct {
	auth loginService
	log  *zap.Logger
}

func NewAuthHandler(auth loginService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Login godoc
// @Summary Вход администратора
// @Description Выдаёт access-токен HS256
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Данные авторизации"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Неверный email или пароль"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.auth.Login(c.Request.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		writeErr(c, h.log, "login", err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{
		UserID:          sess.UserID.String(),
		Role:            string(sess.Role),
		AccessToken:     sess.Token,
		AccessExpiresIn: int64(time.Until(sess.ExpiresAt).Seconds()),
	})
}
