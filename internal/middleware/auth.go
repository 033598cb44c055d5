package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront-service/internal/dto"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Ключи gin-контекста
const (
	CtxUserID    = "user_id"
	CtxUserRole  = "user_role"
	CtxSessionID = "session_id"
)

const SessionHeader = "X-Session-ID"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*service.Claims, error)
}

// AuthRequired проверяет Bearer-токен и кладёт userID/role и в gin-контекст, и в context запроса,
// откуда их читают сервисы.
func AuthRequired(auth Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing Authorization header"))
			return
		}
		token, ok := ExtractBearerToken(authz)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid Authorization header"))
			return
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("empty token"))
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
			return
		}

		attachClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth: для публичных маршрутов: валидный токен привязывает пользователя, невалидный игнорируется
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := ExtractBearerToken(c.GetHeader("Authorization")); ok && token != "" {
			if claims, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				attachClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireAdmin отсекает не-админов до хендлера; сервисы всё равно проверяют роль сами
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if role, _ := c.Get(CtxUserRole); role != service.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("admin access required"))
			return
		}
		c.Next()
	}
}

// RequireSession требует X-Session-ID для корзины
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sid == "" || len(sid) > 128 {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewValidationError("missing or invalid session id",
				[]dto.FieldError{{Field: SessionHeader, Message: "is required", Tag: "required"}}))
			return
		}
		c.Set(CtxSessionID, sid)
		c.Next()
	}
}

func attachClaims(c *gin.Context, claims *service.Claims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxUserRole, claims.Role)
	ctx := service.WithUserID(c.Request.Context(), claims.UserID)
	ctx = service.WithRole(ctx, claims.Role)
	c.Request = c.Request.WithContext(ctx)
}

// ExtractBearerToken извлекает токен из заголовка Authorization, устойчиво к лишним символам
// Примеры допустимых значений:
// - "Bearer abc.def.ghi"
// - "Bearer \"abc.def.ghi\""
// - "Bearer abc.def.ghi, extra"
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	// всё после первой запятой или пробела отбрасываем
	if i := strings.IndexAny(t, ", "); i >= 0 {
		t = t[:i]
	}
	return strings.Trim(t, " \"'"), true
}
