package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"storefront-service/internal/dto"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// toHTTPErr переводит ошибку сервиса в HTTP-статус и тело ответа
func toHTTPErr(err error) (int, any) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]dto.FieldError, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = dto.FieldError{Field: f.Field, Message: f.Message, Tag: f.Tag}
		}
		return http.StatusBadRequest, dto.NewValidationError("validation failed", fields)
	case errors.Is(err, service.ErrEmptyCart):
		return http.StatusBadRequest, dto.NewValidationError(err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewUnauthorizedError("invalid email or password")
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, dto.NewUnauthorizedError("unauthorized")
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, dto.NewForbiddenError("forbidden")
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrProviderNotFound):
		return http.StatusNotFound, dto.NewNotFoundError(err.Error())
	case errors.Is(err, service.ErrCartStoreUnavailable):
		return http.StatusServiceUnavailable, dto.NewUnavailableError(err.Error())
	default:
		return http.StatusInternalServerError, dto.NewInternalError("")
	}
}

// baseErrorOf снимает swagger-обёртку с тела ошибки
func baseErrorOf(body any) dto.BaseError {
	switch b := body.(type) {
	case dto.ValidationErrorResponse:
		return dto.BaseError(b)
	case dto.UnauthorizedErrorResponse:
		return dto.BaseError(b)
	case dto.ForbiddenErrorResponse:
		return dto.BaseError(b)
	case dto.NotFoundErrorResponse:
		return dto.BaseError(b)
	case dto.UnavailableErrorResponse:
		return dto.BaseError(b)
	case dto.InternalErrorResponse:
		return dto.BaseError(b)
	default:
		return dto.BaseError(dto.NewInternalError(""))
	}
}

func writeErr(c *gin.Context, log *zap.Logger, op string, err error) {
	status, body := toHTTPErr(err)
	if status >= http.StatusInternalServerError {
		log.Error(op+" failed", zap.Error(err))
	} else {
		log.Debug(op+" rejected", zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, body)
}

// bindJSON разбирает тело запроса; пустое тело считается пустым объектом
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		msg := "invalid request body"
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			c.JSON(http.StatusBadRequest, dto.NewValidationError(msg, []dto.FieldError{
				{Field: typeErr.Field, Message: "has wrong type, expected " + typeErr.Type.String(), Tag: "type"},
			}))
			return false
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationError(msg, nil))
		return false
	}
	return true
}
