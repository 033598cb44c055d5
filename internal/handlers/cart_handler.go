package handlers

import (
	"net/http"

	"storefront-service/internal/dto"
	"storefront-service/internal/middleware"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	carts service.CartService
	log   *zap.Logger
}

func NewCartHandler(carts service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, log: log}
}

func sessionID(c *gin.Context) string { return c.GetString(middleware.CtxSessionID) }

// Get godoc
// @Summary Корзина текущей сессии
// @Tags cart
// @Produce json
// @Param X-Session-ID header string true "ID сессии"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Нет ID сессии"
// @Failure 503 {object} dto.UnavailableErrorResponse "Хранилище корзин недоступно"
// @Router /api/v1/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	ct, err := h.carts.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		writeErr(c, h.log, "get cart", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(ct))
}

// AddItem godoc
// @Summary Добавить товар в корзину
// @Description Повторное добавление того же товара увеличивает количество на 1
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "ID сессии"
// @Param item body dto.AddCartItemRequest true "Товар"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Router /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	ct, err := h.carts.AddItem(c.Request.Context(), sessionID(c), req.ToInput())
	if err != nil {
		writeErr(c, h.log, "add cart item", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(ct))
}

// UpdateQuantity godoc
// @Summary Изменить количество
// @Description Значения меньше 1 приводятся к 1, неизвестный товар игнорируется
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "ID сессии"
// @Param productId path int true "ID товара"
// @Param body body dto.UpdateCartItemRequest true "Количество"
// @Success 200 {object} dto.CartResponse
// @Router /api/v1/cart/items/{productId} [patch]
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	id, ok := parseID(c, "productId")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	ct, err := h.carts.UpdateQuantity(c.Request.Context(), sessionID(c), id, req.Quantity)
	if err != nil {
		writeErr(c, h.log, "update cart item", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(ct))
}

// RemoveItem godoc
// @Summary Удалить товар из корзины
// @Tags cart
// @Produce json
// @Param X-Session-ID header string true "ID сессии"
// @Param productId path int true "ID товара"
// @Success 200 {object} dto.CartResponse
// @Router /api/v1/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := parseID(c, "productId")
	if !ok {
		return
	}
	ct, err := h.carts.RemoveItem(c.Request.Context(), sessionID(c), id)
	if err != nil {
		writeErr(c, h.log, "remove cart item", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCartResponse(ct))
}

// Clear godoc
// @Summary Очистить корзину
// @Tags cart
// @Param X-Session-ID header string true "ID сессии"
// @Success 204
// @Router /api/v1/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), sessionID(c)); err != nil {
		writeErr(c, h.log, "clear cart", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout godoc
// @Summary Оформить корзину
// @Description Создаёт по заказу на каждую строку корзины и очищает её
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Session-ID header string true "ID сессии"
// @Param body body dto.CheckoutRequest true "Данные покупателя"
// @Success 201 {object} dto.CheckoutResponse
// @Success 207 {object} dto.PartialCheckoutResponse "Оформлена только часть строк; остальные остались в корзине"
// @Failure 400 {object} dto.ValidationErrorResponse "Пустая корзина или неверные данные"
// @Router /api/v1/cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.carts.Checkout(c.Request.Context(), sessionID(c), req.ToInput())
	if err != nil && res != nil && len(res.OrderNumbers) > 0 {
		// часть заказов уже создана: клиент должен получить их номера для отслеживания
		h.log.Warn("partial checkout", zap.Strings("order_numbers", res.OrderNumbers), zap.Error(err))
		_, body := toHTTPErr(err)
		c.JSON(http.StatusMultiStatus, dto.PartialCheckoutResponse{
			OrderNumbers: res.OrderNumbers,
			TotalAmount:  res.TotalAmount,
			Error:        baseErrorOf(body),
		})
		return
	}
	if err != nil {
		writeErr(c, h.log, "checkout", err)
		return
	}
	c.JSON(http.StatusCreated, dto.CheckoutResponse{OrderNumbers: res.OrderNumbers, TotalAmount: res.TotalAmount})
}
