package handlers

import (
	"net/http"
	"strconv"

	"storefront-service/internal/dto"
	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders        service.OrderService
	tracking      service.TrackingService
	notifications service.NotificationService
	log           *zap.Logger
}

func NewOrderHandler(orders service.OrderService, tracking service.TrackingService, notifications service.NotificationService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, tracking: tracking, notifications: notifications, log: log}
}

// Create godoc
// @Summary Создание заказа
// @Description Создаёт заказ в статусе pending и уведомляет владельца магазина
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Данные заказа"
// @Success 201 {object} dto.CreateOrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	ord, err := h.orders.CreateOrder(c.Request.Context(), req.ToInput())
	if err != nil {
		writeErr(c, h.log, "create order", err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateOrderResponse{OrderNumber: ord.OrderNumber})
}

// GetByNumber godoc
// @Summary Отслеживание заказа
// @Description Ищет заказ по точному номеру и возвращает его с чек-листом прогресса
// @Tags orders
// @Produce json
// @Param orderNumber path string true "Номер заказа"
// @Success 200 {object} dto.TrackingResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Заказ не найден"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/v1/orders/{orderNumber} [get]
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	ord, err := h.tracking.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		writeErr(c, h.log, "get order by number", err)
		return
	}
	if ord == nil {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("order not found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewTrackingResponse(ord))
}

// Notifications godoc
// @Summary История уведомлений заказа
// @Description Возвращает уведомления заказа, новые первыми
// @Tags notifications
// @Produce json
// @Param orderId path int true "ID заказа"
// @Success 200 {array} dto.NotificationResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверный ID"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/v1/orders/id/{orderId}/notifications [get]
func (h *OrderHandler) Notifications(c *gin.Context) {
	// публичный путь: несуществующий или неположительный id даёт пустой список, а не 404
	id, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid id", []dto.FieldError{
			{Field: "orderId", Message: "must be an integer", Tag: "numeric"},
		}))
		return
	}
	list, err := h.tracking.NotificationHistory(c.Request.Context(), id)
	if err != nil {
		writeErr(c, h.log, "notification history", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNotificationsResponse(list))
}

// MarkAsRead godoc
// @Summary Отметить уведомление прочитанным
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID уведомления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет авторизации"
// @Failure 404 {object} dto.NotFoundErrorResponse "Уведомление не найдено"
// @Router /api/v1/notifications/{id}/read [post]
func (h *OrderHandler) MarkAsRead(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.MarkAsRead(c.Request.Context(), id); err != nil {
		writeErr(c, h.log, "mark notification read", err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// List godoc
// @Summary Список заказов (админ)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверный фильтр"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет прав"
// @Router /api/v1/admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	f := service.ListFilter{
		Limit:  atoiQuery(c, "limit", 20),
		Offset: atoiQuery(c, "offset", 0),
	}
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		f.Status = &st
	}
	orders, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeErr(c, h.log, "list orders", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListOrdersResponse(orders, total, f.Normalized()))
}

// Get godoc
// @Summary Заказ по ID (админ)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param orderId path int true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет прав"
// @Failure 404 {object} dto.NotFoundErrorResponse "Заказ не найден"
// @Router /api/v1/admin/orders/{orderId} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "orderId")
	if !ok {
		return
	}
	ord, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeErr(c, h.log, "get order", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(ord))
}

// MyOrders godoc
// @Summary Мои заказы
// @Description Заказы, созданные под текущим пользователем, новые первыми
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет авторизации"
// @Router /api/v1/orders/me [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	f := service.ListFilter{
		Limit:  atoiQuery(c, "limit", 20),
		Offset: atoiQuery(c, "offset", 0),
	}
	orders, total, err := h.orders.ListMyOrders(c.Request.Context(), f)
	if err != nil {
		writeErr(c, h.log, "list my orders", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListOrdersResponse(orders, total, f.Normalized()))
}

// MyNotifications godoc
// @Summary Мои уведомления
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.NotificationResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет авторизации"
// @Router /api/v1/notifications/me [get]
func (h *OrderHandler) MyNotifications(c *gin.Context) {
	list, err := h.notifications.ListMine(c.Request.Context())
	if err != nil {
		writeErr(c, h.log, "list my notifications", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewNotificationsResponse(list))
}

// UpdateStatus godoc
// @Summary Смена статуса заказа (админ)
// @Description Любой статус можно выставить из любого; adminNotes перезаписываются, только если переданы
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param orderId path int true "ID заказа"
// @Param body body dto.UpdateStatusRequest true "Новый статус"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверный статус"
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет прав"
// @Failure 404 {object} dto.NotFoundErrorResponse "Заказ не найден"
// @Router /api/v1/admin/orders/{orderId}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "orderId")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	ord, err := h.orders.UpdateStatus(c.Request.Context(), service.UpdateStatusInput{
		OrderID:    id,
		Status:     models.OrderStatus(req.Status),
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		writeErr(c, h.log, "update order status", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(ord))
}

// Stats godoc
// @Summary Статистика заказов (админ)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse "Нет прав"
// @Router /api/v1/admin/orders/stats [get]
func (h *OrderHandler) Stats(c *gin.Context) {
	st, err := h.orders.Stats(c.Request.Context())
	if err != nil {
		writeErr(c, h.log, "order stats", err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		TotalOrders:     st.TotalOrders,
		TotalRevenue:    st.TotalRevenue,
		PendingOrders:   st.PendingOrders,
		CompletedOrders: st.CompletedOrders,
	})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid id", []dto.FieldError{
			{Field: name, Message: "must be a positive integer", Tag: "gt"},
		}))
		return 0, false
	}
	return id, true
}

func atoiQuery(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}
