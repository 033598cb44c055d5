// Package docs holds the swagger description served at /swagger/*any.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Вход администратора",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "400": {"description": "Неверные данные", "schema": {"$ref": "#/definitions/dto.BaseError"}},
                    "401": {"description": "Неверный email или пароль", "schema": {"$ref": "#/definitions/dto.BaseError"}}
                }
            }
        },
        "/api/v1/orders": {
            "post": {
                "tags": ["orders"],
                "summary": "Создание заказа",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "order", "required": true, "schema": {"$ref": "#/definitions/dto.CreateOrderRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.CreateOrderResponse"}},
                    "400": {"description": "Неверные данные", "schema": {"$ref": "#/definitions/dto.BaseError"}}
                }
            }
        },
        "/api/v1/orders/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Мои заказы",
                "parameters": [
                    {"type": "integer", "in": "query", "name": "limit"},
                    {"type": "integer", "in": "query", "name": "offset"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Нет авторизации"}}
            }
        },
        "/api/v1/orders/{orderNumber}": {
            "get": {
                "tags": ["orders"],
                "summary": "Отслеживание заказа",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "in": "path", "name": "orderNumber", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Заказ не найден", "schema": {"$ref": "#/definitions/dto.BaseError"}}
                }
            }
        },
        "/api/v1/orders/id/{orderId}/notifications": {
            "get": {
                "tags": ["notifications"],
                "summary": "История уведомлений заказа",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "in": "path", "name": "orderId", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/notifications/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Мои уведомления",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Нет авторизации"}}
            }
        },
        "/api/v1/notifications/{id}/read": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Отметить уведомление прочитанным",
                "parameters": [{"type": "integer", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Нет авторизации"}, "404": {"description": "Не найдено"}}
            }
        },
        "/api/v1/admin/orders": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Список заказов",
                "parameters": [
                    {"type": "string", "in": "query", "name": "status"},
                    {"type": "integer", "in": "query", "name": "limit"},
                    {"type": "integer", "in": "query", "name": "offset"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Нет прав"}}
            }
        },
        "/api/v1/admin/orders/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Статистика заказов",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Нет прав"}}
            }
        },
        "/api/v1/admin/orders/{orderId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Заказ по идентификатору",
                "parameters": [{"type": "integer", "in": "path", "name": "orderId", "required": true}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Нет прав"}, "404": {"description": "Заказ не найден"}}
            }
        },
        "/api/v1/admin/orders/{orderId}/status": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Смена статуса заказа",
                "parameters": [
                    {"type": "integer", "in": "path", "name": "orderId", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Неверный статус"}, "404": {"description": "Заказ не найден"}}
            }
        },
        "/api/v1/admin/api-config": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Конфигурации внешних API",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/admin/api-config/{provider}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Конфигурация провайдера",
                "parameters": [{"type": "string", "in": "path", "name": "provider", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Не настроено"}}
            }
        },
        "/api/v1/admin/api-config/whatsapp": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["admin"],
                "summary": "Обновить настройки WhatsApp",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateWhatsAppRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Неполные данные"}}
            }
        },
        "/api/v1/support/messages": {
            "post": {
                "tags": ["support"],
                "summary": "Сообщение в поддержку",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SupportMessageRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Неверные данные"}}
            }
        },
        "/api/v1/cart": {
            "get": {
                "tags": ["cart"],
                "summary": "Корзина текущей сессии",
                "parameters": [{"type": "string", "in": "header", "name": "X-Session-ID", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["cart"],
                "summary": "Очистить корзину",
                "parameters": [{"type": "string", "in": "header", "name": "X-Session-ID", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/cart/items": {
            "post": {
                "tags": ["cart"],
                "summary": "Добавить товар в корзину",
                "parameters": [{"type": "string", "in": "header", "name": "X-Session-ID", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/cart/items/{productId}": {
            "patch": {
                "tags": ["cart"],
                "summary": "Изменить количество",
                "parameters": [{"type": "integer", "in": "path", "name": "productId", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["cart"],
                "summary": "Удалить товар из корзины",
                "parameters": [{"type": "integer", "in": "path", "name": "productId", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/cart/checkout": {
            "post": {
                "tags": ["cart"],
                "summary": "Оформить корзину",
                "parameters": [{"type": "string", "in": "header", "name": "X-Session-ID", "required": true}],
                "responses": {"201": {"description": "Created"}, "207": {"description": "Часть заказов создана"}, "400": {"description": "Пустая корзина"}}
            }
        }
    },
    "definitions": {
        "dto.BaseError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/dto.FieldError"}}
            }
        },
        "dto.FieldError": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "message": {"type": "string"}, "tag": {"type": "string"}}
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "role": {"type": "string"},
                "accessToken": {"type": "string"},
                "accessExpiresIn": {"type": "integer"}
            }
        },
        "dto.CreateOrderRequest": {
            "type": "object",
            "properties": {
                "customerName": {"type": "string"},
                "customerEmail": {"type": "string"},
                "customerPhone": {"type": "string"},
                "playerId": {"type": "string"},
                "playerNickname": {"type": "string"},
                "gameName": {"type": "string"},
                "productId": {"type": "integer"},
                "productName": {"type": "string"},
                "productPrice": {"type": "integer"},
                "quantity": {"type": "integer"},
                "totalAmount": {"type": "integer"},
                "paymentMethod": {"type": "string", "enum": ["express", "paypay", "unitel", "iban_bai", "iban_bfa", "presencial"]},
                "notes": {"type": "string"}
            }
        },
        "dto.CreateOrderResponse": {
            "type": "object",
            "properties": {"orderNumber": {"type": "string"}}
        },
        "dto.UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["pending", "paid", "processing", "completed", "cancelled"]},
                "adminNotes": {"type": "string"}
            }
        },
        "dto.UpdateWhatsAppRequest": {
            "type": "object",
            "properties": {
                "accountId": {"type": "string"},
                "phoneNumberId": {"type": "string"},
                "accessToken": {"type": "string"},
                "isActive": {"type": "boolean"}
            }
        },
        "dto.SupportMessageRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "subject": {"type": "string"},
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Storefront API",
	Description:      "API витрины игровых пополнений: заказы, отслеживание, корзина, админка",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
