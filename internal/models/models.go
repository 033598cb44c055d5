package models

import (
	"time"

	"github.com/google/uuid"
)

// Статус заказа хранится как TEXT, допустимые значения закреплены CHECK-ограничением в миграции
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentExpress    PaymentMethod = "express"
	PaymentPayPay     PaymentMethod = "paypay"
	PaymentUnitel     PaymentMethod = "unitel"
	PaymentIBANBai    PaymentMethod = "iban_bai"
	PaymentIBANBFA    PaymentMethod = "iban_bfa"
	PaymentPresencial PaymentMethod = "presencial"
)

var paymentMethodNames = map[PaymentMethod]string{
	PaymentExpress:    "Express",
	PaymentPayPay:     "PayPay AO",
	PaymentUnitel:     "Unitel Money",
	PaymentIBANBai:    "IBAN Banco Bai",
	PaymentIBANBFA:    "IBAN Banco BFA",
	PaymentPresencial: "Pagamento Presencial",
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodNames[m]
	return ok
}

func (m PaymentMethod) DisplayName() string {
	if n, ok := paymentMethodNames[m]; ok {
		return n
	}
	return string(m)
}

type Order struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	OrderNumber string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`

	// снимок данных покупателя на момент заказа
	CustomerName   string  `gorm:"type:varchar(200);not null"`
	CustomerEmail  *string `gorm:"type:varchar(320)"`
	CustomerPhone  string  `gorm:"type:varchar(50);not null"`
	PlayerID       string  `gorm:"type:varchar(100);not null"`
	PlayerNickname *string `gorm:"type:varchar(100)"`
	GameName       string  `gorm:"type:varchar(100);not null"`

	// снимок товара, TotalAmount авторитетен для оплаты
	ProductID    int64  `gorm:"not null"`
	ProductName  string `gorm:"type:varchar(200);not null"`
	ProductPrice int64  `gorm:"not null"`
	Quantity     int32  `gorm:"type:int;not null;default:1"`
	TotalAmount  int64  `gorm:"not null"`

	PaymentMethod PaymentMethod `gorm:"type:text;not null"`
	Status        OrderStatus   `gorm:"type:text;not null;default:'pending';index"`

	ProofURL   *string    `gorm:"type:text"`
	Notes      *string    `gorm:"type:text"`
	AdminNotes *string    `gorm:"type:text"`
	RemindedAt *time.Time `gorm:"index"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Order) TableName() string { return "orders" }

type NotificationType string

const (
	NotificationOrderCreated    NotificationType = "order_created"
	NotificationOrderPaid       NotificationType = "order_paid"
	NotificationOrderProcessing NotificationType = "order_processing"
	NotificationOrderCompleted  NotificationType = "order_completed"
	NotificationOrderCancelled  NotificationType = "order_cancelled"
)

// NotificationTypeFor maps an order status onto the matching notification type.
func NotificationTypeFor(s OrderStatus) NotificationType {
	switch s {
	case OrderStatusPaid:
		return NotificationOrderPaid
	case OrderStatusProcessing:
		return NotificationOrderProcessing
	case OrderStatusCompleted:
		return NotificationOrderCompleted
	case OrderStatusCancelled:
		return NotificationOrderCancelled
	default:
		return NotificationOrderCreated
	}
}

type Notification struct {
	ID      int64            `gorm:"primaryKey;autoIncrement"`
	OrderID int64            `gorm:"not null;index"`
	UserID  *uuid.UUID       `gorm:"type:uuid;index"`
	Type    NotificationType `gorm:"type:text;not null"`
	Title   string           `gorm:"type:varchar(200);not null"`
	Message string           `gorm:"type:text;not null"`
	IsRead  bool             `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
}

func (Notification) TableName() string { return "notifications" }

const ProviderWhatsApp = "whatsapp"

// ApiConfiguration хранит учётные данные внешних интеграций, ключ: provider
type ApiConfiguration struct {
	ID            int64   `gorm:"primaryKey;autoIncrement"`
	Provider      string  `gorm:"type:varchar(100);not null;uniqueIndex"`
	AccountID     *string `gorm:"type:text"`
	PhoneNumberID *string `gorm:"type:text"`
	AccessToken   *string `gorm:"type:text"`
	APIKey        *string `gorm:"type:text"`
	APISecret     *string `gorm:"type:text"`
	WebhookURL    *string `gorm:"type:text"`
	IsActive      bool    `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (ApiConfiguration) TableName() string { return "api_configurations" }

type Role string

const (
	RoleUser  Role = "ROLE_USER"
	RoleAdmin Role = "ROLE_ADMIN"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"type:varchar(320);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:text;not null"`
	Name         *string   `gorm:"type:text"`
	Role         Role      `gorm:"type:text;not null;default:'ROLE_USER'"`

	LastSignedIn *time.Time
	CreatedAt    time.Time `gorm:"not null;default:now()"`
	UpdatedAt    time.Time `gorm:"not null;default:now()"`
}

func (User) TableName() string { return "users" }
