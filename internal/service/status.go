package service

import (
	"fmt"

	"storefront-service/internal/models"
)

var statusLabels = map[models.OrderStatus]string{
	models.OrderStatusPending:    "Pendente",
	models.OrderStatusPaid:       "Pago",
	models.OrderStatusProcessing: "Processando",
	models.OrderStatusCompleted:  "Concluído",
	models.OrderStatusCancelled:  "Cancelado",
}

var statusDescriptions = map[models.OrderStatus]string{
	models.OrderStatusPending:    "Seu pedido foi recebido e está aguardando confirmação de pagamento.",
	models.OrderStatusPaid:       "Pagamento confirmado! Estamos processando sua recarga.",
	models.OrderStatusProcessing: "Sua recarga está sendo processada. Você receberá em breve.",
	models.OrderStatusCompleted:  "Recarga concluída com sucesso! Verifique sua conta.",
	models.OrderStatusCancelled:  "Este pedido foi cancelado.",
}

var statusTitles = map[models.OrderStatus]string{
	models.OrderStatusPending:    "Pedido recebido",
	models.OrderStatusPaid:       "Pagamento confirmado",
	models.OrderStatusProcessing: "Recarga em processamento",
	models.OrderStatusCompleted:  "Recarga concluída",
	models.OrderStatusCancelled:  "Pedido cancelado",
}

func StatusLabel(s models.OrderStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func StatusDescription(s models.OrderStatus) string { return statusDescriptions[s] }

// statusNotification builds the customer-visible record for an order entering status s.
func statusNotification(o *models.Order, s models.OrderStatus) *models.Notification {
	title, ok := statusTitles[s]
	if !ok {
		title = StatusLabel(s)
	}
	return &models.Notification{
		OrderID: o.ID,
		UserID:  o.UserID,
		Type:    models.NotificationTypeFor(s),
		Title:   title,
		Message: fmt.Sprintf("Pedido %s: %s", o.OrderNumber, StatusDescription(s)),
		IsRead:  false,
	}
}

type ProgressStep struct {
	Status models.OrderStatus
	Label  string
	Done   bool
}

// Progress is the tracking checklist; Cancelled orders sit outside it.
type Progress struct {
	Status      models.OrderStatus
	Label       string
	Description string
	Steps       []ProgressStep
	Cancelled   bool
}

var progressSteps = []ProgressStep{
	{Status: models.OrderStatusPending, Label: "Pedido Recebido"},
	{Status: models.OrderStatusPaid, Label: "Pagamento Confirmado"},
	{Status: models.OrderStatusProcessing, Label: "Processando Recarga"},
	{Status: models.OrderStatusCompleted, Label: "Recarga Concluída"},
}

func ProgressFor(s models.OrderStatus) Progress {
	p := Progress{
		Status:      s,
		Label:       StatusLabel(s),
		Description: StatusDescription(s),
		Steps:       make([]ProgressStep, len(progressSteps)),
		Cancelled:   s == models.OrderStatusCancelled,
	}
	reached := -1
	for i, st := range progressSteps {
		if st.Status == s {
			reached = i
		}
	}
	for i, st := range progressSteps {
		st.Done = i <= reached
		p.Steps[i] = st
	}
	return p
}
