package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

type SupportMessageInput struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Subject *string `json:"subject" validate:"omitempty,max=200"`
	Message string  `json:"message" validate:"required,max=5000"`
}

type SupportService interface {
	// SendMessage возвращает true для любого валидного сообщения: сбой доставки владельцу
	// только логируется и не доходит до отправителя
	SendMessage(ctx context.Context, in SupportMessageInput) (bool, error)
}

type supportService struct {
	notifier NotificationService
	log      *zap.Logger
}

func NewSupportService(notifier NotificationService, log *zap.Logger) SupportService {
	return &supportService{notifier: notifier, log: log}
}

func (s *supportService) SendMessage(ctx context.Context, in SupportMessageInput) (bool, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	in.Phone = trimOptional(in.Phone)
	in.Subject = trimOptional(in.Subject)
	if err := validateInput(in); err != nil {
		return false, err
	}

	title := "Nova mensagem de suporte de " + in.Name
	content := "Email: " + in.Email +
		"\nTelefone: " + valueOr(in.Phone, "Não informado") +
		"\nAssunto: " + valueOr(in.Subject, "Sem assunto") +
		"\n\nMensagem:\n" + in.Message

	if !s.notifier.NotifyOwner(ctx, title, content) {
		s.log.Warn("support message not delivered to owner", zap.String("email", in.Email))
	}
	return true, nil
}
