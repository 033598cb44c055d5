package service

import (
	"fmt"
	"strings"

	"storefront-service/internal/models"

	"github.com/shopspring/decimal"
)

// FormatKz renders an amount in cents as "500.00 Kz".
func FormatKz(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2) + " Kz"
}

func valueOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func newOrderAlert(o *models.Order) (title, content string) {
	title = "Novo Pedido: " + o.OrderNumber
	lines := []string{
		"Cliente: " + o.CustomerName,
		"Jogo: " + o.GameName,
		"Produto: " + o.ProductName,
		fmt.Sprintf("Quantidade: %d", o.Quantity),
		"Preço: " + FormatKz(o.TotalAmount),
		"ID: " + o.PlayerID,
		"Nickname: " + valueOr(o.PlayerNickname, "N/A"),
		"Método de Pagamento: " + o.PaymentMethod.DisplayName(),
		"Telefone: " + o.CustomerPhone,
	}
	return title, strings.Join(lines, "\n")
}
