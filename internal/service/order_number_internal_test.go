package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedGenerator(draws ...int) *NumberGenerator {
	i := 0
	return &NumberGenerator{
		prefix: OrderNumberPrefix,
		now:    func() time.Time { return time.UnixMilli(1700000000000) },
		intn: func(n int) int {
			v := draws[i%len(draws)]
			i++
			return v
		},
	}
}

func TestNumberGenerator_Next(t *testing.T) {
	g := fixedGenerator(7, 999)
	assert.Equal(t, "MD17000000000007", g.Next())
	assert.Equal(t, "MD1700000000000999", g.Next())
}

func TestNumberGenerator_Unique(t *testing.T) {
	g := fixedGenerator(1, 2, 3)
	taken := map[string]bool{"MD17000000000001": true, "MD17000000000002": true}

	n, err := g.Unique(context.Background(), func(_ context.Context, number string) (bool, error) {
		return taken[number], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "MD17000000000003", n)
}

func TestNumberGenerator_UniqueExhausted(t *testing.T) {
	g := fixedGenerator(1)
	calls := 0
	_, err := g.Unique(context.Background(), func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})
	assert.ErrorIs(t, err, ErrOrderNumberExhausted)
	assert.Equal(t, maxOrderNumberAttempts, calls)
}

func TestNumberGenerator_UniqueLookupError(t *testing.T) {
	g := fixedGenerator(1)
	boom := errors.New("db down")
	_, err := g.Unique(context.Background(), func(context.Context, string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestNewNumberGenerator_DefaultPrefix(t *testing.T) {
	n := NewNumberGenerator("").Next()
	assert.Regexp(t, `^MD\d{13,16}$`, n)
}

func TestFormatKz(t *testing.T) {
	assert.Equal(t, "500.00 Kz", FormatKz(50000))
	assert.Equal(t, "0.05 Kz", FormatKz(5))
	assert.Equal(t, "1234567.89 Kz", FormatKz(123456789))
}

func TestNewOrderAlert(t *testing.T) {
	nick := "Kira"
	title, content := newOrderAlert(&models.Order{
		OrderNumber:    "MD1",
		CustomerName:   "Ana",
		GameName:       "Free Fire",
		ProductName:    "100 Diamantes",
		Quantity:       2,
		TotalAmount:    100000,
		PlayerID:       "123",
		PlayerNickname: &nick,
		PaymentMethod:  models.PaymentIBANBai,
		CustomerPhone:  "923",
	})
	assert.Equal(t, "Novo Pedido: MD1", title)
	assert.Contains(t, content, "Quantidade: 2")
	assert.Contains(t, content, "Preço: 1000.00 Kz")
	assert.Contains(t, content, "Nickname: Kira")
	assert.Contains(t, content, "Método de Pagamento: IBAN Banco Bai")
}
