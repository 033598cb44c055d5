package service

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProgressFor(t *testing.T) {
	cases := []struct {
		status models.OrderStatus
		done   []bool
	}{
		{models.OrderStatusPending, []bool{true, false, false, false}},
		{models.OrderStatusPaid, []bool{true, true, false, false}},
		{models.OrderStatusProcessing, []bool{true, true, true, false}},
		{models.OrderStatusCompleted, []bool{true, true, true, true}},
		{models.OrderStatusCancelled, []bool{false, false, false, false}},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			p := ProgressFor(tc.status)
			got := make([]bool, len(p.Steps))
			for i, s := range p.Steps {
				got[i] = s.Done
			}
			assert.Equal(t, tc.done, got)
			assert.Equal(t, tc.status == models.OrderStatusCancelled, p.Cancelled)
			assert.NotEmpty(t, p.Description)
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Concluído", StatusLabel(models.OrderStatusCompleted))
	assert.Equal(t, "weird", StatusLabel("weird"))
	assert.Empty(t, StatusDescription("weird"))
}

func TestStatusNotification(t *testing.T) {
	o := &models.Order{ID: 3, OrderNumber: "MD3"}
	n := statusNotification(o, models.OrderStatusProcessing)
	assert.Equal(t, models.NotificationOrderProcessing, n.Type)
	assert.Equal(t, "Recarga em processamento", n.Title)
	assert.Equal(t, "Pedido MD3: "+StatusDescription(models.OrderStatusProcessing), n.Message)
	assert.False(t, n.IsRead)
}
