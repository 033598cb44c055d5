package cart_test

import (
	"math/rand/v2"
	"testing"

	"storefront-service/internal/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diamonds() cart.Item {
	return cart.Item{ProductID: 1, ProductName: "100 Diamantes", ProductPrice: 50000, GameName: "Free Fire"}
}

func TestAddItem_SameProductIncrementsQuantity(t *testing.T) {
	c := cart.New()
	c.AddItem(diamonds())
	c.AddItem(diamonds())

	require.Len(t, c.Items, 1)
	assert.Equal(t, int32(2), c.Items[0].Quantity)
	assert.Equal(t, int64(100000), c.TotalAmount())
	assert.Equal(t, int64(2), c.TotalItems())
}

func TestAddItem_IgnoresIncomingQuantity(t *testing.T) {
	c := cart.New()
	it := diamonds()
	it.Quantity = 7
	c.AddItem(it)

	require.Len(t, c.Items, 1)
	assert.Equal(t, int32(1), c.Items[0].Quantity)
}

func TestUpdateQuantity_ClampsToOne(t *testing.T) {
	c := cart.New()
	c.AddItem(diamonds())

	c.UpdateQuantity(1, 0)
	require.Len(t, c.Items, 1, "zero quantity must not remove the line")
	assert.Equal(t, int32(1), c.Items[0].Quantity)

	c.UpdateQuantity(1, -5)
	assert.Equal(t, int32(1), c.Items[0].Quantity)

	c.UpdateQuantity(1, 4)
	assert.Equal(t, int32(4), c.Items[0].Quantity)
	assert.Equal(t, int64(200000), c.TotalAmount())
}

func TestUpdateAndRemove_UnknownProductIsNoop(t *testing.T) {
	c := cart.New()
	c.AddItem(diamonds())

	c.UpdateQuantity(99, 3)
	c.RemoveItem(99)

	require.Len(t, c.Items, 1)
	assert.Equal(t, int32(1), c.Items[0].Quantity)
}

func TestRemoveItemAndClear(t *testing.T) {
	c := cart.New()
	c.AddItem(diamonds())
	c.AddItem(cart.Item{ProductID: 2, ProductName: "Passe Booyah", ProductPrice: 120000, GameName: "Free Fire"})

	c.RemoveItem(1)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(2), c.Items[0].ProductID)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.TotalAmount())
	assert.Zero(t, c.TotalItems())
}

func TestTotals_NeverDriftFromLines(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	c := cart.New()

	for step := 0; step < 500; step++ {
		pid := int64(r.IntN(6) + 1)
		switch r.IntN(3) {
		case 0:
			c.AddItem(cart.Item{ProductID: pid, ProductPrice: pid * 1000})
		case 1:
			c.UpdateQuantity(pid, int32(r.IntN(10)-2))
		case 2:
			c.RemoveItem(pid)
		}

		var want, items int64
		for _, it := range c.Items {
			require.GreaterOrEqual(t, it.Quantity, int32(1))
			want += it.ProductPrice * int64(it.Quantity)
			items += int64(it.Quantity)
		}
		require.Equal(t, want, c.TotalAmount(), "step %d", step)
		require.Equal(t, items, c.TotalItems(), "step %d", step)
	}
}

func TestNormalize_MergesDuplicatesAndClamps(t *testing.T) {
	c := &cart.Cart{Items: []cart.Item{
		{ProductID: 1, ProductPrice: 100, Quantity: 0},
		{ProductID: 2, ProductPrice: 200, Quantity: 2},
		{ProductID: 1, ProductPrice: 100, Quantity: 3},
	}}
	c.Normalize()

	require.Len(t, c.Items, 2)
	assert.Equal(t, int32(4), c.Items[0].Quantity)
	assert.Equal(t, int64(800), c.TotalAmount())

	empty := &cart.Cart{}
	empty.Normalize()
	assert.NotNil(t, empty.Items)
}
