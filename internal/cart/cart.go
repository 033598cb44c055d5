// Package cart aggregates the line items a browsing session intends to buy.
//
// A Cart never stores a running total: TotalAmount and TotalItems are derived
// from the current lines on every call.
package cart

// Item is one line of the cart. ProductPrice is in minor currency units.
type Item struct {
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductPrice int64   `json:"productPrice"`
	ProductImage *string `json:"productImage,omitempty"`
	GameName     string  `json:"gameName"`
	Quantity     int32   `json:"quantity"`
}

// Subtotal is ProductPrice × Quantity.
func (i Item) Subtotal() int64 { return i.ProductPrice * int64(i.Quantity) }

type Cart struct {
	Items []Item `json:"items"`
}

func New() *Cart { return &Cart{Items: []Item{}} }

func (c *Cart) indexOf(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem increments the quantity of an existing line with the same product
// or appends a new line with quantity 1. The incoming Quantity is ignored.
func (c *Cart) AddItem(item Item) {
	if i := c.indexOf(item.ProductID); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity of a line, clamping anything below 1 to 1.
// Unknown products are ignored.
func (c *Cart) UpdateQuantity(productID int64, quantity int32) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	c.Items[i].Quantity = quantity
}

func (c *Cart) RemoveItem(productID int64) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

func (c *Cart) Clear() { c.Items = []Item{} }

func (c *Cart) IsEmpty() bool { return len(c.Items) == 0 }

func (c *Cart) TotalAmount() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

func (c *Cart) TotalItems() int64 {
	var n int64
	for _, it := range c.Items {
		n += int64(it.Quantity)
	}
	return n
}

// Normalize repairs lines loaded from storage: quantities below 1 become 1
// and duplicate products are merged into the first occurrence.
func (c *Cart) Normalize() {
	if c.Items == nil {
		c.Items = []Item{}
		return
	}
	merged := make([]Item, 0, len(c.Items))
	seen := make(map[int64]int, len(c.Items))
	for _, it := range c.Items {
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		if j, ok := seen[it.ProductID]; ok {
			merged[j].Quantity += it.Quantity
			continue
		}
		seen[it.ProductID] = len(merged)
		merged = append(merged, it)
	}
	c.Items = merged
}
