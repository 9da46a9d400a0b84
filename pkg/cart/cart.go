// Package cart aggregates recommended products into a quantity-tracked cart.
package cart

import (
	"slices"

	"github.com/donaldgifford/vitam-chat/pkg/normalize"
	domain "github.com/donaldgifford/vitam-chat/pkg/types"
)

// Cart holds one line per product id. It is not safe for concurrent use;
// the owning session serializes access.
type Cart struct {
	items  map[string]*domain.CartItem // productID -> item
	order  []string
	isOpen bool
}

// New returns an empty, closed cart.
func New() *Cart {
	return &Cart{
		items: make(map[string]*domain.CartItem),
	}
}

// Add inserts p with quantity 1, or bumps the quantity of the existing line.
// An existing line keeps the fields it was first added with. It returns the
// resulting quantity.
func (c *Cart) Add(p domain.Product) int {
	if item, ok := c.items[p.ID]; ok {
		item.Quantity++
		return item.Quantity
	}

	c.items[p.ID] = &domain.CartItem{Product: p, Quantity: 1}
	c.order = append(c.order, p.ID)
	return 1
}

// Remove deletes the line for id. Unknown ids are ignored. It reports
// whether a line was removed.
func (c *Cart) Remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}

	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
	return true
}

// Clear empties the cart. The open flag is left alone.
func (c *Cart) Clear() {
	clear(c.items)
	c.order = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.order)
}

// TotalItems sums every line's quantity.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums price times quantity. Unparseable prices count as zero.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, id := range c.order {
		item := c.items[id]
		total += normalize.ParseAmount(item.Price) * float64(item.Quantity)
	}
	return total
}

// IsOpen reports whether the cart panel is open.
func (c *Cart) IsOpen() bool {
	return c.isOpen
}

// SetOpen opens or closes the cart panel.
func (c *Cart) SetOpen(open bool) {
	c.isOpen = open
}

// Toggle flips the open flag and returns the new value.
func (c *Cart) Toggle() bool {
	c.isOpen = !c.isOpen
	return c.isOpen
}

// Summary snapshots the cart.
func (c *Cart) Summary() domain.CartSummary {
	return domain.CartSummary{
		Items:      c.Items(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		IsOpen:     c.isOpen,
	}
}
