// Package cart holds the shopping cart aggregate shared by the API server and
// the storefront client session.
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrMissingProduct  = errors.New("product id is required")
)

// Item is one cart line. Price is the unit price captured when the product
// was added.
type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart keeps at most one line per product and a running total.
// It is not safe for concurrent use; Session adds locking.
type Cart struct {
	items []Item
	total decimal.Decimal
}

func New() *Cart {
	return &Cart{total: decimal.Zero}
}

// Add increments the quantity of an existing line by one, or appends the item
// with quantity 1.
func (c *Cart) Add(item Item) error {
	if item.ProductID == "" {
		return ErrMissingProduct
	}
	if item.Price.IsNegative() {
		return ErrInvalidPrice
	}

	if idx := c.indexOf(item.ProductID); idx >= 0 {
		c.items[idx].Quantity++
		c.total = c.total.Add(c.items[idx].Price)
		return nil
	}

	item.Quantity = 1
	c.items = append(c.items, item)
	c.total = c.total.Add(item.Price)
	return nil
}

// Remove deletes the line for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}
	c.total = c.total.Sub(c.items[idx].Subtotal())
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

// UpdateQuantity sets the quantity of an existing line. It reports whether the
// product was present.
func (c *Cart) UpdateQuantity(productID string, quantity int) (bool, error) {
	if quantity < 1 {
		return false, ErrInvalidQuantity
	}
	idx := c.indexOf(productID)
	if idx < 0 {
		return false, nil
	}

	delta := decimal.NewFromInt(int64(quantity - c.items[idx].Quantity))
	c.total = c.total.Add(c.items[idx].Price.Mul(delta))
	c.items[idx].Quantity = quantity
	return true, nil
}

func (c *Cart) Clear() {
	c.items = nil
	c.total = decimal.Zero
}

// Replace discards the current lines and takes items as-is, recomputing the
// total from scratch.
func (c *Cart) Replace(items []Item) {
	c.items = append([]Item(nil), items...)
	c.total = Total(c.items)
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

func (c *Cart) Total() decimal.Decimal {
	return c.total
}

// Count is the number of distinct products in the cart.
func (c *Cart) Count() int {
	return len(c.items)
}

// Quantity is the number of units across all lines.
func (c *Cart) Quantity() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Total sums price times quantity over items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Normalize validates a submitted item list and merges duplicate product ids
// into one line, keeping the first occurrence's name, price and image.
func Normalize(items []Item) ([]Item, error) {
	normalized := make([]Item, 0, len(items))
	index := make(map[string]int, len(items))

	for i, item := range items {
		if item.ProductID == "" {
			return nil, fmt.Errorf("item %d: %w", i, ErrMissingProduct)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item %d: %w", i, ErrInvalidQuantity)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("item %d: %w", i, ErrInvalidPrice)
		}

		if idx, ok := index[item.ProductID]; ok {
			normalized[idx].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(normalized)
		normalized = append(normalized, item)
	}

	return normalized, nil
}
