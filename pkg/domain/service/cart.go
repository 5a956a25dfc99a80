package service

import "posadmin/pkg/domain/model"

// StockProvider reports the latest cached stock for a product.
type StockProvider interface {
	StockOf(productID uint) int
}

// Cart is the authoritative in-memory state machine for the order being
// built. All commands are total functions: out-of-range requests degrade to
// no-ops (a saturating clamp), they never error. Lines keep insertion order
// and there is at most one line per product.
type Cart struct {
	stock StockProvider
	lines []model.CartLine
}

func NewCart(stock StockProvider) *Cart {
	return &Cart{stock: stock}
}

// AddProduct creates a quantity-1 line for a new product, or increments an
// existing line while it stays within the product's stock.
func (c *Cart) AddProduct(p model.Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			if c.lines[i].Quantity < p.Stock {
				c.lines[i].Quantity++
			}
			return
		}
	}
	if p.Stock < 1 {
		return
	}
	c.lines = append(c.lines, model.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
	})
}

// ChangeQuantity applies the delta only if the resulting quantity stays
// within [1, current stock]. Stock is read from the latest snapshot, not a
// value frozen at add time.
func (c *Cart) ChangeQuantity(productID uint, delta int) {
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		next := c.lines[i].Quantity + delta
		if next >= 1 && next <= c.stock.StockOf(productID) {
			c.lines[i].Quantity = next
		}
		return
	}
}

// RemoveLine deletes the product's line entirely; unknown ids are a no-op.
func (c *Cart) RemoveLine(productID uint) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns the cart contents in insertion order. The slice is a copy;
// mutating it does not touch the cart.
func (c *Cart) Lines() []model.CartLine {
	out := make([]model.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(productID uint) (model.CartLine, bool) {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return model.CartLine{}, false
}

func (c *Cart) Quantity(productID uint) int {
	if l, ok := c.Line(productID); ok {
		return l.Quantity
	}
	return 0
}

func (c *Cart) Len() int { return len(c.lines) }

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }
