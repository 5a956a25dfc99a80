package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is an immutable snapshot fetched once per session.
type Customer struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Product is the cached local copy of server truth. Stock can go stale after a
// failed submission; the catalog is re-fetched to reconcile.
type Product struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

// CartLine is one product's quantity entry within an in-progress order.
// Invariants: at most one line per product id, 1 <= Quantity <= product stock.
type CartLine struct {
	ProductID uint
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total is the derived line total, never stored.
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderTotals is a pure projection of the cart, recomputed on every read.
type OrderTotals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// OrderItemRequest and OrderRequest form the wire payload for order creation.
// Prices are never sent; they are server-authoritative.
type OrderItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type OrderRequest struct {
	CustomerID uint               `json:"customer_id"`
	Items      []OrderItemRequest `json:"items"`
}

// Order is the server's representation of a committed order, as returned in
// the success envelope and by the orders listing.
type Order struct {
	ID         uint            `json:"id"`
	CustomerID uint            `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []OrderItem     `json:"items"`
}

type OrderItem struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"order_id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
