package service

import (
	"strings"

	"posadmin/pkg/domain/model"
)

// Catalog holds the session's cached customer and product snapshots and
// answers search queries without mutating anything. Search is opt-in: a blank
// query returns nothing, not everything. Results keep source order.
type Catalog struct {
	customers []model.Customer
	products  []model.Product
}

func NewCatalog(customers []model.Customer, products []model.Product) *Catalog {
	return &Catalog{customers: customers, products: products}
}

func (c *Catalog) Customers() []model.Customer {
	out := make([]model.Customer, len(c.customers))
	copy(out, c.customers)
	return out
}

func (c *Catalog) Products() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// SearchCustomers matches the query case-insensitively against name, email
// and phone.
func (c *Catalog) SearchCustomers(query string) []model.Customer {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil
	}

	var out []model.Customer
	for _, cust := range c.customers {
		if strings.Contains(strings.ToLower(cust.Name), term) ||
			strings.Contains(strings.ToLower(cust.Email), term) ||
			strings.Contains(cust.Phone, term) {
			out = append(out, cust)
		}
	}
	return out
}

// SearchProducts matches against name only and never offers out-of-stock
// products for selection.
func (c *Catalog) SearchProducts(query string) []model.Product {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return nil
	}

	var out []model.Product
	for _, p := range c.products {
		if p.Stock > 0 && strings.Contains(strings.ToLower(p.Name), term) {
			out = append(out, p)
		}
	}
	return out
}

// StockOf returns the latest cached stock for a product, 0 when unknown.
// Cart quantity bounds read through here, so a snapshot refresh tightens or
// loosens them immediately.
func (c *Catalog) StockOf(productID uint) int {
	for _, p := range c.products {
		if p.ID == productID {
			return p.Stock
		}
	}
	return 0
}

func (c *Catalog) FindProduct(productID uint) (model.Product, bool) {
	for _, p := range c.products {
		if p.ID == productID {
			return p, true
		}
	}
	return model.Product{}, false
}

// ReplaceProducts swaps in a fresh product snapshot, typically after a failed
// submission reconciled stock with the server.
func (c *Catalog) ReplaceProducts(products []model.Product) {
	c.products = products
}

func (c *Catalog) InStockCount() int {
	n := 0
	for _, p := range c.products {
		if p.Stock > 0 {
			n++
		}
	}
	return n
}
