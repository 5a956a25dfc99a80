package transport

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"posadmin/pkg/domain/model"
)

// Store is the in-memory backing state of the stub POS API. It reproduces the
// observable behavior of the real backend: order creation validates the
// customer and every line, decrements stock, and computes the server-side
// total from server-authoritative prices.
type Store struct {
	mu        sync.Mutex
	customers []model.Customer
	products  []model.Product
	orders    []model.Order
	nextOrder uint
}

func NewStore(customers []model.Customer, products []model.Product) *Store {
	return &Store{customers: customers, products: products, nextOrder: 1}
}

func (s *Store) Customers() []model.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

func (s *Store) Products() []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// CreateOrder validates and commits atomically: either every line is applied
// or nothing changes. Error strings match the real backend so client-side
// classification sees the same wire behavior.
func (s *Store) CreateOrder(req model.OrderRequest) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasCustomer(req.CustomerID) {
		return nil, errors.Errorf("customer not found: %d", req.CustomerID)
	}
	if len(req.Items) == 0 {
		return nil, errors.New("order has no items")
	}

	for _, it := range req.Items {
		p := s.product(it.ProductID)
		if p == nil {
			return nil, errors.Errorf("product %d not found", it.ProductID)
		}
		if it.Quantity < 1 {
			return nil, errors.Errorf("invalid quantity for product %d", it.ProductID)
		}
		if p.Stock < it.Quantity {
			return nil, errors.New("insufficient stock for product")
		}
	}

	order := model.Order{
		ID:         s.nextOrder,
		CustomerID: req.CustomerID,
		CreatedAt:  time.Now().UTC(),
	}
	total := decimal.Zero
	for _, it := range req.Items {
		p := s.product(it.ProductID)
		p.Stock -= it.Quantity
		line := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(line)
		order.Items = append(order.Items, model.OrderItem{
			ID:        uint(len(order.Items) + 1),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     p.Price,
		})
	}
	order.Total = total

	s.nextOrder++
	s.orders = append(s.orders, order)
	return &order, nil
}

func (s *Store) hasCustomer(id uint) bool {
	for _, c := range s.customers {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) product(id uint) *model.Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}
