package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"posadmin/pkg/domain/model"
)

var ErrSubmissionInFlight = errors.New("an order submission is already in progress")

// Gateway is the remote POS API as seen by the checkout flow.
type Gateway interface {
	FetchCustomers(ctx context.Context) ([]model.Customer, error)
	FetchProducts(ctx context.Context) ([]model.Product, error)
	CreateOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error)
}

type EventDispatcher interface {
	Dispatch(event model.Event) error
}

type State int

const (
	StateIdle State = iota
	StateSubmitting
)

type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureInsufficientStock
	FailureNotFound
	FailureTransport
)

// SubmitResult carries the single user-facing outcome of a submission
// attempt. Failures never propagate as errors past the checkout boundary.
type SubmitResult struct {
	Committed bool
	Order     *model.Order
	Kind      FailureKind
	Message   string
}

// User-facing messages, kept aligned with the dashboard UI.
const (
	msgOrderCreated      = "Order created successfully"
	msgCustomerRequired  = "Please select a customer"
	msgNoItems           = "Please add items to the order"
	msgInsufficientStock = "Some items don't have enough stock. Please reduce quantities and try again."
	msgNotFound          = "Some products or the customer are no longer available. Please refresh and try again."
	msgCreateFailed      = "Failed to create order"
)

// CheckoutService owns the submission state machine: Idle -> Submitting ->
// Idle, with at most one submission in flight. It is the only component that
// crosses the process boundary for order creation.
type CheckoutService struct {
	gateway    Gateway
	catalog    *Catalog
	cart       *Cart
	dispatcher EventDispatcher
	logger     *log.Entry
	session    string

	mu       sync.Mutex
	state    State
	customer *model.Customer
}

func NewCheckoutService(gateway Gateway, catalog *Catalog, cart *Cart, dispatcher EventDispatcher, logger *log.Logger) *CheckoutService {
	session := uuid.NewString()
	return &CheckoutService{
		gateway:    gateway,
		catalog:    catalog,
		cart:       cart,
		dispatcher: dispatcher,
		logger:     logger.WithField("session", session),
		session:    session,
	}
}

func (s *CheckoutService) Cart() *Cart { return s.cart }

func (s *CheckoutService) Catalog() *Catalog { return s.catalog }

func (s *CheckoutService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CheckoutService) SelectCustomer(c model.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = &c
}

func (s *CheckoutService) SelectedCustomer() (model.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.customer == nil {
		return model.Customer{}, false
	}
	return *s.customer, true
}

func (s *CheckoutService) ClearCustomer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = nil
}

// Submit runs one submission attempt. It returns ErrSubmissionInFlight when a
// previous attempt has not finished; every other outcome, success or failure,
// is reported through SubmitResult. The request is sent exactly once per
// attempt; a purchase is never retried automatically. After any failure past
// local validation the product catalog is re-fetched once to reconcile stock
// with the server, and the cart is left untouched so the operator can adjust
// quantities and try again.
func (s *CheckoutService) Submit(ctx context.Context) (SubmitResult, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return SubmitResult{}, ErrSubmissionInFlight
	}
	s.state = StateSubmitting
	customer := s.customer
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
	}()

	if customer == nil {
		return SubmitResult{Kind: FailureValidation, Message: msgCustomerRequired}, nil
	}
	if s.cart.IsEmpty() {
		return SubmitResult{Kind: FailureValidation, Message: msgNoItems}, nil
	}

	req := buildOrderRequest(customer.ID, s.cart.Lines())
	s.logger.WithFields(log.Fields{
		"customer_id": customer.ID,
		"items":       len(req.Items),
	}).Info("submitting order")

	order, err := s.gateway.CreateOrder(ctx, req)
	if err != nil {
		kind, message := classifyFailure(err)
		s.logger.WithField("err", err).Warn("order submission failed")
		_ = s.dispatcher.Dispatch(model.OrderSubmissionFailed{SessionID: s.session, Reason: err.Error()})
		s.refreshProducts(ctx)
		return SubmitResult{Kind: kind, Message: message}, nil
	}

	s.logger.WithField("order_id", order.ID).Info("order created")
	_ = s.dispatcher.Dispatch(model.OrderSubmitted{
		SessionID:  s.session,
		OrderID:    order.ID,
		CustomerID: customer.ID,
	})
	return SubmitResult{Committed: true, Order: order, Message: msgOrderCreated}, nil
}

func buildOrderRequest(customerID uint, lines []model.CartLine) model.OrderRequest {
	req := model.OrderRequest{
		CustomerID: customerID,
		Items:      make([]model.OrderItemRequest, 0, len(lines)),
	}
	for _, l := range lines {
		req.Items = append(req.Items, model.OrderItemRequest{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return req
}

func classifyFailure(err error) (FailureKind, string) {
	switch {
	case errors.Is(err, model.ErrInsufficientStock):
		return FailureInsufficientStock, msgInsufficientStock
	case errors.Is(err, model.ErrCustomerNotFound), errors.Is(err, model.ErrProductNotFound):
		return FailureNotFound, msgNotFound
	default:
		return FailureTransport, msgCreateFailed
	}
}

// refreshProducts reconciles local stock with the server. The most likely
// failure cause is another concurrent order, which changes server-side stock
// without any local signal. A failed refresh is logged, never surfaced.
func (s *CheckoutService) refreshProducts(ctx context.Context) {
	products, err := s.gateway.FetchProducts(ctx)
	if err != nil {
		s.logger.WithField("err", err).Error("stock reconciliation fetch failed")
		return
	}
	s.catalog.ReplaceProducts(products)
	_ = s.dispatcher.Dispatch(model.CatalogRefreshed{SessionID: s.session, Products: len(products)})
}
