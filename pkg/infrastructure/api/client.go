package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"posadmin/pkg/domain/model"
)

const statusSuccess = "success"

// envelope is the response convention of the POS backend: every reply carries
// status, message and an optional payload. status != "success" is the failure
// signal; on order failures data holds the server's error string.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// TransportError covers network failures, non-2xx replies without a
// recognizable domain message, and malformed responses.
type TransportError struct {
	Op    string
	Cause error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Cause) }

func (e *TransportError) Unwrap() error { return e.Cause }

// Client implements service.Gateway over HTTP. Timeouts are delegated to the
// underlying http.Client; there are no retries at this layer.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Entry
}

func NewClient(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.WithField("component", "api"),
	}
}

func (c *Client) FetchCustomers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := c.get(ctx, "/customers", &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) FetchProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.get(ctx, "/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) FetchOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.get(ctx, "/orders", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder posts the order exactly once. Failure envelopes are classified
// into the model sentinel errors so callers can branch with errors.Is.
func (c *Client) CreateOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Op: "encode order request", Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "build order request", Cause: err}
	}

	env, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	if env.Status != statusSuccess {
		return nil, classifyEnvelope(env)
	}

	var order model.Order
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &order); err != nil {
			return nil, &TransportError{Op: "decode created order", Cause: err}
		}
	}
	return &order, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Op: "build request", Cause: err}
	}

	env, err := c.do(req)
	if err != nil {
		return err
	}
	if env.Status != statusSuccess {
		return &TransportError{Op: "GET " + path, Cause: errors.New(env.Message)}
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &TransportError{Op: "decode " + path + " payload", Cause: err}
	}
	return nil
}

func (c *Client) do(req *http.Request) (*envelope, error) {
	op := req.Method + " " + req.URL.Path

	req.Header.Set("Accept", "application/json")
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Cause: errors.Wrap(err, "read response body")}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &TransportError{Op: op, Cause: errors.Errorf("unexpected status %d", resp.StatusCode)}
		}
		return nil, &TransportError{Op: op, Cause: errors.Wrap(err, "decode response envelope")}
	}
	if env.Status == "" {
		return nil, &TransportError{Op: op, Cause: errors.Errorf("status %d: response carries no envelope status", resp.StatusCode)}
	}

	c.logger.WithFields(log.Fields{"op": op, "status": env.Status}).Debug("api call completed")
	return &env, nil
}

// classifyEnvelope maps the backend's free-text failure strings onto the
// closed error set. The backend reports detail as a plain string in data
// (e.g. "insufficient stock for product"), so this is the one place substring
// matching is allowed to survive.
func classifyEnvelope(env *envelope) error {
	text := strings.ToLower(env.Message)
	var detail string
	if len(env.Data) > 0 && json.Unmarshal(env.Data, &detail) == nil {
		text += " " + strings.ToLower(detail)
	}

	reason := env.Message
	if detail != "" {
		reason = detail
	}

	switch {
	case strings.Contains(text, "insufficient stock"):
		return errors.Wrap(model.ErrInsufficientStock, reason)
	case strings.Contains(text, "customer not found"):
		return errors.Wrap(model.ErrCustomerNotFound, reason)
	case strings.Contains(text, "not found"):
		return errors.Wrap(model.ErrProductNotFound, reason)
	default:
		return &TransportError{Op: "create order", Cause: errors.New(reason)}
	}
}
