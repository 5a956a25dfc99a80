package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/pkg/domain/model"
	"posadmin/pkg/transport"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := log.New()
	logger.SetOutput(io.Discard)
	return NewClient(srv.URL, 5*time.Second, logger), srv
}

func envelopeHandler(code int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_, _ = w.Write([]byte(body))
	})
}

func TestFetchProducts(t *testing.T) {
	body := `{"status":"success","message":"ok","data":[
		{"id":1,"name":"Ceylon Tea 400g","price":950,"stock":24},
		{"id":3,"name":"Coconut Oil 1L","price":1150.50,"stock":3}
	]}`
	client, _ := testClient(t, envelopeHandler(http.StatusOK, body))

	products, err := client.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, uint(1), products[0].ID)
	assert.True(t, products[1].Price.Equal(decimal.NewFromFloat(1150.50)))
	assert.Equal(t, 3, products[1].Stock)
}

func TestFetchCustomers(t *testing.T) {
	body := `{"status":"success","message":"ok","data":[
		{"id":2,"name":"Sunethra Silva","email":"sunethra@example.com","phone":"0719876543"}
	]}`
	client, _ := testClient(t, envelopeHandler(http.StatusOK, body))

	customers, err := client.FetchCustomers(context.Background())

	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Sunethra Silva", customers[0].Name)
}

func TestCreateOrderSuccess(t *testing.T) {
	body := `{"status":"success","message":"order created","data":{"id":12,"customer_id":2,"total":1900,"items":[
		{"id":1,"order_id":12,"product_id":1,"quantity":2,"price":950}
	]}}`
	client, _ := testClient(t, envelopeHandler(http.StatusOK, body))

	order, err := client.CreateOrder(context.Background(), model.OrderRequest{
		CustomerID: 2,
		Items:      []model.OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(12), order.ID)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(1900)))
}

func TestCreateOrderClassification(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{
			name: "insufficient stock",
			body: `{"status":"error","message":"create order failed","data":"insufficient stock for product"}`,
			want: model.ErrInsufficientStock,
		},
		{
			name: "customer missing",
			body: `{"status":"error","message":"create order failed","data":"customer not found: record not found"}`,
			want: model.ErrCustomerNotFound,
		},
		{
			name: "product missing",
			body: `{"status":"error","message":"create order failed","data":"product 5 not found: record not found"}`,
			want: model.ErrProductNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := testClient(t, envelopeHandler(http.StatusBadRequest, tc.body))

			_, err := client.CreateOrder(context.Background(), model.OrderRequest{CustomerID: 1})

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateOrderUnclassifiedFailure(t *testing.T) {
	body := `{"status":"error","message":"create order failed","data":"deadlock detected"}`
	client, _ := testClient(t, envelopeHandler(http.StatusBadRequest, body))

	_, err := client.CreateOrder(context.Background(), model.OrderRequest{CustomerID: 1})

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Error(), "deadlock detected")
}

func TestMalformedResponse(t *testing.T) {
	client, _ := testClient(t, envelopeHandler(http.StatusOK, `not json at all`))

	_, err := client.FetchProducts(context.Background())

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestNonSuccessStatusWithoutEnvelope(t *testing.T) {
	client, _ := testClient(t, envelopeHandler(http.StatusBadGateway, `upstream exploded`))

	_, err := client.FetchProducts(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Contains(t, transportErr.Error(), "502")
}

func TestConnectionFailure(t *testing.T) {
	client, srv := testClient(t, envelopeHandler(http.StatusOK, `{}`))
	srv.Close()

	_, err := client.FetchProducts(context.Background())

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

// End to end against the stub POS API: the same envelope and error strings
// the real backend produces.
func TestClientAgainstStub(t *testing.T) {
	store := transport.NewStore(
		[]model.Customer{{ID: 1, Name: "Nimal Perera"}},
		[]model.Product{{ID: 1, Name: "Ceylon Tea", Price: decimal.NewFromInt(950), Stock: 3}},
	)
	logger := log.New()
	logger.SetOutput(io.Discard)
	client, _ := testClient(t, transport.Router(store, logger))
	ctx := context.Background()

	products, err := client.FetchProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	order, err := client.CreateOrder(ctx, model.OrderRequest{
		CustomerID: 1,
		Items:      []model.OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(1900)))

	products, err = client.FetchProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, products[0].Stock, "stock decremented server-side")

	_, err = client.CreateOrder(ctx, model.OrderRequest{
		CustomerID: 1,
		Items:      []model.OrderItemRequest{{ProductID: 1, Quantity: 5}},
	})
	assert.ErrorIs(t, err, model.ErrInsufficientStock)

	_, err = client.CreateOrder(ctx, model.OrderRequest{
		CustomerID: 99,
		Items:      []model.OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)

	orders, err := client.FetchOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, uint(1), orders[0].ID)
}
