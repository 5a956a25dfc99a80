package transport

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/pkg/domain/model"
)

func TestCreateOrderIsAtomic(t *testing.T) {
	store := NewStore(
		[]model.Customer{{ID: 1, Name: "Nimal Perera"}},
		[]model.Product{
			{ID: 1, Name: "Tea", Price: decimal.NewFromInt(950), Stock: 5},
			{ID: 2, Name: "Rice", Price: decimal.NewFromInt(2890), Stock: 1},
		},
	)

	// Second line fails validation, so the first must not be applied either.
	_, err := store.CreateOrder(model.OrderRequest{
		CustomerID: 1,
		Items: []model.OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
	})

	require.Error(t, err)
	products := store.Products()
	assert.Equal(t, 5, products[0].Stock)
	assert.Equal(t, 1, products[1].Stock)
	assert.Empty(t, store.Orders())
}

func TestCreateOrderRejectsEmptyAndInvalid(t *testing.T) {
	store := NewStore(
		[]model.Customer{{ID: 1}},
		[]model.Product{{ID: 1, Price: decimal.NewFromInt(100), Stock: 5}},
	)

	_, err := store.CreateOrder(model.OrderRequest{CustomerID: 1})
	assert.EqualError(t, err, "order has no items")

	_, err = store.CreateOrder(model.OrderRequest{
		CustomerID: 1,
		Items:      []model.OrderItemRequest{{ProductID: 1, Quantity: 0}},
	})
	assert.EqualError(t, err, "invalid quantity for product 1")
}
