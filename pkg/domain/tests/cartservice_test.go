package tests

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/pkg/domain/model"
	"posadmin/pkg/domain/service"
)

func productFixture(id uint, name string, price float64, stock int) model.Product {
	return model.Product{ID: id, Name: name, Price: decimal.NewFromFloat(price), Stock: stock}
}

func setupCart(products ...model.Product) (*service.Cart, *service.Catalog) {
	catalog := service.NewCatalog(nil, products)
	return service.NewCart(catalog), catalog
}

func TestAddProductClampsAtStock(t *testing.T) {
	tea := productFixture(1, "Ceylon Tea", 950, 3)
	cart, _ := setupCart(tea)

	for i := 0; i < 4; i++ {
		cart.AddProduct(tea)
	}

	require.Equal(t, 1, cart.Len())
	assert.Equal(t, 3, cart.Quantity(tea.ID))
}

func TestAddProductKeepsOneLinePerProduct(t *testing.T) {
	tea := productFixture(1, "Ceylon Tea", 950, 10)
	rice := productFixture(2, "Rice", 2890, 10)
	cart, _ := setupCart(tea, rice)

	cart.AddProduct(tea)
	cart.AddProduct(rice)
	cart.AddProduct(tea)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, tea.ID, lines[0].ProductID)
	assert.Equal(t, rice.ID, lines[1].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestAddProductIgnoresOutOfStock(t *testing.T) {
	dhal := productFixture(4, "Red Dhal", 640, 0)
	cart, _ := setupCart(dhal)

	cart.AddProduct(dhal)

	assert.True(t, cart.IsEmpty())
}

func TestChangeQuantityBounds(t *testing.T) {
	tea := productFixture(1, "Ceylon Tea", 950, 3)
	cart, _ := setupCart(tea)
	cart.AddProduct(tea)

	t.Run("within bounds applies", func(t *testing.T) {
		cart.ChangeQuantity(tea.ID, 2)
		assert.Equal(t, 3, cart.Quantity(tea.ID))
	})

	t.Run("above stock is a no-op", func(t *testing.T) {
		before := cart.Lines()
		cart.ChangeQuantity(tea.ID, 1)
		assert.Equal(t, before, cart.Lines())
	})

	t.Run("below one is a no-op", func(t *testing.T) {
		cart.ChangeQuantity(tea.ID, -2)
		assert.Equal(t, 1, cart.Quantity(tea.ID))
		before := cart.Lines()
		cart.ChangeQuantity(tea.ID, -1)
		assert.Equal(t, before, cart.Lines())
	})

	t.Run("unknown product is a no-op", func(t *testing.T) {
		before := cart.Lines()
		cart.ChangeQuantity(99, 1)
		assert.Equal(t, before, cart.Lines())
	})
}

func TestChangeQuantityReadsLatestSnapshot(t *testing.T) {
	tea := productFixture(1, "Ceylon Tea", 950, 5)
	cart, catalog := setupCart(tea)
	cart.AddProduct(tea)
	cart.ChangeQuantity(tea.ID, 2)
	require.Equal(t, 3, cart.Quantity(tea.ID))

	// A refresh that lowers the stock tightens the bound immediately.
	catalog.ReplaceProducts([]model.Product{productFixture(1, "Ceylon Tea", 950, 3)})
	cart.ChangeQuantity(tea.ID, 1)
	assert.Equal(t, 3, cart.Quantity(tea.ID))

	// And one that raises it loosens the bound.
	catalog.ReplaceProducts([]model.Product{productFixture(1, "Ceylon Tea", 950, 8)})
	cart.ChangeQuantity(tea.ID, 1)
	assert.Equal(t, 4, cart.Quantity(tea.ID))
}

func TestRemoveLine(t *testing.T) {
	tea := productFixture(1, "Ceylon Tea", 950, 5)
	rice := productFixture(2, "Rice", 2890, 5)
	cart, _ := setupCart(tea, rice)
	cart.AddProduct(tea)
	cart.AddProduct(rice)

	cart.RemoveLine(tea.ID)

	require.Equal(t, 1, cart.Len())
	_, found := cart.Line(tea.ID)
	assert.False(t, found)

	totals := service.ComputeTotals(cart.Lines(), service.DefaultTaxRate)
	assert.True(t, totals.Subtotal.Equal(rice.Price), "removed line must contribute nothing")

	cart.RemoveLine(tea.ID) // already gone, no-op
	assert.Equal(t, 1, cart.Len())
}

func TestClear(t *testing.T) {
	tea := productFixture(1, "Ceylon Tea", 950, 5)
	cart, _ := setupCart(tea)
	cart.AddProduct(tea)

	cart.Clear()

	assert.True(t, cart.IsEmpty())
	cart.Clear() // idempotent
	assert.True(t, cart.IsEmpty())
}

func TestLinesReturnsACopy(t *testing.T) {
	tea := productFixture(1, "Ceylon Tea", 950, 5)
	cart, _ := setupCart(tea)
	cart.AddProduct(tea)

	lines := cart.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, cart.Quantity(tea.ID))
}
