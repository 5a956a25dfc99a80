package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"posadmin/pkg/domain/model"
)

// LoadCatalog fetches the customer and product snapshots that seed an
// order-composition session. The two fetches are independent and run
// concurrently.
func LoadCatalog(ctx context.Context, gateway Gateway) (*Catalog, error) {
	var (
		customers []model.Customer
		products  []model.Product
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = gateway.FetchCustomers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = gateway.FetchProducts(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewCatalog(customers, products), nil
}
