package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"posadmin/pkg/config"
	"posadmin/pkg/domain/model"
	"posadmin/pkg/infrastructure/api"
	"posadmin/pkg/transport"
)

func main() {
	app := &cli.App{
		Name:  "pos",
		Usage: "retail point-of-sale admin client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api",
				Usage: "POS API base URL (overrides POS_API_BASE_URL)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "order",
				Usage:  "compose and submit a new order interactively",
				Action: runOrder,
			},
			{
				Name:   "customers",
				Usage:  "list customers",
				Action: runCustomers,
			},
			{
				Name:   "products",
				Usage:  "list products",
				Action: runProducts,
			},
			{
				Name:   "orders",
				Usage:  "list committed orders",
				Action: runOrders,
			},
			{
				Name:   "stub",
				Usage:  "run a local stub POS API with seeded data",
				Action: runStub,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type env struct {
	cfg    *config.Config
	logger *log.Logger
	client *api.Client
}

func buildEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if base := c.String("api"); base != "" {
		cfg.APIBaseURL = base
	}

	logger := log.New()
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	logger.SetLevel(level)

	return &env{
		cfg:    cfg,
		logger: logger,
		client: api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, logger),
	}, nil
}

func runCustomers(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	customers, err := e.client.FetchCustomers(c.Context)
	if err != nil {
		return err
	}
	for _, cust := range customers {
		fmt.Printf("%4d  %-24s %-28s %s\n", cust.ID, cust.Name, cust.Email, cust.Phone)
	}
	return nil
}

func runProducts(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	products, err := e.client.FetchProducts(c.Context)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%4d  %-28s Rs. %10s  stock %d\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	}
	return nil
}

func runOrders(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	orders, err := e.client.FetchOrders(c.Context)
	if err != nil {
		return err
	}
	for _, o := range orders {
		fmt.Printf("#%-5d customer %-4d %2d item(s)  Rs. %10s  %s\n",
			o.ID, o.CustomerID, len(o.Items), o.Total.StringFixed(2), o.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runStub(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}

	store := transport.NewStore(seedCustomers(), seedProducts())
	e.logger.WithField("addr", e.cfg.ListenAddr).Info("stub POS API listening")
	return http.ListenAndServe(e.cfg.ListenAddr, transport.Router(store, e.logger))
}

func seedCustomers() []model.Customer {
	return []model.Customer{
		{ID: 1, Name: "Nimal Perera", Email: "nimal@example.com", Phone: "0771234567"},
		{ID: 2, Name: "Sunethra Silva", Email: "sunethra@example.com", Phone: "0719876543"},
		{ID: 3, Name: "Kasun Fernando", Email: "kasun@example.com", Phone: "0765554433"},
	}
}

func seedProducts() []model.Product {
	return []model.Product{
		{ID: 1, Name: "Ceylon Tea 400g", Price: decimal.NewFromFloat(950.00), Stock: 24},
		{ID: 2, Name: "Basmathi Rice 5kg", Price: decimal.NewFromFloat(2890.00), Stock: 10},
		{ID: 3, Name: "Coconut Oil 1L", Price: decimal.NewFromFloat(1150.50), Stock: 3},
		{ID: 4, Name: "Red Dhal 1kg", Price: decimal.NewFromFloat(640.00), Stock: 0},
	}
}
