package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"posadmin/pkg/domain/model"
	"posadmin/pkg/domain/service"
	"posadmin/pkg/infrastructure/event"
)

// runOrder drives one order-composition session: load the catalog snapshots,
// pick a customer, build the cart against live stock bounds, submit. The cart
// lives only for this session and is discarded when the command returns.
func runOrder(c *cli.Context) error {
	e, err := buildEnv(c)
	if err != nil {
		return err
	}
	taxRate, err := e.cfg.ParseTaxRate()
	if err != nil {
		return err
	}

	catalog, err := service.LoadCatalog(c.Context, e.client)
	if err != nil {
		return err
	}
	cart := service.NewCart(catalog)
	checkout := service.NewCheckoutService(e.client, catalog, cart, event.NewLogDispatcher(e.logger), e.logger)

	fmt.Printf("%d customers available, %d products in stock\n",
		len(catalog.Customers()), catalog.InStockCount())
	printHelp()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()

		case "customers":
			matches := catalog.SearchCustomers(strings.Join(fields[1:], " "))
			if len(matches) == 0 {
				fmt.Println("No customers found")
				continue
			}
			for _, cust := range matches {
				fmt.Printf("%4d  %-24s %-28s %s\n", cust.ID, cust.Name, cust.Email, cust.Phone)
			}

		case "customer":
			id, ok := parseID(fields, "usage: customer <id>")
			if !ok {
				continue
			}
			cust, found := findCustomer(catalog, id)
			if !found {
				fmt.Println("No such customer")
				continue
			}
			checkout.SelectCustomer(cust)
			fmt.Printf("Customer: %s (%s)\n", cust.Name, cust.Phone)

		case "change":
			checkout.ClearCustomer()
			fmt.Println("Customer cleared")

		case "find":
			matches := catalog.SearchProducts(strings.Join(fields[1:], " "))
			if len(matches) == 0 {
				fmt.Println("No products found")
				continue
			}
			for _, p := range matches {
				inCart := ""
				if qty := cart.Quantity(p.ID); qty > 0 {
					inCart = fmt.Sprintf("  in cart: %d", qty)
				}
				fmt.Printf("%4d  %-28s Rs. %10s  stock %d%s\n",
					p.ID, p.Name, p.Price.StringFixed(2), p.Stock, inCart)
			}

		case "add":
			id, ok := parseID(fields, "usage: add <product-id>")
			if !ok {
				continue
			}
			p, found := catalog.FindProduct(id)
			if !found {
				fmt.Println("No such product")
				continue
			}
			before := cart.Quantity(id)
			cart.AddProduct(p)
			if cart.Quantity(id) == before {
				fmt.Println("Max quantity reached")
			} else {
				fmt.Printf("%s x%d\n", p.Name, cart.Quantity(id))
			}

		case "qty":
			if len(fields) != 3 {
				fmt.Println("usage: qty <product-id> <delta>")
				continue
			}
			id, ok := parseID(fields[:2], "usage: qty <product-id> <delta>")
			if !ok {
				continue
			}
			delta, err := strconv.Atoi(fields[2])
			if err != nil {
				fmt.Println("usage: qty <product-id> <delta>")
				continue
			}
			before := cart.Quantity(id)
			cart.ChangeQuantity(id, delta)
			if after := cart.Quantity(id); after == before {
				fmt.Println("No change (quantity must stay between 1 and available stock)")
			} else {
				fmt.Printf("Quantity: %d\n", after)
			}

		case "remove":
			id, ok := parseID(fields, "usage: remove <product-id>")
			if !ok {
				continue
			}
			cart.RemoveLine(id)
			fmt.Println("Removed")

		case "clear":
			cart.Clear()
			fmt.Println("Cart cleared")

		case "show":
			printCart(checkout, cart, catalog, taxRate)

		case "submit":
			result, err := checkout.Submit(c.Context)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(result.Message)
			if result.Committed {
				fmt.Printf("Order #%d  Rs. %s\n", result.Order.ID, result.Order.Total.StringFixed(2))
				return nil
			}

		case "quit", "exit":
			return nil

		default:
			fmt.Println("Unknown command; try 'help'")
		}
	}
}

func printHelp() {
	fmt.Print(`commands:
  customers <query>    search customers by name, email or phone
  customer <id>        select the customer for this order
  change               clear the selected customer
  find <query>         search in-stock products by name
  add <id>             add a product (or one more of it) to the cart
  qty <id> <delta>     change a line quantity, e.g. qty 3 -1
  remove <id>          remove a line from the cart
  clear                empty the cart
  show                 show the cart and totals
  submit               submit the order
  quit                 abandon the session
`)
}

func printCart(checkout *service.CheckoutService, cart *service.Cart, catalog *service.Catalog, taxRate decimal.Decimal) {
	if cust, ok := checkout.SelectedCustomer(); ok {
		fmt.Printf("Customer: %s (%s)\n", cust.Name, cust.Phone)
	} else {
		fmt.Println("Customer: none selected")
	}

	lines := cart.Lines()
	if len(lines) == 0 {
		fmt.Println("No items added")
		return
	}
	for _, l := range lines {
		hint := ""
		if remaining := catalog.StockOf(l.ProductID) - l.Quantity; remaining > 0 && remaining < 5 {
			hint = fmt.Sprintf("  (only %d left)", remaining)
		}
		fmt.Printf("%4d  %-28s %3d x Rs. %10s = Rs. %10s%s\n",
			l.ProductID, l.Name, l.Quantity, l.UnitPrice.StringFixed(2), l.Total().StringFixed(2), hint)
	}

	totals := service.ComputeTotals(lines, taxRate)
	fmt.Printf("Subtotal   Rs. %s\n", totals.Subtotal.StringFixed(2))
	fmt.Printf("Tax (%s%%)  Rs. %s\n", taxRate.Mul(decimal.NewFromInt(100)).String(), totals.Tax.StringFixed(2))
	fmt.Printf("Total      Rs. %s\n", totals.Total.StringFixed(2))
}

func parseID(fields []string, usage string) (uint, bool) {
	if len(fields) < 2 {
		fmt.Println(usage)
		return 0, false
	}
	id, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		fmt.Println(usage)
		return 0, false
	}
	return uint(id), true
}

func findCustomer(catalog *service.Catalog, id uint) (model.Customer, bool) {
	for _, cust := range catalog.Customers() {
		if cust.ID == id {
			return cust, true
		}
	}
	return model.Customer{}, false
}
