package main

import (
	"context"
	"fmt"
	"os"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"
	"storefront/internal/usecase"
)

// The CLI runs with operator rights, so order lookups are not scoped to one account.
var operator = usecase.Requester{Username: "storefrontctl", IsAdmin: true}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := c.newFlagSet("register")
	username := fs.String("username", "", "Account name")
	password := fs.String("password", "", "Password, at least 6 characters")
	email := fs.String("email", "", "Email address")
	fullName := fs.String("name", "", "Full name")
	address := fs.String("address", "", "Postal address")
	phone := fs.String("phone", "", "Phone number")
	admin := fs.Bool("admin", false, "Create an admin account")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "username", "password"); err != nil {
		return err
	}

	role := entity.RoleCustomer
	if *admin {
		role = entity.RoleAdmin
	}
	customer, err := c.accounts.Register(ctx, &usecase.RegisterInput{
		Username:    *username,
		Password:    *password,
		Email:       *email,
		FullName:    *fullName,
		Address:     *address,
		PhoneNumber: *phone,
		Role:        role,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Registered %s (%s)\n", customer.Username, customer.Role)

	return nil
}

func (c *cli) cartAdd(ctx context.Context, args []string) error {
	fs := c.newFlagSet("cart-add")
	user := fs.String("user", "", "Account name")
	product := fs.String("product", "", "Product id")
	quantity := fs.Int("qty", 1, "Units to add")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "user", "product"); err != nil {
		return err
	}

	view, err := c.cart.AddToCart(ctx, *user, &usecase.AddToCartInput{ProductID: *product, Quantity: *quantity})
	if err != nil {
		return err
	}

	return c.printCart(view)
}

func (c *cli) cartRemove(ctx context.Context, args []string) error {
	fs := c.newFlagSet("cart-remove")
	user := fs.String("user", "", "Account name")
	product := fs.String("product", "", "Product id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "user", "product"); err != nil {
		return err
	}

	view, err := c.cart.RemoveFromCart(ctx, *user, *product)
	if err != nil {
		return err
	}

	return c.printCart(view)
}

func (c *cli) cartUpdate(ctx context.Context, args []string) error {
	fs := c.newFlagSet("cart-update")
	user := fs.String("user", "", "Account name")
	product := fs.String("product", "", "Product id")
	quantity := fs.Int("qty", 0, "New quantity; 0 removes the line")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "user", "product"); err != nil {
		return err
	}

	view, err := c.cart.UpdateCartItem(ctx, *user, &usecase.UpdateCartItemInput{ProductID: *product, Quantity: *quantity})
	if err != nil {
		return err
	}

	return c.printCart(view)
}

func (c *cli) cartShow(ctx context.Context, args []string) error {
	fs := c.newFlagSet("cart-show")
	user := fs.String("user", "", "Account name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "user"); err != nil {
		return err
	}

	view, err := c.cart.ViewCart(ctx, *user)
	if err != nil {
		return err
	}

	return c.printCart(view)
}

func (c *cli) printCart(view *usecase.CartView) error {
	if len(view.Lines) == 0 {
		fmt.Fprintf(c.out, "Cart of %s is empty.\n", view.Username)

		return nil
	}

	tw := newTable(c.out)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY\tTOTAL")
	for _, line := range view.Lines {
		if line.Missing {
			fmt.Fprintf(tw, "%s\t(no longer available)\t-\t%d\t-\n", line.ProductID, line.Quantity)

			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", line.ProductID, line.Name, money(line.UnitPrice), line.Quantity, money(line.LineTotal))
	}
	if err := tw.Flush(); err != nil {
		return errors.WithStack(err)
	}
	fmt.Fprintf(c.out, "%d items, subtotal %s\n", view.TotalItems, money(view.Subtotal))

	return nil
}

func (c *cli) checkout(ctx context.Context, args []string) error {
	fs := c.newFlagSet("checkout")
	user := fs.String("user", "", "Account name")
	name := fs.String("ship-name", "", "Recipient name")
	address := fs.String("ship-address", "", "Street address")
	phone := fs.String("ship-phone", "", "Contact phone, at least 10 characters")
	city := fs.String("ship-city", "", "City")
	state := fs.String("ship-state", "", "State")
	postalCode := fs.String("ship-postcode", "", "Postal code")
	country := fs.String("ship-country", "", "Country, defaults to "+entity.DefaultCountry)
	method := fs.String("payment", string(entity.PaymentCash), "Payment method: paypal, credit_card or cash")
	holder := fs.String("holder", "", "PayPal email or cardholder name")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "user"); err != nil {
		return err
	}

	record, err := c.checkouts.Checkout(ctx, &usecase.CheckoutInput{
		Username: *user,
		Shipping: entity.ShippingInfo{
			Name:       *name,
			Address:    *address,
			Phone:      *phone,
			City:       *city,
			State:      *state,
			PostalCode: *postalCode,
			Country:    *country,
		},
		Payment: entity.Payment{Method: entity.PaymentMethod(*method), AccountHolder: *holder},
	})
	if err != nil {
		return err
	}

	return c.printOrder(record)
}

func (c *cli) orders(ctx context.Context, args []string) error {
	fs := c.newFlagSet("orders")
	user := fs.String("user", "", "List the orders of this account")
	orderID := fs.String("id", "", "Show one order in full")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *orderID != "" {
		record, err := c.orderUC.GetOrder(ctx, operator, *orderID)
		if err != nil {
			return err
		}

		return c.printOrder(record)
	}
	if err := requireFlags(fs, "user"); err != nil {
		return errors.WithMessage(err, "pass -user or -id")
	}

	records, err := c.orderUC.ListOrders(ctx, *user)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(c.out, "No orders for %s.\n", *user)

		return nil
	}

	tw := newTable(c.out)
	fmt.Fprintln(tw, "ORDER\tDATE\tITEMS\tTOTAL\tSTATUS")
	for _, record := range records {
		order := record.Order
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			order.OrderID, order.OrderDate.Format("2006-01-02 15:04"), order.ItemCount(), money(order.Total), order.Status)
	}

	return tw.Flush()
}

func (c *cli) printOrder(record *entity.OrderRecord) error {
	order := record.Order
	fmt.Fprintf(c.out, "Order    %s (%s)\n", order.OrderID, order.Status)
	fmt.Fprintf(c.out, "Customer %s\n", order.UserID)
	fmt.Fprintf(c.out, "Placed   %s\n", order.OrderDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(c.out, "Ship to  %s, %s\n", order.Shipping.Name, order.Shipping.FormattedAddress())
	fmt.Fprintf(c.out, "Payment  %s\n", order.PaymentMethod)
	fmt.Fprintln(c.out)

	tw := newTable(c.out)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY\tTOTAL")
	for _, item := range order.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", item.ProductID, item.Name, money(item.Price), item.Quantity, money(item.LineTotal()))
	}
	if err := tw.Flush(); err != nil {
		return errors.WithStack(err)
	}
	fmt.Fprintln(c.out)

	if invoice := record.Invoice; invoice != nil {
		fmt.Fprintf(c.out, "Invoice  %s subtotal %s tax %s total %s due %s\n",
			invoice.InvoiceID, money(invoice.Subtotal), money(invoice.TaxAmount), money(invoice.TotalAmount),
			invoice.DueDate.Format("2006-01-02"))
	}
	if receipt := record.Receipt; receipt != nil {
		fmt.Fprintf(c.out, "Receipt  %s paid %s ref %s\n", receipt.ReceiptID, money(receipt.AmountPaid), receipt.TransactionReference)
	}

	return nil
}

func (c *cli) receiptQR(ctx context.Context, args []string) error {
	fs := c.newFlagSet("receipt-qr")
	orderID := fs.String("id", "", "Order id")
	output := fs.String("out", "", "PNG file to write, defaults to receipt-<id>.png")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "id"); err != nil {
		return err
	}

	png, err := c.orderUC.ReceiptQR(ctx, operator, *orderID)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = "receipt-" + *orderID + ".png"
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	fmt.Fprintf(c.out, "Wrote %s (%d bytes)\n", path, len(png))

	return nil
}
