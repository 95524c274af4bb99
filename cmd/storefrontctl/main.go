package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"storefront/internal/errors"
)

// command is one storefrontctl subcommand.
type command struct {
	summary string
	run     func(c *cli, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"products":       {summary: "List products, optionally filtered", run: (*cli).products},
	"categories":     {summary: "List categories with product counts", run: (*cli).categories},
	"add-product":    {summary: "Add a product to the catalogue", run: (*cli).addProduct},
	"update-stock":   {summary: "Set the units on hand of a product", run: (*cli).updateStock},
	"delete-product": {summary: "Remove a product from the catalogue", run: (*cli).deleteProduct},
	"register":       {summary: "Create a customer or admin account", run: (*cli).register},
	"cart-add":       {summary: "Add units of a product to a cart", run: (*cli).cartAdd},
	"cart-remove":    {summary: "Remove a product from a cart", run: (*cli).cartRemove},
	"cart-update":    {summary: "Set the quantity of a cart line", run: (*cli).cartUpdate},
	"cart-show":      {summary: "Show a priced cart", run: (*cli).cartShow},
	"checkout":       {summary: "Place an order from a cart", run: (*cli).checkout},
	"orders":         {summary: "List the orders of an account, or show one order", run: (*cli).orders},
	"receipt-qr":     {summary: "Write the receipt QR code of an order as PNG", run: (*cli).receiptQR},
	"sales-report":   {summary: "Summarise revenue across all orders", run: (*cli).salesReport},
	"store-info":     {summary: "Show size, age and checksum of the stored collections", run: (*cli).storeInfo},
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)

		return errors.New("missing subcommand")
	}

	cmd, ok := commands[args[0]]
	if !ok {
		printUsage(stderr)

		return errors.Errorf("unknown subcommand %q", args[0])
	}

	app, c, err := startApp(ctx, stdout, stderr)
	if err != nil {
		return err
	}
	defer stopApp(app, stderr)

	return cmd.run(c, ctx, args[1:])
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Usage: storefrontctl <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-16s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Use 'storefrontctl <command> -h' for more information about a command.")
}
