package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
)

func (c *cli) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.errOut)

	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errors.Wrapf(err, "failed to parse %s flags", fs.Name())
	}

	return nil
}

func requireFlags(fs *flag.FlagSet, names ...string) error {
	for _, name := range names {
		if f := fs.Lookup(name); f == nil || strings.TrimSpace(f.Value.String()) == "" {
			return errors.Errorf("-%s is required", name)
		}
	}

	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func (c *cli) products(ctx context.Context, args []string) error {
	fs := c.newFlagSet("products")
	category := fs.String("category", "", "Only list products in this category")
	search := fs.String("search", "", "Case-insensitive match on name, description or category")
	stock := fs.String("stock", "", "Stock tier: available, low or out")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	products, err := c.catalogue.ListProducts(ctx, &usecase.ListProductsInput{
		Category: *category,
		Search:   *search,
		Stock:    usecase.StockFilter(*stock),
	})
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(c.out, "No products found.")

		return nil
	}

	tw := newTable(c.out)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", p.ProductID, p.Name, p.Category, money(p.Price), p.Stock)
	}

	return tw.Flush()
}

func (c *cli) categories(ctx context.Context, args []string) error {
	if err := parseFlags(c.newFlagSet("categories"), args); err != nil {
		return err
	}

	summaries, err := c.catalogue.ListCategories(ctx)
	if err != nil {
		return err
	}

	tw := newTable(c.out)
	fmt.Fprintln(tw, "CATEGORY\tPRODUCTS\tSTOCK")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", s.Category, s.ProductCount, s.TotalStock)
	}

	return tw.Flush()
}

func (c *cli) addProduct(ctx context.Context, args []string) error {
	fs := c.newFlagSet("add-product")
	id := fs.String("id", "", "Product id, e.g. P010")
	name := fs.String("name", "", "Display name")
	price := fs.String("price", "", "Unit price, e.g. 199.99")
	category := fs.String("category", "", "Category")
	stock := fs.Int("stock", 0, "Units on hand")
	description := fs.String("description", "", "Optional description")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "id", "name", "price", "category"); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(*price)
	if err != nil {
		return errors.Wrapf(err, "invalid price %q", *price)
	}

	product, err := c.admin.AddProduct(ctx, &usecase.AddProductInput{
		ProductID:   *id,
		Name:        *name,
		Price:       amount,
		Category:    *category,
		Stock:       *stock,
		Description: *description,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added %s %s at %s with %d in stock\n", product.ProductID, product.Name, money(product.Price), product.Stock)

	return nil
}

func (c *cli) updateStock(ctx context.Context, args []string) error {
	fs := c.newFlagSet("update-stock")
	id := fs.String("id", "", "Product id")
	stock := fs.Int("stock", -1, "New units on hand")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "id"); err != nil {
		return err
	}

	product, err := c.admin.UpdateStock(ctx, *id, *stock)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Stock of %s is now %d\n", product.ProductID, product.Stock)

	return nil
}

func (c *cli) deleteProduct(ctx context.Context, args []string) error {
	fs := c.newFlagSet("delete-product")
	id := fs.String("id", "", "Product id")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "id"); err != nil {
		return err
	}

	if err := c.admin.DeleteProduct(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted %s\n", *id)

	return nil
}

func (c *cli) salesReport(ctx context.Context, args []string) error {
	if err := parseFlags(c.newFlagSet("sales-report"), args); err != nil {
		return err
	}

	report, err := c.admin.SalesReport(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Orders:  %d\n", report.OrderCount)
	fmt.Fprintf(c.out, "Units:   %d\n", report.UnitsSold)
	fmt.Fprintf(c.out, "Revenue: %s\n", money(report.TotalRevenue))
	if len(report.Products) == 0 {
		return nil
	}

	fmt.Fprintln(c.out)
	tw := newTable(c.out)
	fmt.Fprintln(tw, "ID\tNAME\tUNITS\tREVENUE")
	for _, p := range report.Products {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.ProductID, p.Name, p.UnitsSold, money(p.Revenue))
	}

	return tw.Flush()
}
