package impl

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/jsonstore"
	"storefront/internal/usecase"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

var featureKeys = jsonstore.Keys{
	Users:    "users.json",
	Products: "products.json",
	Orders:   "orders.json",
}

// rejectingBucket fails every write to rejectKey once it is set.
type rejectingBucket struct {
	*blob.Bucket
	rejectKey string
}

func (b *rejectingBucket) WriteAll(ctx context.Context, key string, p []byte, opts *blob.WriterOptions) error {
	if b.rejectKey != "" && key == b.rejectKey {
		return errors.New("disk full")
	}

	return b.Bucket.WriteAll(ctx, key, p, opts)
}

type checkoutFeature struct {
	bucket    *rejectingBucket
	products  repository.ProductRepository
	customers repository.CustomerRepository
	cart      usecase.CartUsecase
	checkout  usecase.CheckoutUsecase
	orders    usecase.OrderUsecase
	admin     usecase.AdminUsecase

	record *entity.OrderRecord
	err    error
}

func (f *checkoutFeature) reset() {
	if f.bucket != nil {
		_ = f.bucket.Close()
	}

	f.bucket = &rejectingBucket{Bucket: memblob.OpenBucket(nil)}
	store := jsonstore.NewStore(f.bucket, featureKeys, discardLogger())
	txManager := jsonstore.NewTransactionManager(store)
	orderRepo := jsonstore.NewOrderRepository(store)

	f.products = jsonstore.NewProductRepository(store)
	f.customers = jsonstore.NewCustomerRepository(store)
	f.cart = NewCartService(CartServiceParams{
		TxManager:    txManager,
		CustomerRepo: f.customers,
		ProductRepo:  f.products,
		Logger:       discardLogger(),
	})
	f.checkout = NewCheckoutService(CheckoutServiceParams{TxManager: txManager, Logger: discardLogger()})
	f.orders = NewOrderService(orderRepo, nil, discardLogger())
	f.admin = NewAdminService(txManager, orderRepo, discardLogger())
	f.record = nil
	f.err = nil
}

func (f *checkoutFeature) aProduct(productID, name, price string, stock int) error {
	_, err := f.admin.AddProduct(context.Background(), &usecase.AddProductInput{
		ProductID: productID,
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  "General",
		Stock:     stock,
	})

	return err
}

func (f *checkoutFeature) aCustomer(username string) error {
	return f.customers.Create(context.Background(), entity.NewCustomer(username, "$2a$04$hash", "", entity.RoleCustomer))
}

func (f *checkoutFeature) addsToCart(username string, quantity int, productID string) error {
	_, err := f.cart.AddToCart(context.Background(), username, &usecase.AddToCartInput{ProductID: productID, Quantity: quantity})

	return err
}

func (f *checkoutFeature) productIsDeleted(productID string) error {
	return f.admin.DeleteProduct(context.Background(), productID)
}

func (f *checkoutFeature) orderStoreRejectsWrites() error {
	f.bucket.rejectKey = featureKeys.Orders

	return nil
}

func (f *checkoutFeature) checksOut(username string) error {
	input := validCheckoutInput()
	input.Username = username
	f.record, f.err = f.checkout.Checkout(context.Background(), input)

	return nil
}

func (f *checkoutFeature) checkoutSucceeds() error {
	if f.err != nil {
		return errors.Errorf("expected checkout to succeed, got %v", f.err)
	}

	return nil
}

func (f *checkoutFeature) checkoutFailsWith(code string) error {
	if f.err == nil {
		return errors.New("expected checkout to fail")
	}
	var appErr domainerrors.AppError
	if !errors.As(f.err, &appErr) {
		return errors.Errorf("expected an application error, got %v", f.err)
	}
	if appErr.ErrorCode() != code {
		return errors.Errorf("expected error code %s, got %s", code, appErr.ErrorCode())
	}

	return nil
}

func (f *checkoutFeature) errorNames(productID string) error {
	var appErr domainerrors.AppError
	if !errors.As(f.err, &appErr) || !strings.Contains(appErr.Details(), productID) {
		return errors.Errorf("expected the error to name %s, got %v", productID, f.err)
	}

	return nil
}

func (f *checkoutFeature) orderTotalIs(total string) error {
	return expectAmount("order total", f.record.Order.Total, total)
}

func (f *checkoutFeature) invoiceAmountsAre(subtotal, tax string) error {
	if err := expectAmount("invoice subtotal", f.record.Invoice.Subtotal, subtotal); err != nil {
		return err
	}

	return expectAmount("invoice tax", f.record.Invoice.TaxAmount, tax)
}

func (f *checkoutFeature) receiptAmountPaidIs(amount string) error {
	return expectAmount("amount paid", f.record.Receipt.AmountPaid, amount)
}

func (f *checkoutFeature) cartIsEmpty(username string) error {
	customer, err := f.customers.FindByUsername(context.Background(), username)
	if err != nil {
		return err
	}
	if !customer.Cart.IsEmpty() {
		return errors.Errorf("expected an empty cart, got %d items", customer.Cart.TotalItems())
	}

	return nil
}

func (f *checkoutFeature) cartHolds(username string, quantity int, productID string) error {
	customer, err := f.customers.FindByUsername(context.Background(), username)
	if err != nil {
		return err
	}
	if got := customer.Cart.QuantityOf(productID); got != quantity {
		return errors.Errorf("expected %d of %s in the cart, got %d", quantity, productID, got)
	}

	return nil
}

func (f *checkoutFeature) stockIs(productID string, stock int) error {
	product, err := f.products.FindByID(context.Background(), productID)
	if err != nil {
		return err
	}
	if product.Stock != stock {
		return errors.Errorf("expected stock %d for %s, got %d", stock, productID, product.Stock)
	}

	return nil
}

func (f *checkoutFeature) hasOrdersWithDistinctIDs(username string, count int) error {
	records, err := f.orders.ListOrders(context.Background(), username)
	if err != nil {
		return err
	}
	if len(records) != count {
		return errors.Errorf("expected %d orders, got %d", count, len(records))
	}
	seen := make(map[string]bool, len(records))
	for _, record := range records {
		if seen[record.Order.OrderID] {
			return errors.Errorf("order id %s recorded twice", record.Order.OrderID)
		}
		seen[record.Order.OrderID] = true
	}

	return nil
}

func (f *checkoutFeature) hasNoOrders(username string) error {
	return f.hasOrdersWithDistinctIDs(username, 0)
}

func expectAmount(label string, got decimal.Decimal, want string) error {
	if got.StringFixed(2) != want {
		return errors.Errorf("expected %s %s, got %s", label, want, got.StringFixed(2))
	}

	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	f := &checkoutFeature{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		f.reset()

		return ctx, nil
	})

	ctx.Step(`^a product "([^"]*)" named "([^"]*)" priced ([\d.]+) with stock (\d+)$`, f.aProduct)
	ctx.Step(`^a customer "([^"]*)"$`, f.aCustomer)
	ctx.Step(`^"([^"]*)" adds (\d+) of "([^"]*)" to the cart$`, f.addsToCart)
	ctx.Step(`^the product "([^"]*)" is deleted$`, f.productIsDeleted)
	ctx.Step(`^the order store rejects writes$`, f.orderStoreRejectsWrites)
	ctx.Step(`^"([^"]*)" checks out$`, f.checksOut)
	ctx.Step(`^the checkout succeeds$`, f.checkoutSucceeds)
	ctx.Step(`^the checkout fails with "([^"]*)"$`, f.checkoutFailsWith)
	ctx.Step(`^the error names "([^"]*)"$`, f.errorNames)
	ctx.Step(`^the order total is ([\d.]+)$`, f.orderTotalIs)
	ctx.Step(`^the invoice subtotal is ([\d.]+) with tax ([\d.]+)$`, f.invoiceAmountsAre)
	ctx.Step(`^the receipt amount paid is ([\d.]+)$`, f.receiptAmountPaidIs)
	ctx.Step(`^the cart of "([^"]*)" is empty$`, f.cartIsEmpty)
	ctx.Step(`^the cart of "([^"]*)" holds (\d+) of "([^"]*)"$`, f.cartHolds)
	ctx.Step(`^the stock of "([^"]*)" is (\d+)$`, f.stockIs)
	ctx.Step(`^"([^"]*)" has (\d+) orders with distinct ids$`, f.hasOrdersWithDistinctIDs)
	ctx.Step(`^"([^"]*)" has no orders$`, f.hasNoOrders)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if status := suite.Run(); status != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests: " + strconv.Itoa(status))
	}
}
