package jsonstore

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

var testKeys = Keys{
	Users:    "users.json",
	Products: "products.json",
	Orders:   "orders.json",
}

// failingBucket rejects writes to one key.
type failingBucket struct {
	*blob.Bucket
	failKey string
}

func (b *failingBucket) WriteAll(ctx context.Context, key string, p []byte, opts *blob.WriterOptions) error {
	if key == b.failKey {
		return errors.New("disk full")
	}

	return b.Bucket.WriteAll(ctx, key, p, opts)
}

func newTestBucket(t *testing.T) *blob.Bucket {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	return bucket
}

func newTestStore(bucket Bucket) *Store {
	return NewStore(bucket, testKeys, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seed(t *testing.T, bucket *blob.Bucket, key, content string) {
	require.NoError(t, bucket.WriteAll(context.Background(), key, []byte(content), nil))
}

func readRecords(t *testing.T, bucket *blob.Bucket, key string) []json.RawMessage {
	data, err := bucket.ReadAll(context.Background(), key)
	require.NoError(t, err)

	var records []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &records))

	return records
}

func testOrderRecord(t *testing.T, userID string) *entity.OrderRecord {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	items := []entity.OrderLineItem{
		{ProductID: "P001", Name: "Laptop", Price: decimal.NewFromInt(10), Quantity: 3},
	}
	shipping := entity.ShippingInfo{Name: "Ada", Address: "1 Main Street", Phone: "0400000000", Country: "Australia"}

	order, err := entity.NewOrder(userID, items, shipping, "Cash", now)
	require.NoError(t, err)
	invoice := entity.InvoiceFromOrder(order, decimal.Zero, 14*24*time.Hour, now)
	receipt := entity.ReceiptFromInvoice(invoice, "Cash", now)

	return &entity.OrderRecord{Order: order, Invoice: invoice, Receipt: receipt}
}

func TestProductRepository_MissingCollectionIsEmpty(t *testing.T) {
	repo := NewProductRepository(newTestStore(newTestBucket(t)))

	products, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(newTestStore(newTestBucket(t)))
	product := &entity.Product{
		ProductID: "P001",
		Name:      "Laptop",
		Price:     decimal.RequireFromString("999.99"),
		Category:  "Computers",
		Stock:     5,
	}

	require.NoError(t, repo.Create(ctx, product))
	err := repo.Create(ctx, product)
	assert.ErrorIs(t, err, repository.ErrDuplicateProduct)

	found, err := repo.FindByID(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", found.Name)
	assert.True(t, found.Price.Equal(product.Price))
	assert.Equal(t, 5, found.Stock)

	_, err = repo.FindByID(ctx, "P404")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductRepository_SkipsInvalidRecordsAndKeepsThem(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)
	seed(t, bucket, testKeys.Products, `[
		{"product_id": "P001", "name": "Laptop", "price": 10, "category": "Computers", "stock": 5},
		{"product_id": "P002", "name": "Broken", "price": -1, "category": "Computers", "stock": 5},
		42
	]`)
	repo := NewProductRepository(newTestStore(bucket))

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "P001", products[0].ProductID)

	require.NoError(t, repo.DecrementStock(ctx, "P001", 3))

	records := readRecords(t, bucket, testKeys.Products)
	require.Len(t, records, 3)
	assert.JSONEq(t, `42`, string(records[2]))

	found, err := repo.FindByID(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 2, found.Stock)
}

func TestProductRepository_InvalidRecordStillOwnsItsID(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)
	seed(t, bucket, testKeys.Products, `[{"product_id": "P001", "name": "Laptop", "price": 10, "category": "Computers", "stock": -1}]`)
	repo := NewProductRepository(newTestStore(bucket))
	product := &entity.Product{ProductID: "P001", Name: "Laptop", Price: decimal.NewFromInt(10), Category: "Computers", Stock: 4}

	assert.ErrorIs(t, repo.Create(ctx, product), repository.ErrDuplicateProduct)
	require.Len(t, readRecords(t, bucket, testKeys.Products), 1)

	_, err := repo.FindByID(ctx, "P001")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	require.NoError(t, repo.Update(ctx, product))
	require.Len(t, readRecords(t, bucket, testKeys.Products), 1)
	found, err := repo.FindByID(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 4, found.Stock)

	seed(t, bucket, testKeys.Products, `[{"product_id": "P002", "name": "", "price": 1, "category": "Misc", "stock": 1}]`)
	require.NoError(t, repo.Delete(ctx, "P002"))
	assert.Empty(t, readRecords(t, bucket, testKeys.Products))
}

func TestProductRepository_DecrementStockNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)
	seed(t, bucket, testKeys.Products, `[{"product_id": "P001", "name": "Laptop", "price": 10, "category": "Computers", "stock": 2}]`)
	repo := NewProductRepository(newTestStore(bucket))

	err := repo.DecrementStock(ctx, "P001", 3)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)

	err = repo.DecrementStock(ctx, "P404", 1)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(newTestStore(newTestBucket(t)))
	product := &entity.Product{ProductID: "P001", Name: "Laptop", Price: decimal.NewFromInt(10), Category: "Computers", Stock: 5}
	require.NoError(t, repo.Create(ctx, product))

	product.Name = "Gaming Laptop"
	require.NoError(t, repo.Update(ctx, product))
	found, err := repo.FindByID(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, "Gaming Laptop", found.Name)

	require.NoError(t, repo.Delete(ctx, "P001"))
	assert.ErrorIs(t, repo.Delete(ctx, "P001"), repository.ErrProductNotFound)
	assert.ErrorIs(t, repo.Update(ctx, product), repository.ErrProductNotFound)
}

func TestStore_MalformedCollectionReadsEmptyAndRefusesWrites(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)
	seed(t, bucket, testKeys.Products, `{not json`)
	repo := NewProductRepository(newTestStore(bucket))

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	err = repo.Create(ctx, &entity.Product{ProductID: "P001", Name: "Laptop", Category: "Computers"})
	assert.ErrorIs(t, err, domainerrors.ErrStoreIO)

	data, err := bucket.ReadAll(ctx, testKeys.Products)
	require.NoError(t, err)
	assert.Equal(t, `{not json`, string(data))
}

func TestCustomerRepository_RoundTripsCart(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(newTestStore(newTestBucket(t)))

	customer := entity.NewCustomer("ada", "$2a$12$hash", "ada@example.com", entity.RoleCustomer)
	customer.Cart.Add("P001", 2)
	require.NoError(t, repo.Create(ctx, customer))
	assert.ErrorIs(t, repo.Create(ctx, customer), repository.ErrDuplicateCustomer)

	customer.Cart.Add("P002", 1)
	customer.PhoneNumber = "0400000000"
	require.NoError(t, repo.Update(ctx, customer))

	found, err := repo.FindByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, "0400000000", found.PhoneNumber)
	assert.Equal(t, []entity.CartLine{{ProductID: "P001", Quantity: 2}, {ProductID: "P002", Quantity: 1}}, found.Cart.Lines())

	_, err = repo.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
}

func TestCustomerRepository_LegacyRecordDefaultsToCustomerRole(t *testing.T) {
	bucket := newTestBucket(t)
	seed(t, bucket, testKeys.Users, `[{"username": "bob", "password": "secret", "email": "bob@example.com", "address": "", "phone_number": "", "cart": [{"product_id": "P001", "quantity": 1}, {"product_id": "P001", "quantity": 2}]}]`)
	repo := NewCustomerRepository(newTestStore(bucket))

	found, err := repo.FindByUsername(context.Background(), "bob")

	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, found.Role)
	assert.Equal(t, "secret", found.PasswordHash)
	assert.Equal(t, 3, found.Cart.QuantityOf("P001"))
}

func TestOrderRepository_AppendAndQuery(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(newTestStore(newTestBucket(t)))

	first := testOrderRecord(t, "ada")
	second := testOrderRecord(t, "bob")
	third := testOrderRecord(t, "ada")
	for _, rec := range []*entity.OrderRecord{first, second, third} {
		require.NoError(t, repo.Append(ctx, rec))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.FindByUser(ctx, "ada")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, first.Order.OrderID, mine[0].Order.OrderID)
	assert.Equal(t, third.Order.OrderID, mine[1].Order.OrderID)

	found, err := repo.FindByID(ctx, second.Order.OrderID)
	require.NoError(t, err)
	assert.True(t, found.Order.Total.Equal(decimal.NewFromInt(30)))
	assert.True(t, found.Invoice.TotalAmount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, second.Receipt.TransactionReference, found.Receipt.TransactionReference)
	assert.True(t, found.Order.OrderDate.Equal(second.Order.OrderDate))
	assert.NoError(t, found.Receipt.ValidatePayment())

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestTransactionManager_DiscardsOnError(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)
	seed(t, bucket, testKeys.Products, `[{"product_id": "P001", "name": "Laptop", "price": 10, "category": "Computers", "stock": 5}]`)
	store := newTestStore(bucket)
	tm := NewTransactionManager(store)

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.ProductRepo().DecrementStock(ctx, "P001", 3); err != nil {
			return err
		}
		if err := f.OrderRepo().Append(ctx, testOrderRecord(t, "ada")); err != nil {
			return err
		}

		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	product, err := NewProductRepository(store).FindByID(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)

	exists, err := bucket.Exists(ctx, testKeys.Orders)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTransactionManager_SharesOneSession(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)
	store := newTestStore(bucket)
	tm := NewTransactionManager(store)

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		product := &entity.Product{ProductID: "P001", Name: "Laptop", Price: decimal.NewFromInt(10), Category: "Computers", Stock: 5}
		if err := f.ProductRepo().Create(ctx, product); err != nil {
			return err
		}

		return f.ProductRepo().DecrementStock(ctx, "P001", 1)
	})
	require.NoError(t, err)

	product, err := NewProductRepository(store).FindByID(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 4, product.Stock)
}

func TestTransactionManager_RestoresWrittenCollectionsOnFailedCommit(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)
	seed(t, bucket, testKeys.Products, `[{"product_id": "P001", "name": "Laptop", "price": 10, "category": "Computers", "stock": 5}]`)
	seed(t, bucket, testKeys.Users, `[{"username": "ada", "password": "x", "email": "a@example.com", "role": "customer", "address": "", "phone_number": "", "cart": [{"product_id": "P001", "quantity": 3}]}]`)
	store := newTestStore(&failingBucket{Bucket: bucket, failKey: testKeys.Users})
	tm := NewTransactionManager(store)

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		customer, err := f.CustomerRepo().FindByUsername(ctx, "ada")
		if err != nil {
			return err
		}
		if err := f.ProductRepo().DecrementStock(ctx, "P001", 3); err != nil {
			return err
		}
		if err := f.OrderRepo().Append(ctx, testOrderRecord(t, "ada")); err != nil {
			return err
		}
		customer.Cart.Clear()

		return f.CustomerRepo().Update(ctx, customer)
	})
	require.ErrorIs(t, err, domainerrors.ErrStoreIO)

	reader := newTestStore(bucket)
	product, err := NewProductRepository(reader).FindByID(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, 5, product.Stock)

	customer, err := NewCustomerRepository(reader).FindByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, 3, customer.Cart.QuantityOf("P001"))

	exists, err := bucket.Exists(ctx, testKeys.Orders)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInspect_ReportsCollections(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)
	seed(t, bucket, testKeys.Products, `[{"product_id": "P001"}, {"product_id": "P002"}]`)
	seed(t, bucket, testKeys.Orders, `{broken`)

	infos, err := Inspect(ctx, bucket, testKeys)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	assert.Equal(t, testKeys.Users, infos[0].Key)
	assert.False(t, infos[0].Exists)

	assert.True(t, infos[1].Exists)
	assert.Equal(t, 2, infos[1].Records)
	assert.Len(t, infos[1].Checksum, 64)

	assert.Equal(t, -1, infos[2].Records)
}
