package sales

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ecommetrics/ecom-metrics-backend/pkg/db/models"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/enums"
)

func setupSalesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	platforms := `
CREATE TABLE IF NOT EXISTS platforms (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  description TEXT
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL
);`
	customers := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL
);`
	addresses := `
CREATE TABLE IF NOT EXISTS addresses (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  street TEXT,
  city TEXT NOT NULL,
  state TEXT NOT NULL,
  pin_code TEXT
);`
	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  customer_id TEXT NOT NULL,
  quantity_sold INTEGER NOT NULL,
  selling_price NUMERIC NOT NULL,
  total_sale_value NUMERIC NOT NULL,
  date_of_sale DATETIME NOT NULL,
  platform_id INTEGER NOT NULL,
  seller_id TEXT NOT NULL,
  additional_data TEXT,
  UNIQUE (order_id, product_id)
);`
	deliveries := `
CREATE TABLE IF NOT EXISTS deliveries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL UNIQUE,
  address_id INTEGER NOT NULL,
  delivery_date DATETIME NOT NULL,
  delivery_status TEXT NOT NULL,
  delivery_partner TEXT NOT NULL
);`
	require.NoError(t, db.Exec(platforms).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(customers).Error)
	require.NoError(t, db.Exec(addresses).Error)
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(deliveries).Error)
	return db
}

func seedPlatform(t *testing.T, db *gorm.DB, name string) *models.Platform {
	t.Helper()

	platform := &models.Platform{Name: name}
	require.NoError(t, db.Create(platform).Error)
	return platform
}

func seedProduct(t *testing.T, db *gorm.DB, id, name, category string) *models.Product {
	t.Helper()

	product := &models.Product{ID: id, Name: name, Category: category}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCustomer(t *testing.T, db *gorm.DB, id, name string) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		ID:    id,
		Name:  name,
		Email: id + "@example.com",
		Phone: "5550100",
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedAddress(t *testing.T, db *gorm.DB, city, state string) *models.Address {
	t.Helper()

	address := &models.Address{City: city, State: state}
	require.NoError(t, db.Create(address).Error)
	return address
}

type orderSeed struct {
	orderID  string
	product  *models.Product
	customer *models.Customer
	platform *models.Platform
	quantity int
	price    string
	total    string
	soldOn   time.Time
}

func seedOrder(t *testing.T, db *gorm.DB, seed orderSeed) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderID:        seed.orderID,
		ProductID:      seed.product.ID,
		CustomerID:     seed.customer.ID,
		QuantitySold:   seed.quantity,
		SellingPrice:   decimal.RequireFromString(seed.price),
		TotalSaleValue: decimal.RequireFromString(seed.total),
		DateOfSale:     seed.soldOn,
		PlatformID:     seed.platform.ID,
		SellerID:       "seller-1",
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func seedDelivery(t *testing.T, db *gorm.DB, order *models.Order, address *models.Address, status enums.DeliveryStatus) *models.Delivery {
	t.Helper()

	delivery := &models.Delivery{
		OrderID:         order.ID,
		AddressID:       address.ID,
		DeliveryDate:    order.DateOfSale.AddDate(0, 0, 3),
		DeliveryStatus:  status,
		DeliveryPartner: "FastShip",
	}
	require.NoError(t, db.Create(delivery).Error)
	return delivery
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
