package sales

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecommetrics/ecom-metrics-backend/pkg/db/models"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/enums"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/pagination"
)

type salesFixture struct {
	repo Repository
	db   *gorm.DB
}

// newSalesFixture seeds three orders: a delivered January toy order from
// Amazon (Karnataka), an in-transit February electronics order from Flipkart
// (Kerala), and a February book order with no delivery at all.
func newSalesFixture(t *testing.T) salesFixture {
	t.Helper()

	db := setupSalesTestDB(t)

	amazon := seedPlatform(t, db, "Amazon")
	flipkart := seedPlatform(t, db, "Flipkart")

	toy := seedProduct(t, db, "P-1", "Wooden Train", "Toys")
	phone := seedProduct(t, db, "P-2", "Smartphone", "Electronics")
	book := seedProduct(t, db, "P-3", "Novel", "Books")

	alice := seedCustomer(t, db, "C-1", "Alice")
	bob := seedCustomer(t, db, "C-2", "Bob")

	karnataka := seedAddress(t, db, "Bengaluru", "Karnataka")
	kerala := seedAddress(t, db, "Kochi", "Kerala")

	first := seedOrder(t, db, orderSeed{
		orderID: "ORD-1", product: toy, customer: alice, platform: amazon,
		quantity: 5, price: "20.00", total: "100.00", soldOn: date(2024, time.January, 15),
	})
	second := seedOrder(t, db, orderSeed{
		orderID: "ORD-2", product: phone, customer: bob, platform: flipkart,
		quantity: 1, price: "299.99", total: "299.99", soldOn: date(2024, time.February, 1),
	})
	seedOrder(t, db, orderSeed{
		orderID: "ORD-3", product: book, customer: alice, platform: amazon,
		quantity: 2, price: "9.50", total: "19.00", soldOn: date(2024, time.February, 10),
	})

	seedDelivery(t, db, first, karnataka, enums.DeliveryStatusDelivered)
	seedDelivery(t, db, second, kerala, enums.DeliveryStatusInTransit)

	return salesFixture{repo: NewRepository(db), db: db}
}

func orderIDs(t *testing.T, fx salesFixture, filters Filters) []string {
	t.Helper()

	orders, _, err := fx.repo.ListOrders(context.Background(), filters, pagination.Params{Page: 1, PageSize: pagination.MaxPageSize})
	require.NoError(t, err)

	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.OrderID)
	}
	return ids
}

func TestListOrdersUnfiltered(t *testing.T) {
	fx := newSalesFixture(t)

	orders, count, err := fx.repo.ListOrders(context.Background(), Filters{}, pagination.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	require.Len(t, orders, 3)

	// eager loads
	assert.Equal(t, "Wooden Train", orders[0].Product.Name)
	assert.Equal(t, "Amazon", orders[0].Platform.Name)
	assert.Equal(t, "Alice", orders[0].Customer.Name)
	require.NotNil(t, orders[0].Delivery)
	assert.Equal(t, "Karnataka", orders[0].Delivery.Address.State)
	assert.Nil(t, orders[2].Delivery)
}

func TestListOrdersDateRange(t *testing.T) {
	fx := newSalesFixture(t)

	from := date(2024, time.February, 1)
	to := date(2024, time.February, 28)
	ids := orderIDs(t, fx, Filters{DateFrom: &from, DateTo: &to})
	assert.Equal(t, []string{"ORD-2", "ORD-3"}, ids)

	// bounds are inclusive
	exact := date(2024, time.January, 15)
	ids = orderIDs(t, fx, Filters{DateFrom: &exact, DateTo: &exact})
	assert.Equal(t, []string{"ORD-1"}, ids)
}

func TestListOrdersCategorySubstring(t *testing.T) {
	fx := newSalesFixture(t)

	assert.Equal(t, []string{"ORD-2"}, orderIDs(t, fx, Filters{Category: "ELECTRO"}))
	assert.Equal(t, []string{"ORD-1"}, orderIDs(t, fx, Filters{Category: "toy"}))
	assert.Empty(t, orderIDs(t, fx, Filters{Category: "Grocery"}))
}

func TestListOrdersPlatformSubstring(t *testing.T) {
	fx := newSalesFixture(t)

	assert.Equal(t, []string{"ORD-2"}, orderIDs(t, fx, Filters{Platform: "flip"}))
	assert.Equal(t, []string{"ORD-1", "ORD-3"}, orderIDs(t, fx, Filters{Platform: "AMAZON"}))
}

func TestListOrdersDeliveryFiltersSkipUndelivered(t *testing.T) {
	fx := newSalesFixture(t)

	// ORD-3 has no delivery row: it must never match a delivery predicate.
	assert.Equal(t, []string{"ORD-1"}, orderIDs(t, fx, Filters{DeliveryStatus: "Delivered"}))
	assert.Equal(t, []string{"ORD-2"}, orderIDs(t, fx, Filters{DeliveryStatus: "In Transit"}))
	assert.Empty(t, orderIDs(t, fx, Filters{DeliveryStatus: "Cancelled"}))

	assert.Equal(t, []string{"ORD-2"}, orderIDs(t, fx, Filters{State: "kerala"}))
	assert.Empty(t, orderIDs(t, fx, Filters{State: "Punjab"}))
}

func TestListOrdersFilterWildcardsMatchLiterally(t *testing.T) {
	fx := newSalesFixture(t)

	// "k%a" would match Karnataka and Kerala if % acted as a wildcard
	assert.Empty(t, orderIDs(t, fx, Filters{State: "k%a"}))
	// "a_a" would match "ama" in Amazon if _ acted as a wildcard
	assert.Empty(t, orderIDs(t, fx, Filters{Platform: "a_a"}))

	alice := seedCustomer(t, fx.db, "C-9", "Ana")
	amazon := seedPlatform(t, fx.db, "Snapdeal")
	underscored := seedProduct(t, fx.db, "P-7", "Vase", "Home_Goods")
	plain := seedProduct(t, fx.db, "P-8", "Rug", "HomeXGoods")
	seedOrder(t, fx.db, orderSeed{
		orderID: "ORD-7", product: underscored, customer: alice, platform: amazon,
		quantity: 1, price: "12.00", total: "12.00", soldOn: date(2024, time.April, 1),
	})
	seedOrder(t, fx.db, orderSeed{
		orderID: "ORD-8", product: plain, customer: alice, platform: amazon,
		quantity: 1, price: "15.00", total: "15.00", soldOn: date(2024, time.April, 2),
	})

	assert.Equal(t, []string{"ORD-7"}, orderIDs(t, fx, Filters{Category: "e_G"}))
}

func TestListOrdersCombinedFilters(t *testing.T) {
	fx := newSalesFixture(t)

	from := date(2024, time.January, 1)
	filters := Filters{
		DateFrom:       &from,
		Platform:       "amazon",
		DeliveryStatus: "Delivered",
		State:          "karnataka",
	}
	assert.Equal(t, []string{"ORD-1"}, orderIDs(t, fx, filters))
}

func TestListOrdersPagination(t *testing.T) {
	fx := newSalesFixture(t)

	first, count, err := fx.repo.ListOrders(context.Background(), Filters{}, pagination.Params{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	require.Len(t, first, 2)
	assert.Equal(t, "ORD-1", first[0].OrderID)

	second, count, err := fx.repo.ListOrders(context.Background(), Filters{}, pagination.Params{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	require.Len(t, second, 1)
	assert.Equal(t, "ORD-3", second[0].OrderID)

	past, count, err := fx.repo.ListOrders(context.Background(), Filters{}, pagination.Params{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.Empty(t, past)
}

func TestStreamOrdersVisitsEveryRow(t *testing.T) {
	fx := newSalesFixture(t)

	var seen []string
	err := fx.repo.StreamOrders(context.Background(), Filters{}, 2, func(batch []models.Order) error {
		for i := range batch {
			seen = append(seen, batch[i].OrderID)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD-1", "ORD-2", "ORD-3"}, seen)
}

func TestStreamOrdersHonorsFilters(t *testing.T) {
	fx := newSalesFixture(t)

	var seen []string
	err := fx.repo.StreamOrders(context.Background(), Filters{Platform: "amazon"}, 10, func(batch []models.Order) error {
		for i := range batch {
			seen = append(seen, batch[i].OrderID)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ORD-1", "ORD-3"}, seen)
}

func TestSalesFactsProjection(t *testing.T) {
	fx := newSalesFixture(t)

	facts, err := fx.repo.SalesFacts(context.Background())
	require.NoError(t, err)
	require.Len(t, facts, 3)
	assert.Equal(t, 5, facts[0].QuantitySold)
	assert.True(t, facts[0].TotalSaleValue.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, date(2024, time.February, 10), facts[2].DateOfSale.UTC())
}

func TestDeliveryCounts(t *testing.T) {
	fx := newSalesFixture(t)

	total, err := fx.repo.CountOrders(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	cancelled, err := fx.repo.CountCancelledDeliveries(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 0, cancelled)

	lamp := seedProduct(t, fx.db, "P-4", "Lamp", "Home")
	carol := seedCustomer(t, fx.db, "C-3", "Carol")
	meesho := seedPlatform(t, fx.db, "Meesho")
	punjab := seedAddress(t, fx.db, "Amritsar", "Punjab")
	order := seedOrder(t, fx.db, orderSeed{
		orderID: "ORD-4", product: lamp, customer: carol, platform: meesho,
		quantity: 1, price: "45.00", total: "45.00", soldOn: date(2024, time.March, 2),
	})
	seedDelivery(t, fx.db, order, punjab, enums.DeliveryStatusCancelled)

	cancelled, err = fx.repo.CountCancelledDeliveries(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, cancelled)
}
