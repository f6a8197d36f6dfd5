package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecommetrics/ecom-metrics-backend/pkg/db/models"
)

// MonthlyVolume is one month of the unit-volume series.
type MonthlyVolume struct {
	Month             string `json:"month"`
	TotalQuantitySold int64  `json:"total_quantity_sold"`
}

// MonthlyRevenue is one month of the revenue series.
type MonthlyRevenue struct {
	Month        string `json:"month"`
	TotalRevenue string `json:"total_revenue"`
}

// SummaryMetrics carries the global KPIs. The cancellation percentage divides
// cancelled deliveries by total orders; the two populations diverge when
// orders lack deliveries, and that ratio is kept as-is.
type SummaryMetrics struct {
	TotalRevenue            string `json:"total_revenue"`
	TotalOrders             int64  `json:"total_orders"`
	TotalProductsSold       int64  `json:"total_products_sold"`
	CanceledOrderPercentage string `json:"canceled_order_percentage"`
}

// OrderRecord is the flat JSON shape of one order row with its joined
// product, platform and delivery data. State and delivery status are null
// when the order has no delivery.
type OrderRecord struct {
	OrderID        string  `json:"order_id"`
	ProductName    string  `json:"product_name"`
	Category       string  `json:"category"`
	QuantitySold   int     `json:"quantity_sold"`
	TotalSaleValue string  `json:"total_sale_value"`
	DateOfSale     string  `json:"date_of_sale"`
	PlatformName   string  `json:"platform_name"`
	State          *string `json:"state"`
	DeliveryStatus *string `json:"delivery_status"`
}

// NewOrderRecord maps a loaded order row into the response shape.
func NewOrderRecord(order *models.Order) OrderRecord {
	record := OrderRecord{
		OrderID:        order.OrderID,
		ProductName:    order.Product.Name,
		Category:       order.Product.Category,
		QuantitySold:   order.QuantitySold,
		TotalSaleValue: order.TotalSaleValue.StringFixed(2),
		DateOfSale:     order.DateOfSale.Format(DateLayout),
		PlatformName:   order.Platform.Name,
	}
	if order.Delivery != nil {
		state := order.Delivery.Address.State
		status := string(order.Delivery.DeliveryStatus)
		record.State = &state
		record.DeliveryStatus = &status
	}
	return record
}

// SalesFact is the minimal projection the monthly aggregations consume.
type SalesFact struct {
	DateOfSale     time.Time
	QuantitySold   int
	TotalSaleValue decimal.Decimal
}
