package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecommetrics/ecom-metrics-backend/pkg/types"
)

// Order is the central fact row. The external order_id may repeat across
// products (multi-item orders) but never for the same product.
type Order struct {
	ID             uint            `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID        string          `gorm:"column:order_id;size:15;not null;uniqueIndex:uq_orders_order_id_product"`
	ProductID      string          `gorm:"column:product_id;size:15;not null;uniqueIndex:uq_orders_order_id_product"`
	CustomerID     string          `gorm:"column:customer_id;size:15;not null"`
	QuantitySold   int             `gorm:"column:quantity_sold;not null"`
	SellingPrice   decimal.Decimal `gorm:"column:selling_price;type:numeric(10,2);not null"`
	TotalSaleValue decimal.Decimal `gorm:"column:total_sale_value;type:numeric(15,2);not null"`
	DateOfSale     time.Time       `gorm:"column:date_of_sale;type:date;not null;index"`
	PlatformID     uint            `gorm:"column:platform_id;not null"`
	SellerID       string          `gorm:"column:seller_id;size:100;not null;index"`
	AdditionalData types.JSONMap   `gorm:"column:additional_data;type:jsonb"`

	Product  Product   `gorm:"foreignKey:ProductID"`
	Customer Customer  `gorm:"foreignKey:CustomerID"`
	Platform Platform  `gorm:"foreignKey:PlatformID"`
	Delivery *Delivery `gorm:"foreignKey:OrderID"`
}
