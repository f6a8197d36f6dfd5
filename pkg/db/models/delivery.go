package models

import (
	"time"

	"github.com/ecommetrics/ecom-metrics-backend/pkg/enums"
)

// Delivery extends an Order with fulfillment data. An order has zero or one
// delivery; every delivery dereference must tolerate absence.
type Delivery struct {
	ID              uint                 `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID         uint                 `gorm:"column:order_id;not null;uniqueIndex"`
	AddressID       uint                 `gorm:"column:address_id;not null"`
	DeliveryDate    time.Time            `gorm:"column:delivery_date;type:date;not null;index"`
	DeliveryStatus  enums.DeliveryStatus `gorm:"column:delivery_status;size:20;not null;index"`
	DeliveryPartner string               `gorm:"column:delivery_partner;size:100;not null"`

	Address Address `gorm:"foreignKey:AddressID"`
}
