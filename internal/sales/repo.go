package sales

import (
	"context"

	"gorm.io/gorm"

	"github.com/ecommetrics/ecom-metrics-backend/pkg/db/models"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/enums"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/pagination"
)

// Repository exposes the read-only order queries behind the reports.
type Repository interface {
	// ListOrders returns one page of filtered orders plus the total match
	// count. Product, platform and delivery+address data are loaded eagerly.
	ListOrders(ctx context.Context, filters Filters, params pagination.Params) ([]models.Order, int64, error)
	// StreamOrders feeds every filtered order through fn in batches, in a
	// stable order, without buffering the whole result set.
	StreamOrders(ctx context.Context, filters Filters, batchSize int, fn func(batch []models.Order) error) error
	// SalesFacts returns the (date, quantity, value) projection of every
	// order, ordered by sale date.
	SalesFacts(ctx context.Context) ([]SalesFact, error)
	CountOrders(ctx context.Context) (int64, error)
	CountCancelledDeliveries(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) filteredOrders(ctx context.Context, filters Filters) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Joins("JOIN products ON products.id = orders.product_id").
		Joins("JOIN platforms ON platforms.id = orders.platform_id").
		Joins("LEFT JOIN deliveries ON deliveries.order_id = orders.id").
		Joins("LEFT JOIN addresses ON addresses.id = deliveries.address_id")
	return filters.Apply(q)
}

func (r *repository) ListOrders(ctx context.Context, filters Filters, params pagination.Params) ([]models.Order, int64, error) {
	var count int64
	if err := r.filteredOrders(ctx, filters).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := r.filteredOrders(ctx, filters).
		Select("orders.*").
		Preload("Product").
		Preload("Customer").
		Preload("Platform").
		Preload("Delivery.Address").
		Order("orders.id ASC").
		Offset(params.Offset()).
		Limit(pagination.NormalizePageSize(params.PageSize)).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (r *repository) StreamOrders(ctx context.Context, filters Filters, batchSize int, fn func(batch []models.Order) error) error {
	var batch []models.Order
	return r.filteredOrders(ctx, filters).
		Select("orders.*").
		Preload("Product").
		Preload("Customer").
		Preload("Platform").
		Preload("Delivery.Address").
		Order("orders.id ASC").
		FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
			return fn(batch)
		}).Error
}

func (r *repository) SalesFacts(ctx context.Context) ([]SalesFact, error) {
	var facts []SalesFact
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.date_of_sale, orders.quantity_sold, orders.total_sale_value").
		Order("orders.date_of_sale ASC").
		Find(&facts).Error
	if err != nil {
		return nil, err
	}
	return facts, nil
}

func (r *repository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

func (r *repository) CountCancelledDeliveries(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("delivery_status = ?", enums.DeliveryStatusCancelled).
		Count(&count).Error
	return count, err
}
