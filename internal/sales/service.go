package sales

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecommetrics/ecom-metrics-backend/pkg/db/models"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/pagination"
)

const csvBatchSize = 500

const (
	cacheKeySalesVolume    = "sales-volume"
	cacheKeyRevenue        = "revenue"
	cacheKeySummaryMetrics = "summary-metrics"
)

var csvHeader = []string{
	"Order ID",
	"Product",
	"Customer",
	"Quantity Sold",
	"Selling Price",
	"Total Sale Value",
	"Date of Sale",
	"Platform",
	"State",
	"Delivery Status",
}

// Service provides the sales reports.
type Service interface {
	// MonthlySalesVolume sums quantity_sold per calendar month over all
	// orders, ascending by month. Months with no orders are omitted.
	MonthlySalesVolume(ctx context.Context) ([]MonthlyVolume, error)
	// MonthlyRevenue sums total_sale_value per calendar month, decimal-exact.
	MonthlyRevenue(ctx context.Context) ([]MonthlyRevenue, error)
	// SummaryMetrics computes the global KPIs over all orders.
	SummaryMetrics(ctx context.Context) (*SummaryMetrics, error)
	// ListSalesData returns one shaped page of filtered orders plus the
	// total match count.
	ListSalesData(ctx context.Context, filters Filters, params pagination.Params) ([]OrderRecord, int64, error)
	// ExportCSV streams every filtered order to w as CSV, ignoring
	// pagination. Nothing is written until the first fetch succeeds.
	ExportCSV(ctx context.Context, filters Filters, w io.Writer) error
}

type service struct {
	repo  Repository
	cache *ReportCache
}

// NewService builds the sales service. cache may be nil.
func NewService(repo Repository, cache *ReportCache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) MonthlySalesVolume(ctx context.Context) ([]MonthlyVolume, error) {
	var cached []MonthlyVolume
	if s.cache.Get(ctx, cacheKeySalesVolume, &cached) {
		return cached, nil
	}

	facts, err := s.repo.SalesFacts(ctx)
	if err != nil {
		return nil, err
	}

	volumes := map[time.Time]int64{}
	for _, fact := range facts {
		volumes[truncateToMonth(fact.DateOfSale)] += int64(fact.QuantitySold)
	}

	result := make([]MonthlyVolume, 0, len(volumes))
	for _, month := range sortedMonths(volumes) {
		result = append(result, MonthlyVolume{
			Month:             month.Format("2006-01"),
			TotalQuantitySold: volumes[month],
		})
	}

	s.cache.Set(ctx, cacheKeySalesVolume, result)
	return result, nil
}

func (s *service) MonthlyRevenue(ctx context.Context) ([]MonthlyRevenue, error) {
	var cached []MonthlyRevenue
	if s.cache.Get(ctx, cacheKeyRevenue, &cached) {
		return cached, nil
	}

	facts, err := s.repo.SalesFacts(ctx)
	if err != nil {
		return nil, err
	}

	revenue := map[time.Time]decimal.Decimal{}
	for _, fact := range facts {
		month := truncateToMonth(fact.DateOfSale)
		revenue[month] = revenue[month].Add(fact.TotalSaleValue)
	}

	result := make([]MonthlyRevenue, 0, len(revenue))
	for _, month := range sortedMonths(revenue) {
		result = append(result, MonthlyRevenue{
			Month:        month.Format("2006-01"),
			TotalRevenue: revenue[month].StringFixed(2),
		})
	}

	s.cache.Set(ctx, cacheKeyRevenue, result)
	return result, nil
}

func (s *service) SummaryMetrics(ctx context.Context) (*SummaryMetrics, error) {
	var cached SummaryMetrics
	if s.cache.Get(ctx, cacheKeySummaryMetrics, &cached) {
		return &cached, nil
	}

	facts, err := s.repo.SalesFacts(ctx)
	if err != nil {
		return nil, err
	}

	totalRevenue := decimal.Zero
	var totalProductsSold int64
	for _, fact := range facts {
		totalRevenue = totalRevenue.Add(fact.TotalSaleValue)
		totalProductsSold += int64(fact.QuantitySold)
	}

	totalOrders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.repo.CountCancelledDeliveries(ctx)
	if err != nil {
		return nil, err
	}

	// Cancelled deliveries over total orders. Orders without a delivery stay
	// in the denominator only.
	percentage := decimal.Zero
	if totalOrders > 0 {
		percentage = decimal.NewFromInt(cancelled).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(totalOrders))
	}

	metrics := &SummaryMetrics{
		TotalRevenue:            totalRevenue.StringFixed(2),
		TotalOrders:             totalOrders,
		TotalProductsSold:       totalProductsSold,
		CanceledOrderPercentage: percentage.StringFixed(2),
	}

	s.cache.Set(ctx, cacheKeySummaryMetrics, metrics)
	return metrics, nil
}

func (s *service) ListSalesData(ctx context.Context, filters Filters, params pagination.Params) ([]OrderRecord, int64, error) {
	orders, count, err := s.repo.ListOrders(ctx, filters, params)
	if err != nil {
		return nil, 0, err
	}

	records := make([]OrderRecord, 0, len(orders))
	for i := range orders {
		records = append(records, NewOrderRecord(&orders[i]))
	}
	return records, count, nil
}

func (s *service) ExportCSV(ctx context.Context, filters Filters, w io.Writer) error {
	writer := csv.NewWriter(w)
	wroteHeader := false

	err := s.repo.StreamOrders(ctx, filters, csvBatchSize, func(batch []models.Order) error {
		if !wroteHeader {
			if err := writer.Write(csvHeader); err != nil {
				return err
			}
			wroteHeader = true
		}
		for i := range batch {
			if err := writer.Write(csvRow(&batch[i])); err != nil {
				return err
			}
		}
		writer.Flush()
		return writer.Error()
	})
	if err != nil {
		return err
	}

	if !wroteHeader {
		if err := writer.Write(csvHeader); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvRow(order *models.Order) []string {
	state := "N/A"
	status := "N/A"
	if order.Delivery != nil {
		state = order.Delivery.Address.State
		status = string(order.Delivery.DeliveryStatus)
	}
	return []string{
		order.OrderID,
		order.Product.Name,
		order.Customer.Name,
		strconv.Itoa(order.QuantitySold),
		order.SellingPrice.StringFixed(2),
		order.TotalSaleValue.StringFixed(2),
		order.DateOfSale.Format(DateLayout),
		order.Platform.Name,
		state,
		status,
	}
}

func truncateToMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func sortedMonths[V any](buckets map[time.Time]V) []time.Time {
	months := make([]time.Time, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})
	return months
}
