package sales

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	pkgerrors "github.com/ecommetrics/ecom-metrics-backend/pkg/errors"
)

// DateLayout is the wire format for date filter parameters.
const DateLayout = "2006-01-02"

// Filters holds the optional predicates for the sales-data listing. Zero
// values impose no constraint; supplied values are ANDed together.
type Filters struct {
	DateFrom       *time.Time
	DateTo         *time.Time
	Category       string
	DeliveryStatus string
	Platform       string
	State          string
}

// ParseFilters reads the filter query parameters. A date bound that fails to
// parse as YYYY-MM-DD rejects the whole request before any data is fetched;
// the error details name the offending field.
func ParseFilters(r *http.Request) (Filters, error) {
	query := r.URL.Query()

	filters := Filters{
		Category:       strings.TrimSpace(query.Get("category")),
		DeliveryStatus: strings.TrimSpace(query.Get("delivery_status")),
		Platform:       strings.TrimSpace(query.Get("platform")),
		State:          strings.TrimSpace(query.Get("state")),
	}

	dateFrom, err := parseDateParam(query, "date_from")
	if err != nil {
		return Filters{}, err
	}
	filters.DateFrom = dateFrom

	dateTo, err := parseDateParam(query, "date_to")
	if err != nil {
		return Filters{}, err
	}
	filters.DateTo = dateTo

	return filters, nil
}

func parseDateParam(query url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(query.Get(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid "+key+" format, expected YYYY-MM-DD").
			WithDetails(map[string]any{"field": key, "expected": "YYYY-MM-DD"})
	}
	return &parsed, nil
}

// Apply ANDs the supplied filters onto an order query that already has
// products, platforms, deliveries and addresses joined. Delivery and address
// predicates compare against the LEFT JOIN columns, so an order without a
// delivery never matches them.
func (f Filters) Apply(q *gorm.DB) *gorm.DB {
	if f.DateFrom != nil {
		q = q.Where("orders.date_of_sale >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("orders.date_of_sale <= ?", *f.DateTo)
	}
	if f.Category != "" {
		q = q.Where("LOWER(products.category) LIKE ? ESCAPE '\\'", containsPattern(f.Category))
	}
	if f.DeliveryStatus != "" {
		q = q.Where("deliveries.delivery_status = ?", f.DeliveryStatus)
	}
	if f.Platform != "" {
		q = q.Where("LOWER(platforms.name) LIKE ? ESCAPE '\\'", containsPattern(f.Platform))
	}
	if f.State != "" {
		q = q.Where("LOWER(addresses.state) LIKE ? ESCAPE '\\'", containsPattern(f.State))
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring match, with LIKE
// metacharacters in the value matched literally.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}
