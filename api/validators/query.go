package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/ecommetrics/ecom-metrics-backend/pkg/errors"
)

// ParseQueryBool reads an optional boolean query parameter. Absent or blank
// yields the default; anything strconv.ParseBool rejects is a validation
// error naming the field.
func ParseQueryBool(r *http.Request, key string, defaultVal bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").
			WithDetails(map[string]any{"field": key})
	}
	return value, nil
}
