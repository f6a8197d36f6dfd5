package controllers

import (
	"io"
	"net/http"

	"github.com/ecommetrics/ecom-metrics-backend/api/responses"
	"github.com/ecommetrics/ecom-metrics-backend/api/validators"
	"github.com/ecommetrics/ecom-metrics-backend/internal/sales"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/logger"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/pagination"
)

const csvFilename = "sales_data.csv"

// SalesVolume returns units sold per calendar month.
func SalesVolume(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		volumes, err := svc.MonthlySalesVolume(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, volumes)
	}
}

// Revenue returns revenue per calendar month.
func Revenue(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		revenue, err := svc.MonthlyRevenue(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, revenue)
	}
}

// SummaryMetrics returns the global KPI block.
func SummaryMetrics(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics, err := svc.SummaryMetrics(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, metrics)
	}
}

// SalesData lists filtered orders, paginated as JSON by default or streamed
// as a CSV attachment when export_csv is set.
func SalesData(svc sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := sales.ParseFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		exportCSV, err := validators.ParseQueryBool(r, "export_csv", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if exportCSV {
			writeCSVExport(w, r, svc, logg, filters)
			return
		}

		params := pagination.FromRequest(r)
		records, count, err := svc.ListSalesData(r.Context(), filters, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pagination.NewPage(r, params, count, records))
	}
}

func writeCSVExport(w http.ResponseWriter, r *http.Request, svc sales.Service, logg *logger.Logger, filters sales.Filters) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvFilename+`"`)

	body := &trackingWriter{inner: w}
	if err := svc.ExportCSV(r.Context(), filters, body); err != nil {
		if !body.wrote {
			// nothing streamed yet, fall back to the JSON error envelope
			w.Header().Del("Content-Disposition")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// partial body already on the wire; sever the connection so the
		// client cannot mistake the truncated file for a complete export
		if logg != nil {
			logg.Error(r.Context(), "export.aborted", err)
		}
		panic(http.ErrAbortHandler)
	}
}

type trackingWriter struct {
	inner io.Writer
	wrote bool
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		t.wrote = true
	}
	return t.inner.Write(p)
}
