package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ecommetrics/ecom-metrics-backend/api/controllers"
	"github.com/ecommetrics/ecom-metrics-backend/api/middleware"
	"github.com/ecommetrics/ecom-metrics-backend/internal/sales"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/config"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/logger"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers. Registry, Redis
// and HTTPMetrics may be nil.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           controllers.Pinger
	Redis        controllers.Pinger
	SalesService sales.Service
	Registry     *prometheus.Registry
	HTTPMetrics  *metrics.HTTPMetrics
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, map[string]controllers.Pinger{
			"postgres": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.Registry != nil {
		r.Get("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}).ServeHTTP)
	}

	// Trailing slashes are part of the published paths.
	r.Route("/api", func(r chi.Router) {
		r.Get("/sales-volume/", controllers.SalesVolume(deps.SalesService, deps.Logger))
		r.Get("/revenue/", controllers.Revenue(deps.SalesService, deps.Logger))
		r.Get("/summary-metrics/", controllers.SummaryMetrics(deps.SalesService, deps.Logger))
		r.Get("/sales-data/", controllers.SalesData(deps.SalesService, deps.Logger))
	})

	return r
}
