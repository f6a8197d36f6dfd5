package controllers

import (
	"context"
	"net/http"

	"github.com/ecommetrics/ecom-metrics-backend/api/responses"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/config"
	pkgerrors "github.com/ecommetrics/ecom-metrics-backend/pkg/errors"
	"github.com/ecommetrics/ecom-metrics-backend/pkg/logger"
)

// Pinger is the dependency health-check surface shared by the DB and Redis
// clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-EcomMetrics-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every supplied dependency answers a
// ping. Nil dependencies (Redis disabled) are skipped.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-EcomMetrics-Env", cfg.App.Env)

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").
						WithDetails(map[string]any{"dependency": name}))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
