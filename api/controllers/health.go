package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/jeanmnorhen/precoreal-backend/api/responses"
	"github.com/jeanmnorhen/precoreal-backend/pkg/config"
	pkgerrors "github.com/jeanmnorhen/precoreal-backend/pkg/errors"
	"github.com/jeanmnorhen/precoreal-backend/pkg/logger"
)

const readinessTimeout = 5 * time.Second

const envHeader = "X-PrecoReal-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every hard dependency and aggregates the failures so a
// single probe surfaces everything that is down, not just the first hit.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP, pubsubP pinger) http.HandlerFunc {
	checks := []struct {
		name   string
		target pinger
	}{
		{name: "database", target: dbP},
		{name: "redis", target: redisP},
		{name: "pubsub", target: pubsubP},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		var errs error
		failing := []string{}
		for _, check := range checks {
			if check.target == nil {
				continue
			}
			if err := check.target.Ping(ctx); err != nil {
				errs = multierr.Append(errs, err)
				failing = append(failing, check.name)
			}
		}

		if errs != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "readiness check failed").
				WithDetails(map[string]any{"failing": failing})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
