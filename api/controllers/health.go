package controllers

import (
	"context"
	"net/http"

	"github.com/fabiomorandi/salesboard-backend/api/responses"
	"github.com/fabiomorandi/salesboard-backend/pkg/config"
	pkgerrors "github.com/fabiomorandi/salesboard-backend/pkg/errors"
	"github.com/fabiomorandi/salesboard-backend/pkg/logger"
)

// Pinger is what readiness needs from the database client.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Salesboard-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Salesboard-Env", cfg.App.Env)
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
