package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fabiomorandi/salesboard-backend/api/controllers"
	"github.com/fabiomorandi/salesboard-backend/api/middleware"
	"github.com/fabiomorandi/salesboard-backend/pkg/config"
	"github.com/fabiomorandi/salesboard-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	db controllers.Pinger,
	ingestService controllers.IngestService,
	analyticsService controllers.AnalyticsService,
	batches controllers.BatchLister,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, db))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/ingest", controllers.IngestFile(ingestService, logg))
		r.Get("/imports", controllers.ListImports(batches, logg))
		r.Get("/settlements", controllers.Settlements(analyticsService, logg))
		r.Route("/abc", func(r chi.Router) {
			r.Get("/", controllers.ClassifyABC(analyticsService, logg))
			r.Get("/comparison", controllers.StoreComparison(analyticsService, logg))
		})
	})

	return r
}
