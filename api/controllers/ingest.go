package controllers

import (
	"context"
	"net/http"

	"github.com/fabiomorandi/salesboard-backend/api/responses"
	"github.com/fabiomorandi/salesboard-backend/api/validators"
	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
	"github.com/fabiomorandi/salesboard-backend/pkg/logger"
)

// IngestService is the slice of the ingest service the HTTP layer uses.
type IngestService interface {
	Ingest(ctx context.Context, path string) (*models.ImportBatch, error)
}

type ingestRequest struct {
	Path string `json:"path" validate:"required"`
}

// IngestFile imports one workbook already present on the server's filesystem
// (the inbox is a mounted share; the dashboard only passes the path).
func IngestFile(svc IngestService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ingestRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		batch, err := svc.Ingest(r.Context(), req.Path)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, batch)
	}
}
