package controllers

import (
	"context"
	"net/http"

	"github.com/fabiomorandi/salesboard-backend/api/responses"
	"github.com/fabiomorandi/salesboard-backend/api/validators"
	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
	"github.com/fabiomorandi/salesboard-backend/pkg/logger"
	"github.com/fabiomorandi/salesboard-backend/pkg/pagination"
)

// BatchLister reads the import audit log.
type BatchLister interface {
	List(ctx context.Context, params pagination.Params) ([]models.ImportBatch, string, error)
}

type importsPage struct {
	Items      []models.ImportBatch `json:"items"`
	NextCursor string               `json:"next_cursor,omitempty"`
}

// ListImports serves the import history, newest first.
func ListImports(batches BatchLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, next, err := batches.List(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, importsPage{Items: history, NextCursor: next})
	}
}
