package controllers

import (
	"context"
	"net/http"

	"github.com/fabiomorandi/salesboard-backend/api/responses"
	"github.com/fabiomorandi/salesboard-backend/api/validators"
	"github.com/fabiomorandi/salesboard-backend/internal/analytics"
	"github.com/fabiomorandi/salesboard-backend/internal/analytics/abc"
	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
	"github.com/fabiomorandi/salesboard-backend/pkg/logger"
)

// AnalyticsService is the slice of the analytics service the HTTP layer uses.
type AnalyticsService interface {
	ClassifyABC(ctx context.Context, req analytics.Request) (*analytics.Result, error)
	StoreComparison(ctx context.Context, req analytics.Request) ([]abc.StoreTotal, error)
	SettlementSeries(ctx context.Context, req analytics.Request) ([]models.DailySettlement, error)
}

func analyticsRequest(r *http.Request) (analytics.Request, error) {
	from, err := validators.ParseQueryDate(r, "from", true)
	if err != nil {
		return analytics.Request{}, err
	}
	to, err := validators.ParseQueryDate(r, "to", true)
	if err != nil {
		return analytics.Request{}, err
	}
	return analytics.Request{
		From:     from,
		To:       to,
		StoreID:  validators.ParseQueryString(r, "store"),
		Category: validators.ParseQueryString(r, "category"),
		Channel:  validators.ParseQueryString(r, "channel"),
	}, nil
}

// ClassifyABC serves the dual-axis classification with concentration and
// weekly evolution.
func ClassifyABC(svc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := analyticsRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ClassifyABC(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// Settlements serves the daily settlement series for the revenue trend.
func Settlements(svc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := analyticsRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		series, err := svc.SettlementSeries(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, series)
	}
}

// StoreComparison serves the per-store article pivot.
func StoreComparison(svc AnalyticsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := analyticsRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		totals, err := svc.StoreComparison(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, totals)
	}
}
