package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/fabiomorandi/salesboard-backend/internal/analytics/abc"
	"github.com/fabiomorandi/salesboard-backend/internal/ledger"
	"github.com/fabiomorandi/salesboard-backend/pkg/config"
	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
	apperrors "github.com/fabiomorandi/salesboard-backend/pkg/errors"
	"github.com/fabiomorandi/salesboard-backend/pkg/logger"
)

// Request filters a classification query. StoreID, Category and Channel are
// optional; From and To bound the period inclusively.
type Request struct {
	From     time.Time
	To       time.Time
	StoreID  string
	Category string
	Channel  string
}

func (r Request) validate() error {
	if r.From.IsZero() || r.To.IsZero() {
		return apperrors.New(apperrors.CodeValidation, "date range is required")
	}
	if r.To.Before(r.From) {
		return apperrors.New(apperrors.CodeValidation, "date range end precedes start")
	}
	return nil
}

// Result bundles everything one classification query produces.
type Result struct {
	Aggregates    []abc.Aggregate      `json:"aggregates"`
	Concentration abc.Concentration    `json:"concentration"`
	Evolution     []abc.EvolutionPoint `json:"evolution"`
}

// Service answers read-only analytics queries over the article ledger. Every
// call recomputes from the rows; results are never cached.
type Service struct {
	store *ledger.Repository
	cfg   config.AnalyticsConfig
	log   *logger.Logger
}

func NewService(store *ledger.Repository, cfg config.AnalyticsConfig, log *logger.Logger) *Service {
	return &Service{store: store, cfg: cfg, log: log}
}

func (s *Service) engineConfig() abc.Config {
	return abc.Config{
		UseGross:        s.cfg.UseGross(),
		ClassAThreshold: s.cfg.ClassAThreshold,
		ClassBThreshold: s.cfg.ClassBThreshold,
		InactiveDays:    s.cfg.InactiveDays,
		EvolutionTopN:   s.cfg.EvolutionTopN,
	}
}

// ClassifyABC runs the dual-axis classification over the filtered ledger
// rows. No matching rows is a valid, empty result.
func (s *Service) ClassifyABC(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.StoreID != "" {
		ctx = s.log.WithStoreID(ctx, req.StoreID)
	}

	rows, err := s.store.ListArticleSales(ctx, ledger.Filter{
		From:     req.From,
		To:       req.To,
		StoreID:  req.StoreID,
		Category: req.Category,
		Channel:  req.Channel,
	})
	if err != nil {
		return nil, err
	}

	cfg := s.engineConfig()
	aggregates := abc.BuildAggregates(rows, req.To, cfg)
	s.log.Info(ctx, fmt.Sprintf("classified %d articles over %d ledger rows", len(aggregates), len(rows)))
	return &Result{
		Aggregates:    aggregates,
		Concentration: abc.Concentrate(aggregates),
		Evolution:     abc.TrackEvolution(rows, req.To, cfg),
	}, nil
}

// SettlementSeries returns the daily settlement rows in the range, date
// ascending, for the dashboard's revenue trend. Category and Channel do not
// apply to settlements and are ignored.
func (s *Service) SettlementSeries(ctx context.Context, req Request) ([]models.DailySettlement, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.StoreID != "" {
		ctx = s.log.WithStoreID(ctx, req.StoreID)
	}
	return s.store.ListDailySettlements(ctx, req.From, req.To, req.StoreID)
}

// StoreComparison pivots per-store article totals. The request's StoreID is
// ignored on purpose: the pivot only makes sense across stores.
func (s *Service) StoreComparison(ctx context.Context, req Request) ([]abc.StoreTotal, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	rows, err := s.store.ListArticleSales(ctx, ledger.Filter{
		From:     req.From,
		To:       req.To,
		Category: req.Category,
		Channel:  req.Channel,
	})
	if err != nil {
		return nil, err
	}
	return abc.CompareStores(rows, s.cfg.UseGross()), nil
}
