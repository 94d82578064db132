package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/fabiomorandi/salesboard-backend/internal/ingest/detect"
	"github.com/fabiomorandi/salesboard-backend/internal/ingest/normalize"
	"github.com/fabiomorandi/salesboard-backend/internal/ledger"
	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
	"github.com/fabiomorandi/salesboard-backend/pkg/enums"
	apperrors "github.com/fabiomorandi/salesboard-backend/pkg/errors"
	"github.com/fabiomorandi/salesboard-backend/pkg/logger"
	"github.com/fabiomorandi/salesboard-backend/pkg/metrics"
)

// Service runs the full pipeline for one workbook: detect the report kind
// from the header row, normalize the data rows, upsert them into the ledger
// and record an ImportBatch. Files that fail detection still get a batch (kind
// unknown, zero counts) so the audit trail covers every file that arrived.
type Service struct {
	detector *detect.Detector
	store    *ledger.Repository
	batches  *ledger.BatchRepository
	log      *logger.Logger
	metrics  *metrics.IngestMetrics
}

func NewService(store *ledger.Repository, batches *ledger.BatchRepository, log *logger.Logger, m *metrics.IngestMetrics) *Service {
	return &Service{
		detector: detect.NewDetector(),
		store:    store,
		batches:  batches,
		log:      log,
		metrics:  m,
	}
}

// Ingest processes one xlsx file end to end. A file whose sheets match no
// known layout is not an error: the batch records kind unknown with a warning
// and the caller decides what to do with the file. An unreadable file is an
// error and no batch is recorded.
func (s *Service) Ingest(ctx context.Context, path string) (*models.ImportBatch, error) {
	filename := filepath.Base(path)
	ctx = s.log.WithFile(ctx, filename)
	start := time.Now()

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		s.metrics.ObserveFile(string(enums.ReportKindUnknown), "error", time.Since(start))
		return nil, apperrors.Wrap(apperrors.CodeUnsupported, err, fmt.Sprintf("cannot read workbook %s", filename))
	}
	defer workbook.Close()

	sheet, headerRow, headers, dataRows, err := s.firstDetectableSheet(workbook)
	if err != nil {
		return nil, err
	}
	if sheet == "" {
		batch := &models.ImportBatch{
			Filename:     filename,
			DetectedKind: enums.ReportKindUnknown,
			Warnings:     []string{"no sheet matched a known report layout"},
		}
		if err := s.batches.Create(ctx, batch); err != nil {
			return nil, err
		}
		s.metrics.ObserveFile(string(enums.ReportKindUnknown), "quarantined", time.Since(start))
		s.log.Warn(ctx, "workbook layout not recognized")
		return batch, nil
	}

	schema, _ := s.detector.Schema(headers)
	rows := normalize.NewRowNormalizer(schema, headers)

	batch, err := s.importRows(ctx, schema.Kind, rows, headerRow+1, dataRows)
	if err != nil {
		return nil, err
	}
	batch.Filename = filename
	batch.DetectedKind = schema.Kind

	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}

	kind := string(schema.Kind)
	s.metrics.ObserveFile(kind, "ok", time.Since(start))
	s.metrics.AddRecords(kind, batch.RecordsInserted, batch.RecordsUpdated)
	s.metrics.AddWarnings(kind, len(batch.Warnings))

	ctx = s.log.WithBatchID(ctx, batch.ID.String())
	s.log.Info(ctx, fmt.Sprintf("imported %s: %d inserted, %d updated, %d warnings",
		schema.Kind, batch.RecordsInserted, batch.RecordsUpdated, len(batch.Warnings)))
	return batch, nil
}

// headerScanRows bounds how deep into a sheet the header row may sit. Exports
// sometimes put a title or print header above the real column row.
const headerScanRows = 10

// firstDetectableSheet returns the first sheet whose header row matches a
// known layout, along with the header's 1-based sheet row, the headers and
// the data rows. The header row lets warnings cite real sheet rows even when
// title rows sit above it.
func (s *Service) firstDetectableSheet(workbook *excelize.File) (string, int, []string, [][]string, error) {
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			return "", 0, nil, nil, apperrors.Wrap(apperrors.CodeUnsupported, err, fmt.Sprintf("cannot read sheet %s", sheet))
		}
		for i, row := range rows {
			if i >= headerScanRows {
				break
			}
			if len(row) == 0 {
				continue
			}
			if _, ok := s.detector.Schema(row); ok {
				return sheet, i + 1, row, rows[i+1:], nil
			}
		}
	}
	return "", 0, nil, nil, nil
}

type rangeTracker struct {
	from, to *time.Time
}

func (r *rangeTracker) observe(dates ...time.Time) {
	for _, d := range dates {
		d := d
		if r.from == nil || d.Before(*r.from) {
			r.from = &d
		}
		if r.to == nil || d.After(*r.to) {
			r.to = &d
		}
	}
}

// importRows normalizes and upserts the data rows. firstDataRow is the 1-based
// sheet row of the first data row, so warnings point at the actual sheet.
func (s *Service) importRows(ctx context.Context, kind enums.ReportKind, rows *normalize.RowNormalizer, firstDataRow int, dataRows [][]string) (*models.ImportBatch, error) {
	var (
		warnings []string
		covered  rangeTracker
		result   ledger.UpsertResult
		err      error
	)

	warn := func(w string) {
		if w != "" {
			warnings = append(warnings, w)
		}
	}

	switch kind {
	case enums.ReportKindFullSettlement:
		var batch []*models.DailySettlement
		for i, cells := range dataRows {
			rec, w := rows.DailySettlement(firstDataRow+i, cells)
			warn(w)
			if rec != nil {
				covered.observe(rec.Date)
				batch = append(batch, rec)
			}
		}
		result, err = s.store.UpsertDailySettlements(ctx, batch)

	case enums.ReportKindZones:
		var batch []*models.ZoneSale
		for i, cells := range dataRows {
			rec, w := rows.ZoneSale(firstDataRow+i, cells)
			warn(w)
			if rec != nil {
				covered.observe(rec.Date)
				batch = append(batch, rec)
			}
		}
		result, err = s.store.UpsertZoneSales(ctx, batch)

	case enums.ReportKindArticles:
		var batch []*models.ArticleSale
		for i, cells := range dataRows {
			rec, w := rows.ArticleSale(firstDataRow+i, cells)
			warn(w)
			if rec != nil {
				covered.observe(rec.PeriodStart)
				batch = append(batch, rec)
			}
		}
		result, err = s.store.UpsertArticleSales(ctx, batch)

	case enums.ReportKindHourly:
		var batch []*models.HourlySlotSale
		for i, cells := range dataRows {
			rec, w := rows.HourlySlotSale(firstDataRow+i, cells)
			warn(w)
			if rec != nil {
				covered.observe(rec.Date)
				batch = append(batch, rec)
			}
		}
		result, err = s.store.UpsertHourlySlotSales(ctx, batch)

	case enums.ReportKindABCRanking:
		var batch []*models.ABCSnapshotEntry
		for i, cells := range dataRows {
			rec, w := rows.ABCSnapshotEntry(firstDataRow+i, cells)
			warn(w)
			if rec != nil {
				covered.observe(rec.DateFrom, rec.DateTo)
				batch = append(batch, rec)
			}
		}
		if len(batch) > 0 {
			result, err = s.store.ReplaceABCSnapshot(ctx, batch[0].DateFrom, batch[0].DateTo, batch)
		}

	default:
		return nil, apperrors.New(apperrors.CodeUnsupported, fmt.Sprintf("report kind %s not importable", kind))
	}
	if err != nil {
		return nil, err
	}

	return &models.ImportBatch{
		DateFrom:        covered.from,
		DateTo:          covered.to,
		RecordsInserted: result.Inserted,
		RecordsUpdated:  result.Updated,
		Warnings:        warnings,
	}, nil
}
