package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fabiomorandi/salesboard-backend/internal/ledger"
	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
	"github.com/fabiomorandi/salesboard-backend/pkg/enums"
	apperrors "github.com/fabiomorandi/salesboard-backend/pkg/errors"
	"github.com/fabiomorandi/salesboard-backend/pkg/logger"
	"github.com/fabiomorandi/salesboard-backend/pkg/metrics"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:ingest_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = conn.AutoMigrate(
		&models.DailySettlement{},
		&models.ZoneSale{},
		&models.ArticleSale{},
		&models.HourlySlotSale{},
		&models.ABCSnapshotEntry{},
		&models.ImportBatch{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	log := logger.New(logger.Options{ServiceName: "ingest-test", Level: zerolog.ErrorLevel})
	m := metrics.NewIngestMetrics(prometheus.NewRegistry())
	return NewService(ledger.NewRepository(conn), ledger.NewBatchRepository(conn), log, m), conn
}

func writeWorkbook(t *testing.T, name string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestIngestSettlementWorkbook(t *testing.T) {
	svc, conn := newTestService(t)
	path := writeWorkbook(t, "chiusura.xlsx", [][]any{
		{"Punto Vendita", "Data", "Incasso Lordo", "Incasso Netto", "IVA", "Scontrini", "Coperti"},
		{"Milano Centro", "14/02/2025", "1.234,56", "1.011,94", "222,62", "145", "160"},
		{"Torino Centro", "14/02/2025", "980,00", "803,28", "176,72", "120", "131"},
	})

	batch, err := svc.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if batch.DetectedKind != enums.ReportKindFullSettlement {
		t.Fatalf("kind = %s", batch.DetectedKind)
	}
	if batch.RecordsInserted != 2 || batch.RecordsUpdated != 0 {
		t.Fatalf("counts = %d/%d", batch.RecordsInserted, batch.RecordsUpdated)
	}
	if len(batch.Warnings) != 0 {
		t.Fatalf("warnings = %v", batch.Warnings)
	}
	if batch.DateFrom == nil || batch.DateTo == nil ||
		batch.DateFrom.Format("2006-01-02") != "2025-02-14" ||
		batch.DateTo.Format("2006-01-02") != "2025-02-14" {
		t.Fatalf("range = %v..%v", batch.DateFrom, batch.DateTo)
	}

	var count int64
	if err := conn.Model(&models.DailySettlement{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("settlements = %d", count)
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	svc, conn := newTestService(t)
	path := writeWorkbook(t, "articoli.xlsx", [][]any{
		{"Punto Vendita", "Data", "Codice", "Articolo", "Quantità", "Valore Netto"},
		{"Milano Centro", "02/2025", "P001", "Pizza Margherita", "320", "2.240,00"},
		{"Milano Centro", "02/2025", "P002", "Pasta Carbonara", "150", "1.650,00"},
	})

	first, err := svc.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if first.RecordsInserted != 2 {
		t.Fatalf("first counts = %d/%d", first.RecordsInserted, first.RecordsUpdated)
	}

	second, err := svc.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if second.RecordsInserted != 0 || second.RecordsUpdated != 2 {
		t.Fatalf("second counts = %d/%d, want 0 inserted", second.RecordsInserted, second.RecordsUpdated)
	}

	var count int64
	if err := conn.Model(&models.ArticleSale{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("article rows = %d, want no duplicates", count)
	}
}

func TestIngestSkipsBadRowsWithWarnings(t *testing.T) {
	svc, conn := newTestService(t)
	path := writeWorkbook(t, "zone.xlsx", [][]any{
		{"Punto Vendita", "Data", "Zona", "Incasso"},
		{"Milano Centro", "14/02/2025", "Sala", "850,00"},
		{"Napoli Vomero", "14/02/2025", "Sala", "300,00"},
		{"Milano Centro", "data rotta", "Dehors", "120,00"},
	})

	batch, err := svc.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if batch.RecordsInserted != 1 {
		t.Fatalf("inserted = %d, want 1", batch.RecordsInserted)
	}
	if len(batch.Warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", batch.Warnings)
	}

	var count int64
	if err := conn.Model(&models.ZoneSale{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("zone rows = %d", count)
	}
}

func TestIngestUnknownLayout(t *testing.T) {
	svc, conn := newTestService(t)
	path := writeWorkbook(t, "rubrica.xlsx", [][]any{
		{"Nome", "Cognome", "Telefono"},
		{"Mario", "Rossi", "333 1234567"},
	})

	batch, err := svc.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("unknown layout must not be an error: %v", err)
	}
	if batch.DetectedKind != enums.ReportKindUnknown {
		t.Fatalf("kind = %s", batch.DetectedKind)
	}
	if batch.RecordsInserted != 0 || batch.RecordsUpdated != 0 {
		t.Fatalf("counts = %d/%d, want zero", batch.RecordsInserted, batch.RecordsUpdated)
	}
	if len(batch.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", batch.Warnings)
	}

	var count int64
	if err := conn.Model(&models.ImportBatch{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("batches = %d, want audit record even for unknown files", count)
	}
}

func TestIngestUnreadableFile(t *testing.T) {
	svc, conn := newTestService(t)
	path := filepath.Join(t.TempDir(), "corrotto.xlsx")
	if err := os.WriteFile(path, []byte("this is not a zip archive"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := svc.Ingest(context.Background(), path)
	appErr := apperrors.As(err)
	if appErr == nil || appErr.Code() != apperrors.CodeUnsupported {
		t.Fatalf("err = %v, want unsupported file", err)
	}

	var count int64
	if err := conn.Model(&models.ImportBatch{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("batches = %d, want none for unreadable file", count)
	}
}

func TestIngestABCSnapshotReplacesRange(t *testing.T) {
	svc, conn := newTestService(t)
	header := []any{"Pos.", "Codice", "Articolo", "Quantità", "Valore", "Classe", "Dal", "Al"}

	first := writeWorkbook(t, "abc_v1.xlsx", [][]any{
		header,
		{"1", "P001", "Pizza Margherita", "320", "2.464,00", "A", "01/02/2025", "28/02/2025"},
		{"2", "P002", "Pasta Carbonara", "150", "1.650,00", "B", "01/02/2025", "28/02/2025"},
	})
	if _, err := svc.Ingest(context.Background(), first); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	second := writeWorkbook(t, "abc_v2.xlsx", [][]any{
		header,
		{"1", "P002", "Pasta Carbonara", "400", "4.400,00", "A", "01/02/2025", "28/02/2025"},
	})
	batch, err := svc.Ingest(context.Background(), second)
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if batch.DetectedKind != enums.ReportKindABCRanking {
		t.Fatalf("kind = %s", batch.DetectedKind)
	}

	var rows []models.ABCSnapshotEntry
	if err := conn.Find(&rows).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 1 || rows[0].ArticleCode != "P002" {
		t.Fatalf("snapshot not replaced: %+v", rows)
	}
}

func TestIngestWarningsCiteSheetRowsBelowOffsetHeader(t *testing.T) {
	svc, _ := newTestService(t)
	path := writeWorkbook(t, "zone_con_titolo.xlsx", [][]any{
		{"Incassi per zona"},
		{"Febbraio 2025"},
		{},
		{"Punto Vendita", "Data", "Zona", "Incasso"},
		{"Milano Centro", "14/02/2025", "Sala", "850,00"},
		{"Milano Centro", "data rotta", "Dehors", "120,00"},
	})

	batch, err := svc.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if batch.RecordsInserted != 1 {
		t.Fatalf("inserted = %d, want 1", batch.RecordsInserted)
	}
	if len(batch.Warnings) != 1 {
		t.Fatalf("warnings = %v, want 1", batch.Warnings)
	}
	if !strings.HasPrefix(batch.Warnings[0], "row 6:") {
		t.Fatalf("warning = %q, want the sheet row the operator sees (row 6)", batch.Warnings[0])
	}
}

func TestIngestSkipsTitleRowsAboveHeader(t *testing.T) {
	svc, _ := newTestService(t)
	path := writeWorkbook(t, "orari.xlsx", [][]any{
		{},
		{"Report incassi orari"},
		{},
		{"Punto Vendita", "Data", "Fascia Oraria", "Incasso", "Scontrini"},
		{"Bologna Fiera", "14/02/2025", "12:00-13:00", "310,00", "41"},
	})

	batch, err := svc.Ingest(context.Background(), path)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if batch.DetectedKind != enums.ReportKindHourly {
		t.Fatalf("kind = %s", batch.DetectedKind)
	}
	if batch.RecordsInserted != 1 {
		t.Fatalf("inserted = %d", batch.RecordsInserted)
	}
}
