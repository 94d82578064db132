package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/fabiomorandi/salesboard-backend/internal/ingest"
	"github.com/fabiomorandi/salesboard-backend/internal/ledger"
	"github.com/fabiomorandi/salesboard-backend/pkg/config"
	"github.com/fabiomorandi/salesboard-backend/pkg/db"
	"github.com/fabiomorandi/salesboard-backend/pkg/enums"
	"github.com/fabiomorandi/salesboard-backend/pkg/logger"
	"github.com/fabiomorandi/salesboard-backend/pkg/metrics"
	"github.com/fabiomorandi/salesboard-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "ingest"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "ingest",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	store := ledger.NewRepository(dbClient.DB())
	batches := ledger.NewBatchRepository(dbClient.DB())
	ingestMetrics := metrics.NewIngestMetrics(prometheus.DefaultRegisterer)
	service := ingest.NewService(store, batches, logg, ingestMetrics)

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":   cfg.App.Env,
		"inbox": cfg.Ingest.InboxDir,
	})

	if err := runInbox(ctx, cfg.Ingest, service, logg); err != nil {
		logg.Error(ctx, "inbox run finished with errors", err)
		os.Exit(1)
	}
	logg.Info(ctx, "inbox run completed")
}

// runInbox ingests every spreadsheet in the inbox directory. Files land in the
// processed directory on success and in quarantine when the layout is unknown
// or the file cannot be read. Failures do not stop the run.
func runInbox(ctx context.Context, cfg config.IngestConfig, service *ingest.Service, logg *logger.Logger) error {
	for _, dir := range []string{cfg.ProcessedDir, cfg.QuarantineDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(cfg.InboxDir)
	if err != nil {
		return fmt.Errorf("reading inbox %s: %w", cfg.InboxDir, err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !isSpreadsheet(entry.Name()) {
			continue
		}

		path := filepath.Join(cfg.InboxDir, entry.Name())
		fileCtx := logg.WithFile(ctx, entry.Name())

		batch, err := service.Ingest(ctx, path)
		switch {
		case err != nil:
			logg.Warn(fileCtx, "file quarantined: "+err.Error())
			errs = append(errs, multierr.Append(fmt.Errorf("ingest %s", entry.Name()), err))
			if moveErr := moveFile(path, cfg.QuarantineDir); moveErr != nil {
				errs = append(errs, moveErr)
			}

		case batch.DetectedKind == enums.ReportKindUnknown:
			logg.Warn(fileCtx, "unknown layout, file quarantined")
			if moveErr := moveFile(path, cfg.QuarantineDir); moveErr != nil {
				errs = append(errs, moveErr)
			}

		default:
			if moveErr := moveFile(path, cfg.ProcessedDir); moveErr != nil {
				errs = append(errs, moveErr)
			}
		}
	}

	return multierr.Combine(errs...)
}

func isSpreadsheet(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

func moveFile(path, destDir string) error {
	dest := filepath.Join(destDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("moving %s to %s: %w", path, destDir, err)
	}
	return nil
}
