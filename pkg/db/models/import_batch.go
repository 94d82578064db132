package models

import (
	"time"

	"github.com/fabiomorandi/salesboard-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ImportBatch is the append-only audit record of one ingestion run. It is
// created once per file and never mutated or deleted afterwards.
type ImportBatch struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	Filename        string           `gorm:"column:filename;not null"`
	DetectedKind    enums.ReportKind `gorm:"column:detected_kind;not null"`
	DateFrom        *time.Time       `gorm:"column:date_from;type:date"`
	DateTo          *time.Time       `gorm:"column:date_to;type:date"`
	RecordsInserted int              `gorm:"column:records_inserted;not null;default:0"`
	RecordsUpdated  int              `gorm:"column:records_updated;not null;default:0"`
	Warnings        pq.StringArray   `gorm:"column:warnings;type:text[]"`
	ImportedAt      time.Time        `gorm:"column:imported_at;autoCreateTime"`
}
