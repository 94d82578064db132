package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fabiomorandi/salesboard-backend/pkg/db"
	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
	apperrors "github.com/fabiomorandi/salesboard-backend/pkg/errors"
	"github.com/fabiomorandi/salesboard-backend/pkg/pagination"
)

// BatchRepository persists the append-only import audit log.
type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func (r *BatchRepository) conn(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return r.db
	}
	return r.db.WithContext(ctx)
}

// Create records one ingestion run. The ID is assigned here when the caller
// left it zero.
func (r *BatchRepository) Create(ctx context.Context, batch *models.ImportBatch) error {
	if batch.ID == uuid.Nil {
		batch.ID = uuid.New()
	}
	if err := r.conn(ctx).Create(batch).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return apperrors.Wrap(apperrors.CodeConflict, err, "import batch already recorded")
		}
		return apperrors.Wrap(apperrors.CodeDependency, err, "create import batch")
	}
	return nil
}

// List returns one page of import batches, newest first. The second return
// value is the cursor for the next page, empty when the history is exhausted.
func (r *BatchRepository) List(ctx context.Context, params pagination.Params) ([]models.ImportBatch, string, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	query := r.conn(ctx).
		Order("imported_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if cursor != nil {
		query = query.Where(
			"imported_at < ? OR (imported_at = ? AND id < ?)",
			cursor.ImportedAt, cursor.ImportedAt, cursor.ID,
		)
	}

	var batches []models.ImportBatch
	if err := query.Find(&batches).Error; err != nil {
		return nil, "", apperrors.Wrap(apperrors.CodeDependency, err, "list import batches")
	}

	next := ""
	if len(batches) > limit {
		batches = batches[:limit]
		last := batches[limit-1]
		next = pagination.EncodeCursor(pagination.Cursor{
			ImportedAt: last.ImportedAt,
			ID:         last.ID,
		})
	}
	return batches, next, nil
}

// Get returns one batch by ID.
func (r *BatchRepository) Get(ctx context.Context, id uuid.UUID) (*models.ImportBatch, error) {
	var batch models.ImportBatch
	err := r.conn(ctx).Where("id = ?", id).First(&batch).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.New(apperrors.CodeNotFound, "import batch not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "get import batch")
	}
	return &batch, nil
}
