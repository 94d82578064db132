package ledger

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/fabiomorandi/salesboard-backend/pkg/errors"

	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
)

// UpsertResult reports how an upsert batch landed: rows whose natural key was
// new versus rows that refreshed an existing record. Re-importing the same
// file therefore yields inserted=0.
type UpsertResult struct {
	Inserted int
	Updated  int
}

// Repository is the single write/read path for the canonical sales tables.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return r.db
	}
	return r.db.WithContext(ctx)
}

// UpsertDailySettlements writes settlement rows keyed by (store_id, date).
// Duplicate keys inside the batch collapse to the last occurrence before the
// write so counts match the rows that actually land.
func (r *Repository) UpsertDailySettlements(ctx context.Context, rows []*models.DailySettlement) (UpsertResult, error) {
	if len(rows) == 0 {
		return UpsertResult{}, nil
	}

	deduped := make(map[string]*models.DailySettlement, len(rows))
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		key := fmt.Sprintf("%s|%s", row.StoreID, row.Date.Format("2006-01-02"))
		if _, seen := deduped[key]; !seen {
			order = append(order, key)
		}
		deduped[key] = row
	}

	existingKeys, err := r.existingSettlementKeys(ctx, deduped)
	if err != nil {
		return UpsertResult{}, apperrors.Wrap(apperrors.CodeDependency, err, "load existing settlements")
	}

	batch := make([]*models.DailySettlement, 0, len(order))
	result := UpsertResult{}
	for _, key := range order {
		batch = append(batch, deduped[key])
		if existingKeys[key] {
			result.Updated++
		} else {
			result.Inserted++
		}
	}

	err = r.conn(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"gross_revenue", "net_revenue", "vat", "ticket_count", "customer_count",
			"item_qty", "target_revenue", "is_closed", "updated_at",
		}),
	}).Create(&batch).Error
	if err != nil {
		return UpsertResult{}, apperrors.Wrap(apperrors.CodeDependency, err, "upsert daily settlements")
	}
	return result, nil
}

func (r *Repository) existingSettlementKeys(ctx context.Context, deduped map[string]*models.DailySettlement) (map[string]bool, error) {
	stores := make([]string, 0, len(deduped))
	dates := make([]time.Time, 0, len(deduped))
	for _, row := range deduped {
		stores = append(stores, row.StoreID)
		dates = append(dates, row.Date)
	}

	var existing []models.DailySettlement
	err := r.conn(ctx).
		Select("store_id", "date").
		Where("store_id IN ? AND date IN ?", stores, dates).
		Find(&existing).Error
	if err != nil {
		return nil, err
	}

	keys := make(map[string]bool, len(existing))
	for _, row := range existing {
		keys[fmt.Sprintf("%s|%s", row.StoreID, row.Date.Format("2006-01-02"))] = true
	}
	return keys, nil
}

// UpsertZoneSales writes zone rows keyed by (store_id, date, zone).
func (r *Repository) UpsertZoneSales(ctx context.Context, rows []*models.ZoneSale) (UpsertResult, error) {
	if len(rows) == 0 {
		return UpsertResult{}, nil
	}

	deduped := make(map[string]*models.ZoneSale, len(rows))
	order := make([]string, 0, len(rows))
	stores := make([]string, 0, len(rows))
	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		key := fmt.Sprintf("%s|%s|%s", row.StoreID, row.Date.Format("2006-01-02"), row.Zone)
		if _, seen := deduped[key]; !seen {
			order = append(order, key)
			stores = append(stores, row.StoreID)
			dates = append(dates, row.Date)
		}
		deduped[key] = row
	}

	var existing []models.ZoneSale
	err := r.conn(ctx).
		Select("store_id", "date", "zone").
		Where("store_id IN ? AND date IN ?", stores, dates).
		Find(&existing).Error
	if err != nil {
		return UpsertResult{}, apperrors.Wrap(apperrors.CodeDependency, err, "load existing zone sales")
	}
	existingKeys := make(map[string]bool, len(existing))
	for _, row := range existing {
		existingKeys[fmt.Sprintf("%s|%s|%s", row.StoreID, row.Date.Format("2006-01-02"), row.Zone)] = true
	}

	batch := make([]*models.ZoneSale, 0, len(order))
	result := UpsertResult{}
	for _, key := range order {
		batch = append(batch, deduped[key])
		if existingKeys[key] {
			result.Updated++
		} else {
			result.Inserted++
		}
	}

	err = r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "date"}, {Name: "zone"}},
		DoUpdates: clause.AssignmentColumns([]string{"revenue", "net_revenue", "updated_at"}),
	}).Create(&batch).Error
	if err != nil {
		return UpsertResult{}, apperrors.Wrap(apperrors.CodeDependency, err, "upsert zone sales")
	}
	return result, nil
}

// UpsertArticleSales writes article rows keyed by (store_id, period_key, article_code).
func (r *Repository) UpsertArticleSales(ctx context.Context, rows []*models.ArticleSale) (UpsertResult, error) {
	if len(rows) == 0 {
		return UpsertResult{}, nil
	}

	deduped := make(map[string]*models.ArticleSale, len(rows))
	order := make([]string, 0, len(rows))
	stores := make([]string, 0, len(rows))
	periods := make([]string, 0, len(rows))
	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		key := fmt.Sprintf("%s|%s|%s", row.StoreID, row.PeriodKey, row.ArticleCode)
		if _, seen := deduped[key]; !seen {
			order = append(order, key)
			stores = append(stores, row.StoreID)
			periods = append(periods, row.PeriodKey)
			codes = append(codes, row.ArticleCode)
		}
		deduped[key] = row
	}

	var existing []models.ArticleSale
	err := r.conn(ctx).
		Select("store_id", "period_key", "article_code").
		Where("store_id IN ? AND period_key IN ? AND article_code IN ?", stores, periods, codes).
		Find(&existing).Error
	if err != nil {
		return UpsertResult{}, apperrors.Wrap(apperrors.CodeDependency, err, "load existing article sales")
	}
	existingKeys := make(map[string]bool, len(existing))
	for _, row := range existing {
		existingKeys[fmt.Sprintf("%s|%s|%s", row.StoreID, row.PeriodKey, row.ArticleCode)] = true
	}

	batch := make([]*models.ArticleSale, 0, len(order))
	result := UpsertResult{}
	for _, key := range order {
		batch = append(batch, deduped[key])
		if existingKeys[key] {
			result.Updated++
		} else {
			result.Inserted++
		}
	}

	err = r.conn(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "period_key"}, {Name: "article_code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"period_start", "article_name", "family", "subfamily", "channel",
			"quantity", "net_value", "gross_value", "updated_at",
		}),
	}).Create(&batch).Error
	if err != nil {
		return UpsertResult{}, apperrors.Wrap(apperrors.CodeDependency, err, "upsert article sales")
	}
	return result, nil
}

// UpsertHourlySlotSales writes slot rows keyed by (store_id, date, slot).
func (r *Repository) UpsertHourlySlotSales(ctx context.Context, rows []*models.HourlySlotSale) (UpsertResult, error) {
	if len(rows) == 0 {
		return UpsertResult{}, nil
	}

	deduped := make(map[string]*models.HourlySlotSale, len(rows))
	order := make([]string, 0, len(rows))
	stores := make([]string, 0, len(rows))
	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		key := fmt.Sprintf("%s|%s|%s", row.StoreID, row.Date.Format("2006-01-02"), row.Slot)
		if _, seen := deduped[key]; !seen {
			order = append(order, key)
			stores = append(stores, row.StoreID)
			dates = append(dates, row.Date)
		}
		deduped[key] = row
	}

	var existing []models.HourlySlotSale
	err := r.conn(ctx).
		Select("store_id", "date", "slot").
		Where("store_id IN ? AND date IN ?", stores, dates).
		Find(&existing).Error
	if err != nil {
		return UpsertResult{}, apperrors.Wrap(apperrors.CodeDependency, err, "load existing hourly slots")
	}
	existingKeys := make(map[string]bool, len(existing))
	for _, row := range existing {
		existingKeys[fmt.Sprintf("%s|%s|%s", row.StoreID, row.Date.Format("2006-01-02"), row.Slot)] = true
	}

	batch := make([]*models.HourlySlotSale, 0, len(order))
	result := UpsertResult{}
	for _, key := range order {
		batch = append(batch, deduped[key])
		if existingKeys[key] {
			result.Updated++
		} else {
			result.Inserted++
		}
	}

	err = r.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "date"}, {Name: "slot"}},
		DoUpdates: clause.AssignmentColumns([]string{"revenue", "ticket_count", "updated_at"}),
	}).Create(&batch).Error
	if err != nil {
		return UpsertResult{}, apperrors.Wrap(apperrors.CodeDependency, err, "upsert hourly slots")
	}
	return result, nil
}

// ReplaceABCSnapshot swaps the stored ranking for one (date_from, date_to)
// range atomically. Rankings over different ranges are independent and never
// merged row by row.
func (r *Repository) ReplaceABCSnapshot(ctx context.Context, dateFrom, dateTo time.Time, rows []*models.ABCSnapshotEntry) (UpsertResult, error) {
	result := UpsertResult{}
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("date_from = ? AND date_to = ?", dateFrom, dateTo).
			Delete(&models.ABCSnapshotEntry{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		result.Inserted = len(rows)
		return nil
	})
	if err != nil {
		return UpsertResult{}, apperrors.Wrap(apperrors.CodeDependency, err, "replace abc snapshot")
	}
	return result, nil
}

// Filter narrows the article-sales read path. From/To bound the period start
// date inclusively; the remaining fields are optional equality filters.
type Filter struct {
	From     time.Time
	To       time.Time
	StoreID  string
	Category string
	Channel  string
}

// ListArticleSales returns the article rows in the range, ordered stably for
// deterministic downstream aggregation.
func (r *Repository) ListArticleSales(ctx context.Context, filter Filter) ([]models.ArticleSale, error) {
	query := r.conn(ctx).
		Where("period_start >= ? AND period_start <= ?", filter.From, filter.To)
	if filter.StoreID != "" {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.Category != "" {
		query = query.Where("family = ?", filter.Category)
	}
	if filter.Channel != "" {
		query = query.Where("channel = ?", filter.Channel)
	}

	var rows []models.ArticleSale
	if err := query.
		Order("period_start ASC, store_id ASC, article_code ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "list article sales")
	}
	return rows, nil
}

// ListDailySettlements returns settlement rows in the date range, optionally
// for one store.
func (r *Repository) ListDailySettlements(ctx context.Context, from, to time.Time, storeID string) ([]models.DailySettlement, error) {
	query := r.conn(ctx).Where("date >= ? AND date <= ?", from, to)
	if storeID != "" {
		query = query.Where("store_id = ?", storeID)
	}

	var rows []models.DailySettlement
	if err := query.Order("date ASC, store_id ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "list daily settlements")
	}
	return rows, nil
}
