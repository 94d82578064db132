package models

import (
	"time"

	"github.com/fabiomorandi/salesboard-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// ABCSnapshotEntry is one row of the pre-ranked ABC report the back office
// exports for a whole date range. Unlike the other kinds the snapshot is
// replaced wholesale per (date_from, date_to): merging two rankings computed
// over different ranges row by row would corrupt both.
type ABCSnapshotEntry struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement"`
	DateFrom    time.Time       `gorm:"column:date_from;type:date;not null;index:ix_abc_snapshot_entries_range"`
	DateTo      time.Time       `gorm:"column:date_to;type:date;not null;index:ix_abc_snapshot_entries_range"`
	StoreID     string          `gorm:"column:store_id;not null"`
	Rank        int             `gorm:"column:rank;not null"`
	ArticleCode string          `gorm:"column:article_code;not null"`
	ArticleName string          `gorm:"column:article_name;not null"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric;not null"`
	Value       decimal.Decimal `gorm:"column:value;type:numeric;not null"`
	Class       enums.ABCClass  `gorm:"column:class;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
