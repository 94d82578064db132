package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArticleSale is one article's sales total for one store and one period.
// PeriodKey is the raw period from the export (a day "2025-02-14" or a month
// "2025-02"); PeriodStart is its first day, used for range filters and weekly
// bucketing. Natural key: (store_id, period_key, article_code). Several codes
// may share one article name; the analytics engine merges them by name without
// touching the underlying rows.
type ArticleSale struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement"`
	StoreID     string          `gorm:"column:store_id;not null;uniqueIndex:ux_article_sales_store_period_code"`
	PeriodKey   string          `gorm:"column:period_key;not null;uniqueIndex:ux_article_sales_store_period_code"`
	PeriodStart time.Time       `gorm:"column:period_start;type:date;not null;index"`
	ArticleCode string          `gorm:"column:article_code;not null;uniqueIndex:ux_article_sales_store_period_code"`
	ArticleName string          `gorm:"column:article_name;not null"`
	Family      string          `gorm:"column:family"`
	Subfamily   string          `gorm:"column:subfamily"`
	Channel     string          `gorm:"column:channel"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:numeric;not null"`
	NetValue    decimal.Decimal `gorm:"column:net_value;type:numeric;not null"`
	GrossValue  decimal.Decimal `gorm:"column:gross_value;type:numeric;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
