package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySettlement is the canonical end-of-day settlement total for one store.
// Natural key: (store_id, date). Later imports covering the same key overwrite
// all non-key fields; rows are never deleted by ingestion.
type DailySettlement struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement"`
	StoreID       string          `gorm:"column:store_id;not null;uniqueIndex:ux_daily_settlements_store_date"`
	Date          time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:ux_daily_settlements_store_date"`
	GrossRevenue  decimal.Decimal `gorm:"column:gross_revenue;type:numeric;not null"`
	NetRevenue    decimal.Decimal `gorm:"column:net_revenue;type:numeric;not null"`
	VAT           decimal.Decimal `gorm:"column:vat;type:numeric;not null"`
	TicketCount   int             `gorm:"column:ticket_count;not null;default:0"`
	CustomerCount int             `gorm:"column:customer_count;not null;default:0"`
	ItemQty       decimal.Decimal `gorm:"column:item_qty;type:numeric;not null"`
	TargetRevenue decimal.Decimal `gorm:"column:target_revenue;type:numeric;not null"`
	IsClosed      bool            `gorm:"column:is_closed;not null;default:false"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
