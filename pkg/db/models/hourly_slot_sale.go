package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// HourlySlotSale is one store's revenue within one time slot of one day.
// Natural key: (store_id, date, slot).
type HourlySlotSale struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement"`
	StoreID     string          `gorm:"column:store_id;not null;uniqueIndex:ux_hourly_slot_sales_store_date_slot"`
	Date        time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:ux_hourly_slot_sales_store_date_slot"`
	Slot        string          `gorm:"column:slot;not null;uniqueIndex:ux_hourly_slot_sales_store_date_slot"`
	Revenue     decimal.Decimal `gorm:"column:revenue;type:numeric;not null"`
	TicketCount int             `gorm:"column:ticket_count;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
