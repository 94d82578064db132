package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ZoneSale breaks a store's daily revenue down by serving zone (dining room,
// terrace, counter, delivery channel). Natural key: (store_id, date, zone).
type ZoneSale struct {
	ID         uint            `gorm:"column:id;primaryKey;autoIncrement"`
	StoreID    string          `gorm:"column:store_id;not null;uniqueIndex:ux_zone_sales_store_date_zone"`
	Date       time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:ux_zone_sales_store_date_zone"`
	Zone       string          `gorm:"column:zone;not null;uniqueIndex:ux_zone_sales_store_date_zone"`
	Revenue    decimal.Decimal `gorm:"column:revenue;type:numeric;not null"`
	NetRevenue decimal.Decimal `gorm:"column:net_revenue;type:numeric;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
