package abc

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fabiomorandi/salesboard-backend/pkg/enums"
)

// Config carries the classification policy. Thresholds are cumulative shares:
// an article is A while the running share stays within ClassA, B within
// ClassB, C beyond.
type Config struct {
	UseGross        bool
	ClassAThreshold float64
	ClassBThreshold float64
	InactiveDays    int
	EvolutionTopN   int
}

// DefaultConfig mirrors the classic 70/90 Pareto split.
func DefaultConfig() Config {
	return Config{
		ClassAThreshold: 0.70,
		ClassBThreshold: 0.90,
		InactiveDays:    30,
		EvolutionTopN:   10,
	}
}

// Aggregate is one article group after name merging, carrying both ranking
// axes. Computed per query, never persisted.
type Aggregate struct {
	ArticleName string          `json:"article_name"`
	MergedCodes []string        `json:"merged_codes"`
	CodeCount   int             `json:"code_count"`
	TotalQty    decimal.Decimal `json:"total_qty"`
	TotalValue  decimal.Decimal `json:"total_value"`

	ValueRank    int            `json:"value_rank"`
	ValuePct     float64        `json:"value_pct"`
	CumValuePct  float64        `json:"cumulative_value_pct"`
	ValueClass   enums.ABCClass `json:"value_class"`
	QtyRank      int            `json:"qty_rank"`
	QtyPct       float64        `json:"qty_pct"`
	CumQtyPct    float64        `json:"cumulative_qty_pct"`
	QtyClass     enums.ABCClass `json:"qty_class"`
	DualClass    string         `json:"dual_class"`
	Inactive     bool           `json:"inactive"`
	LastSaleDate time.Time      `json:"last_sale_date"`
}

// ConcentrationTier is the share of total value captured by the first N
// value-ranked articles.
type ConcentrationTier struct {
	Top      int             `json:"top"`
	Articles int             `json:"articles"`
	Value    decimal.Decimal `json:"value"`
	Pct      float64         `json:"pct"`
}

// Concentration summarizes how concentrated revenue is at the top of the
// value ranking.
type Concentration struct {
	TotalValue decimal.Decimal     `json:"total_value"`
	Tiers      []ConcentrationTier `json:"tiers"`
}

// EvolutionPoint is one article's value rank within one week. Weeks where the
// article had no sales produce no point at all.
type EvolutionPoint struct {
	WeekKey     string    `json:"week_key"`
	WeekStart   time.Time `json:"week_start"`
	ArticleName string    `json:"article_name"`
	Rank        int       `json:"rank"`
}

// StoreTotal is one (store, article) cell of the comparison pivot.
type StoreTotal struct {
	StoreID     string          `json:"store_id"`
	ArticleName string          `json:"article_name"`
	TotalQty    decimal.Decimal `json:"total_qty"`
	TotalValue  decimal.Decimal `json:"total_value"`
}
