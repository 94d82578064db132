package abc

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
	"github.com/fabiomorandi/salesboard-backend/pkg/enums"
)

// epsilon absorbs float rounding at the class boundaries so an article whose
// cumulative share is exactly the threshold lands inside the class.
const epsilon = 1e-9

// NormalizeArticleName is the merge rule shared by the engine, the evolution
// tracker and the store comparison: case-insensitive, whitespace-collapsed.
func NormalizeArticleName(name string) string {
	return strings.Join(strings.Fields(strings.ToUpper(strings.TrimSpace(name))), " ")
}

// BuildAggregates groups the filtered rows by normalized article name and
// computes both ranking axes. The returned slice is ordered by value rank.
// Empty input yields an empty slice, never an error.
func BuildAggregates(rows []models.ArticleSale, rangeEnd time.Time, cfg Config) []Aggregate {
	groups := groupByName(rows, cfg.UseGross)
	if len(groups) == 0 {
		return []Aggregate{}
	}

	aggregates := make([]Aggregate, 0, len(groups))
	for _, g := range groups {
		sort.Strings(g.codes)
		aggregates = append(aggregates, Aggregate{
			ArticleName:  g.displayName,
			MergedCodes:  g.codes,
			CodeCount:    len(g.codes),
			TotalQty:     g.qty,
			TotalValue:   g.value,
			LastSaleDate: g.lastSale,
		})
	}

	rankAxis(aggregates, cfg,
		func(a *Aggregate) decimal.Decimal { return a.TotalValue },
		func(a *Aggregate, rank int, pct, cum float64, class enums.ABCClass) {
			a.ValueRank, a.ValuePct, a.CumValuePct, a.ValueClass = rank, pct, cum, class
		})
	rankAxis(aggregates, cfg,
		func(a *Aggregate) decimal.Decimal { return a.TotalQty },
		func(a *Aggregate, rank int, pct, cum float64, class enums.ABCClass) {
			a.QtyRank, a.QtyPct, a.CumQtyPct, a.QtyClass = rank, pct, cum, class
		})

	cutoff := rangeEnd.AddDate(0, 0, -cfg.InactiveDays)
	for i := range aggregates {
		aggregates[i].DualClass = Classify(aggregates[i].ValueClass, aggregates[i].QtyClass)
		aggregates[i].Inactive = aggregates[i].LastSaleDate.Before(cutoff)
	}

	sort.Slice(aggregates, func(i, j int) bool {
		return aggregates[i].ValueRank < aggregates[j].ValueRank
	})
	return aggregates
}

// Classify concatenates the two single-axis classes into the dual matrix
// class, e.g. "AB" for value A and quantity B.
func Classify(valueClass, qtyClass enums.ABCClass) string {
	return string(valueClass) + string(qtyClass)
}

type group struct {
	displayName string
	codes       []string
	qty         decimal.Decimal
	value       decimal.Decimal
	lastSale    time.Time
}

func groupByName(rows []models.ArticleSale, useGross bool) map[string]*group {
	groups := make(map[string]*group)
	for _, row := range rows {
		key := NormalizeArticleName(row.ArticleName)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{displayName: row.ArticleName}
			groups[key] = g
		}
		value := row.NetValue
		if useGross {
			value = row.GrossValue
		}
		g.qty = g.qty.Add(row.Quantity)
		g.value = g.value.Add(value)
		if !containsString(g.codes, row.ArticleCode) {
			g.codes = append(g.codes, row.ArticleCode)
		}
		if row.PeriodStart.After(g.lastSale) {
			g.lastSale = row.PeriodStart
		}
	}
	return groups
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// rankAxis sorts by one axis total descending (name ascending on equal
// totals) and assigns rank, share, cumulative share and class in place. A
// zero grand total reports every share as zero instead of NaN.
func rankAxis(
	aggregates []Aggregate,
	cfg Config,
	total func(*Aggregate) decimal.Decimal,
	assign func(a *Aggregate, rank int, pct, cum float64, class enums.ABCClass),
) {
	order := make([]int, len(aggregates))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(x, y int) bool {
		a, b := &aggregates[order[x]], &aggregates[order[y]]
		if cmp := total(a).Cmp(total(b)); cmp != 0 {
			return cmp > 0
		}
		return NormalizeArticleName(a.ArticleName) < NormalizeArticleName(b.ArticleName)
	})

	grandTotal := decimal.Zero
	for i := range aggregates {
		grandTotal = grandTotal.Add(total(&aggregates[i]))
	}

	cum := 0.0
	for rank, idx := range order {
		a := &aggregates[idx]
		pct := 0.0
		if grandTotal.Sign() > 0 {
			pct = total(a).Div(grandTotal).InexactFloat64()
		}
		cum += pct

		class := enums.ABCClassC
		switch {
		case cum <= cfg.ClassAThreshold+epsilon:
			class = enums.ABCClassA
		case cum <= cfg.ClassBThreshold+epsilon:
			class = enums.ABCClassB
		}
		assign(a, rank+1, pct, cum, class)
	}
}
