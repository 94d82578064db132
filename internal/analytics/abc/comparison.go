package abc

import (
	"sort"

	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
)

// CompareStores pivots the rows into per-(store, article) totals using the
// same name-merge rule as the ranking engine, sorted by value descending.
func CompareStores(rows []models.ArticleSale, useGross bool) []StoreTotal {
	type key struct {
		store string
		name  string
	}
	cells := make(map[key]*StoreTotal)
	for _, row := range rows {
		normalized := NormalizeArticleName(row.ArticleName)
		if normalized == "" {
			continue
		}
		k := key{store: row.StoreID, name: normalized}
		cell, ok := cells[k]
		if !ok {
			cell = &StoreTotal{StoreID: row.StoreID, ArticleName: row.ArticleName}
			cells[k] = cell
		}
		value := row.NetValue
		if useGross {
			value = row.GrossValue
		}
		cell.TotalQty = cell.TotalQty.Add(row.Quantity)
		cell.TotalValue = cell.TotalValue.Add(value)
	}

	totals := make([]StoreTotal, 0, len(cells))
	for _, cell := range cells {
		totals = append(totals, *cell)
	}
	sort.Slice(totals, func(i, j int) bool {
		if cmp := totals[i].TotalValue.Cmp(totals[j].TotalValue); cmp != 0 {
			return cmp > 0
		}
		if totals[i].StoreID != totals[j].StoreID {
			return totals[i].StoreID < totals[j].StoreID
		}
		return NormalizeArticleName(totals[i].ArticleName) < NormalizeArticleName(totals[j].ArticleName)
	})
	return totals
}
