package abc

import (
	"github.com/shopspring/decimal"
)

// concentrationTiers are the fixed top-N cuts the dashboard shows.
var concentrationTiers = []int{5, 10, 20}

// Concentrate measures how much of the total value the first 5/10/20
// value-ranked articles capture. Shorter lists just sum what exists.
func Concentrate(aggregates []Aggregate) Concentration {
	total := decimal.Zero
	for i := range aggregates {
		total = total.Add(aggregates[i].TotalValue)
	}

	summary := Concentration{TotalValue: total, Tiers: make([]ConcentrationTier, 0, len(concentrationTiers))}
	for _, n := range concentrationTiers {
		count := n
		if count > len(aggregates) {
			count = len(aggregates)
		}
		value := decimal.Zero
		for i := 0; i < count; i++ {
			value = value.Add(aggregates[i].TotalValue)
		}
		pct := 0.0
		if total.Sign() > 0 {
			pct = value.Div(total).InexactFloat64()
		}
		summary.Tiers = append(summary.Tiers, ConcentrationTier{
			Top:      n,
			Articles: count,
			Value:    value,
			Pct:      pct,
		})
	}
	return summary
}
