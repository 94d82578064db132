package abc

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
)

func TestConcentrateShortList(t *testing.T) {
	t.Parallel()
	rows := []models.ArticleSale{
		row("MI01", "Pizza", "P001", day(2025, 2, 10), "70", "700"),
		row("MI01", "Pasta", "P002", day(2025, 2, 10), "20", "200"),
		row("MI01", "Salad", "P003", day(2025, 2, 10), "10", "100"),
	}
	aggregates := BuildAggregates(rows, day(2025, 2, 28), DefaultConfig())

	summary := Concentrate(aggregates)
	if !summary.TotalValue.Equal(decimal.RequireFromString("1000")) {
		t.Fatalf("total = %s", summary.TotalValue)
	}
	if len(summary.Tiers) != 3 {
		t.Fatalf("tiers = %d", len(summary.Tiers))
	}

	// Fewer than 5 articles exist, so every tier covers all of them.
	for _, tier := range summary.Tiers {
		if tier.Articles != 3 {
			t.Fatalf("top %d articles = %d, want 3", tier.Top, tier.Articles)
		}
		if !tier.Value.Equal(decimal.RequireFromString("1000")) {
			t.Fatalf("top %d value = %s, want 1000", tier.Top, tier.Value)
		}
		if !approx(tier.Pct, 1.0) {
			t.Fatalf("top %d pct = %f, want 1.0", tier.Top, tier.Pct)
		}
	}
}

func TestConcentrateLongList(t *testing.T) {
	t.Parallel()
	rows := make([]models.ArticleSale, 0, 8)
	names := []string{"Uno", "Due", "Tre", "Quattro", "Cinque", "Sei", "Sette", "Otto"}
	values := []string{"800", "400", "200", "100", "100", "100", "100", "200"}
	for i, name := range names {
		rows = append(rows, row("MI01", name, "C00"+name, day(2025, 2, 10), "1", values[i]))
	}
	aggregates := BuildAggregates(rows, day(2025, 2, 28), DefaultConfig())

	summary := Concentrate(aggregates)
	// Total 2000; top 5 by value: 800+400+200+200+100 = 1700.
	top5 := summary.Tiers[0]
	if top5.Top != 5 || top5.Articles != 5 {
		t.Fatalf("tier = %+v", top5)
	}
	if !top5.Value.Equal(decimal.RequireFromString("1700")) {
		t.Fatalf("top5 value = %s, want 1700", top5.Value)
	}
	if !approx(top5.Pct, 0.85) {
		t.Fatalf("top5 pct = %f, want 0.85", top5.Pct)
	}
}

func TestConcentrateZeroTotal(t *testing.T) {
	t.Parallel()
	summary := Concentrate([]Aggregate{})
	if !summary.TotalValue.IsZero() {
		t.Fatalf("total = %s", summary.TotalValue)
	}
	for _, tier := range summary.Tiers {
		if tier.Pct != 0 || tier.Articles != 0 {
			t.Fatalf("tier = %+v, want zeroes", tier)
		}
	}
}
