package abc

import (
	"testing"
	"time"

	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
)

func TestWeekStart(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{day(2025, 2, 10), day(2025, 2, 10)}, // a Monday maps to itself
		{day(2025, 2, 14), day(2025, 2, 10)}, // Friday
		{day(2025, 2, 16), day(2025, 2, 10)}, // Sunday still belongs to Monday's week
		{day(2025, 2, 17), day(2025, 2, 17)}, // next Monday
	}
	for _, tt := range tests {
		if got := WeekStart(tt.in); !got.Equal(tt.want) {
			t.Fatalf("WeekStart(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestWeekKey(t *testing.T) {
	t.Parallel()
	if got := WeekKey(day(2025, 2, 10)); got != "2025-W07" {
		t.Fatalf("WeekKey = %s", got)
	}
	// Dec 29, 2025 is already ISO week 1 of 2026.
	if got := WeekKey(day(2025, 12, 29)); got != "2026-W01" {
		t.Fatalf("WeekKey = %s", got)
	}
}

func TestTrackEvolutionGap(t *testing.T) {
	t.Parallel()
	week1 := day(2025, 2, 10)
	week2 := day(2025, 2, 17)
	rows := []models.ArticleSale{
		row("MI01", "Pizza", "P001", week1, "70", "700"),
		row("MI01", "Pasta", "P002", week1, "20", "200"),
		row("MI01", "Pizza", "P001", week2, "60", "600"),
		// Pasta sells nothing in week 2.
	}

	points := TrackEvolution(rows, day(2025, 2, 23), DefaultConfig())

	var pastaPoints, pizzaPoints []EvolutionPoint
	for _, p := range points {
		switch p.ArticleName {
		case "Pasta":
			pastaPoints = append(pastaPoints, p)
		case "Pizza":
			pizzaPoints = append(pizzaPoints, p)
		}
	}

	if len(pastaPoints) != 1 {
		t.Fatalf("pasta points = %d, want 1 (gap in week 2)", len(pastaPoints))
	}
	if pastaPoints[0].WeekStart != week1 || pastaPoints[0].Rank != 2 {
		t.Fatalf("pasta point = %+v, want rank 2 in week 1", pastaPoints[0])
	}
	if len(pizzaPoints) != 2 {
		t.Fatalf("pizza points = %d, want 2", len(pizzaPoints))
	}
	for _, p := range pizzaPoints {
		if p.Rank != 1 {
			t.Fatalf("pizza rank = %d in %s, want 1", p.Rank, p.WeekKey)
		}
	}
}

func TestTrackEvolutionTopNLimit(t *testing.T) {
	t.Parallel()
	week := day(2025, 2, 10)
	rows := []models.ArticleSale{
		row("MI01", "Primo", "C001", week, "1", "300"),
		row("MI01", "Secondo", "C002", week, "1", "200"),
		row("MI01", "Terzo", "C003", week, "1", "100"),
	}

	cfg := DefaultConfig()
	cfg.EvolutionTopN = 2
	points := TrackEvolution(rows, day(2025, 2, 16), cfg)

	if len(points) != 2 {
		t.Fatalf("points = %d, want only top 2 tracked", len(points))
	}
	for _, p := range points {
		if p.ArticleName == "Terzo" {
			t.Fatal("article outside top-N tracked")
		}
	}
}

func TestTrackEvolutionPerWeekReRank(t *testing.T) {
	t.Parallel()
	week1 := day(2025, 2, 10)
	week2 := day(2025, 2, 17)
	rows := []models.ArticleSale{
		row("MI01", "Pizza", "P001", week1, "1", "700"),
		row("MI01", "Pasta", "P002", week1, "1", "200"),
		row("MI01", "Pizza", "P001", week2, "1", "100"),
		row("MI01", "Pasta", "P002", week2, "1", "900"),
	}

	points := TrackEvolution(rows, day(2025, 2, 23), DefaultConfig())
	ranks := map[string]map[string]int{}
	for _, p := range points {
		if ranks[p.ArticleName] == nil {
			ranks[p.ArticleName] = map[string]int{}
		}
		ranks[p.ArticleName][p.WeekKey] = p.Rank
	}

	if ranks["Pizza"]["2025-W07"] != 1 || ranks["Pizza"]["2025-W08"] != 2 {
		t.Fatalf("pizza ranks = %v, want 1 then 2", ranks["Pizza"])
	}
	if ranks["Pasta"]["2025-W07"] != 2 || ranks["Pasta"]["2025-W08"] != 1 {
		t.Fatalf("pasta ranks = %v, want 2 then 1", ranks["Pasta"])
	}
}

func TestTrackEvolutionEmpty(t *testing.T) {
	t.Parallel()
	if points := TrackEvolution(nil, day(2025, 2, 28), DefaultConfig()); len(points) != 0 {
		t.Fatalf("points = %v", points)
	}
}
