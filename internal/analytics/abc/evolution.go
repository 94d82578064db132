package abc

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
)

// WeekStart returns the Monday of the ISO week containing t, as a UTC date.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// WeekKey formats the ISO week label, e.g. "2025-W07".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// TrackEvolution recomputes the value ranking per ISO week for the overall
// top-N articles. A week where one of them sold nothing yields no point for
// that pair, leaving a gap rather than a fake rank.
func TrackEvolution(rows []models.ArticleSale, rangeEnd time.Time, cfg Config) []EvolutionPoint {
	if len(rows) == 0 {
		return []EvolutionPoint{}
	}

	topN := cfg.EvolutionTopN
	if topN <= 0 {
		topN = DefaultConfig().EvolutionTopN
	}
	overall := BuildAggregates(rows, rangeEnd, cfg)
	tracked := make(map[string]bool, topN)
	for i := 0; i < len(overall) && i < topN; i++ {
		tracked[NormalizeArticleName(overall[i].ArticleName)] = true
	}

	weeks := make(map[time.Time][]models.ArticleSale)
	for _, row := range rows {
		start := WeekStart(row.PeriodStart)
		weeks[start] = append(weeks[start], row)
	}
	starts := make([]time.Time, 0, len(weeks))
	for start := range weeks {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	points := []EvolutionPoint{}
	for _, start := range starts {
		ranked := weeklyValueRanking(weeks[start], cfg.UseGross)
		for rank, name := range ranked {
			if !tracked[NormalizeArticleName(name)] {
				continue
			}
			points = append(points, EvolutionPoint{
				WeekKey:     WeekKey(start),
				WeekStart:   start,
				ArticleName: name,
				Rank:        rank + 1,
			})
		}
	}
	return points
}

// weeklyValueRanking returns the week's article names in value order, ties
// broken by normalized name ascending.
func weeklyValueRanking(rows []models.ArticleSale, useGross bool) []string {
	type entry struct {
		name  string
		value decimal.Decimal
	}
	totals := make(map[string]*entry)
	for _, row := range rows {
		key := NormalizeArticleName(row.ArticleName)
		if key == "" {
			continue
		}
		value := row.NetValue
		if useGross {
			value = row.GrossValue
		}
		if e, ok := totals[key]; ok {
			e.value = e.value.Add(value)
		} else {
			totals[key] = &entry{name: row.ArticleName, value: value}
		}
	}

	entries := make([]*entry, 0, len(totals))
	for _, e := range totals {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if cmp := entries[i].value.Cmp(entries[j].value); cmp != 0 {
			return cmp > 0
		}
		return NormalizeArticleName(entries[i].name) < NormalizeArticleName(entries[j].name)
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}
