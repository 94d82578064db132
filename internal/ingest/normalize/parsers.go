package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseDecimal converts a locale-formatted amount ("1.234,56", "€ 12,50",
// "1234.56") into a decimal. Currency symbols and whitespace are tolerated.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer("€", "", "EUR", "", " ", "", " ", "").Replace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		// The rightmost separator is the decimal one; the other groups thousands.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	dec, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return dec, nil
}

// decimalOrZero is the lenient variant for secondary numeric cells: blank or
// malformed values become zero so downstream sums stay total.
func decimalOrZero(raw string) decimal.Decimal {
	dec, err := ParseDecimal(raw)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

func intOrZero(raw string) int {
	dec, err := ParseDecimal(raw)
	if err != nil {
		return 0
	}
	return int(dec.IntPart())
}

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
}

// ParseDate converts a dd/mm/yyyy (or ISO) cell into a UTC date.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

var monthLayouts = []string{
	"01/2006",
	"1/2006",
	"2006-01",
}

// ParsePeriod accepts either a day or a month cell. It returns the canonical
// period key ("2025-02-14" or "2025-02") and the period's first day.
func ParsePeriod(raw string) (string, time.Time, error) {
	if day, err := ParseDate(raw); err == nil {
		return day.Format("2006-01-02"), day, nil
	}
	s := strings.TrimSpace(raw)
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
			return start.Format("2006-01"), start, nil
		}
	}
	return "", time.Time{}, fmt.Errorf("invalid period %q", raw)
}

// ParseFlag interprets the closure/boolean cells the back office emits.
func ParseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "si", "sì", "s", "x", "true", "chiuso", "ok":
		return true
	}
	if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return v != 0
	}
	return false
}

// storeIDs maps the display names the exports carry to internal store codes.
// The chain is a fixed, small set; new locations require a code here first.
var storeIDs = map[string]string{
	"milano centro":  "MI01",
	"milano navigli": "MI02",
	"torino centro":  "TO01",
	"roma eur":       "RM01",
	"bologna fiera":  "BO01",
}

// MapStore resolves a store display name to its internal identifier.
func MapStore(displayName string) (string, bool) {
	key := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(displayName))), " ")
	id, ok := storeIDs[key]
	return id, ok
}
