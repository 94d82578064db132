package detect

import (
	"strings"

	"github.com/fabiomorandi/salesboard-backend/pkg/enums"
)

// Field is one expected column of a report kind. Patterns holds pipe-separated
// alternatives; a header column matches when it contains any of them after
// normalization.
type Field struct {
	Name     string
	Patterns string
	Required bool
}

// Schema is the column fingerprint of one report kind. Matching is
// order-independent: only presence of the required fields counts.
type Schema struct {
	Kind   enums.ReportKind
	Fields []Field
}

// Canonical field names shared with the row normalizer.
const (
	FieldStore     = "store"
	FieldDate      = "date"
	FieldPeriod    = "period"
	FieldGross     = "gross"
	FieldNet       = "net"
	FieldVAT       = "vat"
	FieldTickets   = "tickets"
	FieldCustomers = "customers"
	FieldItems     = "items"
	FieldTarget    = "target"
	FieldClosed    = "closed"
	FieldZone      = "zone"
	FieldRevenue   = "revenue"
	FieldCode      = "code"
	FieldName      = "name"
	FieldFamily    = "family"
	FieldSubfamily = "subfamily"
	FieldChannel   = "channel"
	FieldQty       = "qty"
	FieldRank      = "rank"
	FieldValue     = "value"
	FieldClass     = "class"
	FieldDateFrom  = "date_from"
	FieldDateTo    = "date_to"
	FieldSlot      = "slot"
)

// Schemas returns the supported report fingerprints in detection order. The
// ABC ranking schema precedes the per-article one because an ABC export also
// carries code/description/quantity columns; its class column disambiguates.
func Schemas() []Schema {
	return []Schema{
		{
			Kind: enums.ReportKindABCRanking,
			Fields: []Field{
				{Name: FieldRank, Patterns: "pos|rank|posizione", Required: true},
				{Name: FieldCode, Patterns: "codice|cod articolo|cod art", Required: true},
				{Name: FieldName, Patterns: "articolo|descrizione|prodotto", Required: true},
				{Name: FieldQty, Patterns: "quantita|qta|pezzi", Required: true},
				{Name: FieldValue, Patterns: "valore|incasso|importo", Required: true},
				{Name: FieldClass, Patterns: "classe|abc", Required: true},
				{Name: FieldStore, Patterns: "punto vendita|negozio|locale", Required: false},
				{Name: FieldDateFrom, Patterns: "dal|inizio periodo", Required: false},
				{Name: FieldDateTo, Patterns: "al|fine periodo", Required: false},
			},
		},
		{
			Kind: enums.ReportKindZones,
			Fields: []Field{
				{Name: FieldStore, Patterns: "punto vendita|negozio|locale", Required: true},
				{Name: FieldDate, Patterns: "data|giorno", Required: true},
				{Name: FieldZone, Patterns: "zona|sala|reparto", Required: true},
				{Name: FieldRevenue, Patterns: "incasso|totale|importo", Required: true},
				{Name: FieldNet, Patterns: "netto", Required: false},
			},
		},
		{
			Kind: enums.ReportKindHourly,
			Fields: []Field{
				{Name: FieldStore, Patterns: "punto vendita|negozio|locale", Required: true},
				{Name: FieldDate, Patterns: "data|giorno", Required: true},
				{Name: FieldSlot, Patterns: "fascia oraria|fascia|ora", Required: true},
				{Name: FieldRevenue, Patterns: "incasso|totale|importo", Required: true},
				{Name: FieldTickets, Patterns: "scontrini|conti", Required: false},
			},
		},
		{
			Kind: enums.ReportKindArticles,
			Fields: []Field{
				{Name: FieldStore, Patterns: "punto vendita|negozio|locale", Required: true},
				{Name: FieldPeriod, Patterns: "data|periodo|mese", Required: true},
				{Name: FieldCode, Patterns: "codice|cod articolo|cod art", Required: true},
				{Name: FieldName, Patterns: "articolo|descrizione|prodotto", Required: true},
				{Name: FieldQty, Patterns: "quantita|qta|pezzi", Required: true},
				{Name: FieldNet, Patterns: "valore netto|netto", Required: true},
				{Name: FieldGross, Patterns: "valore lordo|lordo", Required: false},
				{Name: FieldFamily, Patterns: "famiglia|categoria", Required: false},
				{Name: FieldSubfamily, Patterns: "sottofamiglia|sottocategoria", Required: false},
				{Name: FieldChannel, Patterns: "canale", Required: false},
			},
		},
		{
			Kind: enums.ReportKindFullSettlement,
			Fields: []Field{
				{Name: FieldStore, Patterns: "punto vendita|negozio|locale", Required: true},
				{Name: FieldDate, Patterns: "data|giorno", Required: true},
				{Name: FieldGross, Patterns: "incasso lordo|totale lordo|lordo", Required: true},
				{Name: FieldNet, Patterns: "incasso netto|totale netto|netto", Required: true},
				{Name: FieldVAT, Patterns: "iva|imposta", Required: true},
				{Name: FieldTickets, Patterns: "scontrini|conti", Required: true},
				{Name: FieldCustomers, Patterns: "coperti|clienti", Required: false},
				{Name: FieldItems, Patterns: "pezzi|articoli venduti", Required: false},
				{Name: FieldTarget, Patterns: "budget|obiettivo", Required: false},
				{Name: FieldClosed, Patterns: "chiusura|chiuso", Required: false},
			},
		},
	}
}

// Match reports whether every required field has a matching header column.
func (s Schema) Match(headers []string) bool {
	normalized := normalizeAll(headers)
	for _, field := range s.Fields {
		if !field.Required {
			continue
		}
		if findColumn(normalized, field.Patterns) < 0 {
			return false
		}
	}
	return true
}

// MapColumns resolves each schema field to its header index. Fields with no
// matching column are absent from the map.
func (s Schema) MapColumns(headers []string) map[string]int {
	normalized := normalizeAll(headers)
	cols := make(map[string]int, len(s.Fields))
	for _, field := range s.Fields {
		if idx := findColumn(normalized, field.Patterns); idx >= 0 {
			cols[field.Name] = idx
		}
	}
	return cols
}

func normalizeAll(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}
	return normalized
}

var accentReplacer = strings.NewReplacer(
	"à", "a", "á", "a",
	"è", "e", "é", "e",
	"ì", "i", "í", "i",
	"ò", "o", "ó", "o",
	"ù", "u", "ú", "u",
)

// NormalizeHeader lowercases a column title, strips accents and punctuation
// noise, and collapses internal whitespace so fingerprints stay stable across
// export variants.
func NormalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = accentReplacer.Replace(h)
	h = strings.NewReplacer(".", " ", "_", " ", "-", " ", "%", " ", "(", " ", ")", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// findColumn returns the index of the first column containing any of the
// pipe-separated alternatives, preferring exact matches over substring ones.
// Very short alternatives only match exactly, otherwise "al" would hit
// "totale".
func findColumn(normalized []string, patterns string) int {
	alternatives := strings.Split(patterns, "|")
	for _, alt := range alternatives {
		for i, col := range normalized {
			if col == alt {
				return i
			}
		}
	}
	for _, alt := range alternatives {
		if len([]rune(alt)) < 4 {
			continue
		}
		for i, col := range normalized {
			if strings.Contains(col, alt) {
				return i
			}
		}
	}
	return -1
}
