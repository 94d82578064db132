package normalize

import (
	"fmt"
	"strings"

	"github.com/fabiomorandi/salesboard-backend/internal/ingest/detect"
	"github.com/fabiomorandi/salesboard-backend/pkg/db/models"
	"github.com/fabiomorandi/salesboard-backend/pkg/enums"
)

// RowNormalizer converts raw sheet rows of one detected kind into canonical
// ledger records. Rows whose key fields (store, date) fail to parse are
// skipped with a warning; secondary numeric cells default to zero because
// partial data beats discarding the whole row.
type RowNormalizer struct {
	schema detect.Schema
	cols   map[string]int
}

func NewRowNormalizer(schema detect.Schema, headers []string) *RowNormalizer {
	return &RowNormalizer{
		schema: schema,
		cols:   schema.MapColumns(headers),
	}
}

func (n *RowNormalizer) cell(cells []string, field string) string {
	idx, ok := n.cols[field]
	if !ok || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func (n *RowNormalizer) store(cells []string, rowNum int) (string, string) {
	raw := n.cell(cells, detect.FieldStore)
	if raw == "" {
		return "", fmt.Sprintf("row %d: missing store name", rowNum)
	}
	id, ok := MapStore(raw)
	if !ok {
		return "", fmt.Sprintf("row %d: unknown store %q", rowNum, raw)
	}
	return id, ""
}

// DailySettlement normalizes one full-settlement row.
func (n *RowNormalizer) DailySettlement(rowNum int, cells []string) (*models.DailySettlement, string) {
	storeID, warn := n.store(cells, rowNum)
	if warn != "" {
		return nil, warn
	}
	date, err := ParseDate(n.cell(cells, detect.FieldDate))
	if err != nil {
		return nil, fmt.Sprintf("row %d: %v", rowNum, err)
	}

	return &models.DailySettlement{
		StoreID:       storeID,
		Date:          date,
		GrossRevenue:  decimalOrZero(n.cell(cells, detect.FieldGross)),
		NetRevenue:    decimalOrZero(n.cell(cells, detect.FieldNet)),
		VAT:           decimalOrZero(n.cell(cells, detect.FieldVAT)),
		TicketCount:   intOrZero(n.cell(cells, detect.FieldTickets)),
		CustomerCount: intOrZero(n.cell(cells, detect.FieldCustomers)),
		ItemQty:       decimalOrZero(n.cell(cells, detect.FieldItems)),
		TargetRevenue: decimalOrZero(n.cell(cells, detect.FieldTarget)),
		IsClosed:      ParseFlag(n.cell(cells, detect.FieldClosed)),
	}, ""
}

// ZoneSale normalizes one zone-breakdown row.
func (n *RowNormalizer) ZoneSale(rowNum int, cells []string) (*models.ZoneSale, string) {
	storeID, warn := n.store(cells, rowNum)
	if warn != "" {
		return nil, warn
	}
	date, err := ParseDate(n.cell(cells, detect.FieldDate))
	if err != nil {
		return nil, fmt.Sprintf("row %d: %v", rowNum, err)
	}
	zone := n.cell(cells, detect.FieldZone)
	if zone == "" {
		return nil, fmt.Sprintf("row %d: missing zone", rowNum)
	}

	return &models.ZoneSale{
		StoreID:    storeID,
		Date:       date,
		Zone:       zone,
		Revenue:    decimalOrZero(n.cell(cells, detect.FieldRevenue)),
		NetRevenue: decimalOrZero(n.cell(cells, detect.FieldNet)),
	}, ""
}

// ArticleSale normalizes one per-article row.
func (n *RowNormalizer) ArticleSale(rowNum int, cells []string) (*models.ArticleSale, string) {
	storeID, warn := n.store(cells, rowNum)
	if warn != "" {
		return nil, warn
	}
	periodKey, periodStart, err := ParsePeriod(n.cell(cells, detect.FieldPeriod))
	if err != nil {
		return nil, fmt.Sprintf("row %d: %v", rowNum, err)
	}
	code := n.cell(cells, detect.FieldCode)
	if code == "" {
		return nil, fmt.Sprintf("row %d: missing article code", rowNum)
	}
	name := n.cell(cells, detect.FieldName)
	if name == "" {
		return nil, fmt.Sprintf("row %d: missing article name", rowNum)
	}

	return &models.ArticleSale{
		StoreID:     storeID,
		PeriodKey:   periodKey,
		PeriodStart: periodStart,
		ArticleCode: code,
		ArticleName: name,
		Family:      n.cell(cells, detect.FieldFamily),
		Subfamily:   n.cell(cells, detect.FieldSubfamily),
		Channel:     n.cell(cells, detect.FieldChannel),
		Quantity:    decimalOrZero(n.cell(cells, detect.FieldQty)),
		NetValue:    decimalOrZero(n.cell(cells, detect.FieldNet)),
		GrossValue:  decimalOrZero(n.cell(cells, detect.FieldGross)),
	}, ""
}

// HourlySlotSale normalizes one time-slot row.
func (n *RowNormalizer) HourlySlotSale(rowNum int, cells []string) (*models.HourlySlotSale, string) {
	storeID, warn := n.store(cells, rowNum)
	if warn != "" {
		return nil, warn
	}
	date, err := ParseDate(n.cell(cells, detect.FieldDate))
	if err != nil {
		return nil, fmt.Sprintf("row %d: %v", rowNum, err)
	}
	slot := n.cell(cells, detect.FieldSlot)
	if slot == "" {
		return nil, fmt.Sprintf("row %d: missing time slot", rowNum)
	}

	return &models.HourlySlotSale{
		StoreID:     storeID,
		Date:        date,
		Slot:        slot,
		Revenue:     decimalOrZero(n.cell(cells, detect.FieldRevenue)),
		TicketCount: intOrZero(n.cell(cells, detect.FieldTickets)),
	}, ""
}

// ABCSnapshotEntry normalizes one row of the pre-ranked ABC report. The row
// carries the covered range; the ingest service takes the range of the first
// valid row for the whole snapshot.
func (n *RowNormalizer) ABCSnapshotEntry(rowNum int, cells []string) (*models.ABCSnapshotEntry, string) {
	dateFrom, err := ParseDate(n.cell(cells, detect.FieldDateFrom))
	if err != nil {
		return nil, fmt.Sprintf("row %d: period start: %v", rowNum, err)
	}
	dateTo, err := ParseDate(n.cell(cells, detect.FieldDateTo))
	if err != nil {
		return nil, fmt.Sprintf("row %d: period end: %v", rowNum, err)
	}
	code := n.cell(cells, detect.FieldCode)
	if code == "" {
		return nil, fmt.Sprintf("row %d: missing article code", rowNum)
	}
	name := n.cell(cells, detect.FieldName)
	if name == "" {
		return nil, fmt.Sprintf("row %d: missing article name", rowNum)
	}
	class := enums.ABCClass(strings.ToUpper(n.cell(cells, detect.FieldClass)))
	if !class.IsValid() {
		return nil, fmt.Sprintf("row %d: invalid ABC class %q", rowNum, n.cell(cells, detect.FieldClass))
	}

	storeID := "ALL"
	if raw := n.cell(cells, detect.FieldStore); raw != "" {
		if id, ok := MapStore(raw); ok {
			storeID = id
		}
	}

	return &models.ABCSnapshotEntry{
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		StoreID:     storeID,
		Rank:        intOrZero(n.cell(cells, detect.FieldRank)),
		ArticleCode: code,
		ArticleName: name,
		Quantity:    decimalOrZero(n.cell(cells, detect.FieldQty)),
		Value:       decimalOrZero(n.cell(cells, detect.FieldValue)),
		Class:       class,
	}, ""
}
