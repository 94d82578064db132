package enums

import "fmt"

// ReportKind identifies which back-office export a spreadsheet is.
type ReportKind string

const (
	ReportKindFullSettlement ReportKind = "full_settlement"
	ReportKindZones          ReportKind = "zones"
	ReportKindArticles       ReportKind = "articles"
	ReportKindABCRanking     ReportKind = "abc_ranking"
	ReportKindHourly         ReportKind = "hourly"
	ReportKindUnknown        ReportKind = "unknown"
)

var validReportKinds = []ReportKind{
	ReportKindFullSettlement,
	ReportKindZones,
	ReportKindArticles,
	ReportKindABCRanking,
	ReportKindHourly,
}

// IsValid reports whether the kind is one the ledger can store. Unknown is a
// legitimate detection outcome but never a storable kind.
func (k ReportKind) IsValid() bool {
	for _, candidate := range validReportKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseReportKind converts raw input into ReportKind.
func ParseReportKind(value string) (ReportKind, error) {
	for _, candidate := range validReportKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid report kind %q", value)
}
