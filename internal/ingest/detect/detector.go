package detect

import (
	"github.com/fabiomorandi/salesboard-backend/pkg/enums"
)

// Detector classifies a sheet into one of the supported report kinds by
// matching its header row against the fixed per-kind fingerprints.
type Detector struct {
	schemas []Schema
}

func NewDetector() *Detector {
	return &Detector{schemas: Schemas()}
}

// Detect returns the report kind whose required columns are all present, or
// ReportKindUnknown. Column order never influences the result.
func (d *Detector) Detect(headers []string) enums.ReportKind {
	if schema, ok := d.Schema(headers); ok {
		return schema.Kind
	}
	return enums.ReportKindUnknown
}

// Schema returns the full matching schema so callers can map columns without
// re-running detection.
func (d *Detector) Schema(headers []string) (Schema, bool) {
	if len(headers) == 0 {
		return Schema{}, false
	}
	for _, schema := range d.schemas {
		if schema.Match(headers) {
			return schema, true
		}
	}
	return Schema{}, false
}
