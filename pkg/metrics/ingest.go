package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics records per-file ingestion outcomes, labeled by detected
// report kind. A nil receiver or registerer disables everything, so callers
// never have to guard.
type IngestMetrics struct {
	duration *prometheus.HistogramVec
	files    *prometheus.CounterVec
	records  *prometheus.CounterVec
	warnings *prometheus.CounterVec
}

// NewIngestMetrics registers the ingestion metrics on the provided registerer.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ingest_file_duration_seconds",
		Help:    "Time spent importing one workbook.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	files := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_files_total",
		Help: "Imported workbooks by detected kind and outcome.",
	}, []string{"kind", "outcome"})
	records := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_records_total",
		Help: "Ledger rows written, split into inserted and updated.",
	}, []string{"kind", "op"})
	warnings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_row_warnings_total",
		Help: "Rows skipped with a warning during normalization.",
	}, []string{"kind"})
	reg.MustRegister(duration, files, records, warnings)
	return &IngestMetrics{
		duration: duration,
		files:    files,
		records:  records,
		warnings: warnings,
	}
}

// ObserveFile records one completed file import.
func (m *IngestMetrics) ObserveFile(kind string, outcome string, elapsed time.Duration) {
	if m == nil || m.files == nil {
		return
	}
	kind = normalizeLabel(kind)
	m.files.WithLabelValues(kind, normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// AddRecords accumulates the upsert counters for one file.
func (m *IngestMetrics) AddRecords(kind string, inserted, updated int) {
	if m == nil || m.records == nil {
		return
	}
	kind = normalizeLabel(kind)
	m.records.WithLabelValues(kind, "inserted").Add(float64(inserted))
	m.records.WithLabelValues(kind, "updated").Add(float64(updated))
}

// AddWarnings accumulates skipped-row warnings for one file.
func (m *IngestMetrics) AddWarnings(kind string, count int) {
	if m == nil || m.warnings == nil {
		return
	}
	m.warnings.WithLabelValues(normalizeLabel(kind)).Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
