package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestIngestMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewIngestMetrics(reg)

	metrics.ObserveFile("articles", "ok", 250*time.Millisecond)
	metrics.AddRecords("articles", 10, 2)
	metrics.AddWarnings("articles", 3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "ingest_files_total", "kind", "articles"); err != nil {
		t.Fatalf("fetch files: %v", err)
	} else if got != 1 {
		t.Fatalf("expected files=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "ingest_row_warnings_total", "kind", "articles"); err != nil {
		t.Fatalf("fetch warnings: %v", err)
	} else if got != 3 {
		t.Fatalf("expected warnings=3, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "ingest_file_duration_seconds", "kind", "articles"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestIngestMetricsRecordOps(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewIngestMetrics(reg)
	metrics.AddRecords("zones", 7, 5)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	mf := findMetricFamily(mfs, "ingest_records_total")
	if mf == nil {
		t.Fatal("ingest_records_total not found")
	}
	var inserted, updated float64
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), "op", "inserted") {
			inserted = metric.GetCounter().GetValue()
		}
		if matchesLabel(metric.GetLabel(), "op", "updated") {
			updated = metric.GetCounter().GetValue()
		}
	}
	if inserted != 7 || updated != 5 {
		t.Fatalf("records = %f/%f, want 7/5", inserted, updated)
	}
}

func TestIngestMetricsNilSafe(t *testing.T) {
	var metrics *IngestMetrics
	metrics.ObserveFile("articles", "ok", time.Second)
	metrics.AddRecords("articles", 1, 1)
	metrics.AddWarnings("articles", 1)

	disabled := NewIngestMetrics(nil)
	disabled.ObserveFile("articles", "ok", time.Second)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
