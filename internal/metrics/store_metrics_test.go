package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	metric := &dto.Metric{}
	if err := vec.WithLabelValues(labels...).Write(metric); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func TestNewStoreMetricsWithRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetricsWithRegisterer(reg)

	if m.operations == nil || m.duration == nil || m.authAttempts == nil {
		t.Fatal("collectors should not be nil")
	}
}

func TestNewStoreMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewStoreMetricsWithRegisterer(reg)
	second := NewStoreMetricsWithRegisterer(reg)

	first.RecordAuthAttempt(ResultOK)
	second.RecordAuthAttempt(ResultOK)

	if got := counterValue(t, first.authAttempts, ResultOK); got != 2.0 {
		t.Errorf("expected shared counter value 2.0, got %f", got)
	}
}

func TestObserveOperation(t *testing.T) {
	m := NewStoreMetricsWithRegisterer(prometheus.NewRegistry())

	m.ObserveOperation("partners.add", ResultOK, 10*time.Millisecond)
	m.ObserveOperation("partners.add", ResultRejected, 1*time.Millisecond)
	m.ObserveOperation("partners.add", ResultOK, 20*time.Millisecond)

	if got := counterValue(t, m.operations, "partners.add", ResultOK); got != 2.0 {
		t.Errorf("expected 2 ok operations, got %f", got)
	}
	if got := counterValue(t, m.operations, "partners.add", ResultRejected); got != 1.0 {
		t.Errorf("expected 1 rejected operation, got %f", got)
	}

	metric := &dto.Metric{}
	observer := m.duration.WithLabelValues("partners.add")
	if err := observer.(prometheus.Histogram).Write(metric); err != nil {
		t.Fatalf("failed to write histogram: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("expected 3 samples, got %d", metric.Histogram.GetSampleCount())
	}
}

func TestNilStoreMetricsIsNoop(t *testing.T) {
	var m *StoreMetrics
	m.ObserveOperation("partners.list", ResultOK, time.Millisecond)
	m.RecordAuthAttempt(ResultError)
}
