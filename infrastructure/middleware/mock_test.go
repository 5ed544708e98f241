package middleware

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/ports"
)

// mockSearcher is a configurable ports.Searcher for middleware tests.
type mockSearcher struct {
	mu        sync.Mutex
	calls     int
	lastCtx   context.Context
	Results   []domain.SearchResult
	Error     error
	Delay     time.Duration
	OnRequest func(req ports.SearchRequest)
}

func (m *mockSearcher) Search(ctx context.Context, req ports.SearchRequest) ([]domain.SearchResult, error) {
	m.mu.Lock()
	m.calls++
	m.lastCtx = ctx
	m.mu.Unlock()

	if m.OnRequest != nil {
		m.OnRequest(req)
	}
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Results, nil
}

func (m *mockSearcher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockMetricsCollector records metric calls keyed by name and sorted labels.
type mockMetricsCollector struct {
	mu         sync.Mutex
	latencies  map[string]time.Duration
	counters   map[string]float64
	gauges     map[string]float64
	histograms map[string]float64
}

func newMockMetricsCollector() *mockMetricsCollector {
	return &mockMetricsCollector{
		latencies:  make(map[string]time.Duration),
		counters:   make(map[string]float64),
		gauges:     make(map[string]float64),
		histograms: make(map[string]float64),
	}
}

func metricKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	parts := make([]string, 0, len(labels))
	for k, v := range labels {
		parts = append(parts, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(parts)
	return name + "{" + strings.Join(parts, ",") + "}"
}

func (m *mockMetricsCollector) RecordLatency(op string, d time.Duration, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latencies[metricKey(op, labels)] += d
}

func (m *mockMetricsCollector) RecordCounter(metric string, v float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[metricKey(metric, labels)] += v
}

func (m *mockMetricsCollector) RecordGauge(metric string, v float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[metricKey(metric, labels)] = v
}

func (m *mockMetricsCollector) RecordHistogram(metric string, v float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.histograms[metricKey(metric, labels)] += v
}

var _ ports.MetricsCollector = (*mockMetricsCollector)(nil)
