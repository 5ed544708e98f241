package middleware

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/ports"
)

// Metric names emitted by MetricsMiddleware.
const (
	MetricSearchLatency  = "search_latency_seconds"
	MetricSearchRequests = "search_requests_total"
	MetricSearchResults  = "search_results"
	MetricMatchTier      = "search_matches_total"
)

// metricsSearcher reports latency, outcome and match tiers of searches.
type metricsSearcher struct {
	next      ports.Searcher
	collector ports.MetricsCollector
}

// MetricsMiddleware creates middleware that reports each search to
// collector. A nil collector disables reporting.
func MetricsMiddleware(collector ports.MetricsCollector) Middleware {
	return func(next ports.Searcher) ports.Searcher {
		if collector == nil {
			return next
		}
		return &metricsSearcher{
			next:      next,
			collector: collector,
		}
	}
}

// Search forwards the request and records its metrics.
func (m *metricsSearcher) Search(ctx context.Context, req ports.SearchRequest) ([]domain.SearchResult, error) {
	start := time.Now()
	results, err := m.next.Search(ctx, req)

	labels := map[string]string{
		"status":   searchStatus(err),
		"filtered": strconv.FormatBool(req.Category != "" || req.Difficulty != ""),
	}

	m.collector.RecordLatency(MetricSearchLatency, time.Since(start), labels)
	m.collector.RecordCounter(MetricSearchRequests, 1, labels)
	if err != nil {
		return nil, err
	}

	m.collector.RecordGauge(MetricSearchResults, float64(len(results)), labels)

	tiers := make(map[domain.MatchType]int, 3)
	for _, r := range results {
		tiers[r.MatchType]++
	}
	for tier, n := range tiers {
		m.collector.RecordCounter(MetricMatchTier, float64(n), map[string]string{"match_type": string(tier)})
	}

	return results, nil
}

func searchStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
