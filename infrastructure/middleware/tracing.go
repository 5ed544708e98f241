package middleware

import (
	"context"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/ports"
)

// tracedSearcher wraps each search in a span.
type tracedSearcher struct {
	next        ports.Searcher
	serviceName string
	tracer      trace.Tracer
}

// TracingMiddleware creates middleware that records a span per search using
// the global OpenTelemetry tracer provider.
func TracingMiddleware(serviceName string) Middleware {
	tracer := otel.Tracer("smartsearch/middleware")
	return func(next ports.Searcher) ports.Searcher {
		return &tracedSearcher{
			next:        next,
			serviceName: serviceName,
			tracer:      tracer,
		}
	}
}

// Search runs the wrapped search inside a "search.request" span.
func (t *tracedSearcher) Search(ctx context.Context, req ports.SearchRequest) ([]domain.SearchResult, error) {
	ctx, span := t.tracer.Start(ctx, "search.request",
		trace.WithAttributes(
			attribute.String("service.name", t.serviceName),
			attribute.Int("search.query.runes", utf8.RuneCountInString(req.Query)),
			attribute.Int("search.max_results", req.MaxResults),
		),
	)
	defer span.End()

	results, err := t.next.Search(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.results", len(results)))
	return results, nil
}
