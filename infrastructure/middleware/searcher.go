// Package middleware provides cross-cutting concerns for the search engine:
// deadlines, rate limiting, tracing and metrics, composed as Searcher
// decorators.
//
// Usage:
//
//	searcher := middleware.Chain(engine,
//	    middleware.TracingMiddleware("smartsearch"),
//	    middleware.MetricsMiddleware(metrics),
//	    middleware.RateLimitMiddleware(50, 100),
//	    middleware.TimeoutMiddleware(2*time.Second),
//	)
//	results, err := searcher.Search(ctx, req)
package middleware

import "github.com/qiyas-prep/smartsearch/internal/ports"

// Middleware wraps a Searcher with additional behavior.
type Middleware func(next ports.Searcher) ports.Searcher

// Chain applies middleware to base so that the first middleware is the
// outermost: Chain(s, a, b) handles a request as a(b(s)).
func Chain(base ports.Searcher, mws ...Middleware) ports.Searcher {
	s := base
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		s = mws[i](s)
	}
	return s
}
