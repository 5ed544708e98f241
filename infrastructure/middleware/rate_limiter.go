package middleware

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/ports"
)

// rateLimitedSearcher paces searches with a token bucket.
type rateLimitedSearcher struct {
	next    ports.Searcher
	limiter *rate.Limiter
}

// RateLimitMiddleware creates middleware that admits limit searches per
// second with bursts of up to burst. All searchers built from the returned
// middleware share one bucket.
func RateLimitMiddleware(limit rate.Limit, burst int) Middleware {
	limiter := rate.NewLimiter(limit, burst)

	return func(next ports.Searcher) ports.Searcher {
		return &rateLimitedSearcher{
			next:    next,
			limiter: limiter,
		}
	}
}

// Search blocks until the bucket admits the request or ctx is done.
func (r *rateLimitedSearcher) Search(ctx context.Context, req ports.SearchRequest) ([]domain.SearchResult, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	return r.next.Search(ctx, req)
}
