package middleware

import (
	"context"
	"time"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/ports"
)

// timeoutSearcher bounds each search with a deadline.
type timeoutSearcher struct {
	next    ports.Searcher
	timeout time.Duration
}

// TimeoutMiddleware creates middleware that cancels a search once timeout
// elapses. A shorter deadline already on the context still applies.
// A non-positive timeout disables the middleware.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next ports.Searcher) ports.Searcher {
		if timeout <= 0 {
			return next
		}
		return &timeoutSearcher{next: next, timeout: timeout}
	}
}

// Search runs the wrapped search under a timeout context.
func (t *timeoutSearcher) Search(ctx context.Context, req ports.SearchRequest) ([]domain.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Search(ctx, req)
}
