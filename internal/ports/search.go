// Package ports defines the interfaces that form the contract between
// the application layer and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/qiyas-prep/smartsearch/internal/domain"
)

// SearchRequest carries one search call through a Searcher chain.
type SearchRequest struct {
	// Query is the raw user query.
	Query string
	// Questions is the candidate collection. Implementations must not
	// modify it.
	Questions []domain.Question
	// Category restricts candidates to one category when set.
	Category domain.Category
	// Difficulty restricts candidates to one difficulty when set.
	Difficulty domain.Difficulty
	// Threshold is the minimum fuzzy score; zero selects the default.
	Threshold float64
	// MaxResults caps the result count; zero selects the default.
	MaxResults int
}

// Searcher ranks questions against a query.
// Implementations must be safe for concurrent use.
type Searcher interface {
	// Search returns the ranked results for req. An empty result is not
	// an error; errors only report cancellation or rejected requests.
	Search(ctx context.Context, req SearchRequest) ([]domain.SearchResult, error)
}

// SearcherFunc adapts an ordinary function to the Searcher interface.
type SearcherFunc func(ctx context.Context, req SearchRequest) ([]domain.SearchResult, error)

// Search calls f(ctx, req).
func (f SearcherFunc) Search(ctx context.Context, req SearchRequest) ([]domain.SearchResult, error) {
	return f(ctx, req)
}

// QuestionSource supplies the question collection searched by the engine.
// The returned slice is a snapshot owned by the caller.
type QuestionSource interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}
