// Package search implements the smart search engine: tiered matching of a
// query against a question collection and related-question discovery.
package search

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/ports"
	"github.com/qiyas-prep/smartsearch/internal/textmatch"
)

var _ ports.Searcher = (*Engine)(nil)

// Search defaults.
const (
	// DefaultThreshold is the minimum fuzzy similarity for a "similar" hit.
	DefaultThreshold = 0.4
	// DefaultMaxResults caps the number of search results.
	DefaultMaxResults = 20

	// keywordBase and keywordSpan place keyword scores in (0.7, 1.0].
	keywordBase = 0.7
	keywordSpan = 0.3

	// cancelCheckInterval is how many candidates are scored between
	// context checks.
	cancelCheckInterval = 128
)

// EngineConfig controls how the engine spreads work across goroutines.
// It does not change results: sharded and sequential runs are identical.
type EngineConfig struct {
	// Workers is the maximum number of goroutines scoring shards.
	Workers int `yaml:"workers" json:"workers" mapstructure:"workers" validate:"min=1,max=256"`
	// ParallelThreshold is the candidate count from which scoring is sharded.
	ParallelThreshold int `yaml:"parallel_threshold" json:"parallel_threshold" mapstructure:"parallel_threshold" validate:"min=1"`
}

// DefaultEngineConfig returns an EngineConfig sized to the machine.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Workers:           runtime.GOMAXPROCS(0),
		ParallelThreshold: 512,
	}
}

// Engine matches queries against question collections. It holds no state
// between calls and is safe for concurrent use.
type Engine struct {
	config EngineConfig
	tracer trace.Tracer
}

// NewEngine creates an Engine after validating cfg.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	return &Engine{
		config: cfg,
		tracer: otel.Tracer("smart-search-engine"),
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig { return e.config }

// preparedQuery holds the per-call query forms reused across candidates.
type preparedQuery struct {
	canonical string
	keywords  []string
}

// Search returns the questions matching req.Query, best first.
//
// Candidates are first restricted by the Category and Difficulty facets.
// Each remaining question is then tested against three tiers in order and
// contributes at most one result, from the first tier it satisfies:
//
//  1. exact: the canonical query is a substring of the canonical text (score 1)
//  2. keyword: query keywords overlap the question's tagged keywords
//     (score 0.7 + 0.3 * matched / max(|query keywords|, |question keywords|))
//  3. similar: edit-distance similarity of the texts is at least Threshold
//
// Results are sorted by score descending; equal scores keep the input
// order. The only error is context cancellation.
func (e *Engine) Search(ctx context.Context, req ports.SearchRequest) ([]domain.SearchResult, error) {
	ctx, span := e.tracer.Start(ctx, "Engine.Search",
		trace.WithAttributes(
			attribute.Int("search.candidates", len(req.Questions)),
			attribute.String("search.category", string(req.Category)),
			attribute.String("search.difficulty", string(req.Difficulty)),
		),
	)
	defer span.End()

	start := time.Now()
	req = withDefaults(req)

	if strings.TrimSpace(req.Query) == "" {
		return []domain.SearchResult{}, nil
	}

	queryKeywords := textmatch.ExtractKeywords(req.Query)
	pq := preparedQuery{
		canonical: textmatch.Canonical(req.Query),
		keywords:  queryKeywords.Sorted(),
	}
	span.SetAttributes(attribute.Int("search.query_keywords", queryKeywords.Len()))
	// A query made only of diacritics is empty after normalization and
	// would otherwise be a substring of every text.
	if pq.canonical == "" {
		return []domain.SearchResult{}, nil
	}

	candidates := filterFacets(req.Questions, req.Category, req.Difficulty)

	results, err := e.score(ctx, pq, candidates, req.Threshold)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	slices.SortStableFunc(results, func(a, b domain.SearchResult) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})
	if len(results) > req.MaxResults {
		results = results[:req.MaxResults]
	}

	span.SetAttributes(
		attribute.Int("search.filtered", len(candidates)),
		attribute.Int("search.results", len(results)),
		attribute.Int64("search.latency_ms", time.Since(start).Milliseconds()),
	)
	return results, nil
}

// withDefaults resolves zero and out-of-range options to their defaults.
func withDefaults(req ports.SearchRequest) ports.SearchRequest {
	switch {
	case req.Threshold <= 0:
		req.Threshold = DefaultThreshold
	case req.Threshold > 1:
		req.Threshold = 1
	}
	if req.MaxResults <= 0 {
		req.MaxResults = DefaultMaxResults
	}
	return req
}

// filterFacets keeps the questions whose category and difficulty equal the
// requested facets. Empty facets match everything.
func filterFacets(questions []domain.Question, category domain.Category, difficulty domain.Difficulty) []domain.Question {
	if category == "" && difficulty == "" {
		return questions
	}
	out := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if category != "" && q.Category != category {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}

// score matches every candidate, sharding the work when the collection is
// large. Shard outputs are concatenated in shard order so the result order
// equals a sequential pass.
func (e *Engine) score(
	ctx context.Context,
	pq preparedQuery,
	candidates []domain.Question,
	threshold float64,
) ([]domain.SearchResult, error) {
	if len(candidates) < e.config.ParallelThreshold || e.config.Workers <= 1 {
		results, err := scoreShard(ctx, pq, candidates, threshold)
		if err != nil {
			return nil, fmt.Errorf("search aborted: %w", err)
		}
		return results, nil
	}

	shardSize := (len(candidates) + e.config.Workers - 1) / e.config.Workers
	shards := make([][]domain.SearchResult, 0, e.config.Workers)
	for lo := 0; lo < len(candidates); lo += shardSize {
		shards = append(shards, nil)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.Workers)
	for i := range shards {
		lo := i * shardSize
		hi := min(lo+shardSize, len(candidates))
		g.Go(func() error {
			part, err := scoreShard(gctx, pq, candidates[lo:hi], threshold)
			if err != nil {
				return err
			}
			shards[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search aborted: %w", err)
	}

	total := 0
	for _, s := range shards {
		total += len(s)
	}
	merged := make([]domain.SearchResult, 0, total)
	for _, s := range shards {
		merged = append(merged, s...)
	}
	return merged, nil
}

func scoreShard(
	ctx context.Context,
	pq preparedQuery,
	candidates []domain.Question,
	threshold float64,
) ([]domain.SearchResult, error) {
	out := make([]domain.SearchResult, 0)
	for i := range candidates {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if res, ok := match(pq, candidates[i], threshold); ok {
			out = append(out, res)
		}
	}
	return out, nil
}

// match evaluates the three tiers for one question and stops at the first
// that succeeds.
func match(pq preparedQuery, q domain.Question, threshold float64) (domain.SearchResult, bool) {
	text := textmatch.Canonical(q.Text)

	if text != "" && strings.Contains(text, pq.canonical) {
		return domain.SearchResult{Question: q, MatchType: domain.MatchExact, Similarity: 1}, true
	}

	if matched, score := keywordOverlap(pq.keywords, textmatch.NormalizeKeywords(q.Keywords)); len(matched) > 0 {
		return domain.SearchResult{
			Question:        q,
			MatchType:       domain.MatchKeyword,
			Similarity:      score,
			MatchedKeywords: matched,
		}, true
	}

	if sim := textmatch.CanonicalSimilarity(pq.canonical, text); sim >= threshold {
		return domain.SearchResult{Question: q, MatchType: domain.MatchSimilar, Similarity: sim}, true
	}

	return domain.SearchResult{}, false
}

// keywordOverlap returns the query keywords that occur inside a question
// keyword or contain one, and the resulting keyword-tier score. Either
// direction counts, so short fragments can match inside longer words.
func keywordOverlap(queryKeywords, questionKeywords []string) ([]string, float64) {
	if len(queryKeywords) == 0 || len(questionKeywords) == 0 {
		return nil, 0
	}

	var matched []string
	for _, qk := range queryKeywords {
		for _, kk := range questionKeywords {
			if strings.Contains(kk, qk) || strings.Contains(qk, kk) {
				matched = append(matched, qk)
				break
			}
		}
	}
	if len(matched) == 0 {
		return nil, 0
	}

	denom := max(len(queryKeywords), len(questionKeywords))
	return matched, keywordBase + keywordSpan*float64(len(matched))/float64(denom)
}
