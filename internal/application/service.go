package application

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/qiyas-prep/smartsearch/infrastructure/middleware"
	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/ports"
	"github.com/qiyas-prep/smartsearch/internal/recommend"
	"github.com/qiyas-prep/smartsearch/internal/search"
)

// Service answers search, related-question and recommendation requests
// against the questions supplied by a QuestionSource. It is safe for
// concurrent use.
type Service struct {
	cfg         Config
	source      ports.QuestionSource
	engine      *search.Engine
	searcher    ports.Searcher
	recommender *recommend.Recommender
	metrics     ports.MetricsCollector
}

// NewService builds a Service from cfg. The search path is decorated with
// tracing, optional metrics, optional rate limiting and the per-search
// timeout, outermost first. metrics may be nil.
func NewService(cfg Config, source ports.QuestionSource, metrics ports.MetricsCollector) (*Service, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: question source is required", domain.ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := search.NewEngine(cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to create search engine: %w", err)
	}

	mws := []middleware.Middleware{
		middleware.TracingMiddleware("smartsearch"),
		middleware.MetricsMiddleware(metrics),
	}
	if cfg.Search.RateLimit > 0 {
		mws = append(mws, middleware.RateLimitMiddleware(rate.Limit(cfg.Search.RateLimit), cfg.Search.RateBurst))
	}
	mws = append(mws, middleware.TimeoutMiddleware(cfg.Search.Timeout))

	return &Service{
		cfg:         cfg,
		source:      source,
		engine:      engine,
		searcher:    middleware.Chain(engine, mws...),
		recommender: recommend.New(),
		metrics:     metrics,
	}, nil
}

// SearchParams are the per-call search inputs. Zero or negative fields
// fall back to the configured defaults.
type SearchParams struct {
	Query      string
	Category   domain.Category
	Difficulty domain.Difficulty
	Threshold  float64
	MaxResults int
}

// Search runs a query against the current question bank.
func (s *Service) Search(ctx context.Context, p SearchParams) ([]domain.SearchResult, error) {
	questions, err := s.questions(ctx)
	if err != nil {
		return nil, err
	}

	req := ports.SearchRequest{
		Query:      p.Query,
		Questions:  questions,
		Category:   p.Category,
		Difficulty: p.Difficulty,
		Threshold:  p.Threshold,
		MaxResults: p.MaxResults,
	}
	if req.Category == "" {
		req.Category = s.cfg.Search.Category
	}
	if req.Difficulty == "" {
		req.Difficulty = s.cfg.Search.Difficulty
	}
	if req.Threshold <= 0 {
		req.Threshold = s.cfg.Search.Threshold
	}
	if req.MaxResults <= 0 {
		req.MaxResults = s.cfg.Search.MaxResults
	}

	results, err := s.searcher.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return results, nil
}

// Related returns the questions related to the question with id.
func (s *Service) Related(ctx context.Context, id int) ([]domain.Question, error) {
	questions, err := s.questions(ctx)
	if err != nil {
		return nil, err
	}

	q, ok := domain.IndexByID(questions)[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrQuestionNotFound, id)
	}

	start := time.Now()
	related := s.engine.FindRelated(*q, questions, s.cfg.Related.RelatedOptions())
	s.observe("related", start)
	return related, nil
}

// Recommend proposes practice sets from the user's answer history.
func (s *Service) Recommend(ctx context.Context, answered []domain.AnsweredRecord) (domain.Recommendation, error) {
	questions, err := s.questions(ctx)
	if err != nil {
		return domain.Recommendation{}, err
	}

	start := time.Now()
	rec := s.recommender.Recommend(answered, questions, s.cfg.Recommend.Options())
	s.observe("recommend", start)
	return rec, nil
}

// LearningPath builds a study plan for a user at userLevel.
func (s *Service) LearningPath(ctx context.Context, answered []domain.AnsweredRecord, userLevel int) (domain.LearningPlan, error) {
	questions, err := s.questions(ctx)
	if err != nil {
		return domain.LearningPlan{}, err
	}

	start := time.Now()
	plan := s.recommender.GenerateLearningPath(answered, questions, userLevel)
	s.observe("learning_path", start)
	return plan, nil
}

func (s *Service) questions(ctx context.Context) ([]domain.Question, error) {
	questions, err := s.source.Questions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}
	return questions, nil
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordLatency(operation, time.Since(start), nil)
	s.metrics.RecordCounter(operation, 1, nil)
}
