package search

import (
	"cmp"
	"slices"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/textmatch"
)

// DefaultRelatedResults is the default number of related questions.
const DefaultRelatedResults = 5

// RelatedOptions narrows related-question discovery.
type RelatedOptions struct {
	// MaxResults caps the result; zero or negative selects DefaultRelatedResults.
	MaxResults int `yaml:"max_results" json:"max_results" mapstructure:"max_results"`
	// SameCategoryOnly keeps only candidates in the question's category.
	SameCategoryOnly bool `yaml:"same_category_only" json:"same_category_only" mapstructure:"same_category_only"`
	// SameDifficultyOnly keeps only candidates at the question's difficulty.
	SameDifficultyOnly bool `yaml:"same_difficulty_only" json:"same_difficulty_only" mapstructure:"same_difficulty_only"`
}

type scoredQuestion struct {
	question domain.Question
	score    float64
}

// FindRelated returns up to opts.MaxResults questions related to question.
//
// When question has a topic, candidates sharing it come first in input
// order; if they do not fill the quota, the rest is padded with the
// remaining candidates most similar to question.Text. Without a topic all
// candidates are ranked by text similarity. Similarity ties keep input
// order. The question itself (by ID) is never returned.
func (e *Engine) FindRelated(question domain.Question, all []domain.Question, opts RelatedOptions) []domain.Question {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = DefaultRelatedResults
	}

	pool := make([]domain.Question, 0, len(all))
	for _, q := range all {
		if q.ID == question.ID {
			continue
		}
		if opts.SameCategoryOnly && q.Category != question.Category {
			continue
		}
		if opts.SameDifficultyOnly && q.Difficulty != question.Difficulty {
			continue
		}
		pool = append(pool, q)
	}

	if !question.HasTopic() {
		return mostSimilar(question.Text, pool, limit)
	}

	sameTopic := make([]domain.Question, 0, limit)
	rest := make([]domain.Question, 0, len(pool))
	for _, q := range pool {
		if q.Topic == question.Topic {
			sameTopic = append(sameTopic, q)
		} else {
			rest = append(rest, q)
		}
	}
	if len(sameTopic) >= limit {
		return sameTopic[:limit]
	}

	return append(sameTopic, mostSimilar(question.Text, rest, limit-len(sameTopic))...)
}

// mostSimilar ranks pool by similarity to text and keeps the top n.
func mostSimilar(text string, pool []domain.Question, n int) []domain.Question {
	if n <= 0 || len(pool) == 0 {
		return []domain.Question{}
	}

	canonical := textmatch.Canonical(text)
	scored := make([]scoredQuestion, len(pool))
	for i, q := range pool {
		scored[i] = scoredQuestion{
			question: q,
			score:    textmatch.CanonicalSimilarity(canonical, textmatch.Canonical(q.Text)),
		}
	}
	slices.SortStableFunc(scored, func(a, b scoredQuestion) int {
		return cmp.Compare(b.score, a.score)
	})

	n = min(n, len(scored))
	out := make([]domain.Question, n)
	for i := range n {
		out[i] = scored[i].question
	}
	return out
}
