// Package recommend infers a user's weak areas from their answer history and
// proposes practice sets and a learning path.
package recommend

import (
	"github.com/qiyas-prep/smartsearch/internal/domain"
)

// Practice set defaults.
const (
	DefaultMaxEasy = 3
	DefaultMaxHard = 5
)

// Options bounds the practice sets produced by Recommend.
type Options struct {
	// MaxEasy caps EasyQuestions; zero or negative selects DefaultMaxEasy.
	MaxEasy int `yaml:"max_easy" json:"max_easy" mapstructure:"max_easy"`
	// MaxHard caps HardQuestions; zero or negative selects DefaultMaxHard.
	MaxHard int `yaml:"max_hard" json:"max_hard" mapstructure:"max_hard"`
	// CategoryFocus restricts candidates to one category when set.
	CategoryFocus domain.Category `yaml:"category_focus" json:"category_focus" mapstructure:"category_focus"`
}

func (o Options) withDefaults() Options {
	if o.MaxEasy <= 0 {
		o.MaxEasy = DefaultMaxEasy
	}
	if o.MaxHard <= 0 {
		o.MaxHard = DefaultMaxHard
	}
	return o
}

// Recommender builds practice recommendations. It is stateless; the zero
// value is ready to use and safe for concurrent calls.
type Recommender struct{}

// New returns a Recommender.
func New() *Recommender { return &Recommender{} }

// Recommend proposes unanswered questions that target the user's weak
// topics and categories, the topics and categories of every question
// answered incorrectly.
//
// EasyQuestions share a weak topic and are beginner or intermediate.
// HardQuestions share a weak topic or a weak category and are intermediate
// or advanced. Both keep the order of all and are capped by opts.
func (r *Recommender) Recommend(answered []domain.AnsweredRecord, all []domain.Question, opts Options) domain.Recommendation {
	opts = opts.withDefaults()

	h := newHistory(answered, all)

	rec := domain.Recommendation{
		EasyQuestions: []domain.Question{},
		HardQuestions: []domain.Question{},
	}
	for _, q := range all {
		if h.answered(q.ID) {
			continue
		}
		if opts.CategoryFocus != "" && q.Category != opts.CategoryFocus {
			continue
		}

		weakTopic := q.HasTopic() && h.isWeakTopic(q.Topic)
		weakCategory := h.isWeakCategory(q.Category)

		if len(rec.EasyQuestions) < opts.MaxEasy && weakTopic && isEasy(q.Difficulty) {
			rec.EasyQuestions = append(rec.EasyQuestions, q)
		}
		if len(rec.HardQuestions) < opts.MaxHard && (weakTopic || weakCategory) && isHard(q.Difficulty) {
			rec.HardQuestions = append(rec.HardQuestions, q)
		}
	}
	return rec
}

func isEasy(d domain.Difficulty) bool {
	return d == domain.DifficultyBeginner || d == domain.DifficultyIntermediate
}

func isHard(d domain.Difficulty) bool {
	return d == domain.DifficultyIntermediate || d == domain.DifficultyAdvanced
}
