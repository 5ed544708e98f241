// Package domain contains pure, dependency-free domain models and types
// for the smart search engine.
package domain

import (
	"fmt"
	"slices"
)

// Difficulty is the level tag carried by every question. Values other than
// the three predefined constants are allowed and simply never match the
// difficulty tiers used by the recommender.
type Difficulty string

// Predefined difficulty levels.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Category is the coarse subject tag of a question.
type Category string

// Common categories of the aptitude test.
const (
	CategoryVerbal       Category = "verbal"
	CategoryQuantitative Category = "quantitative"
)

// Question is a read-only exam question supplied by an external question
// store. Optional fields are left at their zero value when absent.
type Question struct {
	// ID uniquely identifies the question within a bank.
	ID int `yaml:"id" json:"id" validate:"required"`
	// Text is the Arabic display text and the primary searched field.
	Text string `yaml:"text" json:"text" validate:"required"`
	// Options is the ordered list of answer choices.
	Options []string `yaml:"options" json:"options" validate:"min=1"`
	// CorrectOptionIndex points into Options.
	CorrectOptionIndex int `yaml:"correctOptionIndex" json:"correctOptionIndex" validate:"min=0"`
	// Category is the subject tag, e.g. "verbal".
	Category Category `yaml:"category" json:"category" validate:"required"`
	// Difficulty is the level tag, e.g. "beginner".
	Difficulty Difficulty `yaml:"difficulty" json:"difficulty" validate:"required"`
	// Topic is an optional grouping narrower than Category.
	Topic string `yaml:"topic,omitempty" json:"topic,omitempty"`
	// Keywords are optional pre-tagged search terms.
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
	// Dialect is an optional regional-variant tag.
	Dialect string `yaml:"dialect,omitempty" json:"dialect,omitempty"`
}

// HasTopic reports whether the question carries a topic tag.
func (q Question) HasTopic() bool { return q.Topic != "" }

// CheckOptions verifies the correct-option invariant that struct tags
// cannot express. It returns nil when the index points into Options.
func (q Question) CheckOptions() error {
	if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
		return fmt.Errorf("%w: question %d: correct option index %d out of range [0,%d)",
			ErrInvalidQuestion, q.ID, q.CorrectOptionIndex, len(q.Options))
	}
	return nil
}

// Clone returns a deep copy so callers can hand out snapshots that do not
// alias the store's slices.
func (q Question) Clone() Question {
	q.Options = slices.Clone(q.Options)
	q.Keywords = slices.Clone(q.Keywords)
	return q
}

// AnsweredRecord is one user attempt at a question.
type AnsweredRecord struct {
	QuestionID int  `yaml:"questionId" json:"questionId"`
	Correct    bool `yaml:"correct" json:"correct"`
}

// IndexByID builds an id lookup over questions. When ids repeat, the first
// occurrence wins.
func IndexByID(questions []Question) map[int]*Question {
	idx := make(map[int]*Question, len(questions))
	for i := range questions {
		if _, ok := idx[questions[i].ID]; !ok {
			idx[questions[i].ID] = &questions[i]
		}
	}
	return idx
}
