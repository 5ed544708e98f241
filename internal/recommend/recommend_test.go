package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/testutils"
)

func questionIDs(qs []domain.Question) []int {
	out := make([]int, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func TestRecommender_Recommend(t *testing.T) {
	bank := testutils.SampleQuestions()

	tests := []struct {
		name     string
		answered []domain.AnsweredRecord
		opts     Options
		wantEasy []int
		wantHard []int
	}{
		{
			name:     "no history",
			wantEasy: []int{},
			wantHard: []int{},
		},
		{
			name:     "weak algebra",
			answered: []domain.AnsweredRecord{{QuestionID: 4, Correct: false}},
			wantEasy: []int{5},
			wantHard: []int{5, 6, 7, 9},
		},
		{
			name:     "weak vocabulary",
			answered: []domain.AnsweredRecord{{QuestionID: 1, Correct: false}},
			wantEasy: []int{2},
			wantHard: []int{2, 3, 8},
		},
		{
			name:     "hard cap",
			answered: []domain.AnsweredRecord{{QuestionID: 4, Correct: false}},
			opts:     Options{MaxHard: 2},
			wantEasy: []int{5},
			wantHard: []int{5, 6},
		},
		{
			name:     "category focus excludes weak areas",
			answered: []domain.AnsweredRecord{{QuestionID: 4, Correct: false}},
			opts:     Options{CategoryFocus: domain.CategoryVerbal},
			wantEasy: []int{},
			wantHard: []int{},
		},
		{
			name: "answered questions skipped",
			answered: []domain.AnsweredRecord{
				{QuestionID: 4, Correct: false},
				{QuestionID: 5, Correct: true},
			},
			wantEasy: []int{},
			wantHard: []int{6, 7, 9},
		},
		{
			name: "all correct",
			answered: []domain.AnsweredRecord{
				{QuestionID: 1, Correct: true},
				{QuestionID: 4, Correct: true},
			},
			wantEasy: []int{},
			wantHard: []int{},
		},
		{
			name:     "unknown question id",
			answered: []domain.AnsweredRecord{{QuestionID: 999, Correct: false}},
			wantEasy: []int{},
			wantHard: []int{},
		},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := r.Recommend(tt.answered, bank, tt.opts)
			assert.NotNil(t, rec.EasyQuestions)
			assert.NotNil(t, rec.HardQuestions)
			assert.Equal(t, tt.wantEasy, questionIDs(rec.EasyQuestions))
			assert.Equal(t, tt.wantHard, questionIDs(rec.HardQuestions))
		})
	}
}

func TestRecommender_Recommend_EasyCap(t *testing.T) {
	bank := testutils.GeneratedQuestions(40)
	// Question 1 is topic-0, beginner: every topic-0 question becomes a
	// candidate.
	rec := New().Recommend([]domain.AnsweredRecord{{QuestionID: 1}}, bank, Options{})

	assert.Len(t, rec.EasyQuestions, DefaultMaxEasy)
	assert.Len(t, rec.HardQuestions, DefaultMaxHard)
	for _, q := range rec.EasyQuestions {
		assert.Equal(t, "topic-0", q.Topic)
		assert.NotEqual(t, domain.DifficultyAdvanced, q.Difficulty)
	}
	for _, q := range rec.HardQuestions {
		assert.NotEqual(t, domain.DifficultyBeginner, q.Difficulty)
		assert.NotEqual(t, 1, q.ID)
	}
}

func TestNewHistory(t *testing.T) {
	bank := testutils.SampleQuestions()
	h := newHistory([]domain.AnsweredRecord{
		{QuestionID: 4, Correct: false},
		{QuestionID: 8, Correct: false}, // no topic
		{QuestionID: 5, Correct: true},
		{QuestionID: 1, Correct: true},
		{QuestionID: 42, Correct: false}, // unknown
	}, bank)

	assert.Equal(t, 5, h.total)
	assert.True(t, h.answered(42))
	assert.True(t, h.answered(8))
	assert.False(t, h.answered(2))

	assert.True(t, h.isWeakTopic(testutils.TopicAlgebra))
	assert.False(t, h.isWeakTopic(testutils.TopicVocabulary))
	assert.True(t, h.isWeakCategory(domain.CategoryVerbal))
	assert.True(t, h.isWeakCategory(domain.CategoryQuantitative))

	assert.True(t, h.hasTopic(testutils.TopicVocabulary))
	assert.False(t, h.hasTopic(testutils.TopicGeometry))
	assert.Equal(t, []string{testutils.TopicAlgebra}, h.weakAreas(WeakAccuracyThreshold))
	assert.Empty(t, h.weakAreas(0.5))
}

func TestRecommender_Determinism(t *testing.T) {
	r := New()
	answered := []domain.AnsweredRecord{
		{QuestionID: 1, Correct: false},
		{QuestionID: 2, Correct: true},
		{QuestionID: 6, Correct: false},
		{QuestionID: 11, Correct: true},
		{QuestionID: 23, Correct: false},
		{QuestionID: 42, Correct: false},
	}

	first := r.Recommend(answered, testutils.GeneratedQuestions(200), Options{})
	second := r.Recommend(answered, testutils.GeneratedQuestions(200), Options{})
	assert.Equal(t, first, second)

	firstPath := r.GenerateLearningPath(answered, testutils.GeneratedQuestions(200), 3)
	secondPath := r.GenerateLearningPath(answered, testutils.GeneratedQuestions(200), 3)
	assert.Equal(t, firstPath, secondPath)
	assert.NotEmpty(t, firstPath.LearningPath)
}
