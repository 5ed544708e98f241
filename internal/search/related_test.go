package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/testutils"
)

func ids(qs []domain.Question) []int {
	out := make([]int, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func questionByID(t *testing.T, qs []domain.Question, id int) domain.Question {
	t.Helper()
	for _, q := range qs {
		if q.ID == id {
			return q
		}
	}
	require.FailNow(t, "question not found", "id %d", id)
	return domain.Question{}
}

func TestEngine_FindRelated_SameTopicFirst(t *testing.T) {
	e := newTestEngine(t)
	bank := testutils.SampleQuestions()
	q := questionByID(t, bank, 1)

	related := e.FindRelated(q, bank, RelatedOptions{})
	require.Len(t, related, DefaultRelatedResults)
	assert.Equal(t, 2, related[0].ID, "same-topic question should lead")
	assert.NotContains(t, ids(related), 1)

	seen := make(map[int]bool)
	for _, r := range related {
		assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
	}
}

func TestEngine_FindRelated_SameTopicOverflow(t *testing.T) {
	e := newTestEngine(t)
	bank := testutils.SampleQuestions()

	tests := []struct {
		name    string
		id      int
		max     int
		wantIDs []int
	}{
		{name: "truncated to max in input order", id: 4, max: 1, wantIDs: []int{5}},
		{name: "exactly filled", id: 9, max: 2, wantIDs: []int{4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := questionByID(t, bank, tt.id)
			assert.Equal(t, tt.wantIDs, ids(e.FindRelated(q, bank, RelatedOptions{MaxResults: tt.max})))
		})
	}
}

func TestEngine_FindRelated_PaddingBySimilarity(t *testing.T) {
	e := newTestEngine(t)
	q := domain.Question{ID: 100, Text: "كتاب", Topic: "t"}
	pool := []domain.Question{
		{ID: 1, Text: "قلم", Topic: "other"},
		{ID: 2, Text: "كتب", Topic: "other"},
		{ID: 3, Text: "شيء آخر", Topic: "t"},
		{ID: 4, Text: "كتاب", Topic: "other"},
	}

	related := e.FindRelated(q, pool, RelatedOptions{MaxResults: 3})
	assert.Equal(t, []int{3, 4, 2}, ids(related))
}

func TestEngine_FindRelated_NoTopic(t *testing.T) {
	e := newTestEngine(t)
	q := domain.Question{ID: 100, Text: "كتاب"}
	pool := []domain.Question{
		{ID: 1, Text: "قلم"},
		{ID: 2, Text: "كتب"},
		{ID: 3, Text: "كتاب", Topic: "any"},
		{ID: 5, Text: "xyz"},
		{ID: 100, Text: "كتاب"},
	}

	t.Run("ranked by similarity with stable ties", func(t *testing.T) {
		assert.Equal(t, []int{3, 2, 1, 5}, ids(e.FindRelated(q, pool, RelatedOptions{})))
	})

	t.Run("capped", func(t *testing.T) {
		assert.Equal(t, []int{3, 2}, ids(e.FindRelated(q, pool, RelatedOptions{MaxResults: 2})))
	})
}

func TestEngine_FindRelated_Filters(t *testing.T) {
	e := newTestEngine(t)
	bank := testutils.SampleQuestions()
	q := questionByID(t, bank, 2) // verbal, intermediate, vocabulary

	t.Run("same category", func(t *testing.T) {
		related := e.FindRelated(q, bank, RelatedOptions{MaxResults: 10, SameCategoryOnly: true})
		require.NotEmpty(t, related)
		for _, r := range related {
			assert.Equal(t, domain.CategoryVerbal, r.Category)
		}
		assert.Equal(t, []int{1}, ids(related[:1]))
		assert.Len(t, related, 4)
	})

	t.Run("same difficulty", func(t *testing.T) {
		related := e.FindRelated(q, bank, RelatedOptions{MaxResults: 10, SameDifficultyOnly: true})
		for _, r := range related {
			assert.Equal(t, domain.DifficultyIntermediate, r.Difficulty)
		}
		assert.ElementsMatch(t, []int{3, 5, 7}, ids(related))
	})

	t.Run("both", func(t *testing.T) {
		related := e.FindRelated(q, bank, RelatedOptions{SameCategoryOnly: true, SameDifficultyOnly: true})
		assert.Equal(t, []int{3}, ids(related))
	})
}

func TestEngine_FindRelated_EmptyPool(t *testing.T) {
	e := newTestEngine(t)
	q := domain.Question{ID: 1, Text: "سؤال"}

	for _, pool := range [][]domain.Question{nil, {q}} {
		related := e.FindRelated(q, pool, RelatedOptions{})
		assert.NotNil(t, related)
		assert.Empty(t, related)
	}
}
