package recommend

import "github.com/qiyas-prep/smartsearch/internal/domain"

// topicStats counts attempts on one topic.
type topicStats struct {
	topic   string
	correct int
	total   int
}

func (s topicStats) accuracy() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.correct) / float64(s.total)
}

// history is the digest of an answer log resolved against a question list.
// Records whose question id is unknown still mark the id as answered but
// contribute no topic or category.
type history struct {
	total          int
	answeredIDs    map[int]struct{}
	weakTopics     map[string]struct{}
	weakCategories map[domain.Category]struct{}
	// topics keeps per-topic stats in order of first appearance.
	topics     []*topicStats
	topicIndex map[string]*topicStats
}

func newHistory(answered []domain.AnsweredRecord, all []domain.Question) *history {
	byID := domain.IndexByID(all)
	h := &history{
		total:          len(answered),
		answeredIDs:    make(map[int]struct{}, len(answered)),
		weakTopics:     make(map[string]struct{}),
		weakCategories: make(map[domain.Category]struct{}),
		topicIndex:     make(map[string]*topicStats),
	}

	for _, rec := range answered {
		h.answeredIDs[rec.QuestionID] = struct{}{}

		q, ok := byID[rec.QuestionID]
		if !ok {
			continue
		}

		if !rec.Correct {
			if q.HasTopic() {
				h.weakTopics[q.Topic] = struct{}{}
			}
			if q.Category != "" {
				h.weakCategories[q.Category] = struct{}{}
			}
		}

		if !q.HasTopic() {
			continue
		}
		st, ok := h.topicIndex[q.Topic]
		if !ok {
			st = &topicStats{topic: q.Topic}
			h.topicIndex[q.Topic] = st
			h.topics = append(h.topics, st)
		}
		st.total++
		if rec.Correct {
			st.correct++
		}
	}
	return h
}

func (h *history) answered(id int) bool {
	_, ok := h.answeredIDs[id]
	return ok
}

func (h *history) isWeakTopic(topic string) bool {
	_, ok := h.weakTopics[topic]
	return ok
}

func (h *history) isWeakCategory(c domain.Category) bool {
	_, ok := h.weakCategories[c]
	return ok
}

func (h *history) hasTopic(topic string) bool {
	_, ok := h.topicIndex[topic]
	return ok
}

// weakAreas returns the topics whose accuracy is below threshold, in order
// of first appearance in the history.
func (h *history) weakAreas(threshold float64) []string {
	var out []string
	for _, st := range h.topics {
		if st.accuracy() < threshold {
			out = append(out, st.topic)
		}
	}
	return out
}
