package recommend

import "github.com/qiyas-prep/smartsearch/internal/domain"

// Learning path tuning.
const (
	// WeakAccuracyThreshold marks a topic as weak below this accuracy.
	WeakAccuracyThreshold = 0.6

	weakAreaQuestions = 5
	newTopicQuestions = 3
	newTopicAreas     = 3

	minDailyGoal = 5
	maxDailyGoal = 15
)

// levelTier maps a minimum user level to its label and next milestone.
type levelTier struct {
	minLevel  int
	label     string
	milestone string
}

// levelTiers is ordered from the highest minimum level down.
var levelTiers = []levelTier{
	{minLevel: 5, label: "خبير", milestone: "الحفاظ على مستوى الخبير ومساعدة الآخرين"},
	{minLevel: 3, label: "متقدم", milestone: "الوصول إلى مستوى الخبير"},
	{minLevel: 2, label: "متوسط", milestone: "الوصول إلى المستوى المتقدم"},
	{minLevel: 0, label: "مبتدئ", milestone: "الوصول إلى المستوى المتوسط"},
}

func tierFor(level int) levelTier {
	for _, t := range levelTiers {
		if level >= t.minLevel {
			return t
		}
	}
	return levelTiers[len(levelTiers)-1]
}

// difficultyForLevel picks the difficulty served for topics the user has
// never tried.
func difficultyForLevel(level int) domain.Difficulty {
	switch {
	case level <= 1:
		return domain.DifficultyBeginner
	case level <= 3:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyAdvanced
	}
}

// dailyGoal grows by one question per ten answered, within [5, 15].
func dailyGoal(totalAnswered int) int {
	return min(max(totalAnswered/10+3, minDailyGoal), maxDailyGoal)
}

// GenerateLearningPath summarises the user's level and lays out what to
// study next: one group per weak topic (accuracy below
// WeakAccuracyThreshold) followed by one group per topic the user has never
// answered, served at the difficulty matching userLevel. Groups without
// available questions are omitted. A userLevel below 1 is treated as 1.
func (r *Recommender) GenerateLearningPath(answered []domain.AnsweredRecord, all []domain.Question, userLevel int) domain.LearningPlan {
	if userLevel < 1 {
		userLevel = 1
	}

	h := newHistory(answered, all)
	weak := h.weakAreas(WeakAccuracyThreshold)
	fresh := newTopics(all, h)

	path := make([]domain.PathStep, 0, len(weak)+len(fresh))
	for _, topic := range weak {
		qs := pick(all, weakAreaQuestions, func(q domain.Question) bool {
			return q.Topic == topic && !h.answered(q.ID)
		})
		if len(qs) > 0 {
			path = append(path, domain.PathStep{Topic: topic, Questions: qs})
		}
	}

	level := difficultyForLevel(userLevel)
	for _, topic := range fresh {
		qs := pick(all, newTopicQuestions, func(q domain.Question) bool {
			return q.Topic == topic && q.Difficulty == level
		})
		if len(qs) > 0 {
			path = append(path, domain.PathStep{Topic: topic, Questions: qs})
		}
	}

	areas := make([]string, 0, len(weak)+newTopicAreas)
	areas = append(areas, weak...)
	areas = append(areas, fresh[:min(len(fresh), newTopicAreas)]...)

	tier := tierFor(userLevel)
	return domain.LearningPlan{
		CurrentLevel:     tier.label,
		NextMilestone:    tier.milestone,
		DailyGoal:        dailyGoal(h.total),
		RecommendedAreas: areas,
		LearningPath:     path,
	}
}

// newTopics lists the topics of all, in order of first appearance, that
// the user has not answered.
func newTopics(all []domain.Question, h *history) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, q := range all {
		if !q.HasTopic() || h.hasTopic(q.Topic) {
			continue
		}
		if _, ok := seen[q.Topic]; ok {
			continue
		}
		seen[q.Topic] = struct{}{}
		out = append(out, q.Topic)
	}
	return out
}

// pick returns up to n questions of all satisfying keep, in order.
func pick(all []domain.Question, n int, keep func(domain.Question) bool) []domain.Question {
	var out []domain.Question
	for _, q := range all {
		if len(out) == n {
			break
		}
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}
