package domain

// MatchType names the tier that produced a search result.
type MatchType string

// Match tiers in descending priority.
const (
	// MatchExact means the normalized query is a substring of the question text.
	MatchExact MatchType = "exact"
	// MatchKeyword means query keywords overlapped the question's tagged keywords.
	MatchKeyword MatchType = "keyword"
	// MatchSimilar means the texts were close by edit distance.
	MatchSimilar MatchType = "similar"
)

// SearchResult is one ranked hit returned by the search engine.
type SearchResult struct {
	Question  Question  `json:"question"`
	MatchType MatchType `json:"matchType"`
	// Similarity is the tier score in [0,1].
	Similarity float64 `json:"similarity"`
	// MatchedKeywords is set only for keyword matches.
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`
}

// Recommendation is the pair of practice sets proposed from a user's
// weak topics and categories.
type Recommendation struct {
	EasyQuestions []Question `json:"easyQuestions"`
	HardQuestions []Question `json:"hardQuestions"`
}

// PathStep is one topic group in a learning path.
type PathStep struct {
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
}

// LearningPlan summarises where a user stands and what to study next.
type LearningPlan struct {
	CurrentLevel     string     `json:"currentLevel"`
	NextMilestone    string     `json:"nextMilestone"`
	DailyGoal        int        `json:"dailyGoal"`
	RecommendedAreas []string   `json:"recommendedAreas"`
	LearningPath     []PathStep `json:"learningPath"`
}
