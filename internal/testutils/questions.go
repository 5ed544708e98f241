// Package testutils provides shared fixtures for tests across packages.
package testutils

import (
	"fmt"

	"github.com/qiyas-prep/smartsearch/internal/domain"
)

// Topic names used by SampleQuestions.
const (
	TopicVocabulary    = "مفردات"
	TopicAnalogy       = "تناظر لفظي"
	TopicAlgebra       = "جبر"
	TopicGeometry      = "هندسة"
	TopicComprehension = "استيعاب المقروء"
)

// SampleQuestions returns a small mixed bank covering both categories,
// all three difficulties and one question without a topic. Each call
// returns fresh slices.
func SampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID: 1, Text: "ما معنى كلمة الإيجاز في الجملة؟",
			Options: []string{"الاختصار", "الإطالة", "التكرار", "الغموض"}, CorrectOptionIndex: 0,
			Category: domain.CategoryVerbal, Difficulty: domain.DifficultyBeginner,
			Topic: TopicVocabulary, Keywords: []string{"الإيجاز", "مفردات"},
		},
		{
			ID: 2, Text: "ما مرادف كلمة السرور؟",
			Options: []string{"الحزن", "الفرح", "الغضب", "الخوف"}, CorrectOptionIndex: 1,
			Category: domain.CategoryVerbal, Difficulty: domain.DifficultyIntermediate,
			Topic: TopicVocabulary, Keywords: []string{"مرادف", "السرور"},
		},
		{
			ID: 3, Text: "أكمل التناظر اللفظي: قلم : كتابة",
			Options: []string{"مقص : قص", "باب : خشب", "شمس : قمر", "ماء : نهر"}, CorrectOptionIndex: 0,
			Category: domain.CategoryVerbal, Difficulty: domain.DifficultyIntermediate,
			Topic: TopicAnalogy, Keywords: []string{"تناظر", "قلم"},
		},
		{
			ID: 4, Text: "إذا كان س + ٣ = ٧ فما قيمة س؟",
			Options: []string{"٣", "٤", "٥", "١٠"}, CorrectOptionIndex: 1,
			Category: domain.CategoryQuantitative, Difficulty: domain.DifficultyBeginner,
			Topic: TopicAlgebra, Keywords: []string{"معادلة", "جبر"},
		},
		{
			ID: 5, Text: "حل المعادلة ٢س - ٤ = ١٠",
			Options: []string{"٥", "٦", "٧", "٨"}, CorrectOptionIndex: 2,
			Category: domain.CategoryQuantitative, Difficulty: domain.DifficultyIntermediate,
			Topic: TopicAlgebra, Keywords: []string{"معادلة"},
		},
		{
			ID: 6, Text: "ما مساحة مربع طول ضلعه ٥ سم؟",
			Options: []string{"١٠", "٢٠", "٢٥", "٣٠"}, CorrectOptionIndex: 2,
			Category: domain.CategoryQuantitative, Difficulty: domain.DifficultyAdvanced,
			Topic: TopicGeometry, Keywords: []string{"مساحة", "مربع"},
		},
		{
			ID: 7, Text: "احسب محيط دائرة نصف قطرها ٧ سم",
			Options: []string{"٤٤", "٢٢", "١٤", "٤٩"}, CorrectOptionIndex: 0,
			Category: domain.CategoryQuantitative, Difficulty: domain.DifficultyIntermediate,
			Topic: TopicGeometry, Keywords: []string{"محيط", "دائرة"},
		},
		{
			ID: 8, Text: "ما الخطأ في الجملة التالية؟",
			Options: []string{"لا خطأ", "خطأ نحوي", "خطأ إملائي", "خطأ دلالي"}, CorrectOptionIndex: 1,
			Category: domain.CategoryVerbal, Difficulty: domain.DifficultyAdvanced,
		},
		{
			ID: 9, Text: "إذا كانت ص = ٢س فما قيمة ص عندما س = ٤؟",
			Options: []string{"٢", "٤", "٦", "٨"}, CorrectOptionIndex: 3,
			Category: domain.CategoryQuantitative, Difficulty: domain.DifficultyAdvanced,
			Topic: TopicAlgebra,
		},
		{
			ID: 10, Text: "اقرأ النص ثم أجب عن السؤال",
			Options: []string{"أ", "ب", "ج", "د"}, CorrectOptionIndex: 0,
			Category: domain.CategoryVerbal, Difficulty: domain.DifficultyBeginner,
			Topic: TopicComprehension,
		},
	}
}

// GeneratedQuestions returns n synthetic questions whose texts cycle
// through a few Arabic templates, for volume and concurrency tests.
func GeneratedQuestions(n int) []domain.Question {
	templates := []string{
		"اختبار قياس رقم %d للقدرات اللفظية",
		"مسألة حسابية رقم %d في الجبر",
		"سؤال تناظر لفظي رقم %d",
		"تمرين هندسة رقم %d عن المساحة",
	}
	categories := []domain.Category{
		domain.CategoryVerbal, domain.CategoryQuantitative,
		domain.CategoryVerbal, domain.CategoryQuantitative,
	}
	difficulties := []domain.Difficulty{
		domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced,
	}

	qs := make([]domain.Question, n)
	for i := range n {
		k := i % len(templates)
		qs[i] = domain.Question{
			ID:                 i + 1,
			Text:               fmt.Sprintf(templates[k], i+1),
			Options:            []string{"أ", "ب", "ج", "د"},
			CorrectOptionIndex: i % 4,
			Category:           categories[k],
			Difficulty:         difficulties[i%len(difficulties)],
			Topic:              fmt.Sprintf("topic-%d", k),
			Keywords:           []string{"قياس", "القدرات"},
		}
	}
	return qs
}
