package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestQuiz_Classify(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		quiz     Quiz
		expected string
	}{
		{
			name:     "До начала - upcoming",
			quiz:     Quiz{StartTime: now.Add(time.Hour)},
			expected: QuizStateUpcoming,
		},
		{
			name:     "Ровно в момент начала - live",
			quiz:     Quiz{StartTime: now},
			expected: QuizStateLive,
		},
		{
			name: "Между началом и концом - live",
			quiz: Quiz{
				StartTime: now.Add(-time.Hour),
				EndTime:   timePtr(now.Add(time.Hour)),
			},
			expected: QuizStateLive,
		},
		{
			name: "Ровно в момент конца - еще live",
			quiz: Quiz{
				StartTime: now.Add(-time.Hour),
				EndTime:   timePtr(now),
			},
			expected: QuizStateLive,
		},
		{
			name: "После конца - archived",
			quiz: Quiz{
				StartTime: now.Add(-2 * time.Hour),
				EndTime:   timePtr(now.Add(-time.Hour)),
			},
			expected: QuizStateArchived,
		},
		{
			name:     "Без end_time викторина не архивируется",
			quiz:     Quiz{StartTime: now.Add(-100 * 24 * time.Hour)},
			expected: QuizStateLive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.quiz.Classify(now))
		})
	}
}

func TestQuiz_StateHelpers(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	upcoming := Quiz{StartTime: now.Add(time.Hour)}
	assert.True(t, upcoming.IsUpcoming(now))
	assert.False(t, upcoming.IsLive(now))
	assert.False(t, upcoming.IsArchived(now))

	live := Quiz{StartTime: now.Add(-time.Hour), EndTime: timePtr(now.Add(time.Hour))}
	assert.False(t, live.IsUpcoming(now))
	assert.True(t, live.IsLive(now))

	archived := Quiz{StartTime: now.Add(-2 * time.Hour), EndTime: timePtr(now.Add(-time.Hour))}
	assert.True(t, archived.IsArchived(now))
	assert.False(t, archived.IsLive(now))
}

func TestQuiz_MergeLanguages(t *testing.T) {
	t.Run("Пустая викторина получает язык по умолчанию", func(t *testing.T) {
		quiz := Quiz{}

		changed := quiz.MergeLanguages(nil)

		assert.True(t, changed)
		assert.Equal(t, StringArray{DefaultLanguage}, quiz.Languages)
	})

	t.Run("Новые коды добавляются без дубликатов", func(t *testing.T) {
		quiz := Quiz{Languages: StringArray{"en", "ru"}}

		changed := quiz.MergeLanguages([]string{"ru", "de", "de", "fr"})

		assert.True(t, changed)
		assert.Equal(t, StringArray{"en", "ru", "de", "fr"}, quiz.Languages)
	})

	t.Run("Повторное слияние тех же кодов ничего не меняет", func(t *testing.T) {
		quiz := Quiz{Languages: StringArray{"en", "ru"}}

		changed := quiz.MergeLanguages([]string{"ru", "en"})

		assert.False(t, changed)
		assert.Equal(t, StringArray{"en", "ru"}, quiz.Languages)
	})

	t.Run("Пустые коды игнорируются", func(t *testing.T) {
		quiz := Quiz{Languages: StringArray{"en"}}

		changed := quiz.MergeLanguages([]string{""})

		assert.False(t, changed)
		assert.Equal(t, StringArray{"en"}, quiz.Languages)
	})
}
