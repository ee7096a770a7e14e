package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuiz_ValidationErrors(t *testing.T) {
	handler := &AdminHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing title",
			body: map[string]interface{}{"start_time": "2025-06-15T18:00:00Z"},
		},
		{
			name: "missing start_time",
			body: map[string]interface{}{"title": "Викторина"},
		},
		{
			name: "unparseable start_time",
			body: map[string]interface{}{"title": "Викторина", "start_time": "вчера"},
		},
		{
			name: "unparseable end_time",
			body: map[string]interface{}{
				"title":      "Викторина",
				"start_time": "2025-06-15T18:00:00Z",
				"end_time":   "потом",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPost, "/api/admin/quizzes", tt.body)

			handler.CreateQuiz(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestQuizPayload_ToEntity(t *testing.T) {
	t.Run("is_visible по умолчанию true", func(t *testing.T) {
		payload := QuizPayload{
			Title:     "Викторина",
			StartTime: "2025-06-15T18:00:00Z",
		}

		quiz, err := payload.toEntity()

		require.NoError(t, err)
		assert.True(t, quiz.IsVisible)
		assert.Nil(t, quiz.EndTime)
	})

	t.Run("Явное is_visible=false сохраняется", func(t *testing.T) {
		hidden := false
		payload := QuizPayload{
			Title:     "Скрытая",
			StartTime: "2025-06-15T18:00:00Z",
			IsVisible: &hidden,
		}

		quiz, err := payload.toEntity()

		require.NoError(t, err)
		assert.False(t, quiz.IsVisible)
	})

	t.Run("end_time разбирается и приводится к UTC", func(t *testing.T) {
		payload := QuizPayload{
			Title:     "Викторина",
			StartTime: "2025-06-15T18:00",
			EndTime:   "2025-06-15T22:00:00+03:00",
		}

		quiz, err := payload.toEntity()

		require.NoError(t, err)
		require.NotNil(t, quiz.EndTime)
		assert.Equal(t, time.Date(2025, 6, 15, 19, 0, 0, 0, time.UTC), quiz.EndTime.UTC())
	})
}

func TestCreateQuestion_ValidationErrors(t *testing.T) {
	handler := &AdminHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing quiz_id",
			body: map[string]interface{}{
				"text":          "Вопрос",
				"options":       []string{"A", "B", "C", "D"},
				"correct_index": 0,
			},
		},
		{
			name: "three options",
			body: map[string]interface{}{
				"quiz_id":       1,
				"text":          "Вопрос",
				"options":       []string{"A", "B", "C"},
				"correct_index": 0,
			},
		},
		{
			name: "five options",
			body: map[string]interface{}{
				"quiz_id":       1,
				"text":          "Вопрос",
				"options":       []string{"A", "B", "C", "D", "E"},
				"correct_index": 0,
			},
		},
		{
			name: "missing correct_index",
			body: map[string]interface{}{
				"quiz_id": 1,
				"text":    "Вопрос",
				"options": []string{"A", "B", "C", "D"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPost, "/api/admin/questions", tt.body)

			handler.CreateQuestion(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestQuestionPayload_CorrectIndexZero(t *testing.T) {
	// Указатель нужен, чтобы binding required не отвергал валидный индекс 0
	zero := 0
	payload := QuestionPayload{
		QuizID:       1,
		Text:         "Вопрос",
		Options:      []string{"A", "B", "C", "D"},
		CorrectIndex: &zero,
	}

	question := payload.toEntity()

	assert.Equal(t, 0, question.CorrectIndex)
	assert.NoError(t, question.Validate())
}

func TestBulkImport_ValidationErrors(t *testing.T) {
	handler := &AdminHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "empty questions list",
			body: map[string]interface{}{"quiz_id": 1, "questions": []interface{}{}},
		},
		{
			name: "invalid nested question",
			body: map[string]interface{}{
				"quiz_id": 1,
				"questions": []interface{}{
					map[string]interface{}{
						"text":          "Вопрос",
						"options":       []string{"A", "B"},
						"correct_index": 0,
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext(http.MethodPost, "/api/admin/questions/bulk", tt.body)

			handler.BulkImportQuestions(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
