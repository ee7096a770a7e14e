package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/quizlive-api/internal/domain/entity"
	"github.com/yourusername/quizlive-api/internal/domain/repository"
)

func TestNewQuestionResponse_AnswerVisibility(t *testing.T) {
	question := entity.Question{
		ID:           1,
		QuizID:       2,
		Text:         "Вопрос",
		Options:      entity.StringArray{"A", "B", "C", "D"},
		CorrectIndex: 3,
	}

	t.Run("Без режима review correct_index отсутствует в JSON", func(t *testing.T) {
		resp := NewQuestionResponse(&question, false)

		data, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "correct_index")
	})

	t.Run("В режиме review correct_index присутствует", func(t *testing.T) {
		resp := NewQuestionResponse(&question, true)

		data, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"correct_index":3`)
	})
}

func TestNewAdminQuestionListResponse_IncludesCorrectIndex(t *testing.T) {
	// Админской таблице индекс нужен всегда: без него вопрос не отредактировать
	rows := []repository.QuestionWithQuizTitle{
		{
			Question: entity.Question{
				ID:           1,
				QuizID:       2,
				Text:         "Вопрос",
				Options:      entity.StringArray{"A", "B", "C", "D"},
				CorrectIndex: 3,
			},
			QuizTitle: "Викторина",
		},
	}

	responses := NewAdminQuestionListResponse(rows)

	require.Len(t, responses, 1)
	assert.Equal(t, 3, responses[0].CorrectIndex)
	assert.Equal(t, "Викторина", responses[0].QuizTitle)

	data, err := json.Marshal(responses)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"correct_index":3`)
	assert.Contains(t, string(data), `"quiz_title":"Викторина"`)
}
