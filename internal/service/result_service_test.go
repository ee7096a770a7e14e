package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/quizlive-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizlive-api/internal/pkg/errors"
)

func resultTestQuestions() []entity.Question {
	return []entity.Question{
		{ID: 1, QuizID: 1, Text: "Q1", Options: entity.StringArray{"A", "B", "C", "D"}, CorrectIndex: 0},
		{ID: 2, QuizID: 1, Text: "Q2", Options: entity.StringArray{"A", "B", "C", "D"}, CorrectIndex: 2},
		{ID: 3, QuizID: 1, Text: "Q3", Options: entity.StringArray{"A", "B", "C", "D"}, CorrectIndex: 3},
	}
}

func TestResultService_Submit_Scoring(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name          string
		answers       map[uint]int
		expectedScore int
	}{
		{
			name:          "Все ответы верные",
			answers:       map[uint]int{1: 0, 2: 2, 3: 3},
			expectedScore: 3,
		},
		{
			name:          "Частично верные",
			answers:       map[uint]int{1: 0, 2: 1, 3: 3},
			expectedScore: 2,
		},
		{
			name:          "Пустые ответы - ноль очков",
			answers:       map[uint]int{},
			expectedScore: 0,
		},
		{
			name:          "Ответы на чужие вопросы игнорируются",
			answers:       map[uint]int{99: 0, 100: 2},
			expectedScore: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockQuizRepo := new(MockQuizRepository)
			mockQuestionRepo := new(MockQuestionRepository)
			mockSessionRepo := new(MockSessionRepository)

			mockQuizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1}, nil)
			mockQuestionRepo.On("GetByQuizID", uint(1)).Return(resultTestQuestions(), nil)
			mockSessionRepo.On("Create", mock.MatchedBy(func(s *entity.Session) bool {
				return s.QuizID == 1 && s.Score == tc.expectedScore && s.ParticipantName == "Алиса"
			})).Return(nil)

			resultService := NewResultService(mockQuizRepo, mockQuestionRepo, mockSessionRepo, nil)

			// Act
			result, err := resultService.Submit(1, "Алиса", tc.answers, 42, now)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectedScore, result.Score)
			assert.Equal(t, 3, result.Total, "Total - число вопросов викторины, а не число ответов")
			mockSessionRepo.AssertExpectations(t)
		})
	}
}

func TestResultService_Submit_UnknownQuiz(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockSessionRepo := new(MockSessionRepository)
	mockQuizRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	resultService := NewResultService(mockQuizRepo, new(MockQuestionRepository), mockSessionRepo, nil)

	// Act
	result, err := resultService.Submit(99, "Боб", map[uint]int{1: 0}, 10, time.Now())

	// Assert: несуществующая викторина - 404, сессия не создается
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockSessionRepo.AssertNotCalled(t, "Create")
}

func TestResultService_Submit_InvalidatesCache(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuestionRepo := new(MockQuestionRepository)
	mockSessionRepo := new(MockSessionRepository)
	mockCacheRepo := new(MockCacheRepository)

	mockQuizRepo.On("GetByID", uint(1)).Return(&entity.Quiz{ID: 1}, nil)
	mockQuestionRepo.On("GetByQuizID", uint(1)).Return(resultTestQuestions(), nil)
	mockSessionRepo.On("Create", mock.AnythingOfType("*entity.Session")).Return(nil)
	mockCacheRepo.On("Delete", "leaderboard:quiz:1").Return(nil)

	resultService := NewResultService(mockQuizRepo, mockQuestionRepo, mockSessionRepo, mockCacheRepo)

	// Act
	_, err := resultService.Submit(1, "Алиса", map[uint]int{1: 0}, 5, time.Now())

	// Assert
	require.NoError(t, err)
	mockCacheRepo.AssertExpectations(t)
}

func TestResultService_GetLeaderboard_CacheMiss(t *testing.T) {
	// Arrange
	mockSessionRepo := new(MockSessionRepository)
	mockCacheRepo := new(MockCacheRepository)

	top := []entity.Session{
		{ID: 1, QuizID: 1, ParticipantName: "Алиса", Score: 5, TimeTakenSeconds: 10},
		{ID: 2, QuizID: 1, ParticipantName: "Боб", Score: 5, TimeTakenSeconds: 30},
		{ID: 3, QuizID: 1, ParticipantName: "Ева", Score: 3, TimeTakenSeconds: 5},
	}

	mockCacheRepo.On("GetJSON", "leaderboard:quiz:1", mock.Anything).Return(apperrors.ErrNotFound)
	mockSessionRepo.On("GetTopByQuizID", uint(1), LeaderboardSize).Return(top, nil)
	mockCacheRepo.On("SetJSON", "leaderboard:quiz:1", top, mock.AnythingOfType("time.Duration")).Return(nil)

	resultService := NewResultService(nil, nil, mockSessionRepo, mockCacheRepo)

	// Act
	sessions, err := resultService.GetLeaderboard(1)

	// Assert: порядок отдается как есть из репозитория (score DESC, time ASC)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "Алиса", sessions[0].ParticipantName)
	assert.Equal(t, "Боб", sessions[1].ParticipantName)
	assert.Equal(t, "Ева", sessions[2].ParticipantName)
	mockSessionRepo.AssertExpectations(t)
	mockCacheRepo.AssertExpectations(t)
}

func TestResultService_GetLeaderboard_WithoutCache(t *testing.T) {
	// Arrange: сервис работает и без Redis
	mockSessionRepo := new(MockSessionRepository)
	mockSessionRepo.On("GetTopByQuizID", uint(1), LeaderboardSize).Return([]entity.Session{}, nil)

	resultService := NewResultService(nil, nil, mockSessionRepo, nil)

	// Act
	sessions, err := resultService.GetLeaderboard(1)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestResultService_GetQuizSessions_UnknownQuiz(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetByID", uint(42)).Return(nil, apperrors.ErrNotFound)

	resultService := NewResultService(mockQuizRepo, nil, new(MockSessionRepository), nil)

	// Act
	sessions, err := resultService.GetQuizSessions(42)

	// Assert
	assert.Nil(t, sessions)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestResultService_DeleteSession(t *testing.T) {
	t.Run("Удаление инвалидирует кеш викторины сессии", func(t *testing.T) {
		// Arrange
		mockSessionRepo := new(MockSessionRepository)
		mockCacheRepo := new(MockCacheRepository)

		mockSessionRepo.On("GetByID", uint(7)).Return(&entity.Session{ID: 7, QuizID: 3}, nil)
		mockSessionRepo.On("Delete", uint(7)).Return(nil)
		mockCacheRepo.On("Delete", "leaderboard:quiz:3").Return(nil)

		resultService := NewResultService(nil, nil, mockSessionRepo, mockCacheRepo)

		// Act
		err := resultService.DeleteSession(7)

		// Assert
		require.NoError(t, err)
		mockSessionRepo.AssertExpectations(t)
		mockCacheRepo.AssertExpectations(t)
	})

	t.Run("Несуществующая сессия - ErrNotFound", func(t *testing.T) {
		mockSessionRepo := new(MockSessionRepository)
		mockSessionRepo.On("GetByID", uint(404)).Return(nil, apperrors.ErrNotFound)

		resultService := NewResultService(nil, nil, mockSessionRepo, nil)

		err := resultService.DeleteSession(404)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		mockSessionRepo.AssertNotCalled(t, "Delete")
	})
}
