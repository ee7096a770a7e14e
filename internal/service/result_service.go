package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizlive-api/internal/domain/entity"
	"github.com/yourusername/quizlive-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizlive-api/internal/pkg/errors"
)

const (
	// LeaderboardSize — лидерборд всегда ограничен десятью лучшими сессиями
	LeaderboardSize = 10

	// leaderboardCacheTTL — короткий TTL кеша лидерборда; кеш дополнительно
	// инвалидируется при каждом сабмите и удалении сессии
	leaderboardCacheTTL = 15 * time.Second
)

// leaderboardCacheKey формирует ключ кеша лидерборда викторины
func leaderboardCacheKey(quizID uint) string {
	return fmt.Sprintf("leaderboard:quiz:%d", quizID)
}

// SubmitResult — итог подсчета очков одного захода
type SubmitResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// ResultService считает очки, сохраняет сессии и отдает лидерборд
type ResultService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	sessionRepo  repository.SessionRepository
	cacheRepo    repository.CacheRepository
}

// NewResultService создает новый сервис результатов
func NewResultService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	sessionRepo repository.SessionRepository,
	cacheRepo repository.CacheRepository,
) *ResultService {
	return &ResultService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
		cacheRepo:    cacheRepo,
	}
}

// Submit считает очки по авторитетному набору вопросов викторины и
// безусловно сохраняет новую сессию: повторные заходы одного участника
// создают независимые строки лидерборда.
//
// score — число вопросов, где присланный индекс совпал с correct_index;
// total — число вопросов викторины на момент сабмита, а не число ответов.
// Несуществующая викторина — ErrNotFound, а не нулевой результат.
func (s *ResultService) Submit(quizID uint, participantName string, answers map[uint]int, timeTakenSeconds int, now time.Time) (*SubmitResult, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	score := 0
	for _, q := range questions {
		selected, answered := answers[q.ID]
		if answered && q.IsCorrect(selected) {
			score++
		}
	}

	session := &entity.Session{
		QuizID:           quizID,
		ParticipantName:  participantName,
		Score:            score,
		TimeTakenSeconds: timeTakenSeconds,
		CompletedAt:      now,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.invalidateLeaderboard(quizID)

	return &SubmitResult{Score: score, Total: len(questions)}, nil
}

// GetLeaderboard возвращает топ-10 сессий викторины: score DESC, time ASC.
// Результат кешируется в Redis на короткий TTL.
func (s *ResultService) GetLeaderboard(quizID uint) ([]entity.Session, error) {
	cacheKey := leaderboardCacheKey(quizID)

	if s.cacheRepo != nil {
		var cached []entity.Session
		err := s.cacheRepo.GetJSON(cacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[ResultService] Ошибка чтения кеша лидерборда для викторины #%d: %v", quizID, err)
		}
	}

	sessions, err := s.sessionRepo.GetTopByQuizID(quizID, LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, sessions, leaderboardCacheTTL); err != nil {
			log.Printf("[ResultService] Ошибка записи кеша лидерборда для викторины #%d: %v", quizID, err)
		}
	}

	return sessions, nil
}

// GetQuizSessions возвращает все сессии викторины (админский просмотр)
func (s *ResultService) GetQuizSessions(quizID uint) ([]entity.Session, error) {
	if _, err := s.quizRepo.GetByID(quizID); err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByQuizID(quizID)
}

// DeleteSession удаляет сессию и убирает ее из лидерборда
func (s *ResultService) DeleteSession(sessionID uint) error {
	session, err := s.sessionRepo.GetByID(sessionID)
	if err != nil {
		return err
	}

	if err := s.sessionRepo.Delete(sessionID); err != nil {
		return err
	}

	s.invalidateLeaderboard(session.QuizID)
	return nil
}

// invalidateLeaderboard сбрасывает кеш лидерборда викторины
func (s *ResultService) invalidateLeaderboard(quizID uint) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(leaderboardCacheKey(quizID)); err != nil {
		log.Printf("[ResultService] Ошибка инвалидации кеша лидерборда для викторины #%d: %v", quizID, err)
	}
}
