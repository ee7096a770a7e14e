package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizlive-api/internal/domain/entity"
	"github.com/yourusername/quizlive-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizlive-api/internal/pkg/errors"
)

// QuizService предоставляет методы для работы с викторинами и их вопросами
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	cacheRepo    repository.CacheRepository
}

// NewQuizService создает новый сервис викторин
func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	cacheRepo repository.CacheRepository,
) *QuizService {
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		cacheRepo:    cacheRepo,
	}
}

// ListQuizzes возвращает список викторин.
// Администратор видит все, остальные — только is_visible=true.
func (s *QuizService) ListQuizzes(isAdmin bool) ([]entity.Quiz, error) {
	if isAdmin {
		return s.quizRepo.ListAll()
	}
	return s.quizRepo.ListVisible()
}

// GetQuizByID возвращает викторину с учетом видимости.
// Скрытая викторина доступна только администратору.
func (s *QuizService) GetQuizByID(quizID uint, isAdmin bool) (*entity.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsVisible && !isAdmin {
		return nil, apperrors.ErrForbidden
	}
	return quiz, nil
}

// CreateQuiz создает новую викторину
func (s *QuizService) CreateQuiz(quiz *entity.Quiz) error {
	if err := validateQuizWindow(quiz); err != nil {
		return err
	}

	// Набор языков всегда содержит язык по умолчанию
	quiz.MergeLanguages(nil)

	if err := s.quizRepo.Create(quiz); err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// UpdateQuiz полностью заменяет все поля викторины
func (s *QuizService) UpdateQuiz(quiz *entity.Quiz) error {
	if err := validateQuizWindow(quiz); err != nil {
		return err
	}

	quiz.MergeLanguages(nil)

	return s.quizRepo.Update(quiz)
}

// DeleteQuiz удаляет викторину вместе с вопросами и сессиями
func (s *QuizService) DeleteQuiz(quizID uint) error {
	if err := s.quizRepo.Delete(quizID); err != nil {
		return err
	}
	s.invalidateLeaderboard(quizID)
	return nil
}

// ClearQuiz удаляет вопросы и сессии викторины, сохраняя саму викторину
func (s *QuizService) ClearQuiz(quizID uint) error {
	if err := s.quizRepo.Clear(quizID); err != nil {
		return err
	}
	s.invalidateLeaderboard(quizID)
	return nil
}

// JoinQuiz проверяет, что к викторине можно присоединиться на момент now.
// До начала викторины возвращает ErrNotStarted; архивные викторины остаются
// доступными для просмотра результатов.
func (s *QuizService) JoinQuiz(quizID uint, now time.Time) error {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return err
	}
	if quiz.IsUpcoming(now) {
		return apperrors.ErrNotStarted
	}
	return nil
}

// GetQuizQuestions возвращает вопросы викторины с учетом тайм-гейтинга.
// Второе значение — включать ли correct_index в ответ: true только для
// архивной викторины (режим review).
func (s *QuizService) GetQuizQuestions(quizID uint, now time.Time) ([]entity.Question, bool, error) {
	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, false, err
	}
	if quiz.IsUpcoming(now) {
		return nil, false, apperrors.ErrNotStarted
	}

	questions, err := s.questionRepo.GetByQuizID(quizID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get questions: %w", err)
	}

	return questions, quiz.IsArchived(now), nil
}

// AddQuestion добавляет один вопрос к викторине.
// Языки переводов вопроса объединяются с языками викторины.
func (s *QuizService) AddQuestion(question *entity.Question) error {
	if err := question.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	quiz, err := s.quizRepo.GetByID(question.QuizID)
	if err != nil {
		return err
	}

	if err := s.questionRepo.Create(question); err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}

	return s.mergeQuizLanguages(quiz, question.Translations.LanguageCodes())
}

// AddQuestionsBatch добавляет вопросы пачкой (bulk-импорт), все-или-ничего
func (s *QuizService) AddQuestionsBatch(quizID uint, questions []entity.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: questions list is empty", apperrors.ErrValidation)
	}

	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return err
	}

	langs := make([]string, 0)
	for i := range questions {
		questions[i].QuizID = quizID
		if err := questions[i].Validate(); err != nil {
			return fmt.Errorf("%w: question %d: %v", apperrors.ErrValidation, i+1, err)
		}
		langs = append(langs, questions[i].Translations.LanguageCodes()...)
	}

	if err := s.questionRepo.CreateBatch(questions); err != nil {
		return fmt.Errorf("failed to create questions: %w", err)
	}

	return s.mergeQuizLanguages(quiz, langs)
}

// UpdateQuestion обновляет вопрос и при необходимости расширяет языки викторины
func (s *QuizService) UpdateQuestion(question *entity.Question) error {
	if err := question.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	existing, err := s.questionRepo.GetByID(question.ID)
	if err != nil {
		return err
	}
	question.QuizID = existing.QuizID

	if err := s.questionRepo.Update(question); err != nil {
		return err
	}

	quiz, err := s.quizRepo.GetByID(question.QuizID)
	if err != nil {
		return err
	}
	return s.mergeQuizLanguages(quiz, question.Translations.LanguageCodes())
}

// ListAllQuestions возвращает все вопросы с названиями викторин (админская таблица)
func (s *QuizService) ListAllQuestions() ([]repository.QuestionWithQuizTitle, error) {
	return s.questionRepo.ListWithQuizTitle()
}

// mergeQuizLanguages объединяет языки и пишет набор в базу только при изменении
func (s *QuizService) mergeQuizLanguages(quiz *entity.Quiz, codes []string) error {
	if !quiz.MergeLanguages(codes) {
		return nil
	}
	if err := s.quizRepo.UpdateLanguages(quiz.ID, quiz.Languages); err != nil {
		return fmt.Errorf("failed to update quiz languages: %w", err)
	}
	return nil
}

// invalidateLeaderboard сбрасывает кеш лидерборда викторины.
// Ошибки кеша не фатальны: запись протухнет сама по TTL.
func (s *QuizService) invalidateLeaderboard(quizID uint) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(leaderboardCacheKey(quizID)); err != nil {
		log.Printf("[QuizService] Ошибка инвалидации кеша лидерборда для викторины #%d: %v", quizID, err)
	}
}

// validateQuizWindow проверяет инварианты временного окна викторины
func validateQuizWindow(quiz *entity.Quiz) error {
	if quiz.StartTime.IsZero() {
		return fmt.Errorf("%w: start_time is required", apperrors.ErrValidation)
	}
	if quiz.EndTime != nil && !quiz.EndTime.After(quiz.StartTime) {
		return fmt.Errorf("%w: end_time must be after start_time", apperrors.ErrValidation)
	}
	return nil
}
