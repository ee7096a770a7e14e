package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/quizlive-api/internal/domain/entity"
	"github.com/yourusername/quizlive-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizlive-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	err := r.db.Create(question).Error
	if isForeignKeyViolation(err) {
		// FK quiz_id -> quizzes.id: викторины не существует
		return apperrors.ErrNotFound
	}
	return err
}

// CreateBatch сохраняет вопросы все-или-ничего в одной транзакции
func (r *QuestionRepo) CreateBatch(questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	err := r.db.Create(&questions).Error
	if isForeignKeyViolation(err) {
		return apperrors.ErrNotFound
	}
	return err
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByQuizID возвращает все вопросы викторины в порядке создания
func (r *QuestionRepo) GetByQuizID(quizID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("quiz_id = ?", quizID).Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// ListWithQuizTitle возвращает все вопросы, соединенные с названием викторины
func (r *QuestionRepo) ListWithQuizTitle() ([]repository.QuestionWithQuizTitle, error) {
	var rows []repository.QuestionWithQuizTitle
	err := r.db.Model(&entity.Question{}).
		Select("questions.*, quizzes.title AS quiz_title").
		Joins("JOIN quizzes ON quizzes.id = questions.quiz_id").
		Order("questions.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update обновляет вопрос
func (r *QuestionRepo) Update(question *entity.Question) error {
	result := r.db.Model(&entity.Question{}).
		Where("id = ?", question.ID).
		Select("Text", "Hint", "Options", "CorrectIndex", "ImageURL", "Translations").
		Updates(question)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// isForeignKeyViolation проверяет Postgres foreign key violation (23503) для pgconn и lib/pq драйверов
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return true
	}
	return false
}
