package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quizlive-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizlive-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create создает новую викторину
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	return r.db.Create(quiz).Error
}

// GetByID возвращает викторину по ID
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// ListAll возвращает все викторины, отсортированные по времени начала
func (r *QuizRepo) ListAll() ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Order("start_time ASC").Find(&quizzes).Error
	return quizzes, err
}

// ListVisible возвращает только видимые викторины, отсортированные по времени начала
func (r *QuizRepo) ListVisible() ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Where("is_visible = ?", true).Order("start_time ASC").Find(&quizzes).Error
	return quizzes, err
}

// Update полностью заменяет все поля викторины
func (r *QuizRepo) Update(quiz *entity.Quiz) error {
	result := r.db.Model(&entity.Quiz{}).
		Where("id = ?", quiz.ID).
		Select("Title", "Description", "StartTime", "EndTime", "Theme", "IsVisible", "Languages", "ImageURL").
		Updates(quiz)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateLanguages точечно обновляет набор языков без полного Save
func (r *QuizRepo) UpdateLanguages(quizID uint, languages entity.StringArray) error {
	return r.db.Model(&entity.Quiz{}).
		Where("id = ?", quizID).
		Update("languages", languages).
		Error
}

// Delete удаляет викторину вместе с вопросами и сессиями в одной транзакции.
// Порядок: сначала зависимые строки, затем сама викторина — конкурентный
// читатель не должен увидеть осиротевшие вопросы или сессии.
func (r *QuizRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&entity.Question{}).Error; err != nil {
			return fmt.Errorf("delete questions of quiz #%d: %w", id, err)
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&entity.Session{}).Error; err != nil {
			return fmt.Errorf("delete sessions of quiz #%d: %w", id, err)
		}

		result := tx.Delete(&entity.Quiz{}, id)
		if result.Error != nil {
			return fmt.Errorf("delete quiz #%d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// Clear удаляет вопросы и сессии викторины, сохраняя саму викторину
func (r *QuizRepo) Clear(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var quiz entity.Quiz
		if err := tx.First(&quiz, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if err := tx.Where("quiz_id = ?", id).Delete(&entity.Question{}).Error; err != nil {
			return fmt.Errorf("clear questions of quiz #%d: %w", id, err)
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&entity.Session{}).Error; err != nil {
			return fmt.Errorf("clear sessions of quiz #%d: %w", id, err)
		}
		return nil
	})
}
