package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/quizlive-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizlive-api/internal/pkg/errors"
)

// SessionRepo реализует repository.SessionRepository
type SessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo создает новый репозиторий сессий
func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create сохраняет новую сессию участника
func (r *SessionRepo) Create(session *entity.Session) error {
	err := r.db.Create(session).Error
	if isForeignKeyViolation(err) {
		return apperrors.ErrNotFound
	}
	return err
}

// GetByID возвращает сессию по ID
func (r *SessionRepo) GetByID(id uint) (*entity.Session, error) {
	var session entity.Session
	err := r.db.First(&session, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetTopByQuizID возвращает лучшие сессии викторины.
// Порядок лидерборда: score DESC, при равенстве быстрее выигрывает (time ASC).
func (r *SessionRepo) GetTopByQuizID(quizID uint, limit int) ([]entity.Session, error) {
	var sessions []entity.Session
	err := r.db.Where("quiz_id = ?", quizID).
		Order("score DESC, time_taken_seconds ASC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetByQuizID возвращает все сессии викторины
func (r *SessionRepo) GetByQuizID(quizID uint) ([]entity.Session, error) {
	var sessions []entity.Session
	err := r.db.Where("quiz_id = ?", quizID).Order("completed_at DESC").Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Delete удаляет сессию (убирает строку из лидерборда)
func (r *SessionRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Session{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
