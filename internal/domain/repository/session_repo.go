package repository

import (
	"github.com/yourusername/quizlive-api/internal/domain/entity"
)

// SessionRepository определяет методы для работы с сессиями участников
type SessionRepository interface {
	Create(session *entity.Session) error
	GetByID(id uint) (*entity.Session, error)
	// GetTopByQuizID возвращает лучшие сессии викторины:
	// сортировка score DESC, time_taken_seconds ASC, не более limit строк
	GetTopByQuizID(quizID uint, limit int) ([]entity.Session, error)
	GetByQuizID(quizID uint) ([]entity.Session, error)
	Delete(id uint) error
}
