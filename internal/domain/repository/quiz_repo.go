package repository

import (
	"github.com/yourusername/quizlive-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	Create(quiz *entity.Quiz) error
	GetByID(id uint) (*entity.Quiz, error)
	// ListAll возвращает все викторины, отсортированные по start_time (для администратора)
	ListAll() ([]entity.Quiz, error)
	// ListVisible возвращает только is_visible=true викторины, отсортированные по start_time
	ListVisible() ([]entity.Quiz, error)
	// Update полностью заменяет все поля викторины
	Update(quiz *entity.Quiz) error
	// UpdateLanguages точечно обновляет набор языков без полного Save
	UpdateLanguages(quizID uint, languages entity.StringArray) error
	// Delete удаляет викторину вместе с ее вопросами и сессиями в одной транзакции
	Delete(id uint) error
	// Clear удаляет вопросы и сессии викторины в одной транзакции, сохраняя саму викторину
	Clear(id uint) error
}
