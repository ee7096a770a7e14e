package repository

import (
	"github.com/yourusername/quizlive-api/internal/domain/entity"
)

// QuestionWithQuizTitle — вопрос вместе с названием викторины для админской таблицы
type QuestionWithQuizTitle struct {
	entity.Question
	QuizTitle string `json:"quiz_title"`
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	// CreateBatch сохраняет вопросы все-или-ничего в одной транзакции
	CreateBatch(questions []entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	GetByQuizID(quizID uint) ([]entity.Question, error)
	// ListWithQuizTitle возвращает все вопросы, соединенные с названием викторины
	ListWithQuizTitle() ([]QuestionWithQuizTitle, error)
	Update(question *entity.Question) error
}
