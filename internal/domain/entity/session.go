package entity

import (
	"time"
)

// Session представляет один сыгранный заход участника.
// Создается ровно один раз при сабмите ответов и больше не изменяется.
// Повторные заходы того же участника создают независимые строки лидерборда.
type Session struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	QuizID           uint      `gorm:"not null;index" json:"quiz_id"`
	ParticipantName  string    `gorm:"size:100;not null" json:"participant_name"`
	Score            int       `gorm:"not null;default:0" json:"score"`
	TimeTakenSeconds int       `gorm:"not null;default:0" json:"time_taken_seconds"`
	CompletedAt      time.Time `gorm:"not null" json:"completed_at"`
}

// TableName определяет имя таблицы для GORM
func (Session) TableName() string {
	return "sessions"
}
