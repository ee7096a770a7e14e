package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Константы производных состояний викторины.
// Состояние не хранится в БД — оно всегда вычисляется из start_time/end_time
// на момент запроса через Classify.
const (
	QuizStateUpcoming = "upcoming"
	QuizStateLive     = "live"
	QuizStateArchived = "archived"
)

// DefaultLanguage — язык по умолчанию, всегда присутствует в Languages.
const DefaultLanguage = "en"

// Theme — пользовательский тип для работы с JSONB-оформлением викторины
type Theme struct {
	PrimaryColor       string `json:"primary_color,omitempty"`
	BackgroundColor    string `json:"background_color,omitempty"`
	BackgroundImageURL string `json:"background_image_url,omitempty"`
}

// Scan реализует интерфейс sql.Scanner для Theme
func (t *Theme) Scan(value interface{}) error {
	if value == nil {
		*t = Theme{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*t = Theme{}
		return nil
	}

	return json.Unmarshal(bytes, t)
}

// Value реализует интерфейс driver.Valuer для Theme
func (t Theme) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Quiz представляет викторину с временным окном проведения
type Quiz struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"size:200;not null" json:"title"`
	Description string      `gorm:"size:1000;not null;default:''" json:"description"`
	StartTime   time.Time   `gorm:"not null;index" json:"start_time"`
	EndTime     *time.Time  `json:"end_time,omitempty"` // nil = викторина никогда не архивируется
	Theme       Theme       `gorm:"type:jsonb" json:"theme"`
	IsVisible   bool        `gorm:"not null;default:true;index" json:"is_visible"`
	Languages   StringArray `gorm:"type:jsonb;not null" json:"languages"`
	ImageURL    string      `gorm:"size:500" json:"image_url,omitempty"`
	Questions   []Question  `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// Classify вычисляет временное состояние викторины на момент now.
// Все потребители (листинг, join, запрос вопросов) обязаны использовать
// именно эту функцию, чтобы правила гейтинга были согласованы.
func (q *Quiz) Classify(now time.Time) string {
	if now.Before(q.StartTime) {
		return QuizStateUpcoming
	}
	if q.EndTime != nil && now.After(*q.EndTime) {
		return QuizStateArchived
	}
	return QuizStateLive
}

// IsUpcoming проверяет, что викторина еще не началась
func (q *Quiz) IsUpcoming(now time.Time) bool {
	return q.Classify(now) == QuizStateUpcoming
}

// IsLive проверяет, что викторина идет прямо сейчас
func (q *Quiz) IsLive(now time.Time) bool {
	return q.Classify(now) == QuizStateLive
}

// IsArchived проверяет, что викторина завершена (end_time в прошлом).
// Викторина без end_time не архивируется никогда.
func (q *Quiz) IsArchived(now time.Time) bool {
	return q.Classify(now) == QuizStateArchived
}

// MergeLanguages объединяет языки викторины с переданными кодами без дубликатов.
// Язык по умолчанию добавляется всегда. Возвращает true, если набор изменился.
func (q *Quiz) MergeLanguages(codes []string) bool {
	existing := make(map[string]bool, len(q.Languages)+1)
	for _, l := range q.Languages {
		existing[l] = true
	}

	changed := false
	if !existing[DefaultLanguage] {
		q.Languages = append(q.Languages, DefaultLanguage)
		existing[DefaultLanguage] = true
		changed = true
	}
	for _, code := range codes {
		if code == "" || existing[code] {
			continue
		}
		q.Languages = append(q.Languages, code)
		existing[code] = true
		changed = true
	}
	return changed
}
