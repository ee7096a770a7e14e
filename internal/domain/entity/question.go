package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// OptionCount — каждый вопрос имеет ровно 4 варианта ответа
const OptionCount = 4

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Translation содержит перевод вопроса на один язык
type Translation struct {
	Text    string      `json:"text"`
	Hint    string      `json:"hint,omitempty"`
	Options StringArray `json:"options"`
}

// TranslationMap - пользовательский тип для JSONB-карты переводов:
// код языка -> {text, hint, options}
type TranslationMap map[string]Translation

// Scan реализует интерфейс sql.Scanner для TranslationMap
func (m *TranslationMap) Scan(value interface{}) error {
	if value == nil {
		*m = TranslationMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*m = TranslationMap{}
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value реализует интерфейс driver.Valuer для TranslationMap
func (m TranslationMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// LanguageCodes возвращает коды языков, для которых есть переводы
func (m TranslationMap) LanguageCodes() []string {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	return codes
}

// Question представляет вопрос викторины
type Question struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	QuizID       uint           `gorm:"not null;index" json:"quiz_id"`
	Text         string         `gorm:"size:1000;not null" json:"text"`
	Hint         string         `gorm:"size:500" json:"hint,omitempty"`
	Options      StringArray    `gorm:"type:jsonb;not null" json:"options"`
	CorrectIndex int            `gorm:"not null" json:"-"` // Скрыто от клиента; отдается только в режиме review
	ImageURL     string         `gorm:"size:500" json:"image_url,omitempty"`
	Translations TranslationMap `gorm:"type:jsonb" json:"translations,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, является ли выбранный вариант правильным
func (q *Question) IsCorrect(selectedIndex int) bool {
	return selectedIndex == q.CorrectIndex
}

// IsValidCorrectIndex проверяет инвариант: correct_index указывает внутрь options
func (q *Question) IsValidCorrectIndex() bool {
	return q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options)
}

// Validate проверяет инварианты вопроса перед записью в базу
func (q *Question) Validate() error {
	if q.Text == "" {
		return errors.New("question text is required")
	}
	if len(q.Options) != OptionCount {
		return errors.New("question must have exactly 4 options")
	}
	if !q.IsValidCorrectIndex() {
		return errors.New("correct_index must point into options")
	}
	return nil
}
