package helper

import (
	"fmt"
	"strings"
	"time"
)

// Форматы временных меток, принимаемые от клиента.
// Наивные значения (без зоны) интерпретируются как UTC — то же правило, по
// которому метки хранятся и сравниваются при тайм-гейтинге. Нарушение этого
// соглашения сдвинуло бы начало и архивацию викторин.
var quizTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04", // HTML datetime-local
	"2006-01-02 15:04:05",
}

// ParseQuizTime разбирает временную метку запроса.
// RFC3339 со смещением приводится к UTC; наивные форматы читаются как UTC.
func ParseQuizTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range quizTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported timestamp format: %q", value)
}

// ParseOptionalQuizTime разбирает необязательную метку: пустая строка — nil
func ParseOptionalQuizTime(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseQuizTime(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
