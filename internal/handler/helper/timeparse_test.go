package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuizTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "RFC3339 UTC",
			input:    "2025-06-15T18:00:00Z",
			expected: time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
		},
		{
			name:     "RFC3339 со смещением приводится к UTC",
			input:    "2025-06-15T21:00:00+03:00",
			expected: time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
		},
		{
			name:     "Наивная метка с секундами читается как UTC",
			input:    "2025-06-15T18:00:00",
			expected: time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
		},
		{
			name:     "datetime-local без секунд",
			input:    "2025-06-15T18:00",
			expected: time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
		},
		{
			name:     "Пробел вместо T",
			input:    "2025-06-15 18:00:00",
			expected: time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
		},
		{
			name:     "Пробелы по краям обрезаются",
			input:    "  2025-06-15T18:00:00Z  ",
			expected: time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuizTime(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.expected), "got %v, want %v", got, tt.expected)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseQuizTime_Errors(t *testing.T) {
	for _, input := range []string{"", "   ", "не дата", "15.06.2025", "2025-13-45T99:99"} {
		t.Run("input="+input, func(t *testing.T) {
			_, err := ParseQuizTime(input)
			assert.Error(t, err)
		})
	}
}

func TestParseOptionalQuizTime(t *testing.T) {
	t.Run("Пустая строка дает nil без ошибки", func(t *testing.T) {
		got, err := ParseOptionalQuizTime("")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Непустая строка разбирается", func(t *testing.T) {
		got, err := ParseOptionalQuizTime("2025-06-15T18:00:00Z")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC), got.UTC())
	})

	t.Run("Мусор дает ошибку", func(t *testing.T) {
		_, err := ParseOptionalQuizTime("garbage")
		assert.Error(t, err)
	})
}
