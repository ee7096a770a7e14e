package dto

import (
	"time"

	"github.com/yourusername/quizlive-api/internal/domain/entity"
	"github.com/yourusername/quizlive-api/internal/domain/repository"
)

// QuizResponse представляет викторину в формате для ответа клиенту.
// Поле state — производное состояние на момент запроса (upcoming/live/archived),
// в базе оно не хранится.
type QuizResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	StartTime   time.Time          `json:"start_time"`
	EndTime     *time.Time         `json:"end_time,omitempty"`
	Theme       entity.Theme       `json:"theme"`
	IsVisible   bool               `json:"is_visible"`
	Languages   entity.StringArray `json:"languages"`
	ImageURL    string             `json:"image_url,omitempty"`
	State       string             `json:"state"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// CorrectIndex присутствует только в режиме review (архивная викторина).
type QuestionResponse struct {
	ID           uint                  `json:"id"`
	QuizID       uint                  `json:"quiz_id"`
	Text         string                `json:"text"`
	Hint         string                `json:"hint,omitempty"`
	Options      entity.StringArray    `json:"options"`
	ImageURL     string                `json:"image_url,omitempty"`
	Translations entity.TranslationMap `json:"translations,omitempty"`
	CorrectIndex *int                  `json:"correct_index,omitempty"`
}

// AdminQuestionResponse представляет вопрос в админской таблице.
// В отличие от публичного QuestionResponse, correct_index присутствует
// всегда: без него вопрос нельзя править.
type AdminQuestionResponse struct {
	ID           uint                  `json:"id"`
	QuizID       uint                  `json:"quiz_id"`
	QuizTitle    string                `json:"quiz_title"`
	Text         string                `json:"text"`
	Hint         string                `json:"hint,omitempty"`
	Options      entity.StringArray    `json:"options"`
	CorrectIndex int                   `json:"correct_index"`
	ImageURL     string                `json:"image_url,omitempty"`
	Translations entity.TranslationMap `json:"translations,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// LeaderboardEntry — строка лидерборда
type LeaderboardEntry struct {
	ParticipantName  string `json:"participant_name"`
	Score            int    `json:"score"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
}

// SessionResponse представляет сессию в админском просмотре
type SessionResponse struct {
	ID               uint      `json:"id"`
	QuizID           uint      `json:"quiz_id"`
	ParticipantName  string    `json:"participant_name"`
	Score            int       `json:"score"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	CompletedAt      time.Time `json:"completed_at"`
}

// NewQuizResponse создает DTO для викторины, вычисляя состояние на момент now
func NewQuizResponse(quiz *entity.Quiz, now time.Time) *QuizResponse {
	if quiz == nil {
		return nil
	}
	return &QuizResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		StartTime:   quiz.StartTime,
		EndTime:     quiz.EndTime,
		Theme:       quiz.Theme,
		IsVisible:   quiz.IsVisible,
		Languages:   quiz.Languages,
		ImageURL:    quiz.ImageURL,
		State:       quiz.Classify(now),
		CreatedAt:   quiz.CreatedAt,
		UpdatedAt:   quiz.UpdatedAt,
	}
}

// NewListQuizResponse создает DTO для списка викторин
func NewListQuizResponse(quizzes []entity.Quiz, now time.Time) []*QuizResponse {
	responses := make([]*QuizResponse, len(quizzes))
	for i := range quizzes {
		responses[i] = NewQuizResponse(&quizzes[i], now)
	}
	return responses
}

// NewQuestionResponse создает DTO для вопроса.
// includeAnswer=true только для архивной викторины (режим review).
func NewQuestionResponse(q *entity.Question, includeAnswer bool) QuestionResponse {
	resp := QuestionResponse{
		ID:           q.ID,
		QuizID:       q.QuizID,
		Text:         q.Text,
		Hint:         q.Hint,
		Options:      q.Options,
		ImageURL:     q.ImageURL,
		Translations: q.Translations,
	}
	if includeAnswer {
		idx := q.CorrectIndex
		resp.CorrectIndex = &idx
	}
	return resp
}

// NewQuestionListResponse создает DTO для списка вопросов
func NewQuestionListResponse(questions []entity.Question, includeAnswers bool) []QuestionResponse {
	responses := make([]QuestionResponse, len(questions))
	for i := range questions {
		responses[i] = NewQuestionResponse(&questions[i], includeAnswers)
	}
	return responses
}

// NewAdminQuestionListResponse создает DTO для админской таблицы вопросов
func NewAdminQuestionListResponse(rows []repository.QuestionWithQuizTitle) []AdminQuestionResponse {
	responses := make([]AdminQuestionResponse, len(rows))
	for i, row := range rows {
		responses[i] = AdminQuestionResponse{
			ID:           row.ID,
			QuizID:       row.QuizID,
			QuizTitle:    row.QuizTitle,
			Text:         row.Text,
			Hint:         row.Hint,
			Options:      row.Options,
			CorrectIndex: row.CorrectIndex,
			ImageURL:     row.ImageURL,
			Translations: row.Translations,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		}
	}
	return responses
}

// NewLeaderboardResponse создает DTO для лидерборда
func NewLeaderboardResponse(sessions []entity.Session) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, len(sessions))
	for i, s := range sessions {
		entries[i] = LeaderboardEntry{
			ParticipantName:  s.ParticipantName,
			Score:            s.Score,
			TimeTakenSeconds: s.TimeTakenSeconds,
		}
	}
	return entries
}

// NewSessionListResponse создает DTO для админского списка сессий
func NewSessionListResponse(sessions []entity.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = SessionResponse{
			ID:               s.ID,
			QuizID:           s.QuizID,
			ParticipantName:  s.ParticipantName,
			Score:            s.Score,
			TimeTakenSeconds: s.TimeTakenSeconds,
			CompletedAt:      s.CompletedAt,
		}
	}
	return responses
}
