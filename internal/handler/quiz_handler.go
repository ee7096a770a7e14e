package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizlive-api/internal/handler/dto"
	"github.com/yourusername/quizlive-api/internal/middleware"
	apperrors "github.com/yourusername/quizlive-api/internal/pkg/errors"
	"github.com/yourusername/quizlive-api/internal/service"
)

// QuizHandler обрабатывает публичные запросы участников
type QuizHandler struct {
	quizService   *service.QuizService
	resultService *service.ResultService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(quizService *service.QuizService, resultService *service.ResultService) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		resultService: resultService,
	}
}

// ListQuizzes возвращает список викторин.
// Скрытые викторины видны только с верным админ-секретом в заголовке.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	isAdmin := c.GetBool(middleware.ContextIsAdmin)

	quizzes, err := h.quizService.ListQuizzes(isAdmin)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuizResponse(quizzes, time.Now().UTC()))
}

// GetQuiz возвращает одну викторину; скрытая без прав администратора — 403
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста
	isAdmin := c.GetBool(middleware.ContextIsAdmin)

	quiz, err := h.quizService.GetQuizByID(quizID, isAdmin)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, time.Now().UTC()))
}

// JoinRequest представляет запрос на присоединение к викторине
type JoinRequest struct {
	QuizID          uint   `json:"quiz_id" binding:"required"`
	ParticipantName string `json:"participant_name" binding:"required,min=1,max=100"`
}

// Join проверяет доступность викторины для участия.
// До start_time возвращает 403 с понятной причиной — клиент может повторить позже.
func (h *QuizHandler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quizService.JoinQuiz(req.QuizID, time.Now().UTC()); err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Joined"})
}

// GetQuizQuestions возвращает вопросы викторины.
// Тайм-гейтинг как у Join; correct_index присутствует только для архивной викторины.
func (h *QuizHandler) GetQuizQuestions(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	questions, includeAnswers, err := h.quizService.GetQuizQuestions(quizID, time.Now().UTC())
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionListResponse(questions, includeAnswers))
}

// SubmitRequest представляет сабмит ответов участника.
// answers — разреженная карта question_id -> выбранный индекс;
// вопросы без ответа просто отсутствуют.
type SubmitRequest struct {
	QuizID           uint         `json:"quiz_id" binding:"required"`
	ParticipantName  string       `json:"participant_name" binding:"required,min=1,max=100"`
	Answers          map[uint]int `json:"answers"`
	TimeTakenSeconds int          `json:"time_taken_seconds" binding:"min=0"`
}

// Submit считает очки и сохраняет сессию участника
func (h *QuizHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.resultService.Submit(req.QuizID, req.ParticipantName, req.Answers, req.TimeTakenSeconds, time.Now().UTC())
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "score": result.Score, "total": result.Total})
}

// GetLeaderboard возвращает топ-10 сессий викторины
func (h *QuizHandler) GetLeaderboard(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	sessions, err := h.resultService.GetLeaderboard(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewLeaderboardResponse(sessions))
}

// handleQuizError обрабатывает ошибки сервисов и отправляет соответствующий HTTP ответ
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
	case errors.Is(err, apperrors.ErrNotStarted):
		c.JSON(http.StatusForbidden, gin.H{"error": "Quiz has not started yet"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
