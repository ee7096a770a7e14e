package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizlive-api/internal/domain/entity"
	"github.com/yourusername/quizlive-api/internal/handler/dto"
	"github.com/yourusername/quizlive-api/internal/handler/helper"
	apperrors "github.com/yourusername/quizlive-api/internal/pkg/errors"
	"github.com/yourusername/quizlive-api/internal/service"
)

// AdminHandler обрабатывает админские запросы (создание и правка викторин,
// вопросов, удаление сессий). Все маршруты защищены общим админ-секретом.
type AdminHandler struct {
	quizService   *service.QuizService
	resultService *service.ResultService
}

// NewAdminHandler создает новый админский обработчик
func NewAdminHandler(quizService *service.QuizService, resultService *service.ResultService) *AdminHandler {
	return &AdminHandler{
		quizService:   quizService,
		resultService: resultService,
	}
}

// Login подтверждает валидность админ-секрета.
// Сама проверка выполнена middleware; сюда запрос доходит уже авторизованным.
func (h *AdminHandler) Login(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// QuizPayload представляет тело запроса создания/полной замены викторины.
// Временные метки приходят строками и разбираются по UTC-соглашению.
type QuizPayload struct {
	Title       string       `json:"title" binding:"required,min=1,max=200"`
	Description string       `json:"description" binding:"omitempty,max=1000"`
	StartTime   string       `json:"start_time" binding:"required"`
	EndTime     string       `json:"end_time"` // Пустая строка = викторина никогда не архивируется
	Theme       entity.Theme `json:"theme"`
	IsVisible   *bool        `json:"is_visible"` // nil = true
	Languages   []string     `json:"languages"`
	ImageURL    string       `json:"image_url"`
}

// toEntity превращает payload в сущность викторины
func (p *QuizPayload) toEntity() (*entity.Quiz, error) {
	startTime, err := helper.ParseQuizTime(p.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := helper.ParseOptionalQuizTime(p.EndTime)
	if err != nil {
		return nil, err
	}

	isVisible := true
	if p.IsVisible != nil {
		isVisible = *p.IsVisible
	}

	return &entity.Quiz{
		Title:       p.Title,
		Description: p.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		Theme:       p.Theme,
		IsVisible:   isVisible,
		Languages:   entity.StringArray(p.Languages),
		ImageURL:    p.ImageURL,
	}, nil
}

// CreateQuiz создает новую викторину
func (h *AdminHandler) CreateQuiz(c *gin.Context) {
	var req QuizPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := req.toEntity()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.quizService.CreateQuiz(quiz); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz, time.Now().UTC()))
}

// UpdateQuiz полностью заменяет все поля викторины
func (h *AdminHandler) UpdateQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	var req QuizPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := req.toEntity()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quiz.ID = quizID

	if err := h.quizService.UpdateQuiz(quiz); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteQuiz удаляет викторину вместе с вопросами и сессиями
func (h *AdminHandler) DeleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearQuiz удаляет вопросы и сессии викторины, сохраняя саму викторину
func (h *AdminHandler) ClearQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	if err := h.quizService.ClearQuiz(quizID); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// QuestionPayload представляет тело запроса создания/правки вопроса
type QuestionPayload struct {
	QuizID       uint                  `json:"quiz_id"`
	Text         string                `json:"text" binding:"required,min=1,max=1000"`
	Hint         string                `json:"hint" binding:"omitempty,max=500"`
	Options      []string              `json:"options" binding:"required,len=4"`
	CorrectIndex *int                  `json:"correct_index" binding:"required"`
	ImageURL     string                `json:"image_url"`
	Translations entity.TranslationMap `json:"translations"`
}

// toEntity превращает payload в сущность вопроса
func (p *QuestionPayload) toEntity() *entity.Question {
	correctIndex := -1
	if p.CorrectIndex != nil {
		correctIndex = *p.CorrectIndex
	}
	return &entity.Question{
		QuizID:       p.QuizID,
		Text:         p.Text,
		Hint:         p.Hint,
		Options:      entity.StringArray(p.Options),
		CorrectIndex: correctIndex,
		ImageURL:     p.ImageURL,
		Translations: p.Translations,
	}
}

// CreateQuestion добавляет один вопрос; языки переводов попадают в викторину
func (h *AdminHandler) CreateQuestion(c *gin.Context) {
	var req QuestionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.QuizID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quiz_id is required"})
		return
	}

	question := req.toEntity()
	if err := h.quizService.AddQuestion(question); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": question.ID})
}

// BulkImportRequest представляет bulk-импорт вопросов для одной викторины
type BulkImportRequest struct {
	QuizID    uint              `json:"quiz_id" binding:"required"`
	Questions []QuestionPayload `json:"questions" binding:"required,min=1,dive"`
}

// BulkImportQuestions добавляет вопросы пачкой, все-или-ничего
func (h *AdminHandler) BulkImportQuestions(c *gin.Context) {
	var req BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	questions := make([]entity.Question, len(req.Questions))
	for i := range req.Questions {
		questions[i] = *req.Questions[i].toEntity()
	}

	if err := h.quizService.AddQuestionsBatch(req.QuizID, questions); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "imported": len(questions)})
}

// UpdateQuestion обновляет вопрос
func (h *AdminHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint) // Получаем из контекста

	var req QuestionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question := req.toEntity()
	question.ID = questionID

	if err := h.quizService.UpdateQuestion(question); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListQuestions возвращает все вопросы с названиями викторин (админская таблица)
func (h *AdminHandler) ListQuestions(c *gin.Context) {
	questions, err := h.quizService.ListAllQuestions()
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminQuestionListResponse(questions))
}

// ListQuizSessions возвращает все сессии викторины
func (h *AdminHandler) ListQuizSessions(c *gin.Context) {
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	sessions, err := h.resultService.GetQuizSessions(quizID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionListResponse(sessions))
}

// DeleteSession удаляет сессию (убирает строку из лидерборда)
func (h *AdminHandler) DeleteSession(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uint) // Получаем из контекста

	if err := h.resultService.DeleteSession(sessionID); err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleAdminError обрабатывает ошибки сервисов и отправляет соответствующий HTTP ответ
func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		log.Printf("ERROR: Internal server error in AdminHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
