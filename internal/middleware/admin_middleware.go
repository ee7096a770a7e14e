package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminPasswordHeader — заголовок, в котором клиент передает общий админ-секрет
const AdminPasswordHeader = "X-Admin-Password"

// ContextIsAdmin — ключ контекста Gin с флагом "вызов от администратора"
const ContextIsAdmin = "is_admin"

// AdminMiddleware проверяет общий админ-секрет.
// Никакой другой аутентификации в системе нет: один секрет на процесс,
// сравнение в постоянном времени.
type AdminMiddleware struct {
	password string
}

// NewAdminMiddleware создает новый middleware с заданным секретом
func NewAdminMiddleware(password string) *AdminMiddleware {
	return &AdminMiddleware{password: password}
}

// matches сравнивает переданный секрет с настроенным
func (m *AdminMiddleware) matches(candidate string) bool {
	if m.password == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(m.password)) == 1
}

// RequireAdmin пропускает только запросы с верным админ-секретом
func (m *AdminMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.matches(c.GetHeader(AdminPasswordHeader)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Set(ContextIsAdmin, true)
		c.Next()
	}
}

// DetectAdmin устанавливает флаг is_admin в контексте, не блокируя запрос.
// Публичные маршруты используют флаг для фильтрации скрытых викторин.
func (m *AdminMiddleware) DetectAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIsAdmin, m.matches(c.GetHeader(AdminPasswordHeader)))
		c.Next()
	}
}
