package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/yourusername/quizlive-api/internal/websocket"
)

// WSHandler обрабатывает presence-соединения зрителей викторин
type WSHandler struct {
	hub          *websocket.Hub
	clientConfig websocket.ClientConfig
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(hub *websocket.Hub, clientConfig websocket.ClientConfig) *WSHandler {
	return &WSHandler{
		hub:          hub,
		clientConfig: clientConfig,
	}
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Канал только отдает счетчики зрителей, секретов в нем нет
		return true
	},
}

// HandleConnection обрабатывает входящее presence-соединение.
// ID викторины передается параметром ?quizId=N; без валидного ID
// соединение закрывается сразу и без единого сообщения.
func (h *WSHandler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WSHandler] Ошибка апгрейда соединения: %v", err)
		return
	}

	quizID, err := strconv.ParseUint(c.Query("quizId"), 10, 32)
	if err != nil || quizID == 0 {
		conn.Close()
		return
	}

	client := websocket.NewClient(h.hub, conn, uint(quizID), h.clientConfig)
	client.Start()
}
