package websocket

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время, которое разрешено писать сообщение клиенту.
	writeWait = 10 * time.Second

	// Время ожидания pong-ответа от клиента.
	pongWait = 30 * time.Second

	// Периодичность отправки ping-сообщений клиенту.
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего сообщения. Протокол односторонний,
	// поэтому лимит маленький: всё, что прислал клиент, игнорируется.
	maxMessageSize = 512

	// Размер буфера канала исходящих сообщений клиента
	defaultClientBufferSize = 16
)

// ClientConfig содержит настройки соединения клиента
type ClientConfig struct {
	BufferSize     int
	PingInterval   time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

// DefaultClientConfig возвращает конфигурацию клиента по умолчанию
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BufferSize:     defaultClientBufferSize,
		PingInterval:   pingPeriod,
		PongWait:       pongWait,
		WriteWait:      writeWait,
		MaxMessageSize: maxMessageSize,
	}
}

// Client является посредником между WebSocket соединением и хабом
type Client struct {
	// Уникальный ID соединения (для логов)
	ConnectionID string

	hub    *Hub
	conn   *websocket.Conn
	quizID uint

	// Буферизованный канал исходящих сообщений
	send chan []byte

	// Флаг закрытия канала send (защита от двойного close)
	sendClosed atomic.Bool

	config ClientConfig
}

// NewClient создает нового клиента для викторины quizID
func NewClient(hub *Hub, conn *websocket.Conn, quizID uint, config ClientConfig) *Client {
	if config.BufferSize <= 0 {
		config.BufferSize = defaultClientBufferSize
	}
	return &Client{
		ConnectionID: uuid.New().String(),
		hub:          hub,
		conn:         conn,
		quizID:       quizID,
		send:         make(chan []byte, config.BufferSize),
		config:       config,
	}
}

// QuizID возвращает ID викторины, за которой наблюдает клиент
func (c *Client) QuizID() uint {
	return c.quizID
}

// Start регистрирует клиента в хабе и запускает насосы чтения и записи
func (c *Client) Start() {
	c.hub.Register(c)
	go c.writePump()
	go c.readPump()
}

// trySend кладет сообщение в буфер клиента без блокировки.
// Возвращает false, если буфер переполнен или канал уже закрыт.
func (c *Client) trySend(message []byte) bool {
	if c.sendClosed.Load() {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// closeSend закрывает канал исходящих сообщений ровно один раз
func (c *Client) closeSend() {
	if c.sendClosed.CompareAndSwap(false, true) {
		close(c.send)
	}
}

// readPump читает из соединения до его закрытия.
// Входящие сообщения протоколом не предусмотрены и игнорируются;
// чтение нужно, чтобы заметить закрытие соединения и обработать pong.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("[Client %s] Ошибка чтения: %v", c.ConnectionID, err)
			}
			return
		}
	}
}

// writePump пишет сообщения из буфера в соединение и пингует клиента
func (c *Client) writePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if !ok {
				// Хаб закрыл канал
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
