package websocket

// Единственный тип сообщения presence-канала: текущее число зрителей викторины.
// Клиент серверу ничего не присылает — канал односторонний.
const MessageTypeCount = "count"

// CountMessage — сообщение с текущим числом подключенных зрителей
type CountMessage struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}
