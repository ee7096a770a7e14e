package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub ведет учет подключенных зрителей по викторинам и рассылает им
// количество участников при каждом изменении состава.
//
// Карта викторин защищена мьютексом: регистрация, рассылка и отмена
// регистрации выполняются атомарно друг относительно друга, поэтому два
// почти одновременных подключения всегда дают согласованный итоговый счет.
// Состояние живет только в памяти процесса — рестарт обнуляет счетчики.
type Hub struct {
	mu sync.RWMutex

	// Ключ: ID викторины, значение: множество активных клиентов.
	// Запись создается при первом подключении и удаляется вместе
	// с последним клиентом — пустые множества не хранятся.
	quizClients map[uint]map[*Client]struct{}
}

// NewHub создает новый presence-хаб
func NewHub() *Hub {
	return &Hub{
		quizClients: make(map[uint]map[*Client]struct{}),
	}
}

// Register добавляет клиента и рассылает обновленный счет всем зрителям
// его викторины, включая самого нового клиента.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.quizClients[client.quizID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.quizClients[client.quizID] = clients
	}
	clients[client] = struct{}{}

	log.Printf("[Hub] Клиент %s подключился к викторине #%d (зрителей: %d)", client.ConnectionID, client.quizID, len(clients))
	h.broadcastCountLocked(client.quizID)
}

// Unregister убирает клиента. Если в викторине остались зрители, им
// рассылается уменьшенный счет; отключившемуся уже ничего не шлется.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.quizClients[client.quizID]
	if !ok {
		return
	}
	if _, registered := clients[client]; !registered {
		return
	}

	delete(clients, client)
	client.closeSend()

	if len(clients) == 0 {
		delete(h.quizClients, client.quizID)
		log.Printf("[Hub] Клиент %s отключился, викторина #%d осталась без зрителей", client.ConnectionID, client.quizID)
		return
	}

	log.Printf("[Hub] Клиент %s отключился от викторины #%d (зрителей: %d)", client.ConnectionID, client.quizID, len(clients))
	h.broadcastCountLocked(client.quizID)
}

// Count возвращает текущее число зрителей викторины
func (h *Hub) Count(quizID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.quizClients[quizID])
}

// TotalConnections возвращает общее число подключений по всем викторинам
func (h *Hub) TotalConnections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.quizClients {
		total += len(clients)
	}
	return total
}

// Shutdown закрывает все активные подключения
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for quizID, clients := range h.quizClients {
		for client := range clients {
			client.closeSend()
		}
		delete(h.quizClients, quizID)
	}
	log.Println("[Hub] Все presence-подключения закрыты")
}

// broadcastCountLocked рассылает счет всем зрителям викторины.
// Вызывается строго под h.mu. Медленный клиент с переполненным буфером
// отбрасывается, чтобы не блокировать рассылку остальным. Каждое
// отбрасывание меняет счет, поэтому рассылка повторяется с новым
// значением, пока все оставшиеся не получат актуальное.
func (h *Hub) broadcastCountLocked(quizID uint) {
	for {
		clients := h.quizClients[quizID]
		if len(clients) == 0 {
			delete(h.quizClients, quizID)
			return
		}

		message, err := json.Marshal(CountMessage{Type: MessageTypeCount, Count: len(clients)})
		if err != nil {
			log.Printf("[Hub] Ошибка сериализации счетчика для викторины #%d: %v", quizID, err)
			return
		}

		dropped := false
		for client := range clients {
			if !client.trySend(message) {
				log.Printf("[Hub] Буфер клиента %s переполнен, отключаем", client.ConnectionID)
				delete(clients, client)
				client.closeSend()
				dropped = true
			}
		}

		if !dropped {
			return
		}
	}
}
