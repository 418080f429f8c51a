package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/lenstube-reports/internal/goroutine"
)

// Hub управляет всеми WebSocket клиентами.
type Hub struct {
	mu        sync.RWMutex
	clients   map[uuid.UUID]map[*Client]struct{}
	broadcast chan message
	ctx       context.Context
}

type message struct {
	userID  uuid.UUID
	payload []byte
}

// NewHub создаёт новый хаб. Хаб живёт до отмены ctx.
func NewHub(ctx context.Context) *Hub {
	return &Hub{
		clients:   make(map[uuid.UUID]map[*Client]struct{}),
		broadcast: make(chan message, 32),
		ctx:       ctx,
	}
}

// Run доставляет сообщения, пока не отменён ctx.
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case msg := <-h.broadcast:
			h.send(msg.userID, msg.payload)
		}
	}
}

// Register добавляет клиента. После остановки хаба ничего не делает.
func (h *Hub) Register(client *Client) {
	if h.ctx.Err() != nil {
		return
	}
	h.addClient(client)
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.removeClient(client)
}

// BroadcastToUser отправляет событие всем подключениям пользователя.
func (h *Hub) BroadcastToUser(userID uuid.UUID, event string, data any) error {
	// Контракт сообщения: "type" - имя события, "data" - полезная нагрузка.
	raw, err := json.Marshal(map[string]any{
		"type": event,
		"data": data,
	})
	if err != nil {
		return fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}

	select {
	case h.broadcast <- message{userID: userID, payload: raw}:
		return nil
	case <-h.ctx.Done():
		return h.ctx.Err()
	}
}

// Connected сообщает, есть ли у пользователя активные подключения.
func (h *Hub) Connected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.clients, client.userID)
		}
	}
}

func (h *Hub) send(userID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// Медленный клиент: отключаем, не блокируя цикл хаба.
			goroutine.SafeGo(client.Close)
		}
	}
}
