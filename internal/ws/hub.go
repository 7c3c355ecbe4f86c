package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Message - событие матча, уходящее зрителям
type Message struct {
	Type    string                 `json:"type"`
	MatchID string                 `json:"match_id,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Hub раздает события матчей подписанным зрителям. Зрители только
// читают - никакого влияния на ход матча у них нет.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
	}
}

// Subscribe подписывает клиента на события матча
func (h *Hub) Subscribe(matchID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[matchID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[matchID] = room
	}
	room[c] = true
	log.Printf("Hub.Subscribe: зритель подключен к матчу=%s (всего=%d)", matchID, len(room))
}

// Unsubscribe отписывает клиента; пустая комната удаляется
func (h *Hub) Unsubscribe(matchID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[matchID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, matchID)
	}
	log.Printf("Hub.Unsubscribe: зритель отключен от матча=%s", matchID)
}

// Broadcast отправляет событие всем зрителям матча
func (h *Hub) Broadcast(matchID, event string, payload map[string]interface{}) {
	data, err := json.Marshal(Message{Type: event, MatchID: matchID, Payload: payload})
	if err != nil {
		log.Printf("Hub.Broadcast: ошибка сериализации: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[matchID]))
	for c := range h.rooms[matchID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.Send <- data:
		case <-time.After(2 * time.Second):
			log.Printf("Hub.Broadcast: таймаут отправки зрителю матча=%s тип=%s", matchID, event)
		}
	}
}

// SpectatorCount возвращает число зрителей матча
func (h *Hub) SpectatorCount(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[matchID])
}
