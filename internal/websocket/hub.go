package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MessageType определяет типы сообщений
type MessageType string

const (
	TypeMessage     MessageType = "message"
	TypeRoomJoin    MessageType = "room_join"
	TypeRoomLeave   MessageType = "room_leave"
	TypeRoomDeleted MessageType = "room_deleted"
)

type Message struct {
	Type      MessageType     `json:"type"`
	RoomID    *uuid.UUID      `json:"room_id,omitempty"`
	UserID    uuid.UUID       `json:"user_id"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub раздаёт сообщения по комнатам. Кто в какой комнате слушает,
// решает слой членства: клиент подписывается только после проверки
// активного участия.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Подписчики по комнатам
	rooms map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// Stop останавливает hub и закрывает все соединения
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		client.Conn.Close()
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}

	for roomID := range client.Rooms {
		h.removeFromRoomUnsafe(client, roomID)
	}

	delete(h.clients, client.ID)
	close(client.Send)

	log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
}

// JoinRoom подписывает клиента на комнату и уведомляет остальных
func (h *Hub) JoinRoom(client *Client, roomID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[uuid.UUID]*Client)
	}

	h.rooms[roomID][client.ID] = client
	client.mu.Lock()
	client.Rooms[roomID] = true
	client.mu.Unlock()

	joinMsg := Message{
		Type:      TypeRoomJoin,
		RoomID:    &roomID,
		UserID:    client.UserID,
		Timestamp: time.Now(),
	}
	if data, err := json.Marshal(joinMsg); err == nil {
		h.sendToRoomUnsafe(roomID, data, client.ID)
	}
}

// LeaveRoom отписывает клиента от комнаты
func (h *Hub) LeaveRoom(client *Client, roomID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomUnsafe(client, roomID)
}

func (h *Hub) removeFromRoomUnsafe(client *Client, roomID uuid.UUID) {
	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	if _, ok := room[client.ID]; !ok {
		return
	}

	delete(room, client.ID)
	client.mu.Lock()
	delete(client.Rooms, roomID)
	client.mu.Unlock()

	if len(room) == 0 {
		delete(h.rooms, roomID)
		return
	}

	leaveMsg := Message{
		Type:      TypeRoomLeave,
		RoomID:    &roomID,
		UserID:    client.UserID,
		Timestamp: time.Now(),
	}
	if data, err := json.Marshal(leaveMsg); err == nil {
		h.sendToRoomUnsafe(roomID, data, client.ID)
	}
}

// SendToRoom отправляет сообщение всем подписчикам комнаты
func (h *Hub) SendToRoom(roomID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.sendToRoomUnsafe(roomID, message, uuid.Nil)
}

// EvictRoom выгоняет всех из комнаты, вызывается при её удалении
func (h *Hub) EvictRoom(roomID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		return
	}

	deletedMsg := Message{
		Type:      TypeRoomDeleted,
		RoomID:    &roomID,
		Timestamp: time.Now(),
	}
	data, _ := json.Marshal(deletedMsg)

	for _, client := range room {
		if data != nil {
			select {
			case client.Send <- data:
			default:
			}
		}
		client.mu.Lock()
		delete(client.Rooms, roomID)
		client.mu.Unlock()
	}

	delete(h.rooms, roomID)
}

// GetRoomUsers возвращает id пользователей, подключённых к комнате
func (h *Hub) GetRoomUsers(roomID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[uuid.UUID]bool)
	users := make([]uuid.UUID, 0)
	if room, ok := h.rooms[roomID]; ok {
		for _, c := range room {
			if !seen[c.UserID] {
				seen[c.UserID] = true
				users = append(users, c.UserID)
			}
		}
	}
	return users
}

func (h *Hub) sendToRoomUnsafe(roomID uuid.UUID, message []byte, excludeID uuid.UUID) {
	if room, ok := h.rooms[roomID]; ok {
		for _, client := range room {
			if client.ID == excludeID {
				continue
			}
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s send channel full", client.ID)
			}
		}
	}
}
