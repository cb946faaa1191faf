package handlers

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/thereayou/polytex-chat/internal/database"
	"github.com/thereayou/polytex-chat/internal/handlers/dto"
	"github.com/thereayou/polytex-chat/internal/models"
	ws "github.com/thereayou/polytex-chat/internal/websocket"
)

// MessageHandler обрабатывает входящие WebSocket сообщения.
// Подписка на комнату разрешается только при активном участии,
// сам hub про членство ничего не знает.
type MessageHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewMessageHandler(db *database.Database, hub *ws.Hub) *MessageHandler {
	return &MessageHandler{db: db, hub: hub}
}

func (mh *MessageHandler) HandleMessage(client *ws.Client, msg *ws.Message) error {
	switch msg.Type {
	case ws.TypeRoomJoin:
		return mh.handleRoomJoin(client, msg)

	case ws.TypeRoomLeave:
		if msg.RoomID != nil {
			mh.hub.LeaveRoom(client, *msg.RoomID)
		}
		return nil

	case ws.TypeMessage:
		return mh.handleChatMessage(client, msg)

	default:
		return ws.ErrInvalidMessage
	}
}

func (mh *MessageHandler) handleRoomJoin(client *ws.Client, msg *ws.Message) error {
	if msg.RoomID == nil {
		return ws.ErrInvalidMessage
	}

	active, err := mh.db.IsActiveMember(client.UserID, *msg.RoomID)
	if err != nil {
		return err
	}
	if !active {
		return ws.ErrUserNotInRoom
	}

	mh.hub.JoinRoom(client, *msg.RoomID)
	return nil
}

func (mh *MessageHandler) handleChatMessage(client *ws.Client, msg *ws.Message) error {
	if msg.RoomID == nil {
		return ws.ErrInvalidMessage
	}
	if !client.IsInRoom(*msg.RoomID) {
		return ws.ErrUserNotInRoom
	}

	var payload dto.MessagePayload
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return ws.ErrInvalidMessage
	}
	if strings.TrimSpace(payload.Content) == "" {
		return ws.ErrInvalidMessage
	}

	msgType := payload.Type
	if msgType == "" {
		msgType = "text"
	}

	message := &models.Message{
		RoomID:    *msg.RoomID,
		UserID:    client.UserID,
		Content:   payload.Content,
		Type:      msgType,
		CreatedAt: time.Now(),
	}
	if err := mh.db.SaveMessage(message); err != nil {
		return err
	}

	response := dto.MessageResponse{
		ID:        message.ID,
		RoomID:    message.RoomID,
		UserID:    message.UserID,
		Content:   message.Content,
		Type:      message.Type,
		CreatedAt: message.CreatedAt,
	}

	data, err := json.Marshal(response)
	if err != nil {
		return err
	}

	out := ws.Message{
		Type:      ws.TypeMessage,
		RoomID:    msg.RoomID,
		UserID:    client.UserID,
		Data:      data,
		Timestamp: time.Now(),
	}
	outData, err := json.Marshal(out)
	if err != nil {
		return err
	}

	mh.hub.SendToRoom(*msg.RoomID, outData)
	return nil
}
