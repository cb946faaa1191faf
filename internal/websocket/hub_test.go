package websocket

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Send:   make(chan []byte, 16),
		Rooms:  make(map[uuid.UUID]bool),
		Hub:    hub,
	}
}

func drain(c *Client) [][]byte {
	msgs := make([][]byte, 0)
	for {
		select {
		case m := <-c.Send:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

func TestHubRoomBroadcast(t *testing.T) {
	h := NewHub()
	roomID := uuid.New()

	a := newTestClient(h)
	b := newTestClient(h)
	h.registerClient(a)
	h.registerClient(b)

	h.JoinRoom(a, roomID)
	h.JoinRoom(b, roomID)
	drain(a)
	drain(b)

	h.SendToRoom(roomID, []byte(`{"type":"message"}`))

	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(b), 1)
	assert.True(t, a.IsInRoom(roomID))

	users := h.GetRoomUsers(roomID)
	assert.ElementsMatch(t, []uuid.UUID{a.UserID, b.UserID}, users)
}

func TestHubLeaveRoom(t *testing.T) {
	h := NewHub()
	roomID := uuid.New()

	a := newTestClient(h)
	b := newTestClient(h)
	h.registerClient(a)
	h.registerClient(b)
	h.JoinRoom(a, roomID)
	h.JoinRoom(b, roomID)
	drain(a)
	drain(b)

	h.LeaveRoom(a, roomID)

	assert.False(t, a.IsInRoom(roomID))
	h.SendToRoom(roomID, []byte(`x`))
	assert.Len(t, drain(a), 0)

	// Оставшийся получает уведомление об уходе и само сообщение
	msgs := drain(b)
	require.Len(t, msgs, 2)

	var leave Message
	require.NoError(t, json.Unmarshal(msgs[0], &leave))
	assert.Equal(t, TypeRoomLeave, leave.Type)
	assert.Equal(t, a.UserID, leave.UserID)
}

func TestHubEvictRoom(t *testing.T) {
	h := NewHub()
	roomID := uuid.New()

	a := newTestClient(h)
	h.registerClient(a)
	h.JoinRoom(a, roomID)
	drain(a)

	h.EvictRoom(roomID)

	assert.False(t, a.IsInRoom(roomID))
	assert.Empty(t, h.GetRoomUsers(roomID))

	msgs := drain(a)
	require.Len(t, msgs, 1)

	var deleted Message
	require.NoError(t, json.Unmarshal(msgs[0], &deleted))
	assert.Equal(t, TypeRoomDeleted, deleted.Type)
	require.NotNil(t, deleted.RoomID)
	assert.Equal(t, roomID, *deleted.RoomID)
}
