package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/polytex-chat/internal/handlers/dto"
	"github.com/thereayou/polytex-chat/internal/middleware"
)

// GetRoomMessages отдаёт историю сообщений комнаты.
// Доступна только активным участникам.
func (h *RoomHandler) GetRoomMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	roomName := c.Param("name")

	room, err := h.db.GetRoomByName(roomName)
	if err != nil {
		writeDBError(c, err, "failed to get messages")
		return
	}

	active, err := h.db.IsActiveMember(userID, room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}
	if !active {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not an active member of this room"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 200 {
		limit = 50
	}

	var beforeID *uuid.UUID
	if before := c.Query("before"); before != "" {
		id, err := uuid.Parse(before)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid before id"})
			return
		}
		beforeID = &id
	}

	messages, err := h.db.GetRoomMessages(room.ID.String(), limit, beforeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	response := make([]dto.MessageResponse, len(messages))
	for i, m := range messages {
		response[i] = dto.MessageResponse{
			ID:        m.ID,
			RoomID:    m.RoomID,
			UserID:    m.UserID,
			Content:   m.Content,
			Type:      m.Type,
			CreatedAt: m.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": response})
}
