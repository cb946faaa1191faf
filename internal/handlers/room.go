package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/polytex-chat/internal/database"
	"github.com/thereayou/polytex-chat/internal/handlers/dto"
	"github.com/thereayou/polytex-chat/internal/middleware"
	"github.com/thereayou/polytex-chat/internal/models"
	"github.com/thereayou/polytex-chat/internal/websocket"
)

type RoomHandler struct {
	db  *database.Database
	hub *websocket.Hub
}

func NewRoomHandler(db *database.Database, hub *websocket.Hub) *RoomHandler {
	return &RoomHandler{db: db, hub: hub}
}

// pageParams достаёт page и limit из query, по умолчанию 1 и 10
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	return page, limit
}

func writeDBError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, database.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// CreateRoom создает новую комнату; создатель сразу становится участником
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.RoomCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room := &models.Room{
		Name:      req.RoomName,
		IsActive:  true,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	}

	if err := h.db.CreateRoom(room); err != nil {
		writeDBError(c, err, "failed to create room")
		return
	}

	user, err := h.db.GetUser(userID.String())
	if err == nil {
		h.db.AddUserToRoom(user.Username, room.Name)
	}

	c.JSON(http.StatusCreated, gin.H{
		"room_id":   room.ID,
		"room_name": room.Name,
		"is_active": room.IsActive,
	})
}

// DeleteRoom удаляет комнату со всеми связями и сообщениями
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	roomName := c.Param("name")

	room, err := h.db.GetRoomByName(roomName)
	if err != nil {
		writeDBError(c, err, "failed to delete room")
		return
	}

	if err := h.db.DeleteRoom(roomName); err != nil {
		writeDBError(c, err, "failed to delete room")
		return
	}

	// Подключённых к комнате отключаем от её рассылки
	h.hub.EvictRoom(room.ID)

	c.JSON(http.StatusOK, gin.H{"message": "room deleted"})
}

// SetRoomActivity переключает активность самой комнаты
func (h *RoomHandler) SetRoomActivity(c *gin.Context) {
	roomName := c.Param("name")

	var req dto.RoomActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.db.SetRoomActivity(roomName, *req.IsActive)
	if err != nil {
		writeDBError(c, err, "failed to update room")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id":   room.ID,
		"room_name": room.Name,
		"is_active": room.IsActive,
	})
}

// JoinRoom добавляет текущего пользователя в комнату.
// Повторное вступление не ошибка: joined=false в ответе.
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	roomName := c.Param("name")

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		writeDBError(c, err, "failed to join room")
		return
	}

	joined, err := h.db.AddUserToRoom(user.Username, roomName)
	if err != nil {
		writeDBError(c, err, "failed to join room")
		return
	}

	c.JSON(http.StatusOK, gin.H{"joined": joined})
}

// SetMembershipActivity переключает участие текущего пользователя в комнате
func (h *RoomHandler) SetMembershipActivity(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	roomName := c.Param("name")

	var req dto.RoomActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		writeDBError(c, err, "failed to update membership")
		return
	}

	if err := h.db.SetUserRoomActivity(user.Username, roomName, *req.IsActive); err != nil {
		writeDBError(c, err, "failed to update membership")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "membership updated"})
}

// AlterFavorite ставит или снимает отметку избранного у комнаты
func (h *RoomHandler) AlterFavorite(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.db.AlterFavorite(userID, req.RoomName, req.IsChosen); err != nil {
		writeDBError(c, err, "failed to alter favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "favorite updated"})
}

// GetRooms возвращает страницу комнат; недоступный список отдаём пустым
func (h *RoomHandler) GetRooms(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	page, limit := pageParams(c)

	var rooms []dto.RoomInfo
	if name := c.Query("name"); name != "" {
		rooms = h.db.FilterRooms(userID, name, page, limit)
	} else {
		rooms = h.db.GetRooms(userID, page, limit)
	}
	if rooms == nil {
		rooms = []dto.RoomInfo{}
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GetFavorites возвращает страницу избранных комнат пользователя
func (h *RoomHandler) GetFavorites(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)
	page, limit := pageParams(c)

	var rooms []dto.RoomFavoriteInfo
	if name := c.Query("name"); name != "" {
		rooms = h.db.GetUserFavoriteLikeRoomName(name, userID, page, limit)
	} else {
		rooms = h.db.GetUserFavorite(userID, page, limit)
	}
	if rooms == nil {
		rooms = []dto.RoomFavoriteInfo{}
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}
