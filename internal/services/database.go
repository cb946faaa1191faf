package services

import (
	"github.com/google/uuid"
	"github.com/thereayou/polytex-chat/internal/handlers/dto"
	"github.com/thereayou/polytex-chat/internal/models"
)

type DatabaseService interface {
	Connect() error

	SaveUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	UpdateUser(user *models.User) error

	CreateRoom(room *models.Room) error
	DeleteRoom(name string) error
	SetRoomActivity(name string, active bool) (*models.Room, error)

	AddUserToRoom(username, roomName string) (bool, error)
	SetUserRoomActivity(username, roomName string, active bool) error
	AlterFavorite(userID uuid.UUID, roomName string, isChosen bool) error

	GetRooms(userID uuid.UUID, page, limit int) []dto.RoomInfo
	FilterRooms(userID uuid.UUID, roomName string, page, limit int) []dto.RoomInfo
	GetUserFavorite(userID uuid.UUID, page, limit int) []dto.RoomFavoriteInfo
	GetUserFavoriteLikeRoomName(roomName string, userID uuid.UUID, page, limit int) []dto.RoomFavoriteInfo
}
