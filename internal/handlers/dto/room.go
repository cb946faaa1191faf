package dto

import "github.com/google/uuid"

type RoomCreateRequest struct {
	RoomName string `json:"room_name" binding:"required,min=1,max=100"`
}

type RoomActivityRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type FavoriteRequest struct {
	RoomName string `json:"room_name" binding:"required"`
	IsChosen bool   `json:"is_chosen"`
}

// RoomInfo описывает комнату глазами конкретного пользователя
type RoomInfo struct {
	RoomID      uuid.UUID `json:"room_id"`
	RoomName    string    `json:"room_name"`
	IsFavorites bool      `json:"is_favorites"`
}

// RoomFavoriteInfo добавляет признак владельца, для списка избранного
type RoomFavoriteInfo struct {
	RoomID      uuid.UUID `json:"room_id"`
	RoomName    string    `json:"room_name"`
	IsFavorites bool      `json:"is_favorites"`
	IsOwner     bool      `json:"is_owner"`
}
