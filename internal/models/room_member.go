package models

import (
	"github.com/google/uuid"
	"time"
)

// RoomMember хранит связь пользователь-комната: избранное, активность, даты.
// Не больше одной записи на пару (user_id, room_id).
type RoomMember struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_room_member_pair"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_room_member_pair"`
	IsChosen  bool      `gorm:"default:false"`
	IsActive  bool      `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Связи
	User User `gorm:"foreignKey:UserID"`
	Room Room `gorm:"foreignKey:RoomID"`
}

func (RoomMember) TableName() string {
	return "room_members"
}
