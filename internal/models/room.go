package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

type Room struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	IsActive  bool      `gorm:"default:true"`
	CreatedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	// Связи
	Members  []RoomMember `gorm:"foreignKey:RoomID"`
	Messages []Message    `gorm:"foreignKey:RoomID"`
}

func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
