package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/polytex-chat/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlterFavorite ставит или снимает отметку избранного.
// Это upsert: добавить комнату в избранное можно и до вступления в неё,
// тогда создаётся связь с is_active по умолчанию. Одновременные переключения
// сериализуются на уровне строки: последняя зафиксированная запись побеждает,
// update_date берётся из момента выполнения запроса, а не из запроса клиента.
func (d *Database) AlterFavorite(userID uuid.UUID, roomName string, isChosen bool) error {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		room, err := d.getRoomByName(tx, roomName)
		if err != nil {
			return err
		}

		now := time.Now()
		member := &models.RoomMember{
			UserID:    userID,
			RoomID:    room.ID,
			IsChosen:  isChosen,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "room_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"is_chosen":  isChosen,
				"updated_at": now,
			}),
		}).Create(member).Error
	})
	return translateError(err)
}
