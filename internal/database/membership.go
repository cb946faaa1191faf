package database

import (
	"github.com/google/uuid"
	"github.com/thereayou/polytex-chat/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AddUserToRoom добавляет пользователя в комнату.
// Возвращает true, если связь создана, и false, если он уже участник.
// Проверка и вставка идут в одной транзакции; гонку двух одновременных
// вступлений закрывает уникальный индекс на пару (user_id, room_id):
// проигравший ON CONFLICT ничего не вставляет и получает false.
func (d *Database) AddUserToRoom(username, roomName string) (bool, error) {
	joined := false
	err := d.db.Transaction(func(tx *gorm.DB) error {
		user, err := d.getUserByUsername(tx, username)
		if err != nil {
			return err
		}

		room, err := d.getRoomByName(tx, roomName)
		if err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.RoomMember{}).
			Where("user_id = ? AND room_id = ?", user.ID, room.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			// уже участник
			return nil
		}

		member := &models.RoomMember{UserID: user.ID, RoomID: room.ID, IsActive: true}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "room_id"}},
			DoNothing: true,
		}).Create(member)
		if res.Error != nil {
			return res.Error
		}

		joined = res.RowsAffected == 1
		return nil
	})
	if err != nil {
		return false, translateError(err)
	}
	return joined, nil
}

// IsActiveMember проверяет активное участие пользователя в комнате
func (d *Database) IsActiveMember(userID, roomID uuid.UUID) (bool, error) {
	var count int64
	err := d.db.Model(&models.RoomMember{}).
		Where("user_id = ? AND room_id = ? AND is_active = ?", userID, roomID, true).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// SetUserRoomActivity переключает флаг участия пользователя в комнате.
// Связь не создаётся неявно: нет записи, значит ErrNotFound.
func (d *Database) SetUserRoomActivity(username, roomName string, active bool) error {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		user, err := d.getUserByUsername(tx, username)
		if err != nil {
			return err
		}

		room, err := d.getRoomByName(tx, roomName)
		if err != nil {
			return err
		}

		res := tx.Model(&models.RoomMember{}).
			Where("user_id = ? AND room_id = ?", user.ID, room.ID).
			Update("is_active", active)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return translateError(err)
}
