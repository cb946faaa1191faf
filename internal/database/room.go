package database

import (
	"github.com/thereayou/polytex-chat/internal/models"
	"gorm.io/gorm"
)

func (d *Database) CreateRoom(room *models.Room) error {
	return translateError(d.db.Create(room).Error)
}

func (d *Database) GetRoom(id string) (*models.Room, error) {
	var room models.Room
	if err := d.db.First(&room, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &room, nil
}

// getRoomByName ищет комнату по уникальному имени.
// Две записи с одним именем дают ErrConflict, схема такого не допускает.
func (d *Database) getRoomByName(tx *gorm.DB, name string) (*models.Room, error) {
	var rooms []models.Room
	if err := tx.Where("name = ?", name).Limit(2).Find(&rooms).Error; err != nil {
		return nil, err
	}
	switch len(rooms) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &rooms[0], nil
	default:
		return nil, ErrConflict
	}
}

func (d *Database) GetRoomByName(name string) (*models.Room, error) {
	return d.getRoomByName(d.db, name)
}

// DeleteRoom удаляет комнату вместе со всеми связями и сообщениями.
// Три удаления идут одной транзакцией: либо всё, либо ничего.
func (d *Database) DeleteRoom(name string) error {
	err := d.db.Transaction(func(tx *gorm.DB) error {
		room, err := d.getRoomByName(tx, name)
		if err != nil {
			return err
		}

		if err := tx.Delete(&models.Message{}, "room_id = ?", room.ID).Error; err != nil {
			return err
		}

		if err := tx.Delete(&models.RoomMember{}, "room_id = ?", room.ID).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Room{}, "id = ?", room.ID).Error
	})
	return translateError(err)
}

// SetRoomActivity переключает флаг активности комнаты и возвращает обновлённую запись
func (d *Database) SetRoomActivity(name string, active bool) (*models.Room, error) {
	var room models.Room
	err := d.db.Transaction(func(tx *gorm.DB) error {
		r, err := d.getRoomByName(tx, name)
		if err != nil {
			return err
		}

		if err := tx.Model(r).Update("is_active", active).Error; err != nil {
			return err
		}

		room = *r
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &room, nil
}
