package database

import (
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/polytex-chat/internal/handlers/dto"
)

const defaultPageLimit = 10

// Ошибки чтения списков не поднимаются наверх: пишем в лог и возвращаем nil.
// nil означает "список недоступен", пустой срез означает "ничего не найдено".

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	return (page - 1) * limit, limit
}

// GetRooms возвращает страницу всех комнат вместе с отметками избранного пользователя
func (d *Database) GetRooms(userID uuid.UUID, page, limit int) []dto.RoomInfo {
	return d.FilterRooms(userID, "", page, limit)
}

// FilterRooms делает то же с фильтром по подстроке имени (без учёта регистра).
// Комнаты, которых пользователь не касался, идут после остальных.
func (d *Database) FilterRooms(userID uuid.UUID, roomName string, page, limit int) []dto.RoomInfo {
	offset, limit := normalizePage(page, limit)

	q := d.db.Table("rooms").
		Select("rooms.id AS room_id, rooms.name AS room_name, COALESCE(room_members.is_chosen, ?) AS is_favorites", false).
		Joins("LEFT JOIN room_members ON room_members.room_id = rooms.id AND room_members.user_id = ?", userID)
	if roomName != "" {
		q = q.Where("LOWER(rooms.name) LIKE ?", "%"+strings.ToLower(roomName)+"%")
	}

	rooms := make([]dto.RoomInfo, 0, limit)
	err := q.
		Order("room_members.updated_at DESC NULLS LAST").
		Order("room_members.is_chosen DESC NULLS LAST").
		Limit(limit).
		Offset(offset).
		Scan(&rooms).Error
	if err != nil {
		log.Printf("Error filtering rooms: %v", err)
		return nil
	}

	// Вторая фаза сортировки: избранные поднимаются наверх уже внутри
	// отрезанной страницы. Избранная комната за границей страницы сюда
	// не попадёт: окно пагинации считается до этой пересортировки.
	// Клиенты завязаны на такой порядок; чтобы избавиться от двух фаз,
	// нужно перенести is_chosen в начало ORDER BY до LIMIT/OFFSET.
	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].IsFavorites && !rooms[j].IsFavorites
	})

	return rooms
}

// GetUserFavorite возвращает страницу избранных комнат пользователя
func (d *Database) GetUserFavorite(userID uuid.UUID, page, limit int) []dto.RoomFavoriteInfo {
	return d.favoriteRooms(userID, "", page, limit)
}

// GetUserFavoriteLikeRoomName фильтрует избранное по подстроке имени
func (d *Database) GetUserFavoriteLikeRoomName(roomName string, userID uuid.UUID, page, limit int) []dto.RoomFavoriteInfo {
	return d.favoriteRooms(userID, roomName, page, limit)
}

func (d *Database) favoriteRooms(userID uuid.UUID, roomName string, page, limit int) []dto.RoomFavoriteInfo {
	offset, limit := normalizePage(page, limit)

	q := d.db.Table("rooms").
		Select("rooms.id AS room_id, rooms.name AS room_name, room_members.is_chosen AS is_favorites, rooms.created_by = ? AS is_owner", userID).
		Joins("JOIN room_members ON room_members.room_id = rooms.id AND room_members.user_id = ?", userID).
		Where("room_members.is_chosen = ?", true)
	if roomName != "" {
		q = q.Where("LOWER(rooms.name) LIKE ?", "%"+strings.ToLower(roomName)+"%")
	}

	rooms := make([]dto.RoomFavoriteInfo, 0, limit)
	err := q.
		Order("room_members.updated_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rooms).Error
	if err != nil {
		log.Printf("Error getting favorite rooms: %v", err)
		return nil
	}

	return rooms
}
