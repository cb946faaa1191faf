package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/polytex-chat/internal/models"
)

func seedMember(t *testing.T, d *Database, userID, roomID uuid.UUID, isChosen bool, updatedAt time.Time) {
	t.Helper()

	require.NoError(t, d.db.Create(&models.RoomMember{
		UserID:    userID,
		RoomID:    roomID,
		IsChosen:  isChosen,
		IsActive:  true,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}).Error)
}

// seedRankedRooms создаёт n комнат со связями: room-n трогали последней,
// room-1 раньше всех
func seedRankedRooms(t *testing.T, d *Database, user *models.User, n int) []*models.Room {
	t.Helper()

	base := time.Now().Add(-24 * time.Hour)
	rooms := make([]*models.Room, 0, n)
	for i := 1; i <= n; i++ {
		room := seedRoom(t, d, fmt.Sprintf("room-%02d", i), user.ID)
		seedMember(t, d, user.ID, room.ID, false, base.Add(time.Duration(i)*time.Minute))
		rooms = append(rooms, room)
	}
	return rooms
}

func TestGetRoomsPagination(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")
	seedRankedRooms(t, d, user, 25)

	page1 := d.GetRooms(user.ID, 1, 10)
	require.Len(t, page1, 10)
	assert.Equal(t, "room-25", page1[0].RoomName)
	assert.Equal(t, "room-16", page1[9].RoomName)

	// page=2 возвращает строки со смещений [10, 20)
	page2 := d.GetRooms(user.ID, 2, 10)
	require.Len(t, page2, 10)
	assert.Equal(t, "room-15", page2[0].RoomName)
	assert.Equal(t, "room-06", page2[9].RoomName)

	page3 := d.GetRooms(user.ID, 3, 10)
	require.Len(t, page3, 5)
	assert.Equal(t, "room-05", page3[0].RoomName)
	assert.Equal(t, "room-01", page3[4].RoomName)
}

func TestGetRoomsWithoutAssociation(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")

	touched := seedRoom(t, d, "touched", user.ID)
	seedRoom(t, d, "untouched-a", user.ID)
	seedRoom(t, d, "untouched-b", user.ID)
	seedMember(t, d, user.ID, touched.ID, false, time.Now())

	rooms := d.GetRooms(user.ID, 1, 10)
	require.Len(t, rooms, 3)

	// Комната без связи не ошибка: она в списке, просто после остальных
	// и с is_favorites=false
	assert.Equal(t, "touched", rooms[0].RoomName)
	for _, r := range rooms {
		assert.False(t, r.IsFavorites)
	}
}

// Контракт двухфазной сортировки: окно пагинации считается по давности
// до продвижения избранного, поэтому избранная комната сразу за границей
// страницы в неё не подтягивается.
func TestGetRoomsTwoPhaseSort(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")
	rooms := seedRankedRooms(t, d, user, 15)

	// 11-я по давности room-05, 3-я room-12
	require.NoError(t, d.AlterFavorite(user.ID, "room-12", true))
	eleventh := rooms[4] // room-05

	base := time.Now().Add(-24 * time.Hour)
	require.NoError(t, d.db.Model(&models.RoomMember{}).
		Where("user_id = ? AND room_id = ?", user.ID, eleventh.ID).
		Updates(map[string]interface{}{"is_chosen": true, "updated_at": base.Add(5 * time.Minute)}).Error)
	// room-12 тоже возвращаем на её место по давности
	twelfth := rooms[11]
	require.NoError(t, d.db.Model(&models.RoomMember{}).
		Where("user_id = ? AND room_id = ?", user.ID, twelfth.ID).
		Updates(map[string]interface{}{"updated_at": base.Add(12 * time.Minute)}).Error)

	page1 := d.GetRooms(user.ID, 1, 10)
	require.Len(t, page1, 10)

	names := make([]string, len(page1))
	for i, r := range page1 {
		names[i] = r.RoomName
	}

	// Избранная внутри страницы поднимается наверх
	assert.Equal(t, "room-12", names[0])
	assert.True(t, page1[0].IsFavorites)

	// Избранная за границей страницы (room-05) не подтянулась
	assert.NotContains(t, names, "room-05")
	assert.Contains(t, names, "room-06")
}

func TestFilterRoomsCaseInsensitive(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")
	seedRoom(t, d, "General", user.ID)
	seedRoom(t, d, "random", user.ID)

	rooms := d.FilterRooms(user.ID, "gEnEr", 1, 10)
	require.Len(t, rooms, 1)
	assert.Equal(t, "General", rooms[0].RoomName)

	// Ничего не нашлось: пустой срез, а не nil
	rooms = d.FilterRooms(user.ID, "zzz", 1, 10)
	assert.NotNil(t, rooms)
	assert.Len(t, rooms, 0)
}

func TestListingUnavailable(t *testing.T) {
	d := newTestDB(t)
	user := seedUser(t, d, "alice")
	seedRoom(t, d, "general", user.ID)

	// Ломаем чтение: без таблицы связей запрос падает,
	// списки становятся недоступны: nil, а не ошибка
	require.NoError(t, d.db.Migrator().DropTable("room_members"))

	assert.Nil(t, d.GetRooms(user.ID, 1, 10))
	assert.Nil(t, d.FilterRooms(user.ID, "gen", 1, 10))
	assert.Nil(t, d.GetUserFavorite(user.ID, 1, 10))
}

func TestGetUserFavoriteScenario(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	seedRoom(t, d, "general", alice.ID)

	joined, err := d.AddUserToRoom("alice", "general")
	require.NoError(t, err)
	assert.True(t, joined)

	joined, err = d.AddUserToRoom("alice", "general")
	require.NoError(t, err)
	assert.False(t, joined)

	require.NoError(t, d.AlterFavorite(alice.ID, "general", true))

	favorites := d.GetUserFavorite(alice.ID, 1, 10)
	require.Len(t, favorites, 1)
	assert.Equal(t, "general", favorites[0].RoomName)
	assert.True(t, favorites[0].IsFavorites)
	assert.True(t, favorites[0].IsOwner)
}

func TestGetUserFavoriteOwnership(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")
	bob := seedUser(t, d, "bob")

	seedRoom(t, d, "bobs-room", bob.ID)
	require.NoError(t, d.AlterFavorite(alice.ID, "bobs-room", true))

	favorites := d.GetUserFavorite(alice.ID, 1, 10)
	require.Len(t, favorites, 1)
	assert.True(t, favorites[0].IsFavorites)
	assert.False(t, favorites[0].IsOwner)

	// Чужое избранное не видно
	assert.Len(t, d.GetUserFavorite(bob.ID, 1, 10), 0)
}

func TestGetUserFavoriteLikeRoomName(t *testing.T) {
	d := newTestDB(t)
	alice := seedUser(t, d, "alice")

	seedRoom(t, d, "general", alice.ID)
	seedRoom(t, d, "generated", alice.ID)
	seedRoom(t, d, "random", alice.ID)

	require.NoError(t, d.AlterFavorite(alice.ID, "general", true))
	require.NoError(t, d.AlterFavorite(alice.ID, "random", true))

	favorites := d.GetUserFavoriteLikeRoomName("GENER", alice.ID, 1, 10)
	require.Len(t, favorites, 1)
	assert.Equal(t, "general", favorites[0].RoomName)

	// Не избранная "generated" не попадает даже с совпадающим именем
	all := d.GetUserFavorite(alice.ID, 1, 10)
	assert.Len(t, all, 2)
}
