package database

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/polytex-chat/internal/models"
	"github.com/thereayou/polytex-chat/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ services.DatabaseService = (*Database)(nil)

var testDBCounter int64

// newTestDB поднимает изолированную in-memory базу для одного теста.
// Один коннект в пуле, чтобы параллельные транзакции сериализовались,
// а не падали на table lock.
func newTestDB(t *testing.T) *Database {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.Room{}, &models.RoomMember{}, &models.Message{})
	require.NoError(t, err)

	return NewDatabase(db)
}

func seedUser(t *testing.T, d *Database, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, d.SaveUser(user))
	return user
}

func seedRoom(t *testing.T, d *Database, name string, createdBy uuid.UUID) *models.Room {
	t.Helper()

	room := &models.Room{
		Name:      name,
		IsActive:  true,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	require.NoError(t, d.CreateRoom(room))
	return room
}

func countMembers(t *testing.T, d *Database, userID, roomID uuid.UUID) int64 {
	t.Helper()

	var count int64
	err := d.db.Model(&models.RoomMember{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error
	require.NoError(t, err)
	return count
}

func getMember(t *testing.T, d *Database, userID, roomID uuid.UUID) *models.RoomMember {
	t.Helper()

	var member models.RoomMember
	err := d.db.Where("user_id = ? AND room_id = ?", userID, roomID).First(&member).Error
	require.NoError(t, err)
	return &member
}
