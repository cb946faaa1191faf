package database

import (
	"github.com/thereayou/polytex-chat/internal/models"
	"gorm.io/gorm"
	"time"
)

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (d *Database) UpdateUser(user *models.User) error {
	return translateError(d.db.Save(user).Error)
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (d *Database) getUserByUsername(tx *gorm.DB, username string) (*models.User, error) {
	var users []models.User
	if err := tx.Where("username = ?", username).Limit(2).Find(&users).Error; err != nil {
		return nil, err
	}
	switch len(users) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return &users[0], nil
	default:
		return nil, ErrConflict
	}
}

func (d *Database) UpdateLastSeen(id string) error {
	return translateError(d.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now()).Error)
}
