package database

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound: комната, пользователь или связь не найдены
	ErrNotFound = errors.New("not found")
	// ErrConflict: нарушение уникальности или неоднозначный поиск по имени
	ErrConflict = errors.New("conflict")
)

// translateError приводит ошибки gorm к нашей таксономии
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
