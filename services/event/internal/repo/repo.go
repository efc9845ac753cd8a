package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = gorm.ErrRecordNotFound
	ErrAlreadyCheckedIn = errors.New("already checked in")
)

type GormRepo struct {
	DB *gorm.DB
}
