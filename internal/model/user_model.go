package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID             string    `gorm:"type:uuid;primary_key"`
	Username       string    `gorm:"uniqueIndex;not null"`
	Email          string    `gorm:"uniqueIndex;not null"`
	Password       string    `gorm:"not null"`
	ImageURL       string    `gorm:"column:image_url"`
	HeaderImageURL string    `gorm:"column:header_image_url"`
	Bio            string
	Location       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
