package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"type:varchar(140);not null"`
	CreatedAt time.Time `gorm:"index"`

	Author UserModel `gorm:"foreignKey:UserID"`
}

func (MessageModel) TableName() string {
	return "messages"
}

func (m *MessageModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
