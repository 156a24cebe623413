package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_like_pair;index"`
	MessageID string `gorm:"type:uuid;not null;uniqueIndex:idx_like_pair;index"`
	CreatedAt time.Time
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
