package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowModel rows are hard-deleted on unfollow; no history is kept.
type FollowModel struct {
	ID         string `gorm:"type:uuid;primary_key"`
	FollowerID string `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;index"`
	FolloweeID string `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;index"`
	CreatedAt  time.Time
}

func (FollowModel) TableName() string {
	return "follows"
}

func (f *FollowModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
