package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserModel_BeforeCreate(t *testing.T) {
	user := &UserModel{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "hashed",
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUserModel_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &UserModel{
		ID:       existingID,
		Username: "testuser",
		Email:    "test@example.com",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestMessageModel_BeforeCreate(t *testing.T) {
	message := &MessageModel{
		UserID: "user-123",
		Text:   "hello warbler",
	}

	err := message.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, message.ID)
}

func TestFollowModel_BeforeCreate(t *testing.T) {
	follow := &FollowModel{
		FollowerID: "follower-123",
		FolloweeID: "followee-123",
	}

	err := follow.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, follow.ID)
}

func TestLikeModel_BeforeCreate(t *testing.T) {
	like := &LikeModel{
		UserID:    "user-123",
		MessageID: "message-123",
	}

	err := like.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, like.ID)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", UserModel{}.TableName())
	assert.Equal(t, "messages", MessageModel{}.TableName())
	assert.Equal(t, "follows", FollowModel{}.TableName())
	assert.Equal(t, "likes", LikeModel{}.TableName())
}
