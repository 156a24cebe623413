package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"warbler/internal/entity"
	"warbler/internal/repo/persistent"
	"warbler/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// HomeTimelineLimit caps how many messages the homepage shows.
const HomeTimelineLimit = 100

type MessageUseCase interface {
	CreateMessage(userID, text string) (*entity.Message, error)
	GetMessage(messageID string) (*entity.Message, error)
	GetUserMessages(userID string) ([]*entity.Message, error)
	DeleteMessage(messageID, userID string) error
	HomeTimeline(userID string, limit int) ([]*entity.Message, error)

	ToggleLike(userID, messageID string) (bool, error)
	LikeCount(messageID string) (int64, error)
	GetLikedMessages(userID string) ([]*entity.Message, error)
	GetLikedMessageIDs(userID string) (map[string]bool, error)
}

type messageUseCase struct {
	messageRepo persistent.MessageRepository
	userRepo    persistent.UserRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewMessageUseCase(
	messageRepo persistent.MessageRepository,
	userRepo persistent.UserRepository,
	redisClient *redis.Client,
	logger *logger.Logger,
) MessageUseCase {
	return &messageUseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *messageUseCase) CreateMessage(userID, text string) (*entity.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is required")
	}
	if len([]rune(text)) > entity.MaxMessageLength {
		return nil, fmt.Errorf("message text too long")
	}

	message := &entity.Message{
		UserID: userID,
		Text:   text,
	}

	if err := uc.messageRepo.Create(message); err != nil {
		uc.logger.Error("Failed to create message: %v", err)
		return nil, fmt.Errorf("failed to create message")
	}
	return message, nil
}

func (uc *messageUseCase) GetMessage(messageID string) (*entity.Message, error) {
	message, err := uc.messageRepo.GetByID(messageID)
	if err != nil {
		return nil, fmt.Errorf("message not found")
	}
	return message, nil
}

func (uc *messageUseCase) GetUserMessages(userID string) ([]*entity.Message, error) {
	messages, err := uc.messageRepo.GetByUserID(userID)
	if err != nil {
		uc.logger.Error("Failed to list messages for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list messages")
	}
	return messages, nil
}

func (uc *messageUseCase) DeleteMessage(messageID, userID string) error {
	message, err := uc.messageRepo.GetByID(messageID)
	if err != nil {
		return fmt.Errorf("message not found")
	}

	if message.UserID != userID {
		return fmt.Errorf("access unauthorized")
	}

	if err := uc.messageRepo.Delete(messageID); err != nil {
		uc.logger.Error("Failed to delete message %s: %v", messageID, err)
		return fmt.Errorf("failed to delete message")
	}

	if uc.redisClient != nil {
		uc.redisClient.Del(context.Background(), likeCountKey(messageID))
	}
	return nil
}

// HomeTimeline returns the newest messages from the user and everyone they
// follow, newest first.
func (uc *messageUseCase) HomeTimeline(userID string, limit int) ([]*entity.Message, error) {
	if limit <= 0 || limit > HomeTimelineLimit {
		limit = HomeTimelineLimit
	}

	followingIDs, err := uc.userRepo.GetFollowingIDs(userID)
	if err != nil {
		uc.logger.Error("Failed to get following ids for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load timeline")
	}

	authorIDs := append(followingIDs, userID)
	messages, err := uc.messageRepo.Timeline(authorIDs, limit)
	if err != nil {
		uc.logger.Error("Failed to load timeline for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load timeline")
	}
	return messages, nil
}

// ToggleLike flips the like edge between the user and the message. It
// returns true when the call ended with the message liked. The toggle is
// read-then-write with no isolation guarantee against a concurrent
// double-toggle from the same user.
func (uc *messageUseCase) ToggleLike(userID, messageID string) (bool, error) {
	message, err := uc.messageRepo.GetByID(messageID)
	if err != nil {
		return false, fmt.Errorf("message not found")
	}

	if message.UserID == userID {
		return false, fmt.Errorf("you cannot like your own message")
	}

	isLiked, err := uc.messageRepo.IsLiked(userID, messageID)
	if err != nil {
		uc.logger.Error("Failed to check like status: %v", err)
		return false, fmt.Errorf("failed to check like status")
	}

	ctx := context.Background()

	if isLiked {
		if err := uc.messageRepo.DeleteLike(userID, messageID); err != nil {
			uc.logger.Error("Failed to delete like: %v", err)
			return false, fmt.Errorf("failed to unlike message")
		}
		if uc.redisClient != nil {
			uc.redisClient.Decr(ctx, likeCountKey(messageID))
		}
		return false, nil
	}

	if err := uc.messageRepo.CreateLike(userID, messageID); err != nil {
		uc.logger.Error("Failed to create like: %v", err)
		return false, fmt.Errorf("failed to like message")
	}
	if uc.redisClient != nil {
		uc.redisClient.Incr(ctx, likeCountKey(messageID))
	}
	return true, nil
}

// LikeCount serves the count from redis when possible and falls back to the
// database, repopulating the cache on a miss. A cached value that does not
// parse counts as a miss too.
func (uc *messageUseCase) LikeCount(messageID string) (int64, error) {
	ctx := context.Background()

	if uc.redisClient != nil {
		if countStr, err := uc.redisClient.Get(ctx, likeCountKey(messageID)).Result(); err == nil {
			if count, ok := parseCachedCount(countStr); ok {
				return count, nil
			}
		}
	}

	count, err := uc.messageRepo.LikeCount(messageID)
	if err != nil {
		return 0, fmt.Errorf("message not found")
	}

	if uc.redisClient != nil {
		uc.redisClient.Set(ctx, likeCountKey(messageID), count, 0)
	}
	return count, nil
}

func (uc *messageUseCase) GetLikedMessages(userID string) ([]*entity.Message, error) {
	messages, err := uc.messageRepo.GetLikedMessages(userID)
	if err != nil {
		uc.logger.Error("Failed to list liked messages for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list liked messages")
	}
	return messages, nil
}

func (uc *messageUseCase) GetLikedMessageIDs(userID string) (map[string]bool, error) {
	ids, err := uc.messageRepo.GetLikedMessageIDs(userID)
	if err != nil {
		uc.logger.Error("Failed to list liked message ids for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to list liked messages")
	}

	liked := make(map[string]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func likeCountKey(messageID string) string {
	return fmt.Sprintf("message:likes:%s", messageID)
}

func parseCachedCount(raw string) (int64, bool) {
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}
