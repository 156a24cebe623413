package persistent

import (
	"warbler/internal/entity"
	"warbler/internal/model"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *entity.Message) error
	GetByID(id string) (*entity.Message, error)
	GetByUserID(userID string) ([]*entity.Message, error)
	Delete(id string) error
	Timeline(userIDs []string, limit int) ([]*entity.Message, error)

	CreateLike(userID, messageID string) error
	DeleteLike(userID, messageID string) error
	IsLiked(userID, messageID string) (bool, error)
	LikeCount(messageID string) (int64, error)
	GetLikedMessages(userID string) ([]*entity.Message, error)
	GetLikedMessageIDs(userID string) ([]string, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *entity.Message) error {
	messageModel := ToMessageModel(message)
	if err := r.db.Create(messageModel).Error; err != nil {
		return err
	}
	*message = *ToMessageEntity(messageModel)
	return nil
}

func (r *messageRepository) GetByID(id string) (*entity.Message, error) {
	var messageModel model.MessageModel
	if err := r.db.Preload("Author").Where("id = ?", id).First(&messageModel).Error; err != nil {
		return nil, err
	}
	return ToMessageEntity(&messageModel), nil
}

func (r *messageRepository) GetByUserID(userID string) ([]*entity.Message, error) {
	var messageModels []model.MessageModel
	err := r.db.Preload("Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return toMessageEntities(messageModels), nil
}

// Delete removes the message and its like edges in one transaction.
func (r *messageRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.MessageModel{}).Error
	})
}

// Timeline returns the newest messages authored by any of the given users.
func (r *messageRepository) Timeline(userIDs []string, limit int) ([]*entity.Message, error) {
	if len(userIDs) == 0 {
		return []*entity.Message{}, nil
	}

	var messageModels []model.MessageModel
	err := r.db.Preload("Author").
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return toMessageEntities(messageModels), nil
}

func (r *messageRepository) CreateLike(userID, messageID string) error {
	var existing model.LikeModel
	err := r.db.Where("user_id = ? AND message_id = ?", userID, messageID).First(&existing).Error
	if err == nil {
		return nil
	}

	likeModel := &model.LikeModel{
		UserID:    userID,
		MessageID: messageID,
	}
	return r.db.Create(likeModel).Error
}

func (r *messageRepository) DeleteLike(userID, messageID string) error {
	return r.db.Where("user_id = ? AND message_id = ?", userID, messageID).Delete(&model.LikeModel{}).Error
}

func (r *messageRepository) IsLiked(userID, messageID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("user_id = ? AND message_id = ?", userID, messageID).Count(&count).Error
	return count > 0, err
}

func (r *messageRepository) LikeCount(messageID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).Where("message_id = ?", messageID).Count(&count).Error
	return count, err
}

func (r *messageRepository) GetLikedMessages(userID string) ([]*entity.Message, error) {
	var messageModels []model.MessageModel
	err := r.db.Preload("Author").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return toMessageEntities(messageModels), nil
}

func (r *messageRepository) GetLikedMessageIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.LikeModel{}).
		Where("user_id = ?", userID).
		Pluck("message_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func toMessageEntities(messageModels []model.MessageModel) []*entity.Message {
	messages := make([]*entity.Message, len(messageModels))
	for i := range messageModels {
		messages[i] = ToMessageEntity(&messageModels[i])
	}
	return messages
}
