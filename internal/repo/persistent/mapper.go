package persistent

import (
	"warbler/internal/entity"
	"warbler/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:             m.ID,
		Username:       m.Username,
		Email:          m.Email,
		Password:       m.Password,
		ImageURL:       m.ImageURL,
		HeaderImageURL: m.HeaderImageURL,
		Bio:            m.Bio,
		Location:       m.Location,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:             e.ID,
		Username:       e.Username,
		Email:          e.Email,
		Password:       e.Password,
		ImageURL:       e.ImageURL,
		HeaderImageURL: e.HeaderImageURL,
		Bio:            e.Bio,
		Location:       e.Location,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToMessageEntity(m *model.MessageModel) *entity.Message {
	if m == nil {
		return nil
	}

	msg := &entity.Message{
		ID:        m.ID,
		UserID:    m.UserID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
	if m.Author.ID != "" {
		msg.Author = ToUserEntity(&m.Author)
	}
	return msg
}

func ToMessageModel(e *entity.Message) *model.MessageModel {
	if e == nil {
		return nil
	}

	return &model.MessageModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Text:      e.Text,
		CreatedAt: e.CreatedAt,
	}
}
