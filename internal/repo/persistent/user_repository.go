package persistent

import (
	"warbler/internal/entity"
	"warbler/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Search(query string) ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error

	CreateFollow(followerID, followeeID string) error
	DeleteFollow(followerID, followeeID string) error
	IsFollowing(followerID, followeeID string) (bool, error)
	GetFollowing(userID string) ([]*entity.User, error)
	GetFollowers(userID string) ([]*entity.User, error)
	GetFollowingIDs(userID string) ([]string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("username = ?", username).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("email = ?", email).First(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Search(query string) ([]*entity.User, error) {
	var userModels []model.UserModel

	db := r.db.Order("username ASC")
	if query != "" {
		db = db.Where("username LIKE ?", "%"+query+"%")
	}
	if err := db.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, nil
}

func (r *userRepository) Update(user *entity.User) error {
	userModel := ToUserModel(user)
	return r.db.Save(userModel).Error
}

// Delete removes the user and everything hanging off them: their messages,
// their likes, likes on their messages, and follow edges in both directions.
func (r *userRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		messageIDs := tx.Model(&model.MessageModel{}).Select("id").Where("user_id = ?", id)

		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.MessageModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR followee_id = ?", id, id).Delete(&model.FollowModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.UserModel{}).Error
	})
}

func (r *userRepository) CreateFollow(followerID, followeeID string) error {
	var existing model.FollowModel
	err := r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).First(&existing).Error
	if err == nil {
		return nil
	}

	followModel := &model.FollowModel{
		FollowerID: followerID,
		FolloweeID: followeeID,
	}
	return r.db.Create(followModel).Error
}

func (r *userRepository) DeleteFollow(followerID, followeeID string) error {
	return r.db.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Delete(&model.FollowModel{}).Error
}

func (r *userRepository) IsFollowing(followerID, followeeID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.FollowModel{}).Where("follower_id = ? AND followee_id = ?", followerID, followeeID).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) GetFollowing(userID string) ([]*entity.User, error) {
	var userModels []model.UserModel
	err := r.db.Model(&model.UserModel{}).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, nil
}

func (r *userRepository) GetFollowers(userID string) ([]*entity.User, error) {
	var userModels []model.UserModel
	err := r.db.Model(&model.UserModel{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, nil
}

func (r *userRepository) GetFollowingIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&model.FollowModel{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
