package usecase

import (
	"fmt"
	"io"

	"warbler/internal/entity"
	"warbler/internal/repo/persistent"
	"warbler/pkg/logger"
	"warbler/pkg/s3"

	"golang.org/x/crypto/bcrypt"
)

// ProfileUpdate carries the fields of the edit-profile form. Password is the
// user's current password and must re-authenticate before anything changes.
type ProfileUpdate struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
	Password       string
}

type UserUseCase interface {
	Register(username, email, password, imageURL string) (*entity.User, error)
	Authenticate(username, password string) (*entity.User, error)
	GetUser(userID string) (*entity.User, error)
	SearchUsers(query string) ([]*entity.User, error)
	UpdateProfile(userID string, update ProfileUpdate) (*entity.User, error)
	UploadProfileImage(userID string, file io.Reader, fileKey, contentType string) (string, error)
	DeleteUser(userID string) error

	Follow(followerID, followeeID string) error
	Unfollow(followerID, followeeID string) error
	IsFollowing(followerID, followeeID string) (bool, error)
	GetFollowing(userID string) ([]*entity.User, error)
	GetFollowers(userID string) ([]*entity.User, error)
}

type userUseCase struct {
	userRepo persistent.UserRepository
	s3Client *s3.Client
	logger   *logger.Logger
}

func NewUserUseCase(
	userRepo persistent.UserRepository,
	s3Client *s3.Client,
	logger *logger.Logger,
) UserUseCase {
	return &userUseCase{
		userRepo: userRepo,
		s3Client: s3Client,
		logger:   logger,
	}
}

func (uc *userUseCase) Register(username, email, password, imageURL string) (*entity.User, error) {
	_, err := uc.userRepo.GetByUsername(username)
	if err == nil {
		return nil, fmt.Errorf("username already taken")
	}

	_, err = uc.userRepo.GetByEmail(email)
	if err == nil {
		return nil, fmt.Errorf("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, fmt.Errorf("failed to process signup")
	}

	if imageURL == "" {
		imageURL = entity.DefaultImageURL
	}

	user := &entity.User{
		Username:       username,
		Email:          email,
		Password:       string(hashedPassword),
		ImageURL:       imageURL,
		HeaderImageURL: entity.DefaultHeaderImageURL,
	}

	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user: %v", err)
		return nil, fmt.Errorf("failed to create user")
	}

	user.Password = ""
	return user, nil
}

func (uc *userUseCase) Authenticate(username, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	user.Password = ""
	return user, nil
}

func (uc *userUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}
	user.Password = ""
	return user, nil
}

func (uc *userUseCase) SearchUsers(query string) ([]*entity.User, error) {
	users, err := uc.userRepo.Search(query)
	if err != nil {
		uc.logger.Error("Failed to search users: %v", err)
		return nil, fmt.Errorf("failed to search users")
	}
	for _, user := range users {
		user.Password = ""
	}
	return users, nil
}

func (uc *userUseCase) UpdateProfile(userID string, update ProfileUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	// The submitted password must re-authenticate the current user
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(update.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	user.Username = update.Username
	user.Email = update.Email
	user.Bio = update.Bio
	user.Location = update.Location

	user.ImageURL = update.ImageURL
	if user.ImageURL == "" {
		user.ImageURL = entity.DefaultImageURL
	}
	user.HeaderImageURL = update.HeaderImageURL
	if user.HeaderImageURL == "" {
		user.HeaderImageURL = entity.DefaultHeaderImageURL
	}

	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update profile")
	}

	user.Password = ""
	return user, nil
}

func (uc *userUseCase) UploadProfileImage(userID string, file io.Reader, fileKey, contentType string) (string, error) {
	if uc.s3Client == nil {
		return "", fmt.Errorf("image uploads are not configured")
	}

	imageURL, err := uc.s3Client.UploadFile(fileKey, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload image for user %s: %v", userID, err)
		return "", fmt.Errorf("failed to upload image")
	}
	return imageURL, nil
}

func (uc *userUseCase) DeleteUser(userID string) error {
	if _, err := uc.userRepo.GetByID(userID); err != nil {
		return fmt.Errorf("user not found")
	}

	if err := uc.userRepo.Delete(userID); err != nil {
		uc.logger.Error("Failed to delete user %s: %v", userID, err)
		return fmt.Errorf("failed to delete user")
	}
	return nil
}

func (uc *userUseCase) Follow(followerID, followeeID string) error {
	if followerID == followeeID {
		return fmt.Errorf("you cannot follow yourself")
	}

	if _, err := uc.userRepo.GetByID(followeeID); err != nil {
		return fmt.Errorf("user not found")
	}

	if err := uc.userRepo.CreateFollow(followerID, followeeID); err != nil {
		uc.logger.Error("Failed to create follow: %v", err)
		return fmt.Errorf("failed to follow user")
	}
	return nil
}

func (uc *userUseCase) Unfollow(followerID, followeeID string) error {
	if _, err := uc.userRepo.GetByID(followeeID); err != nil {
		return fmt.Errorf("user not found")
	}

	if err := uc.userRepo.DeleteFollow(followerID, followeeID); err != nil {
		uc.logger.Error("Failed to delete follow: %v", err)
		return fmt.Errorf("failed to unfollow user")
	}
	return nil
}

func (uc *userUseCase) IsFollowing(followerID, followeeID string) (bool, error) {
	return uc.userRepo.IsFollowing(followerID, followeeID)
}

func (uc *userUseCase) GetFollowing(userID string) ([]*entity.User, error) {
	users, err := uc.userRepo.GetFollowing(userID)
	if err != nil {
		uc.logger.Error("Failed to list following: %v", err)
		return nil, fmt.Errorf("failed to list following")
	}
	return users, nil
}

func (uc *userUseCase) GetFollowers(userID string) ([]*entity.User, error) {
	users, err := uc.userRepo.GetFollowers(userID)
	if err != nil {
		uc.logger.Error("Failed to list followers: %v", err)
		return nil, fmt.Errorf("failed to list followers")
	}
	return users, nil
}
