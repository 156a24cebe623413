package http

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"warbler/internal/usecase"
	"warbler/pkg/flash"
	"warbler/pkg/logger"
	"warbler/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	users    usecase.UserUseCase
	messages usecase.MessageUseCase
	sessions *session.Service
	logger   *logger.Logger
}

func NewUserHandler(users usecase.UserUseCase, messages usecase.MessageUseCase, sessions *session.Service, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		users:    users,
		messages: messages,
		sessions: sessions,
		logger:   logger,
	}
}

type ProfileForm struct {
	Username       string `form:"username" binding:"required,max=50"`
	Email          string `form:"email" binding:"required,email"`
	ImageURL       string `form:"image_url"`
	HeaderImageURL string `form:"header_image_url"`
	Bio            string `form:"bio"`
	Location       string `form:"location"`
	Password       string `form:"password" binding:"required"`
}

// ListUsers shows all users, optionally filtered by a username substring.
func (h *UserHandler) ListUsers(c *gin.Context) {
	query := c.Query("q")

	users, err := h.users.SearchUsers(query)
	if err != nil {
		h.logger.Error("Failed to list users: %v", err)
		users = nil
	}

	render(c, h.users, http.StatusOK, "users_index.html", gin.H{
		"Users": users,
		"Query": query,
	})
}

func (h *UserHandler) ShowUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Param("id"))
	if err != nil {
		renderNotFound(c, h.users)
		return
	}

	messages, err := h.messages.GetUserMessages(user.ID)
	if err != nil {
		h.logger.Error("Failed to load messages for user %s: %v", user.ID, err)
	}

	likedIDs := map[string]bool{}
	isFollowing := false
	if viewer := currentUser(c, h.users); viewer != nil {
		likedIDs, _ = h.messages.GetLikedMessageIDs(viewer.ID)
		isFollowing, _ = h.users.IsFollowing(viewer.ID, user.ID)
	}

	render(c, h.users, http.StatusOK, "users_show.html", gin.H{
		"User":        user,
		"Messages":    messages,
		"LikedIDs":    likedIDs,
		"IsFollowing": isFollowing,
	})
}

func (h *UserHandler) ShowFollowing(c *gin.Context) {
	user, err := h.users.GetUser(c.Param("id"))
	if err != nil {
		renderNotFound(c, h.users)
		return
	}

	following, err := h.users.GetFollowing(user.ID)
	if err != nil {
		h.logger.Error("Failed to load following for user %s: %v", user.ID, err)
	}

	render(c, h.users, http.StatusOK, "users_following.html", gin.H{
		"User":      user,
		"Following": following,
	})
}

func (h *UserHandler) ShowFollowers(c *gin.Context) {
	user, err := h.users.GetUser(c.Param("id"))
	if err != nil {
		renderNotFound(c, h.users)
		return
	}

	followers, err := h.users.GetFollowers(user.ID)
	if err != nil {
		h.logger.Error("Failed to load followers for user %s: %v", user.ID, err)
	}

	render(c, h.users, http.StatusOK, "users_followers.html", gin.H{
		"User":      user,
		"Followers": followers,
	})
}

func (h *UserHandler) ShowLikes(c *gin.Context) {
	user, err := h.users.GetUser(c.Param("id"))
	if err != nil {
		renderNotFound(c, h.users)
		return
	}

	liked, err := h.messages.GetLikedMessages(user.ID)
	if err != nil {
		h.logger.Error("Failed to load likes for user %s: %v", user.ID, err)
	}

	render(c, h.users, http.StatusOK, "users_likes.html", gin.H{
		"User":     user,
		"Messages": liked,
	})
}

func (h *UserHandler) Follow(c *gin.Context) {
	viewer := requireCurrentUser(c, h.users)
	if viewer == nil {
		return
	}

	err := h.users.Follow(viewer.ID, c.Param("id"))
	if err != nil {
		switch err.Error() {
		case "user not found":
			renderNotFound(c, h.users)
		case "you cannot follow yourself":
			flash.Add(c, flash.CategoryDanger, "You cannot follow yourself!")
			c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%s/following", viewer.ID))
		default:
			flash.Add(c, flash.CategoryDanger, "Failed to follow user.")
			c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%s/following", viewer.ID))
		}
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%s/following", viewer.ID))
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	viewer := requireCurrentUser(c, h.users)
	if viewer == nil {
		return
	}

	err := h.users.Unfollow(viewer.ID, c.Param("id"))
	if err != nil {
		if err.Error() == "user not found" {
			renderNotFound(c, h.users)
			return
		}
		flash.Add(c, flash.CategoryDanger, "Failed to unfollow user.")
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%s/following", viewer.ID))
}

func (h *UserHandler) ProfilePage(c *gin.Context) {
	user := requireCurrentUser(c, h.users)
	if user == nil {
		return
	}

	render(c, h.users, http.StatusOK, "users_edit.html", gin.H{
		"Form": ProfileForm{
			Username:       user.Username,
			Email:          user.Email,
			ImageURL:       user.ImageURL,
			HeaderImageURL: user.HeaderImageURL,
			Bio:            user.Bio,
			Location:       user.Location,
		},
	})
}

// UpdateProfile edits the current user. The submitted password must
// re-authenticate them or nothing changes. An optional multipart image
// upload replaces the profile picture.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	viewer := requireCurrentUser(c, h.users)
	if viewer == nil {
		return
	}

	var form ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Add(c, flash.CategoryDanger, "Please fill out the form correctly.")
		render(c, h.users, http.StatusOK, "users_edit.html", gin.H{"Form": form})
		return
	}

	imageURL := form.ImageURL
	if file, err := c.FormFile("image"); err == nil {
		uploadedURL, err := h.uploadImage(viewer.ID, file)
		if err != nil {
			flash.Add(c, flash.CategoryDanger, err.Error())
			render(c, h.users, http.StatusOK, "users_edit.html", gin.H{"Form": form})
			return
		}
		imageURL = uploadedURL
	}

	user, err := h.users.UpdateProfile(viewer.ID, usecase.ProfileUpdate{
		Username:       form.Username,
		Email:          form.Email,
		ImageURL:       imageURL,
		HeaderImageURL: form.HeaderImageURL,
		Bio:            form.Bio,
		Location:       form.Location,
		Password:       form.Password,
	})
	if err != nil {
		if err.Error() == "invalid credentials" {
			flash.Add(c, flash.CategoryDanger, "Unauthorized!")
		} else {
			h.logger.Error("Failed to update profile for user %s: %v", viewer.ID, err)
			flash.Add(c, flash.CategoryDanger, "Failed to update profile.")
		}
		render(c, h.users, http.StatusOK, "users_edit.html", gin.H{"Form": form})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%s", user.ID))
}

// DeleteUser removes the account and everything attached to it, then sends
// the visitor to the signup page. The session survives a failed delete so
// the visitor can see the error and try again.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	viewer := requireCurrentUser(c, h.users)
	if viewer == nil {
		return
	}

	if err := h.users.DeleteUser(viewer.ID); err != nil {
		h.logger.Error("Failed to delete user %s: %v", viewer.ID, err)
		flash.Add(c, flash.CategoryDanger, "Failed to delete account.")
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%s", viewer.ID))
		return
	}

	h.sessions.Logout(c)
	c.Redirect(http.StatusSeeOther, "/signup")
}

func (h *UserHandler) uploadImage(userID string, file *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" {
		return "", fmt.Errorf("Invalid image format. Only jpg, jpeg, png, gif are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("Failed to process file")
	}
	defer src.Close()

	fileKey := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), ext)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return h.users.UploadProfileImage(userID, src, fileKey, contentType)
}
