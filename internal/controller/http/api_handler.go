package http

import (
	"net/http"
	"strconv"

	"warbler/internal/entity"
	"warbler/internal/usecase"
	"warbler/pkg/logger"
	"warbler/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// APIHandler serves the small JSON surface under /api/v1. It authenticates
// with the same session cookie as the pages but replies with statuses
// instead of redirects.
type APIHandler struct {
	users    usecase.UserUseCase
	messages usecase.MessageUseCase
	logger   *logger.Logger
}

func NewAPIHandler(users usecase.UserUseCase, messages usecase.MessageUseCase, logger *logger.Logger) *APIHandler {
	return &APIHandler{
		users:    users,
		messages: messages,
		logger:   logger,
	}
}

type UserProfileResponse struct {
	User           *entity.User `json:"user"`
	MessageCount   int          `json:"message_count"`
	FollowerCount  int          `json:"follower_count"`
	FollowingCount int          `json:"following_count"`
	LikeCount      int          `json:"like_count"`
}

// SearchUsers godoc
// @Summary      Search users
// @Description  List users, optionally filtered by a username substring
// @Tags         users
// @Produce      json
// @Param        q query string false "Username substring"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /users [get]
func (h *APIHandler) SearchUsers(c *gin.Context) {
	users, err := h.users.SearchUsers(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// GetUser godoc
// @Summary      Get user profile
// @Description  Get a user with message, follower, following, and like counts
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  UserProfileResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *APIHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	messages, _ := h.messages.GetUserMessages(user.ID)
	followers, _ := h.users.GetFollowers(user.ID)
	following, _ := h.users.GetFollowing(user.ID)
	liked, _ := h.messages.GetLikedMessageIDs(user.ID)

	c.JSON(http.StatusOK, UserProfileResponse{
		User:           user,
		MessageCount:   len(messages),
		FollowerCount:  len(followers),
		FollowingCount: len(following),
		LikeCount:      len(liked),
	})
}

// GetMessage godoc
// @Summary      Get a message
// @Description  Get a single message with its like count
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /messages/{id} [get]
func (h *APIHandler) GetMessage(c *gin.Context) {
	message, err := h.messages.GetMessage(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	likeCount, err := h.messages.LikeCount(message.ID)
	if err != nil {
		likeCount = 0
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "likes_count": likeCount})
}

// Timeline godoc
// @Summary      Home timeline
// @Description  Newest messages from the current user and everyone they follow
// @Tags         messages
// @Produce      json
// @Security     SessionCookie
// @Param        limit query int false "Number of messages to return (max 100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /timeline [get]
func (h *APIHandler) Timeline(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	limit := usecase.HomeTimelineLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= usecase.HomeTimelineLimit {
			limit = l
		}
	}

	messages, err := h.messages.HomeTimeline(userID, limit)
	if err != nil {
		h.logger.Error("Failed to load timeline for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load timeline"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages, "count": len(messages)})
}
