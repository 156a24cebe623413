package http

import (
	"fmt"
	"net/http"

	"warbler/internal/usecase"
	"warbler/pkg/flash"
	"warbler/pkg/logger"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	users    usecase.UserUseCase
	messages usecase.MessageUseCase
	logger   *logger.Logger
}

func NewMessageHandler(users usecase.UserUseCase, messages usecase.MessageUseCase, logger *logger.Logger) *MessageHandler {
	return &MessageHandler{
		users:    users,
		messages: messages,
		logger:   logger,
	}
}

type MessageForm struct {
	Text string `form:"text" binding:"required,max=140"`
}

func (h *MessageHandler) NewMessagePage(c *gin.Context) {
	render(c, h.users, http.StatusOK, "message_new.html", nil)
}

func (h *MessageHandler) CreateMessage(c *gin.Context) {
	viewer := requireCurrentUser(c, h.users)
	if viewer == nil {
		return
	}

	var form MessageForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Add(c, flash.CategoryDanger, "Messages must be between 1 and 140 characters.")
		render(c, h.users, http.StatusOK, "message_new.html", gin.H{"Form": form})
		return
	}

	if _, err := h.messages.CreateMessage(viewer.ID, form.Text); err != nil {
		h.logger.Error("Failed to create message: %v", err)
		flash.Add(c, flash.CategoryDanger, "Failed to post message.")
		render(c, h.users, http.StatusOK, "message_new.html", gin.H{"Form": form})
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%s", viewer.ID))
}

func (h *MessageHandler) ShowMessage(c *gin.Context) {
	message, err := h.messages.GetMessage(c.Param("id"))
	if err != nil {
		renderNotFound(c, h.users)
		return
	}

	likeCount, err := h.messages.LikeCount(message.ID)
	if err != nil {
		likeCount = 0
	}

	likedIDs := map[string]bool{}
	if viewer := currentUser(c, h.users); viewer != nil {
		likedIDs, _ = h.messages.GetLikedMessageIDs(viewer.ID)
	}

	render(c, h.users, http.StatusOK, "message_show.html", gin.H{
		"Message":   message,
		"LikeCount": likeCount,
		"LikedIDs":  likedIDs,
	})
}

func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	viewer := requireCurrentUser(c, h.users)
	if viewer == nil {
		return
	}

	err := h.messages.DeleteMessage(c.Param("id"), viewer.ID)
	if err != nil {
		switch err.Error() {
		case "message not found":
			renderNotFound(c, h.users)
		case "access unauthorized":
			flash.Add(c, flash.CategoryDanger, "Access unauthorized.")
			c.Redirect(http.StatusSeeOther, "/")
		default:
			flash.Add(c, flash.CategoryDanger, "Failed to delete message.")
			c.Redirect(http.StatusSeeOther, "/")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%s", viewer.ID))
}

// ToggleLike flips the like on a message and sends the visitor back where
// they came from. Liking your own message is rejected with a flash.
func (h *MessageHandler) ToggleLike(c *gin.Context) {
	viewer := requireCurrentUser(c, h.users)
	if viewer == nil {
		return
	}

	liked, err := h.messages.ToggleLike(viewer.ID, c.Param("id"))
	if err != nil {
		switch err.Error() {
		case "message not found":
			renderNotFound(c, h.users)
		case "you cannot like your own message":
			flash.Add(c, flash.CategoryDanger, "Sorry, you cannot like your own message!")
			c.Redirect(http.StatusSeeOther, fmt.Sprintf("/users/%s", viewer.ID))
		default:
			flash.Add(c, flash.CategoryDanger, "Failed to like message.")
			redirectBack(c)
		}
		return
	}

	if liked {
		flash.Add(c, flash.CategorySuccess, "message liked!")
	} else {
		flash.Add(c, flash.CategoryDanger, "message unliked!")
	}
	redirectBack(c)
}

// Homepage shows the logged-in user their timeline; anonymous visitors get
// the landing page with no messages.
func (h *MessageHandler) Homepage(c *gin.Context) {
	viewer := currentUser(c, h.users)
	if viewer == nil {
		render(c, h.users, http.StatusOK, "home_anon.html", nil)
		return
	}

	messages, err := h.messages.HomeTimeline(viewer.ID, usecase.HomeTimelineLimit)
	if err != nil {
		h.logger.Error("Failed to load timeline for user %s: %v", viewer.ID, err)
	}

	likedIDs, _ := h.messages.GetLikedMessageIDs(viewer.ID)

	render(c, h.users, http.StatusOK, "home.html", gin.H{
		"Messages": messages,
		"LikedIDs": likedIDs,
	})
}
