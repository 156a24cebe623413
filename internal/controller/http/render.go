package http

import (
	"net/http"

	"warbler/internal/entity"
	"warbler/internal/usecase"
	"warbler/pkg/flash"
	"warbler/pkg/middleware"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "current_user"

// currentUser resolves the logged-in user once per request and caches the
// entity in the request context. A stale session pointing at a deleted user
// is treated as anonymous.
func currentUser(c *gin.Context, users usecase.UserUseCase) *entity.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*entity.User); ok {
			return user
		}
	}

	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return nil
	}

	user, err := users.GetUser(userID)
	if err != nil {
		return nil
	}

	c.Set(currentUserKey, user)
	return user
}

// requireCurrentUser resolves the logged-in user for handlers that must
// have one. A session cookie can outlive its user row (the account deleted
// from another browser), so the claim alone is not enough: a missing row is
// treated as anonymous with the usual flash and redirect. Callers return
// immediately on nil.
func requireCurrentUser(c *gin.Context, users usecase.UserUseCase) *entity.User {
	user := currentUser(c, users)
	if user == nil {
		flash.Add(c, flash.CategoryDanger, "Access unauthorized.")
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
		return nil
	}
	return user
}

// render wraps c.HTML, injecting the context every template needs: the
// current user for the nav, pending flash messages, and the CSRF token for
// forms.
func render(c *gin.Context, users usecase.UserUseCase, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = currentUser(c, users)
	data["Flashes"] = flash.Take(c)
	data["CSRFToken"] = c.GetString(middleware.CSRFTokenKey)
	c.HTML(status, name, data)
}

func renderNotFound(c *gin.Context, users usecase.UserUseCase) {
	render(c, users, http.StatusNotFound, "not_found.html", nil)
}

// redirectBack sends the visitor to the page the action came from, falling
// back to the homepage.
func redirectBack(c *gin.Context) {
	target := c.Request.Referer()
	if target == "" {
		target = "/"
	}
	c.Redirect(http.StatusSeeOther, target)
}
