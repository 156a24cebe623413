package middleware

import (
	"net/http"

	"warbler/pkg/flash"
	"warbler/pkg/session"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key holding the id of the logged-in user.
const UserIDKey = "user_id"

// Session resolves the session cookie once per request and stores the user
// id in the request-scoped context. Anonymous visitors pass through with no
// id set.
func Session(sessions *session.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := sessions.CurrentUserID(c); userID != "" {
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

// RequireUser guards page routes. Unauthenticated access is not an error
// status: the visitor is flashed and sent back to the homepage.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UserIDKey) == "" {
			flash.Add(c, flash.CategoryDanger, "Access unauthorized.")
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireUserAPI guards the JSON API group, which replies 401 instead of
// redirecting.
func RequireUserAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UserIDKey) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
