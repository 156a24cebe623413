package middleware

import "github.com/gin-gonic/gin"

// NoStore marks every response as uncacheable, matching the app's
// after-request behavior.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
