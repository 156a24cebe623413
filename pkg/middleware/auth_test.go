package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"warbler/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func sessionCookie(t *testing.T, sessions *session.Service, userID string) *http.Cookie {
	t.Helper()
	token, err := sessions.GenerateToken(userID)
	assert.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: token}
}

func TestSession_ValidCookie(t *testing.T) {
	sessions := session.NewService("test-secret-key")

	router := setupTestRouter()
	router.Use(Session(sessions))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(UserIDKey)})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(sessionCookie(t, sessions, "user-123"))

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
}

func TestSession_NoCookie(t *testing.T) {
	sessions := session.NewService("test-secret-key")

	router := setupTestRouter()
	router.Use(Session(sessions))
	router.GET("/test", func(c *gin.Context) {
		_, exists := c.Get(UserIDKey)
		c.JSON(http.StatusOK, gin.H{"logged_in": exists})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")
}

func TestSession_InvalidToken(t *testing.T) {
	sessions := session.NewService("test-secret-key")

	router := setupTestRouter()
	router.Use(Session(sessions))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "invalid-token"})

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRequireUser_RedirectsAnonymous(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", RequireUser(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRequireUser_PassesLoggedIn(t *testing.T) {
	router := setupTestRouter()
	router.GET("/protected", func(c *gin.Context) {
		c.Set(UserIDKey, "user-123")
	}, RequireUser(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireUserAPI_Unauthorized(t *testing.T) {
	router := setupTestRouter()
	router.GET("/api", RequireUserAPI(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
