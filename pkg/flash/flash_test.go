package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestAddThenTake_AcrossRedirect(t *testing.T) {
	router := setupTestRouter()
	router.POST("/action", func(c *gin.Context) {
		Add(c, CategorySuccess, "message liked!")
		c.Redirect(http.StatusSeeOther, "/")
	})

	var taken []Message
	router.GET("/", func(c *gin.Context) {
		taken = Take(c)
		c.Status(http.StatusOK)
	})

	// First request queues the flash into a cookie
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/action", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	cookies := w.Result().Cookies()
	assert.NotEmpty(t, cookies)

	// Second request carries the cookie and surfaces the message once
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	router.ServeHTTP(w, req)

	assert.Len(t, taken, 1)
	assert.Equal(t, CategorySuccess, taken[0].Category)
	assert.Equal(t, "message liked!", taken[0].Text)

	// The response clears the cookie
	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "warbler_flash" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestAddThenTake_SameRequest(t *testing.T) {
	router := setupTestRouter()

	var taken []Message
	router.GET("/", func(c *gin.Context) {
		Add(c, CategoryDanger, "Invalid credentials.")
		taken = Take(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Len(t, taken, 1)
	assert.Equal(t, "Invalid credentials.", taken[0].Text)
}

func TestTake_NoMessages(t *testing.T) {
	router := setupTestRouter()

	var taken []Message
	router.GET("/", func(c *gin.Context) {
		taken = Take(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Empty(t, taken)
}

func TestTake_GarbageCookie(t *testing.T) {
	router := setupTestRouter()

	var taken []Message
	router.GET("/", func(c *gin.Context) {
		taken = Take(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "warbler_flash", Value: "not-base64!!"})
	router.ServeHTTP(w, req)

	assert.Empty(t, taken)
}
