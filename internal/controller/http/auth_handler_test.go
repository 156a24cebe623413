package http

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"warbler/internal/entity"
	"warbler/internal/usecase"
	"warbler/pkg/logger"
	"warbler/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock implementation of UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(username, email, password, imageURL string) (*entity.User, error) {
	args := m.Called(username, email, password, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) Authenticate(username, password string) (*entity.User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) GetUser(userID string) (*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) SearchUsers(query string) ([]*entity.User, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserUseCase) UpdateProfile(userID string, update usecase.ProfileUpdate) (*entity.User, error) {
	args := m.Called(userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) UploadProfileImage(userID string, file io.Reader, fileKey, contentType string) (string, error) {
	args := m.Called(userID, file, fileKey, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockUserUseCase) DeleteUser(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserUseCase) Follow(followerID, followeeID string) error {
	args := m.Called(followerID, followeeID)
	return args.Error(0)
}

func (m *MockUserUseCase) Unfollow(followerID, followeeID string) error {
	args := m.Called(followerID, followeeID)
	return args.Error(0)
}

func (m *MockUserUseCase) IsFollowing(followerID, followeeID string) (bool, error) {
	args := m.Called(followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserUseCase) GetFollowing(userID string) ([]*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserUseCase) GetFollowers(userID string) ([]*entity.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)

const testTemplates = `
{{define "home.html"}}home{{end}}
{{define "home_anon.html"}}home_anon{{end}}
{{define "signup.html"}}signup{{end}}
{{define "login.html"}}login{{end}}
{{define "users_index.html"}}users_index{{end}}
{{define "users_show.html"}}users_show{{end}}
{{define "users_following.html"}}users_following{{end}}
{{define "users_followers.html"}}users_followers{{end}}
{{define "users_likes.html"}}users_likes{{end}}
{{define "users_edit.html"}}users_edit{{end}}
{{define "message_new.html"}}message_new{{end}}
{{define "message_show.html"}}message_show{{end}}
{{define "not_found.html"}}not_found{{end}}
`

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("t").Parse(testTemplates)))
	return r
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestSignup_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	sessions := session.NewService("test-secret")
	handler := NewAuthHandler(mockUseCase, sessions, logger.New())

	router := setupTestRouter()
	router.POST("/signup", handler.Signup)

	created := &entity.User{ID: "user-1", Username: "birdwatcher", Email: "bird@test.com"}
	mockUseCase.On("Register", "birdwatcher", "bird@test.com", "password123", "").Return(created, nil)

	w := postForm(router, "/signup", url.Values{
		"username": {"birdwatcher"},
		"email":    {"bird@test.com"},
		"password": {"password123"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	assert.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)

	mockUseCase.AssertExpectations(t)
}

func TestSignup_UsernameTaken(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	sessions := session.NewService("test-secret")
	handler := NewAuthHandler(mockUseCase, sessions, logger.New())

	router := setupTestRouter()
	router.POST("/signup", handler.Signup)

	mockUseCase.On("Register", "birdwatcher", "bird@test.com", "password123", "").
		Return(nil, errors.New("username already taken"))

	w := postForm(router, "/signup", url.Values{
		"username": {"birdwatcher"},
		"email":    {"bird@test.com"},
		"password": {"password123"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signup")
	mockUseCase.AssertExpectations(t)
}

func TestSignup_InvalidForm(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	sessions := session.NewService("test-secret")
	handler := NewAuthHandler(mockUseCase, sessions, logger.New())

	router := setupTestRouter()
	router.POST("/signup", handler.Signup)

	// password below the minimum length never reaches the use case
	w := postForm(router, "/signup", url.Values{
		"username": {"birdwatcher"},
		"email":    {"bird@test.com"},
		"password": {"abc"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	sessions := session.NewService("test-secret")
	handler := NewAuthHandler(mockUseCase, sessions, logger.New())

	router := setupTestRouter()
	router.POST("/login", handler.Login)

	user := &entity.User{ID: "user-1", Username: "birdwatcher"}
	mockUseCase.On("Authenticate", "birdwatcher", "password123").Return(user, nil)

	w := postForm(router, "/login", url.Values{
		"username": {"birdwatcher"},
		"password": {"password123"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	mockUseCase.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	sessions := session.NewService("test-secret")
	handler := NewAuthHandler(mockUseCase, sessions, logger.New())

	router := setupTestRouter()
	router.POST("/login", handler.Login)

	mockUseCase.On("Authenticate", "birdwatcher", "wrong").Return(nil, errors.New("invalid credentials"))

	w := postForm(router, "/login", url.Values{
		"username": {"birdwatcher"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "login")
	mockUseCase.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	sessions := session.NewService("test-secret")
	handler := NewAuthHandler(mockUseCase, sessions, logger.New())

	router := setupTestRouter()
	router.POST("/logout", handler.Logout)

	w := postForm(router, "/logout", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	assert.NotNil(t, sessionCookie)
	assert.Empty(t, sessionCookie.Value)
}
