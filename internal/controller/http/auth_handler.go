package http

import (
	"fmt"
	"net/http"

	"warbler/internal/usecase"
	"warbler/pkg/flash"
	"warbler/pkg/logger"
	"warbler/pkg/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users    usecase.UserUseCase
	sessions *session.Service
	logger   *logger.Logger
}

func NewAuthHandler(users usecase.UserUseCase, sessions *session.Service, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

type SignupForm struct {
	Username string `form:"username" binding:"required,max=50"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
	ImageURL string `form:"image_url"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	render(c, h.users, http.StatusOK, "signup.html", nil)
}

// Signup creates the user, logs them in, and sends them home. A duplicate
// username or email re-presents the form with a flash instead of erroring.
func (h *AuthHandler) Signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Add(c, flash.CategoryDanger, "Please fill out the form correctly.")
		render(c, h.users, http.StatusOK, "signup.html", gin.H{"Form": form})
		return
	}

	user, err := h.users.Register(form.Username, form.Email, form.Password, form.ImageURL)
	if err != nil {
		switch err.Error() {
		case "username already taken":
			flash.Add(c, flash.CategoryDanger, "Username already taken")
		case "user with this email already exists":
			flash.Add(c, flash.CategoryDanger, "Email already taken")
		default:
			h.logger.Error("Failed to register user: %v", err)
			flash.Add(c, flash.CategoryDanger, "Failed to create account.")
		}
		render(c, h.users, http.StatusOK, "signup.html", gin.H{"Form": form})
		return
	}

	if err := h.sessions.Login(c, user.ID); err != nil {
		h.logger.Error("Failed to create session: %v", err)
		flash.Add(c, flash.CategoryDanger, "Something went wrong, please log in.")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, h.users, http.StatusOK, "login.html", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		flash.Add(c, flash.CategoryDanger, "Invalid credentials.")
		render(c, h.users, http.StatusOK, "login.html", gin.H{"Form": form})
		return
	}

	user, err := h.users.Authenticate(form.Username, form.Password)
	if err != nil {
		flash.Add(c, flash.CategoryDanger, "Invalid credentials.")
		render(c, h.users, http.StatusOK, "login.html", gin.H{"Form": form})
		return
	}

	if err := h.sessions.Login(c, user.ID); err != nil {
		h.logger.Error("Failed to create session: %v", err)
		flash.Add(c, flash.CategoryDanger, "Something went wrong, please try again.")
		render(c, h.users, http.StatusOK, "login.html", gin.H{"Form": form})
		return
	}

	flash.Add(c, flash.CategorySuccess, fmt.Sprintf("Hello, %s!", user.Username))
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c)
	flash.Add(c, flash.CategorySuccess, "Successfully logged out")
	c.Redirect(http.StatusSeeOther, "/login")
}
