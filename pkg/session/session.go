package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName carries the signed session token. Absence of the cookie means
// the visitor is anonymous.
const CookieName = "warbler_session"

const tokenLifetime = 7 * 24 * time.Hour

// Claims is the typed session payload: only the logged-in user's id.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey []byte
}

func NewService(secretKey string) *Service {
	return &Service{secretKey: []byte(secretKey)}
}

func (s *Service) GenerateToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// Login signs a session token for the user and sets the session cookie.
func (s *Service) Login(c *gin.Context, userID string) error {
	token, err := s.GenerateToken(userID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(tokenLifetime.Seconds()), "/", "", false, true)
	return nil
}

// Logout clears the session cookie.
func (s *Service) Logout(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

// CurrentUserID reads and validates the session cookie. It returns an empty
// string for anonymous visitors and for invalid or expired tokens.
func (s *Service) CurrentUserID(c *gin.Context) string {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return ""
	}

	claims, err := s.ValidateToken(token)
	if err != nil {
		return ""
	}
	return claims.UserID
}
