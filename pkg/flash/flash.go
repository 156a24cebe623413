package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Flash messages are one-shot notices surfaced on the next rendered page.
// They live in a short cookie so they survive the redirect that almost every
// mutating handler ends with.

const cookieName = "warbler_flash"

const pendingKey = "flash_pending"

// Categories mirror the bootstrap alert classes the templates use.
const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
)

type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Add queues a flash message for the next rendered page.
func Add(c *gin.Context, category, text string) {
	messages := pending(c)
	messages = append(messages, Message{Category: category, Text: text})
	c.Set(pendingKey, messages)

	encoded, err := encode(messages)
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, encoded, 300, "/", "", false, true)
}

// Take returns the queued flash messages and clears them. Messages added
// earlier in the same request are returned too, so a handler that flashes
// and renders without redirecting still shows its notice.
func Take(c *gin.Context) []Message {
	messages := pending(c)

	if raw, err := c.Cookie(cookieName); err == nil && raw != "" {
		if fromCookie, err := decode(raw); err == nil {
			messages = append(fromCookie, messages...)
		}
		c.SetCookie(cookieName, "", -1, "/", "", false, true)
	}

	c.Set(pendingKey, []Message(nil))
	return messages
}

func pending(c *gin.Context) []Message {
	if v, ok := c.Get(pendingKey); ok {
		if messages, ok := v.([]Message); ok {
			return messages
		}
	}
	return nil
}

func encode(messages []Message) (string, error) {
	data, err := json.Marshal(messages)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

func decode(raw string) ([]Message, error) {
	data, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
