package handlers

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// setFlash queues a one-shot notification for the next rendered page.
func setFlash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookie, url.QueryEscape(category+"|"+message), 60, "/", "", false, true)
}

// takeFlash consumes a queued notification, clearing the cookie.
func takeFlash(c *gin.Context) (message, category string) {
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return "", ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", ""
	}
	parts := strings.SplitN(decoded, "|", 2)
	if len(parts) != 2 {
		return decoded, "success"
	}
	return parts[1], parts[0]
}
