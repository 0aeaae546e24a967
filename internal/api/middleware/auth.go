package middleware

import (
	"net/http"
	"net/url"

	"github.com/dancosta154/leadership-profile/internal/services"
	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the admin session token cookie.
const SessionCookie = "admin_session"

type AuthMiddleware struct {
	sessions *services.SessionService
}

func NewAuthMiddleware(sessions *services.SessionService) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireAdmin gates the admin routes. Requests without a live session
// are redirected to the login page before any handler runs.
func (am *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || !am.sessions.Validate(token) {
			flash := url.QueryEscape("error|Please log in to access the admin panel")
			c.SetCookie("flash", flash, 60, "/", "", false, true)
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}

		c.Set("adminToken", token)
		c.Next()
	}
}
