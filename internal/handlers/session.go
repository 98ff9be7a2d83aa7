package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookieName identifies a browser session
	SessionCookieName = "mp_session"

	sessionContextKey = "session_id"
)

// SessionMiddleware makes sure every request carries a session id, issuing a
// new cookie when the client has none or sends one that is not a uuid
func SessionMiddleware(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookieName)
		if err == nil {
			_, err = uuid.Parse(id)
		}
		if err != nil {
			id = uuid.NewString()
		}

		// Refresh on every request so the cookie outlives activity, not creation
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, id, int(ttl.Seconds()), "/", "", false, true)
		c.Set(sessionContextKey, id)
		c.Next()
	}
}

// SessionID returns the session id set by SessionMiddleware
func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
