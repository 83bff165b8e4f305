package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "shiptix_session"
	sessionIDKey  = "session_id"
)

// Session resolves the visitor's pipeline session from the header or the
// cookie, minting a new id when neither is present or well formed. The id
// is echoed in both so either transport keeps working.
func Session(ttlSeconds int, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			if v, err := c.Cookie(SessionCookie); err == nil {
				id = strings.TrimSpace(v)
			}
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(sessionIDKey, id)
		c.Header(SessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, ttlSeconds, "/", "", secure, true)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
