package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/bujo-tasks/internal/constants"
	apierrors "github.com/yukikurage/bujo-tasks/internal/errors"
)

// ForwardedUserHeader carries the identity established by the upstream proxy
const ForwardedUserHeader = "X-Forwarded-User"

// RequireAuth resolves the requester from the session. On the first request
// of a session the identity forwarded by the upstream proxy is stored in it.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, _ := session.Get(constants.SessionKeyUsername).(string)

		if username == "" {
			username = strings.TrimSpace(c.GetHeader(ForwardedUserHeader))
			if username == "" {
				apierrors.Unauthorized(c, "")
				c.Abort()
				return
			}
			session.Set(constants.SessionKeyUsername, username)
			if err := session.Save(); err != nil {
				apierrors.InternalError(c, "Failed to save session")
				c.Abort()
				return
			}
		}

		// Store requester in context for easy access in handlers
		c.Set(constants.ContextKeyRequester, username)
		c.Next()
	}
}

// GetRequester retrieves the current username from context
func GetRequester(c *gin.Context) (string, bool) {
	v, exists := c.Get(constants.ContextKeyRequester)
	if !exists {
		return "", false
	}
	username, ok := v.(string)
	return username, ok && username != ""
}
