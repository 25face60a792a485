package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bestchance/orderdesk/internal/pkg/auth"
)

// SessionContextKey is a gin context key for the authenticated model.Session.
const SessionContextKey = "session"

// SessionRequired rejects requests without a signed-in operator.
func SessionRequired(store auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := store.Load(c.Request)
		if !ok || !session.Authenticated() {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}
