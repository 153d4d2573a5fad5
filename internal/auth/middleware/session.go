package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sfarfano/registro-horas/internal/session"
)

const (
	CtxPerson  = "person"
	CtxIsAdmin = "is_admin"
	CtxToken   = "session_token"
)

// WithSession resolves the bearer token into a session and injects
// the person and admin flag into the request context. Requests
// without a valid session are rejected.
func WithSession(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing session token"})
			return
		}

		sess, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid or expired session"})
			return
		}

		c.Set(CtxPerson, sess.Person)
		c.Set(CtxIsAdmin, sess.Admin)
		c.Set(CtxToken, sess.Token)
		c.Next()
	}
}

// AdminOnly gates a route group to the administrator. Must run after
// WithSession.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": "administrator only"})
			return
		}
		c.Next()
	}
}

// Person extracts the authenticated roster name from the context.
func Person(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxPerson))
}

// IsAdmin reports whether the request is authenticated as the admin.
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(CtxIsAdmin)
}

func bearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	// Fallback header for clients that cannot set Authorization.
	return strings.TrimSpace(c.GetHeader("X-Session-Token"))
}
