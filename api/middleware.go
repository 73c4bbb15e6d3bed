package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lessoncast/auth"
)

const identityKey = "identity"

// sessionToken pulls the token from the Authorization header (Bearer scheme)
// or the session cookie.
func sessionToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	if cookie, err := c.Cookie("session"); err == nil {
		return cookie
	}
	return ""
}

// withIdentity resolves the session token, if any, and stashes the identity
// on the context. Requests without a valid session proceed anonymously.
func withIdentity(sessions *auth.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident := sessions.Verify(c.Request.Context(), sessionToken(c)); ident != nil {
			c.Set(identityKey, ident)
		}
		c.Next()
	}
}

// requireEditor aborts unless the request carries an editor or admin session.
func requireEditor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !identity(c).CanEdit() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "editor access required"})
			return
		}
		c.Next()
	}
}

// identity returns the authenticated identity for the request, or nil.
func identity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*auth.Identity)
	return ident
}
