package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bloglist/internal/service"
)

const contextUserIDKey = "auth.userID"

// authRequired verifies the bearer token and stores the resolved user id on
// the request context. Requests without a valid token never reach the handler.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.Request)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrTokenInvalid.Error()})
			return
		}

		identity, err := h.tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrTokenInvalid.Error()})
			return
		}

		c.Set(contextUserIDKey, identity.UserID)
		c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, bool) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", false
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// callerID returns the authenticated user id attached by authRequired, or
// an empty string for anonymous requests.
func callerID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}
