package middleware

import (
	"net/http"
	"strings"

	"vidtube/internal/shared"
	"vidtube/pkg/response"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// TokenVerifier turns a bearer token into the caller identity.
type TokenVerifier interface {
	Verify(token string) (*shared.Actor, error)
}

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization header
// and stores the resulting actor for handlers.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Unauthorized request")
			c.Abort()
			return
		}

		actor, err := verifier.Verify(token)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Invalid access token")
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the actor when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if actor, err := verifier.Verify(token); err == nil {
				c.Set(actorKey, actor)
			}
		}
		c.Next()
	}
}

// ActorFromContext returns the authenticated actor or nil for anonymous callers.
func ActorFromContext(c *gin.Context) *shared.Actor {
	v, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	actor, _ := v.(*shared.Actor)
	return actor
}

// bearerToken reads "Authorization: Bearer <token>" and falls back to the
// accessToken cookie the web client sets.
func bearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Split(header, " ") // split by space , 0 is Bearer, 1 is token
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}
