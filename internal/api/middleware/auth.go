package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/shelfmark/shelfmark/pkg/response"
)

// ContextUserKey is where the trusted acting-user id lands in the gin
// context. Empty / absent means anonymous.
const ContextUserKey = "acting_user_id"

// UserID returns the acting-user id, or "" for anonymous callers.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}

func parseBearer(c *gin.Context, secret string) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	raw := strings.TrimPrefix(h, "Bearer ")
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return "", false
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}
	return sub, true
}

// Auth requires a valid bearer token and stores the subject as the acting
// user. The identity provider that minted the token is trusted as given.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sub, ok := parseBearer(c, secret)
		if !ok {
			response.Unauthorized(c, "authentication required")
			c.Abort()
			return
		}
		c.Set(ContextUserKey, sub)
		c.Next()
	}
}

// OptionalAuth picks up the acting user when a valid token is present and
// lets anonymous callers through. Read paths use it so visibility rules can
// distinguish a viewer from nobody.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sub, ok := parseBearer(c, secret); ok {
			c.Set(ContextUserKey, sub)
		}
		c.Next()
	}
}
