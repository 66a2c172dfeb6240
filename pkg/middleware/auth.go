package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/log"
	"github.com/ahmed-sobhani/rag-chat-be-core/pkg/response"
)

const (
	// UserKey is the gin context key carrying the caller identity.
	UserKey = log.FieldUser

	HeaderAPIKey   = "x-api-key"
	HeaderUsername = "x-username"

	// DefaultUser is the sentinel identity used when no username header
	// is supplied.
	DefaultUser = "default"
)

// AuthMiddleware validates the static API key and resolves the caller
// identity from the username header. Identity is treated as already
// authenticated; this layer only gates access to the API itself.
type AuthMiddleware struct {
	apiKey string
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(apiKey string) *AuthMiddleware {
	return &AuthMiddleware{apiKey: apiKey}
}

// RequireAPIKey returns a Gin middleware that validates the x-api-key
// header and stores the caller identity in the request context.
func (m *AuthMiddleware) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderAPIKey)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			response.Unauthorized(c, "unauthorized API key")
			c.Abort()
			return
		}

		user := c.GetHeader(HeaderUsername)
		if user == "" {
			user = DefaultUser
		}
		c.Set(UserKey, user)

		c.Next()
	}
}

// GetUser extracts the caller identity from the Gin context.
func GetUser(c *gin.Context) string {
	if user, exists := c.Get(UserKey); exists {
		return user.(string)
	}
	return ""
}
