package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/lenstube-reports/internal/http/response"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey      = "userID"
	ContextLensTokenKey   = "lensAccessToken"
	LensAccessTokenHeader = "X-Lens-Access-Token"
)

// AccessParser проверяет access токен и возвращает id зрителя.
type AccessParser interface {
	ParseAccess(token string) (uuid.UUID, error)
}

// AuthMiddleware проверяет JWT access токен. Токен Lens, если он пришёл,
// кладётся в контекст как есть: его проверяет сам Lens.
func AuthMiddleware(tokens AccessParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, "требуется авторизация")
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		userID, err := tokens.ParseAccess(raw)
		if err != nil || userID == uuid.Nil {
			response.Unauthorized(c, "токен невалиден")
			return
		}

		c.Set(ContextUserIDKey, userID)
		if lensToken := strings.TrimSpace(c.GetHeader(LensAccessTokenHeader)); lensToken != "" {
			c.Set(ContextLensTokenKey, lensToken)
		}
		c.Next()
	}
}
