package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/lenstube-reports/internal/http/response"
)

// Идентификатор публикации Lens: "<profileId>-<pubId>", оба в hex.
var publicationIDPattern = regexp.MustCompile(`^0x[0-9a-fA-F]+-0x[0-9a-fA-F]+$`)

// PublicationIDValidator проверяет параметр пути с id публикации.
// Использование: router.GET("/publications/:id/collect-module", PublicationIDValidator("id"), h.Get)
func PublicationIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param(paramName)
		if id == "" {
			response.BadRequest(c, "параметр "+paramName+" обязателен")
			return
		}
		if !publicationIDPattern.MatchString(id) {
			response.BadRequest(c, "параметр "+paramName+" должен быть идентификатором публикации")
			return
		}
		c.Next()
	}
}
