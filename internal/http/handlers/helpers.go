package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/lenstube-reports/internal/http/handlers/common"
	"github.com/ignatzorin/lenstube-reports/internal/http/response"
)

// requireViewer достаёт id зрителя или сразу отвечает 401.
func requireViewer(c *gin.Context) (uuid.UUID, bool) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		response.Unauthorized(c, "требуется авторизация")
		return uuid.Nil, false
	}
	return userID, true
}
