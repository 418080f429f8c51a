package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/lenstube-reports/internal/http/response"
	"github.com/ignatzorin/lenstube-reports/internal/models"
	"github.com/ignatzorin/lenstube-reports/internal/service"
)

type CollectHandler struct {
	svc *service.CollectModuleService
}

func NewCollectHandler(s *service.CollectModuleService) *CollectHandler {
	return &CollectHandler{svc: s}
}

type collectModuleResponse struct {
	Type     models.CollectModuleType     `json:"type"`
	Settings models.CollectModuleSettings `json:"settings"`
}

// GetCollectModule GET /publications/:id/collect-module
// ?refresh=true сбрасывает кэш и перечитывает модуль из Lens.
func (h *CollectHandler) GetCollectModule(c *gin.Context) {
	if refresh, _ := strconv.ParseBool(c.Query("refresh")); refresh {
		h.svc.Invalidate(c.Param("id"))
	}
	module, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, collectModuleResponse{
		Type:     module.ModuleType(),
		Settings: models.CollectModuleSettings{Module: module},
	})
}
