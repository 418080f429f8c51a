package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/lenstube-reports/internal/http/handlers/common"
	"github.com/ignatzorin/lenstube-reports/internal/http/response"
	"github.com/ignatzorin/lenstube-reports/internal/models"
	"github.com/ignatzorin/lenstube-reports/internal/pkg/apperror"
	"github.com/ignatzorin/lenstube-reports/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(s *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: s}
}

type reasonsResponse struct {
	Default string               `json:"default"`
	Groups  []models.ReasonGroup `json:"groups"`
}

// ListReasons GET /report-reasons
func (h *ReportHandler) ListReasons(c *gin.Context) {
	response.Success(c, reasonsResponse{
		Default: models.DefaultReasonID,
		Groups:  models.ReasonGroups(),
	})
}

type createReportRequest struct {
	Reason string `json:"reason"`
}

// CreateReport POST /publications/:id/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, ok := requireViewer(c)
	if !ok {
		return
	}

	var req createReportRequest
	// Тело необязательно: без него отправляется причина по умолчанию.
	// Пустое chunked-тело приходит как io.EOF.
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.BadRequest(c, "некорректное тело запроса")
			return
		}
	}

	report, err := h.svc.ReportPublication(c.Request.Context(), service.ReportInput{
		ViewerID:      userID,
		PublicationID: c.Param("id"),
		ReasonID:      req.Reason,
		AccessToken:   common.LensAccessToken(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// DismissReport DELETE /publications/:id/reports/dialog
func (h *ReportHandler) DismissReport(c *gin.Context) {
	userID, ok := requireViewer(c)
	if !ok {
		return
	}

	if !h.svc.Dismiss(userID, c.Param("id")) {
		response.Error(c, apperror.ErrNoOpenDialog)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetReport GET /reports/:reportId
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, ok := requireViewer(c)
	if !ok {
		return
	}

	reportID, err := uuid.Parse(c.Param("reportId"))
	if err != nil {
		response.BadRequest(c, "некорректный идентификатор жалобы")
		return
	}

	report, err := h.svc.GetReport(c.Request.Context(), userID, reportID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, report)
}

// ListMyReports GET /reports
func (h *ReportHandler) ListMyReports(c *gin.Context) {
	userID, ok := requireViewer(c)
	if !ok {
		return
	}

	limit, offset := common.GetPagination(c)
	reports, err := h.svc.ListReports(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, reports, len(reports), limit, offset)
}
