package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"docboard/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles xlsx export endpoints.
type ExportHandler struct {
	dashboardService service.DashboardService
	reviewService    service.ReviewService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(dashboardService service.DashboardService, reviewService service.ReviewService) *ExportHandler {
	return &ExportHandler{dashboardService: dashboardService, reviewService: reviewService}
}

// Dashboard handles GET /api/v1/export/organizations/:id/dashboards/:dashboardId
// @Summary      Export a dashboard as xlsx
// @Description  One sheet per dashboard item with its data points
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id path string true "Organization UUID"
// @Param        dashboardId path string true "Dashboard UUID"
// @Success      200 {file} binary
// @Failure      404 {object} APIResponse
// @Router       /export/organizations/{id}/dashboards/{dashboardId} [get]
func (h *ExportHandler) Dashboard(c *gin.Context) {
	orgUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid organization ID")
		return
	}
	projectUUID, err := uuid.Parse(c.Param("dashboardId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid dashboard ID")
		return
	}

	f, filename, err := h.dashboardService.ExportWorkbook(c.Request.Context(), orgUUID, projectUUID)
	if err != nil {
		HandleError(c, err)
		return
	}
	writeWorkbook(c, f, filename)
}

// ReviewQueue handles GET /api/v1/export/review
// @Summary      Export the pending review queue as xlsx
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} binary
// @Failure      500 {object} APIResponse
// @Router       /export/review [get]
func (h *ExportHandler) ReviewQueue(c *gin.Context) {
	f, filename, err := h.reviewService.ExportQueue(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	writeWorkbook(c, f, filename)
}

func writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		RespondError(c, http.StatusInternalServerError, "EXPORT_FAILED", "failed to write workbook")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
