package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docboard/internal/service"
)

// DashboardHandler handles dashboard project endpoints.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// List handles GET /api/v1/organizations/:id/dashboards
// @Summary      List dashboards
// @Description  Lists dashboard projects for an organization in insertion order
// @Tags         dashboards
// @Produce      json
// @Param        id path string true "Organization UUID"
// @Success      200 {object} APIResponse{data=[]domain.DashboardProject}
// @Failure      500 {object} APIResponse
// @Router       /organizations/{id}/dashboards [get]
func (h *DashboardHandler) List(c *gin.Context) {
	orgUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid organization ID")
		return
	}

	projects, err := h.dashboardService.List(c.Request.Context(), orgUUID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, projects)
}

// Create handles POST /api/v1/organizations/:id/dashboards
// @Summary      Create dashboard
// @Tags         dashboards
// @Accept       json
// @Produce      json
// @Param        id path string true "Organization UUID"
// @Param        request body CreateDashboardRequest true "Dashboard"
// @Success      201 {object} APIResponse{data=domain.DashboardProject}
// @Failure      422 {object} APIResponse
// @Router       /organizations/{id}/dashboards [post]
func (h *DashboardHandler) Create(c *gin.Context) {
	orgUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid organization ID")
		return
	}

	var req CreateDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	project, err := h.dashboardService.Create(c.Request.Context(), &service.CreateDashboardInput{
		OrgUUID: orgUUID,
		Name:    req.Name,
		Items:   req.Items,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, project)
}

// Update handles PUT /api/v1/organizations/:id/dashboards/:dashboardId
// @Summary      Update dashboard
// @Tags         dashboards
// @Accept       json
// @Produce      json
// @Param        id path string true "Organization UUID"
// @Param        dashboardId path string true "Dashboard UUID"
// @Param        request body CreateDashboardRequest true "Dashboard"
// @Success      200 {object} APIResponse{data=domain.DashboardProject}
// @Failure      404 {object} APIResponse
// @Router       /organizations/{id}/dashboards/{dashboardId} [put]
func (h *DashboardHandler) Update(c *gin.Context) {
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

	var req CreateDashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	project, err := h.dashboardService.Update(c.Request.Context(), &service.UpdateDashboardInput{
		OrgUUID:     orgUUID,
		ProjectUUID: projectUUID,
		Name:        req.Name,
		Items:       req.Items,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, project)
}

// Delete handles DELETE /api/v1/organizations/:id/dashboards/:dashboardId
// @Summary      Delete dashboard
// @Tags         dashboards
// @Produce      json
// @Param        id path string true "Organization UUID"
// @Param        dashboardId path string true "Dashboard UUID"
// @Success      200 {object} APIResponse{data=MessageResponse}
// @Failure      404 {object} APIResponse
// @Router       /organizations/{id}/dashboards/{dashboardId} [delete]
func (h *DashboardHandler) Delete(c *gin.Context) {
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

	if err := h.dashboardService.Delete(c.Request.Context(), orgUUID, projectUUID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "dashboard deleted"})
}
