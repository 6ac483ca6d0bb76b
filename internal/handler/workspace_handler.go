package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docboard/internal/service"
	"docboard/internal/state"
)

// WorkspaceHandler exposes the application state store over HTTP: snapshot
// reads, view-param navigation, organization selection, reset, share links.
type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// GetState handles GET /api/v1/workspace
// @Summary      Get the workspace snapshot
// @Tags         workspace
// @Produce      json
// @Success      200 {object} APIResponse{data=state.Snapshot}
// @Router       /workspace [get]
func (h *WorkspaceHandler) GetState(c *gin.Context) {
	RespondOK(c, h.workspaceService.State())
}

// Hydrate handles POST /api/v1/workspace/hydrate
// @Summary      Reload workspace entities from persistence
// @Tags         workspace
// @Produce      json
// @Success      200 {object} APIResponse{data=state.Snapshot}
// @Failure      500 {object} APIResponse
// @Router       /workspace/hydrate [post]
func (h *WorkspaceHandler) Hydrate(c *gin.Context) {
	if err := h.workspaceService.Hydrate(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.workspaceService.State())
}

// SetViewParams handles PUT /api/v1/workspace/view
// @Summary      Apply view parameters
// @Description  Applies tab/dashboard/panel/doc query values to the store; malformed values fall back to defaults
// @Tags         workspace
// @Produce      json
// @Param        tab query string false "Active tab" Enums(dashboard, documents, review, admin)
// @Param        dashboard query string false "Active dashboard UUID"
// @Param        panel query string false "Active sidebar panel" Enums(organizations, document-types, applications)
// @Param        doc query string false "Open document ID"
// @Success      200 {object} APIResponse{data=state.Snapshot}
// @Router       /workspace/view [put]
func (h *WorkspaceHandler) SetViewParams(c *gin.Context) {
	if err := h.workspaceService.SetViewParams(c.Request.URL.Query()); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.workspaceService.State())
}

// SelectOrganization handles PUT /api/v1/workspace/organization/:id
// @Summary      Select the current organization
// @Description  Switches the current organization and swaps in its dashboard list
// @Tags         workspace
// @Produce      json
// @Param        id path string true "Organization UUID"
// @Success      200 {object} APIResponse{data=state.Snapshot}
// @Failure      404 {object} APIResponse
// @Router       /workspace/organization/{id} [put]
func (h *WorkspaceHandler) SelectOrganization(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid organization ID")
		return
	}

	if err := h.workspaceService.SelectOrganization(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.workspaceService.State())
}

// Reset handles POST /api/v1/workspace/reset
// @Summary      Reset the workspace to its initial snapshot
// @Tags         workspace
// @Produce      json
// @Success      200 {object} APIResponse{data=state.Snapshot}
// @Router       /workspace/reset [post]
func (h *WorkspaceHandler) Reset(c *gin.Context) {
	h.workspaceService.Reset()
	RespondOK(c, h.workspaceService.State())
}

// ApplyPatch handles PATCH /api/v1/workspace
// @Summary      Apply a partial state patch
// @Description  Nil fields are untouched; patches touching entity collections are validated whole
// @Tags         workspace
// @Accept       json
// @Produce      json
// @Param        request body state.Patch true "Patch"
// @Success      200 {object} APIResponse{data=state.Snapshot}
// @Failure      422 {object} APIResponse
// @Router       /workspace [patch]
func (h *WorkspaceHandler) ApplyPatch(c *gin.Context) {
	var patch state.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "patch payload is malformed")
		return
	}

	if err := h.workspaceService.ApplyPatch(patch); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.workspaceService.State())
}

// CreateShareLink handles POST /api/v1/workspace/share
// @Summary      Create a signed share link for the current view
// @Tags         workspace
// @Produce      json
// @Success      200 {object} APIResponse{data=ShareLinkResponse}
// @Router       /workspace/share [post]
func (h *WorkspaceHandler) CreateShareLink(c *gin.Context) {
	token, err := h.workspaceService.CreateShareLink()
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"token": token})
}

// ResolveShareLink handles POST /api/v1/workspace/share/:token
// @Summary      Resolve a share link and apply its view
// @Tags         workspace
// @Produce      json
// @Param        token path string true "Share token"
// @Success      200 {object} APIResponse{data=state.Snapshot}
// @Failure      400 {object} APIResponse
// @Router       /workspace/share/{token} [post]
func (h *WorkspaceHandler) ResolveShareLink(c *gin.Context) {
	if _, err := h.workspaceService.ResolveShareLink(c.Param("token")); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, h.workspaceService.State())
}
