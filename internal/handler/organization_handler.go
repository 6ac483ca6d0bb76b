package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docboard/internal/domain"
	"docboard/internal/service"
)

// OrganizationHandler handles organization management endpoints.
type OrganizationHandler struct {
	orgService service.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService service.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

// List handles GET /api/v1/organizations
// @Summary      List organizations
// @Description  Lists all organizations in fetch order; the first is the default current organization
// @Tags         organizations
// @Produce      json
// @Success      200 {object} APIResponse{data=[]domain.Organization}
// @Failure      500 {object} APIResponse
// @Router       /organizations [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.orgService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, orgs)
}

// GetByUUID handles GET /api/v1/organizations/:id
// @Summary      Get organization
// @Tags         organizations
// @Produce      json
// @Param        id path string true "Organization UUID"
// @Success      200 {object} APIResponse{data=domain.Organization}
// @Failure      404 {object} APIResponse
// @Router       /organizations/{id} [get]
func (h *OrganizationHandler) GetByUUID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid organization ID")
		return
	}

	org, err := h.orgService.GetByUUID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, org)
}

// Create handles POST /api/v1/organizations
// @Summary      Create organization
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        request body CreateOrganizationRequest true "Organization"
// @Success      201 {object} APIResponse{data=domain.Organization}
// @Failure      422 {object} APIResponse
// @Router       /organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name and logo are required")
		return
	}

	org, err := h.orgService.Create(c.Request.Context(), &service.CreateOrganizationInput{
		Name:       req.Name,
		Logo:       req.Logo,
		Categories: req.Categories,
		Steps:      req.Steps,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, org)
}

// Update handles PUT /api/v1/organizations/:id
// @Summary      Update organization
// @Description  Updates profile and navigation position; the merged entity is validated whole
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        id path string true "Organization UUID"
// @Param        request body UpdateOrganizationRequest true "Organization"
// @Success      200 {object} APIResponse{data=domain.Organization}
// @Failure      404 {object} APIResponse
// @Failure      422 {object} APIResponse
// @Router       /organizations/{id} [put]
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid organization ID")
		return
	}

	var req UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name and logo are required")
		return
	}

	org, err := h.orgService.Update(c.Request.Context(), &service.UpdateOrganizationInput{
		UUID:            id,
		Name:            req.Name,
		Logo:            req.Logo,
		CurrentCategory: req.CurrentCategory,
		CurrentStep:     req.CurrentStep,
		Categories:      req.Categories,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, org)
}

// UpdateSteps handles PUT /api/v1/organizations/:id/steps/:key
// @Summary      Replace a document-type pipeline
// @Description  Replaces the ordered step list for one document-type key; keys outside the supported set are rejected
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        id path string true "Organization UUID"
// @Param        key path string true "Document type key" Enums(invoice, mortgage, commission)
// @Param        request body UpdateStepsRequest true "Steps"
// @Success      200 {object} APIResponse{data=domain.Organization}
// @Failure      422 {object} APIResponse
// @Router       /organizations/{id}/steps/{key} [put]
func (h *OrganizationHandler) UpdateSteps(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid organization ID")
		return
	}

	var req UpdateStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "steps payload is malformed")
		return
	}

	org, err := h.orgService.UpdateSteps(c.Request.Context(), id, domain.DocTypeKey(c.Param("key")), req.Steps)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, org)
}

// DuplicateMessages handles POST /api/v1/organizations/:id/steps/:key/:index/duplicate
// @Summary      Duplicate a step's chat messages
// @Description  Clones the step's message sequence with fresh uuids and timestamps
// @Tags         organizations
// @Produce      json
// @Param        id path string true "Organization UUID"
// @Param        key path string true "Document type key"
// @Param        index path int true "Step index"
// @Success      200 {object} APIResponse{data=domain.Organization}
// @Failure      404 {object} APIResponse
// @Router       /organizations/{id}/steps/{key}/{index}/duplicate [post]
func (h *OrganizationHandler) DuplicateMessages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid organization ID")
		return
	}
	index, err := atoiParam(c, "index")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_INDEX", "step index must be an integer")
		return
	}

	org, err := h.orgService.DuplicateMessages(c.Request.Context(), id, domain.DocTypeKey(c.Param("key")), index)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, org)
}
