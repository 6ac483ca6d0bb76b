package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docboard/internal/service"
)

// ReviewHandler handles review queue endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ListPending handles GET /api/v1/review
// @Summary      List pending documents
// @Tags         review
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.ReviewDocument,meta=PagMeta}
// @Failure      500 {object} APIResponse
// @Router       /review [get]
func (h *ReviewHandler) ListPending(c *gin.Context) {
	offset, limit := parsePagination(c)

	docs, total, err := h.reviewService.ListPending(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Open handles POST /api/v1/review/:id/open
// @Summary      Open a review session
// @Description  Acquires the document preview and working field set; only pending documents can be opened
// @Tags         review
// @Produce      json
// @Param        id path string true "Document ID"
// @Success      200 {object} APIResponse{data=service.OpenReviewOutput}
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Router       /review/{id}/open [post]
func (h *ReviewHandler) Open(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	out, err := h.reviewService.Open(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, out)
}

// EditField handles PATCH /api/v1/review/:id/fields
// @Summary      Edit one extracted field
// @Description  Changes exactly one field value; names, types, and confidences are fixed at extraction
// @Tags         review
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID"
// @Param        request body EditFieldRequest true "Field edit"
// @Success      200 {object} APIResponse{data=[]domain.ExtractedField}
// @Failure      400 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Router       /review/{id}/fields [patch]
func (h *ReviewHandler) EditField(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var req EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "field name is required")
		return
	}

	fields, err := h.reviewService.EditField(c.Request.Context(), id, req.Name, req.Value)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, fields)
}

// Approve handles POST /api/v1/review/:id/approve
// @Summary      Approve a document
// @Description  Terminal: persists the edited field set as the canonical record and releases the preview
// @Tags         review
// @Produce      json
// @Param        id path string true "Document ID"
// @Success      200 {object} APIResponse{data=domain.ReviewDocument}
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Router       /review/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.reviewService.Approve(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Reject handles POST /api/v1/review/:id/reject
// @Summary      Reject a document
// @Description  Terminal: discards edits and releases the preview
// @Tags         review
// @Produce      json
// @Param        id path string true "Document ID"
// @Success      200 {object} APIResponse{data=domain.ReviewDocument}
// @Failure      404 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Router       /review/{id}/reject [post]
func (h *ReviewHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	doc, err := h.reviewService.Reject(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Close handles POST /api/v1/review/:id/close
// @Summary      Abandon a review session
// @Tags         review
// @Produce      json
// @Param        id path string true "Document ID"
// @Success      200 {object} APIResponse{data=MessageResponse}
// @Router       /review/{id}/close [post]
func (h *ReviewHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	h.reviewService.CloseSession(id)
	RespondOK(c, gin.H{"message": "session closed"})
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// atoiParam parses an integer path parameter.
func atoiParam(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}
