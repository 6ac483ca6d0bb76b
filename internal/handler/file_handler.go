package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docboard/internal/domain"
	"docboard/internal/service"
)

// FileHandler handles document upload/download proxy endpoints.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload handles POST /api/v1/files
// @Summary      Upload a document
// @Description  Multipart upload; the extracted field set travels as a JSON form field since extraction happens upstream
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Document file (pdf, png, jpg)"
// @Param        document_type formData string true "Document type"
// @Param        confidence formData number false "Overall extraction confidence"
// @Param        extracted_data formData string false "Extracted fields as JSON array"
// @Success      201 {object} APIResponse{data=domain.ReviewDocument}
// @Failure      400 {object} APIResponse
// @Failure      413 {object} APIResponse
// @Router       /files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	defer file.Close()

	documentType := c.PostForm("document_type")
	if documentType == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document_type is required")
		return
	}

	confidence := 0.0
	if v := c.PostForm("confidence"); v != "" {
		confidence, err = strconv.ParseFloat(v, 64)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "confidence must be a number")
			return
		}
	}

	var extracted []domain.ExtractedField
	if raw := c.PostForm("extracted_data"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "extracted_data must be a JSON array of fields")
			return
		}
	}

	doc, err := h.fileService.Ingest(c.Request.Context(), &service.IngestDocumentInput{
		File:          file,
		Header:        header,
		DocumentType:  documentType,
		Confidence:    confidence,
		ExtractedData: extracted,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, doc)
}

// Download handles GET /api/v1/files/:id
// @Summary      Download a document
// @Description  Proxies the document bytes from object storage
// @Tags         files
// @Produce      application/octet-stream
// @Param        id path string true "Document ID"
// @Success      200 {file} binary
// @Failure      404 {object} APIResponse
// @Failure      502 {object} APIResponse
// @Router       /files/{id} [get]
func (h *FileHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	out, err := h.fileService.Download(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.FileName))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

// Delete handles DELETE /api/v1/files/:id
// @Summary      Delete a document
// @Description  Removes the stored object and its review queue entry
// @Tags         files
// @Produce      json
// @Param        id path string true "Document ID"
// @Success      200 {object} APIResponse{data=MessageResponse}
// @Failure      404 {object} APIResponse
// @Router       /files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "document deleted"})
}

// PresignedURL handles GET /api/v1/files/:id/url
// @Summary      Get a presigned download URL
// @Tags         files
// @Produce      json
// @Param        id path string true "Document ID"
// @Success      200 {object} APIResponse{data=PresignedURLResponse}
// @Failure      404 {object} APIResponse
// @Router       /files/{id}/url [get]
func (h *FileHandler) PresignedURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	url, err := h.fileService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}
