package handler

import (
	"docboard/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// CreateOrganizationRequest represents the create organization request body.
type CreateOrganizationRequest struct {
	Name       string                                          `json:"name" binding:"required" example:"Acme Lending"`
	Logo       string                                          `json:"logo" binding:"required" example:"https://cdn.example.com/acme.png"`
	Categories []string                                        `json:"categories" example:"intake,underwriting"`
	Steps      map[domain.DocTypeKey][]domain.FileMetadataStep `json:"steps"`
}

// UpdateOrganizationRequest represents the update organization request body.
type UpdateOrganizationRequest struct {
	Name            string   `json:"name" binding:"required" example:"Acme Lending"`
	Logo            string   `json:"logo" binding:"required" example:"https://cdn.example.com/acme.png"`
	CurrentCategory string   `json:"current_category" example:"intake"`
	CurrentStep     int      `json:"current_step" example:"0"`
	Categories      []string `json:"categories" example:"intake,underwriting"`
}

// UpdateStepsRequest represents the replace-pipeline request body.
type UpdateStepsRequest struct {
	Steps []domain.FileMetadataStep `json:"steps" binding:"required"`
}

// CreateDashboardRequest represents the create/update dashboard request body.
type CreateDashboardRequest struct {
	Name  string                 `json:"name" binding:"required" example:"Quarterly Overview"`
	Items []domain.DashboardItem `json:"items"`
}

// EditFieldRequest represents the single-field edit request body.
type EditFieldRequest struct {
	Name  string `json:"name" binding:"required" example:"total"`
	Value string `json:"value" example:"1200.00"`
}

// --- Response Types ---

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// PresignedURLResponse represents a presigned download URL response.
type PresignedURLResponse struct {
	URL string `json:"url" example:"https://s3.amazonaws.com/docboard-uploads/...?X-Amz-Signature=..."`
}

// ShareLinkResponse represents a signed share token response.
type ShareLinkResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
