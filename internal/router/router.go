package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"docboard/internal/handler"
	"docboard/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	orgH *handler.OrganizationHandler,
	dashH *handler.DashboardHandler,
	reviewH *handler.ReviewHandler,
	fileH *handler.FileHandler,
	workspaceH *handler.WorkspaceHandler,
	exportH *handler.ExportHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Organization routes
	orgs := v1.Group("/organizations")
	orgs.GET("", orgH.List)
	orgs.POST("", orgH.Create)
	orgs.GET("/:id", orgH.GetByUUID)
	orgs.PUT("/:id", orgH.Update)
	orgs.PUT("/:id/steps/:key", orgH.UpdateSteps)
	orgs.POST("/:id/steps/:key/:index/duplicate", orgH.DuplicateMessages)

	// Dashboard routes (organization-scoped)
	orgs.GET("/:id/dashboards", dashH.List)
	orgs.POST("/:id/dashboards", dashH.Create)
	orgs.PUT("/:id/dashboards/:dashboardId", dashH.Update)
	orgs.DELETE("/:id/dashboards/:dashboardId", dashH.Delete)

	// Review routes
	review := v1.Group("/review")
	review.GET("", reviewH.ListPending)
	review.POST("/:id/open", reviewH.Open)
	review.PATCH("/:id/fields", reviewH.EditField)
	review.POST("/:id/approve", reviewH.Approve)
	review.POST("/:id/reject", reviewH.Reject)
	review.POST("/:id/close", reviewH.Close)

	// File routes
	files := v1.Group("/files")
	files.POST("", fileH.Upload)
	files.GET("/:id", fileH.Download)
	files.GET("/:id/url", fileH.PresignedURL)
	files.DELETE("/:id", fileH.Delete)

	// Workspace routes
	workspace := v1.Group("/workspace")
	workspace.GET("", workspaceH.GetState)
	workspace.PATCH("", workspaceH.ApplyPatch)
	workspace.POST("/hydrate", workspaceH.Hydrate)
	workspace.PUT("/view", workspaceH.SetViewParams)
	workspace.PUT("/organization/:id", workspaceH.SelectOrganization)
	workspace.POST("/reset", workspaceH.Reset)
	workspace.POST("/share", workspaceH.CreateShareLink)
	workspace.POST("/share/:token", workspaceH.ResolveShareLink)

	// Export routes
	export := v1.Group("/export")
	export.GET("/organizations/:id/dashboards/:dashboardId", exportH.Dashboard)
	export.GET("/review", exportH.ReviewQueue)

	return r
}
