package main

import (
	"fmt"
	"log"

	_ "docboard/docs"
	"docboard/internal/config"
	"docboard/internal/domain"
	"docboard/internal/email/noop"
	"docboard/internal/email/ses"
	"docboard/internal/handler"
	"docboard/internal/port"
	"docboard/internal/repository/postgres"
	"docboard/internal/router"
	"docboard/internal/service"
	"docboard/internal/state"
	s3storage "docboard/internal/storage/s3"
	"docboard/internal/viewparams"
)

// @title           Docboard API
// @version         1.0
// @description     Document review and dashboard workspace backend.
// @BasePath        /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	orgRepo := postgres.NewOrganizationRepo(db)
	dashRepo := postgres.NewDashboardRepo(db)
	docRepo := postgres.NewReviewDocumentRepo(db)
	typeRepo := postgres.NewDocumentTypeRepo(db)
	appRepo := postgres.NewApplicationRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize review outcome notifier
	var notifier port.ReviewNotifier
	switch cfg.Email.Provider {
	case "ses":
		notifier, err = ses.NewSESNotifier(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
	default:
		notifier = noop.NewNoopNotifier()
	}

	// Initialize the application state store and its view-param plumbing
	store := state.New(state.Snapshot{ActiveTab: domain.DefaultTab})
	binder := viewparams.NewBinder(store, viewparams.NewMemoryHistory())
	defer binder.Close()
	signer := viewparams.NewSigner(cfg.Share.Secret, cfg.Share.Issuer, cfg.Share.Expiry)

	// Initialize services
	orgSvc := service.NewOrganizationService(orgRepo)
	dashSvc := service.NewDashboardService(dashRepo)
	reviewSvc := service.NewReviewService(docRepo, s3Client, notifier, cfg.Email.ReviewerTo)
	fileSvc := service.NewFileService(docRepo, s3Client, &cfg.S3)
	workspaceSvc := service.NewWorkspaceService(store, binder, signer, orgRepo, dashRepo, typeRepo, appRepo, docRepo, cfg.Review.PageSize)

	// Initialize handlers
	orgH := handler.NewOrganizationHandler(orgSvc)
	dashH := handler.NewDashboardHandler(dashSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	fileH := handler.NewFileHandler(fileSvc)
	workspaceH := handler.NewWorkspaceHandler(workspaceSvc)
	exportH := handler.NewExportHandler(dashSvc, reviewSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(orgH, dashH, reviewH, fileH, workspaceH, exportH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
