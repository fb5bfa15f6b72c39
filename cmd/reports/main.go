package main

import (
	"github.com/julienschmidt/httprouter"

	announcementshandler "maison/internal/announcements/handler"
	announcementsrepository "maison/internal/announcements/repository"
	announcementsservice "maison/internal/announcements/service"
	announcementsvalidator "maison/internal/announcements/validator"
	"maison/internal/reports/handler"
	"maison/internal/reports/repository"
	"maison/internal/reports/service"
	"maison/internal/reports/validator"
	"maison/pkg/app"
	"maison/pkg/config"
	"maison/pkg/contracts"
)

const ServiceName = "reports"

// compositeHandler mounts the reports and announcements routes on the
// same router; both domains share this binary.
type compositeHandler struct {
	handlers []contracts.Handler
}

func (c *compositeHandler) RegisterRoutes(router *httprouter.Router) {
	for _, h := range c.handlers {
		h.RegisterRoutes(router)
	}
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	cfg.Log.Info("Starting Reports service")

	reportService := initReportService(cfg)
	announcementService := initAnnouncementService(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, &compositeHandler{
		handlers: []contracts.Handler{
			handler.NewReportHandler(reportService, cfg.Log),
			announcementshandler.NewAnnouncementHandler(announcementService, cfg.Log),
		},
	})
	serverApp.Run()
}

func initReportService(cfg *config.Config) service.ReportService {
	reportValidator := validator.NewReportValidator()
	reportRepo := repository.NewMongoReportRepository(cfg)
	reportService := service.NewReportService(
		reportRepo,
		reportValidator,
		cfg,
	)

	cfg.Log.Info("Report service initialized", "database", cfg.MongoDatabaseName)
	return reportService
}

func initAnnouncementService(cfg *config.Config) announcementsservice.AnnouncementService {
	announcementValidator := announcementsvalidator.NewAnnouncementValidator()
	announcementRepo := announcementsrepository.NewMongoAnnouncementRepository(cfg)
	announcementService := announcementsservice.NewAnnouncementService(
		announcementRepo,
		announcementValidator,
		cfg,
	)

	cfg.Log.Info("Announcement service initialized", "database", cfg.MongoDatabaseName)
	return announcementService
}
