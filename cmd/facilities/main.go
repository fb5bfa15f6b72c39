package main

import (
	"maison/internal/facilities/handler"
	"maison/internal/facilities/repository"
	"maison/internal/facilities/service"
	"maison/internal/facilities/validator"
	"maison/pkg/app"
	"maison/pkg/config"
)

const ServiceName = "facilities"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	cfg.Log.Info("Starting Facilities service")
	facilityService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewFacilityHandler(facilityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.FacilityService {
	facilityValidator := validator.NewFacilityValidator(cfg.Log)
	facilityRepo := repository.NewMongoFacilityRepository(cfg)
	facilityService := service.NewFacilityService(
		facilityRepo,
		facilityValidator,
		cfg,
	)

	cfg.Log.Info("Facility service initialized", "database", cfg.MongoDatabaseName)
	return facilityService
}
