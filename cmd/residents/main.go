package main

import (
	"maison/internal/residents/handler"
	"maison/internal/residents/repository"
	"maison/internal/residents/service"
	"maison/internal/residents/validator"
	"maison/pkg/app"
	"maison/pkg/auth"
	"maison/pkg/config"
)

const ServiceName = "residents"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	cfg.Log.Info("Starting Residents service")
	residentService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewResidentHandler(residentService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ResidentService {
	residentValidator := validator.NewResidentValidator()
	residentRepo := repository.NewMongoResidentRepository(cfg)
	signer := auth.NewSigner(cfg.SessionSecret, cfg.SessionTTL)
	residentService := service.NewResidentService(
		residentRepo,
		residentValidator,
		signer,
		cfg,
	)

	cfg.Log.Info("Resident service initialized", "database", cfg.MongoDatabaseName)
	return residentService
}
