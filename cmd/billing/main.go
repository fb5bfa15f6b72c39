package main

import (
	"maison/internal/billing/handler"
	"maison/internal/billing/repository"
	"maison/internal/billing/service"
	"maison/internal/billing/validator"
	"maison/pkg/app"
	"maison/pkg/config"
)

const ServiceName = "billing"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	cfg.Log.Info("Starting Billing service")
	billService := initServices(cfg)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewBillHandler(billService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.BillService {
	billValidator := validator.NewBillValidator(cfg.Log)
	billRepo := repository.NewMongoBillRepository(cfg)
	billService := service.NewBillService(
		billRepo,
		billValidator,
		cfg,
	)

	cfg.Log.Info("Bill service initialized", "database", cfg.MongoDatabaseName)
	return billService
}
