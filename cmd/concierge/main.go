package main

import (
	"maison/internal/concierge/handler"
	"maison/internal/concierge/service"
	"maison/pkg/app"
	"maison/pkg/config"
)

const ServiceName = "concierge"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	cfg.Client.SetFacilities(cfg.FacilitiesURL)
	cfg.Client.SetBookings(cfg.BookingsURL)

	cfg.Log.Info("Starting Concierge service",
		"facilities_url", cfg.FacilitiesURL,
		"bookings_url", cfg.BookingsURL,
	)

	conciergeService := service.NewConciergeService(cfg.Client, cfg.Log)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, handler.NewFlowHandler(conciergeService, cfg.Log))
	serverApp.Run()
}
