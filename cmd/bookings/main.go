package main

import (
	"maison/internal/bookings/handler"
	"maison/internal/bookings/repository"
	"maison/internal/bookings/service"
	"maison/internal/bookings/validator"
	"maison/pkg/app"
	"maison/pkg/config"
	"maison/pkg/kafka"
	kafka_config "maison/pkg/kafka/config"
	kafka_middleware "maison/pkg/kafka/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	serverApp := app.NewApplication()

	producer := initProducer(cfg)
	if producer != nil {
		serverApp.OnShutdown(func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Warn("Failed to close Kafka producer", "error", err)
			}
		})
	}

	bookingService := initServices(cfg, producer)
	serverApp.SetApp(cfg, handler.NewBookingHandler(bookingService, cfg.Log))
	serverApp.Run()
}

// initProducer returns nil when Kafka is not configured; bookings then
// run without emitting events.
func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Warn("Kafka disabled", "reason", err)
		return nil
	}

	producer, err := kafka.NewProducer(kafkaCfg, kafka.TopicBookingEvents, kafka.TopicDLQ, cfg.Log)
	if err != nil {
		cfg.Log.Warn("Kafka disabled", "reason", err)
		return nil
	}

	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Kafka producer initialized", "topic", kafka.TopicBookingEvents)
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)

	var events service.EventPublisher
	if producer != nil {
		events = producer
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingValidator,
		events,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
