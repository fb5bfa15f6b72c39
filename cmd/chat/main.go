package main

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"maison/internal/chat"
	"maison/internal/chat/handler"
	"maison/internal/chat/repository"
	"maison/internal/chat/validator"
	"maison/pkg/app"
	"maison/pkg/auth"
	"maison/pkg/config"
	"maison/pkg/kafka"
	kafka_config "maison/pkg/kafka/config"
	kafka_middleware "maison/pkg/kafka/middleware"
)

const ServiceName = "chat"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	cfg.Log.Info("Starting Chat service")

	messageRepo := repository.NewMongoMessageRepository(cfg)
	messageValidator := validator.NewMessageValidator()

	serverApp := app.NewApplication()

	kafkaCfg, kafkaErr := kafka_config.Load()

	var producer *kafka.Producer
	if kafkaErr == nil {
		var err error
		producer, err = kafka.NewProducer(kafkaCfg, kafka.TopicChatMessages, kafka.TopicDLQ, cfg.Log)
		if err != nil {
			cfg.Log.Warn("Kafka producer disabled", "reason", err)
		} else {
			producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		}
	} else {
		cfg.Log.Warn("Kafka disabled", "reason", kafkaErr)
	}

	var events chat.EventPublisher
	if producer != nil {
		events = producer
		serverApp.OnShutdown(func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Warn("Failed to close Kafka producer", "error", err)
			}
		})
	}

	hub := chat.NewHub(messageRepo, messageValidator, events, cfg)

	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)
	serverApp.OnShutdown(stopHub)

	if kafkaErr == nil {
		// Every instance must see every message, so each one joins its
		// own consumer group.
		groupID := ServiceName + "-" + uuid.NewString()
		consumer, err := kafka.NewConsumer(kafkaCfg, kafka.TopicChatMessages, groupID, kafka.TopicDLQ, hub.HandleRemote, cfg.Log)
		if err != nil {
			cfg.Log.Warn("Kafka consumer disabled", "reason", err)
		} else {
			consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
			consumerCtx, stopConsumer := context.WithCancel(context.Background())
			go func() {
				if err := consumer.Start(consumerCtx); err != nil {
					cfg.Log.Error("Chat consumer stopped", "error", err)
				}
			}()
			serverApp.OnShutdown(func() {
				stopConsumer()
				if err := consumer.Close(); err != nil {
					cfg.Log.Warn("Failed to close Kafka consumer", "error", err)
				}
			})
		}
	}

	signer := auth.NewSigner(cfg.SessionSecret, cfg.SessionTTL)
	messageHandler := handler.NewMessageHandler(messageRepo, hub, signer, cfg.Log)
	serverApp.SetApp(cfg, messageHandler)
	serverApp.MountRaw("/ws/chat", http.HandlerFunc(messageHandler.ServeWS))
	serverApp.Run()
}
