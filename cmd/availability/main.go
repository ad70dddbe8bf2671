package main

import (
	"context"
	"time"

	availengine "hotelops/internal/availability/engine"
	"hotelops/internal/availability/events"
	"hotelops/internal/availability/guard"
	"hotelops/internal/availability/handler"
	"hotelops/internal/availability/policy"
	"hotelops/internal/availability/service"
	"hotelops/internal/availability/store"
	mongostore "hotelops/internal/availability/store/mongo"
	"hotelops/internal/availability/validator"
	"hotelops/pkg/app"
	"hotelops/pkg/config"
	"hotelops/pkg/kafka"
	kafkaconfig "hotelops/pkg/kafka/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Availability service")

	serverApp := app.NewApplication()

	availabilityService, eng := initServices(cfg, serverApp)
	serverApp.SetApp(cfg, handler.NewAvailabilityHandler(availabilityService, cfg.Log))

	if cfg.ApprovalsEnabled {
		startApprovalsConsumer(cfg, serverApp, eng)
	}

	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) (service.AvailabilityService, *availengine.Engine) {
	needsMongo := cfg.GuardMode == config.GuardModeMongo
	if needsMongo {
		cfg.SetMongo()
	}

	bookings, resourceGuard := initStorage(cfg)

	policies := policy.NewSet(
		policy.FixedCapacity(cfg.DefaultInstallationCapacity),
		policy.Limits{
			MaxRoomStay:      cfg.MaxRoomStay,
			MaxShiftLength:   cfg.MaxShiftLength,
			TrainingLeadTime: cfg.TrainingLeadTime,
		},
	)

	eng := availengine.New(bookings, resourceGuard, policies, cfg.Log)
	requestValidator := validator.NewRequestValidator(cfg.Log)
	publisher := initPublisher(cfg, serverApp)

	availabilityService := service.NewAvailabilityService(eng, bookings, requestValidator, publisher, cfg)

	cfg.Log.Info("Availability service initialized",
		"guard_mode", cfg.GuardMode,
		"events_enabled", cfg.EventsEnabled,
	)
	return availabilityService, eng
}

func initStorage(cfg *config.Config) (store.BookingStore, guard.Guard) {
	if cfg.GuardMode != config.GuardModeMongo {
		cfg.Log.Info("Using in-memory booking store and guard")
		return store.NewMemoryStore(), guard.NewMemory(cfg.GuardAcquireTimeout)
	}

	bookings := mongostore.NewStore(cfg)
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	resourceGuard := guard.NewMongo(db, cfg.GuardAcquireTimeout, cfg.GuardLeaseTTL, cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := bookings.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to create booking indexes", "error", err)
	}
	if err := resourceGuard.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to create guard indexes", "error", err)
	}

	cfg.Log.Info("Using MongoDB booking store and guard", "database", cfg.MongoDatabaseName)
	return bookings, resourceGuard
}

func initPublisher(cfg *config.Config, serverApp *app.Application) events.Publisher {
	if !cfg.EventsEnabled {
		return events.NopPublisher{}
	}

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.EventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	publisher := events.NewKafkaPublisher(producer, cfg.Log)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})

	cfg.Log.Info("Booking event publishing enabled", "topic", cfg.EventsTopic)
	return publisher
}

func startApprovalsConsumer(cfg *config.Config, serverApp *app.Application, eng *availengine.Engine) {
	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	approvalHandler := events.NewApprovalHandler(eng, cfg.Log)
	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.ApprovalsTopic, cfg.ApprovalsGroupID, approvalHandler.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to create approvals consumer", "error", err)
	}

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(consumerCtx); err != nil {
			cfg.Log.Error("Approvals consumer stopped", "error", err)
		}
	}()

	serverApp.OnShutdown(func() {
		cancelConsumer()
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close approvals consumer", "error", err)
		}
	})

	cfg.Log.Info("Approvals consumer started",
		"topic", cfg.ApprovalsTopic,
		"group_id", cfg.ApprovalsGroupID,
	)
}
