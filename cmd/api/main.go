package main

import (
	"context"
	"log"

	"contact-form/config"
	"contact-form/internal/handler"
	"contact-form/internal/notify"
	"contact-form/internal/redis"
	"contact-form/internal/repository"
	"contact-form/internal/server"
	"contact-form/internal/services"
	"contact-form/internal/storage"
	"contact-form/pkg/database"
	"contact-form/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	appLogger := logger.New(cfg.AppMode)
	logger.SetGlobalLogger(appLogger)
	defer appLogger.Sync()

	db := database.Connect(cfg)
	defer database.Close()

	if err := repository.InitSchema(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	ctx := context.Background()
	opts := server.Options{
		Checks: map[string]server.HealthCheck{"database": database.HealthCheck},
	}

	var backend storage.Backend
	switch cfg.StorageDriver {
	case config.StorageS3:
		client, err := storage.NewClient(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
			PresignTTL: cfg.S3PresignTTL,
		})
		if err != nil {
			log.Fatalf("Failed to configure S3 storage: %v", err)
		}
		backend = client
	case config.StorageLocal:
		local := storage.NewLocalStorage(cfg.StorageLocalDir, cfg.StoragePublicURL)
		opts.MediaDir = local.BaseDir()
		backend = local
	default:
		log.Fatalf("Unknown storage driver %q", cfg.StorageDriver)
	}

	var notifier notify.Notifier = notify.NewLogNotifier(appLogger)
	if cfg.RedisEnabled {
		client := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		if err := redis.Ping(ctx, client); err != nil {
			appLogger.Errorf("Redis is not reachable yet: %s", err)
		}
		notifier = notify.NewRedisNotifier(redis.NewPublisher(client))
		opts.Checks["redis"] = func(ctx context.Context) error { return redis.Ping(ctx, client) }
	}

	store := repository.NewStore(db)
	attachments := services.NewAttachmentService(store.Attachments(), backend, cfg.AttachmentMaxBytes, appLogger)
	contacts := services.NewContactService(store, attachments, notifier, services.ContactServiceConfig{
		Recipient:     cfg.NotifyRecipient,
		NotifyTimeout: cfg.NotifyTimeout,
	}, appLogger)

	srv := server.New(cfg, appLogger)
	srv.SetupRoutes(&server.Handlers{
		Contact: handler.NewContactHandler(contacts, attachments),
	}, opts)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
