package main

import (
	"context"
	"os"
	"os/signal"
	"photodoc-service/internal/app/config"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/app/drivers/database"
	"photodoc-service/internal/app/drivers/logger"
	"photodoc-service/internal/app/drivers/messaging"
	"photodoc-service/internal/app/drivers/storage"
	"photodoc-service/internal/app/services/resources"
	sharedstorage "photodoc-service/internal/app/services/shared/storage"
	"photodoc-service/internal/app/services/shared/syncqueue"
	syncservice "photodoc-service/internal/app/services/sync"
	"photodoc-service/internal/pkg/constvars"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// The worker drains the encounter retry queue. Pushes are paced so a long
// remote outage does not turn into a thundering herd the moment the remote
// comes back.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)

	retryQueue, err := syncqueue.NewService(rabbitMQ, zapLogger)
	if err != nil {
		log.Fatalf("Cannot set up retry queue: %v", err)
	}

	resourceRepository := resources.NewResourceMongoRepository(mongoDB, driverConfig.MongoDB.DbName)

	var attachmentStorage contracts.AttachmentStorage
	if driverConfig.Attachments.Backend == "minio" {
		minioClient := storage.NewMinio(driverConfig)
		attachmentStorage = sharedstorage.NewMinioStorage(minioClient, driverConfig.Minio.BucketName)
	} else {
		attachmentStorage = sharedstorage.NewLocalStorage(driverConfig.Attachments.LocalDir)
	}

	remoteClient := syncservice.NewRemoteFhirClient(
		internalConfig.Remote.BaseUrl,
		time.Duration(internalConfig.Remote.TimeoutSeconds)*time.Second,
		zapLogger,
	)
	// Requeueing on failure belongs to the consume loop here, not the
	// usecase, so attempts keep counting up instead of resetting.
	syncUsecase := syncservice.NewSyncUsecase(resourceRepository, attachmentStorage, remoteClient, noopRetryQueue{}, zapLogger)

	limiter := rate.NewLimiter(rate.Every(time.Second), 1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Retry worker consuming..")
	err = retryQueue.Consume(ctx, func(ctx context.Context, message *syncqueue.RetryMessage) bool {
		if err := limiter.Wait(ctx); err != nil {
			return false
		}
		zapLogger.Info("worker retrying encounter push",
			zap.String(constvars.LoggingEncounterIDKey, message.EncounterID),
			zap.Int("attempt", message.Attempt),
		)
		return syncUsecase.PushEncounter(ctx, message.EncounterID)
	})
	if err != nil && err != context.Canceled {
		log.Fatalf("Consumer stopped: %v", err)
	}

	log.Println("Retry worker exiting")
}

type noopRetryQueue struct{}

func (noopRetryQueue) PublishRetry(context.Context, string, int) error { return nil }
