package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"photodoc-service/internal/app/config"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/app/delivery/http/controllers"
	"photodoc-service/internal/app/delivery/http/middlewares"
	"photodoc-service/internal/app/delivery/http/routers"
	"photodoc-service/internal/app/drivers/database"
	"photodoc-service/internal/app/drivers/logger"
	"photodoc-service/internal/app/drivers/messaging"
	"photodoc-service/internal/app/drivers/storage"
	"photodoc-service/internal/app/services/auth"
	"photodoc-service/internal/app/services/exportimport"
	"photodoc-service/internal/app/services/resources"
	sharedredis "photodoc-service/internal/app/services/shared/redis"
	sharedstorage "photodoc-service/internal/app/services/shared/storage"
	"photodoc-service/internal/app/services/shared/syncqueue"
	syncservice "photodoc-service/internal/app/services/sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrapTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		ZapLogger:      zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()
	log.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests to finish..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap) {
	// Redis
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)

	// Attachment storage
	var attachmentStorage contracts.AttachmentStorage
	if bootstrap.DriverConfig.Attachments.Backend == "minio" {
		minioClient := storage.NewMinio(bootstrap.DriverConfig)
		attachmentStorage = sharedstorage.NewMinioStorage(minioClient, bootstrap.DriverConfig.Minio.BucketName)
	} else {
		attachmentStorage = sharedstorage.NewLocalStorage(bootstrap.DriverConfig.Attachments.LocalDir)
	}

	// Resources
	resourceRepository := resources.NewResourceMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)

	// Exchange
	exchangeUsecase := exportimport.NewExchangeUsecase(resourceRepository, attachmentStorage, bootstrap.ZapLogger)
	exchangeController := controllers.NewExchangeController(bootstrap.ZapLogger, exchangeUsecase)

	// Sync
	retryQueue, err := syncqueue.NewService(bootstrap.RabbitMQ, bootstrap.ZapLogger)
	if err != nil {
		bootstrap.Logger.Fatalf("Cannot set up retry queue: %v", err)
	}
	remoteClient := syncservice.NewRemoteFhirClient(
		bootstrap.InternalConfig.Remote.BaseUrl,
		time.Duration(bootstrap.InternalConfig.Remote.TimeoutSeconds)*time.Second,
		bootstrap.ZapLogger,
	)
	syncUsecase := syncservice.NewSyncUsecase(resourceRepository, attachmentStorage, remoteClient, retryQueue, bootstrap.ZapLogger)
	syncController := controllers.NewSyncController(bootstrap.ZapLogger, syncUsecase)

	// Auth
	userMongoRepository := auth.NewUserMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	authUsecase := auth.NewAuthUsecase(userMongoRepository, redisRepository, bootstrap.InternalConfig, bootstrap.ZapLogger)
	authController := controllers.NewAuthController(bootstrap.ZapLogger, authUsecase)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.ZapLogger, authUsecase, bootstrap.InternalConfig)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, authController, exchangeController, syncController)
}
