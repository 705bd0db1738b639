package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"assistix-backend-go/internal/api"
	"assistix-backend-go/internal/config"
	"assistix-backend-go/internal/core"
	"assistix-backend-go/internal/db"
	"assistix-backend-go/internal/middleware"
	"assistix-backend-go/pkg/cache"
	"assistix-backend-go/pkg/messagequeue"
)

func main() {
	// Load .env file. In production, environment variables should be set directly.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Error loading .env file:", err)
		}
	}

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// Firebase Admin SDK: Firestore, Auth and the storage bucket.
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirebase(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth, Storage) initialized successfully.")

	firestoreClient := db.GetFirestoreClient()
	firebaseAuthClient := db.GetFirebaseAuthClient()
	storageBucket := db.GetStorageBucket()
	if firestoreClient == nil || firebaseAuthClient == nil || storageBucket == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase clients are nil after initialization. Application cannot start.")
	}
	defer firestoreClient.Close()

	// Optional infrastructure. Both concerns degrade to no-ops when
	// unconfigured so a bare Firebase setup still runs.
	var appCache cache.Cache = cache.Noop{}
	if appConfig.RedisAddr != "" {
		appCache, err = cache.NewRedisCache(initCtx, cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to Redis", zap.Error(err))
		}
		zapLogger.Info("Redis profile cache enabled", zap.String("addr", appConfig.RedisAddr))
	} else {
		zapLogger.Warn("Redis cache SKIPPED: REDIS_ADDR is not configured. Profile lookups go straight to Firestore.")
	}

	var mq messagequeue.MessageQueue = messagequeue.Noop{}
	if appConfig.AMQPURL != "" {
		mq, err = messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.AMQPURL})
		if err != nil {
			zapLogger.Fatal("CRITICAL_ERROR: Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer mq.Close()
		zapLogger.Info("RabbitMQ event publishing enabled")
	} else {
		zapLogger.Warn("Event publishing SKIPPED: AMQP_URL is not configured.")
	}

	// Repositories.
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	requestRepo := db.NewFirestoreRequestRepository(firestoreClient)
	pitchRepo := db.NewFirestorePitchRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// Services.
	eventService := core.NewEventService(mq, zapLogger)
	userService := core.NewUserService(userRepo, firebaseAuthClient, appCache, zapLogger)
	requestService := core.NewRequestService(requestRepo, pitchRepo, userRepo, userService, appCache, eventService, zapLogger)
	pitchService := core.NewPitchService(pitchRepo, requestRepo, userRepo, appCache, eventService, zapLogger)
	storageService := core.NewStorageService(storageBucket, appConfig.StorageBucket, zapLogger)
	zapLogger.Info("Core services initialized successfully.")

	if appConfig.SeedDemoData {
		seedService := core.NewSeedService(userRepo, requestRepo, zapLogger)
		seeded, err := seedService.SeedDemoData(initCtx)
		if err != nil {
			zapLogger.Error("Demo data seeding failed", zap.Error(err))
		} else if seeded {
			zapLogger.Info("Demo data seeded at startup.")
		}
	}

	// Gin HTTP engine.
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// Middleware order matters: log every request, then recover from panics.
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig.ClientURL))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	api.SetupRoutes(router, api.RouterConfig{
		UserService:    userService,
		RequestService: requestService,
		PitchService:   pitchService,
		StorageService: storageService,
		FirebaseAuth:   firebaseAuthClient,
		Logger:         zapLogger,
	})

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM. Active SSE streams are cut when
	// the shutdown context expires.
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
