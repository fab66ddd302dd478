package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"colheita-backend/cache"
	"colheita-backend/controllers"
	"colheita-backend/database"
	"colheita-backend/logger"
	"colheita-backend/middleware"
	aws_pkg "colheita-backend/pkg/aws"
	"colheita-backend/repository"
	"colheita-backend/routes"
	"colheita-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	// --- Database ---
	if err := database.ConnectWithConfig(cfg.MongoURI, cfg.MongoDB); err != nil {
		logger.Log.Fatal("DB connection failed", zap.Error(err))
	}

	redisClient := database.NewRedisClient(cfg.RedisURL)
	cacheManager := cache.NewCacheManager(redisClient)

	// --- AWS setup (non-fatal: events are skipped when unconfigured) ---
	var snsClient aws_pkg.SNSPublisher
	if cfg.SNSTopicARN != "" {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			logger.Log.Warn("Failed to load AWS config, reservation events disabled", zap.Error(err))
		} else {
			snsClient = aws_pkg.NewSNSClient(awsCfg)
		}
	}

	// --- Dependency injection ---
	reservationRepo := repository.NewMongoReservationRepository(database.DB, logger.Log)
	productRepo := repository.NewMongoProductRepository(database.DB)
	farmRepo := repository.NewMongoFarmRepository(database.DB)
	notificationRepo := repository.NewMongoNotificationRepository(database.DB)
	imageRepo := repository.NewMongoProductImageRepository(database.DB)

	imageSearcher := services.NewGoogleImageSearch(cfg.GoogleAPIKey, cfg.GoogleCX, logger.Log)
	imageService := services.NewProductImageService(imageRepo, imageSearcher, cacheManager, logger.Log)
	notificationService := services.NewNotificationService(notificationRepo, logger.Log)
	productService := services.NewProductService(productRepo, farmRepo, imageService, cacheManager, logger.Log)
	farmService := services.NewFarmService(farmRepo, logger.Log)
	reservationService := services.NewReservationService(
		reservationRepo, productRepo, notificationService,
		snsClient, cfg.SNSTopicARN, logger.Log,
	)

	reservationController := controllers.NewReservationController(reservationService)
	productController := controllers.NewProductController(productService)
	farmController := controllers.NewFarmController(farmService)
	notificationController := controllers.NewNotificationController(notificationService)

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	controllers.RegisterValidations()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.ReadRateLimit())

	routes.RegisterReservationRoutes(r, reservationController, cfg.JWTSecret)
	routes.RegisterProductRoutes(r, productController, cfg.JWTSecret)
	routes.RegisterFarmRoutes(r, farmController, cfg.JWTSecret)
	routes.RegisterNotificationRoutes(r, notificationController, cfg.JWTSecret)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "colheita-backend"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Log.Info("Colheita backend started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Initiating graceful shutdown...")
	httpShutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(httpShutdownCtx); err != nil {
		logger.Log.Error("Server shutdown error", zap.Error(err))
	}

	if err := database.Close(); err != nil {
		logger.Log.Error("Database close error", zap.Error(err))
	}

	log.Println("Colheita backend stopped gracefully")
}
