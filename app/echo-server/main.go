package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fashionTrends/app/echo-server/router"
	itemService "fashionTrends/business/item"
	preferenceService "fashionTrends/business/preference"
	recommendService "fashionTrends/business/recommend"
	trendsService "fashionTrends/business/trends"
	userService "fashionTrends/business/user"
	"fashionTrends/internal/middleware"
	"fashionTrends/internal/repository/notification"
	psqlRepo "fashionTrends/internal/repository/postgres"
	redisRepo "fashionTrends/internal/repository/redis"
	"fashionTrends/internal/rest"
	"fashionTrends/pkg/config"
	"fashionTrends/pkg/database"
	redisdb "fashionTrends/pkg/database/redis"
	"fashionTrends/pkg/logger"
	"fashionTrends/pkg/metrics"
	"fashionTrends/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Fashion Trends API", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis client", err)
		}
	}()

	logger.Info("Redis connected successfully")

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	itemRepo := psqlRepo.NewItemRepository(db)
	interactionRepo := psqlRepo.NewInteractionRepository(db)
	preferenceRepo := psqlRepo.NewPreferenceRepository(db)
	feedbackRepo := psqlRepo.NewFeedbackRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	userSvc := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	itemSvc := itemService.NewItemService(itemRepo)
	preferenceSvc := preferenceService.NewPreferenceService(preferenceRepo)
	recommendSvc := recommendService.NewRecommendationService(itemRepo, interactionRepo, feedbackRepo, cfg.Engine)
	trendSvc := trendsService.NewTrendService(itemRepo, interactionRepo, cfg.Engine)

	// Init handler
	userHandler := rest.NewUserHandler(userSvc)
	itemHandler := rest.NewItemHandler(itemSvc)
	preferenceHandler := rest.NewPreferenceHandler(preferenceSvc)
	recommendationHandler := rest.NewRecommendationHandler(recommendSvc, cfg.Engine.RecommendationTopN)
	trendHandler := rest.NewTrendHandler(trendSvc, cfg.Engine.TrendWindowDays)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(userSvc)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAuthRoutes(api, userHandler, authRequired)
	router.SetupUserRoutes(api, userHandler, preferenceHandler, authRequired)
	router.SetupItemRoutes(api, itemHandler, authRequired, adminOnly)
	router.SetupRecommendationRoutes(api, recommendationHandler, authRequired)
	router.SetupTrendRoutes(api, trendHandler, authRequired, adminOnly)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
