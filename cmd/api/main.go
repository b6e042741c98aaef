// @title Quiz Master API
// @version 1.0
// @description Timed, randomized quiz sessions over a published question bank.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer SESSION_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-master/cmd/api/docs"
	"quiz-master/internal/app"
	"quiz-master/internal/config"
	"quiz-master/internal/handler"
	"quiz-master/internal/logger"
	"quiz-master/internal/middleware"
	"quiz-master/internal/service"
	"quiz-master/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()
	components, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer components.Close()

	tokens, err := service.NewTokenIssuer(cfg.Auth.SessionSecret, cfg.Auth.TokenTTL)
	if err != nil {
		appLogger.Fatal("Failed to create token issuer", zap.Error(err))
	}

	registry := service.NewSessionRegistry(cfg.Quiz.SessionTTL)
	registry.StartJanitor(time.Minute)
	defer registry.Close()

	results := service.NewResultCacheService(components.Cache, cfg.Quiz.SessionTTL)
	catalogService := service.NewCatalogService(components.Store, cfg.Quiz.DefaultPassScore)
	sessionService := service.NewSessionService(components.Store, components.Sink, results, tokens, registry, cfg.Quiz)
	appLogger.Info("Services initialized",
		zap.Bool("cache", components.Cache != nil),
		zap.Duration("session_ttl", cfg.Quiz.SessionTTL))

	validator := validation.NewValidator(cfg.Quiz.MaxQuestionCount)

	server := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	server.Use(middleware.RequestLogger())
	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	server.Use(recover.New())

	server.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(server, handler.Handlers{
		Catalog:   handler.NewCatalogHandler(catalogService, validator),
		Session:   handler.NewSessionHandler(sessionService, validator),
		Tokens:    tokens,
		Validator: validator,
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := server.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
