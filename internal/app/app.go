package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostmarket_backend/database"
	"hostmarket_backend/internal/auth"
	"hostmarket_backend/internal/config"
	"hostmarket_backend/internal/email"
	"hostmarket_backend/internal/handlers"
	"hostmarket_backend/internal/logger"
	"hostmarket_backend/internal/middleware"
	"hostmarket_backend/internal/repositories"
	"hostmarket_backend/internal/routes"
	"hostmarket_backend/internal/scraper"
	"hostmarket_backend/internal/services"
	"hostmarket_backend/internal/tracking"
	"hostmarket_backend/internal/validator"
)

// App - собранное приложение: роутер, сервисы и фоновый трекер
type App struct {
	Router   *gin.Engine
	Services *services.ServiceContainer
	Tracker  *tracking.Dispatcher
}

func Run() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := Build(cfg, gormDB, repositories.NewGormSet(), newMailer(cfg))

	if err := application.Services.AuthService.EnsureAdmin(ctx, gormDB, cfg.FirstAdminEmail, cfg.FirstAdminPassword); err != nil {
		// без админа сервер не запускаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	application.Tracker.Start(ctx)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      application.Router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	application.Tracker.Close()
	application.Services.NotificationService.Wait()
	logger.Info("Server stopped")
}

// Build собирает зависимости. db может быть nil при in-memory репозиториях.
func Build(cfg *config.Config, db *gorm.DB, repos repositories.Set, mailer email.Provider) *App {
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.TokenTTL())
	tracker := tracking.NewDispatcher(cfg.Tracking.BufferSize, tracking.CounterSink(db, repos.Counters))
	fetcher := scraper.New(scraper.Options{
		Timeout:      cfg.ScraperTimeout(),
		UserAgent:    cfg.Scraper.UserAgent,
		MaxBodyBytes: cfg.Scraper.MaxBodyBytes,
	})

	serviceContainer := services.NewServiceContainer(services.Dependencies{
		Repos:     repos,
		Tokens:    tokens,
		Mailer:    mailer,
		Tracker:   tracker,
		Previewer: fetcher,
	})

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	baseHandler := handlers.NewBaseHandler(validator.New(), tokens, limiter)
	appHandlers := handlers.NewAppHandlers(baseHandler, serviceContainer, tracker, db)

	ginRouter := initializeGinRouter(cfg, db)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return &App{
		Router:   ginRouter,
		Services: serviceContainer,
		Tracker:  tracker,
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// newMailer - SMTP, если он настроен, иначе mock
func newMailer(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, using mock email provider")
		return email.NewMockProvider()
	}

	templates := email.NewTemplateManager()
	if err := templates.RegisterDefaults(); err != nil {
		logger.Fatal("Failed to register email templates", "error", err)
	}
	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, templates)
}
