package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"campusevents/config"
	adapterauth "campusevents/internal/adapters/auth"
	"campusevents/internal/adapters/email"
	"campusevents/internal/adapters/storage"
	httpdelivery "campusevents/internal/delivery/http"
	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/repository/postgres"
	"campusevents/internal/services"
)

const bcryptCost = 10

// @title Campus Events API
// @version 1.0
// @description Event catalog and capacity-bounded registration service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(context.Background()); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	adminRepo := postgres.NewAdminUserRepository(db)

	tokens := adapterauth.NewJWTTokens(cfg.JWTSecret)
	hasher := adapterauth.NewBcryptHasher(bcryptCost)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	posterStore := storage.NewS3Store(storage.S3Config{
		Endpoint:        cfg.Poster.Endpoint,
		Region:          cfg.Poster.Region,
		Bucket:          cfg.Poster.Bucket,
		AccessKeyID:     cfg.Poster.AccessKeyID,
		SecretAccessKey: cfg.Poster.SecretAccessKey,
		PublicBaseURL:   cfg.Poster.PublicBaseURL,
	})

	catalog := services.NewCatalogService(eventRepo, posterStore)
	admission := services.NewAdmissionService(eventRepo, registrationRepo, mailer, logger)
	roster := services.NewRosterService(eventRepo, registrationRepo)
	auth := services.NewAuthService(adminRepo, hasher, tokens, cfg.JWTExpiry)

	eventController := controllers.NewEventController(logger, catalog)
	registrationController := controllers.NewRegistrationController(logger, admission, roster)
	authController := controllers.NewAuthController(logger, auth)

	mux := httpdelivery.NewRouter(eventController, registrationController, authController, tokens)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	logger.Info("shutdown signal received, stopping server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown gracefully", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
