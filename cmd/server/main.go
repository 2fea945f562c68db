package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aidconnect/internal/adapters/blobstore"
	"aidconnect/internal/adapters/httpapi"
	"aidconnect/internal/adapters/mail"
	"aidconnect/internal/adapters/pdf"
	"aidconnect/internal/adapters/postgres"
	"aidconnect/internal/adapters/security"
	"aidconnect/internal/core/service"
	"aidconnect/internal/shared/config"
	"aidconnect/internal/shared/logger"
)

const tokenTTL = 24 * time.Hour

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Logger
	isDevMode := cfg.AppEnv == "dev"
	baseLogger := logger.New(isDevMode)
	baseLogger.Info().Str("app_env", cfg.AppEnv).Msg("Configuration loaded")

	// 3. Initialize the Security Service
	keyBytes, err := hex.DecodeString(cfg.EncryptionKey)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to decode ENCRYPTION_KEY. It must be hex-encoded.")
	}
	secSvc, err := security.NewAESService(keyBytes, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize security service")
	}
	tokens := security.NewTokenManager(cfg.JWTSecret, tokenTTL)

	// 4. Initialize Database
	ctx := context.Background()
	db, err := postgres.NewDB(ctx, cfg.DatabaseURL, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// 5. Initialize Repositories
	userRepo := postgres.NewUserRepository(db, secSvc, &baseLogger)
	appRepo := postgres.NewApplicationRepository(db, &baseLogger)
	schemeRepo := postgres.NewSchemeRepository(db, &baseLogger)
	verifRepo := postgres.NewVerificationRepository(db, &baseLogger)

	// 6. Initialize Capabilities
	mailer, err := mail.NewSMTPMailer(cfg.SMTP, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize mailer")
	}
	blobs, err := blobstore.NewLocalStore(cfg.UploadDir, &baseLogger)
	if err != nil {
		baseLogger.Fatal().Err(err).Msg("Failed to initialize blob store")
	}
	certs := pdf.NewCertificateRenderer()

	// 7. Initialize Services
	authSvc := service.NewAuthService(userRepo, verifRepo, tokens, &baseLogger)
	otpSvc := service.NewOTPService(verifRepo, userRepo, mailer, &baseLogger)
	lifecycleSvc := service.NewLifecycleService(appRepo, userRepo, certs, mailer, &baseLogger)
	catalogSvc := service.NewCatalogService(schemeRepo, &baseLogger)

	// 8. HTTP Server
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:      authSvc,
		OTP:       otpSvc,
		Lifecycle: lifecycleSvc,
		Catalog:   catalogSvc,
		Users:     userRepo,
		Blobs:     blobs,
		Validator: tokens,
		UploadDir: cfg.UploadDir,
		CORS:      cfg.CORSOrigins,
	}, &baseLogger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		baseLogger.Info().Str("addr", cfg.HTTPAddr).Msg("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	baseLogger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
