// Package main initializes and starts the complaint service HTTP server,
// setting up configuration, logging, database connections, repositories,
// services, and handlers.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/sdeshpande/CivicDesk/internal/config"
	"github.com/sdeshpande/CivicDesk/internal/db"
	"github.com/sdeshpande/CivicDesk/internal/logger"
	"github.com/sdeshpande/CivicDesk/internal/repository"
	"github.com/sdeshpande/CivicDesk/internal/server/handler/http"
	"github.com/sdeshpande/CivicDesk/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	if version != "" {
		fmt.Printf("Build version: %s\n", version)
		fmt.Printf("Build date: %s\n", buildDate)
	}

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Periodically drop resolved complaints past their retention.
	db.StartResolvedCleaner(context.Background(), postgresDB,
		time.Hour,
		time.Duration(options.RetentionDays)*24*time.Hour,
		zapLogger,
	)

	// Initialize repositories for authentication and complaints.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	complaintRepo := repository.NewPostgresComplaintRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo)
	complaintService := service.NewComplaintService(complaintRepo)

	// Create HTTP handlers for the login and complaint endpoints.
	authHandler := &http.AuthHandler{AuthService: authService, Log: zapLogger}
	complaintsHandler := &http.ComplaintsHandler{
		Service:   complaintService,
		UploadDir: options.UploadDir,
		Log:       zapLogger,
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, complaintsHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
