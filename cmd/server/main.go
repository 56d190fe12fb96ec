package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily_quran_service/internal/app"
	"daily_quran_service/internal/infra/config"
	idb "daily_quran_service/internal/infra/database"
	"daily_quran_service/internal/infra/emailjs"
	"daily_quran_service/internal/infra/logger"
	"daily_quran_service/internal/infra/quran"
	"daily_quran_service/internal/infra/scheduler"
	"daily_quran_service/internal/infra/web"
)

func main() {
	fmt.Println("Daily Quran service starting...")

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("FATAL: Could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s", cfg.LogLevel, cfg.Environment)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repository and external clients
	subscriberRepo := idb.NewPostgresSubscriberRepository(db)
	verseClient := quran.NewClient(cfg.QuranAPIBaseURL, log)
	mailClient := emailjs.NewClient(cfg.EmailJSBaseURL, cfg.EmailJSServiceID, cfg.EmailJSTemplateID, cfg.EmailJSPublicKey, cfg.EmailJSPrivateKey)

	// Initialize Services
	dispatchService := app.NewDispatchService(subscriberRepo, verseClient, mailClient, log, cfg.ClientURL, cfg.SendDelay)
	registrationService := app.NewRegistrationService(subscriberRepo, log)

	// Initialize Scheduler
	dispatchScheduler := scheduler.NewDispatchScheduler(dispatchService, log, cfg.DispatchCronSpec, cfg.Location())
	dispatchScheduler.Start()

	// Initialize HTTP server
	handler := web.NewHandler(verseClient, registrationService, log)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: web.NewRouter(handler, cfg.ClientURL),
	}

	go func() {
		log.Infof("Daily Quran service running on port %d", cfg.Port)
		log.Infof("Health check: http://localhost:%d/api/health", cfg.Port)
		log.Infof("Daily emails scheduled for %q (%s)", cfg.DispatchCronSpec, cfg.DispatchTimezone)
		log.Infof("Client URL: %s", cfg.ClientURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	log.Info("Shutting down application...")
	dispatchScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}
	// db.Close() is handled by defer
	log.Info("Application shut down gracefully.")
}
