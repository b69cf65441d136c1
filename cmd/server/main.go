package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mkostiv/fitjournal/internal/api"
	"mkostiv/fitjournal/internal/config"
	"mkostiv/fitjournal/internal/repository/mongo"
	"mkostiv/fitjournal/internal/service"
	"mkostiv/fitjournal/internal/sync"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("Starting fitjournal server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}
	logrus.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		logrus.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logrus.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logrus.Info("Database connection established.")

	// --- Schema Migrations ---
	// Migrations gate additive schema changes and the one-time data
	// transforms; they run to completion before the server accepts
	// requests.
	migrationCtx, cancelMigration := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancelMigration()
	if err := mongo.RunMigrations(migrationCtx, appDB); err != nil {
		logrus.WithError(err).Fatal("schema migration failed")
	}
	logrus.WithField("version", mongo.SchemaVersion()).Info("Schema up to date.")

	// --- Sync Provider (optional) ---
	var syncProvider sync.Provider
	if cfg.Sync.Enabled {
		logrus.Info("Initializing sync provider...")
		syncProvider, err = sync.NewS3Provider(cfg.Sync)
		if err != nil {
			logrus.WithError(err).Fatal("failed to initialize sync provider")
		}
	}

	// --- Initialize Repositories ---
	logrus.Info("Initializing repositories...")
	journalRepo := mongo.NewMongoJournalRepository(appDB)
	programRepo := mongo.NewMongoProgramRepository(appDB)
	goalRepo := mongo.NewMongoGoalRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	settingsRepo := mongo.NewMongoSettingsRepository(appDB)
	bundleStore := mongo.NewMongoBundleStore(dbClient, appDB)

	// --- Initialize Services ---
	logrus.Info("Initializing services...")
	journalService := service.NewJournalService(journalRepo)
	programService := service.NewProgramService(programRepo, journalRepo, settingsRepo)
	goalService := service.NewGoalService(goalRepo, journalRepo, profileRepo)
	profileService := service.NewProfileService(profileRepo)
	metricsService := service.NewMetricsService(journalRepo, profileRepo)
	backupService := service.NewBackupService(bundleStore, syncProvider)

	// --- Initialize Gin Engine ---
	router := gin.New()
	router.Use(gin.Recovery())

	// --- Setup Routes ---
	logrus.Info("Setting up API routes...")
	api.SetupRoutes(router, journalService, programService, goalService, profileService, metricsService, backupService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logrus.WithField("address", cfg.Server.Address).Info("Server starting")

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("ListenAndServe error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("Server exiting.")
}
