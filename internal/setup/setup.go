package setup

import (
	"context"
	"log"

	"github.com/bugboard/bugboard/internal/database"
	"github.com/bugboard/bugboard/internal/notifier"
	"github.com/bugboard/bugboard/internal/setup/config"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config      *config.Config       // Application configuration
	Logger      *zap.Logger          // Main application logger
	DBLogger    *zap.Logger          // Database-specific logger
	DB          database.Client      // Database connection pool
	Notifier    *notifier.Dispatcher // Ban/unban notification channels
	pprofServer *pprofServer         // Debug HTTP server for pprof
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, logDir string) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logger, dbLogger, err := GetLoggers(logDir, &cfg.Debug)
	if err != nil {
		return nil, err
	}

	// Notification channels must exist before the database client
	// because the moderation service dispatches through them
	dispatcher, err := notifier.NewDispatcher(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Initialize database with automatic migrations
	db, err := database.NewConnection(ctx, &cfg.PostgreSQL, dispatcher, dbLogger.Named("database"), true)
	if err != nil {
		return nil, err
	}

	// Start pprof server if enabled
	var pprofSrv *pprofServer

	if cfg.Debug.EnablePprof {
		srv, err := startPprofServer(cfg.Debug.PprofPort, logger)
		if err != nil {
			logger.Error("Failed to start pprof server", zap.Error(err))
		} else {
			pprofSrv = srv

			logger.Warn("pprof debugging endpoint enabled - this should not be used in production!")
		}
	}

	// Bundle all initialized components
	return &App{
		Config:      cfg,
		Logger:      logger,
		DBLogger:    dbLogger,
		DB:          db,
		Notifier:    dispatcher,
		pprofServer: pprofSrv,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup(ctx context.Context) {
	// Shutdown pprof server if running
	if s.pprofServer != nil {
		if err := s.pprofServer.srv.Shutdown(ctx); err != nil {
			s.Logger.Error("Failed to shutdown pprof server", zap.Error(err))
		}

		s.pprofServer.listener.Close()
	}

	// Wait for in-flight notifications before tearing anything down
	s.Notifier.Close()

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	// Close database connections
	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}
}
