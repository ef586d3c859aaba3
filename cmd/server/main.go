package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "github.com/gorilla/handlers"
	"github.com/rs/zerolog"
	"github.com/vitalsync/vitalsync-api/internal/alerts"
	"github.com/vitalsync/vitalsync-api/internal/authz"
	"github.com/vitalsync/vitalsync-api/internal/config"
	"github.com/vitalsync/vitalsync-api/internal/dispatch"
	"github.com/vitalsync/vitalsync-api/internal/handlers"
	"github.com/vitalsync/vitalsync-api/internal/identity"
	"github.com/vitalsync/vitalsync-api/internal/middleware"
	"github.com/vitalsync/vitalsync-api/internal/migration"
	"github.com/vitalsync/vitalsync-api/internal/monitor"
	"github.com/vitalsync/vitalsync-api/internal/notification"
	"github.com/vitalsync/vitalsync-api/internal/repository"
	"github.com/vitalsync/vitalsync-api/internal/routes"
	"github.com/vitalsync/vitalsync-api/internal/simulator"
	"github.com/vitalsync/vitalsync-api/internal/vitals"

	_ "github.com/lib/pq" // PostgreSQL driver
)

type application struct {
	config     *config.Config
	db         *sql.DB
	logger     zerolog.Logger
	monitor    *monitor.Monitor
	dispatcher dispatch.Service
}

func main() {
	// Set up structured, level-based logging.
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.SetFlags(0)
	log.SetOutput(logger)

	// Load configuration.
	cfg := config.Load()

	// Initialize database connection.
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to the database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	// Run database migrations.
	migration.RunMigrations(cfg.DatabaseURL, logger)

	// Repositories
	alertRepo := repository.NewAlertRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Notification channels and recipient resolution. Missing credentials
	// degrade each channel to a recorded skip.
	emailSender := notification.NewHTTPEmailSender(cfg.Email, logger)
	if !emailSender.Configured() {
		logger.Warn().Msg("email provider api key not set, email notifications disabled")
	}
	smsSender := notification.NewTwilioSMSSender(cfg.SMS, logger)
	if !smsSender.Configured() {
		logger.Warn().Msg("sms provider credentials not set, sms notifications disabled")
	}
	directory := identity.NewAdminClient(cfg.Identity)

	dispatcher := dispatch.NewService(alertRepo, profileRepo, roleRepo, auditRepo, directory, emailSender, smsSender, logger)

	// Live vitals state for the dashboard.
	thresholds := vitals.DefaultThresholds()
	gen := simulator.New()
	mon := monitor.New(gen, thresholds, cfg.Monitor.RefreshInterval, logger)

	ctx, cancelMonitor := context.WithCancel(context.Background())
	defer cancelMonitor()
	mon.Start(ctx)

	// Hardware seam: in mqtt mode one patient's readings come from real
	// sensors instead of the simulator.
	if cfg.Monitor.Source == "mqtt" {
		src, err := monitor.NewMQTTSource(cfg.MQTT, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect mqtt vitals source")
		}
		defer src.Close()

		detach, err := mon.AttachSource(cfg.Monitor.LivePatientID, src)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to attach mqtt vitals source")
		}
		defer detach()
	}

	deriver := alerts.NewDeriver(thresholds)

	app := &application{
		config:     cfg,
		db:         db,
		logger:     logger,
		monitor:    mon,
		dispatcher: dispatcher,
	}

	// Initialize the HTTP router and middleware.
	router := app.initRouter(alertRepo, profileRepo, deriver)
	loggedRouter := middleware.LoggingMiddleware(app.logger)(router)
	corsHandler := h.CORS(
		h.AllowedOrigins([]string{"*"}),
		h.AllowedMethods([]string{"GET", "POST", "PATCH", "OPTIONS"}),
		h.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(loggedRouter)

	// Start the HTTP server and handle graceful shutdown.
	app.startServer(corsHandler, logger)

	logger.Info().Msg("Application terminated.")
}

// initRouter sets up all HTTP handlers and returns the router.
func (app *application) initRouter(
	alertRepo repository.AlertRepository,
	profileRepo repository.ProfileRepository,
	deriver *alerts.Deriver,
) http.Handler {
	guard := authz.Guard(app.config.ServiceTokenSecret, app.logger)

	alertHandler := handlers.NewAlertHandler(app.dispatcher, alertRepo, deriver, app.monitor, app.logger)
	patientHandler := handlers.NewPatientHandler(app.monitor, app.logger)
	profileHandler := handlers.NewProfileHandler(profileRepo, app.logger)

	return routes.NewRouter(alertHandler, patientHandler, profileHandler, guard)
}

// startServer launches the HTTP server and handles graceful shutdown.
func (app *application) startServer(handler http.Handler, logger zerolog.Logger) {
	server := &http.Server{
		Addr:    ":" + app.config.ServerPort,
		Handler: handler,
	}

	// Channel to listen for server errors
	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	// Wait for an interrupt signal or a server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info().Msgf("Received signal: %s. Shutting down...", sig)
	case err := <-serverErrCh:
		logger.Error().Err(err).Msg("Server error occurred")
	}

	// Gracefully shut down the HTTP server.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	} else {
		logger.Info().Msg("HTTP server shutdown complete.")
	}

	// Stop the vitals refresh loop.
	app.monitor.Stop()
	logger.Info().Msg("Monitor stopped.")
}
