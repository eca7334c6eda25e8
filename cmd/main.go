package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/handlers"
	"storefront/internal/logger"
	"storefront/internal/repository"
	"storefront/internal/repository/db"
	"storefront/internal/server"
	"storefront/internal/service"

	"github.com/spf13/viper"
)

const defaultSweepTick = 1 * time.Hour

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// The token signing key is mandatory; without it every issued token
	// would be unverifiable.
	signingKey := viper.GetString("jwt.secret")
	if signingKey == "" {
		log.Fatalw("jwt.secret is not set; provide it in config or via JWT_SECRET")
	}

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Config{
		JWTSigningKey:  signingKey,
		AuditRetention: viper.GetDuration("audit.retention"),
	}, log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start audit retention sweeper
	go services.Audit.Run(ctx, sweepTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	// JWT_SECRET overrides jwt.secret so the key can stay out of the file.
	if err := viper.BindEnv("jwt.secret", "JWT_SECRET"); err != nil {
		return err
	}
	return viper.ReadInConfig()
}

// sweepTick returns the configured audit sweep interval, defaulting to hourly.
func sweepTick() time.Duration {
	if d := viper.GetDuration("audit.sweep_tick"); d > 0 {
		return d
	}
	return defaultSweepTick
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
