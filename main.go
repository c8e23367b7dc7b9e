// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"cinema-ticketing/cmd"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/wire"
	"cinema-ticketing/pkg/cache"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/events"
	"cinema-ticketing/pkg/mailer"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run migrations before the pool opens
	if config.Database.Migrate {
		if err := database.Migrate(database.MigrationURL(config.Database), logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	if n, err := repos.Session.CleanExpiredSessions(ctx); err != nil {
		logger.Warn("Failed to clean expired sessions", zap.Error(err))
	} else if n > 0 {
		logger.Info("Expired sessions removed", zap.Int64("count", n))
	}

	deps := wire.Deps{}

	// Optional redis response cache
	if config.Redis.Addr != "" {
		client, err := cache.Connect(ctx, config.Redis.Addr, config.Redis.Password, config.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, response cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			deps.Cache = cache.NewRedisStore(client)
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	// Receipt mail goes through SMTP when configured, otherwise to the log
	if config.Email.Host != "" {
		deps.Mailer = mailer.NewSMTPMailer(config.Email.Host, config.Email.Port,
			config.Email.User, config.Email.Password, config.Email.From)
	} else {
		deps.Mailer = mailer.NewLogMailer(logger)
	}

	// Domain events go to RabbitMQ when configured
	if config.Broker.URL != "" {
		publisher, err := events.NewAMQPPublisher(config.Broker.URL, config.Broker.Exchange, logger)
		if err != nil {
			logger.Warn("Broker unavailable, events disabled", zap.Error(err))
			deps.Publisher = events.NewNoopPublisher(logger)
		} else {
			defer publisher.Close()
			deps.Publisher = publisher
		}
	} else {
		deps.Publisher = events.NewNoopPublisher(logger)
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, deps, logger)

	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
	logger.Info("Server stopped")
}
