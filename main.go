// main.go
package main

import (
	"log"

	"experience-booking/cmd"
	"experience-booking/internal/data/repository"
	"experience-booking/internal/wire"
	"experience-booking/pkg/database"
	"experience-booking/pkg/gateway"
	"experience-booking/pkg/mq"
	"experience-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
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

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Payment gateway client
	pg := gateway.New(config.Gateway, logger)

	// Optional AMQP publisher for notification fan-out.
	// The app runs fine without a broker; notifications then stay DB-only.
	var publisher *mq.Publisher
	if config.AMQP.URL != "" {
		publisher, err = mq.NewPublisher(config.AMQP.URL, config.AMQP.Exchange)
		if err != nil {
			logger.Warn("AMQP unavailable, notifications will not be fanned out", zap.Error(err))
		} else {
			defer publisher.Close()
			logger.Info("AMQP publisher connected", zap.String("exchange", config.AMQP.Exchange))
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, pg, publisher, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
