// main.go
package main

import (
	"log"

	"gym-booking/cmd"
	"gym-booking/internal/data/repository"
	"gym-booking/internal/wire"
	"gym-booking/pkg/cache"
	"gym-booking/pkg/database"
	"gym-booking/pkg/gateway"
	"gym-booking/pkg/utils"

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

	// Connect to redis. The availability cache degrades to direct DB
	// counts when redis is down, so this is not fatal.
	redisClient, err := database.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, availability cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("Redis connected successfully")
		defer redisClient.Close()
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment gateway client and availability cache
	gw := gateway.NewMercadoPagoClient(config.MercadoPago, logger)
	availability := cache.NewAvailabilityCache(redisClient, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, gw, availability, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
