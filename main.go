package main

import (
	"go.uber.org/zap"

	"cdn-short-url/config"
	"cdn-short-url/server"
)

var logger *zap.Logger

func init() {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		panic("Failed to initialize zap logger: " + err.Error())
	}
}

func main() {
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Configuration error", zap.Error(err))
	}

	logger.Info("Starting short URL service...")
	if err := server.Run(logger, cfg); err != nil {
		logger.Fatal("Application error", zap.Error(err))
	}
	logger.Info("Short URL service stopped.")
}
