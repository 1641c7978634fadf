// Package server wires the short URL service together and runs the HTTP
// server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cdn-short-url/config"
	"cdn-short-url/handlers"
	"cdn-short-url/services"
	"cdn-short-url/storage"
)

// Run builds the object store, service, and router, then serves until
// interrupted. The store is constructed exactly once here and handed down,
// so every generation call shares the same client.
func Run(logger *zap.Logger, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.NewObjectStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to create object store", zap.Error(err))
		return err
	}

	urlHandler, err := setupURLHandler(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	router := setupRouter(urlHandler, cfg)
	srv := setupServer(cfg, router)

	go startServer(srv, logger)

	return waitForShutdown(ctx, srv, logger)
}

func setupURLHandler(ctx context.Context, cfg *config.Config, store storage.ObjectStore, logger *zap.Logger) (handlers.URLHandlerInterface, error) {
	handlerCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	urlService := services.NewShortURLService(store, cfg, logger)

	handler, err := handlers.NewURLHandler(handlerCtx, urlService, cfg, logger)
	if err != nil {
		logger.Error("Failed to create URL handler", zap.Error(err))
		return nil, err
	}

	logger.Debug("URL handler created successfully")
	return handler, nil
}

func setupRouter(urlHandler handlers.URLHandlerInterface, cfg *config.Config) *gin.Engine {
	router := gin.Default()
	handlers.RegisterRoutes(router, urlHandler, cfg)
	return router
}

func setupServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}
}

func startServer(srv *http.Server, logger *zap.Logger) {
	logger.Debug("Starting server", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", zap.Error(err))
	}
	logger.Debug("Server stopped")
}

func waitForShutdown(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("Received interrupt signal. Initiating server shutdown...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server gracefully stopped")
	return nil
}
