// Package handlers provides HTTP request handlers for the short URL service.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"cdn-short-url/config"
	"cdn-short-url/services"
	"cdn-short-url/types"
)

const (
	invalidRequestBody = "Invalid request body"
	invalidURLProvided = "Invalid URL provided"
	errorCreatingURL   = "Error creating short URL"
	errorTimeout       = "Request timed out"
	keySpaceExhausted  = "Could not find an unused key"
)

// URLHandlerInterface defines the methods that a URL handler should implement.
type URLHandlerInterface interface {
	CreateShortURL(c *gin.Context)
	HealthCheck(c *gin.Context)
}

// URLHandler struct holds the dependencies for handling URL-related operations.
type URLHandler struct {
	service  services.ShortURLService
	validate *validator.Validate
	config   *config.Config
	logger   *zap.Logger
}

// NewURLHandler creates and returns a new URLHandler instance.
func NewURLHandler(ctx context.Context, service services.ShortURLService, cfg *config.Config, logger *zap.Logger) (URLHandlerInterface, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return &URLHandler{
		service:  service,
		validate: validator.New(),
		config:   cfg,
		logger:   logger,
	}, nil
}

// handleError is a helper function to handle errors and send appropriate responses
func (h *URLHandler) handleError(c *gin.Context, err error) {
	var statusCode int
	var errorMessage string

	switch {
	case errors.Is(err, services.ErrMaxAttemptsReached):
		statusCode = http.StatusServiceUnavailable
		errorMessage = keySpaceExhausted
	case errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusRequestTimeout
		errorMessage = errorTimeout
	default:
		// Backend failures reach here unchanged; the service performs no
		// internal retry, so surface them and let the caller retry.
		h.logger.Error("Error creating short URL", zap.Error(err))
		statusCode = http.StatusBadGateway
		errorMessage = errorCreatingURL
	}

	c.JSON(statusCode, gin.H{"error": errorMessage})
}

// CreateShortURL handles the creation of a new short URL.
// It validates the input, generates an unused key, publishes the redirect
// object, and returns the short URL.
func (h *URLHandler) CreateShortURL(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	var input types.ShortURLRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Error("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidRequestBody})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		h.logger.Error("Invalid input", zap.Error(err), zap.String("url", input.URL))
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidURLProvided})
		return
	}

	shortURL, err := h.service.GenerateShortURL(ctx, input.URL)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response := types.ShortURLResponse{
		ShortURL:  shortURL.ShortURL,
		NativeURL: shortURL.NativeURL,
		Key:       shortURL.Key,
		CreatedAt: shortURL.CreatedAt,
	}
	c.JSON(http.StatusCreated, response)
}
