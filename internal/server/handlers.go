// Package server provides HTTP handlers and server setup for the playtime service.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"gamelength/internal/cache"
	"gamelength/internal/core"
	"gamelength/internal/metrics"
)

// Resolver runs the resolution chain for one raw title.
type Resolver interface {
	Resolve(ctx context.Context, rawTitle string) *core.PlaytimeEstimate
}

// SearchRequest is the inbound payload for POST /search-game.
type SearchRequest struct {
	GameName string `json:"game_name"`
}

// Handler holds the HTTP handlers
type Handler struct {
	resolver Resolver
	store    cache.Store
}

// NewHandler creates a new handler with the given resolver and cache store
func NewHandler(resolver Resolver, store cache.Store) *Handler {
	return &Handler{
		resolver: resolver,
		store:    store,
	}
}

// SearchGame handles POST /search-game
func (h *Handler) SearchGame(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, core.NewInvalidRequestError("invalid request body: "+err.Error(), err))
	}

	if req.GameName == "" {
		return handleError(c, core.NewInvalidRequestError("game_name is required", nil))
	}

	ctx := c.Request().Context()

	// Cache errors degrade to a miss; the resolution chain is the source
	// of truth.
	if cached, err := h.store.Get(ctx, req.GameName); err != nil {
		slog.Warn("cache read failed", "game_name", req.GameName, "error", err)
	} else if cached != nil {
		metrics.CacheEvents.WithLabelValues("hit").Inc()
		return c.JSON(http.StatusOK, cached)
	}
	metrics.CacheEvents.WithLabelValues("miss").Inc()

	est := h.resolver.Resolve(ctx, req.GameName)
	if est == nil {
		metrics.Resolutions.WithLabelValues("none", "not_found").Inc()
		return handleError(c, core.NewNotFoundError("no results found"))
	}

	if err := h.store.Set(ctx, req.GameName, est); err != nil {
		slog.Warn("cache write failed", "game_name", req.GameName, "error", err)
	}

	metrics.Resolutions.WithLabelValues(string(est.Source), "found").Inc()
	return c.JSON(http.StatusOK, est)
}

// Health handles GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleError converts service errors to appropriate HTTP responses
func handleError(c echo.Context, err error) error {
	var resolveErr *core.ResolveError
	if errors.As(err, &resolveErr) {
		return c.JSON(resolveErr.HTTPStatusCode(), resolveErr.ToJSON())
	}

	// Fallback for unexpected errors
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": map[string]interface{}{
			"type":    "internal_error",
			"message": "an unexpected error occurred",
		},
	})
}
