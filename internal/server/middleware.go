package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"gamelength/internal/core"
)

// RequestIDMiddleware assigns each request an ID (honoring an inbound
// X-Request-ID header), attaches it to the request context for backend
// propagation, and echoes it on the response.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}

			ctx := core.WithRequestID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set("X-Request-ID", id)

			return next(c)
		}
	}
}
