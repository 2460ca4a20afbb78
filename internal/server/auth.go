package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware creates an Echo middleware that validates the master key.
// Paths listed in skipPaths bypass authentication. If masterKey is empty,
// no authentication is required.
func AuthMiddleware(masterKey string, skipPaths []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if masterKey == "" {
				return next(c)
			}

			for _, path := range skipPaths {
				if c.Path() == path {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": map[string]interface{}{
						"type":    "authentication_error",
						"message": "missing authorization header",
					},
				})
			}

			const prefix = "Bearer "
			if !strings.HasPrefix(authHeader, prefix) {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": map[string]interface{}{
						"type":    "authentication_error",
						"message": "invalid authorization header format, expected 'Bearer <token>'",
					},
				})
			}

			token := strings.TrimPrefix(authHeader, prefix)
			if token != masterKey {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error": map[string]interface{}{
						"type":    "authentication_error",
						"message": "invalid master key",
					},
				})
			}

			return next(c)
		}
	}
}
