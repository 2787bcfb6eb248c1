package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		// Default cache times by endpoint pattern
		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case strings.HasPrefix(path, "/v1/decode"):
			ttl = "public, max-age=86400" // Decodes are deterministic

		case strings.HasPrefix(path, "/v1/distance") ||
			strings.HasPrefix(path, "/v1/hypotenuse") ||
			strings.HasPrefix(path, "/v1/pythag") ||
			strings.HasPrefix(path, "/v1/offset") ||
			strings.HasPrefix(path, "/v1/cutback"):
			ttl = "public, max-age=3600" // Pure math, same inputs same answer

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case path == "/graphql":
			ttl = "private, max-age=0" // GraphQL varies wildly

		case path == "/v1/jobs/stats":
			ttl = "public, max-age=60" // Job stats: 1 min

		case strings.HasPrefix(path, "/v1/jobs"):
			ttl = "private, max-age=0" // Job history changes on every save

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300" // 5 min default for API endpoints
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
