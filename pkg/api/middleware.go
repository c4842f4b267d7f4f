package api

import (
	echo "github.com/labstack/echo/v5"
)

// secureHeaders sets baseline security headers on every response. Responses
// are marked non-cacheable by default because session state changes while a
// run is active; the stream handler overrides Cache-Control with its own
// streaming value.
func secureHeaders() echo.MiddlewareFunc {
	headers := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
		"Cache-Control":          "no-store",
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			h := c.Response().Header()
			for name, value := range headers {
				h.Set(name, value)
			}
			return next(c)
		}
	}
}
