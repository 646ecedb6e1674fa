package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths lists URL paths that bypass authentication: the credential
// endpoints themselves and infrastructure health checks.
var publicPaths = map[string]bool{
	"/":                true,
	"/health":          true,
	"/health/db":       true,
	"/api/auth/signup": true,
	"/api/auth/signin": true,
}

// AuthSkipper returns true for requests whose path should skip authentication.
// Pass this as the skipper on BearerMiddleware.
func AuthSkipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}

// IsPublicPath reports whether the given path bypasses authentication.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}
