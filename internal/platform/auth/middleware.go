package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// BearerMiddleware validates the Authorization header on every request and
// places the resolved Session in the request context. Requests matched by
// the skipper (sign-up, sign-in, health) pass through unauthenticated.
//
// The failure modes are distinguished so clients get an accurate message,
// but every one of them is a 401.
func BearerMiddleware(signer *Signer, skipper func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed: No token provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed: Invalid token format")
			}

			sess, err := signer.Verify(parts[1])
			if err != nil {
				switch {
				case errors.Is(err, ErrTokenExpired):
					return echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed: Token expired")
				case errors.Is(err, ErrTokenMalformed):
					return echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed: Invalid token")
				default:
					return echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed: Unable to verify token")
				}
			}

			c.SetRequest(c.Request().WithContext(ContextWithSession(c.Request().Context(), sess)))
			return next(c)
		}
	}
}
