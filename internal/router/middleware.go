package router

import (
	"github.com/labstack/echo/v4"

	"anya/internal/handler"
	"anya/internal/service"
)

// SessionResolver resolves the request's session (bearer token or cookie) or
// API key, and sets user/session into the echo context. Unauthenticated
// requests pass through with nil values; route handlers decide whether auth
// is required.
func SessionResolver(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			if token := handler.SessionToken(c); token != "" {
				if user, session, err := authService.GetSession(ctx, token); err == nil {
					c.Set(handler.ContextKeyUser, user)
					c.Set(handler.ContextKeySession, session)
					return next(c)
				}
			}

			if key := c.Request().Header.Get("X-API-Key"); key != "" {
				if user, err := authService.AuthenticateAPIKey(ctx, key); err == nil {
					c.Set(handler.ContextKeyUser, user)
				}
			}
			return next(c)
		}
	}
}
