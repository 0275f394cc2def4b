package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"anya/internal/model"
)

// Context keys set by the session-resolution middleware.
const (
	ContextKeyUser    = "user"
	ContextKeySession = "session"
)

// SessionCookieName carries the opaque session token for browser clients.
const SessionCookieName = "anya.session_token"

// CurrentUser returns the request's resolved user, or nil when unauthenticated.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextKeyUser).(*model.User)
	return user
}

// CurrentSession returns the request's resolved session, or nil.
func CurrentSession(c echo.Context) *model.Session {
	session, _ := c.Get(ContextKeySession).(*model.Session)
	return session
}

// SessionToken extracts the session token from the bearer header or cookie.
func SessionToken(c echo.Context) string {
	const bearerPrefix = "Bearer "
	if h := c.Request().Header.Get(echo.HeaderAuthorization); len(h) > len(bearerPrefix) && h[:len(bearerPrefix)] == bearerPrefix {
		return h[len(bearerPrefix):]
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func setSessionCookie(c echo.Context, session *model.Session) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
