package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "anya/internal/errors"
	"anya/internal/model"
)

func TestAuthHandler_Signup(t *testing.T) {
	e := newEcho()

	t.Run("success sets the session cookie", func(t *testing.T) {
		authSvc := new(MockAuthService)
		user := &model.User{ID: "u1", Name: "Ann Lee", Email: "ann@example.com"}
		session := &model.Session{ID: "s1", Token: "tok", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
		authSvc.On("Signup", mock.Anything, "Ann Lee", "ann@example.com", "password123", mock.Anything, mock.Anything).Return(user, session, nil)

		h := NewAuthHandler(authSvc, "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodPost, "/api/signup", `{"name":"Ann Lee","email":"ann@example.com","password":"password123"}`)

		assert.NoError(t, h.Signup(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Signup successful", body["message"])

		cookies := rec.Result().Cookies()
		assert.NotEmpty(t, cookies)
		assert.Equal(t, SessionCookieName, cookies[0].Name)
		assert.Equal(t, "tok", cookies[0].Value)
	})

	t.Run("validation failures are 400", func(t *testing.T) {
		invalid := []string{
			`{"name":"A","email":"ann@example.com","password":"password123"}`,
			`{"name":"Ann Lee","email":"not-an-email","password":"password123"}`,
			`{"name":"Ann Lee","email":"ann@example.com","password":"short"}`,
			`{}`,
		}
		for _, payload := range invalid {
			h := NewAuthHandler(new(MockAuthService), "http://localhost:5173")
			c, rec := newJSONContext(e, http.MethodPost, "/api/signup", payload)

			assert.NoError(t, h.Signup(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]any
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
		}
	})

	t.Run("duplicate email maps to 409", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("Signup", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil, apperrors.ErrUserAlreadyExists)

		h := NewAuthHandler(authSvc, "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodPost, "/api/signup", `{"name":"Ann Lee","email":"taken@example.com","password":"password123"}`)

		assert.NoError(t, h.Signup(c))
		assert.Equal(t, http.StatusConflict, rec.Code)

		var body apperrors.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "USER_ALREADY_EXISTS", body.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	e := newEcho()

	t.Run("success returns the token", func(t *testing.T) {
		authSvc := new(MockAuthService)
		user := &model.User{ID: "u1", Email: "ann@example.com"}
		session := &model.Session{Token: "tok", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
		authSvc.On("Login", mock.Anything, "ann@example.com", "password123", mock.Anything, mock.Anything).Return(user, session, nil)

		h := NewAuthHandler(authSvc, "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodPost, "/api/login", `{"email":"ann@example.com","password":"password123"}`)

		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Login successful", body["message"])
		assert.Equal(t, "tok", body["token"])
	})

	t.Run("bad credentials map to 401", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil, apperrors.ErrInvalidCredentials)

		h := NewAuthHandler(authSvc, "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodPost, "/api/login", `{"email":"ann@example.com","password":"wrongpassword"}`)

		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body apperrors.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "INVALID_CREDENTIALS", body.Code)
	})

	t.Run("banned user maps to 403", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("Login", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil, apperrors.ErrUserBanned)

		h := NewAuthHandler(authSvc, "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodPost, "/api/login", `{"email":"banned@example.com","password":"password123"}`)

		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAuthHandler_GetSession(t *testing.T) {
	e := newEcho()

	t.Run("unauthenticated", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService), "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodGet, "/api/auth/get-session", "")

		assert.NoError(t, h.GetSession(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("resolved session is echoed back", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService), "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodGet, "/api/auth/get-session", "")
		c.Set(ContextKeyUser, &model.User{ID: "u1", Email: "ann@example.com"})
		c.Set(ContextKeySession, &model.Session{ID: "s1", UserID: "u1"})

		assert.NoError(t, h.GetSession(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotNil(t, body["user"])
		assert.NotNil(t, body["session"])
	})
}

func TestAuthHandler_LinkSocial(t *testing.T) {
	e := newEcho()

	t.Run("requires authentication", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService), "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodPost, "/api/auth/link-social", `{"provider":"discord"}`)

		assert.NoError(t, h.LinkSocial(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects unknown providers", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService), "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodPost, "/api/auth/link-social", `{"provider":"github"}`)
		c.Set(ContextKeyUser, &model.User{ID: "u1"})

		assert.NoError(t, h.LinkSocial(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns the authorization url", func(t *testing.T) {
		authSvc := new(MockAuthService)
		authSvc.On("OAuthBeginURL", "u1", "/settings").Return("https://discord.com/oauth2/authorize?state=x", nil)

		h := NewAuthHandler(authSvc, "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodPost, "/api/auth/link-social", `{"provider":"discord","callbackURL":"/settings"}`)
		c.Set(ContextKeyUser, &model.User{ID: "u1"})

		assert.NoError(t, h.LinkSocial(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "https://discord.com/oauth2/authorize?state=x", body["url"])
	})
}

func TestAuthHandler_Callback(t *testing.T) {
	e := newEcho()

	t.Run("provider error redirects to the ui with the reason", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService), "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodGet, "/auth/callback?error=access_denied", "")

		assert.NoError(t, h.Callback(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "http://localhost:5173?error=access_denied", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("missing code or state is 400", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService), "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodGet, "/auth/callback?code=abc", "")

		assert.NoError(t, h.Callback(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("success sets the cookie and redirects", func(t *testing.T) {
		authSvc := new(MockAuthService)
		user := &model.User{ID: "u1"}
		session := &model.Session{Token: "tok", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
		authSvc.On("OAuthCallback", mock.Anything, "abc", "signed-state", mock.Anything, mock.Anything).Return(user, session, "/dashboard", nil)

		h := NewAuthHandler(authSvc, "http://localhost:5173")
		c, rec := newJSONContext(e, http.MethodGet, "/auth/callback?code=abc&state=signed-state", "")

		assert.NoError(t, h.Callback(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))

		cookies := rec.Result().Cookies()
		assert.NotEmpty(t, cookies)
		assert.Equal(t, "tok", cookies[0].Value)
	})
}
