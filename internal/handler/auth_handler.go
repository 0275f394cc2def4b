package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	apperrors "anya/internal/errors"
	"anya/internal/model"
	"anya/internal/service"
)

// AuthHandler handles signup, login and the delegated auth routes.
type AuthHandler struct {
	authService service.AuthService
	uiHomeURL   string
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, uiHomeURL string) *AuthHandler {
	return &AuthHandler{authService: authService, uiHomeURL: uiHomeURL}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LinkSocialRequest starts linking a social provider to the signed-in user.
type LinkSocialRequest struct {
	Provider    string `json:"provider" validate:"required"`
	CallbackURL string `json:"callbackURL"`
}

// Signup godoc
// @Summary Sign up with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} errors.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}

	user, session, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	setSessionCookie(c, session)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Signup successful",
		"user":    user,
	})
}

// Login godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}

	user, session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	setSessionCookie(c, session)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"user":    user,
		"token":   session.Token,
	})
}

// SignOut godoc
// @Summary Invalidate the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	token := SessionToken(c)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "Signed out"})
}

// GetSession godoc
// @Summary Return the current user and session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/get-session [get]
func (h *AuthHandler) GetSession(c echo.Context) error {
	user := CurrentUser(c)
	session := CurrentSession(c)
	if user == nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user, "session": session})
}

// VerifyEmail godoc
// @Summary Consume an email verification token
// @Tags auth
// @Produce json
// @Param token query string true "Verification token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing token"})
	}
	user, err := h.authService.VerifyEmail(c.Request().Context(), token)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Email verified", "user": user})
}

// SignInDiscord godoc
// @Summary Begin Discord social login
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/sign-in/discord [get]
func (h *AuthHandler) SignInDiscord(c echo.Context) error {
	redirect := c.QueryParam("callbackURL")
	authURL, err := h.authService.OAuthBeginURL("", redirect)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"url": authURL})
}

// LinkSocial godoc
// @Summary Begin linking a social provider to the signed-in user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LinkSocialRequest true "Provider to link"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/link-social [post]
func (h *AuthHandler) LinkSocial(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req LinkSocialRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}
	if req.Provider != model.ProviderDiscord {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "unknown provider"})
	}

	authURL, err := h.authService.OAuthBeginURL(user.ID, req.CallbackURL)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"url": authURL})
}

// Callback godoc
// @Summary Complete the OAuth authorization flow
// @Tags auth
// @Param code query string true "Authorization code"
// @Param state query string true "Signed state"
// @Success 302
// @Router /auth/callback [get]
func (h *AuthHandler) Callback(c echo.Context) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		return c.Redirect(http.StatusFound, h.uiHomeURL+"?error="+url.QueryEscape(errParam))
	}

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing code or state"})
	}

	_, session, redirect, err := h.authService.OAuthCallback(c.Request().Context(), code, state, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	setSessionCookie(c, session)
	target := h.uiHomeURL
	if redirect != "" {
		target = redirect
	}
	return c.Redirect(http.StatusFound, target)
}
