package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "anya/internal/errors"
	"anya/internal/model"
	"anya/internal/service"
)

// UserHandler bundles the user CRUD and /me endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserRequest is the payload for creating or replacing a user record.
type UserRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
}

// Me godoc
// @Summary Return the persisted record of the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	dbUser, err := h.svc.Get(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"user": dbUser})
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /user [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Create godoc
// @Summary Create a user record
// @Tags users
// @Accept json
// @Produce json
// @Param user body UserRequest true "User payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} errors.ErrorResponse
// @Router /user [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}

	user := &model.User{ID: req.ID, Name: req.Name, Email: req.Email}
	created, err := h.svc.Create(c.Request().Context(), user)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User created successfully",
		"user":    created,
	})
}

// Get godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if httpErr := apperrors.MapErrorToHTTP(err); httpErr.StatusCode == http.StatusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// Update godoc
// @Summary Replace a user record
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body UserRequest true "User payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}

	updated, err := h.svc.Update(c.Request().Context(), c.Param("id"), &model.User{Name: req.Name, Email: req.Email})
	if err != nil {
		if httpErr := apperrors.MapErrorToHTTP(err); httpErr.StatusCode == http.StatusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User updated successfully",
		"user":    updated,
	})
}
