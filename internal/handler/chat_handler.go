package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"anya/internal/ai"
)

// ChatHandler exposes the chat completion wrapper to authenticated clients.
type ChatHandler struct {
	client *ai.Client
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(client *ai.Client) *ChatHandler {
	return &ChatHandler{client: client}
}

// ChatRequest is an ordered list of chat messages with an optional key override.
type ChatRequest struct {
	Messages []ai.Message `json:"messages" validate:"required,min=1,dive"`
	APIKey   string       `json:"apiKey"`
}

// Chat godoc
// @Summary Forward chat messages to the completion endpoint
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Chat messages"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Router /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	if CurrentUser(c) == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	}

	message, err := h.client.Chat(c.Request().Context(), req.Messages, req.APIKey)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": message})
}
