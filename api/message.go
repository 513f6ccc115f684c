package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MessageRequest is one inbound chat message.
type MessageRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// EndSessionRequest identifies the session to clear.
type EndSessionRequest struct {
	UserID string `json:"user_id"`
}

// HandleMessage runs one chat message through the orchestrator.
// POST /message
func (h *Handler) HandleMessage(c echo.Context) error {
	ctx := c.Request().Context()

	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	reply := h.svc.HandleMessage(ctx, req.UserID, req.Message)
	if reply.RequiresIntake {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"response":        reply.Response,
			"requires_intake": true,
		})
	}

	resp := map[string]interface{}{"response": reply.Response}
	if reply.Trials != nil {
		resp["trials"] = reply.Trials
	}
	return c.JSON(http.StatusOK, resp)
}

// EndSession clears the session. Always succeeds, even when no session
// exists.
// POST /end-session
func (h *Handler) EndSession(c echo.Context) error {
	var req EndSessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user_id is required"})
	}

	h.svc.EndSession(req.UserID)
	return c.JSON(http.StatusOK, map[string]string{"status": "session_cleared"})
}
