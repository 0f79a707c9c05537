package controllers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"qms-server/internal/ai/tools"
	"qms-server/internal/models"
	"qms-server/internal/utils"
)

// AIController handles HTTP requests for the AI assistant endpoints.
type AIController struct {
	toolService  *tools.Service
	emailService *utils.EmailService
}

// NewAIController returns a new instance of AIController. emailService
// may be nil when SMTP is not configured.
func NewAIController(toolService *tools.Service, emailService *utils.EmailService) *AIController {
	return &AIController{
		toolService:  toolService,
		emailService: emailService,
	}
}

// ListTools handles GET /ai/tools
func (aic *AIController) ListTools(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"tools":   tools.AvailableTools(),
	})
}

// ExecuteQuery handles POST /ai/query
func (aic *AIController) ExecuteQuery(c echo.Context) error {
	var req models.AIQueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
	}

	result := aic.toolService.Execute(c.Request().Context(), req.Tool, req.Query, req.Context)

	resp := models.AIResponse{
		Tool:   req.Tool,
		Query:  req.Query,
		Result: result,
	}

	// A top-level error in the result means the tool failed, even when
	// the handler itself returned normally.
	if errMsg, ok := result["error"].(string); ok && errMsg != "" {
		resp.Success = false
		resp.Error = errMsg
	} else if success, ok := result["success"].(bool); ok {
		resp.Success = success
	} else {
		resp.Success = true
	}

	return c.JSON(http.StatusOK, resp)
}

// Chat handles POST /ai/chat
func (aic *AIController) Chat(c echo.Context) error {
	var req models.AIChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "Message is required"})
	}

	tool, result := aic.toolService.Chat(c.Request().Context(), req.Message, req.Context)

	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   req.Message,
		"tool_used": tool,
		"response":  result,
	})
}

// SendNotification handles POST /ai/notifications/send
func (aic *AIController) SendNotification(c echo.Context) error {
	if aic.emailService == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"detail": "email delivery is not configured"})
	}

	var req models.NotificationSendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
	}
	if req.Subject == "" || req.Body == "" || len(req.Recipients) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "subject, body and recipients are required"})
	}
	for _, recipient := range req.Recipients {
		if recipient == "" {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": "empty recipient address"})
		}
		if err := utils.ValidateEmail(recipient); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": fmt.Sprintf("invalid recipient %s: %v", recipient, err)})
		}
	}

	if err := aic.emailService.SendNotification(req.Subject, req.Body, req.Recipients); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": fmt.Sprintf("failed to send notification: %v", err)})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"recipients": len(req.Recipients),
	})
}
