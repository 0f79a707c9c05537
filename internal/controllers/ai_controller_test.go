package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"qms-server/internal/ai/tools"
	"qms-server/internal/controllers"
	"qms-server/internal/logics"
	"qms-server/internal/models"
	"qms-server/internal/utils"
)

type stubGateway struct {
	reply string
}

func (g *stubGateway) Generate(_ context.Context, _ string) (string, error) {
	return g.reply, nil
}

type stubSource struct {
	audits []models.Audit
}

func (s *stubSource) AllAudits(_ int) ([]models.Audit, error) {
	return s.audits, nil
}

func (s *stubSource) GetAudit(auditID string) (*models.Audit, error) {
	for i := range s.audits {
		if s.audits[i].AuditID == auditID {
			return &s.audits[i], nil
		}
	}
	return nil, logics.ErrAuditNotFound
}

func newAIController(reply string) *controllers.AIController {
	toolService := tools.NewService(&stubGateway{reply: reply}, &stubSource{}, nil, zap.NewNop())
	return controllers.NewAIController(toolService, nil)
}

func doJSON(handler echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, handler(c)
}

func TestListTools(t *testing.T) {
	controller := newAIController("")

	rec, err := doJSON(controller.ListTools, http.MethodGet, "/ai/tools", "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool             `json:"success"`
		Tools   []tools.Metadata `json:"tools"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Tools, 5)
}

func TestExecuteQuery(t *testing.T) {
	t.Run("successful tool run", func(t *testing.T) {
		controller := newAIController(`{"frequency_trends": "steady"}`)

		rec, err := doJSON(controller.ExecuteQuery, http.MethodPost, "/ai/query",
			`{"tool": "identify_trends", "query": "patterns?"}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.AIResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "identify_trends", resp.Tool)
		assert.Empty(t, resp.Error)
	})

	t.Run("unknown tool reports failure in envelope", func(t *testing.T) {
		controller := newAIController("")

		rec, err := doJSON(controller.ExecuteQuery, http.MethodPost, "/ai/query",
			`{"tool": "make_coffee", "query": "espresso"}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code, "tool failures are payload-level, not HTTP-level")

		var resp models.AIResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Unknown tool: make_coffee", resp.Error)
	})

	t.Run("unparseable model reply reports failure in envelope", func(t *testing.T) {
		controller := newAIController("no JSON here, sorry")

		rec, err := doJSON(controller.ExecuteQuery, http.MethodPost, "/ai/query",
			`{"tool": "identify_trends", "query": "patterns?"}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp models.AIResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "non-JSON")
		assert.Equal(t, "no JSON here, sorry", resp.Result["ai_response"])
	})
}

func TestChat(t *testing.T) {
	t.Run("missing message", func(t *testing.T) {
		controller := newAIController("")

		rec, err := doJSON(controller.Chat, http.MethodPost, "/ai/chat", `{}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("routes message to tool", func(t *testing.T) {
		controller := newAIController(`{"frequency_trends": "steady"}`)

		rec, err := doJSON(controller.Chat, http.MethodPost, "/ai/chat",
			`{"message": "show me audit trends"}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Success  bool           `json:"success"`
			ToolUsed string         `json:"tool_used"`
			Response map[string]any `json:"response"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, tools.ToolIdentifyTrends, body.ToolUsed)
		assert.Equal(t, true, body.Response["success"])
	})
}

func TestSendNotification(t *testing.T) {
	t.Run("without SMTP configured", func(t *testing.T) {
		controller := newAIController("")

		rec, err := doJSON(controller.SendNotification, http.MethodPost, "/ai/notifications/send",
			`{"subject": "s", "body": "b", "recipients": ["a@b.com"]}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	newController := func() *controllers.AIController {
		toolService := tools.NewService(&stubGateway{}, &stubSource{}, nil, zap.NewNop())
		emailService := utils.NewEmailService("smtp.example.com", 587, "", "", "noreply@example.com")
		return controllers.NewAIController(toolService, emailService)
	}

	t.Run("missing fields", func(t *testing.T) {
		rec, err := doJSON(newController().SendNotification, http.MethodPost, "/ai/notifications/send",
			`{"subject": "", "body": "b", "recipients": ["a@b.com"]}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("no recipients", func(t *testing.T) {
		rec, err := doJSON(newController().SendNotification, http.MethodPost, "/ai/notifications/send",
			`{"subject": "s", "body": "b", "recipients": []}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed recipient address", func(t *testing.T) {
		rec, err := doJSON(newController().SendNotification, http.MethodPost, "/ai/notifications/send",
			`{"subject": "s", "body": "b", "recipients": ["not-an-email"]}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
