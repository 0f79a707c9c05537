package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"qms-server/internal/ai/gateway"
	"qms-server/internal/ai/parsers"
	"qms-server/internal/logics"
	"qms-server/internal/models"
)

// AuditSource supplies audit records to the tools. AuditService
// satisfies it; tests supply an in-memory fake.
type AuditSource interface {
	AllAudits(limit int) ([]models.Audit, error)
	GetAudit(auditID string) (*models.Audit, error)
}

// ResponseCache caches interpreted tool results. A nil cache disables
// caching entirely.
type ResponseCache interface {
	Get(ctx context.Context, keyPrefix string, data map[string]any, value interface{}) (bool, error)
	Set(ctx context.Context, keyPrefix string, data map[string]any, value interface{}) error
	ClearByPrefix(ctx context.Context, keyPrefix string) error
}

const cacheKeyPrefix = "ai:tool"

// Service dispatches tool invocations: it assembles audit data, sends
// a prompt through the model gateway, and interprets the reply.
type Service struct {
	Gateway gateway.Gateway
	Source  AuditSource
	Cache   ResponseCache
	Logger  *zap.Logger
}

// NewService creates a new tool dispatch Service. cache may be nil.
func NewService(gw gateway.Gateway, source AuditSource, cache ResponseCache, logger *zap.Logger) *Service {
	return &Service{
		Gateway: gw,
		Source:  source,
		Cache:   cache,
		Logger:  logger,
	}
}

// toolHandlers maps tool ids to their implementations. Dispatch is a
// table lookup so adding a tool means adding a row here and a catalog
// entry in tools.go.
var toolHandlers = map[string]func(*Service, context.Context, string, map[string]any) map[string]any{
	ToolShowHighRiskEvents:   (*Service).showHighRiskEvents,
	ToolSummarizeOpenEvents:  (*Service).summarizeOpenEvents,
	ToolSuggestNextSteps:     (*Service).suggestNextSteps,
	ToolIdentifyTrends:       (*Service).identifyTrends,
	ToolGenerateNotification: (*Service).generateNotification,
}

// Execute runs the named tool and returns its result object. It never
// panics outward and never returns nil: every failure mode becomes a
// result carrying an "error" key.
func (s *Service) Execute(ctx context.Context, tool, query string, toolCtx map[string]any) (result map[string]any) {
	traceID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("AI tool panicked",
				zap.String("traceId", traceID),
				zap.String("tool", tool),
				zap.Any("panic", r))
			result = map[string]any{"error": fmt.Sprintf("AI service error: %v", r)}
		}
	}()

	handler, ok := toolHandlers[tool]
	if !ok {
		return map[string]any{"error": fmt.Sprintf("Unknown tool: %s", tool)}
	}

	cacheKey := map[string]any{"tool": tool, "query": query, "context": toolCtx}
	if s.Cache != nil {
		var cached map[string]any
		if hit, _ := s.Cache.Get(ctx, cacheKeyPrefix, cacheKey, &cached); hit {
			return cached
		}
	}

	start := time.Now()
	result = handler(s, ctx, query, toolCtx)
	s.Logger.Info("AI tool executed",
		zap.String("traceId", traceID),
		zap.String("tool", tool),
		zap.Duration("elapsed", time.Since(start)))

	if s.Cache != nil {
		if success, _ := result["success"].(bool); success {
			if err := s.Cache.Set(ctx, cacheKeyPrefix, cacheKey, result); err != nil {
				s.Logger.Warn("Failed to cache AI tool result", zap.Error(err))
			}
		}
	}

	return result
}

// InvalidateCache drops every cached tool result. Cached analyses are
// derived from stored audits, so this runs whenever an audit record
// changes.
func (s *Service) InvalidateCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.ClearByPrefix(ctx, cacheKeyPrefix); err != nil {
		s.Logger.Warn("Failed to invalidate AI tool cache", zap.Error(err))
	}
}

// RouteMessage picks the tool for a free-form chat message. Routes are
// checked in declaration order; unmatched messages get the open-events
// summary.
func RouteMessage(message string) string {
	lower := strings.ToLower(message)
	for _, route := range chatRoutes {
		if strings.Contains(lower, route.Keyword) {
			return route.Tool
		}
	}
	return ToolSummarizeOpenEvents
}

// Chat routes a free-form message to a tool and executes it, returning
// the selected tool id alongside the result.
func (s *Service) Chat(ctx context.Context, message string, toolCtx map[string]any) (string, map[string]any) {
	tool := RouteMessage(message)
	return tool, s.Execute(ctx, tool, message, toolCtx)
}

// auditIDPattern matches audit ids embedded in free text.
var auditIDPattern = regexp.MustCompile(`AUD-\d{4}-[A-Z0-9]+`)

func (s *Service) showHighRiskEvents(ctx context.Context, query string, _ map[string]any) map[string]any {
	audits, err := s.Source.AllAudits(recordFetchLimit)
	if err != nil {
		return toolError(ToolShowHighRiskEvents, query, err)
	}

	records := make([]analysisRecord, 0, len(audits))
	for i := range audits {
		records = append(records, toAnalysisRecord(&audits[i]))
	}

	payload, err := marshalCapped(records, maxAnalysisRecords)
	if err != nil {
		return toolError(ToolShowHighRiskEvents, query, err)
	}

	raw, err := s.Gateway.Generate(ctx, fmt.Sprintf(highRiskPrompt, query, payload))
	if err != nil {
		return toolError(ToolShowHighRiskEvents, query, err)
	}

	analysis, fallback := parsers.ExtractJSON(raw)
	if fallback {
		return fallbackResult(ToolShowHighRiskEvents, query, raw)
	}

	// Keep only the stored audits the model actually flagged.
	flagged := map[string]bool{}
	if items, ok := analysis["high_risk_audits"].([]any); ok {
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				if id, ok := m["audit_id"].(string); ok && id != "" {
					flagged[id] = true
				}
			}
		}
	}

	filtered := make([]models.AuditListItem, 0)
	for i := range audits {
		if flagged[audits[i].AuditID] {
			filtered = append(filtered, audits[i].ToListItem())
		}
	}

	return map[string]any{
		"tool":            ToolShowHighRiskEvents,
		"query":           query,
		"ai_analysis":     analysis,
		"filtered_audits": filtered,
		"success":         true,
	}
}

func (s *Service) summarizeOpenEvents(ctx context.Context, query string, _ map[string]any) map[string]any {
	audits, err := s.Source.AllAudits(recordFetchLimit)
	if err != nil {
		return toolError(ToolSummarizeOpenEvents, query, err)
	}

	// Open means Planned or In Progress, created within the last 30
	// days.
	now := time.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -30)

	records := make([]openRecord, 0)
	for i := range audits {
		a := &audits[i]
		if a.Status != models.AuditStatusPlanned && a.Status != models.AuditStatusInProgress {
			continue
		}
		if a.CreatedAt.IsZero() || a.CreatedAt.Before(cutoff) {
			continue
		}
		records = append(records, toOpenRecord(a))
	}

	payload, err := marshalCapped(records, maxOpenRecords)
	if err != nil {
		return toolError(ToolSummarizeOpenEvents, query, err)
	}

	raw, err := s.Gateway.Generate(ctx, fmt.Sprintf(openEventsPrompt, len(records), query, payload))
	if err != nil {
		return toolError(ToolSummarizeOpenEvents, query, err)
	}

	analysis, fallback := parsers.ExtractJSON(raw)
	if fallback {
		return fallbackResult(ToolSummarizeOpenEvents, query, raw)
	}

	return map[string]any{
		"tool":        ToolSummarizeOpenEvents,
		"query":       query,
		"ai_analysis": analysis,
		"audit_count": len(records),
		"audits":      records,
		"success":     true,
	}
}

func (s *Service) suggestNextSteps(ctx context.Context, query string, toolCtx map[string]any) map[string]any {
	auditID, _ := toolCtx["audit_id"].(string)
	if auditID == "" {
		auditID = auditIDPattern.FindString(query)
		if auditID == "" {
			return map[string]any{"error": "No audit ID specified"}
		}
	}

	audit, err := s.Source.GetAudit(auditID)
	if err != nil {
		if errors.Is(err, logics.ErrAuditNotFound) {
			return map[string]any{"error": fmt.Sprintf("Audit %s not found", auditID)}
		}
		return toolError(ToolSuggestNextSteps, query, err)
	}

	details := toAuditDetails(audit)
	payload, err := json.Marshal(details)
	if err != nil {
		return toolError(ToolSuggestNextSteps, query, err)
	}

	raw, err := s.Gateway.Generate(ctx, fmt.Sprintf(nextStepsPrompt, query, payload))
	if err != nil {
		return toolError(ToolSuggestNextSteps, query, err)
	}

	analysis, fallback := parsers.ExtractJSON(raw)
	if fallback {
		return fallbackResult(ToolSuggestNextSteps, query, raw)
	}

	return map[string]any{
		"tool":               ToolSuggestNextSteps,
		"query":              query,
		"audit":              details,
		"ai_recommendations": analysis,
		"success":            true,
	}
}

func (s *Service) identifyTrends(ctx context.Context, query string, _ map[string]any) map[string]any {
	audits, err := s.Source.AllAudits(recordFetchLimit)
	if err != nil {
		return toolError(ToolIdentifyTrends, query, err)
	}

	records := make([]trendRecord, 0, len(audits))
	for i := range audits {
		records = append(records, toTrendRecord(&audits[i]))
	}

	payload, err := marshalCapped(records, maxTrendRecords)
	if err != nil {
		return toolError(ToolIdentifyTrends, query, err)
	}

	raw, err := s.Gateway.Generate(ctx, fmt.Sprintf(trendsPrompt, query, payload))
	if err != nil {
		return toolError(ToolIdentifyTrends, query, err)
	}

	analysis, fallback := parsers.ExtractJSON(raw)
	if fallback {
		return fallbackResult(ToolIdentifyTrends, query, raw)
	}

	return map[string]any{
		"tool":        ToolIdentifyTrends,
		"query":       query,
		"ai_analysis": analysis,
		"data_points": len(records),
		"success":     true,
	}
}

func (s *Service) generateNotification(ctx context.Context, query string, toolCtx map[string]any) map[string]any {
	notificationType := "general"
	if t, ok := toolCtx["type"].(string); ok && t != "" {
		notificationType = t
	}

	// The audit reference is optional; without one the model drafts
	// generic templates.
	var details any = map[string]any{}
	auditSnippet := "General notification"
	if auditID, _ := toolCtx["audit_id"].(string); auditID != "" {
		audit, err := s.Source.GetAudit(auditID)
		if err != nil && !errors.Is(err, logics.ErrAuditNotFound) {
			return toolError(ToolGenerateNotification, query, err)
		}
		if audit != nil {
			d := toNotificationDetails(audit)
			payload, err := json.Marshal(d)
			if err != nil {
				return toolError(ToolGenerateNotification, query, err)
			}
			details = d
			auditSnippet = string(payload)
		}
	}

	raw, err := s.Gateway.Generate(ctx, fmt.Sprintf(notificationPrompt, query, notificationType, auditSnippet))
	if err != nil {
		return toolError(ToolGenerateNotification, query, err)
	}

	analysis, fallback := parsers.ExtractJSON(raw)
	if fallback {
		return fallbackResult(ToolGenerateNotification, query, raw)
	}

	return map[string]any{
		"tool":              ToolGenerateNotification,
		"query":             query,
		"notification_type": notificationType,
		"audit_details":     details,
		"ai_generated":      analysis,
		"success":           true,
	}
}

// marshalCapped serializes at most cap records to JSON for prompt
// embedding.
func marshalCapped[T any](records []T, limit int) (string, error) {
	if len(records) > limit {
		records = records[:limit]
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to serialize records: %w", err)
	}
	return string(data), nil
}

// toolError wraps a processing failure in the result shape clients
// expect.
func toolError(tool, query string, err error) map[string]any {
	return map[string]any{
		"tool":    tool,
		"query":   query,
		"success": false,
		"error":   fmt.Sprintf("Processing error: %v", err),
	}
}

// fallbackResult is returned when the model reply could not be
// interpreted as JSON. The raw reply is attached for debugging.
func fallbackResult(tool, query, raw string) map[string]any {
	return map[string]any{
		"tool":        tool,
		"query":       query,
		"ai_response": raw,
		"success":     false,
		"error":       "AI returned non-JSON response. Check raw response for details.",
	}
}
