package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"qms-server/internal/logics"
	"qms-server/internal/models"
	"qms-server/internal/utils"
)

// AnalysisCacheInvalidator drops cached AI analyses. Cached tool
// results are derived from audit data, so mutations must flush them.
type AnalysisCacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// AuditController handles HTTP requests for audit records.
type AuditController struct {
	auditService *logics.AuditService
	invalidator  AnalysisCacheInvalidator
}

// NewAuditController returns a new instance of AuditController.
// invalidator may be nil when response caching is disabled.
func NewAuditController(auditService *logics.AuditService, invalidator AnalysisCacheInvalidator) *AuditController {
	return &AuditController{
		auditService: auditService,
		invalidator:  invalidator,
	}
}

func (ac *AuditController) invalidateAnalyses(c echo.Context) {
	if ac.invalidator != nil {
		ac.invalidator.InvalidateCache(c.Request().Context())
	}
}

// CreateAudit handles POST /audits
func (ac *AuditController) CreateAudit(c echo.Context) error {
	var input models.AuditCreate
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
	}

	audit, err := ac.auditService.CreateAudit(input)
	if err != nil {
		if utils.IsValidationError(err) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": fmt.Sprintf("Internal server error: %v", err)})
	}

	ac.invalidateAnalyses(c)

	return c.JSON(http.StatusCreated, audit.ToResponse())
}

// ListAudits handles GET /audits
func (ac *AuditController) ListAudits(c echo.Context) error {
	filter := logics.AuditFilter{
		AuditID:     c.QueryParam("audit_id"),
		AuditType:   c.QueryParam("audit_type"),
		Status:      c.QueryParam("status"),
		LeadAuditor: c.QueryParam("lead_auditor"),
		Site:        c.QueryParam("site"),
		Limit:       100,
	}

	if skipStr := c.QueryParam("skip"); skipStr != "" {
		skip, err := strconv.Atoi(skipStr)
		if err != nil || skip < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid skip parameter"})
		}
		filter.Skip = skip
	}
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid limit parameter"})
		}
		filter.Limit = limit
	}

	audits, err := ac.auditService.ListAudits(filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": fmt.Sprintf("Internal server error: %v", err)})
	}

	items := make([]models.AuditListItem, 0, len(audits))
	for i := range audits {
		items = append(items, audits[i].ToListItem())
	}

	return c.JSON(http.StatusOK, items)
}

// GetAudit handles GET /audits/:audit_id
func (ac *AuditController) GetAudit(c echo.Context) error {
	audit, err := ac.auditService.GetAudit(c.Param("audit_id"))
	if err != nil {
		if errors.Is(err, logics.ErrAuditNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "Audit not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": fmt.Sprintf("Internal server error: %v", err)})
	}

	return c.JSON(http.StatusOK, audit.ToResponse())
}

// UpdateAudit handles PUT /audits/:audit_id
func (ac *AuditController) UpdateAudit(c echo.Context) error {
	var updates models.AuditUpdate
	if err := c.Bind(&updates); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "invalid request body"})
	}

	audit, err := ac.auditService.UpdateAudit(c.Param("audit_id"), updates)
	if err != nil {
		if errors.Is(err, logics.ErrAuditNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "Audit not found"})
		}
		if utils.IsValidationError(err) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": fmt.Sprintf("Internal server error: %v", err)})
	}

	ac.invalidateAnalyses(c)

	return c.JSON(http.StatusOK, audit.ToResponse())
}

// DeleteAudit handles DELETE /audits/:audit_id
func (ac *AuditController) DeleteAudit(c echo.Context) error {
	if err := ac.auditService.DeleteAudit(c.Param("audit_id")); err != nil {
		if errors.Is(err, logics.ErrAuditNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"detail": "Audit not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": fmt.Sprintf("Internal server error: %v", err)})
	}

	ac.invalidateAnalyses(c)

	return c.JSON(http.StatusOK, map[string]string{"message": "Audit deleted successfully"})
}

// AuditsSummary handles GET /audits-summary
func (ac *AuditController) AuditsSummary(c echo.Context) error {
	summary, err := ac.auditService.StatusSummary()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"detail": fmt.Sprintf("Internal server error: %v", err)})
	}

	return c.JSON(http.StatusOK, summary)
}
