package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"qms-server/internal/controllers"
	"qms-server/internal/logics"
	"qms-server/internal/models"
)

func newAuditController() *controllers.AuditController {
	// A nil gorm handle is fine for paths that fail before any query.
	return controllers.NewAuditController(logics.NewAuditService(nil, zap.NewNop()), nil)
}

func TestCreateAuditRejectsInvalidPayload(t *testing.T) {
	controller := newAuditController()

	t.Run("malformed body", func(t *testing.T) {
		rec, err := doJSON(controller.CreateAudit, http.MethodPost, "/audits", `{not json`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure returns 422", func(t *testing.T) {
		rec, err := doJSON(controller.CreateAudit, http.MethodPost, "/audits", `{"audit_title": "only a title"}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "is required")
	})
}

func TestListAuditsRejectsBadPaging(t *testing.T) {
	controller := newAuditController()

	t.Run("non-numeric skip", func(t *testing.T) {
		rec, err := doJSON(controller.ListAudits, http.MethodGet, "/audits?skip=abc", "")

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative limit", func(t *testing.T) {
		rec, err := doJSON(controller.ListAudits, http.MethodGet, "/audits?limit=-5", "")

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

type countingInvalidator struct {
	calls int
}

func (ci *countingInvalidator) InvalidateCache(context.Context) {
	ci.calls++
}

func TestAuditMutationsFlushAnalysisCache(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Audit{}))

	invalidator := &countingInvalidator{}
	controller := controllers.NewAuditController(logics.NewAuditService(db, zap.NewNop()), invalidator)

	body := `{
		"audit_title": "GMP Compliance Audit",
		"audit_type": "Internal",
		"audit_scope": "Manufacturing line B",
		"audit_objective": "Verify compliance with GMP",
		"auditee_name": "Pharma Site A",
		"auditee_site_location": "Building 4, Frankfurt",
		"auditee_country": "Germany",
		"primary_contact_name": "Anna Braun",
		"confirmed_start_date": "2025-10-01",
		"confirmed_end_date": "2025-10-05",
		"lead_auditor": "J. Miller",
		"audit_criteria": "ISO 9001"
	}`

	t.Run("successful create flushes", func(t *testing.T) {
		rec, err := doJSON(controller.CreateAudit, http.MethodPost, "/audits", body)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 1, invalidator.calls)
	})

	t.Run("rejected create does not flush", func(t *testing.T) {
		rec, err := doJSON(controller.CreateAudit, http.MethodPost, "/audits", `{"audit_title": "only a title"}`)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, 1, invalidator.calls)
	})
}
