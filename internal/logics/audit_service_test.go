package logics_test

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"qms-server/internal/logics"
	"qms-server/internal/models"
	"qms-server/internal/utils"
)

func validCreate() models.AuditCreate {
	return models.AuditCreate{
		AuditTitle:          "GMP Compliance Audit",
		AuditType:           string(models.AuditTypeInternal),
		AuditScope:          "Manufacturing line B",
		AuditObjective:      "Verify compliance with GMP",
		AuditeeName:         "Pharma Site A",
		AuditeeSiteLocation: "Building 4, Frankfurt",
		AuditeeCountry:      "Germany",
		PrimaryContactName:  "Anna Braun",
		PrimaryContactEmail: "anna.braun@example.com",
		ConfirmedStartDate:  "2025-10-01",
		ConfirmedEndDate:    "2025-10-05",
		LeadAuditor:         "J. Miller",
		AuditCriteria:       "ISO 9001, 21 CFR Part 211",
	}
}

func TestGenerateAuditID(t *testing.T) {
	pattern := regexp.MustCompile(fmt.Sprintf(`^AUD-%d-[0-9A-F]{8}$`, time.Now().Year()))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := logics.GenerateAuditID()
		assert.NoError(t, err)
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestCreateAuditValidation(t *testing.T) {
	service := logics.NewAuditService(nil, zap.NewNop())

	t.Run("missing required fields", func(t *testing.T) {
		_, err := service.CreateAudit(models.AuditCreate{})

		assert.Error(t, err)
		assert.True(t, utils.IsValidationError(err))
		assert.Contains(t, err.Error(), "audit_title is required")
		assert.Contains(t, err.Error(), "lead_auditor is required")
	})

	t.Run("unknown audit type", func(t *testing.T) {
		input := validCreate()
		input.AuditType = "Spot Check"

		_, err := service.CreateAudit(input)

		assert.True(t, utils.IsValidationError(err))
		assert.Contains(t, err.Error(), "audit_type")
	})

	t.Run("unknown status", func(t *testing.T) {
		input := validCreate()
		input.Status = "Paused"

		_, err := service.CreateAudit(input)

		assert.True(t, utils.IsValidationError(err))
		assert.Contains(t, err.Error(), "status")
	})

	t.Run("invalid contact email", func(t *testing.T) {
		input := validCreate()
		input.PrimaryContactEmail = "not-an-email"

		_, err := service.CreateAudit(input)

		assert.True(t, utils.IsValidationError(err))
		assert.Contains(t, err.Error(), "primary_contact_email")
	})

	t.Run("end date before start date", func(t *testing.T) {
		input := validCreate()
		input.ConfirmedStartDate = "2025-10-05"
		input.ConfirmedEndDate = "2025-10-01"

		_, err := service.CreateAudit(input)

		assert.True(t, utils.IsValidationError(err))
		assert.Contains(t, err.Error(), "End date must be after start date")
	})

	t.Run("end date equal to start date", func(t *testing.T) {
		input := validCreate()
		input.ConfirmedStartDate = "2025-10-01"
		input.ConfirmedEndDate = "2025-10-01"

		_, err := service.CreateAudit(input)

		assert.True(t, utils.IsValidationError(err))
	})

	t.Run("proposed dates out of order", func(t *testing.T) {
		input := validCreate()
		input.ProposedStartDate = "2025-09-20"
		input.ProposedEndDate = "2025-09-10"

		_, err := service.CreateAudit(input)

		assert.True(t, utils.IsValidationError(err))
		assert.Contains(t, err.Error(), "Proposed end date must be after proposed start date")
	})

	t.Run("malformed date string", func(t *testing.T) {
		input := validCreate()
		input.ConfirmedStartDate = "10/01/2025"

		_, err := service.CreateAudit(input)

		assert.True(t, utils.IsValidationError(err))
		assert.Contains(t, err.Error(), "confirmed_start_date")
	})

	t.Run("missing confirmed dates", func(t *testing.T) {
		input := validCreate()
		input.ConfirmedStartDate = ""
		input.ConfirmedEndDate = ""

		_, err := service.CreateAudit(input)

		assert.True(t, utils.IsValidationError(err))
		assert.Contains(t, err.Error(), "confirmed_start_date is required")
		assert.Contains(t, err.Error(), "confirmed_end_date is required")
	})
}

func TestAuditTypeValid(t *testing.T) {
	for _, valid := range []models.AuditType{
		models.AuditTypeInternal,
		models.AuditTypeSupplierVendor,
		models.AuditTypeRegulatory,
		models.AuditTypeCRO,
		models.AuditTypeForCause,
		models.AuditTypePAI,
		models.AuditTypeSurveillance,
	} {
		assert.True(t, valid.Valid(), "%s should be valid", valid)
	}
	assert.False(t, models.AuditType("Spot Check").Valid())
	assert.False(t, models.AuditType("").Valid())
}

func TestAuditStatusValid(t *testing.T) {
	for _, valid := range []models.AuditStatus{
		models.AuditStatusPlanned,
		models.AuditStatusInProgress,
		models.AuditStatusClosed,
		models.AuditStatusCancelled,
	} {
		assert.True(t, valid.Valid(), "%s should be valid", valid)
	}
	assert.False(t, models.AuditStatus("Paused").Valid())
}
