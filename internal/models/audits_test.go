package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"qms-server/internal/models"
)

func TestToResponse(t *testing.T) {
	proposed := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	audit := models.Audit{
		ID:                 7,
		AuditID:            "AUD-2025-1A2B3C4D",
		AuditTitle:         "GMP Compliance Audit",
		AuditType:          models.AuditTypeRegulatory,
		ProposedStartDate:  &proposed,
		ConfirmedStartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		ConfirmedEndDate:   time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
		Status:             models.AuditStatusPlanned,
		CreatedAt:          time.Date(2025, 9, 1, 8, 30, 0, 0, time.UTC),
	}

	resp := audit.ToResponse()

	assert.Equal(t, "AUD-2025-1A2B3C4D", resp.AuditID)
	assert.Equal(t, "Regulatory", resp.AuditType)
	assert.Equal(t, "2025-10-01", resp.ConfirmedStartDate)
	assert.Equal(t, "2025-10-05", resp.ConfirmedEndDate)
	assert.Equal(t, "2025-09-01T08:30:00Z", resp.CreatedAt)

	// Optional fields null out when empty.
	assert.NotNil(t, resp.ProposedStartDate)
	assert.Equal(t, "2025-09-15", *resp.ProposedStartDate)
	assert.Nil(t, resp.ProposedEndDate)
	assert.Nil(t, resp.PrimaryContactEmail)
	assert.Nil(t, resp.AuditTeam)
	assert.Nil(t, resp.AuditAgenda)
}

func TestToListItem(t *testing.T) {
	audit := models.Audit{
		ID:               3,
		AuditID:          "AUD-2025-AABBCCDD",
		AuditTitle:       "Supplier Qualification",
		AuditType:        models.AuditTypeSupplierVendor,
		Status:           models.AuditStatusInProgress,
		AuditeeName:      "API Inc.",
		LeadAuditor:      "J. Miller",
		ConfirmedEndDate: time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC),
		AuditeeCountry:   "India",
	}

	item := audit.ToListItem()

	assert.Equal(t, uint(3), item.ID)
	assert.Equal(t, "Supplier/Vendor", item.AuditType)
	assert.Equal(t, "In Progress", item.Status)
	assert.Equal(t, "2025-11-20", item.ConfirmedEndDate)
}
