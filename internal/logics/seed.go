package logics

import (
	"fmt"
	"time"

	"qms-server/internal/models"

	"go.uber.org/zap"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// EnsureSeedData populates the store with example audits on first run.
// It only ever acts when the table is empty.
func (as *AuditService) EnsureSeedData() error {
	count, err := as.CountAudits()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return as.seedSampleData()
}

func (as *AuditService) seedSampleData() error {
	samples := []models.Audit{
		{
			AuditTitle:          "Annual GMP Compliance for Mfg Line B",
			AuditType:           models.AuditTypeInternal,
			AuditScope:          "Manufacturing Line B GMP compliance review covering production processes, documentation, and quality control procedures for the fiscal year 2024.",
			AuditObjective:      "To verify compliance with current Good Manufacturing Practice regulations and internal quality standards.",
			AuditeeName:         "Manufacturing Line B",
			AuditeeSiteLocation: "123 Pharma Way, Boston, MA 02101, USA",
			AuditeeCountry:      "USA",
			PrimaryContactName:  "John Smith",
			PrimaryContactEmail: "john.smith@company.com",
			ConfirmedStartDate:  date(2025, time.May, 10),
			ConfirmedEndDate:    date(2025, time.May, 14),
			LeadAuditor:         "QA Manager",
			AuditTeam:           "Sarah Johnson, Michael Brown",
			AuditCriteria:       "FDA 21 CFR Parts 210/211, ICH Q7, Company SOPs QA-001 through QA-015",
			AuditAgenda:         "Day 1: Opening meeting, facility tour, documentation review\nDay 2: Production process review\nDay 3: Quality control procedures\nDay 4: Closing meeting and report preparation",
			Status:              models.AuditStatusPlanned,
		},
		{
			AuditTitle:          "Qualification Audit for API Inc.",
			AuditType:           models.AuditTypeSupplierVendor,
			AuditScope:          "Comprehensive supplier qualification audit covering quality management system, manufacturing capabilities, and regulatory compliance.",
			AuditObjective:      "To qualify API Inc. as an approved supplier for critical raw materials and assess their quality management system.",
			AuditeeName:         "API Inc.",
			AuditeeSiteLocation: "45 Industrial Park, Mumbai, Maharashtra 400001, India",
			AuditeeCountry:      "India",
			PrimaryContactName:  "Priya Patel",
			PrimaryContactEmail: "priya.patel@apiinc.com",
			ConfirmedStartDate:  date(2025, time.May, 16),
			ConfirmedEndDate:    date(2025, time.May, 20),
			LeadAuditor:         "Supplier Quality",
			AuditTeam:           "David Wilson, Lisa Chen",
			AuditCriteria:       "ISO 9001:2015, ICH Q7, FDA Guidelines for API Manufacturing",
			AuditAgenda:         "Day 1: QMS review and management interview\nDay 2: Manufacturing facility inspection\nDay 3: Laboratory and testing procedures\nDay 4: Documentation review\nDay 5: Closing meeting and action items",
			Status:              models.AuditStatusPlanned,
		},
		{
			AuditTitle:          "QC Lab Data Integrity Review",
			AuditType:           models.AuditTypeInternal,
			AuditScope:          "Comprehensive review of data integrity practices in the Quality Control Laboratory, including electronic records, data backup, and audit trails.",
			AuditObjective:      "To assess compliance with data integrity requirements and identify areas for improvement in laboratory data management.",
			AuditeeName:         "QC Laboratory",
			AuditeeSiteLocation: "789 Science Drive, Research Triangle, NC 27709, USA",
			AuditeeCountry:      "USA",
			PrimaryContactName:  "Dr. Emily Rodriguez",
			PrimaryContactEmail: "emily.rodriguez@company.com",
			ConfirmedStartDate:  date(2025, time.April, 12),
			ConfirmedEndDate:    date(2025, time.April, 16),
			LeadAuditor:         "QA Specialist",
			AuditTeam:           "Robert Johnson, Amanda White",
			AuditCriteria:       "FDA Guidance on Data Integrity, 21 CFR Part 11, Company SOP-IT-005",
			AuditAgenda:         "Day 1: LIMS system review\nDay 2: Laboratory procedures and practices\nDay 3: Data backup and recovery procedures\nDay 4: Training records review\nDay 5: Final assessment and recommendations",
			Status:              models.AuditStatusClosed,
		},
	}

	for i := range samples {
		var existing int64
		if err := as.db.Model(&models.Audit{}).
			Where("audit_title = ?", samples[i].AuditTitle).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check existing sample: %w", err)
		}
		if existing > 0 {
			continue
		}

		auditID, err := GenerateAuditID()
		if err != nil {
			return err
		}
		samples[i].AuditID = auditID

		if err := as.db.Create(&samples[i]).Error; err != nil {
			return fmt.Errorf("failed to seed sample audit: %w", err)
		}
	}

	as.logger.Info("Database seeded with sample data", zap.Int("audits", len(samples)))
	return nil
}
