package logics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"qms-server/internal/models"
	"qms-server/internal/utils"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrAuditNotFound is returned when no audit matches the given audit_id.
var ErrAuditNotFound = errors.New("audit not found")

// AuditFilter holds the optional list filters. AuditID, LeadAuditor and
// Site match as substrings; AuditType and Status match exactly, with
// "All" or an unknown enum value ignored. A negative Limit selects the
// default page size of 100; zero returns no rows.
type AuditFilter struct {
	AuditID     string
	AuditType   string
	Status      string
	LeadAuditor string
	Site        string
	Skip        int
	Limit       int
}

// AuditSummary is the status breakdown returned by /audits-summary.
type AuditSummary struct {
	Total      int64 `json:"total"`
	Planned    int64 `json:"planned"`
	InProgress int64 `json:"in_progress"`
	Closed     int64 `json:"closed"`
}

// AuditService provides business logic for audit records.
type AuditService struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAuditService creates a new AuditService instance.
func NewAuditService(db *gorm.DB, logger *zap.Logger) *AuditService {
	return &AuditService{
		db:     db,
		logger: logger,
	}
}

const auditIDHexAlphabet = "0123456789ABCDEF"

// GenerateAuditID creates the human-facing identifier in the form
// AUD-<year>-<8 uppercase hex chars>.
func GenerateAuditID() (string, error) {
	suffix, err := gonanoid.Generate(auditIDHexAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate audit id suffix: %w", err)
	}
	return fmt.Sprintf("AUD-%d-%s", time.Now().Year(), suffix), nil
}

const dateLayout = "2006-01-02"

func parseDate(value, field string, errs *[]string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s must be an ISO date (YYYY-MM-DD)", field))
		return nil
	}
	return &t
}

// CreateAudit validates the payload, assigns an audit_id and stores the
// record.
func (as *AuditService) CreateAudit(input models.AuditCreate) (*models.Audit, error) {
	var errs []string

	required := map[string]string{
		"audit_title":           input.AuditTitle,
		"audit_scope":           input.AuditScope,
		"audit_objective":       input.AuditObjective,
		"auditee_name":          input.AuditeeName,
		"auditee_site_location": input.AuditeeSiteLocation,
		"auditee_country":       input.AuditeeCountry,
		"primary_contact_name":  input.PrimaryContactName,
		"lead_auditor":          input.LeadAuditor,
		"audit_criteria":        input.AuditCriteria,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, field+" is required")
		}
	}

	auditType := models.AuditType(input.AuditType)
	if !auditType.Valid() {
		errs = append(errs, "audit_type must be one of the known audit types")
	}

	status := models.AuditStatusPlanned
	if input.Status != "" {
		status = models.AuditStatus(input.Status)
		if !status.Valid() {
			errs = append(errs, "status must be one of the known statuses")
		}
	}

	if err := utils.ValidateEmail(input.PrimaryContactEmail); err != nil {
		errs = append(errs, "primary_contact_email has an invalid format")
	}

	confirmedStart := parseDate(input.ConfirmedStartDate, "confirmed_start_date", &errs)
	confirmedEnd := parseDate(input.ConfirmedEndDate, "confirmed_end_date", &errs)
	proposedStart := parseDate(input.ProposedStartDate, "proposed_start_date", &errs)
	proposedEnd := parseDate(input.ProposedEndDate, "proposed_end_date", &errs)

	if confirmedStart == nil && strings.TrimSpace(input.ConfirmedStartDate) == "" {
		errs = append(errs, "confirmed_start_date is required")
	}
	if confirmedEnd == nil && strings.TrimSpace(input.ConfirmedEndDate) == "" {
		errs = append(errs, "confirmed_end_date is required")
	}

	if confirmedStart != nil && confirmedEnd != nil && !confirmedEnd.After(*confirmedStart) {
		errs = append(errs, "End date must be after start date")
	}
	if proposedStart != nil && proposedEnd != nil && !proposedEnd.After(*proposedStart) {
		errs = append(errs, "Proposed end date must be after proposed start date")
	}

	if len(errs) > 0 {
		return nil, utils.NewValidationError("audit validation failed", errs)
	}

	auditID, err := GenerateAuditID()
	if err != nil {
		return nil, err
	}

	audit := models.Audit{
		AuditID:             auditID,
		AuditTitle:          input.AuditTitle,
		AuditType:           auditType,
		AuditScope:          input.AuditScope,
		AuditObjective:      input.AuditObjective,
		AuditeeName:         input.AuditeeName,
		AuditeeSiteLocation: input.AuditeeSiteLocation,
		AuditeeCountry:      input.AuditeeCountry,
		PrimaryContactName:  input.PrimaryContactName,
		PrimaryContactEmail: input.PrimaryContactEmail,
		ProposedStartDate:   proposedStart,
		ProposedEndDate:     proposedEnd,
		ConfirmedStartDate:  *confirmedStart,
		ConfirmedEndDate:    *confirmedEnd,
		LeadAuditor:         input.LeadAuditor,
		AuditTeam:           input.AuditTeam,
		AuditCriteria:       input.AuditCriteria,
		AuditAgenda:         input.AuditAgenda,
		Status:              status,
	}

	if err := as.db.Create(&audit).Error; err != nil {
		return nil, fmt.Errorf("failed to create audit: %w", err)
	}

	as.logger.Info("Audit created",
		zap.String("audit_id", audit.AuditID),
		zap.String("audit_type", string(audit.AuditType)))

	return &audit, nil
}

// GetAudit fetches one audit by its audit_id.
func (as *AuditService) GetAudit(auditID string) (*models.Audit, error) {
	var audit models.Audit
	err := as.db.Where("audit_id = ?", auditID).First(&audit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditNotFound
		}
		return nil, fmt.Errorf("failed to fetch audit: %w", err)
	}
	return &audit, nil
}

// ListAudits returns audits ordered by insertion, filtered and paged.
func (as *AuditService) ListAudits(filter AuditFilter) ([]models.Audit, error) {
	query := as.db.Model(&models.Audit{})

	if filter.AuditID != "" {
		query = query.Where("audit_id LIKE ?", "%"+filter.AuditID+"%")
	}
	if filter.AuditType != "" && filter.AuditType != "All" {
		// Unknown values fall through unfiltered, matching the intake
		// UI's permissive dropdown handling.
		if t := models.AuditType(filter.AuditType); t.Valid() {
			query = query.Where("audit_type = ?", t)
		}
	}
	if filter.Status != "" && filter.Status != "All" {
		if s := models.AuditStatus(filter.Status); s.Valid() {
			query = query.Where("status = ?", s)
		}
	}
	if filter.LeadAuditor != "" && filter.LeadAuditor != "All" {
		query = query.Where("lead_auditor LIKE ?", "%"+filter.LeadAuditor+"%")
	}
	if filter.Site != "" && filter.Site != "All" {
		query = query.Where("auditee_country LIKE ?", "%"+filter.Site+"%")
	}

	// An explicit zero limit returns no rows; only a negative value
	// falls back to the default page size.
	limit := filter.Limit
	if limit < 0 {
		limit = 100
	}

	var audits []models.Audit
	if err := query.Order("id").Offset(filter.Skip).Limit(limit).Find(&audits).Error; err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	return audits, nil
}

// UpdateAudit applies a partial update to an audit, re-validating the
// date invariants against the resulting record.
func (as *AuditService) UpdateAudit(auditID string, updates models.AuditUpdate) (*models.Audit, error) {
	audit, err := as.GetAudit(auditID)
	if err != nil {
		return nil, err
	}

	var errs []string

	if updates.AuditTitle != nil {
		audit.AuditTitle = *updates.AuditTitle
	}
	if updates.AuditType != nil {
		t := models.AuditType(*updates.AuditType)
		if !t.Valid() {
			errs = append(errs, "audit_type must be one of the known audit types")
		} else {
			audit.AuditType = t
		}
	}
	if updates.AuditScope != nil {
		audit.AuditScope = *updates.AuditScope
	}
	if updates.AuditObjective != nil {
		audit.AuditObjective = *updates.AuditObjective
	}
	if updates.AuditeeName != nil {
		audit.AuditeeName = *updates.AuditeeName
	}
	if updates.AuditeeSiteLocation != nil {
		audit.AuditeeSiteLocation = *updates.AuditeeSiteLocation
	}
	if updates.AuditeeCountry != nil {
		audit.AuditeeCountry = *updates.AuditeeCountry
	}
	if updates.PrimaryContactName != nil {
		audit.PrimaryContactName = *updates.PrimaryContactName
	}
	if updates.PrimaryContactEmail != nil {
		if err := utils.ValidateEmail(*updates.PrimaryContactEmail); err != nil {
			errs = append(errs, "primary_contact_email has an invalid format")
		} else {
			audit.PrimaryContactEmail = *updates.PrimaryContactEmail
		}
	}
	if updates.ProposedStartDate != nil {
		audit.ProposedStartDate = parseDate(*updates.ProposedStartDate, "proposed_start_date", &errs)
	}
	if updates.ProposedEndDate != nil {
		audit.ProposedEndDate = parseDate(*updates.ProposedEndDate, "proposed_end_date", &errs)
	}
	if updates.ConfirmedStartDate != nil {
		if t := parseDate(*updates.ConfirmedStartDate, "confirmed_start_date", &errs); t != nil {
			audit.ConfirmedStartDate = *t
		}
	}
	if updates.ConfirmedEndDate != nil {
		if t := parseDate(*updates.ConfirmedEndDate, "confirmed_end_date", &errs); t != nil {
			audit.ConfirmedEndDate = *t
		}
	}
	if updates.LeadAuditor != nil {
		audit.LeadAuditor = *updates.LeadAuditor
	}
	if updates.AuditTeam != nil {
		audit.AuditTeam = *updates.AuditTeam
	}
	if updates.AuditCriteria != nil {
		audit.AuditCriteria = *updates.AuditCriteria
	}
	if updates.AuditAgenda != nil {
		audit.AuditAgenda = *updates.AuditAgenda
	}
	if updates.Status != nil {
		s := models.AuditStatus(*updates.Status)
		if !s.Valid() {
			errs = append(errs, "status must be one of the known statuses")
		} else {
			audit.Status = s
		}
	}

	if !audit.ConfirmedEndDate.After(audit.ConfirmedStartDate) {
		errs = append(errs, "End date must be after start date")
	}
	if audit.ProposedStartDate != nil && audit.ProposedEndDate != nil &&
		!audit.ProposedEndDate.After(*audit.ProposedStartDate) {
		errs = append(errs, "Proposed end date must be after proposed start date")
	}

	if len(errs) > 0 {
		return nil, utils.NewValidationError("audit validation failed", errs)
	}

	if err := as.db.Save(audit).Error; err != nil {
		return nil, fmt.Errorf("failed to update audit: %w", err)
	}

	as.logger.Info("Audit updated", zap.String("audit_id", audit.AuditID))

	return audit, nil
}

// DeleteAudit removes an audit. Returns ErrAuditNotFound when the id
// does not exist.
func (as *AuditService) DeleteAudit(auditID string) error {
	audit, err := as.GetAudit(auditID)
	if err != nil {
		return err
	}
	if err := as.db.Delete(audit).Error; err != nil {
		return fmt.Errorf("failed to delete audit: %w", err)
	}
	as.logger.Info("Audit deleted", zap.String("audit_id", auditID))
	return nil
}

// CountAudits returns the total number of stored audits.
func (as *AuditService) CountAudits() (int64, error) {
	var count int64
	if err := as.db.Model(&models.Audit{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count audits: %w", err)
	}
	return count, nil
}

// StatusSummary returns the counts used by the dashboard header.
func (as *AuditService) StatusSummary() (*AuditSummary, error) {
	summary := AuditSummary{}

	if err := as.db.Model(&models.Audit{}).Count(&summary.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count audits: %w", err)
	}

	counts := []struct {
		status models.AuditStatus
		dest   *int64
	}{
		{models.AuditStatusPlanned, &summary.Planned},
		{models.AuditStatusInProgress, &summary.InProgress},
		{models.AuditStatusClosed, &summary.Closed},
	}
	for _, c := range counts {
		if err := as.db.Model(&models.Audit{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count audits by status: %w", err)
		}
	}

	return &summary, nil
}

// AllAudits returns up to limit audits unfiltered. It is the record
// snapshot the AI tools analyze.
func (as *AuditService) AllAudits(limit int) ([]models.Audit, error) {
	return as.ListAudits(AuditFilter{Limit: limit})
}
