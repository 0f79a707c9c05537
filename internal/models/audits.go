package models

import (
	"time"
)

// AuditType classifies the engagement being tracked.
type AuditType string

const (
	AuditTypeInternal       AuditType = "Internal"
	AuditTypeSupplierVendor AuditType = "Supplier/Vendor"
	AuditTypeRegulatory     AuditType = "Regulatory"
	AuditTypeCRO            AuditType = "CRO"
	AuditTypeForCause       AuditType = "For-Cause"
	AuditTypePAI            AuditType = "Pre-Approval Inspection (PAI)"
	AuditTypeSurveillance   AuditType = "Surveillance"
)

// Valid reports whether t is one of the known audit types.
func (t AuditType) Valid() bool {
	switch t {
	case AuditTypeInternal, AuditTypeSupplierVendor, AuditTypeRegulatory,
		AuditTypeCRO, AuditTypeForCause, AuditTypePAI, AuditTypeSurveillance:
		return true
	}
	return false
}

// AuditStatus is the lifecycle state of an audit.
type AuditStatus string

const (
	AuditStatusPlanned    AuditStatus = "Planned"
	AuditStatusInProgress AuditStatus = "In Progress"
	AuditStatusClosed     AuditStatus = "Closed"
	AuditStatusCancelled  AuditStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s AuditStatus) Valid() bool {
	switch s {
	case AuditStatusPlanned, AuditStatusInProgress, AuditStatusClosed, AuditStatusCancelled:
		return true
	}
	return false
}

// Audit is the persisted record for one quality-management audit.
type Audit struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	AuditID string `gorm:"type:varchar(30);uniqueIndex" json:"audit_id"`

	// Initialization
	AuditTitle     string    `gorm:"type:varchar(250);not null" json:"audit_title"`
	AuditType      AuditType `gorm:"type:varchar(50);not null" json:"audit_type"`
	AuditScope     string    `gorm:"type:text;not null" json:"audit_scope"`
	AuditObjective string    `gorm:"type:text;not null" json:"audit_objective"`

	// Auditee details
	AuditeeName         string `gorm:"type:varchar(250);not null" json:"auditee_name"`
	AuditeeSiteLocation string `gorm:"type:varchar(500);not null" json:"auditee_site_location"`
	AuditeeCountry      string `gorm:"type:varchar(100);not null" json:"auditee_country"`
	PrimaryContactName  string `gorm:"type:varchar(250);not null" json:"primary_contact_name"`
	PrimaryContactEmail string `gorm:"type:varchar(250)" json:"primary_contact_email"`

	// Scheduling & team
	ProposedStartDate  *time.Time `gorm:"type:date" json:"proposed_start_date"`
	ProposedEndDate    *time.Time `gorm:"type:date" json:"proposed_end_date"`
	ConfirmedStartDate time.Time  `gorm:"type:date;not null" json:"confirmed_start_date"`
	ConfirmedEndDate   time.Time  `gorm:"type:date;not null" json:"confirmed_end_date"`
	LeadAuditor        string     `gorm:"type:varchar(250);not null" json:"lead_auditor"`
	AuditTeam          string     `gorm:"type:text" json:"audit_team"`

	// Audit plan
	AuditCriteria string `gorm:"type:text;not null" json:"audit_criteria"`
	AuditAgenda   string `gorm:"type:text" json:"audit_agenda"`

	Status    AuditStatus `gorm:"type:varchar(30);default:'Planned'" json:"status"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Audit) TableName() string {
	return "audits"
}

const dateLayout = "2006-01-02"

// AuditResponse is the full wire shape of an audit. Dates are ISO-8601
// date strings, timestamps ISO-8601 datetimes, absent fields null.
type AuditResponse struct {
	ID                  uint    `json:"id"`
	AuditID             string  `json:"audit_id"`
	AuditTitle          string  `json:"audit_title"`
	AuditType           string  `json:"audit_type"`
	AuditScope          string  `json:"audit_scope"`
	AuditObjective      string  `json:"audit_objective"`
	AuditeeName         string  `json:"auditee_name"`
	AuditeeSiteLocation string  `json:"auditee_site_location"`
	AuditeeCountry      string  `json:"auditee_country"`
	PrimaryContactName  string  `json:"primary_contact_name"`
	PrimaryContactEmail *string `json:"primary_contact_email"`
	ProposedStartDate   *string `json:"proposed_start_date"`
	ProposedEndDate     *string `json:"proposed_end_date"`
	ConfirmedStartDate  string  `json:"confirmed_start_date"`
	ConfirmedEndDate    string  `json:"confirmed_end_date"`
	LeadAuditor         string  `json:"lead_auditor"`
	AuditTeam           *string `json:"audit_team"`
	AuditCriteria       string  `json:"audit_criteria"`
	AuditAgenda         *string `json:"audit_agenda"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

// AuditListItem is the summary row returned by the list endpoint.
type AuditListItem struct {
	ID               uint   `json:"id"`
	AuditID          string `json:"audit_id"`
	AuditTitle       string `json:"audit_title"`
	AuditType        string `json:"audit_type"`
	Status           string `json:"status"`
	AuditeeName      string `json:"auditee_name"`
	LeadAuditor      string `json:"lead_auditor"`
	ConfirmedEndDate string `json:"confirmed_end_date"`
	AuditeeCountry   string `json:"auditee_country"`
}

// ToResponse converts the stored record to its full wire shape.
func (a *Audit) ToResponse() AuditResponse {
	return AuditResponse{
		ID:                  a.ID,
		AuditID:             a.AuditID,
		AuditTitle:          a.AuditTitle,
		AuditType:           string(a.AuditType),
		AuditScope:          a.AuditScope,
		AuditObjective:      a.AuditObjective,
		AuditeeName:         a.AuditeeName,
		AuditeeSiteLocation: a.AuditeeSiteLocation,
		AuditeeCountry:      a.AuditeeCountry,
		PrimaryContactName:  a.PrimaryContactName,
		PrimaryContactEmail: nullableString(a.PrimaryContactEmail),
		ProposedStartDate:   formatDatePtr(a.ProposedStartDate),
		ProposedEndDate:     formatDatePtr(a.ProposedEndDate),
		ConfirmedStartDate:  a.ConfirmedStartDate.Format(dateLayout),
		ConfirmedEndDate:    a.ConfirmedEndDate.Format(dateLayout),
		LeadAuditor:         a.LeadAuditor,
		AuditTeam:           nullableString(a.AuditTeam),
		AuditCriteria:       a.AuditCriteria,
		AuditAgenda:         nullableString(a.AuditAgenda),
		Status:              string(a.Status),
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           a.UpdatedAt.Format(time.RFC3339),
	}
}

// ToListItem converts the stored record to its summary row.
func (a *Audit) ToListItem() AuditListItem {
	return AuditListItem{
		ID:               a.ID,
		AuditID:          a.AuditID,
		AuditTitle:       a.AuditTitle,
		AuditType:        string(a.AuditType),
		Status:           string(a.Status),
		AuditeeName:      a.AuditeeName,
		LeadAuditor:      a.LeadAuditor,
		ConfirmedEndDate: a.ConfirmedEndDate.Format(dateLayout),
		AuditeeCountry:   a.AuditeeCountry,
	}
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// AuditCreate is the creation payload. Dates arrive as ISO-8601 date
// strings and are parsed by the service layer.
type AuditCreate struct {
	AuditTitle          string `json:"audit_title"`
	AuditType           string `json:"audit_type"`
	AuditScope          string `json:"audit_scope"`
	AuditObjective      string `json:"audit_objective"`
	AuditeeName         string `json:"auditee_name"`
	AuditeeSiteLocation string `json:"auditee_site_location"`
	AuditeeCountry      string `json:"auditee_country"`
	PrimaryContactName  string `json:"primary_contact_name"`
	PrimaryContactEmail string `json:"primary_contact_email"`
	ProposedStartDate   string `json:"proposed_start_date"`
	ProposedEndDate     string `json:"proposed_end_date"`
	ConfirmedStartDate  string `json:"confirmed_start_date"`
	ConfirmedEndDate    string `json:"confirmed_end_date"`
	LeadAuditor         string `json:"lead_auditor"`
	AuditTeam           string `json:"audit_team"`
	AuditCriteria       string `json:"audit_criteria"`
	AuditAgenda         string `json:"audit_agenda"`
	Status              string `json:"status"`
}

// AuditUpdate is used for partial updates of an audit. Only non-nil
// fields are applied.
type AuditUpdate struct {
	AuditTitle          *string `json:"audit_title"`
	AuditType           *string `json:"audit_type"`
	AuditScope          *string `json:"audit_scope"`
	AuditObjective      *string `json:"audit_objective"`
	AuditeeName         *string `json:"auditee_name"`
	AuditeeSiteLocation *string `json:"auditee_site_location"`
	AuditeeCountry      *string `json:"auditee_country"`
	PrimaryContactName  *string `json:"primary_contact_name"`
	PrimaryContactEmail *string `json:"primary_contact_email"`
	ProposedStartDate   *string `json:"proposed_start_date"`
	ProposedEndDate     *string `json:"proposed_end_date"`
	ConfirmedStartDate  *string `json:"confirmed_start_date"`
	ConfirmedEndDate    *string `json:"confirmed_end_date"`
	LeadAuditor         *string `json:"lead_auditor"`
	AuditTeam           *string `json:"audit_team"`
	AuditCriteria       *string `json:"audit_criteria"`
	AuditAgenda         *string `json:"audit_agenda"`
	Status              *string `json:"status"`
}
