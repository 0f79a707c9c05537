package tools

import (
	"time"

	"qms-server/internal/models"
)

const dateLayout = "2006-01-02"

// Record caps keep prompts under the model's token budget.
const (
	maxAnalysisRecords = 10
	maxOpenRecords     = 20
	maxTrendRecords    = 30
	recordFetchLimit   = 1000
)

// analysisRecord is the audit projection sent to the model for risk
// analysis.
type analysisRecord struct {
	AuditID     string `json:"audit_id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Auditee     string `json:"auditee"`
	Country     string `json:"country"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	LeadAuditor string `json:"lead_auditor"`
	Scope       string `json:"scope"`
}

// openRecord is the projection used when summarizing open audits.
type openRecord struct {
	AuditID     string `json:"audit_id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Auditee     string `json:"auditee"`
	LeadAuditor string `json:"lead_auditor"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// trendRecord is the projection used for trend analysis.
type trendRecord struct {
	AuditID     string `json:"audit_id"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Country     string `json:"country"`
	LeadAuditor string `json:"lead_auditor"`
	CreatedDate string `json:"created_date"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// auditDetails is the full projection of one audit for targeted tools.
type auditDetails struct {
	AuditID     string `json:"audit_id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Scope       string `json:"scope"`
	Objective   string `json:"objective"`
	Auditee     string `json:"auditee"`
	Country     string `json:"country"`
	LeadAuditor string `json:"lead_auditor"`
	AuditTeam   string `json:"audit_team"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Criteria    string `json:"criteria"`
	Agenda      string `json:"agenda"`
}

// notificationDetails is the audit projection attached to notification
// drafts, including contact routing fields.
type notificationDetails struct {
	AuditID        string `json:"audit_id"`
	Title          string `json:"title"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	Auditee        string `json:"auditee"`
	LeadAuditor    string `json:"lead_auditor"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	PrimaryContact string `json:"primary_contact"`
	ContactEmail   string `json:"contact_email"`
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func fmtTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toAnalysisRecord(a *models.Audit) analysisRecord {
	return analysisRecord{
		AuditID:     a.AuditID,
		Title:       a.AuditTitle,
		Type:        string(a.AuditType),
		Status:      string(a.Status),
		Auditee:     a.AuditeeName,
		Country:     a.AuditeeCountry,
		StartDate:   fmtDate(a.ConfirmedStartDate),
		EndDate:     fmtDate(a.ConfirmedEndDate),
		LeadAuditor: a.LeadAuditor,
		Scope:       a.AuditScope,
	}
}

func toOpenRecord(a *models.Audit) openRecord {
	return openRecord{
		AuditID:     a.AuditID,
		Title:       a.AuditTitle,
		Type:        string(a.AuditType),
		Status:      string(a.Status),
		Auditee:     a.AuditeeName,
		LeadAuditor: a.LeadAuditor,
		StartDate:   fmtDate(a.ConfirmedStartDate),
		EndDate:     fmtDate(a.ConfirmedEndDate),
	}
}

func toTrendRecord(a *models.Audit) trendRecord {
	return trendRecord{
		AuditID:     a.AuditID,
		Type:        string(a.AuditType),
		Status:      string(a.Status),
		Country:     a.AuditeeCountry,
		LeadAuditor: a.LeadAuditor,
		CreatedDate: fmtTimestamp(a.CreatedAt),
		StartDate:   fmtDate(a.ConfirmedStartDate),
		EndDate:     fmtDate(a.ConfirmedEndDate),
	}
}

func toAuditDetails(a *models.Audit) auditDetails {
	return auditDetails{
		AuditID:     a.AuditID,
		Title:       a.AuditTitle,
		Type:        string(a.AuditType),
		Status:      string(a.Status),
		Scope:       a.AuditScope,
		Objective:   a.AuditObjective,
		Auditee:     a.AuditeeName,
		Country:     a.AuditeeCountry,
		LeadAuditor: a.LeadAuditor,
		AuditTeam:   a.AuditTeam,
		StartDate:   fmtDate(a.ConfirmedStartDate),
		EndDate:     fmtDate(a.ConfirmedEndDate),
		Criteria:    a.AuditCriteria,
		Agenda:      a.AuditAgenda,
	}
}

func toNotificationDetails(a *models.Audit) notificationDetails {
	return notificationDetails{
		AuditID:        a.AuditID,
		Title:          a.AuditTitle,
		Type:           string(a.AuditType),
		Status:         string(a.Status),
		Auditee:        a.AuditeeName,
		LeadAuditor:    a.LeadAuditor,
		StartDate:      fmtDate(a.ConfirmedStartDate),
		EndDate:        fmtDate(a.ConfirmedEndDate),
		PrimaryContact: a.PrimaryContactName,
		ContactEmail:   a.PrimaryContactEmail,
	}
}
