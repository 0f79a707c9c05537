package utils

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// EmailService provides email delivery functionality
type EmailService struct {
	smtpHost     string
	smtpPort     int
	smtpUsername string
	smtpPassword string
	senderEmail  string
}

// NewEmailService creates a new EmailService
func NewEmailService(smtpHost string, smtpPort int, smtpUsername, smtpPassword, senderEmail string) *EmailService {
	return &EmailService{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUsername: smtpUsername,
		smtpPassword: smtpPassword,
		senderEmail:  senderEmail,
	}
}

// SendNotification delivers one audit notification draft to its
// recipients. The body is wrapped in a minimal HTML template with
// inline styles for client compatibility.
func (s *EmailService) SendNotification(subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, "QMS Audit Tracker"))
	m.SetHeader("To", recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", s.notificationHTML(body))

	d := gomail.NewDialer(s.smtpHost, s.smtpPort, s.smtpUsername, s.smtpPassword)

	return d.DialAndSend(m)
}

func (s *EmailService) notificationHTML(body string) string {
	paragraphs := strings.Split(body, "\n")
	var sb strings.Builder
	for _, p := range paragraphs {
		if strings.TrimSpace(p) == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<p style="margin:0 0 12px 0;">%s</p>`, SanitizeString(p)))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta http-equiv="Content-Type" content="text/html; charset=UTF-8" /></head>
<body style="font-family:Arial,Helvetica,sans-serif;color:#1f2937;font-size:14px;line-height:1.6;">
<div style="max-width:600px;margin:0 auto;padding:24px;">
%s
<p style="margin:24px 0 0 0;color:#6b7280;font-size:12px;">This message was generated by the QMS Audit Tracker.</p>
</div>
</body>
</html>`, sb.String())
}
