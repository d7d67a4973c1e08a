package mailer

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/glorious-tales/backend/pkg/config"
)

// Mailer sends one rendered message to one recipient
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer implements Mailer over plain SMTP
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	enabled  bool
}

// NewSMTPMailer builds an SMTPMailer from config. When the SMTP settings
// are incomplete the mailer is disabled and Send becomes a logged no-op.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	enabled := cfg.SMTPHost != "" && cfg.SMTPPort != "" && cfg.SMTPUser != "" && cfg.SMTPPass != "" && cfg.EmailFrom != ""
	if !enabled {
		log.Println("Mailer disabled: missing SMTP environment variables.")
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPass,
		from:     cfg.EmailFrom,
		enabled:  enabled,
	}
}

// Send delivers one HTML message to one recipient
func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if !m.enabled {
		log.Printf("Mailer disabled, skipping email to %s: %s", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: Glorious Tales <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s\r\n%s", to, m.from, subject, mime, htmlBody))

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
