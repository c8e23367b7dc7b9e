package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/go-mail/mail/v2"
	"go.uber.org/zap"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Mailer renders a template from templates/ and delivers it to recipient.
type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

type SMTPMailer struct {
	dialer *mail.Dialer
	sender string
}

func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &SMTPMailer{
		dialer: dialer,
		sender: sender,
	}
}

// render executes the subject, plainBody and htmlBody blocks of a template file.
func render(templateFile string, data any) (subject, plainBody, htmlBody string, err error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return "", "", "", fmt.Errorf("parse template %s: %w", templateFile, err)
	}

	var buf bytes.Buffer
	for _, block := range []struct {
		name string
		dst  *string
	}{
		{"subject", &subject},
		{"plainBody", &plainBody},
		{"htmlBody", &htmlBody},
	} {
		buf.Reset()
		if err := tmpl.ExecuteTemplate(&buf, block.name, data); err != nil {
			return "", "", "", fmt.Errorf("execute %s of %s: %w", block.name, templateFile, err)
		}
		*block.dst = buf.String()
	}
	return subject, plainBody, htmlBody, nil
}

func (m *SMTPMailer) Send(recipient, templateFile string, data any) error {
	subject, plainBody, htmlBody, err := render(templateFile, data)
	if err != nil {
		return err
	}

	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", plainBody)
	msg.AddAlternative("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", recipient, err)
	}
	return nil
}

// LogMailer renders emails and writes them to the log instead of sending.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log.With(zap.String("component", "mailer"))}
}

func (m *LogMailer) Send(recipient, templateFile string, data any) error {
	subject, plainBody, _, err := render(templateFile, data)
	if err != nil {
		return err
	}

	m.log.Info("Email not sent, SMTP disabled",
		zap.String("to", recipient),
		zap.String("subject", subject),
		zap.String("body", plainBody),
	)
	return nil
}
