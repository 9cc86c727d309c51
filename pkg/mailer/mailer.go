// Package mailer is the outbound mail collaborator: one Send call per
// recipient, plain-text body, SMTP underneath.
package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"pompa-press/pkg/config"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends through a plain SMTP relay with a bounded dial timeout.
type SMTPMailer struct {
	host     string
	port     string
	user     string
	password string
	from     string
	timeout  time.Duration
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		timeout:  15 * time.Second,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	headers := []string{
		fmt.Sprintf("From: %s", m.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"Content-Type: text/plain; charset=UTF-8",
	}
	message := []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)

	addr := net.JoinHostPort(m.host, m.port)

	conn, err := net.DialTimeout("tcp", addr, m.timeout)
	if err != nil {
		return fmt.Errorf("failed to dial smtp relay: %w", err)
	}

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer c.Close()

	if m.user != "" {
		auth := smtp.PlainAuth("", m.user, m.password, m.host)
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(auth); err != nil {
				return fmt.Errorf("smtp auth failed: %w", err)
			}
		}
	}

	if err := c.Mail(m.from); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO rejected: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return c.Quit()
}
