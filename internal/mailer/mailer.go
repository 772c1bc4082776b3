// Package mailer sends account emails over SMTP. Delivery is best-effort:
// callers log failures and move on, matching the platform's stance that a
// lost email must never fail the request that triggered it.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer defines the outgoing account-email operations.
type Mailer interface {
	SendResetEmail(to, resetLink string) error
	SendVerificationEmail(to, verifyLink string) error
}

// SMTPMailer implements Mailer over implicit-TLS SMTP (port 465 style).
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	if from == "" {
		from = username
	}
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Configured reports whether credentials are present at all.
func (m *SMTPMailer) Configured() bool {
	return m.username != "" && m.password != ""
}

func (m *SMTPMailer) SendResetEmail(to, resetLink string) error {
	body := fmt.Sprintf(`Hello,

We received a request to reset your password.

Click the link below to reset it:
%s

This link will expire in 30 minutes.

If you did not request this, please ignore this email.

Regards,
Intelligent DCET Preparation Platform`, resetLink)

	return m.send(to, "Password Reset - DCET Platform", body)
}

func (m *SMTPMailer) SendVerificationEmail(to, verifyLink string) error {
	body := fmt.Sprintf(`Hello,

Welcome to Intelligent DCET Preparation Platform

Please confirm that this email address belongs to you
by clicking the link below:

%s

This link will expire in 30 minutes.

If you did not create this account, please ignore this email.

Regards,
Intelligent DCET Team`, verifyLink)

	return m.send(to, "Confirm Your Email - DCET Platform", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if !m.Configured() {
		return fmt.Errorf("smtp credentials are not configured")
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("failed to dial smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}
	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("smtp MAIL failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp RCPT failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA failed: %w", err)
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message: %w", err)
	}

	return client.Quit()
}

var _ Mailer = (*SMTPMailer)(nil)
