// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mail delivers rendered digests over SMTP.
package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// Message is one digest email. The Markdown rendering doubles as the plain
// text part; the HTML part is optional.
type Message struct {
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers digest messages. Mailer is the SMTP implementation;
// tests substitute their own.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Mailer sends digest email over SMTP submission with mandatory STARTTLS.
type Mailer struct {
	cfg types.MailConfig
}

// NewMailer validates the config and returns a ready Mailer.
func NewMailer(cfg types.MailConfig) (*Mailer, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &Mailer{cfg: cfg}, nil
}

// Validate checks that the config is complete enough to send.
func Validate(cfg types.MailConfig) error {
	if cfg.Host == "" {
		return fmt.Errorf("mail host is not set")
	}
	if cfg.From == "" {
		return fmt.Errorf("mail sender address is not set")
	}
	if len(cfg.To) == 0 {
		return fmt.Errorf("mail has no recipients")
	}
	return nil
}

// Subject builds the digest subject line, e.g.
// "CV papers digest for 2026-08-21 - 8 papers".
func Subject(cfg types.MailConfig, date time.Time, paperCount int) string {
	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = "CV papers digest"
	}
	return fmt.Sprintf("%s for %s - %d papers", prefix, date.Format("2006-01-02"), paperCount)
}

// DigestMessage builds the email for a rendered report.
func DigestMessage(rep types.Report, cfg types.MailConfig, markdown, html string) Message {
	return Message{
		Subject:  Subject(cfg, rep.GeneratedAt, rep.Included),
		TextBody: markdown,
		HTMLBody: html,
	}
}

// Send connects to the SMTP server and delivers the message to every
// configured recipient.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	message := gomail.NewMsg()
	if err := message.From(m.cfg.From); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := message.To(m.cfg.To...); err != nil {
		return fmt.Errorf("setting recipients: %w", err)
	}
	message.Subject(msg.Subject)
	message.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	if msg.HTMLBody != "" {
		message.AddAlternativeString(gomail.TypeTextHTML, msg.HTMLBody)
	}

	port := m.cfg.Port
	if port <= 0 {
		port = 587
	}
	username := m.cfg.Username
	if username == "" {
		username = m.cfg.From
	}

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(m.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
