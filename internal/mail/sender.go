package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"

	"courtlistener.app/cl/common/logger"
	"courtlistener.app/cl/core/config"
)

// Sender delivers a composed message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type smtpSender struct {
	cfg config.MailConfig
}

// NewSender returns an SMTP sender, or a sender that only logs when SMTP is not configured.
func NewSender(cfg config.MailConfig) Sender {
	if !cfg.Enabled() {
		return &logSender{}
	}
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) error {
	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	if msg.TextBody != "" {
		e.Text = []byte(msg.TextBody)
	}
	if msg.HTMLBody != "" {
		e.HTML = []byte(msg.HTMLBody)
	}

	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	if err := e.Send(s.cfg.Addr(), auth); err != nil {
		return fmt.Errorf("sending %s mail: %w", msg.Kind, err)
	}

	slog.InfoContext(ctx, "mail sent", "kind", msg.Kind, "subject", logger.Truncate(msg.Subject, 80))
	return nil
}

type logSender struct{}

func (s *logSender) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "smtp not configured, mail logged instead of sent",
		"kind", msg.Kind,
		"to", msg.To,
		"subject", msg.Subject,
		"body", logger.Truncate(msg.TextBody, 500))
	return nil
}
