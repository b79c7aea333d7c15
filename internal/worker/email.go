package worker

import (
	"context"

	"courtlistener.app/cl/common/metrics"
	"courtlistener.app/cl/internal/mail"
	"courtlistener.app/cl/internal/queue"
)

// EmailProcessor delivers send_email tasks.
type EmailProcessor struct {
	sender mail.Sender
}

func NewEmailProcessor(sender mail.Sender) *EmailProcessor {
	return &EmailProcessor{sender: sender}
}

func (p *EmailProcessor) Process(ctx context.Context, msg queue.Message) error {
	kind := msg.MailKind
	if kind == "" {
		kind = "unknown"
	}

	err := p.sender.Send(ctx, mail.Message{
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
		Kind:     mail.Kind(kind),
	})
	if err != nil {
		metrics.EmailsSent.WithLabelValues(kind, "failed").Inc()
		return err
	}

	metrics.EmailsSent.WithLabelValues(kind, "sent").Inc()
	return nil
}
