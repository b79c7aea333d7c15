package service

import (
	"context"

	"courtlistener.app/cl/internal/mail"
	"courtlistener.app/cl/internal/queue"
)

// MailQueue hands composed mail to the worker for delivery.
type MailQueue interface {
	EnqueueMail(ctx context.Context, msg mail.Message) error
}

type queueMailer struct {
	producer queue.Producer
}

func NewMailQueue(producer queue.Producer) MailQueue {
	return &queueMailer{producer: producer}
}

func (q *queueMailer) EnqueueMail(ctx context.Context, msg mail.Message) error {
	return q.producer.Enqueue(ctx, queue.Task{
		TaskType: queue.TaskTypeSendEmail,
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HTMLBody: msg.HTMLBody,
		MailKind: string(msg.Kind),
	})
}
