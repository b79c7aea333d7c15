package worker

import (
	"context"

	"courtlistener.app/cl/internal/mail"
	"courtlistener.app/cl/internal/queue"
	"courtlistener.app/cl/internal/store"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// Processor handles the messages of one task type.
type Processor interface {
	Process(ctx context.Context, msg queue.Message) error
}

// Mirrors service.StoreProvider - defined here to avoid import cycles.
type StoreProvider interface {
	Users() store.UserStore
	UserProfiles() store.UserProfileStore
	Alerts() store.AlertStore
}

// Mirrors service.TxRunner - defined here to avoid import cycles.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

// MailQueue is satisfied by service.MailQueue.
type MailQueue interface {
	EnqueueMail(ctx context.Context, msg mail.Message) error
}
