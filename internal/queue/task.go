package queue

type TaskType string

const (
	TaskTypeSendEmail TaskType = "send_email"
	TaskTypeRunAlert  TaskType = "run_alert"
)

// Task is what producers put on the stream. Only the fields of its TaskType are read.
type Task struct {
	TaskType TaskType
	TraceID  *string
	Attempt  int

	// send_email
	To       string
	Subject  string
	TextBody string
	HTMLBody string
	MailKind string

	// run_alert
	AlertID   *int64
	Frequency string
}
