package mail

// Kind labels a message for metrics and logs.
type Kind string

const (
	KindRegistration        Kind = "registration"
	KindConfirmationResend  Kind = "confirmation_resend"
	KindEmailChanged        Kind = "email_changed"
	KindAlertDigest         Kind = "alert_digest"
	KindAlertDigestNegative Kind = "alert_digest_negative"
)

type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
	Kind     Kind
}
