package model

import "time"

// ActivationWindow is how long an emailed confirmation link stays usable.
const ActivationWindow = 5 * 24 * time.Hour

type UserProfile struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	Location           string     `json:"location"`
	Employer           string     `json:"employer"`
	Avatar             string     `json:"avatar"`
	WantsNewsletter    bool       `json:"wants_newsletter"`
	PlaintextPreferred bool       `json:"plaintext_preferred"`
	ActivationKey      string     `json:"-"`
	KeyExpires         *time.Time `json:"-"`
	EmailConfirmed     bool       `json:"email_confirmed"`
	BarMemberships     []string   `json:"bar_memberships"`
}

// KeyExpired reports whether the activation key can no longer confirm the email.
func (p *UserProfile) KeyExpired(now time.Time) bool {
	return p.KeyExpires == nil || p.KeyExpires.Before(now)
}
