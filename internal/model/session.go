package model

import "time"

// SessionTTL is how long a login stays valid.
const SessionTTL = 14 * 24 * time.Hour

type Session struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) IsValid() bool {
	return time.Now().Before(s.ExpiresAt)
}
