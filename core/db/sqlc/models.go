package sqlc

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Alert struct {
	ID                int64              `json:"id"`
	UserID            int64              `json:"user_id"`
	Name              string             `json:"name"`
	Query             string             `json:"query"`
	Frequency         string             `json:"frequency"`
	Private           bool               `json:"private"`
	SendNegativeAlert bool               `json:"send_negative_alert"`
	LastHitDate       pgtype.Timestamptz `json:"last_hit_date"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
}

type Favorite struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	ClusterID int64              `json:"cluster_id"`
	Name      string             `json:"name"`
	Notes     string             `json:"notes"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type SearchCourt struct {
	ID                     string             `json:"id"`
	DateModified           pgtype.Timestamptz `json:"date_modified"`
	InUse                  bool               `json:"in_use"`
	HasOpinionScraper      bool               `json:"has_opinion_scraper"`
	HasOralArgumentScraper bool               `json:"has_oral_argument_scraper"`
	Position               float64            `json:"position"`
	CitationString         string             `json:"citation_string"`
	ShortName              string             `json:"short_name"`
	FullName               string             `json:"full_name"`
	Url                    string             `json:"url"`
	StartDate              pgtype.Date        `json:"start_date"`
	EndDate                pgtype.Date        `json:"end_date"`
	Jurisdiction           string             `json:"jurisdiction"`
	Notes                  string             `json:"notes"`
}

type Session struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	Token     string             `json:"token"`
	ExpiresAt pgtype.Timestamptz `json:"expires_at"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type User struct {
	ID           int64              `json:"id"`
	Username     string             `json:"username"`
	Email        string             `json:"email"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	PasswordHash string             `json:"password_hash"`
	IsActive     bool               `json:"is_active"`
	IsStaff      bool               `json:"is_staff"`
	LastLogin    pgtype.Timestamptz `json:"last_login"`
	DateJoined   pgtype.Timestamptz `json:"date_joined"`
}

type UserProfile struct {
	ID                 int64              `json:"id"`
	UserID             int64              `json:"user_id"`
	Location           string             `json:"location"`
	Employer           string             `json:"employer"`
	Avatar             string             `json:"avatar"`
	WantsNewsletter    bool               `json:"wants_newsletter"`
	PlaintextPreferred bool               `json:"plaintext_preferred"`
	ActivationKey      string             `json:"activation_key"`
	KeyExpires         pgtype.Timestamptz `json:"key_expires"`
	EmailConfirmed     bool               `json:"email_confirmed"`
}
