package dto

import (
	"time"

	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/service"
)

// Honeypot is the registration form's bot trap. Humans never see the field,
// so any value means a bot.
type Honeypot struct {
	SkipMeIfAlive string `json:"skip_me_if_alive"`
}

func (h Honeypot) Triggered() bool {
	return h.SkipMeIfAlive != ""
}

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,username"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password1 string `json:"password1" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
	FirstName string `json:"first_name" binding:"required,max=30"`
	LastName  string `json:"last_name" binding:"required,max=30"`

	Honeypot
}

func (r RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{
		Username:  r.Username,
		Email:     r.Email,
		Password1: r.Password1,
		Password2: r.Password2,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

type SettingsRequest struct {
	Email              string   `json:"email" binding:"required,email,max=254"`
	FirstName          string   `json:"first_name" binding:"max=30"`
	LastName           string   `json:"last_name" binding:"max=30"`
	Location           string   `json:"location" binding:"max=100"`
	Employer           string   `json:"employer" binding:"max=100"`
	Avatar             string   `json:"avatar" binding:"max=100"`
	WantsNewsletter    bool     `json:"wants_newsletter"`
	PlaintextPreferred bool     `json:"plaintext_preferred"`
	BarMemberships     []string `json:"bar_memberships" binding:"omitempty,dive,usstate"`
}

func (r SettingsRequest) ToInput() service.SettingsInput {
	return service.SettingsInput{
		Email:              r.Email,
		FirstName:          r.FirstName,
		LastName:           r.LastName,
		Location:           r.Location,
		Employer:           r.Employer,
		Avatar:             r.Avatar,
		WantsNewsletter:    r.WantsNewsletter,
		PlaintextPreferred: r.PlaintextPreferred,
		BarMemberships:     r.BarMemberships,
	}
}

type PasswordChangeRequest struct {
	OldPassword  string `json:"old_password" binding:"required"`
	NewPassword1 string `json:"new_password1" binding:"required"`
	NewPassword2 string `json:"new_password2" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID         int64      `json:"id,string"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	IsStaff    bool       `json:"is_staff"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	DateJoined time.Time  `json:"date_joined"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsStaff:    u.IsStaff,
		LastLogin:  u.LastLogin,
		DateJoined: u.DateJoined,
	}
}

type SettingsResponse struct {
	User               *UserResponse         `json:"user"`
	Location           string                `json:"location"`
	Employer           string                `json:"employer"`
	Avatar             string                `json:"avatar"`
	WantsNewsletter    bool                  `json:"wants_newsletter"`
	PlaintextPreferred bool                  `json:"plaintext_preferred"`
	EmailConfirmed     bool                  `json:"email_confirmed"`
	BarMemberships     []model.BarMembership `json:"bar_memberships"`
	Outcome            string                `json:"outcome,omitempty"`
	Message            string                `json:"message,omitempty"`
}

func ToSettingsResponse(u *model.User, p *model.UserProfile) *SettingsResponse {
	bars := make([]model.BarMembership, 0, len(p.BarMemberships))
	for _, code := range p.BarMemberships {
		bars = append(bars, model.NewBarMembership(code))
	}
	return &SettingsResponse{
		User:               ToUserResponse(u),
		Location:           p.Location,
		Employer:           p.Employer,
		Avatar:             p.Avatar,
		WantsNewsletter:    p.WantsNewsletter,
		PlaintextPreferred: p.PlaintextPreferred,
		EmailConfirmed:     p.EmailConfirmed,
		BarMemberships:     bars,
	}
}

// SettingsMessage is the notice shown after a settings save.
func SettingsMessage(outcome service.SettingsOutcome) string {
	switch outcome {
	case service.SettingsEmailChanged:
		return "Your settings were saved successfully and you have been sent a confirmation email for your new address."
	case service.SettingsEmailUnconfirmed:
		return "Your settings were saved successfully. Please confirm your email address to receive alerts."
	}
	return "Your settings were saved successfully."
}

// SchemaTypes lists the request bodies documented under /api/rest-info/.
func SchemaTypes() map[string]any {
	return map[string]any{
		"register":        &RegisterRequest{},
		"settings":        &SettingsRequest{},
		"password_change": &PasswordChangeRequest{},
		"login":           &LoginRequest{},
		"alert":           &AlertRequest{},
		"favorite":        &FavoriteRequest{},
	}
}
