package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"courtlistener.app/cl/common/id"
	"courtlistener.app/cl/common/logger"
	"courtlistener.app/cl/internal/mail"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/store"
)

var (
	ErrUsernameTaken    = errors.New("username already taken")
	ErrEmailTaken       = errors.New("email already in use")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWrongPassword    = errors.New("old password is incorrect")
	ErrProfileNotFound  = errors.New("user profile not found")
)

// ConfirmStatus is the outcome of following an email confirmation link.
type ConfirmStatus string

const (
	ConfirmInvalid          ConfirmStatus = "invalid"
	ConfirmAlreadyConfirmed ConfirmStatus = "already_confirmed"
	ConfirmExpired          ConfirmStatus = "expired"
	ConfirmSuccess          ConfirmStatus = "success"
	ConfirmSent             ConfirmStatus = "sent"
)

// SettingsOutcome tells the caller which message to show after saving settings.
type SettingsOutcome string

const (
	SettingsSaved            SettingsOutcome = "saved"
	SettingsEmailChanged     SettingsOutcome = "email_changed"
	SettingsEmailUnconfirmed SettingsOutcome = "email_unconfirmed"
)

type RegisterInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
	FirstName string
	LastName  string
}

type SettingsInput struct {
	Email              string
	FirstName          string
	LastName           string
	Location           string
	Employer           string
	Avatar             string
	WantsNewsletter    bool
	PlaintextPreferred bool
	BarMemberships     []string
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, *model.Session, error)
	ConfirmEmail(ctx context.Context, key string) (ConfirmStatus, error)
	RequestEmailConfirmation(ctx context.Context, user *model.User) (ConfirmStatus, error)
	GetSettings(ctx context.Context, user *model.User) (*model.UserProfile, error)
	UpdateSettings(ctx context.Context, user *model.User, in SettingsInput) (SettingsOutcome, *model.UserProfile, error)
	DeleteProfile(ctx context.Context, user *model.User) error
	ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword1, newPassword2 string) error
}

type accountService struct {
	txRunner     TxRunner
	userStore    store.UserStore
	profileStore store.UserProfileStore
	auth         AuthService
	mailQueue    MailQueue
	composer     *mail.Composer
	now          func() time.Time
}

func NewAccountService(
	txRunner TxRunner,
	userStore store.UserStore,
	profileStore store.UserProfileStore,
	auth AuthService,
	mailQueue MailQueue,
	composer *mail.Composer,
) AccountService {
	return &accountService{
		txRunner:     txRunner,
		userStore:    userStore,
		profileStore: profileStore,
		auth:         auth,
		mailQueue:    mailQueue,
		composer:     composer,
		now:          time.Now,
	}
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) (*model.User, *model.Session, error) {
	if in.Password1 != in.Password2 {
		return nil, nil, ErrPasswordMismatch
	}

	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	if _, err := s.userStore.GetByUsername(ctx, username); err == nil {
		return nil, nil, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, fmt.Errorf("checking username: %w", err)
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := HashPassword(in.Password1)
	if err != nil {
		return nil, nil, err
	}

	key, err := NewActivationKey(username)
	if err != nil {
		return nil, nil, err
	}
	expires := s.now().Add(model.ActivationWindow)

	user := &model.User{
		ID:           id.New(),
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: hash,
		IsActive:     true,
	}
	profile := &model.UserProfile{
		ID:            id.New(),
		UserID:        user.ID,
		ActivationKey: key,
		KeyExpires:    &expires,
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		if err := stores.UserProfiles().Create(ctx, profile); err != nil {
			return fmt.Errorf("creating profile: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to register user", "error", err, "username", username)
		return nil, nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(user.ID)})
	slog.InfoContext(ctx, "user registered")

	msg, err := s.composer.Registration(user.Email, user.Username, key)
	if err != nil {
		return nil, nil, fmt.Errorf("composing registration mail: %w", err)
	}
	s.enqueue(ctx, msg)

	session, err := s.auth.StartSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

func (s *accountService) ConfirmEmail(ctx context.Context, key string) (ConfirmStatus, error) {
	if key == "" {
		return ConfirmInvalid, nil
	}

	profile, err := s.profileStore.GetByActivationKey(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ConfirmInvalid, nil
		}
		return "", fmt.Errorf("getting profile by activation key: %w", err)
	}

	if profile.EmailConfirmed {
		return ConfirmAlreadyConfirmed, nil
	}
	if profile.KeyExpired(s.now()) {
		return ConfirmExpired, nil
	}

	if err := s.profileStore.ConfirmEmail(ctx, profile.ID); err != nil {
		return "", fmt.Errorf("confirming email: %w", err)
	}

	slog.InfoContext(ctx, "email confirmed", "user_id", profile.UserID)
	return ConfirmSuccess, nil
}

func (s *accountService) RequestEmailConfirmation(ctx context.Context, user *model.User) (ConfirmStatus, error) {
	profile, err := s.profile(ctx, user.ID)
	if err != nil {
		return "", err
	}
	if profile.EmailConfirmed {
		return ConfirmAlreadyConfirmed, nil
	}

	key, err := NewActivationKey(user.Username)
	if err != nil {
		return "", err
	}
	expires := s.now().Add(model.ActivationWindow)

	if err := s.profileStore.SetActivation(ctx, profile.ID, key, expires, false); err != nil {
		return "", fmt.Errorf("saving activation key: %w", err)
	}

	msg, err := s.composer.ResendConfirmation(user.Email, user.Username, key)
	if err != nil {
		return "", fmt.Errorf("composing confirmation mail: %w", err)
	}
	s.enqueue(ctx, msg)

	return ConfirmSent, nil
}

func (s *accountService) GetSettings(ctx context.Context, user *model.User) (*model.UserProfile, error) {
	return s.profile(ctx, user.ID)
}

func (s *accountService) UpdateSettings(ctx context.Context, user *model.User, in SettingsInput) (SettingsOutcome, *model.UserProfile, error) {
	profile, err := s.profile(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	newEmail := strings.TrimSpace(in.Email)
	emailChanged := newEmail != user.Email

	if emailChanged {
		other, err := s.userStore.GetByEmail(ctx, newEmail)
		if err == nil && other.ID != user.ID {
			return "", nil, ErrEmailTaken
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return "", nil, fmt.Errorf("checking email: %w", err)
		}
	}

	var key string
	if emailChanged {
		if key, err = NewActivationKey(user.Username); err != nil {
			return "", nil, err
		}
	}
	expires := s.now().Add(model.ActivationWindow)

	updatedUser := *user
	updatedUser.Email = newEmail
	updatedUser.FirstName = strings.TrimSpace(in.FirstName)
	updatedUser.LastName = strings.TrimSpace(in.LastName)

	updatedProfile := *profile
	updatedProfile.Location = in.Location
	updatedProfile.Employer = in.Employer
	updatedProfile.Avatar = in.Avatar
	updatedProfile.WantsNewsletter = in.WantsNewsletter
	updatedProfile.PlaintextPreferred = in.PlaintextPreferred
	updatedProfile.BarMemberships = in.BarMemberships

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if emailChanged {
			if err := stores.UserProfiles().SetActivation(ctx, profile.ID, key, expires, false); err != nil {
				return fmt.Errorf("resetting activation: %w", err)
			}
		}
		if err := stores.UserProfiles().Update(ctx, &updatedProfile); err != nil {
			return fmt.Errorf("updating profile: %w", err)
		}
		if err := stores.Users().Update(ctx, &updatedUser); err != nil {
			return fmt.Errorf("updating user: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to save settings", "error", err, "user_id", user.ID)
		return "", nil, err
	}

	*user = updatedUser

	switch {
	case emailChanged:
		updatedProfile.EmailConfirmed = false
		updatedProfile.ActivationKey = key
		updatedProfile.KeyExpires = &expires
		msg, err := s.composer.EmailChanged(newEmail, user.Username, key)
		if err != nil {
			return "", nil, fmt.Errorf("composing email changed mail: %w", err)
		}
		s.enqueue(ctx, msg)
		return SettingsEmailChanged, &updatedProfile, nil
	case !updatedProfile.EmailConfirmed:
		return SettingsEmailUnconfirmed, &updatedProfile, nil
	default:
		return SettingsSaved, &updatedProfile, nil
	}
}

func (s *accountService) DeleteProfile(ctx context.Context, user *model.User) error {
	err := s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Alerts().DeleteByUser(ctx, user.ID); err != nil {
			return fmt.Errorf("deleting alerts: %w", err)
		}
		if err := stores.Favorites().DeleteByUser(ctx, user.ID); err != nil {
			return fmt.Errorf("deleting favorites: %w", err)
		}
		// Some accounts were created without a profile.
		if err := stores.UserProfiles().DeleteByUser(ctx, user.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("deleting profile: %w", err)
		}
		if err := stores.Sessions().DeleteByUser(ctx, user.ID); err != nil {
			return fmt.Errorf("deleting sessions: %w", err)
		}
		if err := stores.Users().Delete(ctx, user.ID); err != nil {
			return fmt.Errorf("deleting user: %w", err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete profile", "error", err, "user_id", user.ID)
		return err
	}

	slog.InfoContext(ctx, "profile deleted", "user_id", user.ID)
	return nil
}

func (s *accountService) ChangePassword(ctx context.Context, user *model.User, oldPassword, newPassword1, newPassword2 string) error {
	if !CheckPassword(user.PasswordHash, oldPassword) {
		return ErrWrongPassword
	}
	if newPassword1 != newPassword2 {
		return ErrPasswordMismatch
	}

	hash, err := HashPassword(newPassword1)
	if err != nil {
		return err
	}

	if err := s.userStore.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	user.PasswordHash = hash

	slog.InfoContext(ctx, "password changed", "user_id", user.ID)
	return nil
}

func (s *accountService) profile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	profile, err := s.profileStore.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("getting profile: %w", err)
	}
	return profile, nil
}

// enqueue logs instead of failing: the account change is already committed.
func (s *accountService) enqueue(ctx context.Context, msg mail.Message) {
	if err := s.mailQueue.EnqueueMail(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue mail", "error", err, "kind", msg.Kind)
	}
}
