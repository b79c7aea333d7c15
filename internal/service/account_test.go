package service_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"courtlistener.app/cl/internal/mail"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/service"
	"courtlistener.app/cl/internal/store"
)

var _ = Describe("AccountService", func() {
	var (
		ctx       context.Context
		users     *mockUserStore
		profiles  *mockUserProfileStore
		alerts    *mockAlertStore
		favorites *mockFavoriteStore
		sessions  *mockSessionStore
		txRunner  *mockTxRunner
		mailQueue *mockMailQueue
		svc       service.AccountService
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = &mockUserStore{}
		profiles = &mockUserProfileStore{}
		alerts = &mockAlertStore{}
		favorites = &mockFavoriteStore{}
		sessions = &mockSessionStore{}
		mailQueue = &mockMailQueue{}
		txRunner = &mockTxRunner{stores: &mockStoreProvider{
			users:     users,
			profiles:  profiles,
			alerts:    alerts,
			favorites: favorites,
			sessions:  sessions,
		}}
		auth := service.NewAuthService(users, sessions)
		composer := mail.NewComposer("CourtListener.com", "https://www.courtlistener.com")
		svc = service.NewAccountService(txRunner, users, profiles, auth, mailQueue, composer)
	})

	Describe("Register", func() {
		var input service.RegisterInput

		BeforeEach(func() {
			input = service.RegisterInput{
				Username:  "jdoe",
				Email:     "jdoe@example.com",
				Password1: "hunter22",
				Password2: "hunter22",
				FirstName: "Jane",
				LastName:  "Doe",
			}
		})

		It("creates the user and a profile with a 5-day activation key", func() {
			var createdUser *model.User
			var createdProfile *model.UserProfile
			users.createFn = func(_ context.Context, u *model.User) error {
				createdUser = u
				return nil
			}
			profiles.createFn = func(_ context.Context, p *model.UserProfile) error {
				createdProfile = p
				return nil
			}

			before := time.Now()
			user, session, err := svc.Register(ctx, input)
			Expect(err).NotTo(HaveOccurred())

			Expect(user).To(Equal(createdUser))
			Expect(user.PasswordHash).NotTo(Equal("hunter22"))
			Expect(service.CheckPassword(user.PasswordHash, "hunter22")).To(BeTrue())

			Expect(createdProfile.UserID).To(Equal(user.ID))
			Expect(createdProfile.ActivationKey).To(HaveLen(40))
			Expect(createdProfile.EmailConfirmed).To(BeFalse())
			Expect(*createdProfile.KeyExpires).To(BeTemporally("~", before.Add(5*24*time.Hour), time.Minute))

			Expect(session).NotTo(BeNil())
			Expect(session.UserID).To(Equal(user.ID))
		})

		It("enqueues the confirmation email", func() {
			_, _, err := svc.Register(ctx, input)
			Expect(err).NotTo(HaveOccurred())

			Expect(mailQueue.sent).To(HaveLen(1))
			msg := mailQueue.sent[0]
			Expect(msg.To).To(Equal("jdoe@example.com"))
			Expect(msg.Subject).To(Equal("Confirm your account on CourtListener.com"))
			Expect(msg.Kind).To(Equal(mail.KindRegistration))
			Expect(msg.TextBody).To(ContainSubstring("https://www.courtlistener.com/email/confirm/"))
		})

		It("still registers when the mail cannot be queued", func() {
			mailQueue.enqueueFn = func(context.Context, mail.Message) error {
				return errors.New("redis down")
			}
			user, _, err := svc.Register(ctx, input)
			Expect(err).NotTo(HaveOccurred())
			Expect(user).NotTo(BeNil())
		})

		It("rejects mismatched passwords", func() {
			input.Password2 = "other"
			_, _, err := svc.Register(ctx, input)
			Expect(err).To(MatchError(service.ErrPasswordMismatch))
		})

		It("rejects a taken username", func() {
			users.getByUsernameFn = func(context.Context, string) (*model.User, error) {
				return &model.User{ID: 9}, nil
			}
			_, _, err := svc.Register(ctx, input)
			Expect(err).To(MatchError(service.ErrUsernameTaken))
		})

		It("rejects a taken email", func() {
			users.getByEmailFn = func(context.Context, string) (*model.User, error) {
				return &model.User{ID: 9}, nil
			}
			_, _, err := svc.Register(ctx, input)
			Expect(err).To(MatchError(service.ErrEmailTaken))
			Expect(mailQueue.sent).To(BeEmpty())
		})

		It("does not mail or log in when the transaction fails", func() {
			profiles.createFn = func(context.Context, *model.UserProfile) error {
				return errors.New("constraint violation")
			}
			sessionCreated := false
			sessions.createFn = func(context.Context, *model.Session) error {
				sessionCreated = true
				return nil
			}
			_, _, err := svc.Register(ctx, input)
			Expect(err).To(HaveOccurred())
			Expect(sessionCreated).To(BeFalse())
			Expect(mailQueue.sent).To(BeEmpty())
		})
	})

	Describe("ConfirmEmail", func() {
		future := time.Now().Add(time.Hour)
		past := time.Now().Add(-time.Hour)

		It("reports an unknown key as invalid", func() {
			status, err := svc.ConfirmEmail(ctx, "nope")
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(service.ConfirmInvalid))
		})

		It("checks confirmation before expiry", func() {
			profiles.getByActivationKeyFn = func(context.Context, string) (*model.UserProfile, error) {
				return &model.UserProfile{ID: 1, EmailConfirmed: true, KeyExpires: &past}, nil
			}
			status, err := svc.ConfirmEmail(ctx, "key")
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(service.ConfirmAlreadyConfirmed))
		})

		It("reports an expired key", func() {
			profiles.getByActivationKeyFn = func(context.Context, string) (*model.UserProfile, error) {
				return &model.UserProfile{ID: 1, KeyExpires: &past}, nil
			}
			status, err := svc.ConfirmEmail(ctx, "key")
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(service.ConfirmExpired))
		})

		It("confirms a fresh key", func() {
			var confirmed int64
			profiles.getByActivationKeyFn = func(context.Context, string) (*model.UserProfile, error) {
				return &model.UserProfile{ID: 7, KeyExpires: &future}, nil
			}
			profiles.confirmEmailFn = func(_ context.Context, id int64) error {
				confirmed = id
				return nil
			}
			status, err := svc.ConfirmEmail(ctx, "key")
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(service.ConfirmSuccess))
			Expect(confirmed).To(Equal(int64(7)))
		})
	})

	Describe("RequestEmailConfirmation", func() {
		user := &model.User{ID: 3, Username: "jdoe", Email: "jdoe@example.com"}

		It("does nothing for a confirmed address", func() {
			profiles.getByUserIDFn = func(context.Context, int64) (*model.UserProfile, error) {
				return &model.UserProfile{ID: 1, EmailConfirmed: true}, nil
			}
			status, err := svc.RequestEmailConfirmation(ctx, user)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(service.ConfirmAlreadyConfirmed))
			Expect(mailQueue.sent).To(BeEmpty())
		})

		It("rotates the key and sends a new link", func() {
			var newKey string
			profiles.getByUserIDFn = func(context.Context, int64) (*model.UserProfile, error) {
				return &model.UserProfile{ID: 1, ActivationKey: "old"}, nil
			}
			profiles.setActivationFn = func(_ context.Context, _ int64, key string, _ time.Time, confirmed bool) error {
				newKey = key
				Expect(confirmed).To(BeFalse())
				return nil
			}
			status, err := svc.RequestEmailConfirmation(ctx, user)
			Expect(err).NotTo(HaveOccurred())
			Expect(status).To(Equal(service.ConfirmSent))
			Expect(newKey).To(HaveLen(40))
			Expect(mailQueue.sent).To(HaveLen(1))
			Expect(mailQueue.sent[0].TextBody).To(ContainSubstring(newKey))
		})

		It("returns ErrProfileNotFound without a profile", func() {
			_, err := svc.RequestEmailConfirmation(ctx, user)
			Expect(err).To(MatchError(service.ErrProfileNotFound))
		})
	})

	Describe("UpdateSettings", func() {
		var user *model.User

		BeforeEach(func() {
			user = &model.User{ID: 3, Username: "jdoe", Email: "jdoe@example.com"}
			profiles.getByUserIDFn = func(context.Context, int64) (*model.UserProfile, error) {
				return &model.UserProfile{ID: 1, UserID: 3, EmailConfirmed: true}, nil
			}
		})

		It("saves profile fields and bar memberships", func() {
			var saved *model.UserProfile
			profiles.updateFn = func(_ context.Context, p *model.UserProfile) error {
				saved = p
				return nil
			}
			outcome, profile, err := svc.UpdateSettings(ctx, user, service.SettingsInput{
				Email:          "jdoe@example.com",
				Employer:       "Free Law Project",
				BarMemberships: []string{"CA", "NY"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(service.SettingsSaved))
			Expect(saved.Employer).To(Equal("Free Law Project"))
			Expect(profile.BarMemberships).To(ConsistOf("CA", "NY"))
			Expect(mailQueue.sent).To(BeEmpty())
		})

		It("unconfirms a changed email and mails the new address", func() {
			var confirmedFlag *bool
			profiles.setActivationFn = func(_ context.Context, _ int64, _ string, _ time.Time, confirmed bool) error {
				confirmedFlag = &confirmed
				return nil
			}
			outcome, profile, err := svc.UpdateSettings(ctx, user, service.SettingsInput{Email: "new@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(service.SettingsEmailChanged))
			Expect(*confirmedFlag).To(BeFalse())
			Expect(profile.EmailConfirmed).To(BeFalse())
			Expect(user.Email).To(Equal("new@example.com"))
			Expect(mailQueue.sent).To(HaveLen(1))
			Expect(mailQueue.sent[0].To).To(Equal("new@example.com"))
			Expect(mailQueue.sent[0].Subject).To(Equal("Email changed successfully on CourtListener.com"))
		})

		It("reminds the user to confirm an unchanged unconfirmed email", func() {
			profiles.getByUserIDFn = func(context.Context, int64) (*model.UserProfile, error) {
				return &model.UserProfile{ID: 1, UserID: 3}, nil
			}
			outcome, _, err := svc.UpdateSettings(ctx, user, service.SettingsInput{Email: "jdoe@example.com"})
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome).To(Equal(service.SettingsEmailUnconfirmed))
		})

		It("rejects an email owned by someone else", func() {
			users.getByEmailFn = func(context.Context, string) (*model.User, error) {
				return &model.User{ID: 99}, nil
			}
			_, _, err := svc.UpdateSettings(ctx, user, service.SettingsInput{Email: "taken@example.com"})
			Expect(err).To(MatchError(service.ErrEmailTaken))
			Expect(user.Email).To(Equal("jdoe@example.com"))
		})
	})

	Describe("DeleteProfile", func() {
		user := &model.User{ID: 3}

		It("removes everything the user owns, then the user", func() {
			var order []string
			alerts.deleteByUserFn = func(context.Context, int64) error { order = append(order, "alerts"); return nil }
			favorites.deleteByUserFn = func(context.Context, int64) error { order = append(order, "favorites"); return nil }
			profiles.deleteByUserFn = func(context.Context, int64) error { order = append(order, "profile"); return nil }
			sessions.deleteByUserFn = func(context.Context, int64) error { order = append(order, "sessions"); return nil }
			users.deleteFn = func(context.Context, int64) error { order = append(order, "user"); return nil }

			Expect(svc.DeleteProfile(ctx, user)).To(Succeed())
			Expect(order).To(Equal([]string{"alerts", "favorites", "profile", "sessions", "user"}))
		})

		It("tolerates a missing profile", func() {
			deleted := false
			profiles.deleteByUserFn = func(context.Context, int64) error { return store.ErrNotFound }
			users.deleteFn = func(context.Context, int64) error { deleted = true; return nil }

			Expect(svc.DeleteProfile(ctx, user)).To(Succeed())
			Expect(deleted).To(BeTrue())
		})

		It("stops on other failures", func() {
			deleted := false
			alerts.deleteByUserFn = func(context.Context, int64) error { return errors.New("boom") }
			users.deleteFn = func(context.Context, int64) error { deleted = true; return nil }

			Expect(svc.DeleteProfile(ctx, user)).NotTo(Succeed())
			Expect(deleted).To(BeFalse())
		})
	})

	Describe("ChangePassword", func() {
		var user *model.User

		BeforeEach(func() {
			hash, err := service.HashPassword("old-pass")
			Expect(err).NotTo(HaveOccurred())
			user = &model.User{ID: 3, PasswordHash: hash}
		})

		It("requires the old password", func() {
			err := svc.ChangePassword(ctx, user, "wrong", "new-pass", "new-pass")
			Expect(err).To(MatchError(service.ErrWrongPassword))
		})

		It("requires matching new passwords", func() {
			err := svc.ChangePassword(ctx, user, "old-pass", "new-pass", "other")
			Expect(err).To(MatchError(service.ErrPasswordMismatch))
		})

		It("stores a new bcrypt hash", func() {
			var stored string
			users.updatePasswordFn = func(_ context.Context, _ int64, hash string) error {
				stored = hash
				return nil
			}
			Expect(svc.ChangePassword(ctx, user, "old-pass", "new-pass", "new-pass")).To(Succeed())
			Expect(service.CheckPassword(stored, "new-pass")).To(BeTrue())
			Expect(user.PasswordHash).To(Equal(stored))
		})
	})
})
