package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/service"
)

var _ = Describe("AuthService", func() {
	var (
		ctx      context.Context
		users    *mockUserStore
		sessions *mockSessionStore
		svc      service.AuthService
		hash     string
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = &mockUserStore{}
		sessions = &mockSessionStore{}
		svc = service.NewAuthService(users, sessions)

		var err error
		hash, err = service.HashPassword("s3cret")
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Login", func() {
		It("starts a session for valid credentials", func() {
			users.getByUsernameFn = func(context.Context, string) (*model.User, error) {
				return &model.User{ID: 5, Username: "jdoe", PasswordHash: hash, IsActive: true}, nil
			}
			var created *model.Session
			sessions.createFn = func(_ context.Context, s *model.Session) error {
				created = s
				return nil
			}

			user, session, err := svc.Login(ctx, "jdoe", "s3cret")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(int64(5)))
			Expect(session).To(Equal(created))
			Expect(session.Token).NotTo(BeEmpty())
			Expect(session.ExpiresAt).To(BeTemporally("~", time.Now().Add(model.SessionTTL), time.Minute))
			Expect(users.touchLastLoginCall).To(Equal(1))
		})

		It("rejects a wrong password", func() {
			users.getByUsernameFn = func(context.Context, string) (*model.User, error) {
				return &model.User{ID: 5, PasswordHash: hash, IsActive: true}, nil
			}
			_, _, err := svc.Login(ctx, "jdoe", "nope")
			Expect(err).To(MatchError(service.ErrInvalidCredentials))
		})

		It("rejects an unknown user the same way", func() {
			_, _, err := svc.Login(ctx, "ghost", "s3cret")
			Expect(err).To(MatchError(service.ErrInvalidCredentials))
		})

		It("rejects an inactive user", func() {
			users.getByUsernameFn = func(context.Context, string) (*model.User, error) {
				return &model.User{ID: 5, PasswordHash: hash}, nil
			}
			_, _, err := svc.Login(ctx, "jdoe", "s3cret")
			Expect(err).To(MatchError(service.ErrInvalidCredentials))
		})
	})

	Describe("ValidateSession", func() {
		It("returns the session owner", func() {
			sessions.getValidByTokenFn = func(context.Context, string) (*model.Session, error) {
				return &model.Session{UserID: 5}, nil
			}
			users.getByIDFn = func(_ context.Context, id int64) (*model.User, error) {
				return &model.User{ID: id, IsActive: true}, nil
			}
			user, err := svc.ValidateSession(ctx, "tok")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(int64(5)))
		})

		It("reports an unknown or expired token", func() {
			_, err := svc.ValidateSession(ctx, "tok")
			Expect(err).To(MatchError(service.ErrSessionExpired))
		})

		It("reports a deleted owner", func() {
			sessions.getValidByTokenFn = func(context.Context, string) (*model.Session, error) {
				return &model.Session{UserID: 5}, nil
			}
			_, err := svc.ValidateSession(ctx, "tok")
			Expect(err).To(MatchError(service.ErrUserNotFound))
		})
	})

	It("deletes the session on logout", func() {
		var deleted string
		sessions.deleteByTokenFn = func(_ context.Context, token string) error {
			deleted = token
			return nil
		}
		Expect(svc.Logout(ctx, "tok")).To(Succeed())
		Expect(deleted).To(Equal("tok"))
	})

	It("reports how many expired sessions were removed", func() {
		sessions.deleteExpiredFn = func(context.Context) (int64, error) { return 4, nil }
		n, err := svc.CleanupExpiredSessions(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(int64(4)))
	})
})
