package handler_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"courtlistener.app/cl/internal/http/handler"
	"courtlistener.app/cl/internal/http/middleware"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/service"
)

var _ = Describe("AccountHandler", func() {
	var (
		router   *gin.Engine
		accounts *mockAccountService
		user     *model.User
	)

	validRegistration := func() map[string]string {
		return map[string]string{
			"username":   "jdoe",
			"email":      "jdoe@example.com",
			"password1":  "hunter22",
			"password2":  "hunter22",
			"first_name": "Jane",
			"last_name":  "Doe",
		}
	}

	BeforeEach(func() {
		user = &model.User{ID: 42, Username: "jdoe", Email: "jdoe@example.com"}
		accounts = &mockAccountService{}
		auth := authFor(user)
		requireAuth := middleware.RequireAuth(auth)

		h := handler.NewAccountHandler(accounts, auth, false)
		router = gin.New()
		site := router.Group("/", middleware.OptionalAuth(auth))
		site.POST("/register/", h.Register)
		site.GET("/register/success/", h.RegisterSuccess)
		site.GET("/email/confirm/:key/", h.ConfirmEmail)
		site.POST("/email-confirmation/request/", requireAuth, h.RequestConfirmation)
		site.GET("/profile/", h.ProfileRedirect)
		site.GET("/profile/settings/", requireAuth, h.GetSettings)
		site.POST("/profile/settings/", requireAuth, h.UpdateSettings)
		site.POST("/profile/delete/", requireAuth, h.DeleteProfile)
		site.POST("/profile/password/change/", requireAuth, h.ChangePassword)
	})

	Describe("Register", func() {
		It("creates the account, sets the session cookie and points at the success page", func() {
			var got service.RegisterInput
			accounts.registerFn = func(_ context.Context, in service.RegisterInput) (*model.User, *model.Session, error) {
				got = in
				return &model.User{ID: 7, Username: in.Username}, &model.Session{Token: "fresh"}, nil
			}

			w := perform(router, http.MethodPost, "/register/?next=/alerts/", validRegistration(), false)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(got.Username).To(Equal("jdoe"))
			Expect(got.Password2).To(Equal("hunter22"))
			Expect(decode(w)["redirect"]).To(Equal("/register/success/?next=%2Falerts%2F"))
			cookie := sessionCookie(w)
			Expect(cookie).NotTo(BeNil())
			Expect(cookie.Value).To(Equal("fresh"))
			Expect(cookie.HttpOnly).To(BeTrue())
		})

		It("cleans an offsite next URL", func() {
			accounts.registerFn = func(context.Context, service.RegisterInput) (*model.User, *model.Session, error) {
				return &model.User{ID: 7}, &model.Session{Token: "fresh"}, nil
			}

			w := perform(router, http.MethodPost, "/register/?next=https://evil.example/", validRegistration(), false)

			Expect(decode(w)["redirect"]).To(Equal("/register/success/?next=%2F"))
		})

		It("redirects an authenticated user to settings without registering", func() {
			accounts.registerFn = func(context.Context, service.RegisterInput) (*model.User, *model.Session, error) {
				Fail("register must not be called")
				return nil, nil, nil
			}

			w := perform(router, http.MethodPost, "/register/", validRegistration(), true)

			Expect(w.Code).To(Equal(http.StatusFound))
			Expect(w.Header().Get("Location")).To(Equal("/profile/settings/"))
		})

		It("rejects a filled honeypot", func() {
			body := validRegistration()
			body["skip_me_if_alive"] = "beep"

			w := perform(router, http.MethodPost, "/register/", body, false)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects a filled honeypot before redirecting an authenticated session", func() {
			body := validRegistration()
			body["skip_me_if_alive"] = "beep"

			w := perform(router, http.MethodPost, "/register/", body, true)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("invalid registration"))
		})

		It("rejects a filled honeypot even when the rest of the form is invalid", func() {
			w := perform(router, http.MethodPost, "/register/", map[string]any{"skip_me_if_alive": "beep"}, false)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decode(w)["error"]).To(Equal("invalid registration"))
		})

		It("rejects an invalid username", func() {
			body := validRegistration()
			body["username"] = "no spaces allowed"

			w := perform(router, http.MethodPost, "/register/", body, false)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		DescribeTable("maps service errors",
			func(err error, code int) {
				accounts.registerFn = func(context.Context, service.RegisterInput) (*model.User, *model.Session, error) {
					return nil, nil, err
				}
				w := perform(router, http.MethodPost, "/register/", validRegistration(), false)
				Expect(w.Code).To(Equal(code))
			},
			Entry("password mismatch", service.ErrPasswordMismatch, http.StatusBadRequest),
			Entry("username taken", service.ErrUsernameTaken, http.StatusConflict),
			Entry("email taken", service.ErrEmailTaken, http.StatusConflict),
			Entry("unexpected", errors.New("boom"), http.StatusInternalServerError),
		)
	})

	It("echoes a safe redirect on the success page", func() {
		w := perform(router, http.MethodGet, "/register/success/?next=/sign-in/", nil, false)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["redirect"]).To(Equal("/"))
	})

	DescribeTable("ConfirmEmail",
		func(status service.ConfirmStatus, code int) {
			accounts.confirmEmailFn = func(_ context.Context, key string) (service.ConfirmStatus, error) {
				Expect(key).To(Equal("abc123"))
				return status, nil
			}

			w := perform(router, http.MethodGet, "/email/confirm/abc123/", nil, false)

			Expect(w.Code).To(Equal(code))
			Expect(decode(w)["status"]).To(Equal(string(status)))
		},
		Entry("success", service.ConfirmSuccess, http.StatusOK),
		Entry("already confirmed", service.ConfirmAlreadyConfirmed, http.StatusOK),
		Entry("expired", service.ConfirmExpired, http.StatusGone),
		Entry("invalid", service.ConfirmInvalid, http.StatusNotFound),
	)

	It("requires a session to request a confirmation email", func() {
		w := perform(router, http.MethodPost, "/email-confirmation/request/", nil, false)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))

		w = perform(router, http.MethodPost, "/email-confirmation/request/", nil, true)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["status"]).To(Equal("sent"))
	})

	It("redirects /profile/ permanently to settings", func() {
		w := perform(router, http.MethodGet, "/profile/", nil, false)

		Expect(w.Code).To(Equal(http.StatusMovedPermanently))
		Expect(w.Header().Get("Location")).To(Equal("/profile/settings/"))
	})

	Describe("settings", func() {
		It("returns the profile with named bar memberships", func() {
			accounts.getSettingsFn = func(_ context.Context, u *model.User) (*model.UserProfile, error) {
				return &model.UserProfile{UserID: u.ID, Employer: "Free Law", BarMemberships: []string{"CA"}}, nil
			}

			w := perform(router, http.MethodGet, "/profile/settings/", nil, true)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["employer"]).To(Equal("Free Law"))
			Expect(resp["bar_memberships"]).To(ConsistOf(HaveKeyWithValue("name", "California")))
			Expect(resp["user"]).To(HaveKeyWithValue("id", "42"))
		})

		It("reports the outcome message after saving", func() {
			accounts.updateSettingsFn = func(_ context.Context, u *model.User, in service.SettingsInput) (service.SettingsOutcome, *model.UserProfile, error) {
				Expect(in.BarMemberships).To(Equal([]string{"NY", "PR"}))
				return service.SettingsEmailChanged, &model.UserProfile{UserID: u.ID}, nil
			}

			w := perform(router, http.MethodPost, "/profile/settings/", map[string]any{
				"email":           "new@example.com",
				"bar_memberships": []string{"NY", "PR"},
			}, true)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decode(w)
			Expect(resp["outcome"]).To(Equal("email_changed"))
			Expect(resp["message"]).To(ContainSubstring("confirmation email"))
		})

		It("rejects an unknown bar membership", func() {
			w := perform(router, http.MethodPost, "/profile/settings/", map[string]any{
				"email":           "jdoe@example.com",
				"bar_memberships": []string{"ZZ"},
			}, true)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 409 when the email belongs to someone else", func() {
			accounts.updateSettingsFn = func(context.Context, *model.User, service.SettingsInput) (service.SettingsOutcome, *model.UserProfile, error) {
				return "", nil, service.ErrEmailTaken
			}

			w := perform(router, http.MethodPost, "/profile/settings/", map[string]any{"email": "taken@example.com"}, true)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	It("deletes the profile and clears the session cookie", func() {
		var deleted int64
		accounts.deleteProfileFn = func(_ context.Context, u *model.User) error {
			deleted = u.ID
			return nil
		}

		w := perform(router, http.MethodPost, "/profile/delete/", nil, true)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(deleted).To(Equal(int64(42)))
		Expect(decode(w)["redirect"]).To(Equal("/profile/delete/done/"))
		cookie := sessionCookie(w)
		Expect(cookie).NotTo(BeNil())
		Expect(cookie.MaxAge).To(BeNumerically("<", 0))
	})

	DescribeTable("ChangePassword",
		func(err error, code int) {
			accounts.changePasswordFn = func(_ context.Context, _ *model.User, oldPassword, _, _ string) error {
				Expect(oldPassword).To(Equal("old"))
				return err
			}

			w := perform(router, http.MethodPost, "/profile/password/change/", map[string]string{
				"old_password":  "old",
				"new_password1": "new",
				"new_password2": "new",
			}, true)

			Expect(w.Code).To(Equal(code))
		},
		Entry("success", nil, http.StatusOK),
		Entry("wrong old password", service.ErrWrongPassword, http.StatusBadRequest),
		Entry("mismatch", service.ErrPasswordMismatch, http.StatusBadRequest),
		Entry("unexpected", errors.New("boom"), http.StatusInternalServerError),
	)
})
