package handler_test

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"courtlistener.app/cl/internal/http/handler"
	"courtlistener.app/cl/internal/http/middleware"
	"courtlistener.app/cl/internal/model"
)

var _ = Describe("AuthHandler", func() {
	var (
		router *gin.Engine
		auth   *mockAuthService
	)

	BeforeEach(func() {
		auth = authFor(&model.User{ID: 42, Username: "jdoe"})
		h := handler.NewAuthHandler(auth, true)
		router = gin.New()
		router.POST("/api-auth/login/", h.Login)
		router.POST("/api-auth/logout/", h.Logout)
		router.GET("/api-auth/me/", middleware.RequireAuth(auth), h.Me)
	})

	It("sets a secure session cookie on login", func() {
		auth.loginFn = func(_ context.Context, username, password string) (*model.User, *model.Session, error) {
			Expect(username).To(Equal("jdoe"))
			Expect(password).To(Equal("secret"))
			return &model.User{ID: 42, Username: username}, &model.Session{Token: "abc"}, nil
		}

		w := perform(router, http.MethodPost, "/api-auth/login/", map[string]string{
			"username": "jdoe",
			"password": "secret",
		}, false)

		Expect(w.Code).To(Equal(http.StatusOK))
		cookie := sessionCookie(w)
		Expect(cookie).NotTo(BeNil())
		Expect(cookie.Value).To(Equal("abc"))
		Expect(cookie.Secure).To(BeTrue())
	})

	It("returns 401 on bad credentials", func() {
		w := perform(router, http.MethodPost, "/api-auth/login/", map[string]string{
			"username": "jdoe",
			"password": "wrong",
		}, false)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(sessionCookie(w)).To(BeNil())
	})

	It("deletes the session on logout", func() {
		var loggedOut string
		auth.logoutFn = func(_ context.Context, token string) error {
			loggedOut = token
			return nil
		}

		w := perform(router, http.MethodPost, "/api-auth/logout/", nil, true)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(loggedOut).To(Equal(sessionToken))
	})

	It("returns the current user", func() {
		w := perform(router, http.MethodGet, "/api-auth/me/", nil, true)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["username"]).To(Equal("jdoe"))
	})

	It("returns 401 without a session", func() {
		w := perform(router, http.MethodGet, "/api-auth/me/", nil, false)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})
