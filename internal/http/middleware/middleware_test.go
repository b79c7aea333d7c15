package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"courtlistener.app/cl/internal/http/middleware"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/service"
)

type stubAuth struct {
	service.AuthService
	validate func(ctx context.Context, token string) (*model.User, error)
}

func (s *stubAuth) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	return s.validate(ctx, token)
}

var _ = Describe("middleware", func() {
	var (
		router *gin.Engine
		auth   *stubAuth
	)

	request := func(path, cookie string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie})
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		auth = &stubAuth{validate: func(_ context.Context, token string) (*model.User, error) {
			switch token {
			case "good":
				return &model.User{ID: 1, Username: "jdoe"}, nil
			case "broken":
				return nil, errors.New("db down")
			}
			return nil, service.ErrSessionExpired
		}}

		router = gin.New()
		router.Use(middleware.Recovery(), middleware.Logger(), middleware.Metrics())
		router.GET("/panic", func(*gin.Context) { panic("boom") })
		router.GET("/optional", middleware.OptionalAuth(auth), func(c *gin.Context) {
			user, ok := middleware.CurrentUser(c)
			if !ok {
				c.String(http.StatusOK, "anonymous")
				return
			}
			c.String(http.StatusOK, user.Username)
		})
		router.GET("/private", middleware.RequireAuth(auth), func(c *gin.Context) {
			c.String(http.StatusOK, middleware.SessionToken(c))
		})
	})

	It("turns a panic into a 500", func() {
		w := request("/panic", "")
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(ContainSubstring("internal server error"))
	})

	DescribeTable("OptionalAuth",
		func(cookie, body string) {
			w := request("/optional", cookie)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal(body))
		},
		Entry("no cookie", "", "anonymous"),
		Entry("expired session", "stale", "anonymous"),
		Entry("store failure", "broken", "anonymous"),
		Entry("valid session", "good", "jdoe"),
	)

	It("rejects requests without a valid session", func() {
		Expect(request("/private", "").Code).To(Equal(http.StatusUnauthorized))
		Expect(request("/private", "stale").Code).To(Equal(http.StatusUnauthorized))
	})

	It("exposes the session token to authenticated handlers", func() {
		w := request("/private", "good")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("good"))
	})
})
