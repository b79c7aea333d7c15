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

var _ = Describe("AlertHandler", func() {
	var (
		router *gin.Engine
		alerts *mockAlertService
	)

	BeforeEach(func() {
		alerts = &mockAlertService{}
		h := handler.NewAlertHandler(alerts)
		router = gin.New()
		rg := router.Group("/profile/alerts", middleware.RequireAuth(authFor(&model.User{ID: 42})))
		rg.GET("/", h.List)
		rg.POST("/", h.Create)
		rg.GET("/:id/", h.Get)
		rg.PUT("/:id/", h.Update)
		rg.DELETE("/:id/", h.Delete)
	})

	It("rejects anonymous requests", func() {
		w := perform(router, http.MethodGet, "/profile/alerts/", nil, false)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("lists the caller's alerts", func() {
		alerts.listFn = func(_ context.Context, userID int64) ([]model.Alert, error) {
			Expect(userID).To(Equal(int64(42)))
			return []model.Alert{
				{ID: 1, Name: "Daily", Query: "q=foo", Frequency: model.AlertFrequencyDaily},
				{ID: 2, Name: "Off", Query: "q=bar", Frequency: model.AlertFrequencyOff},
			}, nil
		}

		w := perform(router, http.MethodGet, "/profile/alerts/", nil, true)

		Expect(w.Code).To(Equal(http.StatusOK))
		resp := decode(w)
		Expect(resp["count"]).To(BeNumerically("==", 2))
		Expect(resp["results"]).To(ContainElement(HaveKeyWithValue("frequency_label", "Daily")))
	})

	It("creates an alert from a valid body", func() {
		alerts.createFn = func(_ context.Context, userID int64, in service.AlertInput) (*model.Alert, error) {
			Expect(in.Frequency).To(Equal(model.AlertFrequencyWeekly))
			return &model.Alert{ID: 9, UserID: userID, Name: in.Name, Query: in.Query, Frequency: in.Frequency}, nil
		}

		w := perform(router, http.MethodPost, "/profile/alerts/", map[string]any{
			"name":      "Fourth Amendment",
			"query":     "q=fourth+amendment",
			"frequency": "wly",
		}, true)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(decode(w)["id"]).To(Equal("9"))
	})

	It("rejects an unknown frequency at binding time", func() {
		w := perform(router, http.MethodPost, "/profile/alerts/", map[string]any{
			"name":      "x",
			"query":     "q=x",
			"frequency": "hourly",
		}, true)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 400 when the sanitized query is empty", func() {
		alerts.createFn = func(context.Context, int64, service.AlertInput) (*model.Alert, error) {
			return nil, service.ErrEmptyQuery
		}

		w := perform(router, http.MethodPost, "/profile/alerts/", map[string]any{
			"name":      "x",
			"query":     "<b></b>",
			"frequency": "dly",
		}, true)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("treats someone else's alert as not found", func() {
		w := perform(router, http.MethodGet, "/profile/alerts/5/", nil, true)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("returns 404 for a malformed id", func() {
		w := perform(router, http.MethodDelete, "/profile/alerts/abc/", nil, true)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("updates an alert", func() {
		alerts.updateFn = func(_ context.Context, _, alertID int64, in service.AlertInput) (*model.Alert, error) {
			return &model.Alert{ID: alertID, Name: in.Name, Frequency: in.Frequency}, nil
		}

		w := perform(router, http.MethodPut, "/profile/alerts/5/", map[string]any{
			"name":      "renamed",
			"query":     "q=x",
			"frequency": "mly",
		}, true)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["name"]).To(Equal("renamed"))
	})

	It("deletes an alert", func() {
		var deleted int64
		alerts.deleteFn = func(_ context.Context, _, alertID int64) error {
			deleted = alertID
			return nil
		}

		w := perform(router, http.MethodDelete, "/profile/alerts/5/", nil, true)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(deleted).To(Equal(int64(5)))
	})

	It("returns 500 when the service fails", func() {
		alerts.listFn = func(context.Context, int64) ([]model.Alert, error) {
			return nil, errors.New("boom")
		}

		w := perform(router, http.MethodGet, "/profile/alerts/", nil, true)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
