package handler_test

import (
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"courtlistener.app/cl/internal/http/handler"
)

var _ = Describe("ListBarMemberships", func() {
	It("returns every state ordered by code", func() {
		router := gin.New()
		router.GET("/bar-memberships/", handler.ListBarMemberships)

		w := perform(router, http.MethodGet, "/bar-memberships/", nil, false)

		Expect(w.Code).To(Equal(http.StatusOK))
		results := decode(w)["results"].([]any)
		Expect(results).NotTo(BeEmpty())
		Expect(results[0]).To(HaveKeyWithValue("state", "AA"))
		Expect(results).To(ContainElement(HaveKeyWithValue("name", "Wyoming")))
	})
})
