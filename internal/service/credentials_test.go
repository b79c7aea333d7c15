package service_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"courtlistener.app/cl/internal/service"
)

var _ = Describe("SafeRedirect", func() {
	DescribeTable("cleans the next URL",
		func(next, want string) {
			Expect(service.SafeRedirect(next)).To(Equal(want))
		},
		Entry("empty", "", "/"),
		Entry("plain path", "/alerts/", "/alerts/"),
		Entry("sign-in page", "/sign-in/", "/"),
		Entry("contains a space", "/a b/", "/"),
		Entry("absolute URL", "https://evil.example/", "/"),
		Entry("protocol relative", "//evil.example/", "/"),
		Entry("slashes only in the query", "/search/?u=http://x", "/search/?u=http://x"),
	)
})

var _ = Describe("NewActivationKey", func() {
	It("returns 40 lowercase hex chars and differs per call", func() {
		a, err := service.NewActivationKey("jdoe")
		Expect(err).NotTo(HaveOccurred())
		b, err := service.NewActivationKey("jdoe")
		Expect(err).NotTo(HaveOccurred())

		Expect(a).To(MatchRegexp(`^[0-9a-f]{40}$`))
		Expect(a).NotTo(Equal(b))
	})
})

var _ = Describe("HashPassword", func() {
	It("rejects passwords bcrypt cannot hash", func() {
		_, err := service.HashPassword(strings.Repeat("x", 80))
		Expect(err).To(MatchError(service.ErrPasswordTooLong))
	})
})
