package model_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"courtlistener.app/cl/internal/model"
)

var _ = Describe("BarMembership", func() {
	It("lists memberships ordered by state code", func() {
		list := model.ListBarMemberships()
		Expect(list).NotTo(BeEmpty())
		for i := 1; i < len(list); i++ {
			Expect(list[i-1].State < list[i].State).To(BeTrue())
		}
	})

	It("displays the state name", func() {
		Expect(model.NewBarMembership("NY").Name).To(Equal("New York"))
		Expect(model.IsUSState("NY")).To(BeTrue())
		Expect(model.IsUSState("XX")).To(BeFalse())
	})
})

var _ = Describe("AlertFrequency", func() {
	It("accepts only the four choices", func() {
		for _, f := range model.AlertFrequencies {
			Expect(f.Valid()).To(BeTrue())
		}
		Expect(model.AlertFrequency("hourly").Valid()).To(BeFalse())
	})

	It("has no look-back period when off", func() {
		Expect(model.AlertFrequencyOff.Period()).To(BeZero())
		Expect(model.AlertFrequencyWeekly.Period()).To(Equal(7 * 24 * time.Hour))
	})
})

var _ = Describe("UserProfile", func() {
	It("treats a missing expiry as expired", func() {
		p := model.UserProfile{}
		Expect(p.KeyExpired(time.Now())).To(BeTrue())
	})

	It("expires once the key date has passed", func() {
		now := time.Now()
		expires := now.Add(model.ActivationWindow)
		p := model.UserProfile{KeyExpires: &expires}
		Expect(p.KeyExpired(now)).To(BeFalse())
		Expect(p.KeyExpired(now.Add(model.ActivationWindow + time.Second))).To(BeTrue())
	})
})
