package worker_test

import (
	"context"
	"time"

	"github.com/gorhill/cronexpr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"courtlistener.app/cl/core/config"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/queue"
	"courtlistener.app/cl/internal/worker"
)

var _ = Describe("scheduling", func() {
	var (
		alerts   *mockAlertStore
		producer *mockProducer
	)

	BeforeEach(func() {
		alerts = &mockAlertStore{byFreq: map[model.AlertFrequency][]int64{
			model.AlertFrequencyWeekly: {3, 4},
		}}
		producer = &mockProducer{}
	})

	It("enqueues a run for every alert of the frequency", func() {
		n, err := worker.EnqueueAlerts(context.Background(), alerts, producer, model.AlertFrequencyWeekly)

		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(2))
		Expect(producer.tasks).To(HaveLen(2))
		Expect(producer.tasks[0].TaskType).To(Equal(queue.TaskTypeRunAlert))
		Expect(*producer.tasks[1].AlertID).To(Equal(int64(4)))
		Expect(producer.tasks[1].Frequency).To(Equal("wly"))
	})

	It("builds one job per frequency", func() {
		jobs, err := worker.AlertJobs(config.AlertConfig{
			DailySchedule:   "0 6 * * *",
			WeeklySchedule:  "0 6 * * 1",
			MonthlySchedule: "0 6 1 * *",
		}, alerts, producer)

		Expect(err).NotTo(HaveOccurred())
		Expect(jobs).To(HaveLen(3))
		Expect(jobs[1].Name).To(Equal("alerts_wly"))

		monday := jobs[1].Expr.Next(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC))
		Expect(monday).To(Equal(time.Date(2024, 3, 11, 6, 0, 0, 0, time.UTC)))

		Expect(jobs[1].Run(context.Background())).To(Succeed())
		Expect(producer.count()).To(Equal(2))
	})

	It("rejects a malformed schedule", func() {
		_, err := worker.AlertJobs(config.AlertConfig{
			DailySchedule:   "every day",
			WeeklySchedule:  "0 6 * * 1",
			MonthlySchedule: "0 6 1 * *",
		}, alerts, producer)

		Expect(err).To(MatchError(ContainSubstring("Daily")))
	})

	It("cleans up sessions from its job", func() {
		cleaner := &mockCleaner{}
		job := worker.SessionCleanupJob(cleaner)

		Expect(job.Run(context.Background())).To(Succeed())
		Expect(cleaner.calls).To(Equal(1))
		Expect(job.Expr.Next(time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC))).
			To(Equal(time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)))
	})

	It("fires jobs on their schedule until stopped", func() {
		fired := make(chan struct{}, 10)
		s := worker.NewScheduler(worker.Job{
			Name: "every_second",
			Expr: cronexpr.MustParse("* * * * * * *"),
			Run: func(context.Context) error {
				fired <- struct{}{}
				return nil
			},
		})

		go s.Run(context.Background())
		Eventually(fired).WithTimeout(3 * time.Second).Should(Receive())
		s.Stop()
	})

	It("runs each job inside its own span", func() {
		recorder := tracetest.NewSpanRecorder()
		previous := otel.GetTracerProvider()
		otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
		DeferCleanup(func() { otel.SetTracerProvider(previous) })

		traced := make(chan bool, 10)
		s := worker.NewScheduler(worker.Job{
			Name: "session_cleanup",
			Expr: cronexpr.MustParse("* * * * * * *"),
			Run: func(ctx context.Context) error {
				traced <- trace.SpanFromContext(ctx).SpanContext().IsValid()
				return nil
			},
		})

		go s.Run(context.Background())
		Eventually(traced).WithTimeout(3 * time.Second).Should(Receive(BeTrue()))
		s.Stop()

		ended := recorder.Ended()
		Expect(ended).NotTo(BeEmpty())
		Expect(ended[0].Name()).To(Equal("scheduler.run_job"))
		Expect(ended[0].Attributes()).To(ContainElement(attribute.String("job", "session_cleanup")))
	})
})
