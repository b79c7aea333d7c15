package queue_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"courtlistener.app/cl/internal/queue"
)

var _ = Describe("Redis stream queue", func() {
	var (
		ctx      context.Context
		mr       *miniredis.Miniredis
		client   *redis.Client
		producer queue.Producer
		consumer *queue.RedisConsumer
		cfg      queue.ConsumerConfig
	)

	BeforeEach(func() {
		ctx = context.Background()
		mr = miniredis.RunT(GinkgoT())
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		cfg = queue.ConsumerConfig{
			Stream:      "cl_tasks",
			Group:       "cl_workers",
			Consumer:    "test-1",
			DLQStream:   "cl_tasks_dlq",
			BatchSize:   10,
			Block:       10 * time.Millisecond,
			MaxAttempts: 3,
		}
		producer = queue.NewRedisProducer(client, cfg.Stream, nil)

		var err error
		consumer, err = queue.NewRedisConsumer(client, cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		_ = client.Close()
	})

	It("round-trips a send_email task", func() {
		Expect(producer.Enqueue(ctx, queue.Task{
			TaskType: queue.TaskTypeSendEmail,
			To:       "jane@example.com",
			Subject:  "Confirm your account on CourtListener.com",
			TextBody: "hello",
			MailKind: "registration",
		})).To(Succeed())

		msgs, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(msgs).To(HaveLen(1))
		Expect(msgs[0].TaskType).To(Equal(queue.TaskTypeSendEmail))
		Expect(msgs[0].To).To(Equal("jane@example.com"))
		Expect(msgs[0].MailKind).To(Equal("registration"))
		Expect(msgs[0].Attempt).To(Equal(1))
	})

	It("round-trips a run_alert task", func() {
		alertID := int64(42)
		Expect(producer.Enqueue(ctx, queue.Task{
			TaskType:  queue.TaskTypeRunAlert,
			AlertID:   &alertID,
			Frequency: "dly",
		})).To(Succeed())

		msgs, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(msgs).To(HaveLen(1))
		Expect(*msgs[0].AlertID).To(Equal(int64(42)))
		Expect(msgs[0].Frequency).To(Equal("dly"))
	})

	It("refuses to enqueue an incomplete task", func() {
		err := producer.Enqueue(ctx, queue.Task{TaskType: queue.TaskTypeRunAlert})
		Expect(err).To(MatchError(ContainSubstring("alert_id")))
	})

	It("requeues with the next attempt number", func() {
		alertID := int64(7)
		Expect(producer.Enqueue(ctx, queue.Task{TaskType: queue.TaskTypeRunAlert, AlertID: &alertID, Frequency: "wly"})).To(Succeed())
		msgs, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(consumer.Requeue(ctx, msgs[0], "boom")).To(Succeed())

		msgs, err = consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(msgs).To(HaveLen(1))
		Expect(msgs[0].Attempt).To(Equal(2))
		Expect(msgs[0].Raw.Values).To(HaveKeyWithValue("last_error", "boom"))
	})

	It("moves a message to the dead letter stream", func() {
		alertID := int64(9)
		Expect(producer.Enqueue(ctx, queue.Task{TaskType: queue.TaskTypeRunAlert, AlertID: &alertID, Frequency: "mly"})).To(Succeed())
		msgs, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())

		Expect(consumer.SendDLQ(ctx, msgs[0], "gave up")).To(Succeed())

		dlq, err := client.XRange(ctx, cfg.DLQStream, "-", "+").Result()
		Expect(err).NotTo(HaveOccurred())
		Expect(dlq).To(HaveLen(1))
		Expect(dlq[0].Values).To(HaveKeyWithValue("error", "gave up"))
	})

	It("acks and drops unparseable messages", func() {
		Expect(client.XAdd(ctx, &redis.XAddArgs{
			Stream: cfg.Stream,
			Values: map[string]any{"task_type": "mystery"},
		}).Err()).To(Succeed())

		msgs, err := consumer.Read(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(msgs).To(BeEmpty())
	})
})

var _ = Describe("ParseMessage", func() {
	It("requires a task type", func() {
		_, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{"attempt": "1"}})
		Expect(err).To(MatchError(ContainSubstring("task_type")))
	})

	It("requires a body for send_email", func() {
		_, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{
			"task_type": "send_email",
			"to":        "a@example.com",
			"subject":   "hi",
		}})
		Expect(err).To(MatchError(ContainSubstring("body")))
	})

	It("defaults the attempt to one", func() {
		msg, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: map[string]any{
			"task_type": "run_alert",
			"alert_id":  "5",
			"frequency": "dly",
		}})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(1))
	})
})
