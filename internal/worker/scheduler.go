package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorhill/cronexpr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"courtlistener.app/cl/common/logger"
	"courtlistener.app/cl/core/config"
	"courtlistener.app/cl/internal/model"
	"courtlistener.app/cl/internal/queue"
)

const sessionCleanupSchedule = "0 * * * *"

// Job is a function run on a cron schedule.
type Job struct {
	Name string
	Expr *cronexpr.Expression
	Run  func(ctx context.Context) error
}

// AlertLister is the slice of store.AlertStore the scheduler needs.
type AlertLister interface {
	ListIDsByFrequency(ctx context.Context, frequency model.AlertFrequency) ([]int64, error)
}

// SessionCleaner is satisfied by service.AuthService.
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// AlertJobs builds one job per scheduled frequency. Each run enqueues a
// run_alert task for every alert of that frequency.
func AlertJobs(cfg config.AlertConfig, alerts AlertLister, producer queue.Producer) ([]Job, error) {
	schedules := []struct {
		frequency model.AlertFrequency
		expr      string
	}{
		{model.AlertFrequencyDaily, cfg.DailySchedule},
		{model.AlertFrequencyWeekly, cfg.WeeklySchedule},
		{model.AlertFrequencyMonthly, cfg.MonthlySchedule},
	}

	jobs := make([]Job, 0, len(schedules))
	for _, s := range schedules {
		expr, err := cronexpr.Parse(s.expr)
		if err != nil {
			return nil, fmt.Errorf("parsing %s alert schedule %q: %w", s.frequency.Label(), s.expr, err)
		}
		frequency := s.frequency
		jobs = append(jobs, Job{
			Name: "alerts_" + string(frequency),
			Expr: expr,
			Run: func(ctx context.Context) error {
				_, err := EnqueueAlerts(ctx, alerts, producer, frequency)
				return err
			},
		})
	}
	return jobs, nil
}

// EnqueueAlerts queues a run for every alert with the given frequency and
// returns how many were queued.
func EnqueueAlerts(ctx context.Context, alerts AlertLister, producer queue.Producer, frequency model.AlertFrequency) (int, error) {
	ids, err := alerts.ListIDsByFrequency(ctx, frequency)
	if err != nil {
		return 0, fmt.Errorf("listing %s alerts: %w", frequency, err)
	}

	queued := 0
	for _, id := range ids {
		alertID := id
		if err := producer.Enqueue(ctx, queue.Task{
			TaskType:  queue.TaskTypeRunAlert,
			AlertID:   &alertID,
			Frequency: string(frequency),
		}); err != nil {
			return queued, fmt.Errorf("enqueueing alert %d: %w", id, err)
		}
		queued++
	}

	slog.InfoContext(ctx, "alerts enqueued", "frequency", frequency, "count", queued)
	return queued, nil
}

func SessionCleanupJob(cleaner SessionCleaner) Job {
	return Job{
		Name: "session_cleanup",
		Expr: cronexpr.MustParse(sessionCleanupSchedule),
		Run: func(ctx context.Context) error {
			_, err := cleaner.CleanupExpiredSessions(ctx)
			return err
		},
	}
}

// Scheduler fires jobs at their next cron time. Jobs run one at a time on
// the scheduler goroutine.
type Scheduler struct {
	jobs []Job
	now  func() time.Time

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewScheduler(jobs ...Job) *Scheduler {
	return &Scheduler{
		jobs:      jobs,
		now:       time.Now,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	defer close(s.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "cl.worker.scheduler"})

	next := make([]time.Time, len(s.jobs))
	start := s.now()
	for i, job := range s.jobs {
		next[i] = job.Expr.Next(start)
		slog.InfoContext(ctx, "job scheduled", "job", job.Name, "next_run", next[i])
	}

	for {
		var (
			timer *time.Timer
			wait  <-chan time.Time
		)
		if wake, ok := earliest(next); ok {
			timer = time.NewTimer(wake.Sub(s.now()))
			wait = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return
		case <-s.stopCh:
			stopTimer(timer)
			slog.InfoContext(ctx, "scheduler stopping")
			return
		case <-wait:
		}

		now := s.now()
		for i, job := range s.jobs {
			if next[i].IsZero() || next[i].After(now) {
				continue
			}
			s.runJob(ctx, job)
			next[i] = job.Expr.Next(now)
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.stoppedCh
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	sc := logger.StartSpan(ctx, "scheduler.run_job", trace.WithAttributes(attribute.String("job", job.Name)))
	defer sc.End()
	ctx = sc.Context()

	defer func() {
		if r := recover(); r != nil {
			sc.RecordError(fmt.Errorf("panic: %v", r))
			slog.ErrorContext(ctx, "panic recovered in scheduled job", "job", job.Name, "panic", r)
		}
	}()

	start := s.now()
	if err := job.Run(ctx); err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "scheduled job failed", "job", job.Name, "error", err)
		return
	}
	slog.InfoContext(ctx, "scheduled job finished", "job", job.Name, "duration_ms", time.Since(start).Milliseconds())
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}

// earliest returns the soonest non-zero time. Zero means the expression
// never fires again.
func earliest(times []time.Time) (time.Time, bool) {
	var out time.Time
	for _, t := range times {
		if t.IsZero() {
			continue
		}
		if out.IsZero() || t.Before(out) {
			out = t
		}
	}
	return out, !out.IsZero()
}
